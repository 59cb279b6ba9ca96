package base

import (
	"sort"

	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/types"
)

// ParseBidsAsks 解析订单簿一侧，条目可以是 [price, amount, ...] 或对象
func ParseBidsAsks(list interface{}, priceKey, amountKey interface{}) []model.OrderBookEntry {
	items := common.AsList(list)
	out := make([]model.OrderBookEntry, 0, len(items))
	for _, item := range items {
		entry := model.OrderBookEntry{
			Price:  common.SafeDecimal(item, priceKey),
			Amount: common.SafeDecimal(item, amountKey),
		}
		if tuple, ok := item.([]interface{}); ok && len(tuple) > 2 {
			for i := 2; i < len(tuple); i++ {
				if s, ok := common.SafeString(tuple, i); ok {
					entry.Extra = append(entry.Extra, s)
				}
			}
		}
		out = append(out, entry)
	}
	return out
}

// NewOrderBook 构建订单簿：买盘价格降序，卖盘价格升序，同价保持原顺序
func NewOrderBook(symbol string, bids, asks []model.OrderBookEntry, timestamp int64, nonce *int64) *model.OrderBook {
	if bids == nil {
		bids = []model.OrderBookEntry{}
	}
	if asks == nil {
		asks = []model.OrderBookEntry{}
	}
	sort.SliceStable(bids, func(i, j int) bool {
		return priceLess(bids[j].Price, bids[i].Price)
	})
	sort.SliceStable(asks, func(i, j int) bool {
		return priceLess(asks[i].Price, asks[j].Price)
	})
	return &model.OrderBook{
		Symbol:    symbol,
		Bids:      bids,
		Asks:      asks,
		Timestamp: timestamp,
		Datetime:  types.ISO8601(timestamp),
		Nonce:     nonce,
	}
}

// priceLess 无效价格排在最后
func priceLess(a, b types.ExDecimal) bool {
	if !a.Valid || !b.Valid {
		return a.Valid && !b.Valid
	}
	return a.Decimal.LessThan(b.Decimal)
}

// SafeBalance 只保留上游提供的字段，不推导缺失字段；三个字段都缺失的币种被移除
func SafeBalance(balances *model.Balances) *model.Balances {
	for code, b := range balances.Currencies {
		if b == nil || (!b.Free.Valid && !b.Used.Valid && !b.Total.Valid) {
			delete(balances.Currencies, code)
		}
	}
	return balances
}

// SafeTicker 补全 datetime，close 缺失时取 last
func SafeTicker(t *model.Ticker) *model.Ticker {
	if !t.Close.Valid {
		t.Close = t.Last
	}
	if !t.Last.Valid {
		t.Last = t.Close
	}
	t.Datetime = types.ISO8601(t.Timestamp)
	return t
}

// SafeTrade 补全 datetime，不推导 cost
func SafeTrade(t *model.Trade) *model.Trade {
	t.Datetime = types.ISO8601(t.Timestamp)
	return t
}

// SafeOrder 补全 datetime，不推导 filled / remaining / cost
func SafeOrder(o *model.Order) *model.Order {
	o.Datetime = types.ISO8601(o.Timestamp)
	return o
}

// SafeTransaction 补全 datetime
func SafeTransaction(t *model.Transaction) *model.Transaction {
	t.Datetime = types.ISO8601(t.Timestamp)
	return t
}

// FilterBySinceLimit 按时间升序排列，过滤 since 之前的记录并截取前 limit 条
// since<=0 或 limit<=0 表示不限制
func FilterBySinceLimit[T any](items []T, timestamp func(T) int64, since int64, limit int) []T {
	out := make([]T, 0, len(items))
	for _, item := range items {
		if since > 0 && timestamp(item) < since {
			continue
		}
		out = append(out, item)
	}
	sort.SliceStable(out, func(i, j int) bool {
		return timestamp(out[i]) < timestamp(out[j])
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}

// TradeTimestamp 用于 FilterBySinceLimit
func TradeTimestamp(t *model.Trade) int64 { return t.Timestamp }

// OrderTimestamp 用于 FilterBySinceLimit
func OrderTimestamp(o *model.Order) int64 { return o.Timestamp }

// TransactionTimestamp 用于 FilterBySinceLimit
func TransactionTimestamp(t *model.Transaction) int64 { return t.Timestamp }

// OHLCVTimestamp 用于 FilterBySinceLimit
func OHLCVTimestamp(c *model.OHLCV) int64 { return c.Timestamp }
