package btcbox

import (
	"strings"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/types"
)

// tokyoOffset 订单时间为东京时间且不带时区
const tokyoOffset = "+09:00"

var orderStatuses = base.StatusMap{
	"part":      model.OrderStatusOpen,
	"all":       model.OrderStatusClosed,
	"cancelled": model.OrderStatusCanceled,
	"closed":    model.OrderStatusClosed,
	"no":        model.OrderStatusClosed,
}

func (b *BTCBox) parseMarket(m staticMarket) *model.Market {
	baseCode := b.Registry().SafeCurrencyCode(m.base, nil)
	quoteCode := b.Registry().SafeCurrencyCode(m.quote, nil)
	return &model.Market{
		ID:      m.id,
		Symbol:  common.NormalizeSymbol(baseCode, quoteCode),
		Base:    baseCode,
		Quote:   quoteCode,
		BaseID:  m.id,
		QuoteID: strings.ToLower(m.quote),
		Type:    model.MarketTypeSpot,
		Spot:    true,
		Active:  true,
		Taker:   types.NewExDecimal(m.fee),
		Maker:   types.NewExDecimal(m.fee),
		Info: map[string]interface{}{
			"id":    m.id,
			"base":  m.base,
			"quote": m.quote,
		},
	}
}

// parseTicker 行情不带时间，使用本地时间
//
//	{"high":279999,"low":273000,"buy":278970,"sell":279000,"last":278970,"vol":1613.7851,"volume":446497536.3}
func (b *BTCBox) parseTicker(raw interface{}, market *model.Market) *model.Ticker {
	last := common.SafeDecimal(raw, "last")
	return base.SafeTicker(&model.Ticker{
		Symbol:      b.Registry().SafeSymbol("", market, ""),
		Timestamp:   b.now(),
		High:        common.SafeDecimal(raw, "high"),
		Low:         common.SafeDecimal(raw, "low"),
		Bid:         common.SafeDecimal(raw, "buy"),
		Ask:         common.SafeDecimal(raw, "sell"),
		Close:       last,
		Last:        last,
		BaseVolume:  common.SafeDecimal(raw, "vol"),
		QuoteVolume: common.SafeDecimal(raw, "volume"),
		Info:        raw,
	})
}

// parseTrade {"date":"1569150436","price":1049800,"amount":0.0116,"tid":"43254958","type":"buy"}
func (b *BTCBox) parseTrade(raw interface{}, market *model.Market) *model.Trade {
	trade := &model.Trade{Info: raw}
	if market != nil {
		trade.Symbol = market.Symbol
	}
	if date, ok := common.SafeInteger(raw, "date"); ok {
		trade.Timestamp = date * 1000
	}
	trade.ID, _ = common.SafeString(raw, "tid")
	trade.Side, _ = common.SafeString(raw, "type")
	trade.Price = common.SafeDecimal(raw, "price")
	trade.Amount = common.SafeDecimal(raw, "amount")
	return base.SafeTrade(trade)
}

// parseOrder
//
//	{"id":11,"datetime":"2014-10-21 10:47:20","type":"sell","price":42000,"amount_original":1.2,
//	 "amount_outstanding":1.2,"status":"closed"}
//
// 没有状态且剩余数量为 0 时视为已成交
func (b *BTCBox) parseOrder(raw interface{}, market *model.Market) *model.Order {
	order := &model.Order{Info: raw}
	order.ID, _ = common.SafeString(raw, "id")
	if datetime, ok := common.SafeString(raw, "datetime"); ok {
		order.Timestamp, _ = types.Parse8601(datetime + tokyoOffset)
	}
	if market != nil {
		order.Symbol = market.Symbol
	}
	order.Side, _ = common.SafeString(raw, "type")
	order.Price = common.SafeDecimal(raw, "price")
	order.Amount = common.SafeDecimal(raw, "amount_original")
	order.Remaining = common.SafeDecimal(raw, "amount_outstanding")
	if status, ok := common.SafeString(raw, "status"); ok {
		order.Status, _ = orderStatuses.Parse(status)
	}
	if order.Status == "" && order.Remaining.Valid && order.Remaining.IsZero() {
		order.Status = model.OrderStatusClosed
	}
	return base.SafeOrder(order)
}

// parseBalance {"uid":8,"jpy_balance":1000,"jpy_lock":0,"btc_balance":0.5,"btc_lock":0.1,...}
func (b *BTCBox) parseBalance(response interface{}) *model.Balances {
	result := model.NewBalances(response)
	for code, currency := range b.Registry().Currencies() {
		free := common.SafeDecimal(response, currency.ID+"_balance")
		if !free.Valid {
			continue
		}
		result.Currencies[code] = &model.Balance{
			Free: free,
			Used: common.SafeDecimal(response, currency.ID+"_lock"),
		}
	}
	return base.SafeBalance(result)
}
