package paymium

import (
	"strings"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/types"
)

var orderStatuses = base.StatusMap{
	"pending_execution": model.OrderStatusOpen,
	"processing":        model.OrderStatusOpen,
	"active":            model.OrderStatusOpen,
	"filled":            model.OrderStatusClosed,
	"canceled":          model.OrderStatusCanceled,
}

// preciseMul 任一操作数缺失时结果缺失
func preciseMul(a, b types.ExDecimal) types.ExDecimal {
	if !a.Valid || !b.Valid {
		return types.ExDecimal{}
	}
	return types.ExDecimalFrom(a.Decimal.Mul(b.Decimal))
}

// parseTicker 成交额由 volume × vwap 推导
//
//	{"high":"33740.82","low":"32185.15","volume":"4.7890433","bid":"33313.53","ask":"33497.97","midpoint":"33405.75",
//	 "vwap":"32802.5263553","at":1643381654,"price":"33143.91","open":"33116.86","variation":"0.0817","currency":"EUR"}
func (p *Paymium) parseTicker(raw interface{}, market *model.Market) *model.Ticker {
	vwap := common.SafeDecimal(raw, "vwap")
	baseVolume := common.SafeDecimal(raw, "volume")
	last := common.SafeDecimal(raw, "price")
	ticker := &model.Ticker{
		Symbol:      p.Registry().SafeSymbol("", market, ""),
		High:        common.SafeDecimal(raw, "high"),
		Low:         common.SafeDecimal(raw, "low"),
		Bid:         common.SafeDecimal(raw, "bid"),
		Ask:         common.SafeDecimal(raw, "ask"),
		Vwap:        vwap,
		Open:        common.SafeDecimal(raw, "open"),
		Close:       last,
		Last:        last,
		Percentage:  common.SafeDecimal(raw, "variation"),
		BaseVolume:  baseVolume,
		QuoteVolume: preciseMul(baseVolume, vwap),
		Info:        raw,
	}
	if at, ok := common.SafeInteger(raw, "at"); ok {
		ticker.Timestamp = at * 1000
	}
	return base.SafeTicker(ticker)
}

// parseTrade 成交额 = price × traded_<base>
//
//	{"uuid":"d6b9a4c9-1f5a-4fcf-bb2b-1d3b4f3e8b3e","side":"buy","price":"32600.0","traded_btc":"0.0105",
//	 "traded_currency":"342.3","created_at":"2022-01-28T13:39:28Z","created_at_int":1643377168,"currency":"EUR"}
func (p *Paymium) parseTrade(raw interface{}, market *model.Market) *model.Trade {
	trade := &model.Trade{Info: raw}
	trade.ID, _ = common.SafeString(raw, "uuid")
	if created, ok := common.SafeInteger(raw, "created_at_int"); ok {
		trade.Timestamp = created * 1000
	}
	trade.Side, _ = common.SafeString(raw, "side")
	trade.Price = common.SafeDecimal(raw, "price")
	if market != nil {
		trade.Symbol = market.Symbol
		trade.Amount = common.SafeDecimal(raw, "traded_"+strings.ToLower(market.Base))
	}
	trade.Cost = preciseMul(trade.Price, trade.Amount)
	return base.SafeTrade(trade)
}

// parseOrder
//
//	{"uuid":"968f4580-e26c-4ad8-8bcd-874d23d55296","amount":"1.0","state":"pending_execution","created_at":"2014-03-04T13:25:30Z",
//	 "currency":"EUR","type":"LimitOrder","traded_btc":"0.0","traded_currency":"0.0","direction":"buy","price":"500.0"}
func (p *Paymium) parseOrder(raw interface{}, market *model.Market) *model.Order {
	order := &model.Order{Info: raw}
	order.ID, _ = common.SafeString(raw, "uuid")
	if createdAt, ok := common.SafeString(raw, "created_at"); ok {
		order.Timestamp, _ = types.Parse8601(createdAt)
	}
	if updatedAt, ok := common.SafeString(raw, "updated_at"); ok {
		order.LastTradeTimestamp, _ = types.Parse8601(updatedAt)
	}
	currencyID, _ := common.SafeStringLower(raw, "currency")
	resolved := p.Registry().SafeMarket(currencyID, market, "")
	order.Symbol = resolved.Symbol
	if orderType, ok := common.SafeString(raw, "type"); ok {
		order.Type = strings.ToLower(strings.TrimSuffix(orderType, "Order"))
	}
	order.Side, _ = common.SafeString(raw, "direction")
	if state, ok := common.SafeString(raw, "state"); ok {
		order.Status, _ = orderStatuses.Parse(state)
	}
	order.Price = common.SafeDecimal(raw, "price")
	order.Amount = common.SafeDecimal(raw, "amount")
	if resolved.Base != "" {
		order.Filled = common.SafeDecimal(raw, "traded_"+strings.ToLower(resolved.Base))
	}
	order.Cost = common.SafeDecimal(raw, "traded_currency")
	return base.SafeOrder(order)
}

// parseBalance {"name":"BC-U123456","balance_btc":"1.0","locked_btc":"0.5","balance_eur":"10.0","locked_eur":"0.0"}
func (p *Paymium) parseBalance(response interface{}) *model.Balances {
	result := model.NewBalances(response)
	for code, currency := range p.Registry().Currencies() {
		free := common.SafeDecimal(response, "balance_"+currency.ID)
		if !free.Valid {
			continue
		}
		result.Currencies[code] = &model.Balance{
			Free: free,
			Used: common.SafeDecimal(response, "locked_"+currency.ID),
		}
	}
	return base.SafeBalance(result)
}
