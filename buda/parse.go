package buda

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/types"
)

var orderStatuses = base.StatusMap{
	"traded":    model.OrderStatusClosed,
	"received":  model.OrderStatusOpen,
	"pending":   model.OrderStatusOpen,
	"canceling": model.OrderStatusCanceled,
}

var transactionStatuses = base.StatusMap{
	"rejected":             model.TransactionStatusFailed,
	"confirmed":            model.TransactionStatusOK,
	"anulled":              model.TransactionStatusCanceled,
	"retained":             model.TransactionStatusCanceled,
	"pending_confirmation": model.TransactionStatusPending,
}

// precisionToTick 小数位数 -> 最小单位，如 8 -> 0.00000001
func precisionToTick(places types.ExDecimal) types.ExDecimal {
	if !places.Valid {
		return types.ExDecimal{}
	}
	return types.ExDecimalFrom(decimal.New(1, -int32(places.IntPart())))
}

// parseMarket
//
//	{"id":"BTC-CLP","name":"btc-clp","base_currency":"BTC","quote_currency":"CLP","minimum_order_amount":["0.001","BTC"]}
func (b *Buda) parseMarket(raw interface{}, currencies map[string]interface{}) *model.Market {
	id, _ := common.SafeString(raw, "id")
	baseID, _ := common.SafeString(raw, "base_currency")
	quoteID, _ := common.SafeString(raw, "quote_currency")
	baseCode := b.Registry().SafeCurrencyCode(baseID, nil)
	quoteCode := b.Registry().SafeCurrencyCode(quoteID, nil)

	return &model.Market{
		ID:      id,
		Symbol:  common.NormalizeSymbol(baseCode, quoteCode),
		Base:    baseCode,
		Quote:   quoteCode,
		BaseID:  baseID,
		QuoteID: quoteID,
		Type:    model.MarketTypeSpot,
		Spot:    true,
		Active:  true,
		Taker:   types.NewExDecimal("0.008"),
		Maker:   types.NewExDecimal("0.004"),
		Precision: model.MarketPrecision{
			Amount: common.SafeDecimal(currencies[baseID], "input_decimals"),
			Price:  common.SafeDecimal(currencies[quoteID], "input_decimals"),
		},
		Limits: model.MarketLimits{
			Amount: model.MinMax{Min: common.SafeDecimalIndex(raw, "minimum_order_amount", 0)},
		},
		Info: raw,
	}
}

// parseCurrency
//
//	{"id":"BTC","managed":true,"input_decimals":8,"deposit_minimum":["0.0","BTC"],"withdrawal_minimum":["0.00001","BTC"]}
func (b *Buda) parseCurrency(raw interface{}) *model.Currency {
	id, _ := common.SafeString(raw, "id")
	precision := common.SafeDecimal(raw, "input_decimals")
	return &model.Currency{
		ID:        id,
		Code:      b.Registry().SafeCurrencyCode(id, nil),
		Precision: precision,
		Active:    true,
		Limits: model.CurrencyLimits{
			Amount:   model.MinMax{Min: precisionToTick(precision)},
			Deposit:  model.MinMax{Min: common.SafeDecimalIndex(raw, "deposit_minimum", 0)},
			Withdraw: model.MinMax{Min: common.SafeDecimalIndex(raw, "withdrawal_minimum", 0)},
		},
		Info: raw,
	}
}

// parseTicker
//
//	{"market_id":"ETH-BTC","last_price":["0.07300001","BTC"],"min_ask":["0.07716895","BTC"],
//	 "max_bid":["0.0754966","BTC"],"volume":["0.168965697","ETH"],"price_variation_24h":"-0.046"}
func (b *Buda) parseTicker(raw interface{}, market *model.Market) *model.Ticker {
	marketID, _ := common.SafeString(raw, "market_id")
	last := common.SafeDecimalIndex(raw, "last_price", 0)

	var percentage types.ExDecimal
	if variation, ok := common.SafeString(raw, "price_variation_24h"); ok {
		if p, err := common.PreciseMul(variation, "100"); err == nil {
			percentage = types.NewExDecimal(p)
		}
	}

	return base.SafeTicker(&model.Ticker{
		Symbol:     b.Registry().SafeSymbol(marketID, market, "-"),
		Timestamp:  b.now(),
		Bid:        common.SafeDecimalIndex(raw, "max_bid", 0),
		Ask:        common.SafeDecimalIndex(raw, "min_ask", 0),
		Close:      last,
		Last:       last,
		Percentage: percentage,
		BaseVolume: common.SafeDecimalIndex(raw, "volume", 0),
		Info:       raw,
	})
}

// parseTrade 公共成交元组 [timestamp, price, amount, side, id]
//
//	["1540077456791","0.0063767","0.03","sell",479842]
func (b *Buda) parseTrade(raw interface{}, market *model.Market) *model.Trade {
	trade := &model.Trade{Info: raw}
	if market != nil {
		trade.Symbol = market.Symbol
	}
	if _, ok := raw.([]interface{}); ok {
		trade.Timestamp, _ = common.SafeInteger(raw, 0)
		trade.Price = common.SafeDecimal(raw, 1)
		trade.Amount = common.SafeDecimal(raw, 2)
		trade.Side, _ = common.SafeString(raw, 3)
		trade.ID, _ = common.SafeString(raw, 4)
	}
	return base.SafeTrade(trade)
}

// parseOrder
//
//	{"id":63679183,"market_id":"ETH-CLP","type":"Ask","state":"received","created_at":"2021-01-04T08:29:52.730Z",
//	 "price_type":"limit","limit":["741000.0","CLP"],"amount":["0.001","ETH"],"original_amount":["0.001","ETH"],
//	 "traded_amount":["0.0","ETH"],"total_exchanged":["0.0","CLP"],"paid_fee":["0.0","CLP"]}
func (b *Buda) parseOrder(raw interface{}, market *model.Market) *model.Order {
	order := &model.Order{Info: raw}
	order.ID, _ = common.SafeString(raw, "id")
	if createdAt, ok := common.SafeString(raw, "created_at"); ok {
		order.Timestamp, _ = types.Parse8601(createdAt)
	}
	marketID, _ := common.SafeString(raw, "market_id")
	order.Symbol = b.Registry().SafeSymbol(marketID, market, "-")
	order.Type, _ = common.SafeString(raw, "price_type")
	if side, ok := common.SafeStringLower(raw, "type"); ok {
		order.Side = parseSide(side)
	}
	if state, ok := common.SafeString(raw, "state"); ok {
		order.Status, _ = orderStatuses.Parse(state)
	}
	order.Amount = common.SafeDecimalIndex(raw, "original_amount", 0)
	order.Remaining = common.SafeDecimalIndex(raw, "amount", 0)
	order.Filled = common.SafeDecimalIndex(raw, "traded_amount", 0)
	order.Cost = common.SafeDecimalIndex(raw, "total_exchanged", 0)
	order.Price = common.SafeDecimalIndex(raw, "limit", 0)
	if !order.Price.Valid {
		order.Price = common.SafeDecimal(raw, "limit")
	}
	if feeCost := common.SafeDecimalIndex(raw, "paid_fee", 0); feeCost.Valid {
		feeCurrency, _ := common.SafeStringIndex(raw, "paid_fee", 1)
		order.Fee = &model.Fee{
			Cost:     feeCost,
			Currency: b.Registry().SafeCurrencyCode(feeCurrency, nil),
		}
	}
	return base.SafeOrder(order)
}

// parseSide Bid / Ask -> buy / sell
func parseSide(side string) string {
	switch strings.ToLower(side) {
	case "bid":
		return string(model.OrderSideBuy)
	case "ask":
		return string(model.OrderSideSell)
	}
	return side
}

// parseBalance
//
//	{"balances":[{"id":"BTC","amount":["0.5","BTC"],"available_amount":["0.4","BTC"],"frozen_amount":["0.1","BTC"]}]}
func (b *Buda) parseBalance(response interface{}) *model.Balances {
	result := model.NewBalances(response)
	list, _ := common.SafeList(response, "balances")
	for _, item := range list {
		id, _ := common.SafeString(item, "id")
		code := b.Registry().SafeCurrencyCode(id, nil)
		result.Currencies[code] = &model.Balance{
			Free:  common.SafeDecimalIndex(item, "available_amount", 0),
			Total: common.SafeDecimalIndex(item, "amount", 0),
		}
	}
	return base.SafeBalance(result)
}

// parseTransaction 充值 / 提现
//
//	{"id":1,"state":"confirmed","currency":"BTC","created_at":"2018-01-01T00:00:00.000Z",
//	 "amount":["0.1","BTC"],"fee":["0.0","BTC"],"deposit_data":{"tx_hash":"...","updated_at":"..."}}
func (b *Buda) parseTransaction(raw interface{}, currency *model.Currency) *model.Transaction {
	tx := &model.Transaction{Info: raw}
	tx.ID, _ = common.SafeString(raw, "id")
	if createdAt, ok := common.SafeString(raw, "created_at"); ok {
		tx.Timestamp, _ = types.Parse8601(createdAt)
	}
	currencyID, _ := common.SafeString(raw, "currency")
	tx.Currency = b.Registry().SafeCurrencyCode(currencyID, currency)
	tx.Amount = common.SafeDecimalIndex(raw, "amount", 0)
	if state, ok := common.SafeString(raw, "state"); ok {
		tx.Status, _ = transactionStatuses.Parse(state)
	}

	tx.Type = model.TransactionWithdrawal
	if _, ok := common.AsMap(raw)["deposit_data"]; ok {
		tx.Type = model.TransactionDeposit
	}
	data, _ := common.SafeMap(raw, tx.Type+"_data")
	tx.Address, _ = common.SafeString(data, "target_address")
	tx.TxID, _ = common.SafeString(data, "tx_hash")
	if updatedAt, ok := common.SafeString(data, "updated_at"); ok {
		tx.Updated, _ = types.Parse8601(updatedAt)
	}

	if feeCost := common.SafeDecimalIndex(raw, "fee", 0); feeCost.Valid {
		feeCurrency, _ := common.SafeStringIndex(raw, "fee", 1)
		tx.Fee = &model.Fee{
			Cost:     feeCost,
			Currency: b.Registry().SafeCurrencyCode(feeCurrency, currency),
		}
	}
	return base.SafeTransaction(tx)
}

// parseTradingViewOHLCV {"s":"ok","t":[...],"o":[...],"h":[...],"l":[...],"c":[...],"v":[...]}，时间单位为秒
func parseTradingViewOHLCV(response interface{}) model.OHLCVs {
	times, _ := common.SafeList(response, "t")
	opens, _ := common.SafeList(response, "o")
	highs, _ := common.SafeList(response, "h")
	lows, _ := common.SafeList(response, "l")
	closes, _ := common.SafeList(response, "c")
	volumes, _ := common.SafeList(response, "v")

	out := make(model.OHLCVs, 0, len(times))
	for i := range times {
		ts, ok := common.SafeTimestamp(times, i)
		if !ok {
			continue
		}
		out = append(out, &model.OHLCV{
			Timestamp: ts,
			Open:      common.SafeDecimal(opens, i),
			High:      common.SafeDecimal(highs, i),
			Low:       common.SafeDecimal(lows, i),
			Close:     common.SafeDecimal(closes, i),
			Volume:    common.SafeDecimal(volumes, i),
		})
	}
	return out
}

// parseFundingFee {"fee":{"name":"withdrawal","percent":0,"base":["0.00001","BTC"]}}
func parseFundingFee(response interface{}) types.ExDecimal {
	fee, _ := common.SafeMap(response, "fee")
	return common.SafeDecimalIndex(fee, "base", 0)
}
