package hitbtc

import (
	"strings"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/types"
)

var orderStatuses = base.StatusMap{
	"new":             model.OrderStatusOpen,
	"suspended":       model.OrderStatusOpen,
	"partiallyFilled": model.OrderStatusOpen,
	"filled":          model.OrderStatusClosed,
	"canceled":        model.OrderStatusCanceled,
	"expired":         model.OrderStatusFailed,
}

var transactionStatuses = base.StatusMap{
	"CREATED":     model.TransactionStatusPending,
	"PENDING":     model.TransactionStatusPending,
	"FAILED":      model.TransactionStatusFailed,
	"ROLLED_BACK": model.TransactionStatusFailed,
	"SUCCESS":     model.TransactionStatusOK,
}

var transactionTypes = base.StatusMap{
	"DEPOSIT":  model.TransactionDeposit,
	"WITHDRAW": model.TransactionWithdrawal,
}

func parse8601(raw interface{}, key string) int64 {
	s, ok := common.SafeString(raw, key)
	if !ok {
		return 0
	}
	ts, _ := types.Parse8601(s)
	return ts
}

// parseMarket
//
//	"MANAUSDT": {"type":"spot","base_currency":"MANA","quote_currency":"USDT","quantity_increment":"1",
//	 "tick_size":"0.0000001","take_rate":"0.0025","make_rate":"0.001","fee_currency":"USDT","margin_trading":true}
func (h *HitBTC) parseMarket(id string, raw interface{}) *model.Market {
	marketType, _ := common.SafeString(raw, "type")
	baseID, _ := common.SafeString2(raw, "base_currency", "underlying")
	quoteID, _ := common.SafeString(raw, "quote_currency")
	baseCode := h.Registry().SafeCurrencyCode(baseID, nil)
	quoteCode := h.Registry().SafeCurrencyCode(quoteID, nil)

	lot, _ := common.SafeString(raw, "quantity_increment")
	step, _ := common.SafeString(raw, "tick_size")
	var costMin types.ExDecimal
	if lot != "" && step != "" {
		if c, err := common.PreciseMul(lot, step); err == nil {
			costMin = types.NewExDecimal(c)
		}
	}

	market := &model.Market{
		ID:      id,
		Symbol:  common.NormalizeSymbol(baseCode, quoteCode),
		Base:    baseCode,
		Quote:   quoteCode,
		BaseID:  baseID,
		QuoteID: quoteID,
		Type:    model.MarketTypeSpot,
		Spot:    marketType == "spot",
		Active:  true,
		Taker:   common.SafeDecimal(raw, "take_rate"),
		Maker:   common.SafeDecimal(raw, "make_rate"),
		Precision: model.MarketPrecision{
			Amount: types.NewExDecimal(lot),
			Price:  types.NewExDecimal(step),
		},
		Limits: model.MarketLimits{
			Amount:   model.MinMax{Min: types.NewExDecimal(lot)},
			Price:    model.MinMax{Min: types.NewExDecimal(step)},
			Cost:     model.MinMax{Min: costMin},
			Leverage: model.MinMax{Min: types.NewExDecimal("1"), Max: common.SafeDecimal(raw, "max_initial_leverage").Or(types.NewExDecimal("1"))},
		},
		Info: raw,
	}

	if marketType == "futures" {
		settleID, _ := common.SafeString(raw, "fee_currency")
		settle := h.Registry().SafeCurrencyCode(settleID, nil)
		market.Contract = true
		market.Settle = settle
		market.SettleID = settleID
		market.ContractSize = types.NewExDecimal("1")
		market.Linear = quoteCode != "" && quoteCode == settle
		market.Inverse = !market.Linear
		market.Symbol = common.NormalizeContractSymbol(baseCode, quoteCode, settle)
		market.Type = model.MarketTypeSwap
		if expiry, ok := common.SafeString(raw, "expiry"); ok {
			market.Type = model.MarketTypeFuture
			market.Symbol += "-" + expiry
		}
	}
	return market
}

// parseCurrency
//
//	"USDT": {"full_name":"Tether","payin_enabled":true,"payout_enabled":true,"transfer_enabled":true,
//	 "precision_transfer":"0.01","networks":[{"network":"ETH","protocol":"ERC20","payout_fee":"10","precision_payout":"0.01"}]}
func (h *HitBTC) parseCurrency(id string, raw interface{}) *model.Currency {
	payin := common.SafeBoolOr(raw, "payin_enabled", false)
	payout := common.SafeBoolOr(raw, "payout_enabled", false)
	transfer := common.SafeBoolOr(raw, "transfer_enabled", false)
	name, _ := common.SafeString(raw, "full_name")

	currency := &model.Currency{
		ID:        id,
		Code:      h.Registry().SafeCurrencyCode(id, nil),
		Name:      name,
		Precision: common.SafeDecimal(raw, "precision_transfer"),
		Active:    payin && payout && transfer,
		Deposit:   payin,
		Withdraw:  payout,
		Networks:  make(map[string]*model.Network),
		Info:      raw,
	}

	rawNetworks, _ := common.SafeList(raw, "networks")
	var fee types.ExDecimal
	for _, rawNetwork := range rawNetworks {
		networkID, _ := common.SafeString(rawNetwork, "protocol")
		if networkID == "" {
			networkID, _ = common.SafeString(rawNetwork, "network")
		}
		network := strings.ToUpper(networkID)
		fee = common.SafeDecimal(rawNetwork, "payout_fee")
		currency.Networks[network] = &model.Network{
			ID:        networkID,
			Network:   network,
			Active:    payin && payout,
			Deposit:   payin,
			Withdraw:  payout,
			Fee:       fee,
			Precision: common.SafeDecimal(rawNetwork, "precision_payout"),
			Info:      rawNetwork,
		}
	}
	if len(currency.Networks) <= 1 {
		currency.Fee = fee
	}
	return currency
}

// parseBalance 只有 available / reserved，total 保持缺失
//
//	[{"currency":"PAXG","available":"0","reserved":"0","reserved_margin":"0"}]
func (h *HitBTC) parseBalance(raw interface{}) *model.Balances {
	balances := model.NewBalances(raw)
	for _, entry := range common.AsList(raw) {
		currencyID, _ := common.SafeString(entry, "currency")
		code := h.Registry().SafeCurrencyCode(currencyID, nil)
		balances.Currencies[code] = &model.Balance{
			Free: common.SafeDecimal(entry, "available"),
			Used: common.SafeDecimal(entry, "reserved"),
		}
	}
	return base.SafeBalance(balances)
}

// parseTicker
//
//	{"ask":"62756.01","bid":"62754.09","last":"62755.87","low":"62010.00","high":"66657.99","open":"65089.27",
//	 "volume":"16719.50366","volume_quote":"1063422878.8156828","timestamp":"2021-10-22T07:29:14.585Z"}
func (h *HitBTC) parseTicker(raw interface{}, market *model.Market) *model.Ticker {
	last := common.SafeDecimal(raw, "last")
	ticker := &model.Ticker{
		Timestamp:   parse8601(raw, "timestamp"),
		High:        common.SafeDecimal(raw, "high"),
		Low:         common.SafeDecimal(raw, "low"),
		Bid:         common.SafeDecimal(raw, "bid"),
		Ask:         common.SafeDecimal(raw, "ask"),
		Open:        common.SafeDecimal(raw, "open"),
		Close:       last,
		Last:        last,
		BaseVolume:  common.SafeDecimal(raw, "volume"),
		QuoteVolume: common.SafeDecimal(raw, "volume_quote"),
		Info:        raw,
	}
	if market != nil {
		ticker.Symbol = market.Symbol
	}
	return base.SafeTicker(ticker)
}

// parseTrade 公共成交 / 私有成交 / 下单返回的成交
//
//	{"id":974786185,"price":"0.032462","qty":"0.3673","side":"buy","timestamp":"2020-10-16T12:57:39.846Z"}
//	{"id":277210397,"clientOrderId":"6e102f3e","orderId":28102855393,"symbol":"ETHBTC","side":"sell",
//	 "quantity":"0.002","price":"0.073365","fee":"0.000000147","timestamp":"2018-04-28T18:39:55.345Z","taker":true}
func (h *HitBTC) parseTrade(raw interface{}, market *model.Market) *model.Trade {
	marketID, _ := common.SafeString(raw, "symbol")
	market = h.Registry().SafeMarket(marketID, market, "")

	trade := &model.Trade{
		Timestamp: parse8601(raw, "timestamp"),
		Symbol:    market.Symbol,
		Price:     common.SafeDecimal(raw, "price"),
		Amount:    common.SafeDecimal2(raw, "quantity", "qty"),
		Info:      raw,
	}
	trade.ID, _ = common.SafeString(raw, "id")
	// 交易所接口以 clientOrderId 作为订单标识
	trade.Order, _ = common.SafeString2(raw, "clientOrderId", "client_order_id")
	trade.Side, _ = common.SafeString(raw, "side")
	if taker, ok := common.SafeBool(raw, "taker"); ok {
		trade.TakerOrMaker = model.Maker
		if taker {
			trade.TakerOrMaker = model.Taker
		}
	}
	if feeCost := common.SafeDecimal(raw, "fee"); feeCost.Valid {
		feeCurrencyID, _ := common.SafeString(market.Info, "fee_currency")
		trade.Fee = &model.Fee{
			Cost:     feeCost,
			Currency: h.Registry().SafeCurrencyCode(feeCurrencyID, nil),
		}
	}
	return base.SafeTrade(trade)
}

// parseOrder 订单 ID 使用 client_order_id
//
//	{"id":488953123149,"client_order_id":"103ad305301e4c3590045b13de15b36e","symbol":"BTCUSDT","side":"buy",
//	 "status":"new","type":"limit","time_in_force":"GTC","quantity":"0.00001","quantity_cumulative":"0",
//	 "price":"0.01","price_average":"0.01","post_only":false,"created_at":"2021-04-13T13:06:16.567Z",
//	 "updated_at":"2021-04-13T13:06:16.567Z"}
func (h *HitBTC) parseOrder(raw interface{}, market *model.Market) *model.Order {
	marketID, _ := common.SafeString(raw, "symbol")
	market = h.Registry().SafeMarket(marketID, market, "")

	order := &model.Order{
		Timestamp: parse8601(raw, "created_at"),
		Symbol:    market.Symbol,
		Price:     common.SafeDecimal(raw, "price"),
		Amount:    common.SafeDecimal(raw, "quantity"),
		Filled:    common.SafeDecimal(raw, "quantity_cumulative"),
		Average:   common.SafeDecimal(raw, "price_average"),
		Info:      raw,
	}
	order.ID, _ = common.SafeString(raw, "client_order_id")
	order.ClientOrderID = order.ID
	order.Type, _ = common.SafeString(raw, "type")
	order.Side, _ = common.SafeString(raw, "side")
	order.TimeInForce, _ = common.SafeString(raw, "time_in_force")
	if status, ok := common.SafeString(raw, "status"); ok {
		order.Status, _ = orderStatuses.Parse(status)
	}
	created, _ := common.SafeString(raw, "created_at")
	if updated, ok := common.SafeString(raw, "updated_at"); ok && updated != created {
		order.LastTradeTimestamp, _ = types.Parse8601(updated)
	}
	if postOnly, ok := common.SafeBool(raw, "post_only"); ok {
		order.PostOnly = &postOnly
	}
	if rawTrades, ok := common.SafeList(raw, "trades"); ok {
		order.Trades = make(model.Trades, 0, len(rawTrades))
		for _, t := range rawTrades {
			order.Trades = append(order.Trades, h.parseTrade(t, market))
		}
	}
	return base.SafeOrder(order)
}

// parseTransaction
//
//	{"id":"101609495","created_at":"2018-03-06T22:05:06.507Z","updated_at":"2018-03-06T22:11:45.03Z",
//	 "status":"SUCCESS","type":"DEPOSIT","native":{"tx_id":"e20b0965","currency":"ETH","amount":"0.01418088",
//	 "hash":"d95dbbff","address":"0xd925","senders":["0x243b"]}}
func (h *HitBTC) parseTransaction(raw interface{}) *model.Transaction {
	native, _ := common.SafeMap(raw, "native")
	currencyID, _ := common.SafeString(native, "currency")
	code := h.Registry().SafeCurrencyCode(currencyID, nil)

	tx := &model.Transaction{
		Timestamp: parse8601(raw, "created_at"),
		Updated:   parse8601(raw, "updated_at"),
		Currency:  code,
		Amount:    common.SafeDecimal(native, "amount"),
		Info:      raw,
	}
	tx.ID, _ = common.SafeString(raw, "id")
	tx.TxID, _ = common.SafeString(native, "hash")
	tx.Address, _ = common.SafeString(native, "address")
	tx.AddressTo = tx.Address
	tx.Tag, _ = common.SafeString(native, "payment_id")
	tx.TagTo = tx.Tag
	if kind, ok := common.SafeString(raw, "type"); ok {
		tx.Type, _ = transactionTypes.Parse(kind)
	}
	if status, ok := common.SafeString(raw, "status"); ok {
		tx.Status, _ = transactionStatuses.Parse(status)
	}
	if feeCost := common.SafeDecimal(native, "fee"); feeCost.Valid {
		tx.Fee = &model.Fee{Currency: code, Cost: feeCost}
	}
	return base.SafeTransaction(tx)
}

// parseTradingFee
//
//	{"symbol":"ARVUSDT","take_rate":"0.0009","make_rate":"0.0009"}
func (h *HitBTC) parseTradingFee(raw interface{}, market *model.Market) *model.TradingFee {
	marketID, _ := common.SafeString(raw, "symbol")
	return &model.TradingFee{
		Symbol: h.Registry().SafeSymbol(marketID, market, ""),
		Taker:  common.SafeDecimal(raw, "take_rate"),
		Maker:  common.SafeDecimal(raw, "make_rate"),
		Info:   raw,
	}
}

// parseOHLCV
//
//	{"timestamp":"2015-08-20T19:01:00.000Z","open":"0.006","close":"0.006","min":"0.006","max":"0.006","volume":"0.003"}
func parseOHLCV(raw interface{}) *model.OHLCV {
	return &model.OHLCV{
		Timestamp: parse8601(raw, "timestamp"),
		Open:      common.SafeDecimal(raw, "open"),
		High:      common.SafeDecimal(raw, "max"),
		Low:       common.SafeDecimal(raw, "min"),
		Close:     common.SafeDecimal(raw, "close"),
		Volume:    common.SafeDecimal(raw, "volume"),
	}
}
