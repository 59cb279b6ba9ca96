package idex

import (
	"github.com/shopspring/decimal"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/types"
)

const defaultDecimals = 8

var orderStatuses = base.StatusMap{
	"active":          model.OrderStatusOpen,
	"partiallyFilled": model.OrderStatusOpen,
	"rejected":        model.OrderStatusCanceled,
	"filled":          model.OrderStatusClosed,
	"canceled":        model.OrderStatusCanceled,
}

var transactionStatuses = base.StatusMap{
	"mined":   model.TransactionStatusOK,
	"failed":  model.TransactionStatusFailed,
	"pending": model.TransactionStatusPending,
}

// tickFromDecimals 小数位数转换为最小变动单位，8 -> 0.00000001
func tickFromDecimals(raw interface{}, key string) types.ExDecimal {
	places, ok := common.SafeInteger(raw, key)
	if !ok {
		return types.ExDecimal{}
	}
	return types.ExDecimalFrom(decimal.New(1, -int32(places)))
}

func decimalsOf(raw interface{}, key string) int32 {
	if places, ok := common.SafeInteger(raw, key); ok {
		return int32(places)
	}
	return defaultDecimals
}

// fixedString 截断到 places 位小数并补零，接口要求数量和价格都是定长小数串
func fixedString(value string, places int32) (string, error) {
	d, err := decimal.NewFromString(value)
	if err != nil {
		return "", exerr.Newf(exerr.ErrBadRequest, idexName, "invalid number %q", value)
	}
	return d.Truncate(places).StringFixed(places), nil
}

// priceString 先按 tickSize 取整，再按计价币精度截断补零
func priceString(market *model.Market, price string) (string, error) {
	d, err := decimal.NewFromString(price)
	if err != nil {
		return "", exerr.Newf(exerr.ErrBadRequest, idexName, "invalid price %q", price)
	}
	if tick := market.Precision.Price; tick.Valid && tick.IsPositive() {
		d = d.Div(tick.Decimal).Round(0).Mul(tick.Decimal)
	}
	places := decimalsOf(market.Info, "quoteAssetPrecision")
	return d.Truncate(places).StringFixed(places), nil
}

// parseMarket
//
//	{"market":"DIL-ETH","status":"active","baseAsset":"DIL","baseAssetPrecision":8,"quoteAsset":"ETH","quoteAssetPrecision":8}
//
// exchangeInfo 为 GET exchange 的返回，提供费率和最小成交额
func (x *IDEX) parseMarket(raw, exchangeInfo interface{}, minCostETH types.ExDecimal) *model.Market {
	id, _ := common.SafeString(raw, "market")
	baseID, _ := common.SafeString(raw, "baseAsset")
	quoteID, _ := common.SafeString(raw, "quoteAsset")
	baseCode := x.Registry().SafeCurrencyCode(baseID, nil)
	quoteCode := x.Registry().SafeCurrencyCode(quoteID, nil)
	status, _ := common.SafeString(raw, "status")

	basePrecision := tickFromDecimals(raw, "baseAssetPrecision")
	quotePrecision := common.SafeDecimal(raw, "tickSize").Or(tickFromDecimals(raw, "quoteAssetPrecision"))
	var minCost types.ExDecimal
	if quoteCode == "ETH" {
		minCost = minCostETH
	}

	return &model.Market{
		ID:      id,
		Symbol:  common.NormalizeSymbol(baseCode, quoteCode),
		Base:    baseCode,
		Quote:   quoteCode,
		BaseID:  baseID,
		QuoteID: quoteID,
		Type:    model.MarketTypeSpot,
		Spot:    true,
		Active:  status != "inactive",
		Taker:   common.SafeDecimal(exchangeInfo, "takerFeeRate"),
		Maker:   common.SafeDecimal(exchangeInfo, "makerFeeRate"),
		Precision: model.MarketPrecision{
			Amount: basePrecision,
			Price:  quotePrecision,
		},
		Limits: model.MarketLimits{
			Amount: model.MinMax{Min: basePrecision},
			Price:  model.MinMax{Min: quotePrecision},
			Cost:   model.MinMax{Min: minCost},
		},
		Info: raw,
	}
}

// parseCurrency
//
//	{"name":"Ether","symbol":"ETH","contractAddress":"0x0000000000000000000000000000000000000000","assetDecimals":18,"exchangeDecimals":8}
func (x *IDEX) parseCurrency(raw interface{}) *model.Currency {
	id, _ := common.SafeString(raw, "symbol")
	name, _ := common.SafeString(raw, "name")
	lot := tickFromDecimals(raw, "exchangeDecimals")
	return &model.Currency{
		ID:        id,
		Code:      x.Registry().SafeCurrencyCode(id, nil),
		Name:      name,
		Precision: lot,
		Limits: model.CurrencyLimits{
			Amount:   model.MinMax{Min: lot},
			Withdraw: model.MinMax{Min: lot},
		},
		Info: raw,
	}
}

// parseTicker
//
//	{"market":"DIL-ETH","time":1598367493008,"open":"0.09695361","high":"0.10245881","low":"0.09572507",
//	 "close":"0.09917079","baseVolume":"309.17380612","quoteVolume":"30.57633981","percentChange":"2.28",
//	 "ask":"0.09910476","bid":"0.09688340","sequence":3902}
func (x *IDEX) parseTicker(raw interface{}, market *model.Market) *model.Ticker {
	marketID, _ := common.SafeString(raw, "market")
	market = x.Registry().SafeMarket(marketID, market, "-")
	timestamp, _ := common.SafeInteger(raw, "time")
	closePrice := common.SafeDecimal(raw, "close")
	return base.SafeTicker(&model.Ticker{
		Symbol:      market.Symbol,
		Timestamp:   timestamp,
		High:        common.SafeDecimal(raw, "high"),
		Low:         common.SafeDecimal(raw, "low"),
		Bid:         common.SafeDecimal(raw, "bid"),
		Ask:         common.SafeDecimal(raw, "ask"),
		Open:        common.SafeDecimal(raw, "open"),
		Close:       closePrice,
		Last:        closePrice,
		Percentage:  common.SafeDecimal(raw, "percentChange"),
		BaseVolume:  common.SafeDecimal(raw, "baseVolume"),
		QuoteVolume: common.SafeDecimal(raw, "quoteVolume"),
		Info:        raw,
	})
}

// parseOHLCV
//
//	{"start":1598345580000,"open":"0.09771286","high":"0.09771286","low":"0.09771286","close":"0.09771286","volume":"1.45340410","sequence":3853}
func parseOHLCV(raw interface{}) *model.OHLCV {
	timestamp, _ := common.SafeInteger(raw, "start")
	return &model.OHLCV{
		Timestamp: timestamp,
		Open:      common.SafeDecimal(raw, "open"),
		High:      common.SafeDecimal(raw, "high"),
		Low:       common.SafeDecimal(raw, "low"),
		Close:     common.SafeDecimal(raw, "close"),
		Volume:    common.SafeDecimal(raw, "volume"),
	}
}

// parseTrade 公共成交只有 makerSide，私有成交带 side / liquidity / fee
//
//	{"fillId":"a4883704-850b-3c4b-8588-020b5e4c62f1","price":"0.20377008","quantity":"47.58448728",
//	 "quoteQuantity":"9.69629509","time":1642091300873,"makerSide":"buy","type":"hybrid","sequence":31876}
//	{"fillId":"83429066-9334-3582-b710-78858b2f0d6b","price":"0.20717368","quantity":"15.00000000",
//	 "quoteQuantity":"3.10760523","time":1642083351215,"makerSide":"sell","market":"IDEX-USDC",
//	 "orderId":"4fe993f0-747b-11ec-bd08-79d4a0b6e47c","side":"buy","fee":"0.03749989","feeAsset":"IDEX",
//	 "liquidity":"taker","txId":"0x69f6","txStatus":"mined"}
func (x *IDEX) parseTrade(raw interface{}, market *model.Market) *model.Trade {
	marketID, _ := common.SafeString(raw, "market")
	market = x.Registry().SafeMarket(marketID, market, "-")
	timestamp, _ := common.SafeInteger(raw, "time")

	side, ok := common.SafeString(raw, "side")
	if !ok {
		side = "buy"
		if makerSide, _ := common.SafeString(raw, "makerSide"); makerSide == "buy" {
			side = "sell"
		}
	}

	trade := &model.Trade{
		Timestamp:    timestamp,
		Symbol:       market.Symbol,
		Type:         "limit",
		Side:         side,
		TakerOrMaker: model.TakerOrMaker(common.SafeStringOr(raw, "liquidity", string(model.Taker))),
		Price:        common.SafeDecimal(raw, "price"),
		Amount:       common.SafeDecimal(raw, "quantity"),
		Cost:         common.SafeDecimal(raw, "quoteQuantity"),
		Info:         raw,
	}
	trade.ID, _ = common.SafeString(raw, "fillId")
	trade.Order, _ = common.SafeString(raw, "orderId")
	if feeCost := common.SafeDecimal(raw, "fee"); feeCost.Valid {
		feeCurrencyID, _ := common.SafeString(raw, "feeAsset")
		trade.Fee = &model.Fee{
			Cost:     feeCost,
			Currency: x.Registry().SafeCurrencyCode(feeCurrencyID, nil),
		}
	}
	return base.SafeTrade(trade)
}

// parseOrder
//
//	{"market":"DIL-ETH","orderId":"7cdc8e90-eb7d-11ea-9e60-4118569f6e63","wallet":"0x0AB991497116f7F5532a4c2f4f7B1784488628e1",
//	 "time":1598873478650,"status":"filled","type":"limit","side":"buy","originalQuantity":"0.40000000",
//	 "executedQuantity":"0.40000000","cumulativeQuoteQuantity":"0.03962396","avgExecutionPrice":"0.09905990",
//	 "price":"1.00000000","fills":[...]}
func (x *IDEX) parseOrder(raw interface{}, market *model.Market) *model.Order {
	marketID, _ := common.SafeString(raw, "market")
	market = x.Registry().SafeMarket(marketID, market, "-")
	timestamp, _ := common.SafeInteger(raw, "time")

	order := &model.Order{
		Timestamp: timestamp,
		Symbol:    market.Symbol,
		Price:     common.SafeDecimal(raw, "price"),
		StopPrice: common.SafeDecimal(raw, "stopPrice"),
		Amount:    common.SafeDecimal(raw, "originalQuantity"),
		Filled:    common.SafeDecimal(raw, "executedQuantity"),
		Cost:      common.SafeDecimal(raw, "cumulativeQuoteQuantity"),
		Average:   common.SafeDecimal(raw, "avgExecutionPrice"),
		Info:      raw,
	}
	order.ID, _ = common.SafeString(raw, "orderId")
	order.ClientOrderID, _ = common.SafeString(raw, "clientOrderId")
	order.Type, _ = common.SafeString(raw, "type")
	order.Side, _ = common.SafeString(raw, "side")
	order.TimeInForce, _ = common.SafeStringUpper(raw, "timeInForce")
	if status, ok := common.SafeString(raw, "status"); ok {
		order.Status, _ = orderStatuses.Parse(status)
	}
	if fills, ok := common.SafeList(raw, "fills"); ok {
		order.Trades = make(model.Trades, 0, len(fills))
		for _, fill := range fills {
			trade := x.parseTrade(fill, market)
			if trade.Order == "" {
				trade.Order = order.ID
			}
			order.Trades = append(order.Trades, trade)
		}
	}
	return base.SafeOrder(order)
}

// parseBalance
//
//	[{"asset":"DIL","quantity":"0.00000000","availableForTrade":"0.00000000","locked":"0.00000000","usdValue":null}]
func (x *IDEX) parseBalance(raw interface{}) *model.Balances {
	balances := model.NewBalances(raw)
	for _, entry := range common.AsList(raw) {
		currencyID, _ := common.SafeString(entry, "asset")
		code := x.Registry().SafeCurrencyCode(currencyID, nil)
		balances.Currencies[code] = &model.Balance{
			Free:  common.SafeDecimal(entry, "availableForTrade"),
			Used:  common.SafeDecimal(entry, "locked"),
			Total: common.SafeDecimal(entry, "quantity"),
		}
	}
	return base.SafeBalance(balances)
}

// parseTransaction 充值带 depositId，提现带 withdrawalId，手续费以 ETH 计
//
//	{"depositId":"e9970cc0-eb6b-11ea-9e89-09a5ebc1f98f","asset":"ETH","quantity":"1.00000000",
//	 "txId":"0xcd4a","txTime":1598865853000,"confirmationTime":1598865930231}
//	{"withdrawalId":"a62d8760-ec4d-11ea-9fa6-47904c19499b","asset":"ETH","quantity":"0.20000000",
//	 "time":1598962883288,"fee":"0.00024000","txId":"0x305e","txStatus":"mined"}
func (x *IDEX) parseTransaction(raw interface{}, currency *model.Currency) *model.Transaction {
	currencyID, _ := common.SafeString(raw, "asset")
	tx := &model.Transaction{
		Currency: x.Registry().SafeCurrencyCode(currencyID, currency),
		Amount:   common.SafeDecimal(raw, "quantity"),
		Info:     raw,
	}
	if id, ok := common.SafeString(raw, "depositId"); ok {
		tx.ID = id
		tx.Type = model.TransactionDeposit
	} else if id, ok := common.SafeString2(raw, "withdrawalId", "withdrawId"); ok {
		tx.ID = id
		tx.Type = model.TransactionWithdrawal
	}
	tx.TxID, _ = common.SafeString(raw, "txId")
	tx.Timestamp, _ = common.SafeInteger2(raw, "txTime", "time")
	tx.Updated, _ = common.SafeInteger(raw, "confirmationTime")
	if status, ok := common.SafeString(raw, "txStatus"); ok {
		tx.Status, _ = transactionStatuses.Parse(status)
	}
	if feeCost := common.SafeDecimal(raw, "fee"); feeCost.Valid {
		tx.Fee = &model.Fee{Currency: "ETH", Cost: feeCost}
	}
	return base.SafeTransaction(tx)
}
