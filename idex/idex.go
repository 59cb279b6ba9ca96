package idex

import (
	"context"
	"errors"
	"strings"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exchange"
	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/option"
	"github.com/lemconn/exnorm/types"
)

var timeframes = model.TimeframeMap{
	model.Timeframe1m:  "1m",
	model.Timeframe5m:  "5m",
	model.Timeframe15m: "15m",
	model.Timeframe30m: "30m",
	model.Timeframe1h:  "1h",
	model.Timeframe6h:  "6h",
	model.Timeframe1d:  "1d",
}

var (
	orderTypes = map[string]byte{
		"market":     0,
		"limit":      1,
		"limitMaker": 2,
		// 以下为触发单，签名时在价格之后追加触发价
		"stopLoss":        3,
		"stopLossLimit":   4,
		"takeProfit":      5,
		"takeProfitLimit": 6,
	}
	timeInForces = map[string]byte{
		"gtc": 0,
		"ioc": 2,
		"fok": 3,
	}
	selfTradePreventions = map[string]byte{
		"dc": 0,
		"co": 1,
		"cn": 2,
		"cb": 3,
	}
)

// IDEX IDEX 交易所实现（v1 接口，钱包签名交易）
type IDEX struct {
	*base.BaseExchange
	config Config
}

// NewIDEX 创建 IDEX 交易所实例
func NewIDEX(options *option.ExchangeOptions) (exchange.Exchange, error) {
	return New(options)
}

// New 创建 IDEX 交易所实例（具体类型）
func New(options *option.ExchangeOptions) (*IDEX, error) {
	cfg := configFrom(options)
	client, err := NewClient(options, cfg)
	if err != nil {
		return nil, err
	}

	x := &IDEX{
		BaseExchange: base.NewBaseExchange(idexName, client),
		config:       cfg,
	}
	x.SetSigner(NewSigner(client))
	x.SetErrorHandler(handleErrors)
	x.SetRequiredCredentials(base.RequiredCredentials{
		APIKey:        true,
		Secret:        true,
		WalletAddress: true,
		PrivateKey:    true,
	})
	x.SetRegistry(base.NewRegistry(idexName, x.FetchMarkets, x.FetchCurrencies))
	x.SetFeatures(
		exchange.FeatureFetchMarkets,
		exchange.FeatureFetchCurrencies,
		exchange.FeatureFetchTicker,
		exchange.FeatureFetchTickers,
		exchange.FeatureFetchOrderBook,
		exchange.FeatureFetchTrades,
		exchange.FeatureFetchOHLCV,
		exchange.FeatureFetchBalance,
		exchange.FeatureFetchTradingFees,
		exchange.FeatureFetchOrder,
		exchange.FeatureFetchOpenOrders,
		exchange.FeatureFetchClosedOrders,
		exchange.FeatureFetchMyTrades,
		exchange.FeatureCreateOrder,
		exchange.FeatureCancelOrder,
		exchange.FeatureFetchDeposits,
		exchange.FeatureFetchWithdrawals,
		exchange.FeatureWithdraw,
	)
	return x, nil
}

var _ exchange.Exchange = (*IDEX)(nil)

// privateGet 每次请求生成新的 nonce
func (x *IDEX) privateGet(ctx context.Context, path string, request map[string]interface{}) (interface{}, error) {
	nonce, err := common.UUIDv1()
	if err != nil {
		return nil, err
	}
	params := make(map[string]interface{}, len(request)+1)
	for k, v := range request {
		params[k] = v
	}
	params["nonce"] = nonce
	return x.Request(ctx, base.Private, "GET", path, params)
}

// walletRequest 钱包查询类请求的公共参数：wallet / market / start / limit
func (x *IDEX) walletRequest(ctx context.Context, symbol string, args *option.ExchangeArgsOptions) (*model.Market, map[string]interface{}, error) {
	if err := x.CheckRequiredCredentials(); err != nil {
		return nil, nil, err
	}
	if _, err := x.LoadMarkets(ctx, false); err != nil {
		return nil, nil, err
	}
	request := map[string]interface{}{
		"wallet": x.Client().WalletAddress,
	}
	var market *model.Market
	if symbol != "" {
		m, err := x.Market(symbol)
		if err != nil {
			return nil, nil, err
		}
		market = m
		request["market"] = market.ID
	}
	if since := args.SinceMillis(); since > 0 {
		request["start"] = since
	}
	if args.Limit != nil {
		request["limit"] = *args.Limit
	}
	return market, args.MergeParams(request), nil
}

// withWalletAssociation 钱包未关联（ErrInvalidAddress）时先关联再重试一次
func (x *IDEX) withWalletAssociation(ctx context.Context, wallet string, call func() (interface{}, error)) (interface{}, error) {
	resp, err := call()
	if err == nil || !errors.Is(err, exerr.ErrInvalidAddress) {
		return resp, err
	}
	x.Logf("wallet %s is not associated, associating and retrying", wallet)
	if _, err := x.associateWallet(ctx, wallet); err != nil {
		return nil, err
	}
	return call()
}

// associateWallet 将钱包关联到 API 账户
func (x *IDEX) associateWallet(ctx context.Context, wallet string) (interface{}, error) {
	nonce, err := common.UUIDv1()
	if err != nil {
		return nil, err
	}
	var payload walletPayload
	if err := payload.writeNonce(nonce); err != nil {
		return nil, err
	}
	if err := payload.writeWallet(wallet); err != nil {
		return nil, err
	}
	signature, err := payload.sign(x.Client().PrivateKey)
	if err != nil {
		return nil, err
	}
	return x.Request(ctx, base.Private, "POST", "wallets", map[string]interface{}{
		"parameters": map[string]interface{}{
			"nonce":  nonce,
			"wallet": wallet,
		},
		"signature": signature,
	})
}

// ========== 市场数据 ==========

// FetchMarkets 获取市场列表，费率和最小成交额来自 GET exchange
func (x *IDEX) FetchMarkets(ctx context.Context) ([]*model.Market, error) {
	resp, err := x.Request(ctx, base.Public, "GET", "markets", nil)
	if err != nil {
		return nil, err
	}
	exchangeInfo, err := x.Request(ctx, base.Public, "GET", "exchange", nil)
	if err != nil {
		return nil, err
	}

	var minCostETH types.ExDecimal
	makerMin, _ := common.SafeString(exchangeInfo, "makerTradeMinimum")
	takerMin, _ := common.SafeString(exchangeInfo, "takerTradeMinimum")
	if makerMin != "" && takerMin != "" {
		if m, err := common.PreciseMin(makerMin, takerMin); err == nil {
			minCostETH = types.NewExDecimal(m)
		}
	}

	list := common.AsList(resp)
	markets := make([]*model.Market, 0, len(list))
	for _, item := range list {
		markets = append(markets, x.parseMarket(item, exchangeInfo, minCostETH))
	}
	return markets, nil
}

// FetchCurrencies 获取币种列表
func (x *IDEX) FetchCurrencies(ctx context.Context) ([]*model.Currency, error) {
	resp, err := x.Request(ctx, base.Public, "GET", "assets", nil)
	if err != nil {
		return nil, err
	}
	list := common.AsList(resp)
	currencies := make([]*model.Currency, 0, len(list))
	for _, item := range list {
		currencies = append(currencies, x.parseCurrency(item))
	}
	return currencies, nil
}

// FetchTicker 获取行情
func (x *IDEX) FetchTicker(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.Ticker, error) {
	market, err := x.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := x.Request(ctx, base.Public, "GET", "tickers", args.MergeParams(map[string]interface{}{
		"market": market.ID,
	}))
	if err != nil {
		return nil, err
	}
	first, ok := common.SafeValue(resp, 0)
	if !ok {
		return nil, exerr.Newf(exerr.ErrBadSymbol, idexName, "no ticker for %s", symbol)
	}
	return x.parseTicker(first, market), nil
}

// FetchTickers 批量获取行情，WithSymbols 为空时返回全部
func (x *IDEX) FetchTickers(ctx context.Context, opts ...option.ArgsOption) (model.Tickers, error) {
	if _, err := x.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := x.Request(ctx, base.Public, "GET", "tickers", args.MergeParams(nil))
	if err != nil {
		return nil, err
	}
	wanted := make(map[string]bool, len(args.Symbols))
	for _, symbol := range args.Symbols {
		wanted[symbol] = true
	}
	tickers := make(model.Tickers)
	for _, item := range common.AsList(resp) {
		ticker := x.parseTicker(item, nil)
		if len(wanted) > 0 && !wanted[ticker.Symbol] {
			continue
		}
		tickers[ticker.Symbol] = ticker
	}
	return tickers, nil
}

// FetchOrderBook 获取 L2 订单簿，条目为 [price, amount, orderCount]，sequence 作为 nonce
func (x *IDEX) FetchOrderBook(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.OrderBook, error) {
	market, err := x.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"market": market.ID,
		"level":  2,
	}
	if args.Limit != nil {
		request["limit"] = *args.Limit
	}
	resp, err := x.Request(ctx, base.Public, "GET", "orderbook", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	var nonce *int64
	if sequence, ok := common.SafeInteger(resp, "sequence"); ok {
		nonce = &sequence
	}
	bids := base.ParseBidsAsks(common.AsMap(resp)["bids"], 0, 1)
	asks := base.ParseBidsAsks(common.AsMap(resp)["asks"], 0, 1)
	return base.NewOrderBook(market.Symbol, bids, asks, 0, nonce), nil
}

// FetchTrades 获取公共成交
func (x *IDEX) FetchTrades(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Trades, error) {
	market, err := x.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"market": market.ID,
	}
	if since := args.SinceMillis(); since > 0 {
		request["start"] = since
	}
	if args.Limit != nil {
		request["limit"] = *args.Limit
	}
	resp, err := x.Request(ctx, base.Public, "GET", "trades", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	return x.parseTrades(resp, market, args), nil
}

func (x *IDEX) parseTrades(raw interface{}, market *model.Market, args *option.ExchangeArgsOptions) model.Trades {
	list := common.AsList(raw)
	trades := make(model.Trades, 0, len(list))
	for _, item := range list {
		trades = append(trades, x.parseTrade(item, market))
	}
	return base.FilterBySinceLimit(trades, base.TradeTimestamp, args.SinceMillis(), args.LimitOr(0))
}

// FetchOHLCV 获取K线，没有数据时接口返回 {"nextTime":...}
func (x *IDEX) FetchOHLCV(ctx context.Context, symbol string, timeframe string, opts ...option.ArgsOption) (model.OHLCVs, error) {
	market, err := x.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	interval, ok := timeframes.Get(common.NormalizeTimeframe(timeframe))
	if !ok {
		return nil, exerr.Newf(exerr.ErrBadRequest, idexName, "unsupported timeframe %s", timeframe)
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"market":   market.ID,
		"interval": interval,
	}
	if since := args.SinceMillis(); since > 0 {
		request["start"] = since
	}
	if args.Limit != nil {
		request["limit"] = *args.Limit
	}
	resp, err := x.Request(ctx, base.Public, "GET", "candles", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	list := common.AsList(resp)
	candles := make(model.OHLCVs, 0, len(list))
	for _, item := range list {
		candles = append(candles, parseOHLCV(item))
	}
	return base.FilterBySinceLimit(candles, base.OHLCVTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// ========== 账户信息 ==========

// FetchBalance 获取钱包余额
func (x *IDEX) FetchBalance(ctx context.Context, opts ...option.ArgsOption) (*model.Balances, error) {
	args := option.ApplyArgs(opts...)
	if err := x.CheckRequiredCredentials(); err != nil {
		return nil, err
	}
	if _, err := x.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	request := args.MergeParams(map[string]interface{}{
		"wallet": x.Client().WalletAddress,
	})
	wallet, _ := common.SafeString(request, "wallet")
	resp, err := x.withWalletAssociation(ctx, wallet, func() (interface{}, error) {
		return x.privateGet(ctx, "balances", request)
	})
	if err != nil {
		return nil, err
	}
	return x.parseBalance(resp), nil
}

// FetchTradingFees 账户费率对所有交易对相同
func (x *IDEX) FetchTradingFees(ctx context.Context, opts ...option.ArgsOption) (model.TradingFees, error) {
	if err := x.CheckRequiredCredentials(); err != nil {
		return nil, err
	}
	if _, err := x.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := x.privateGet(ctx, "user", args.MergeParams(nil))
	if err != nil {
		return nil, err
	}
	maker := common.SafeDecimal(resp, "makerFeeRate")
	taker := common.SafeDecimal(resp, "takerFeeRate")
	fees := make(model.TradingFees)
	for _, symbol := range x.Registry().Symbols() {
		fees[symbol] = &model.TradingFee{
			Symbol: symbol,
			Maker:  maker,
			Taker:  taker,
			Info:   resp,
		}
	}
	return fees, nil
}

// FetchMyTrades 查询钱包成交
func (x *IDEX) FetchMyTrades(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Trades, error) {
	args := option.ApplyArgs(opts...)
	market, request, err := x.walletRequest(ctx, symbol, args)
	if err != nil {
		return nil, err
	}
	wallet, _ := common.SafeString(request, "wallet")
	resp, err := x.withWalletAssociation(ctx, wallet, func() (interface{}, error) {
		return x.privateGet(ctx, "fills", request)
	})
	if err != nil {
		return nil, err
	}
	return x.parseTrades(resp, market, args), nil
}

// ========== 订单操作 ==========

// FetchOrder 按 orderId 查询订单
func (x *IDEX) FetchOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error) {
	args := option.ApplyArgs(append(opts, option.WithParam("orderId", id))...)
	orders, err := x.fetchOrders(ctx, symbol, args)
	if err != nil {
		return nil, err
	}
	if len(orders) == 0 {
		return nil, exerr.Newf(exerr.ErrOrderNotFound, idexName, "order %s not found", id)
	}
	return orders[0], nil
}

// FetchOpenOrders 查询当前挂单
func (x *IDEX) FetchOpenOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	return x.fetchOrders(ctx, symbol, option.ApplyArgs(append(opts, option.WithParam("closed", false))...))
}

// FetchClosedOrders 查询已完成订单
func (x *IDEX) FetchClosedOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	return x.fetchOrders(ctx, symbol, option.ApplyArgs(append(opts, option.WithParam("closed", true))...))
}

// fetchOrders 带 orderId 时接口返回单个对象，否则返回数组
func (x *IDEX) fetchOrders(ctx context.Context, symbol string, args *option.ExchangeArgsOptions) (model.Orders, error) {
	market, request, err := x.walletRequest(ctx, symbol, args)
	if err != nil {
		return nil, err
	}
	resp, err := x.privateGet(ctx, "orders", request)
	if err != nil {
		return nil, err
	}
	if obj, ok := resp.(map[string]interface{}); ok {
		return model.Orders{x.parseOrder(obj, market)}, nil
	}
	list := common.AsList(resp)
	orders := make(model.Orders, 0, len(list))
	for _, item := range list {
		orders = append(orders, x.parseOrder(item, market))
	}
	return base.FilterBySinceLimit(orders, base.OrderTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// CreateOrder 创建订单，参数由钱包私钥签名
// WithPostOnly(true) 下 limitMaker 单；WithParam("quoteOrderQuantity", ...) 按计价币数量下市价单；
// WithParam("selfTradePrevention", ...) 覆盖默认自成交保护；
// 止损 / 止盈单用 WithStopPrice 设置触发价，stopLoss / takeProfit 未设置时取 WithPrice
func (x *IDEX) CreateOrder(ctx context.Context, symbol string, orderType option.OrderType, side option.OrderSide, amount string, opts ...option.ArgsOption) (*model.Order, error) {
	if err := x.CheckRequiredCredentials(); err != nil {
		return nil, err
	}
	market, err := x.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)

	kind := orderType.String()
	if orderType.IsLimit() && args.PostOnly != nil && *args.PostOnly {
		kind = "limitMaker"
	}
	typeEnum, ok := orderTypes[kind]
	if !ok {
		return nil, exerr.Newf(exerr.ErrBadRequest, idexName, "%s is not a valid order type", kind)
	}
	isLimit := strings.Contains(strings.ToLower(kind), "limit")
	isStop := typeEnum >= orderTypes["stopLoss"]

	var price string
	if isLimit {
		if args.Price == nil {
			return nil, exerr.New(exerr.ErrArgumentsRequired, idexName, "limit order requires price")
		}
		if price, err = priceString(market, *args.Price); err != nil {
			return nil, err
		}
	}
	if args.StopPrice == nil {
		if v, ok := args.PopParam("stopPrice"); ok {
			s, _ := types.FormatValue(v)
			args.StopPrice = &s
		}
	}
	var stopPrice string
	if isStop {
		switch {
		case args.StopPrice != nil:
			if stopPrice, err = priceString(market, *args.StopPrice); err != nil {
				return nil, err
			}
		case !isLimit && args.Price != nil:
			if stopPrice, err = priceString(market, *args.Price); err != nil {
				return nil, err
			}
		default:
			return nil, exerr.Newf(exerr.ErrArgumentsRequired, idexName, "stopPrice is required for %s orders", kind)
		}
	}

	amountKey := "quantity"
	amountEnum := byte(0)
	if v, ok := args.PopParam("quoteOrderQuantity"); ok {
		if !orderType.IsMarket() {
			return nil, exerr.Newf(exerr.ErrNotSupported, idexName, "quoteOrderQuantity is only supported for market orders, not %s", kind)
		}
		s, _ := types.FormatValue(v)
		amount = s
		amountKey = "quoteOrderQuantity"
		amountEnum = 1
	}
	quantity, err := fixedString(amount, decimalsOf(market.Info, "baseAssetPrecision"))
	if err != nil {
		return nil, err
	}

	timeInForce := x.config.DefaultTimeInForce
	if args.TimeInForce != nil {
		timeInForce = args.TimeInForce.Lower()
	}
	tifEnum, ok := timeInForces[timeInForce]
	if !ok {
		return nil, exerr.Newf(exerr.ErrBadRequest, idexName, "%s is not a valid timeInForce, please choose one of gtc, ioc, fok", timeInForce)
	}
	stp := x.config.DefaultSelfTradePrevention
	if v, ok := args.PopParam("selfTradePrevention"); ok {
		stp, _ = types.FormatValue(v)
	}
	stpEnum, ok := selfTradePreventions[stp]
	if !ok {
		return nil, exerr.Newf(exerr.ErrBadRequest, idexName, "%s is not a valid selfTradePrevention, please choose one of dc, co, cn, cb", stp)
	}
	version, ok := orderVersions[x.config.Network]
	if !ok {
		return nil, exerr.Newf(exerr.ErrNotSupported, idexName, "network %s is not supported", x.config.Network)
	}

	nonce, err := common.UUIDv1()
	if err != nil {
		return nil, err
	}
	wallet := x.Client().WalletAddress
	sideEnum := byte(0)
	if side == option.Sell {
		sideEnum = 1
	}

	var payload walletPayload
	payload.WriteByte(version)
	if err := payload.writeNonce(nonce); err != nil {
		return nil, err
	}
	if err := payload.writeWallet(wallet); err != nil {
		return nil, err
	}
	payload.WriteString(market.ID)
	payload.WriteByte(typeEnum)
	payload.WriteByte(sideEnum)
	payload.WriteString(quantity)
	payload.WriteByte(amountEnum)
	if isLimit {
		payload.WriteString(price)
	}
	if isStop {
		payload.WriteString(stopPrice)
	}
	if args.ClientOrderID != nil {
		payload.WriteString(*args.ClientOrderID)
	}
	payload.WriteByte(tifEnum)
	payload.WriteByte(stpEnum)
	payload.Write(make([]byte, 8))
	signature, err := payload.sign(x.Client().PrivateKey)
	if err != nil {
		return nil, err
	}

	parameters := map[string]interface{}{
		"nonce":               nonce,
		"market":              market.ID,
		"side":                side.String(),
		"type":                kind,
		"wallet":              wallet,
		"selfTradePrevention": stp,
		amountKey:             quantity,
	}
	if kind != "market" {
		parameters["timeInForce"] = timeInForce
	}
	if isLimit {
		parameters["price"] = price
	}
	if isStop {
		parameters["stopPrice"] = stopPrice
	}
	if args.ClientOrderID != nil {
		parameters["clientOrderId"] = *args.ClientOrderID
	}
	// 签名参数不能再合并透传参数
	resp, err := x.Request(ctx, base.Private, "POST", "orders", map[string]interface{}{
		"parameters": parameters,
		"signature":  signature,
	})
	if err != nil {
		return nil, err
	}
	return x.parseOrder(resp, market), nil
}

// CancelOrder 取消订单，签名内容为 nonce + wallet + orderId
func (x *IDEX) CancelOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error) {
	if err := x.CheckRequiredCredentials(); err != nil {
		return nil, err
	}
	var market *model.Market
	if symbol != "" {
		m, err := x.LoadMarket(ctx, symbol)
		if err != nil {
			return nil, err
		}
		market = m
	}
	nonce, err := common.UUIDv1()
	if err != nil {
		return nil, err
	}
	wallet := x.Client().WalletAddress
	var payload walletPayload
	if err := payload.writeNonce(nonce); err != nil {
		return nil, err
	}
	if err := payload.writeWallet(wallet); err != nil {
		return nil, err
	}
	payload.WriteString(id)
	signature, err := payload.sign(x.Client().PrivateKey)
	if err != nil {
		return nil, err
	}

	args := option.ApplyArgs(opts...)
	resp, err := x.Request(ctx, base.Private, "DELETE", "orders", args.MergeParams(map[string]interface{}{
		"parameters": map[string]interface{}{
			"nonce":   nonce,
			"wallet":  wallet,
			"orderId": id,
		},
		"signature": signature,
	}))
	if err != nil {
		return nil, err
	}
	canceled, ok := common.SafeValue(resp, 0)
	if !ok {
		return nil, exerr.Newf(exerr.ErrOrderNotFound, idexName, "order %s not found", id)
	}
	return x.parseOrder(canceled, market), nil
}

// ========== 充提 ==========

// FetchDeposits 充值记录
func (x *IDEX) FetchDeposits(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error) {
	return x.fetchTransactions(ctx, "deposits", code, opts...)
}

// FetchWithdrawals 提现记录
func (x *IDEX) FetchWithdrawals(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error) {
	return x.fetchTransactions(ctx, "withdrawals", code, opts...)
}

func (x *IDEX) fetchTransactions(ctx context.Context, path, code string, opts ...option.ArgsOption) (model.Transactions, error) {
	args := option.ApplyArgs(opts...)
	_, request, err := x.walletRequest(ctx, "", args)
	if err != nil {
		return nil, err
	}
	var currency *model.Currency
	if code != "" {
		if currency, err = x.Currency(code); err != nil {
			return nil, err
		}
		request["asset"] = currency.ID
	}
	resp, err := x.privateGet(ctx, path, request)
	if err != nil {
		return nil, err
	}
	list := common.AsList(resp)
	result := make(model.Transactions, 0, len(list))
	for _, item := range list {
		result = append(result, x.parseTransaction(item, currency))
	}
	return base.FilterBySinceLimit(result, base.TransactionTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// Withdraw 提现到 address，签名内容为 nonce + address + asset + quantity + 0x01
func (x *IDEX) Withdraw(ctx context.Context, code string, amount string, address string, opts ...option.ArgsOption) (*model.Transaction, error) {
	if address == "" {
		return nil, exerr.New(exerr.ErrInvalidAddress, idexName, "withdraw() requires an address")
	}
	if err := x.CheckRequiredCredentials(); err != nil {
		return nil, err
	}
	currency, err := x.LoadCurrency(ctx, code)
	if err != nil {
		return nil, err
	}
	quantity, err := fixedString(amount, decimalsOf(currency.Info, "exchangeDecimals"))
	if err != nil {
		return nil, err
	}
	nonce, err := common.UUIDv1()
	if err != nil {
		return nil, err
	}
	var payload walletPayload
	if err := payload.writeNonce(nonce); err != nil {
		return nil, err
	}
	if err := payload.writeWallet(address); err != nil {
		return nil, err
	}
	payload.WriteString(currency.ID)
	payload.WriteString(quantity)
	payload.WriteByte(1)
	signature, err := payload.sign(x.Client().PrivateKey)
	if err != nil {
		return nil, err
	}

	resp, err := x.Request(ctx, base.Private, "POST", "withdrawals", map[string]interface{}{
		"parameters": map[string]interface{}{
			"nonce":    nonce,
			"wallet":   address,
			"asset":    currency.ID,
			"quantity": quantity,
		},
		"signature": signature,
	})
	if err != nil {
		return nil, err
	}
	tx := x.parseTransaction(resp, currency)
	tx.Address = address
	tx.AddressTo = address
	if tx.Type == "" {
		tx.Type = model.TransactionWithdrawal
	}
	return tx, nil
}
