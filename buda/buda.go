package buda

import (
	"context"
	"strconv"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exchange"
	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/option"
)

// timeframes 统一周期 -> Buda resolution
var timeframes = model.TimeframeMap{
	model.Timeframe1m:  "1",
	model.Timeframe5m:  "5",
	model.Timeframe30m: "30",
	model.Timeframe1h:  "60",
	model.Timeframe2h:  "120",
	model.Timeframe1d:  "D",
	model.Timeframe1w:  "W",
}

// Buda Buda 交易所实现
type Buda struct {
	*base.BaseExchange
	signer *Signer
	now    func() int64
}

// NewBuda 创建 Buda 交易所实例
func NewBuda(options *option.ExchangeOptions) (exchange.Exchange, error) {
	return New(options)
}

// New 创建 Buda 交易所实例（具体类型）
func New(options *option.ExchangeOptions) (*Buda, error) {
	client, err := NewClient(options)
	if err != nil {
		return nil, err
	}

	b := &Buda{
		BaseExchange: base.NewBaseExchange(budaName, client),
		signer:       NewSigner(client),
		now:          common.GetTimestamp,
	}
	b.SetSigner(b.signer)
	b.SetErrorHandler(handleErrors)
	b.SetRegistry(base.NewRegistry(budaName, b.FetchMarkets, b.FetchCurrencies))
	b.SetFeatures(
		exchange.FeatureFetchMarkets,
		exchange.FeatureFetchCurrencies,
		exchange.FeatureFetchTicker,
		exchange.FeatureFetchOrderBook,
		exchange.FeatureFetchTrades,
		exchange.FeatureFetchOHLCV,
		exchange.FeatureFetchBalance,
		exchange.FeatureFetchOrder,
		exchange.FeatureFetchOrders,
		exchange.FeatureFetchOpenOrders,
		exchange.FeatureFetchClosedOrders,
		exchange.FeatureCreateOrder,
		exchange.FeatureCancelOrder,
		exchange.FeatureFetchDepositAddress,
		exchange.FeatureCreateDepositAddress,
		exchange.FeatureFetchDeposits,
		exchange.FeatureFetchWithdrawals,
		exchange.FeatureWithdraw,
		exchange.FeatureFetchTransactionFees,
	)
	return b, nil
}

var _ exchange.Exchange = (*Buda)(nil)

// ========== 市场数据 ==========

func (b *Buda) fetchRawCurrencies(ctx context.Context) ([]interface{}, error) {
	resp, err := b.Request(ctx, base.Public, "GET", "currencies", nil)
	if err != nil {
		return nil, err
	}
	list, _ := common.SafeList(resp, "currencies")
	return list, nil
}

// FetchMarkets 获取市场列表，价格和数量精度取自币种的 input_decimals
func (b *Buda) FetchMarkets(ctx context.Context) ([]*model.Market, error) {
	resp, err := b.Request(ctx, base.Public, "GET", "markets", nil)
	if err != nil {
		return nil, err
	}
	currencyList, err := b.fetchRawCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	currencies := make(map[string]interface{}, len(currencyList))
	for _, c := range currencyList {
		if id, ok := common.SafeString(c, "id"); ok {
			currencies[id] = c
		}
	}

	list, _ := common.SafeList(resp, "markets")
	markets := make([]*model.Market, 0, len(list))
	for _, item := range list {
		markets = append(markets, b.parseMarket(item, currencies))
	}
	return markets, nil
}

// FetchCurrencies 获取币种列表（仅 managed 币种）
func (b *Buda) FetchCurrencies(ctx context.Context) ([]*model.Currency, error) {
	list, err := b.fetchRawCurrencies(ctx)
	if err != nil {
		return nil, err
	}
	currencies := make([]*model.Currency, 0, len(list))
	for _, item := range list {
		if !common.SafeBoolOr(item, "managed", false) {
			continue
		}
		currencies = append(currencies, b.parseCurrency(item))
	}
	return currencies, nil
}

// FetchTicker 获取行情
func (b *Buda) FetchTicker(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.Ticker, error) {
	market, err := b.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Public, "GET", "markets/{market}/ticker", args.MergeParams(map[string]interface{}{
		"market": market.ID,
	}))
	if err != nil {
		return nil, err
	}
	ticker, _ := common.SafeMap(resp, "ticker")
	return b.parseTicker(ticker, market), nil
}

// FetchTrades 获取公共成交；since 向前翻页，不作为请求参数
func (b *Buda) FetchTrades(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Trades, error) {
	market, err := b.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"market": market.ID,
	}
	if args.Limit != nil {
		request["limit"] = *args.Limit
	}
	resp, err := b.Request(ctx, base.Public, "GET", "markets/{market}/trades", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	trades, _ := common.SafeMap(resp, "trades")
	entries, _ := common.SafeList(trades, "entries")
	result := make(model.Trades, 0, len(entries))
	for _, entry := range entries {
		result = append(result, b.parseTrade(entry, market))
	}
	return base.FilterBySinceLimit(result, base.TradeTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// FetchOrderBook 获取订单簿
func (b *Buda) FetchOrderBook(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.OrderBook, error) {
	market, err := b.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Public, "GET", "markets/{market}/order_book", args.MergeParams(map[string]interface{}{
		"market": market.ID,
	}))
	if err != nil {
		return nil, err
	}
	book, _ := common.SafeMap(resp, "order_book")
	bids := base.ParseBidsAsks(book["bids"], 0, 1)
	asks := base.ParseBidsAsks(book["asks"], 0, 1)
	return base.NewOrderBook(market.Symbol, bids, asks, 0, nil), nil
}

// FetchOHLCV 获取K线，默认取最近一天
func (b *Buda) FetchOHLCV(ctx context.Context, symbol string, timeframe string, opts ...option.ArgsOption) (model.OHLCVs, error) {
	market, err := b.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	resolution, ok := timeframes.Get(common.NormalizeTimeframe(timeframe))
	if !ok {
		return nil, exerr.Newf(exerr.ErrBadRequest, budaName, "unsupported timeframe %s", timeframe)
	}
	args := option.ApplyArgs(opts...)
	since := args.SinceMillis()
	if since == 0 {
		since = b.now() - 86400000
	}
	resp, err := b.Request(ctx, base.Public, "GET", "tv/history", args.MergeParams(map[string]interface{}{
		"symbol":     market.ID,
		"resolution": resolution,
		"from":       since / 1000,
		"to":         b.now() / 1000,
	}))
	if err != nil {
		return nil, err
	}
	return base.FilterBySinceLimit(parseTradingViewOHLCV(resp), base.OHLCVTimestamp, since, args.LimitOr(0)), nil
}

// FetchTransactionFees 获取充提手续费，默认查询全部币种
func (b *Buda) FetchTransactionFees(ctx context.Context, opts ...option.ArgsOption) (*model.TransactionFees, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	codes := make([]string, 0)
	if args.Code != nil {
		codes = append(codes, *args.Code)
	} else {
		for code := range b.Registry().Currencies() {
			codes = append(codes, code)
		}
	}

	fees := model.NewTransactionFees()
	info := make(map[string]interface{}, len(codes))
	for _, code := range codes {
		currency, err := b.Currency(code)
		if err != nil {
			return nil, err
		}
		request := map[string]interface{}{"currency": currency.ID}
		withdrawResp, err := b.Request(ctx, base.Public, "GET", "currencies/{currency}/fees/withdrawal", request)
		if err != nil {
			return nil, err
		}
		depositResp, err := b.Request(ctx, base.Public, "GET", "currencies/{currency}/fees/deposit", request)
		if err != nil {
			return nil, err
		}
		fees.Withdraw[code] = parseFundingFee(withdrawResp)
		fees.Deposit[code] = parseFundingFee(depositResp)
		info[code] = map[string]interface{}{
			"withdraw": withdrawResp,
			"deposit":  depositResp,
		}
	}
	fees.Info = info
	return fees, nil
}

// ========== 账户信息 ==========

// FetchBalance 获取余额
func (b *Buda) FetchBalance(ctx context.Context, opts ...option.ArgsOption) (*model.Balances, error) {
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Private, "GET", "balances", args.MergeParams(nil))
	if err != nil {
		return nil, err
	}
	return b.parseBalance(resp), nil
}

// ========== 订单操作 ==========

// FetchOrder 查询订单
func (b *Buda) FetchOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error) {
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Private, "GET", "orders/{id}", args.MergeParams(map[string]interface{}{
		"id": id,
	}))
	if err != nil {
		return nil, err
	}
	order, _ := common.SafeMap(resp, "order")
	return b.parseOrder(order, nil), nil
}

// FetchOrders 查询订单列表
func (b *Buda) FetchOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	return b.fetchOrders(ctx, symbol, "", opts...)
}

// FetchOpenOrders 查询未成交订单
func (b *Buda) FetchOpenOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	return b.fetchOrders(ctx, symbol, "pending", opts...)
}

// FetchClosedOrders 查询已成交订单
func (b *Buda) FetchClosedOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	return b.fetchOrders(ctx, symbol, "traded", opts...)
}

func (b *Buda) fetchOrders(ctx context.Context, symbol, state string, opts ...option.ArgsOption) (model.Orders, error) {
	if symbol == "" {
		return nil, exerr.New(exerr.ErrArgumentsRequired, budaName, "fetchOrders() requires a symbol argument")
	}
	market, err := b.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"market": market.ID,
	}
	if state != "" {
		request["state"] = state
	}
	if args.Limit != nil {
		request["per"] = *args.Limit
	}
	resp, err := b.Request(ctx, base.Private, "GET", "markets/{market}/orders", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	list, _ := common.SafeList(resp, "orders")
	orders := make(model.Orders, 0, len(list))
	for _, item := range list {
		orders = append(orders, b.parseOrder(item, market))
	}
	return base.FilterBySinceLimit(orders, base.OrderTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// CreateOrder 创建订单
func (b *Buda) CreateOrder(ctx context.Context, symbol string, orderType option.OrderType, side option.OrderSide, amount string, opts ...option.ArgsOption) (*model.Order, error) {
	market, err := b.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	budaSide := "Ask"
	if side == option.Buy {
		budaSide = "Bid"
	}
	request := map[string]interface{}{
		"market":     market.ID,
		"price_type": orderType.String(),
		"type":       budaSide,
		"amount":     amount,
	}
	if orderType.IsLimit() {
		if args.Price == nil {
			return nil, exerr.New(exerr.ErrArgumentsRequired, budaName, "createOrder() requires a price argument for limit orders")
		}
		request["limit"] = *args.Price
	}
	resp, err := b.Request(ctx, base.Private, "POST", "markets/{market}/orders", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	order, _ := common.SafeMap(resp, "order")
	return b.parseOrder(order, market), nil
}

// CancelOrder 取消订单
func (b *Buda) CancelOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error) {
	if _, err := strconv.ParseInt(id, 10, 64); err != nil {
		return nil, exerr.Newf(exerr.ErrBadRequest, budaName, "invalid order id %q", id)
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Private, "PUT", "orders/{id}", args.MergeParams(map[string]interface{}{
		"id":    id,
		"state": "canceling",
	}))
	if err != nil {
		return nil, err
	}
	order, _ := common.SafeMap(resp, "order")
	return b.parseOrder(order, nil), nil
}

// ========== 充提 ==========

func (b *Buda) cryptoCurrency(ctx context.Context, code, method string) (*model.Currency, error) {
	currency, err := b.LoadCurrency(ctx, code)
	if err != nil {
		return nil, err
	}
	if fiatCurrencies[code] {
		return nil, exerr.Newf(exerr.ErrNotSupported, budaName, "%s() for fiat %s is not supported", method, code)
	}
	return currency, nil
}

// FetchDepositAddress 获取充值地址，没有可用地址时返回 ErrAddressPending
func (b *Buda) FetchDepositAddress(ctx context.Context, code string, opts ...option.ArgsOption) (*model.DepositAddress, error) {
	currency, err := b.cryptoCurrency(ctx, code, "fetchDepositAddress")
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Private, "GET", "currencies/{currency}/receive_addresses", args.MergeParams(map[string]interface{}{
		"currency": currency.ID,
	}))
	if err != nil {
		return nil, err
	}
	addresses, _ := common.SafeList(resp, "receive_addresses")
	for _, item := range addresses {
		if !common.SafeBoolOr(item, "ready", false) {
			continue
		}
		if address, ok := common.SafeString(item, "address"); ok {
			return &model.DepositAddress{
				Currency: code,
				Address:  address,
				Info:     addresses,
			}, nil
		}
	}
	return nil, exerr.Newf(exerr.ErrAddressPending, budaName, "there are no addresses ready for receiving %s, retry again later", code)
}

// CreateDepositAddress 创建充值地址（异步生成，地址可能为空）
func (b *Buda) CreateDepositAddress(ctx context.Context, code string, opts ...option.ArgsOption) (*model.DepositAddress, error) {
	currency, err := b.cryptoCurrency(ctx, code, "createDepositAddress")
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Private, "POST", "currencies/{currency}/receive_addresses", args.MergeParams(map[string]interface{}{
		"currency": currency.ID,
	}))
	if err != nil {
		return nil, err
	}
	receive, _ := common.SafeMap(resp, "receive_address")
	address, _ := common.SafeString(receive, "address")
	return &model.DepositAddress{
		Currency: code,
		Address:  address,
		Info:     resp,
	}, nil
}

// FetchDeposits 充值记录
func (b *Buda) FetchDeposits(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error) {
	return b.fetchTransactions(ctx, code, "deposits", opts...)
}

// FetchWithdrawals 提现记录
func (b *Buda) FetchWithdrawals(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error) {
	return b.fetchTransactions(ctx, code, "withdrawals", opts...)
}

func (b *Buda) fetchTransactions(ctx context.Context, code, kind string, opts ...option.ArgsOption) (model.Transactions, error) {
	if code == "" {
		return nil, exerr.Newf(exerr.ErrArgumentsRequired, budaName, "fetch %s requires a currency code argument", kind)
	}
	currency, err := b.LoadCurrency(ctx, code)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"currency": currency.ID,
	}
	if args.Limit != nil {
		request["per"] = *args.Limit
	}
	resp, err := b.Request(ctx, base.Private, "GET", "currencies/{currency}/"+kind, args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	list, _ := common.SafeList(resp, kind)
	result := make(model.Transactions, 0, len(list))
	for _, item := range list {
		result = append(result, b.parseTransaction(item, currency))
	}
	return base.FilterBySinceLimit(result, base.TransactionTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// Withdraw 提现
func (b *Buda) Withdraw(ctx context.Context, code string, amount string, address string, opts ...option.ArgsOption) (*model.Transaction, error) {
	currency, err := b.LoadCurrency(ctx, code)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Private, "POST", "currencies/{currency}/withdrawals", args.MergeParams(map[string]interface{}{
		"currency": currency.ID,
		"amount":   amount,
		"withdrawal_data": map[string]interface{}{
			"target_address": address,
		},
	}))
	if err != nil {
		return nil, err
	}
	withdrawal, _ := common.SafeMap(resp, "withdrawal")
	return b.parseTransaction(withdrawal, currency), nil
}
