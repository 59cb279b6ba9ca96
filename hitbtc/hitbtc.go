package hitbtc

import (
	"context"
	"sort"
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
	model.Timeframe1m:  "M1",
	model.Timeframe3m:  "M3",
	model.Timeframe5m:  "M5",
	model.Timeframe15m: "M15",
	model.Timeframe30m: "M30",
	model.Timeframe1h:  "H1",
	model.Timeframe4h:  "H4",
	model.Timeframe1d:  "D1",
	model.Timeframe1w:  "D7",
	model.Timeframe1M:  "1M",
}

// HitBTC HitBTC 交易所实现（API v3）
type HitBTC struct {
	*base.BaseExchange
	signer *Signer
	config Config
}

// NewHitBTC 创建 HitBTC 交易所实例
func NewHitBTC(options *option.ExchangeOptions) (exchange.Exchange, error) {
	return New(options)
}

// New 创建 HitBTC 交易所实例（具体类型）
func New(options *option.ExchangeOptions) (*HitBTC, error) {
	client, err := NewClient(options)
	if err != nil {
		return nil, err
	}

	h := &HitBTC{
		BaseExchange: base.NewBaseExchange(hitbtcName, client),
		signer:       NewSigner(client),
		config:       configFrom(options),
	}
	h.SetSigner(h.signer)
	h.SetErrorHandler(handleErrors)
	h.SetRegistry(base.NewRegistry(hitbtcName, h.FetchMarkets, h.FetchCurrencies))
	h.SetFeatures(
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
		exchange.FeatureFetchOrders,
		exchange.FeatureFetchOpenOrders,
		exchange.FeatureFetchClosedOrders,
		exchange.FeatureFetchMyTrades,
		exchange.FeatureCreateOrder,
		exchange.FeatureCancelOrder,
		exchange.FeatureCancelAllOrders,
		exchange.FeatureFetchDepositAddress,
		exchange.FeatureFetchDeposits,
		exchange.FeatureFetchWithdrawals,
		exchange.FeatureFetchTransactions,
		exchange.FeatureWithdraw,
		exchange.FeatureTransfer,
	)
	return h, nil
}

var _ exchange.Exchange = (*HitBTC)(nil)

// sortedKeys 对象形式的响应按 key 排序遍历
func sortedKeys(m map[string]interface{}) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// networkCurrency USDT 按网络映射到链上币种 ID
func (h *HitBTC) networkCurrency(code, currencyID string, args *option.ExchangeArgsOptions) string {
	if args.Network == nil || code != "USDT" {
		return currencyID
	}
	if mapped, ok := h.config.Networks[strings.ToUpper(*args.Network)]; ok {
		return mapped
	}
	return currencyID
}

// ========== 市场数据 ==========

// FetchMarkets 获取市场列表
func (h *HitBTC) FetchMarkets(ctx context.Context) ([]*model.Market, error) {
	resp, err := h.Request(ctx, base.Public, "GET", "public/symbol", nil)
	if err != nil {
		return nil, err
	}
	symbols := common.AsMap(resp)
	markets := make([]*model.Market, 0, len(symbols))
	for _, id := range sortedKeys(symbols) {
		markets = append(markets, h.parseMarket(id, symbols[id]))
	}
	return markets, nil
}

// FetchCurrencies 获取币种列表
func (h *HitBTC) FetchCurrencies(ctx context.Context) ([]*model.Currency, error) {
	resp, err := h.Request(ctx, base.Public, "GET", "public/currency", nil)
	if err != nil {
		return nil, err
	}
	entries := common.AsMap(resp)
	currencies := make([]*model.Currency, 0, len(entries))
	for _, id := range sortedKeys(entries) {
		currencies = append(currencies, h.parseCurrency(id, entries[id]))
	}
	return currencies, nil
}

// FetchTicker 获取行情
func (h *HitBTC) FetchTicker(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.Ticker, error) {
	tickers, err := h.FetchTickers(ctx, append(opts, option.WithSymbols(symbol))...)
	if err != nil {
		return nil, err
	}
	ticker, ok := tickers[symbol]
	if !ok {
		return nil, exerr.Newf(exerr.ErrBadSymbol, hitbtcName, "no ticker for %s", symbol)
	}
	return ticker, nil
}

// FetchTickers 批量获取行情，WithSymbols 为空时返回全部
func (h *HitBTC) FetchTickers(ctx context.Context, opts ...option.ArgsOption) (model.Tickers, error) {
	if _, err := h.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{}
	if len(args.Symbols) > 0 {
		ids := make([]string, 0, len(args.Symbols))
		for _, symbol := range args.Symbols {
			market, err := h.Market(symbol)
			if err != nil {
				return nil, err
			}
			ids = append(ids, market.ID)
		}
		request["symbols"] = strings.Join(ids, ",")
	}
	resp, err := h.Request(ctx, base.Public, "GET", "public/ticker", args.MergeParams(request))
	if err != nil {
		return nil, err
	}

	wanted := make(map[string]bool, len(args.Symbols))
	for _, symbol := range args.Symbols {
		wanted[symbol] = true
	}
	entries := common.AsMap(resp)
	tickers := make(model.Tickers, len(entries))
	for _, id := range sortedKeys(entries) {
		market := h.Registry().SafeMarket(id, nil, "")
		if len(wanted) > 0 && !wanted[market.Symbol] {
			continue
		}
		tickers[market.Symbol] = h.parseTicker(entries[id], market)
	}
	return tickers, nil
}

// FetchOrderBook 获取订单簿
func (h *HitBTC) FetchOrderBook(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.OrderBook, error) {
	market, err := h.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"symbols": market.ID,
	}
	if args.Limit != nil {
		request["depth"] = *args.Limit
	}
	resp, err := h.Request(ctx, base.Public, "GET", "public/orderbook", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	book, _ := common.SafeMap(resp, market.ID)
	bids := base.ParseBidsAsks(book["bid"], 0, 1)
	asks := base.ParseBidsAsks(book["ask"], 0, 1)
	return base.NewOrderBook(market.Symbol, bids, asks, parse8601(book, "timestamp"), nil), nil
}

// FetchTrades 获取公共成交
func (h *HitBTC) FetchTrades(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Trades, error) {
	market, err := h.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"symbols": market.ID,
	}
	if args.Limit != nil {
		request["limit"] = *args.Limit
	}
	if since := args.SinceMillis(); since > 0 {
		request["since"] = since
	}
	resp, err := h.Request(ctx, base.Public, "GET", "public/trades", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	list, _ := common.SafeList(resp, market.ID)
	trades := make(model.Trades, 0, len(list))
	for _, item := range list {
		trades = append(trades, h.parseTrade(item, market))
	}
	return base.FilterBySinceLimit(trades, base.TradeTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// FetchOHLCV 获取K线
func (h *HitBTC) FetchOHLCV(ctx context.Context, symbol string, timeframe string, opts ...option.ArgsOption) (model.OHLCVs, error) {
	market, err := h.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	period, ok := timeframes.Get(common.NormalizeTimeframe(timeframe))
	if !ok {
		return nil, exerr.Newf(exerr.ErrBadRequest, hitbtcName, "unsupported timeframe %s", timeframe)
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"symbols": market.ID,
		"period":  period,
	}
	if since := args.SinceMillis(); since > 0 {
		request["from"] = types.ISO8601(since)
	}
	if args.Limit != nil {
		request["limit"] = *args.Limit
	}
	resp, err := h.Request(ctx, base.Public, "GET", "public/candles", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	list, _ := common.SafeList(resp, market.ID)
	candles := make(model.OHLCVs, 0, len(list))
	for _, item := range list {
		candles = append(candles, parseOHLCV(item))
	}
	return base.FilterBySinceLimit(candles, base.OHLCVTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// ========== 账户信息 ==========

// FetchBalance 获取余额，WithParam("type", "wallet") 选择账户类型，默认 spot
func (h *HitBTC) FetchBalance(ctx context.Context, opts ...option.ArgsOption) (*model.Balances, error) {
	args := option.ApplyArgs(opts...)
	accountType := hitbtcDefaultType
	if v, ok := args.PopParam("type"); ok {
		if s, ok := v.(string); ok && s != "" {
			accountType = strings.ToLower(s)
		}
	}

	var path string
	switch h.config.AccountsByType[accountType] {
	case "spot":
		path = "spot/balance"
	case "wallet":
		path = "wallet/balance"
	case "derivatives":
		path = "futures/balance"
	default:
		return nil, exerr.Newf(exerr.ErrBadRequest, hitbtcName, "fetchBalance() type parameter must be one of %s", strings.Join(sortedAccountTypes(h.config.AccountsByType), ", "))
	}
	resp, err := h.Request(ctx, base.Private, "GET", path, args.MergeParams(nil))
	if err != nil {
		return nil, err
	}
	return h.parseBalance(resp), nil
}

func sortedAccountTypes(accounts map[string]string) []string {
	keys := make([]string, 0, len(accounts))
	for k := range accounts {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// FetchTradingFees 获取全部交易对手续费
func (h *HitBTC) FetchTradingFees(ctx context.Context, opts ...option.ArgsOption) (model.TradingFees, error) {
	if _, err := h.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := h.Request(ctx, base.Private, "GET", "spot/fee", args.MergeParams(nil))
	if err != nil {
		return nil, err
	}
	fees := make(model.TradingFees)
	for _, item := range common.AsList(resp) {
		fee := h.parseTradingFee(item, nil)
		fees[fee.Symbol] = fee
	}
	return fees, nil
}

// ========== 订单操作 ==========

// symbolRequest symbol 可选时构建请求参数
func (h *HitBTC) symbolRequest(ctx context.Context, symbol string) (*model.Market, map[string]interface{}, error) {
	request := map[string]interface{}{}
	if symbol == "" {
		return nil, request, nil
	}
	market, err := h.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, nil, err
	}
	request["symbol"] = market.ID
	return market, request, nil
}

func (h *HitBTC) parseOrders(raw interface{}, market *model.Market) model.Orders {
	list := common.AsList(raw)
	orders := make(model.Orders, 0, len(list))
	for _, item := range list {
		orders = append(orders, h.parseOrder(item, market))
	}
	return orders
}

// FetchOrder 按 client_order_id 查询历史订单
func (h *HitBTC) FetchOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error) {
	market, _, err := h.symbolRequest(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := h.Request(ctx, base.Private, "GET", "spot/history/order", args.MergeParams(map[string]interface{}{
		"client_order_id": id,
	}))
	if err != nil {
		return nil, err
	}
	first, ok := common.SafeValue(resp, 0)
	if !ok {
		return nil, exerr.Newf(exerr.ErrOrderNotFound, hitbtcName, "order %s not found", id)
	}
	return h.parseOrder(first, market), nil
}

// FetchOrders 查询历史订单
func (h *HitBTC) FetchOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	return h.fetchHistoryOrders(ctx, symbol, opts...)
}

// FetchClosedOrders 查询已完成订单（closed / canceled）
func (h *HitBTC) FetchClosedOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	orders, err := h.fetchHistoryOrders(ctx, symbol, opts...)
	if err != nil {
		return nil, err
	}
	closed := make(model.Orders, 0, len(orders))
	for _, o := range orders {
		if o.Status == model.OrderStatusClosed || o.Status == model.OrderStatusCanceled {
			closed = append(closed, o)
		}
	}
	return closed, nil
}

func (h *HitBTC) fetchHistoryOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	market, request, err := h.symbolRequest(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	if since := args.SinceMillis(); since > 0 {
		request["from"] = types.ISO8601(since)
	}
	if args.Limit != nil {
		request["limit"] = *args.Limit
	}
	resp, err := h.Request(ctx, base.Private, "GET", "spot/history/order", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	return base.FilterBySinceLimit(h.parseOrders(resp, market), base.OrderTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// FetchOpenOrders 查询当前挂单
func (h *HitBTC) FetchOpenOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	market, request, err := h.symbolRequest(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := h.Request(ctx, base.Private, "GET", "spot/order", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	return base.FilterBySinceLimit(h.parseOrders(resp, market), base.OrderTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// FetchMyTrades 查询成交历史
func (h *HitBTC) FetchMyTrades(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Trades, error) {
	market, request, err := h.symbolRequest(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	if args.Limit != nil {
		request["limit"] = *args.Limit
	}
	if since := args.SinceMillis(); since > 0 {
		request["since"] = since
	}
	resp, err := h.Request(ctx, base.Private, "GET", "spot/history/trade", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	list := common.AsList(resp)
	trades := make(model.Trades, 0, len(list))
	for _, item := range list {
		trades = append(trades, h.parseTrade(item, market))
	}
	return base.FilterBySinceLimit(trades, base.TradeTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// CreateOrder 创建订单，未指定 client_order_id 时自动生成
func (h *HitBTC) CreateOrder(ctx context.Context, symbol string, orderType option.OrderType, side option.OrderSide, amount string, opts ...option.ArgsOption) (*model.Order, error) {
	market, err := h.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"type":     orderType.String(),
		"side":     side.String(),
		"quantity": amount,
		"symbol":   market.ID,
	}
	if orderType.IsLimit() {
		if args.Price == nil {
			return nil, exerr.New(exerr.ErrArgumentsRequired, hitbtcName, "limit order requires price")
		}
		request["price"] = *args.Price
	}
	if args.ClientOrderID != nil {
		request["client_order_id"] = *args.ClientOrderID
	} else {
		request["client_order_id"] = strings.ReplaceAll(common.GenerateClientOrderID(hitbtcName), "-", "")
	}
	if args.TimeInForce != nil {
		request["time_in_force"] = args.TimeInForce.Upper()
	}
	if args.PostOnly != nil {
		request["post_only"] = *args.PostOnly
	}
	resp, err := h.Request(ctx, base.Private, "POST", "spot/order", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	return h.parseOrder(resp, market), nil
}

// CancelOrder 按 client_order_id 取消订单
func (h *HitBTC) CancelOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error) {
	market, _, err := h.symbolRequest(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := h.Request(ctx, base.Private, "DELETE", "spot/order/{client_order_id}", args.MergeParams(map[string]interface{}{
		"client_order_id": id,
	}))
	if err != nil {
		return nil, err
	}
	return h.parseOrder(resp, market), nil
}

// CancelAllOrders 取消全部挂单，symbol 为空时取消所有交易对
func (h *HitBTC) CancelAllOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	market, request, err := h.symbolRequest(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := h.Request(ctx, base.Private, "DELETE", "spot/order", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	return h.parseOrders(resp, market), nil
}

// ========== 充提 ==========

// FetchDepositAddress 获取充值地址，USDT 可通过 WithNetwork 选择链
func (h *HitBTC) FetchDepositAddress(ctx context.Context, code string, opts ...option.ArgsOption) (*model.DepositAddress, error) {
	currency, err := h.LoadCurrency(ctx, code)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := h.Request(ctx, base.Private, "GET", "wallet/crypto/address", args.MergeParams(map[string]interface{}{
		"currency": h.networkCurrency(code, currency.ID, args),
	}))
	if err != nil {
		return nil, err
	}
	first, _ := common.SafeValue(resp, 0)
	currencyID, _ := common.SafeString(first, "currency")
	address := &model.DepositAddress{
		Currency: h.Registry().SafeCurrencyCode(currencyID, currency),
		Info:     resp,
	}
	address.Address, _ = common.SafeString(first, "address")
	address.Tag, _ = common.SafeString(first, "payment_id")
	if address.Address == "" {
		return nil, exerr.Newf(exerr.ErrAddressPending, hitbtcName, "no deposit address for %s", code)
	}
	return address, nil
}

// FetchDeposits 充值记录
func (h *HitBTC) FetchDeposits(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error) {
	return h.fetchTransactions(ctx, "DEPOSIT", code, opts...)
}

// FetchWithdrawals 提现记录
func (h *HitBTC) FetchWithdrawals(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error) {
	return h.fetchTransactions(ctx, "WITHDRAW", code, opts...)
}

// FetchTransactions 充提记录
func (h *HitBTC) FetchTransactions(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error) {
	return h.fetchTransactions(ctx, "DEPOSIT,WITHDRAW", code, opts...)
}

func (h *HitBTC) fetchTransactions(ctx context.Context, kinds, code string, opts ...option.ArgsOption) (model.Transactions, error) {
	if _, err := h.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"types": kinds,
	}
	if code != "" {
		currency, err := h.Currency(code)
		if err != nil {
			return nil, err
		}
		request["currencies"] = currency.ID
	}
	if since := args.SinceMillis(); since > 0 {
		request["from"] = types.ISO8601(since)
	}
	if args.Limit != nil {
		request["limit"] = *args.Limit
	}
	resp, err := h.Request(ctx, base.Private, "GET", "wallet/transactions", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	list := common.AsList(resp)
	result := make(model.Transactions, 0, len(list))
	for _, item := range list {
		result = append(result, h.parseTransaction(item))
	}
	return base.FilterBySinceLimit(result, base.TransactionTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// Withdraw 提现，WithTag 对应 payment_id
func (h *HitBTC) Withdraw(ctx context.Context, code string, amount string, address string, opts ...option.ArgsOption) (*model.Transaction, error) {
	if address == "" {
		return nil, exerr.New(exerr.ErrInvalidAddress, hitbtcName, "withdraw() requires an address")
	}
	currency, err := h.LoadCurrency(ctx, code)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"currency": h.networkCurrency(code, currency.ID, args),
		"amount":   amount,
		"address":  address,
	}
	if args.Tag != nil {
		request["payment_id"] = *args.Tag
	}
	resp, err := h.Request(ctx, base.Private, "POST", "wallet/crypto/withdraw", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	tx := &model.Transaction{
		Currency: code,
		Amount:   types.NewExDecimal(amount),
		Address:  address,
		Type:     model.TransactionWithdrawal,
		Info:     resp,
	}
	tx.ID, _ = common.SafeString(resp, "id")
	return tx, nil
}

// Transfer 账户间划转，账户类型为 spot / wallet / derivatives
func (h *HitBTC) Transfer(ctx context.Context, code string, amount string, fromAccount string, toAccount string, opts ...option.ArgsOption) (*model.TransferEntry, error) {
	currency, err := h.LoadCurrency(ctx, code)
	if err != nil {
		return nil, err
	}
	fromAccount = strings.ToLower(fromAccount)
	toAccount = strings.ToLower(toAccount)
	accounts := strings.Join(sortedAccountTypes(h.config.AccountsByType), ", ")
	fromID, ok := h.config.AccountsByType[fromAccount]
	if !ok {
		return nil, exerr.Newf(exerr.ErrArgumentsRequired, hitbtcName, "transfer() fromAccount argument must be one of %s", accounts)
	}
	toID, ok := h.config.AccountsByType[toAccount]
	if !ok {
		return nil, exerr.Newf(exerr.ErrArgumentsRequired, hitbtcName, "transfer() toAccount argument must be one of %s", accounts)
	}
	if fromID == toID {
		return nil, exerr.New(exerr.ErrBadRequest, hitbtcName, "transfer() fromAccount and toAccount arguments cannot be the same account")
	}

	args := option.ApplyArgs(opts...)
	resp, err := h.Request(ctx, base.Private, "POST", "wallet/transfer", args.MergeParams(map[string]interface{}{
		"currency":    currency.ID,
		"amount":      amount,
		"source":      fromID,
		"destination": toID,
	}))
	if err != nil {
		return nil, err
	}
	entry := &model.TransferEntry{
		Currency:    code,
		Amount:      types.NewExDecimal(amount),
		FromAccount: fromAccount,
		ToAccount:   toAccount,
		Info:        resp,
	}
	entry.ID, _ = common.SafeString(resp, 0)
	return entry, nil
}
