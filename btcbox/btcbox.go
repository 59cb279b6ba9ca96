package btcbox

import (
	"context"
	"strings"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exchange"
	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/option"
)

// BTCBox BTCBox 交易所实现
type BTCBox struct {
	*base.BaseExchange
	signer *Signer
	now    func() int64
}

// NewBTCBox 创建 BTCBox 交易所实例
func NewBTCBox(options *option.ExchangeOptions) (exchange.Exchange, error) {
	return New(options)
}

// New 创建 BTCBox 交易所实例（具体类型）
func New(options *option.ExchangeOptions) (*BTCBox, error) {
	client, err := NewClient(options)
	if err != nil {
		return nil, err
	}

	b := &BTCBox{
		BaseExchange: base.NewBaseExchange(btcboxName, client),
		signer:       NewSigner(client),
		now:          common.GetTimestamp,
	}
	b.SetSigner(b.signer)
	b.SetErrorHandler(handleErrors)
	b.SetRegistry(base.NewRegistry(btcboxName, b.FetchMarkets, b.FetchCurrencies))
	b.SetFeatures(
		exchange.FeatureFetchMarkets,
		exchange.FeatureFetchCurrencies,
		exchange.FeatureFetchTicker,
		exchange.FeatureFetchOrderBook,
		exchange.FeatureFetchTrades,
		exchange.FeatureFetchBalance,
		exchange.FeatureFetchOrder,
		exchange.FeatureFetchOrders,
		exchange.FeatureFetchOpenOrders,
		exchange.FeatureCreateOrder,
		exchange.FeatureCancelOrder,
	)
	return b, nil
}

var _ exchange.Exchange = (*BTCBox)(nil)

// ========== 市场数据 ==========

// FetchMarkets 固定的 JPY 市场
func (b *BTCBox) FetchMarkets(ctx context.Context) ([]*model.Market, error) {
	markets := make([]*model.Market, 0, len(staticMarkets))
	for _, m := range staticMarkets {
		markets = append(markets, b.parseMarket(m))
	}
	return markets, nil
}

// FetchCurrencies 由固定市场推导币种
func (b *BTCBox) FetchCurrencies(ctx context.Context) ([]*model.Currency, error) {
	seen := make(map[string]bool)
	currencies := make([]*model.Currency, 0, len(staticMarkets)+1)
	for _, m := range staticMarkets {
		for _, code := range []string{m.base, m.quote} {
			if seen[code] {
				continue
			}
			seen[code] = true
			currencies = append(currencies, &model.Currency{
				ID:     strings.ToLower(code),
				Code:   code,
				Active: true,
			})
		}
	}
	return currencies, nil
}

// coinRequest 多市场时需要 coin 参数
func (b *BTCBox) coinRequest(market *model.Market) map[string]interface{} {
	request := make(map[string]interface{})
	if len(b.Registry().Symbols()) > 1 {
		request["coin"] = market.BaseID
	}
	return request
}

// FetchTicker 获取行情
func (b *BTCBox) FetchTicker(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.Ticker, error) {
	market, err := b.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Public, "GET", "ticker", args.MergeParams(b.coinRequest(market)))
	if err != nil {
		return nil, err
	}
	return b.parseTicker(resp, market), nil
}

// FetchOrderBook 获取订单簿，不支持 limit
func (b *BTCBox) FetchOrderBook(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.OrderBook, error) {
	market, err := b.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Public, "GET", "depth", args.MergeParams(b.coinRequest(market)))
	if err != nil {
		return nil, err
	}
	bids := base.ParseBidsAsks(common.AsMap(resp)["bids"], 0, 1)
	asks := base.ParseBidsAsks(common.AsMap(resp)["asks"], 0, 1)
	return base.NewOrderBook(market.Symbol, bids, asks, 0, nil), nil
}

// FetchTrades 获取公共成交
func (b *BTCBox) FetchTrades(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Trades, error) {
	market, err := b.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Public, "GET", "orders", args.MergeParams(b.coinRequest(market)))
	if err != nil {
		return nil, err
	}
	list := common.AsList(resp)
	trades := make(model.Trades, 0, len(list))
	for _, item := range list {
		trades = append(trades, b.parseTrade(item, market))
	}
	return base.FilterBySinceLimit(trades, base.TradeTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// ========== 账户信息 ==========

// FetchBalance 获取余额
func (b *BTCBox) FetchBalance(ctx context.Context, opts ...option.ArgsOption) (*model.Balances, error) {
	if _, err := b.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Private, "POST", "balance", args.MergeParams(nil))
	if err != nil {
		return nil, err
	}
	return b.parseBalance(resp), nil
}

// ========== 订单操作 ==========

// orderMarket 订单接口按币种区分，symbol 为空时默认 BTC/JPY
func (b *BTCBox) orderMarket(ctx context.Context, symbol string) (*model.Market, error) {
	if symbol == "" {
		symbol = defaultSymbol
	}
	return b.LoadMarket(ctx, symbol)
}

// CreateOrder 创建订单，仅支持限价单
func (b *BTCBox) CreateOrder(ctx context.Context, symbol string, orderType option.OrderType, side option.OrderSide, amount string, opts ...option.ArgsOption) (*model.Order, error) {
	market, err := b.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	if args.Price == nil {
		return nil, exerr.New(exerr.ErrArgumentsRequired, btcboxName, "createOrder() requires a price argument")
	}
	resp, err := b.Request(ctx, base.Private, "POST", "trade_add", args.MergeParams(map[string]interface{}{
		"amount": amount,
		"price":  *args.Price,
		"type":   side.String(),
		"coin":   market.BaseID,
	}))
	if err != nil {
		return nil, err
	}
	return b.parseOrder(resp, market), nil
}

// CancelOrder 取消订单
func (b *BTCBox) CancelOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error) {
	market, err := b.orderMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Private, "POST", "trade_cancel", args.MergeParams(map[string]interface{}{
		"id":   id,
		"coin": market.BaseID,
	}))
	if err != nil {
		return nil, err
	}
	return b.parseOrder(resp, market), nil
}

// FetchOrder 查询订单
func (b *BTCBox) FetchOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error) {
	market, err := b.orderMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Private, "POST", "trade_view", args.MergeParams(map[string]interface{}{
		"id":   id,
		"coin": market.BaseID,
	}))
	if err != nil {
		return nil, err
	}
	return b.parseOrder(resp, market), nil
}

// FetchOrders 查询全部订单
func (b *BTCBox) FetchOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	return b.fetchOrdersByType(ctx, "all", symbol, opts...)
}

// FetchOpenOrders 查询挂单，列表不带状态，统一标记为 open
func (b *BTCBox) FetchOpenOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	return b.fetchOrdersByType(ctx, "open", symbol, opts...)
}

func (b *BTCBox) fetchOrdersByType(ctx context.Context, kind, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	market, err := b.orderMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := b.Request(ctx, base.Private, "POST", "trade_list", args.MergeParams(map[string]interface{}{
		"type": kind,
		"coin": market.BaseID,
	}))
	if err != nil {
		return nil, err
	}
	list := common.AsList(resp)
	orders := make(model.Orders, 0, len(list))
	for _, item := range list {
		order := b.parseOrder(item, market)
		if kind == "open" {
			order.Status = model.OrderStatusOpen
		}
		orders = append(orders, order)
	}
	return base.FilterBySinceLimit(orders, base.OrderTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}
