package paymium

import (
	"context"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exchange"
	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/option"
	"github.com/lemconn/exnorm/types"
)

// Paymium Paymium 交易所实现，只有 BTC/EUR 一个市场
type Paymium struct {
	*base.BaseExchange
	signer *Signer
}

// NewPaymium 创建 Paymium 交易所实例
func NewPaymium(options *option.ExchangeOptions) (exchange.Exchange, error) {
	return New(options)
}

// New 创建 Paymium 交易所实例（具体类型）
func New(options *option.ExchangeOptions) (*Paymium, error) {
	client, err := NewClient(options)
	if err != nil {
		return nil, err
	}

	p := &Paymium{
		BaseExchange: base.NewBaseExchange(paymiumName, client),
		signer:       NewSigner(client),
	}
	p.SetSigner(p.signer)
	p.SetErrorHandler(handleErrors)
	p.SetRegistry(base.NewRegistry(paymiumName, p.FetchMarkets, p.FetchCurrencies))
	p.SetFeatures(
		exchange.FeatureFetchMarkets,
		exchange.FeatureFetchCurrencies,
		exchange.FeatureFetchTicker,
		exchange.FeatureFetchOrderBook,
		exchange.FeatureFetchTrades,
		exchange.FeatureFetchBalance,
		exchange.FeatureFetchOrder,
		exchange.FeatureFetchOrders,
		exchange.FeatureCreateOrder,
		exchange.FeatureCancelOrder,
	)
	return p, nil
}

var _ exchange.Exchange = (*Paymium)(nil)

// ========== 市场数据 ==========

// FetchMarkets 固定市场 BTC/EUR，市场 ID 为计价币种
func (p *Paymium) FetchMarkets(ctx context.Context) ([]*model.Market, error) {
	return []*model.Market{{
		ID:      "eur",
		Symbol:  "BTC/EUR",
		Base:    "BTC",
		Quote:   "EUR",
		BaseID:  "btc",
		QuoteID: "eur",
		Type:    model.MarketTypeSpot,
		Spot:    true,
		Active:  true,
		Taker:   types.NewExDecimal(tradingFee),
		Maker:   types.NewExDecimal(tradingFee),
	}}, nil
}

// FetchCurrencies BTC / EUR
func (p *Paymium) FetchCurrencies(ctx context.Context) ([]*model.Currency, error) {
	return []*model.Currency{
		{ID: "btc", Code: "BTC", Active: true},
		{ID: "eur", Code: "EUR", Active: true},
	}, nil
}

// FetchTicker 获取行情
func (p *Paymium) FetchTicker(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.Ticker, error) {
	market, err := p.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := p.Request(ctx, base.Public, "GET", "data/{currency}/ticker", args.MergeParams(map[string]interface{}{
		"currency": market.ID,
	}))
	if err != nil {
		return nil, err
	}
	return p.parseTicker(resp, market), nil
}

// FetchOrderBook 获取订单簿，条目为 {"price","amount","timestamp"}
func (p *Paymium) FetchOrderBook(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.OrderBook, error) {
	market, err := p.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := p.Request(ctx, base.Public, "GET", "data/{currency}/depth", args.MergeParams(map[string]interface{}{
		"currency": market.ID,
	}))
	if err != nil {
		return nil, err
	}
	bids := base.ParseBidsAsks(common.AsMap(resp)["bids"], "price", "amount")
	asks := base.ParseBidsAsks(common.AsMap(resp)["asks"], "price", "amount")
	book := base.NewOrderBook(market.Symbol, bids, asks, 0, nil)
	if limit := args.LimitOr(0); limit > 0 {
		if len(book.Bids) > limit {
			book.Bids = book.Bids[:limit]
		}
		if len(book.Asks) > limit {
			book.Asks = book.Asks[:limit]
		}
	}
	return book, nil
}

// FetchTrades 获取公共成交
func (p *Paymium) FetchTrades(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Trades, error) {
	market, err := p.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := p.Request(ctx, base.Public, "GET", "data/{currency}/trades", args.MergeParams(map[string]interface{}{
		"currency": market.ID,
	}))
	if err != nil {
		return nil, err
	}
	list := common.AsList(resp)
	trades := make(model.Trades, 0, len(list))
	for _, item := range list {
		trades = append(trades, p.parseTrade(item, market))
	}
	return base.FilterBySinceLimit(trades, base.TradeTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}

// ========== 账户信息 ==========

// FetchBalance 余额取自 user 接口
func (p *Paymium) FetchBalance(ctx context.Context, opts ...option.ArgsOption) (*model.Balances, error) {
	if _, err := p.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := p.Request(ctx, base.Private, "GET", "user", args.MergeParams(nil))
	if err != nil {
		return nil, err
	}
	return p.parseBalance(resp), nil
}

// ========== 订单操作 ==========

// CreateOrder 创建订单，type 为 LimitOrder / MarketOrder
func (p *Paymium) CreateOrder(ctx context.Context, symbol string, orderType option.OrderType, side option.OrderSide, amount string, opts ...option.ArgsOption) (*model.Order, error) {
	market, err := p.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	request := map[string]interface{}{
		"type":      orderType.Capitalize() + "Order",
		"currency":  market.ID,
		"direction": side.String(),
		"amount":    amount,
	}
	if !orderType.IsMarket() {
		if args.Price == nil {
			return nil, exerr.New(exerr.ErrArgumentsRequired, paymiumName, "createOrder() requires a price argument for limit orders")
		}
		request["price"] = *args.Price
	}
	resp, err := p.Request(ctx, base.Private, "POST", "user/orders", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	return p.parseOrder(resp, market), nil
}

// CancelOrder 取消订单，响应不一定包含订单详情
func (p *Paymium) CancelOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error) {
	if _, err := p.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := p.Request(ctx, base.Private, "DELETE", "user/orders/{uuid}/cancel", args.MergeParams(map[string]interface{}{
		"uuid": id,
	}))
	if err != nil {
		return nil, err
	}
	order := p.parseOrder(resp, nil)
	if order.ID == "" {
		order.ID = id
	}
	return order, nil
}

// FetchOrder 查询订单
func (p *Paymium) FetchOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error) {
	if _, err := p.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := p.Request(ctx, base.Private, "GET", "user/orders/{uuid}", args.MergeParams(map[string]interface{}{
		"uuid": id,
	}))
	if err != nil {
		return nil, err
	}
	return p.parseOrder(resp, nil), nil
}

// FetchOrders 查询订单列表
func (p *Paymium) FetchOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	if _, err := p.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	var market *model.Market
	if symbol != "" {
		m, err := p.Market(symbol)
		if err != nil {
			return nil, err
		}
		market = m
	}
	args := option.ApplyArgs(opts...)
	request := make(map[string]interface{})
	if args.Limit != nil {
		request["limit"] = *args.Limit
	}
	resp, err := p.Request(ctx, base.Private, "GET", "user/orders", args.MergeParams(request))
	if err != nil {
		return nil, err
	}
	list := common.AsList(resp)
	orders := make(model.Orders, 0, len(list))
	for _, item := range list {
		order := p.parseOrder(item, nil)
		if market != nil && order.Symbol != market.Symbol {
			continue
		}
		orders = append(orders, order)
	}
	return base.FilterBySinceLimit(orders, base.OrderTimestamp, args.SinceMillis(), args.LimitOr(0)), nil
}
