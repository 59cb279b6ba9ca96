package base

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/option"
)

// ErrorHandler 交易所业务错误识别，body 为解析后的响应（无法解析时为 nil）
// 返回 nil 表示交给默认 HTTP 状态处理
type ErrorHandler func(resp *common.Response, body interface{}) error

// BaseExchange 交易所基础实现：请求管线、市场缓存和 NotSupported 默认实现
type BaseExchange struct {
	name         string
	client       *Client
	registry     *Registry
	signer       Signer
	handleErrors ErrorHandler
	features     map[string]bool
}

// NewBaseExchange 创建基础交易所
func NewBaseExchange(name string, client *Client) *BaseExchange {
	if client != nil && client.Required == nil {
		client.Required = &RequiredCredentials{APIKey: true, Secret: true}
	}
	return &BaseExchange{
		name:     name,
		client:   client,
		features: make(map[string]bool),
	}
}

// Name 返回交易所名称
func (e *BaseExchange) Name() string {
	return e.name
}

// Client 返回客户端
func (e *BaseExchange) Client() *Client {
	return e.client
}

// SetSigner 设置签名器
func (e *BaseExchange) SetSigner(signer Signer) {
	e.signer = signer
}

// SetErrorHandler 设置业务错误识别函数
func (e *BaseExchange) SetErrorHandler(handler ErrorHandler) {
	e.handleErrors = handler
}

// SetRequiredCredentials 设置私有接口需要的凭证
func (e *BaseExchange) SetRequiredCredentials(required RequiredCredentials) {
	e.client.Required = &required
}

// SetRegistry 设置市场缓存
func (e *BaseExchange) SetRegistry(registry *Registry) {
	e.registry = registry
}

// Registry 返回市场缓存
func (e *BaseExchange) Registry() *Registry {
	return e.registry
}

// SetFeatures 声明支持的能力
func (e *BaseExchange) SetFeatures(features ...string) {
	for _, f := range features {
		e.features[f] = true
	}
}

// Has 是否支持某项能力
func (e *BaseExchange) Has(feature string) bool {
	return e.features[feature]
}

// Logf 调试模式下输出日志
func (e *BaseExchange) Logf(format string, args ...interface{}) {
	if e.client != nil && e.client.Debug {
		e.client.Logger.Printf(format, args...)
	}
}

// CheckRequiredCredentials 检查凭证，缺失时返回 ErrAuthentication
func (e *BaseExchange) CheckRequiredCredentials() error {
	return e.client.CheckRequiredCredentials()
}

// Request 构建、签名并发送请求
func (e *BaseExchange) Request(ctx context.Context, api API, method, path string, params map[string]interface{}) (interface{}, error) {
	return e.Fetch(ctx, NewRequest(api, method, path, params))
}

// Fetch 请求管线：检查凭证 -> 签名 -> 发送 -> 交易所错误识别 -> HTTP 状态映射 -> 解析
func (e *BaseExchange) Fetch(ctx context.Context, req *Request) (interface{}, error) {
	if e.signer != nil {
		// 签名器自行检查私有接口凭证
		if err := e.signer.Sign(req); err != nil {
			return nil, err
		}
	} else {
		if req.API == Private {
			if err := e.CheckRequiredCredentials(); err != nil {
				return nil, err
			}
		}
		if err := req.EncodeDefault(e.client.HTTPClient.BaseURL()); err != nil {
			return nil, err
		}
	}

	resp, err := e.client.HTTPClient.Do(ctx, req.Method, req.URL, req.Headers, req.Body)
	if err != nil {
		return nil, err
	}

	body, parseErr := common.ParseJSON(resp.Body)
	if parseErr != nil {
		body = nil
	}

	if e.handleErrors != nil {
		if err := e.handleErrors(resp, body); err != nil {
			return nil, err
		}
	}

	if !resp.OK() {
		return nil, e.statusError(req, resp)
	}
	if parseErr != nil {
		return nil, fmt.Errorf("%s %s: %w", req.Method, req.Endpoint, parseErr)
	}
	return body, nil
}

// statusError 默认 HTTP 状态映射，保留 *common.HTTPError 供 errors.As 使用
func (e *BaseExchange) statusError(req *Request, resp *common.Response) error {
	httpErr := &common.HTTPError{
		Method:     req.Method,
		URL:        req.URL,
		StatusCode: resp.StatusCode,
		Body:       string(resp.Body),
	}
	var kind *exerr.Kind
	switch resp.StatusCode {
	case http.StatusTooManyRequests:
		kind = exerr.ErrRateLimitExceeded
	case http.StatusBadGateway, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
		kind = exerr.ErrExchangeNotAvailable
	case http.StatusUnauthorized:
		kind = exerr.ErrAuthentication
	case http.StatusForbidden:
		kind = exerr.ErrPermissionDenied
	case http.StatusNotFound:
		kind = exerr.ErrBadRequest
	default:
		return httpErr
	}
	return fmt.Errorf("%s %w: %w", e.name, kind, httpErr)
}

// ========== 市场缓存 ==========

// LoadMarkets 加载市场信息
func (e *BaseExchange) LoadMarkets(ctx context.Context, reload bool) (map[string]*model.Market, error) {
	if e.registry == nil {
		return nil, e.notSupported("loadMarkets")
	}
	return e.registry.LoadMarkets(ctx, reload)
}

// Market 获取单个市场信息
func (e *BaseExchange) Market(symbol string) (*model.Market, error) {
	if e.registry == nil {
		return nil, exerr.Newf(exerr.ErrBadSymbol, e.name, "markets not loaded, symbol %s", symbol)
	}
	return e.registry.Market(symbol)
}

// Currency 获取单个币种信息
func (e *BaseExchange) Currency(code string) (*model.Currency, error) {
	if e.registry == nil {
		return nil, exerr.Newf(exerr.ErrExchange, e.name, "currencies not loaded, code %s", code)
	}
	return e.registry.Currency(code)
}

// LoadMarket 加载市场后按 symbol 查找
func (e *BaseExchange) LoadMarket(ctx context.Context, symbol string) (*model.Market, error) {
	if _, err := e.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	return e.Market(symbol)
}

// LoadCurrency 加载市场后按代码查找币种
func (e *BaseExchange) LoadCurrency(ctx context.Context, code string) (*model.Currency, error) {
	if _, err := e.LoadMarkets(ctx, false); err != nil {
		return nil, err
	}
	return e.Currency(code)
}

// IsNotSupported 是否为不支持的操作
func IsNotSupported(err error) bool {
	return errors.Is(err, exerr.ErrNotSupported)
}

func (e *BaseExchange) notSupported(method string) error {
	return exerr.Newf(exerr.ErrNotSupported, e.name, "%s() is not supported yet", method)
}

// ========== NotSupported 默认实现 ==========

// FetchMarkets 获取市场列表
func (e *BaseExchange) FetchMarkets(ctx context.Context) ([]*model.Market, error) {
	return nil, e.notSupported("fetchMarkets")
}

// FetchCurrencies 获取币种列表
func (e *BaseExchange) FetchCurrencies(ctx context.Context) ([]*model.Currency, error) {
	return nil, e.notSupported("fetchCurrencies")
}

// FetchTicker 获取行情
func (e *BaseExchange) FetchTicker(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.Ticker, error) {
	return nil, e.notSupported("fetchTicker")
}

// FetchTickers 批量获取行情
func (e *BaseExchange) FetchTickers(ctx context.Context, opts ...option.ArgsOption) (model.Tickers, error) {
	return nil, e.notSupported("fetchTickers")
}

// FetchOrderBook 获取订单簿
func (e *BaseExchange) FetchOrderBook(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.OrderBook, error) {
	return nil, e.notSupported("fetchOrderBook")
}

// FetchTrades 获取公共成交
func (e *BaseExchange) FetchTrades(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Trades, error) {
	return nil, e.notSupported("fetchTrades")
}

// FetchOHLCV 获取K线
func (e *BaseExchange) FetchOHLCV(ctx context.Context, symbol string, timeframe string, opts ...option.ArgsOption) (model.OHLCVs, error) {
	return nil, e.notSupported("fetchOHLCV")
}

// FetchBalance 获取余额
func (e *BaseExchange) FetchBalance(ctx context.Context, opts ...option.ArgsOption) (*model.Balances, error) {
	return nil, e.notSupported("fetchBalance")
}

// FetchTradingFees 获取交易手续费
func (e *BaseExchange) FetchTradingFees(ctx context.Context, opts ...option.ArgsOption) (model.TradingFees, error) {
	return nil, e.notSupported("fetchTradingFees")
}

// FetchTransactionFees 获取充提手续费
func (e *BaseExchange) FetchTransactionFees(ctx context.Context, opts ...option.ArgsOption) (*model.TransactionFees, error) {
	return nil, e.notSupported("fetchTransactionFees")
}

// CreateOrder 创建订单
func (e *BaseExchange) CreateOrder(ctx context.Context, symbol string, orderType option.OrderType, side option.OrderSide, amount string, opts ...option.ArgsOption) (*model.Order, error) {
	return nil, e.notSupported("createOrder")
}

// CancelOrder 取消订单
func (e *BaseExchange) CancelOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error) {
	return nil, e.notSupported("cancelOrder")
}

// CancelAllOrders 取消全部订单
func (e *BaseExchange) CancelAllOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	return nil, e.notSupported("cancelAllOrders")
}

// FetchOrder 查询订单
func (e *BaseExchange) FetchOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error) {
	return nil, e.notSupported("fetchOrder")
}

// FetchOrders 查询订单列表
func (e *BaseExchange) FetchOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	return nil, e.notSupported("fetchOrders")
}

// FetchOpenOrders 查询未成交订单
func (e *BaseExchange) FetchOpenOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	return nil, e.notSupported("fetchOpenOrders")
}

// FetchClosedOrders 查询已完成订单
func (e *BaseExchange) FetchClosedOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error) {
	return nil, e.notSupported("fetchClosedOrders")
}

// FetchMyTrades 获取我的成交
func (e *BaseExchange) FetchMyTrades(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Trades, error) {
	return nil, e.notSupported("fetchMyTrades")
}

// FetchDepositAddress 获取充值地址
func (e *BaseExchange) FetchDepositAddress(ctx context.Context, code string, opts ...option.ArgsOption) (*model.DepositAddress, error) {
	return nil, e.notSupported("fetchDepositAddress")
}

// CreateDepositAddress 创建充值地址
func (e *BaseExchange) CreateDepositAddress(ctx context.Context, code string, opts ...option.ArgsOption) (*model.DepositAddress, error) {
	return nil, e.notSupported("createDepositAddress")
}

// FetchDeposits 充值记录
func (e *BaseExchange) FetchDeposits(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error) {
	return nil, e.notSupported("fetchDeposits")
}

// FetchWithdrawals 提现记录
func (e *BaseExchange) FetchWithdrawals(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error) {
	return nil, e.notSupported("fetchWithdrawals")
}

// FetchTransactions 充提记录
func (e *BaseExchange) FetchTransactions(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error) {
	return nil, e.notSupported("fetchTransactions")
}

// Withdraw 提现
func (e *BaseExchange) Withdraw(ctx context.Context, code string, amount string, address string, opts ...option.ArgsOption) (*model.Transaction, error) {
	return nil, e.notSupported("withdraw")
}

// Transfer 账户间划转
func (e *BaseExchange) Transfer(ctx context.Context, code string, amount string, fromAccount string, toAccount string, opts ...option.ArgsOption) (*model.TransferEntry, error) {
	return nil, e.notSupported("transfer")
}
