package exchange

import (
	"context"

	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/option"
)

// 能力名称，用于 Has
const (
	FeatureFetchMarkets         = "fetchMarkets"
	FeatureFetchCurrencies      = "fetchCurrencies"
	FeatureFetchTicker          = "fetchTicker"
	FeatureFetchTickers         = "fetchTickers"
	FeatureFetchOrderBook       = "fetchOrderBook"
	FeatureFetchTrades          = "fetchTrades"
	FeatureFetchOHLCV           = "fetchOHLCV"
	FeatureFetchBalance         = "fetchBalance"
	FeatureFetchOrder           = "fetchOrder"
	FeatureFetchOrders          = "fetchOrders"
	FeatureFetchOpenOrders      = "fetchOpenOrders"
	FeatureFetchClosedOrders    = "fetchClosedOrders"
	FeatureFetchMyTrades        = "fetchMyTrades"
	FeatureCreateOrder          = "createOrder"
	FeatureCancelOrder          = "cancelOrder"
	FeatureCancelAllOrders      = "cancelAllOrders"
	FeatureFetchDepositAddress  = "fetchDepositAddress"
	FeatureCreateDepositAddress = "createDepositAddress"
	FeatureFetchDeposits        = "fetchDeposits"
	FeatureFetchWithdrawals     = "fetchWithdrawals"
	FeatureFetchTransactions    = "fetchTransactions"
	FeatureWithdraw             = "withdraw"
	FeatureFetchTradingFees     = "fetchTradingFees"
	FeatureFetchTransactionFees = "fetchTransactionFees"
	FeatureTransfer             = "transfer"
)

// Exchange 统一交易所接口，未实现的操作返回 exerr.ErrNotSupported
type Exchange interface {
	// Name 返回交易所名称
	Name() string

	// Has 是否支持某项能力
	Has(feature string) bool

	// ========== 市场数据 ==========

	// FetchMarkets 获取市场列表
	FetchMarkets(ctx context.Context) ([]*model.Market, error)

	// FetchCurrencies 获取币种列表
	FetchCurrencies(ctx context.Context) ([]*model.Currency, error)

	// LoadMarkets 加载市场信息（缓存）
	LoadMarkets(ctx context.Context, reload bool) (map[string]*model.Market, error)

	// Market 获取单个市场信息
	Market(symbol string) (*model.Market, error)

	// Currency 获取单个币种信息
	Currency(code string) (*model.Currency, error)

	// FetchTicker 获取行情（单个）
	FetchTicker(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.Ticker, error)

	// FetchTickers 批量获取行情，使用 option.WithSymbols 过滤
	FetchTickers(ctx context.Context, opts ...option.ArgsOption) (model.Tickers, error)

	// FetchOrderBook 获取订单簿，使用 option.WithLimit 限制深度
	FetchOrderBook(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.OrderBook, error)

	// FetchTrades 获取公共成交
	FetchTrades(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Trades, error)

	// FetchOHLCV 获取K线数据
	FetchOHLCV(ctx context.Context, symbol string, timeframe string, opts ...option.ArgsOption) (model.OHLCVs, error)

	// ========== 账户信息 ==========

	// FetchBalance 获取余额
	FetchBalance(ctx context.Context, opts ...option.ArgsOption) (*model.Balances, error)

	// FetchTradingFees 获取交易手续费
	FetchTradingFees(ctx context.Context, opts ...option.ArgsOption) (model.TradingFees, error)

	// FetchTransactionFees 获取充提手续费
	FetchTransactionFees(ctx context.Context, opts ...option.ArgsOption) (*model.TransactionFees, error)

	// ========== 订单操作 ==========

	// CreateOrder 创建订单，限价单使用 option.WithPrice
	CreateOrder(ctx context.Context, symbol string, orderType option.OrderType, side option.OrderSide, amount string, opts ...option.ArgsOption) (*model.Order, error)

	// CancelOrder 取消订单
	CancelOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error)

	// CancelAllOrders 取消全部订单
	CancelAllOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error)

	// FetchOrder 查询订单
	FetchOrder(ctx context.Context, id string, symbol string, opts ...option.ArgsOption) (*model.Order, error)

	// FetchOrders 查询订单列表
	FetchOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error)

	// FetchOpenOrders 查询未成交订单
	FetchOpenOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error)

	// FetchClosedOrders 查询已完成订单
	FetchClosedOrders(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Orders, error)

	// FetchMyTrades 获取我的成交
	FetchMyTrades(ctx context.Context, symbol string, opts ...option.ArgsOption) (model.Trades, error)

	// ========== 充提 ==========

	// FetchDepositAddress 获取充值地址
	FetchDepositAddress(ctx context.Context, code string, opts ...option.ArgsOption) (*model.DepositAddress, error)

	// CreateDepositAddress 创建充值地址
	CreateDepositAddress(ctx context.Context, code string, opts ...option.ArgsOption) (*model.DepositAddress, error)

	// FetchDeposits 充值记录，code 为空表示全部币种
	FetchDeposits(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error)

	// FetchWithdrawals 提现记录，code 为空表示全部币种
	FetchWithdrawals(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error)

	// FetchTransactions 充提记录，code 为空表示全部币种
	FetchTransactions(ctx context.Context, code string, opts ...option.ArgsOption) (model.Transactions, error)

	// Withdraw 提现，地址标签使用 option.WithTag
	Withdraw(ctx context.Context, code string, amount string, address string, opts ...option.ArgsOption) (*model.Transaction, error)

	// Transfer 账户间划转
	Transfer(ctx context.Context, code string, amount string, fromAccount string, toAccount string, opts ...option.ArgsOption) (*model.TransferEntry, error)
}
