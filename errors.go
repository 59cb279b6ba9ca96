package exnorm

import "github.com/lemconn/exnorm/exerr"

var (
	// ErrExchange 交易所错误
	ErrExchange = exerr.ErrExchange
	// ErrAuthentication 认证失败
	ErrAuthentication = exerr.ErrAuthentication
	// ErrPermissionDenied 权限不足
	ErrPermissionDenied = exerr.ErrPermissionDenied
	// ErrAccountSuspended 账户被冻结
	ErrAccountSuspended = exerr.ErrAccountSuspended
	// ErrBadRequest 请求参数错误
	ErrBadRequest = exerr.ErrBadRequest
	// ErrBadSymbol 无效的交易对
	ErrBadSymbol = exerr.ErrBadSymbol
	// ErrInsufficientFunds 余额不足
	ErrInsufficientFunds = exerr.ErrInsufficientFunds
	// ErrInvalidAddress 无效的地址
	ErrInvalidAddress = exerr.ErrInvalidAddress
	// ErrAddressPending 地址生成中
	ErrAddressPending = exerr.ErrAddressPending
	// ErrInvalidOrder 无效的订单
	ErrInvalidOrder = exerr.ErrInvalidOrder
	// ErrOrderNotFound 订单未找到
	ErrOrderNotFound = exerr.ErrOrderNotFound
	// ErrNotSupported 不支持的操作
	ErrNotSupported = exerr.ErrNotSupported
	// ErrNetwork 网络错误
	ErrNetwork = exerr.ErrNetwork
	// ErrRateLimitExceeded 请求频率超限
	ErrRateLimitExceeded = exerr.ErrRateLimitExceeded
	// ErrExchangeNotAvailable 交易所不可用
	ErrExchangeNotAvailable = exerr.ErrExchangeNotAvailable
	// ErrOnMaintenance 交易所维护中
	ErrOnMaintenance = exerr.ErrOnMaintenance
	// ErrExchangeNotSupported 不支持的交易所
	ErrExchangeNotSupported = exerr.ErrNotSupported
)
