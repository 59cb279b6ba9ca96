package exerr

import (
	"errors"
	"fmt"
	"strings"
)

// Kind 错误类别，带有父类别以便 errors.Is 沿继承链匹配
type Kind struct {
	name   string
	parent *Kind
}

func newKind(name string, parent *Kind) *Kind {
	return &Kind{name: name, parent: parent}
}

// Error 实现 error 接口
func (k *Kind) Error() string {
	return k.name
}

// Name 返回类别名称
func (k *Kind) Name() string {
	return k.name
}

// Parent 返回父类别（根类别返回 nil）
func (k *Kind) Parent() *Kind {
	return k.parent
}

// Is 判断当前类别是否为 target 或 target 的子类别
func (k *Kind) Is(target error) bool {
	t, ok := target.(*Kind)
	if !ok {
		return false
	}
	for p := k; p != nil; p = p.parent {
		if p == t {
			return true
		}
	}
	return false
}

// 错误类别
var (
	// ErrExchange 交易所业务错误（兜底类别）
	ErrExchange = newKind("ExchangeError", nil)
	// ErrAuthentication 凭证缺失或无效
	ErrAuthentication = newKind("AuthenticationError", ErrExchange)
	// ErrPermissionDenied 已认证但无权限
	ErrPermissionDenied = newKind("PermissionDenied", ErrAuthentication)
	// ErrAccountSuspended 账户被冻结
	ErrAccountSuspended = newKind("AccountSuspended", ErrAuthentication)
	// ErrArgumentsRequired 缺少必要参数
	ErrArgumentsRequired = newKind("ArgumentsRequired", ErrExchange)
	// ErrBadRequest 请求参数错误
	ErrBadRequest = newKind("BadRequest", ErrExchange)
	// ErrBadSymbol 交易对不存在
	ErrBadSymbol = newKind("BadSymbol", ErrBadRequest)
	// ErrInsufficientFunds 余额不足
	ErrInsufficientFunds = newKind("InsufficientFunds", ErrExchange)
	// ErrInvalidAddress 地址无效
	ErrInvalidAddress = newKind("InvalidAddress", ErrExchange)
	// ErrAddressPending 充值地址尚未生成
	ErrAddressPending = newKind("AddressPending", ErrInvalidAddress)
	// ErrInvalidOrder 订单参数错误
	ErrInvalidOrder = newKind("InvalidOrder", ErrExchange)
	// ErrOrderNotFound 订单不存在
	ErrOrderNotFound = newKind("OrderNotFound", ErrInvalidOrder)
	// ErrNotSupported 交易所不支持该操作
	ErrNotSupported = newKind("NotSupported", ErrExchange)

	// ErrNetwork 网络类错误（可稍后重试）
	ErrNetwork = newKind("NetworkError", nil)
	// ErrDDoSProtection 触发防护
	ErrDDoSProtection = newKind("DDoSProtection", ErrNetwork)
	// ErrRateLimitExceeded 超过频率限制
	ErrRateLimitExceeded = newKind("RateLimitExceeded", ErrDDoSProtection)
	// ErrExchangeNotAvailable 交易所不可用
	ErrExchangeNotAvailable = newKind("ExchangeNotAvailable", ErrNetwork)
	// ErrOnMaintenance 交易所维护中
	ErrOnMaintenance = newKind("OnMaintenance", ErrExchangeNotAvailable)
	// ErrInvalidNonce nonce 无效
	ErrInvalidNonce = newKind("InvalidNonce", ErrNetwork)
	// ErrRequestTimeout 请求超时
	ErrRequestTimeout = newKind("RequestTimeout", ErrNetwork)

	// ErrNumeric 数值计算错误
	ErrNumeric = newKind("NumericError", nil)
)

// Error 带交易所上下文的分类错误
type Error struct {
	// Kind 错误类别
	Kind *Kind
	// Exchange 交易所名称
	Exchange string
	// Code 交易所原始错误码
	Code string
	// Message 交易所原始错误信息
	Message string
}

// New 创建分类错误
func New(kind *Kind, exchange, message string) *Error {
	return &Error{Kind: kind, Exchange: exchange, Message: message}
}

// Newf 创建分类错误（格式化信息）
func Newf(kind *Kind, exchange, format string, args ...interface{}) *Error {
	return New(kind, exchange, fmt.Sprintf(format, args...))
}

func (e *Error) Error() string {
	var b strings.Builder
	if e.Exchange != "" {
		b.WriteString(e.Exchange)
		b.WriteByte(' ')
	}
	b.WriteString(e.Kind.name)
	if e.Code != "" {
		b.WriteString(" [")
		b.WriteString(e.Code)
		b.WriteByte(']')
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	return b.String()
}

// Unwrap 返回错误类别
func (e *Error) Unwrap() error {
	return e.Kind
}

// NumericError 精确计算失败（格式错误或除零）
type NumericError struct {
	Op       string
	Operands []string
	Reason   string
}

func (e *NumericError) Error() string {
	return fmt.Sprintf("numeric error: %s(%s): %s", e.Op, strings.Join(e.Operands, ", "), e.Reason)
}

// Unwrap 返回 ErrNumeric
func (e *NumericError) Unwrap() error {
	return ErrNumeric
}

// KindOf 返回错误链中的类别（无分类返回 nil）
func KindOf(err error) *Kind {
	var k *Kind
	if errors.As(err, &k) {
		return k
	}
	return nil
}

// IsTransient 网络类错误：限频、维护、不可用，可稍后重试
func IsTransient(err error) bool {
	return errors.Is(err, ErrNetwork)
}

// IsCredential 凭证类错误：需要修正 API Key 或权限
func IsCredential(err error) bool {
	return errors.Is(err, ErrAuthentication)
}

// IsPermanent 请求本身有误，重试无效
func IsPermanent(err error) bool {
	return errors.Is(err, ErrExchange) && !IsCredential(err)
}
