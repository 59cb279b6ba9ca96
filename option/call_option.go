package option

import (
	"time"
)

// ExchangeArgsOptions 方法调用参数选项（用于 Exchange 方法调用）
type ExchangeArgsOptions struct {
	// ========== 通用查询参数 ==========
	// Limit 限制返回数量
	Limit *int
	// Since 起始时间
	Since *time.Time
	// Symbols 交易对列表（用于 FetchTickers 等方法）
	Symbols []string
	// Code 币种代码（用于 FetchDeposits 等方法）
	Code *string

	// ========== 订单相关参数 ==========
	// Price 订单价格（限价单必填）
	Price *string
	// StopPrice 触发价格（止损 / 止盈单）
	StopPrice *string
	// ClientOrderID 客户端订单ID
	ClientOrderID *string
	// TimeInForce 订单有效期
	TimeInForce *TimeInForce
	// PostOnly 是否只做 maker
	PostOnly *bool

	// ========== 充提相关参数 ==========
	// Tag 地址标签 / memo
	Tag *string
	// Network 网络，如 ERC20
	Network *string

	// Params 透传给交易所的额外参数（不做校验）
	Params map[string]interface{}
}

// ArgsOption 方法调用参数选项函数类型
type ArgsOption func(*ExchangeArgsOptions)

// ApplyArgs 应用调用参数选项
func ApplyArgs(opts ...ArgsOption) *ExchangeArgsOptions {
	args := &ExchangeArgsOptions{}
	for _, opt := range opts {
		opt(args)
	}
	return args
}

// ========== 通用查询参数选项 ==========

// WithLimit 设置限制返回数量
func WithLimit(limit int) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		opts.Limit = &limit
	}
}

// WithSince 设置起始时间
func WithSince(since time.Time) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		opts.Since = &since
	}
}

// WithSymbols 设置交易对列表
func WithSymbols(symbols ...string) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		opts.Symbols = symbols
	}
}

// WithCode 设置币种代码
func WithCode(code string) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		opts.Code = &code
	}
}

// ========== 订单相关参数选项 ==========

// WithPrice 设置订单价格
func WithPrice(price string) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		opts.Price = &price
	}
}

// WithStopPrice 设置触发价格
func WithStopPrice(stopPrice string) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		opts.StopPrice = &stopPrice
	}
}

// WithClientOrderID 设置客户端订单ID
func WithClientOrderID(clientOrderID string) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		opts.ClientOrderID = &clientOrderID
	}
}

// WithTimeInForce 设置订单有效期
func WithTimeInForce(timeInForce TimeInForce) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		opts.TimeInForce = &timeInForce
	}
}

// WithPostOnly 设置只做 maker
func WithPostOnly(postOnly bool) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		opts.PostOnly = &postOnly
	}
}

// ========== 充提相关参数选项 ==========

// WithTag 设置地址标签
func WithTag(tag string) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		opts.Tag = &tag
	}
}

// WithNetwork 设置网络
func WithNetwork(network string) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		opts.Network = &network
	}
}

// WithParams 合并透传参数
func WithParams(params map[string]interface{}) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		if opts.Params == nil {
			opts.Params = make(map[string]interface{}, len(params))
		}
		for k, v := range params {
			opts.Params[k] = v
		}
	}
}

// WithParam 设置单个透传参数
func WithParam(key string, value interface{}) ArgsOption {
	return func(opts *ExchangeArgsOptions) {
		if opts.Params == nil {
			opts.Params = make(map[string]interface{})
		}
		opts.Params[key] = value
	}
}

// SinceMillis 起始时间（毫秒），未设置返回 0
func (o *ExchangeArgsOptions) SinceMillis() int64 {
	if o.Since != nil && !o.Since.IsZero() {
		return o.Since.UnixMilli()
	}
	return 0
}

// LimitOr 返回数量限制，未设置时返回默认值
func (o *ExchangeArgsOptions) LimitOr(def int) int {
	if o.Limit != nil {
		return *o.Limit
	}
	return def
}

// MergeParams 将透传参数合并到请求参数（透传参数优先）
func (o *ExchangeArgsOptions) MergeParams(request map[string]interface{}) map[string]interface{} {
	if request == nil {
		request = make(map[string]interface{}, len(o.Params))
	}
	for k, v := range o.Params {
		request[k] = v
	}
	return request
}

// PopParam 取出并移除透传参数中的 key
func (o *ExchangeArgsOptions) PopParam(key string) (interface{}, bool) {
	v, ok := o.Params[key]
	if ok {
		delete(o.Params, key)
	}
	return v, ok
}
