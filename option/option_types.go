package option

import (
	"strings"
)

// OrderSide 订单方向
type OrderSide string

const (
	// Buy 买入
	Buy OrderSide = "buy"
	// Sell 卖出
	Sell OrderSide = "sell"
)

// String 返回字符串表示
func (o OrderSide) String() string {
	return string(o)
}

// Upper 返回大写字符串
func (o OrderSide) Upper() string {
	return strings.ToUpper(string(o))
}

// Valid 是否为合法方向
func (o OrderSide) Valid() bool {
	return o == Buy || o == Sell
}

// OrderType 订单类型
type OrderType string

const (
	// Market 市价单
	Market OrderType = "market"
	// Limit 限价单
	Limit OrderType = "limit"
	// StopLoss 止损市价单
	StopLoss OrderType = "stopLoss"
	// StopLossLimit 止损限价单
	StopLossLimit OrderType = "stopLossLimit"
	// TakeProfit 止盈市价单
	TakeProfit OrderType = "takeProfit"
	// TakeProfitLimit 止盈限价单
	TakeProfitLimit OrderType = "takeProfitLimit"
)

// String 返回字符串表示
func (t OrderType) String() string {
	return string(t)
}

// Upper 返回大写字符串
func (t OrderType) Upper() string {
	return strings.ToUpper(string(t))
}

// Capitalize 返回首字母大写的字符串
func (t OrderType) Capitalize() string {
	s := strings.ToLower(string(t))
	if len(s) == 0 {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// IsMarket 判断是否为市价单
func (t OrderType) IsMarket() bool {
	return t == Market
}

// IsLimit 判断是否为限价单
func (t OrderType) IsLimit() bool {
	return t == Limit
}

// TimeInForce 订单有效期类型
type TimeInForce string

const (
	// GTC Good Till Cancel 成交为止
	GTC TimeInForce = "GTC"
	// IOC Immediate or Cancel 无法立即成交(吃单)的部分就撤销
	IOC TimeInForce = "IOC"
	// FOK Fill or Kill 无法全部立即成交就撤销
	FOK TimeInForce = "FOK"
	// PO Post Only 只做 maker
	PO TimeInForce = "PO"
)

// String 返回字符串表示
func (t TimeInForce) String() string {
	return string(t)
}

// Upper 返回大写字符串
func (t TimeInForce) Upper() string {
	return strings.ToUpper(string(t))
}

// Lower 返回小写字符串
func (t TimeInForce) Lower() string {
	return strings.ToLower(string(t))
}
