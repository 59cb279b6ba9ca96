package model

import "github.com/lemconn/exnorm/types"

// OrderSide 订单方向
type OrderSide string

const (
	// OrderSideBuy 买入
	OrderSideBuy OrderSide = "buy"
	// OrderSideSell 卖出
	OrderSideSell OrderSide = "sell"
)

// OrderType 订单类型
type OrderType string

const (
	// OrderTypeMarket 市价单
	OrderTypeMarket OrderType = "market"
	// OrderTypeLimit 限价单
	OrderTypeLimit OrderType = "limit"
)

// 统一订单状态，终态为 closed / canceled / failed / expired
const (
	// OrderStatusOpen 未完成
	OrderStatusOpen = "open"
	// OrderStatusClosed 已完全成交
	OrderStatusClosed = "closed"
	// OrderStatusCanceled 已取消
	OrderStatusCanceled = "canceled"
	// OrderStatusFailed 失败
	OrderStatusFailed = "failed"
	// OrderStatusExpired 已过期
	OrderStatusExpired = "expired"
)

// OrderTimeInForce 订单有效期
type OrderTimeInForce string

const (
	// OrderTimeInForceGTC 订单有效直到取消（Good Till Cancel）
	OrderTimeInForceGTC OrderTimeInForce = "GTC"
	// OrderTimeInForceIOC 立即成交或取消（Immediate Or Cancel）
	OrderTimeInForceIOC OrderTimeInForce = "IOC"
	// OrderTimeInForceFOK 全部成交或取消（Fill Or Kill）
	OrderTimeInForceFOK OrderTimeInForce = "FOK"
	// OrderTimeInForcePO 只做 maker（Post Only）
	OrderTimeInForcePO OrderTimeInForce = "PO"
)

// Fee 手续费信息
type Fee struct {
	// Currency 手续费币种
	Currency string `json:"currency"`
	// Cost 手续费金额
	Cost types.ExDecimal `json:"cost"`
	// Rate 手续费率
	Rate types.ExDecimal `json:"rate"`
}

// Order 订单信息
// Status 总是统一状态或交易所原始状态（未收录时原样透传），原始数据保留在 Info 中
type Order struct {
	// ID 订单ID
	ID string `json:"id"`
	// ClientOrderID 客户端订单ID
	ClientOrderID string `json:"client_order_id,omitempty"`
	// Timestamp 下单时间（毫秒）
	Timestamp int64 `json:"timestamp"`
	// Datetime ISO-8601 时间
	Datetime string `json:"datetime"`
	// LastTradeTimestamp 最近成交时间（毫秒）
	LastTradeTimestamp int64 `json:"last_trade_timestamp,omitempty"`
	// Symbol 交易对
	Symbol string `json:"symbol"`
	// Type 订单类型
	Type string `json:"type,omitempty"`
	// Side 订单方向
	Side string `json:"side"`
	// TimeInForce 有效期
	TimeInForce string `json:"time_in_force,omitempty"`
	// PostOnly 是否只做 maker
	PostOnly *bool `json:"post_only,omitempty"`
	// Price 委托价格
	Price types.ExDecimal `json:"price"`
	// StopPrice 触发价格
	StopPrice types.ExDecimal `json:"stop_price"`
	// Amount 委托数量
	Amount types.ExDecimal `json:"amount"`
	// Filled 已成交数量
	Filled types.ExDecimal `json:"filled"`
	// Remaining 未成交数量
	Remaining types.ExDecimal `json:"remaining"`
	// Cost 成交金额
	Cost types.ExDecimal `json:"cost"`
	// Average 成交均价
	Average types.ExDecimal `json:"average"`
	// Status 订单状态
	Status string `json:"status"`
	// Fee 手续费
	Fee *Fee `json:"fee,omitempty"`
	// Trades 成交明细
	Trades Trades `json:"trades,omitempty"`
	// Info 交易所原始信息
	Info interface{} `json:"info,omitempty"`
}

// Orders 订单数组
type Orders []*Order
