package model

import "github.com/lemconn/exnorm/types"

// TakerOrMaker 成交角色
type TakerOrMaker string

const (
	// Taker 吃单
	Taker TakerOrMaker = "taker"
	// Maker 挂单
	Maker TakerOrMaker = "maker"
)

// Trade 成交记录
type Trade struct {
	// ID 成交ID
	ID string `json:"id"`
	// Order 订单ID
	Order string `json:"order,omitempty"`
	// Timestamp 时间戳（毫秒）
	Timestamp int64 `json:"timestamp"`
	// Datetime ISO-8601 时间
	Datetime string `json:"datetime"`
	// Symbol 交易对
	Symbol string `json:"symbol"`
	// Type 订单类型
	Type string `json:"type,omitempty"`
	// Side 方向（buy/sell）
	Side string `json:"side"`
	// TakerOrMaker 成交角色
	TakerOrMaker TakerOrMaker `json:"taker_or_maker,omitempty"`
	// Price 成交价
	Price types.ExDecimal `json:"price"`
	// Amount 成交量
	Amount types.ExDecimal `json:"amount"`
	// Cost 成交额，仅在交易所返回时设置
	Cost types.ExDecimal `json:"cost"`
	// Fee 手续费
	Fee *Fee `json:"fee,omitempty"`
	// Info 交易所原始信息
	Info interface{} `json:"info,omitempty"`
}

// Trades 成交记录数组
type Trades []*Trade
