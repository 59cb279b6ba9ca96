package model

import "github.com/lemconn/exnorm/types"

// OrderBookEntry 订单簿条目
type OrderBookEntry struct {
	// Price 价格
	Price types.ExDecimal `json:"price"`
	// Amount 数量
	Amount types.ExDecimal `json:"amount"`
	// Extra 附加字段，如订单数
	Extra []string `json:"extra,omitempty"`
}

// OrderBook 订单簿
type OrderBook struct {
	// Symbol 交易对
	Symbol string `json:"symbol"`
	// Bids 买单列表（价格从高到低）
	Bids []OrderBookEntry `json:"bids"`
	// Asks 卖单列表（价格从低到高）
	Asks []OrderBookEntry `json:"asks"`
	// Timestamp 时间戳（毫秒）
	Timestamp int64 `json:"timestamp"`
	// Datetime ISO-8601 时间
	Datetime string `json:"datetime"`
	// Nonce 序列号
	Nonce *int64 `json:"nonce,omitempty"`
}
