package model

import "github.com/lemconn/exnorm/types"

// MarketType 市场类型
type MarketType string

const (
	// MarketTypeSpot 现货市场
	MarketTypeSpot MarketType = "spot"
	// MarketTypeSwap 永续合约市场
	MarketTypeSwap MarketType = "swap"
	// MarketTypeFuture 交割合约市场
	MarketTypeFuture MarketType = "future"
	// MarketTypeOption 期权市场
	MarketTypeOption MarketType = "option"
)

// PrecisionMode 精度表示方式
type PrecisionMode int

const (
	// PrecisionDecimalPlaces 精度为小数位数，如 8
	PrecisionDecimalPlaces PrecisionMode = iota
	// PrecisionTickSize 精度为最小变动单位，如 0.00000001
	PrecisionTickSize
)

// MinMax 上下限
type MinMax struct {
	// Min 最小值
	Min types.ExDecimal `json:"min"`
	// Max 最大值
	Max types.ExDecimal `json:"max"`
}

// MarketLimits 市场限制
type MarketLimits struct {
	// Amount 数量限制
	Amount MinMax `json:"amount"`
	// Price 价格限制
	Price MinMax `json:"price"`
	// Cost 成交额限制
	Cost MinMax `json:"cost"`
	// Leverage 杠杆限制
	Leverage MinMax `json:"leverage"`
}

// MarketPrecision 市场精度，按交易所的 PrecisionMode 解释
type MarketPrecision struct {
	// Amount 数量精度
	Amount types.ExDecimal `json:"amount"`
	// Price 价格精度
	Price types.ExDecimal `json:"price"`
}

// Market 市场信息
type Market struct {
	// ID 交易所原始市场ID，如 "ETH-BTC"
	ID string `json:"id"`

	// Symbol 交易对符号（统一格式），如 "ETH/BTC" 或 "BTC/USDT:USDT"
	Symbol string `json:"symbol"`

	// Base 基础货币，如 "ETH"
	Base string `json:"base"`

	// Quote 计价货币，如 "BTC"
	Quote string `json:"quote"`

	// Settle 结算货币（合约市场）
	Settle string `json:"settle,omitempty"`

	// BaseID 交易所原始基础货币ID
	BaseID string `json:"base_id"`

	// QuoteID 交易所原始计价货币ID
	QuoteID string `json:"quote_id"`

	// SettleID 交易所原始结算货币ID
	SettleID string `json:"settle_id,omitempty"`

	// Type 市场类型
	Type MarketType `json:"type"`

	// Spot 是否为现货
	Spot bool `json:"spot"`

	// Contract 是否为合约市场
	Contract bool `json:"contract,omitempty"`

	// Linear 是否为线性合约（U本位）
	Linear bool `json:"linear,omitempty"`

	// Inverse 是否为反向合约（币本位）
	Inverse bool `json:"inverse,omitempty"`

	// Active 是否活跃
	Active bool `json:"active"`

	// ContractSize 合约面值
	ContractSize types.ExDecimal `json:"contract_size"`

	// Taker 吃单费率
	Taker types.ExDecimal `json:"taker"`

	// Maker 挂单费率
	Maker types.ExDecimal `json:"maker"`

	// Precision 精度信息
	Precision MarketPrecision `json:"precision"`

	// Limits 限制信息
	Limits MarketLimits `json:"limits"`

	// Info 交易所原始信息
	Info interface{} `json:"info,omitempty"`
}
