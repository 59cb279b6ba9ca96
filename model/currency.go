package model

import "github.com/lemconn/exnorm/types"

// CurrencyLimits 币种限制
type CurrencyLimits struct {
	Amount   MinMax `json:"amount"`
	Withdraw MinMax `json:"withdraw"`
	Deposit  MinMax `json:"deposit"`
}

// Network 币种在某条链上的信息
type Network struct {
	// ID 交易所原始网络ID
	ID string `json:"id"`
	// Network 统一网络名称，如 "ERC20"
	Network string `json:"network"`
	// Active 是否可用
	Active bool `json:"active"`
	// Deposit 是否可充值
	Deposit bool `json:"deposit"`
	// Withdraw 是否可提现
	Withdraw bool `json:"withdraw"`
	// Fee 提现手续费
	Fee types.ExDecimal `json:"fee"`
	// Precision 精度
	Precision types.ExDecimal `json:"precision"`
	// Limits 限制
	Limits CurrencyLimits `json:"limits"`
	// Info 交易所原始信息
	Info interface{} `json:"info,omitempty"`
}

// Currency 币种信息
type Currency struct {
	// ID 交易所原始币种ID
	ID string `json:"id"`
	// Code 统一币种代码
	Code string `json:"code"`
	// Name 币种名称
	Name string `json:"name,omitempty"`
	// Precision 精度
	Precision types.ExDecimal `json:"precision"`
	// Active 是否可用
	Active bool `json:"active"`
	// Deposit 是否可充值
	Deposit bool `json:"deposit"`
	// Withdraw 是否可提现
	Withdraw bool `json:"withdraw"`
	// Fee 提现手续费
	Fee types.ExDecimal `json:"fee"`
	// Networks 网络信息（网络名称 -> 网络）
	Networks map[string]*Network `json:"networks,omitempty"`
	// Limits 限制
	Limits CurrencyLimits `json:"limits"`
	// Info 交易所原始信息
	Info interface{} `json:"info,omitempty"`
}
