package model

import "github.com/lemconn/exnorm/types"

// DepositAddress 充值地址
type DepositAddress struct {
	// Currency 统一币种代码
	Currency string `json:"currency"`
	// Address 地址
	Address string `json:"address"`
	// Tag 地址标签 / memo
	Tag string `json:"tag,omitempty"`
	// Network 网络
	Network string `json:"network,omitempty"`
	// Info 交易所原始信息
	Info interface{} `json:"info,omitempty"`
}

// TradingFee 交易手续费率
type TradingFee struct {
	// Symbol 交易对
	Symbol string `json:"symbol"`
	// Maker 挂单费率
	Maker types.ExDecimal `json:"maker"`
	// Taker 吃单费率
	Taker types.ExDecimal `json:"taker"`
	// Info 交易所原始信息
	Info interface{} `json:"info,omitempty"`
}

// TradingFees 交易对 -> 费率
type TradingFees map[string]*TradingFee

// TransactionFees 提现手续费（币种代码 -> 手续费）
type TransactionFees struct {
	Withdraw map[string]types.ExDecimal `json:"withdraw"`
	Deposit  map[string]types.ExDecimal `json:"deposit"`
	Info     interface{}                `json:"info,omitempty"`
}

// TransferEntry 账户间划转记录
type TransferEntry struct {
	// ID 划转ID
	ID string `json:"id"`
	// Timestamp 时间戳（毫秒）
	Timestamp int64 `json:"timestamp"`
	// Datetime ISO-8601 时间
	Datetime string `json:"datetime"`
	// Currency 统一币种代码
	Currency string `json:"currency"`
	// Amount 数量
	Amount types.ExDecimal `json:"amount"`
	// FromAccount 转出账户
	FromAccount string `json:"from_account"`
	// ToAccount 转入账户
	ToAccount string `json:"to_account"`
	// Status 状态
	Status string `json:"status,omitempty"`
	// Info 交易所原始信息
	Info interface{} `json:"info,omitempty"`
}

// NewTransactionFees 创建空的充提手续费
func NewTransactionFees() *TransactionFees {
	return &TransactionFees{
		Withdraw: make(map[string]types.ExDecimal),
		Deposit:  make(map[string]types.ExDecimal),
	}
}
