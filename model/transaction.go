package model

import "github.com/lemconn/exnorm/types"

// 充提类型
const (
	// TransactionDeposit 充值
	TransactionDeposit = "deposit"
	// TransactionWithdrawal 提现
	TransactionWithdrawal = "withdrawal"
)

// 统一充提状态，终态为 ok / failed / canceled
const (
	// TransactionStatusPending 处理中
	TransactionStatusPending = "pending"
	// TransactionStatusOK 已完成
	TransactionStatusOK = "ok"
	// TransactionStatusFailed 失败
	TransactionStatusFailed = "failed"
	// TransactionStatusCanceled 已取消
	TransactionStatusCanceled = "canceled"
)

// Transaction 充值或提现记录
type Transaction struct {
	// ID 记录ID
	ID string `json:"id"`
	// TxID 链上交易哈希
	TxID string `json:"txid,omitempty"`
	// Timestamp 时间戳（毫秒）
	Timestamp int64 `json:"timestamp"`
	// Datetime ISO-8601 时间
	Datetime string `json:"datetime"`
	// Currency 统一币种代码
	Currency string `json:"currency"`
	// Network 网络
	Network string `json:"network,omitempty"`
	// Amount 数量
	Amount types.ExDecimal `json:"amount"`
	// Address 地址
	Address string `json:"address,omitempty"`
	// AddressTo 目标地址
	AddressTo string `json:"address_to,omitempty"`
	// Tag 地址标签 / memo
	Tag string `json:"tag,omitempty"`
	// TagTo 目标地址标签
	TagTo string `json:"tag_to,omitempty"`
	// Type deposit / withdrawal
	Type string `json:"type"`
	// Status 状态
	Status string `json:"status"`
	// Updated 更新时间（毫秒）
	Updated int64 `json:"updated,omitempty"`
	// Fee 手续费
	Fee *Fee `json:"fee,omitempty"`
	// Info 交易所原始信息
	Info interface{} `json:"info,omitempty"`
}

// Transactions 充提记录数组
type Transactions []*Transaction
