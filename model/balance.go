package model

import "github.com/lemconn/exnorm/types"

// Balance 单币种余额，交易所未返回的字段保持无效，不补 0
type Balance struct {
	// Free 可用余额
	Free types.ExDecimal `json:"free"`
	// Used 冻结余额
	Used types.ExDecimal `json:"used"`
	// Total 总余额
	Total types.ExDecimal `json:"total"`
}

// Balances 账户余额
type Balances struct {
	// Timestamp 时间戳（毫秒）
	Timestamp int64 `json:"timestamp,omitempty"`
	// Currencies 币种代码 -> 余额
	Currencies map[string]*Balance `json:"currencies"`
	// Info 交易所原始信息
	Info interface{} `json:"info,omitempty"`
}

// NewBalances 创建空余额
func NewBalances(info interface{}) *Balances {
	return &Balances{
		Currencies: make(map[string]*Balance),
		Info:       info,
	}
}

// Get 获取指定币种余额，不存在时返回 nil
func (b *Balances) Get(code string) *Balance {
	if b == nil {
		return nil
	}
	return b.Currencies[code]
}
