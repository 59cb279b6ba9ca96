package types

import (
	"strings"

	"github.com/shopspring/decimal"
)

// ExDecimal 可空的 decimal.Decimal 类型
// Valid 为 false 表示交易所未返回该字段，不能当作 0 使用
type ExDecimal struct {
	decimal.Decimal
	Valid bool
}

// NewExDecimal 从十进制字符串创建，空串或无法解析时返回无效值
func NewExDecimal(s string) ExDecimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return ExDecimal{}
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return ExDecimal{}
	}
	return ExDecimal{Decimal: d, Valid: true}
}

// ExDecimalFrom 从 decimal.Decimal 创建有效值
func ExDecimalFrom(d decimal.Decimal) ExDecimal {
	return ExDecimal{Decimal: d, Valid: true}
}

// String 返回十进制字符串，无效值返回空串
func (d ExDecimal) String() string {
	if !d.Valid {
		return ""
	}
	return d.Decimal.String()
}

// Ptr 返回字符串指针，无效值返回 nil
func (d ExDecimal) Ptr() *string {
	if !d.Valid {
		return nil
	}
	s := d.Decimal.String()
	return &s
}

// Or 无效时返回 fallback
func (d ExDecimal) Or(fallback ExDecimal) ExDecimal {
	if d.Valid {
		return d
	}
	return fallback
}

// Equal 比较两个值（均无效时视为相等）
func (d ExDecimal) Equal(other ExDecimal) bool {
	if d.Valid != other.Valid {
		return false
	}
	if !d.Valid {
		return true
	}
	return d.Decimal.Equal(other.Decimal)
}

// MarshalJSON 有效值序列化为字符串，无效值序列化为 null
func (d ExDecimal) MarshalJSON() ([]byte, error) {
	if !d.Valid {
		return []byte("null"), nil
	}
	return []byte(`"` + d.Decimal.String() + `"`), nil
}

// UnmarshalJSON 自定义 JSON 反序列化，空字符串或 null 视为无效
func (d *ExDecimal) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(strings.Trim(string(data), `"`))
	if s == "" || s == "null" {
		d.Decimal = decimal.Zero
		d.Valid = false
		return nil
	}
	if err := d.Decimal.UnmarshalJSON(data); err != nil {
		return err
	}
	d.Valid = true
	return nil
}
