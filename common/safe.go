package common

import (
	"math"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"

	"github.com/lemconn/exnorm/types"
)

// 安全取值工具：容器可以是 map[string]interface{} 或 []interface{}
// 缺失、null、类型不符均视为不存在，不会 panic 也不会返回错误

// SafeValue 按 key（map）或下标（slice）取值
func SafeValue(obj interface{}, key interface{}) (interface{}, bool) {
	switch c := obj.(type) {
	case map[string]interface{}:
		k, ok := key.(string)
		if !ok {
			return nil, false
		}
		v, ok := c[k]
		if !ok || v == nil {
			return nil, false
		}
		return v, true
	case []interface{}:
		idx, ok := toIndex(key)
		if !ok || idx < 0 || idx >= len(c) {
			return nil, false
		}
		v := c[idx]
		if v == nil {
			return nil, false
		}
		return v, true
	}
	return nil, false
}

func toIndex(key interface{}) (int, bool) {
	switch k := key.(type) {
	case int:
		return k, true
	case int64:
		return int(k), true
	case string:
		n, err := strconv.Atoi(k)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

// stringify 将标量转换为字符串，数字保持原始文本
func stringify(v interface{}) (string, bool) {
	switch val := v.(type) {
	case string:
		if val == "" {
			return "", false
		}
		return val, true
	case json.Number:
		s := val.String()
		if s == "" {
			return "", false
		}
		return s, true
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return "", false
		}
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case float32:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return "", false
		}
		return strconv.FormatFloat(f, 'f', -1, 32), true
	case int:
		return strconv.Itoa(val), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case bool:
		return strconv.FormatBool(val), true
	}
	return "", false
}

// SafeString 取字符串值
func SafeString(obj interface{}, key interface{}) (string, bool) {
	v, ok := SafeValue(obj, key)
	if !ok {
		return "", false
	}
	return stringify(v)
}

// SafeStringOr 取字符串值，不存在时返回默认值
func SafeStringOr(obj interface{}, key interface{}, def string) string {
	if s, ok := SafeString(obj, key); ok {
		return s
	}
	return def
}

// SafeString2 依次尝试两个 key
func SafeString2(obj interface{}, key1, key2 interface{}) (string, bool) {
	return SafeStringN(obj, key1, key2)
}

// SafeStringN 依次尝试多个 key，返回第一个存在的值
func SafeStringN(obj interface{}, keys ...interface{}) (string, bool) {
	for _, k := range keys {
		if s, ok := SafeString(obj, k); ok {
			return s, true
		}
	}
	return "", false
}

// SafeStringIndex 取元组字段中的元素，如 ["0.073","BTC"] 中的价格
func SafeStringIndex(obj interface{}, key interface{}, idx int) (string, bool) {
	v, ok := SafeValue(obj, key)
	if !ok {
		return "", false
	}
	return SafeString(v, idx)
}

// SafeStringLower 取字符串并转小写
func SafeStringLower(obj interface{}, key interface{}) (string, bool) {
	s, ok := SafeString(obj, key)
	if !ok {
		return "", false
	}
	return strings.ToLower(s), true
}

// SafeStringUpper 取字符串并转大写
func SafeStringUpper(obj interface{}, key interface{}) (string, bool) {
	s, ok := SafeString(obj, key)
	if !ok {
		return "", false
	}
	return strings.ToUpper(s), true
}

// SafeInteger 取整数值，接受整数、数字字符串，小数部分截断
func SafeInteger(obj interface{}, key interface{}) (int64, bool) {
	s, ok := SafeString(obj, key)
	if !ok {
		return 0, false
	}
	return parseInteger(s)
}

// SafeInteger2 依次尝试两个 key
func SafeInteger2(obj interface{}, key1, key2 interface{}) (int64, bool) {
	if n, ok := SafeInteger(obj, key1); ok {
		return n, true
	}
	return SafeInteger(obj, key2)
}

func parseInteger(s string) (int64, bool) {
	if n, err := strconv.ParseInt(s, 10, 64); err == nil {
		return n, true
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return decimalToInt64(d)
}

// decimalToInt64 截断小数部分，超出 int64 范围时返回 false
func decimalToInt64(d decimal.Decimal) (int64, bool) {
	n := d.Truncate(0).BigInt()
	if !n.IsInt64() {
		return 0, false
	}
	return n.Int64(), true
}

// SafeIntegerProduct 取数值并乘以系数后取整，如秒转毫秒
func SafeIntegerProduct(obj interface{}, key interface{}, factor int64) (int64, bool) {
	s, ok := SafeString(obj, key)
	if !ok {
		return 0, false
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, false
	}
	return decimalToInt64(d.Mul(decimal.NewFromInt(factor)))
}

// SafeTimestamp 取秒级时间戳并转为毫秒
func SafeTimestamp(obj interface{}, key interface{}) (int64, bool) {
	return SafeIntegerProduct(obj, key, 1000)
}

// SafeTimestamp2 依次尝试两个 key（秒级）
func SafeTimestamp2(obj interface{}, key1, key2 interface{}) (int64, bool) {
	if n, ok := SafeTimestamp(obj, key1); ok {
		return n, true
	}
	return SafeTimestamp(obj, key2)
}

// SafeBool 取布尔值，接受 true/false 与 "true"/"false"
func SafeBool(obj interface{}, key interface{}) (bool, bool) {
	v, ok := SafeValue(obj, key)
	if !ok {
		return false, false
	}
	switch val := v.(type) {
	case bool:
		return val, true
	case string:
		b, err := strconv.ParseBool(val)
		if err != nil {
			return false, false
		}
		return b, true
	}
	return false, false
}

// SafeBoolOr 取布尔值，不存在时返回默认值
func SafeBoolOr(obj interface{}, key interface{}, def bool) bool {
	if b, ok := SafeBool(obj, key); ok {
		return b
	}
	return def
}

// SafeMap 取对象值
func SafeMap(obj interface{}, key interface{}) (map[string]interface{}, bool) {
	v, ok := SafeValue(obj, key)
	if !ok {
		return nil, false
	}
	m, ok := v.(map[string]interface{})
	return m, ok
}

// SafeList 取数组值
func SafeList(obj interface{}, key interface{}) ([]interface{}, bool) {
	v, ok := SafeValue(obj, key)
	if !ok {
		return nil, false
	}
	l, ok := v.([]interface{})
	return l, ok
}

// SafeDecimal 取十进制数值，缺失或非数字返回无效值
func SafeDecimal(obj interface{}, key interface{}) types.ExDecimal {
	s, ok := SafeString(obj, key)
	if !ok {
		return types.ExDecimal{}
	}
	return types.NewExDecimal(s)
}

// SafeDecimal2 依次尝试两个 key
func SafeDecimal2(obj interface{}, key1, key2 interface{}) types.ExDecimal {
	return SafeDecimal(obj, key1).Or(SafeDecimal(obj, key2))
}

// SafeDecimalIndex 取元组字段中的十进制数值
func SafeDecimalIndex(obj interface{}, key interface{}, idx int) types.ExDecimal {
	s, ok := SafeStringIndex(obj, key, idx)
	if !ok {
		return types.ExDecimal{}
	}
	return types.NewExDecimal(s)
}

// DecimalOf 将任意标量转换为十进制数值
func DecimalOf(v interface{}) types.ExDecimal {
	s, ok := stringify(v)
	if !ok {
		return types.ExDecimal{}
	}
	return types.NewExDecimal(s)
}

// AsMap 将原始值断言为对象
func AsMap(v interface{}) map[string]interface{} {
	m, _ := v.(map[string]interface{})
	return m
}

// AsList 将原始值断言为数组
func AsList(v interface{}) []interface{} {
	l, _ := v.([]interface{})
	return l
}
