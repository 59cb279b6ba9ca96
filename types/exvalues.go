package types

import (
	"fmt"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"github.com/shopspring/decimal"
)

// ExValues 有序的请求参数容器
//
//   - order 记录 key 首次出现的顺序
//   - values 每个 key 可以对应多个值
//   - EncodeQuery 按插入顺序编码，签名串与请求体保持一致
type ExValues struct {
	order  []string
	values map[string][]string
}

// NewExValues 创建参数容器
func NewExValues() *ExValues {
	return &ExValues{
		order:  make([]string, 0),
		values: make(map[string][]string),
	}
}

// ExValuesFromMap 从 map 创建参数容器，key 按字典序排列
func ExValuesFromMap(params map[string]interface{}) *ExValues {
	v := NewExValues()
	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		v.SetAny(k, params[k])
	}
	return v
}

// Set 设置单个值，首次出现的 key 记录位置
func (v *ExValues) Set(key, value string) {
	if _, exists := v.values[key]; !exists {
		v.order = append(v.order, key)
	}
	v.values[key] = []string{value}
}

// Add 追加一个值
func (v *ExValues) Add(key, value string) {
	if _, exists := v.values[key]; !exists {
		v.order = append(v.order, key)
	}
	v.values[key] = append(v.values[key], value)
}

// SetAny 按类型格式化后设置，切片展开为多个值，nil 被忽略
func (v *ExValues) SetAny(key string, value interface{}) {
	vs, ok := formatValues(value)
	if !ok {
		return
	}
	if _, exists := v.values[key]; !exists {
		v.order = append(v.order, key)
	}
	v.values[key] = vs
}

// AddAny 按类型格式化后追加
func (v *ExValues) AddAny(key string, value interface{}) {
	vs, ok := formatValues(value)
	if !ok {
		return
	}
	if _, exists := v.values[key]; !exists {
		v.order = append(v.order, key)
	}
	v.values[key] = append(v.values[key], vs...)
}

// Merge 依次合并另一个容器（覆盖已存在的 key）
func (v *ExValues) Merge(other *ExValues) {
	if other == nil {
		return
	}
	for _, key := range other.order {
		vs := other.values[key]
		if _, exists := v.values[key]; !exists {
			v.order = append(v.order, key)
		}
		v.values[key] = append([]string(nil), vs...)
	}
}

// EncodeQuery 编码为 URL 查询字符串，保持插入顺序
func (v *ExValues) EncodeQuery() string {
	if len(v.order) == 0 {
		return ""
	}

	var buf strings.Builder

	for _, key := range v.order {
		vs, ok := v.values[key]
		if !ok {
			continue
		}

		keyEscaped := url.QueryEscape(key)

		for _, value := range vs {
			if buf.Len() > 0 {
				buf.WriteByte('&')
			}
			buf.WriteString(keyEscaped)
			buf.WriteByte('=')
			buf.WriteString(url.QueryEscape(value))
		}
	}

	return buf.String()
}

// EncodeMap 编码为 map：单值为 string，多值为 []string
func (v *ExValues) EncodeMap() map[string]any {
	m := make(map[string]any, len(v.values))

	for _, key := range v.order {
		vs := v.values[key]
		if len(vs) == 1 {
			m[key] = vs[0]
		} else if len(vs) > 1 {
			m[key] = vs
		}
	}

	return m
}

// EncodeJSON 编码为 JSON
func (v *ExValues) EncodeJSON() ([]byte, error) {
	return json.Marshal(v.EncodeMap())
}

// JoinPath 将查询字符串拼接到路径
func (v *ExValues) JoinPath(path string) string {
	query := v.EncodeQuery()
	if query == "" {
		return path
	}

	if strings.Contains(path, "?") {
		return path + "&" + query
	}

	return path + "?" + query
}

// Has 判断 key 是否存在
func (v *ExValues) Has(key string) bool {
	_, ok := v.values[key]
	return ok
}

// Get 返回 key 的第一个值
func (v *ExValues) Get(key string) string {
	if vs := v.values[key]; len(vs) > 0 {
		return vs[0]
	}
	return ""
}

// Keys 返回按插入顺序排列的 key
func (v *ExValues) Keys() []string {
	return append([]string(nil), v.order...)
}

// Len 返回 key 数量
func (v *ExValues) Len() int {
	return len(v.order)
}

// Reset 清空参数
func (v *ExValues) Reset() {
	v.order = v.order[:0]
	v.values = make(map[string][]string)
}

func formatValues(value interface{}) ([]string, bool) {
	switch val := value.(type) {
	case nil:
		return nil, false
	case []string:
		return append([]string(nil), val...), true
	case []int:
		out := make([]string, len(val))
		for i, n := range val {
			out[i] = strconv.Itoa(n)
		}
		return out, true
	case []interface{}:
		out := make([]string, 0, len(val))
		for _, item := range val {
			if s, ok := FormatValue(item); ok {
				out = append(out, s)
			}
		}
		return out, true
	}
	s, ok := FormatValue(value)
	if !ok {
		return nil, false
	}
	return []string{s}, true
}

// FormatValue 将参数值格式化为字符串（数字不使用科学计数法）
func FormatValue(value interface{}) (string, bool) {
	switch val := value.(type) {
	case nil:
		return "", false
	case string:
		return val, true
	case json.Number:
		return val.String(), true
	case int:
		return strconv.Itoa(val), true
	case int32:
		return strconv.FormatInt(int64(val), 10), true
	case int64:
		return strconv.FormatInt(val, 10), true
	case uint64:
		return strconv.FormatUint(val, 10), true
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), true
	case bool:
		return strconv.FormatBool(val), true
	case decimal.Decimal:
		return val.String(), true
	case ExDecimal:
		if !val.Valid {
			return "", false
		}
		return val.String(), true
	case time.Time:
		return val.UTC().Format(time.RFC3339Nano), true
	case json.RawMessage:
		return string(val), true
	case fmt.Stringer:
		return val.String(), true
	default:
		return fmt.Sprintf("%v", val), true
	}
}
