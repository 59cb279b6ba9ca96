package types

import (
	"strconv"
	"strings"
	"time"
)

// ParseTimestamp 解析多种格式的时间，返回毫秒时间戳
// 支持秒、毫秒、微秒、纳秒（按位数判断）以及 ISO-8601 字符串
func ParseTimestamp(s string) (int64, bool) {
	s = strings.TrimSpace(strings.Trim(s, `"`))
	if s == "" || s == "null" {
		return 0, false
	}

	// 尝试 int64（各种 timestamp）
	if ts, err := strconv.ParseInt(s, 10, 64); err == nil {
		switch len(s) {
		case 10:
			return ts * 1000, true
		case 13:
			return ts, true
		case 16:
			return ts / 1000, true
		case 19:
			return ts / 1000000, true
		default:
			return 0, false
		}
	}

	return Parse8601(s)
}

var iso8601Layouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999Z07:00",
	"2006-01-02 15:04:05.999999999",
	"2006-01-02 15:04:05Z07:00",
	"2006-01-02 15:04:05",
}

// Parse8601 解析 ISO-8601 时间字符串，未带时区时按 UTC 处理
func Parse8601(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, layout := range iso8601Layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.UnixMilli(), true
		}
	}
	return 0, false
}

// ISO8601 毫秒时间戳转 ISO-8601 字符串，0 返回空串
func ISO8601(ms int64) string {
	if ms <= 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02T15:04:05.000Z")
}
