package common

import (
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/goccy/go-json"
)

// LogPrefixFmt 日志前缀格式
const LogPrefixFmt = "[exnorm:%s] "

// NewLogger 创建带交易所前缀的日志记录器
func NewLogger(name string) *log.Logger {
	return log.New(os.Stderr, fmt.Sprintf(LogPrefixFmt, name), log.Ldate|log.Ltime|log.Lmsgprefix)
}

var sensitiveHeaders = []string{"key", "sign", "secret", "authorization", "passphrase", "password"}

// MaskHeaders 隐藏请求头中的密钥和签名
func MaskHeaders(headers map[string]string) map[string]string {
	out := make(map[string]string, len(headers))
	for k, v := range headers {
		out[k] = v
		if isSensitive(k) {
			out[k] = maskValue(v)
		}
	}
	return out
}

// MaskBody 隐藏 JSON 对象或表单请求体中的敏感字段（仅第一层）
func MaskBody(body string) string {
	trimmed := strings.TrimSpace(body)
	if strings.HasPrefix(trimmed, "{") {
		var fields map[string]interface{}
		if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
			return body
		}
		changed := false
		for k, v := range fields {
			if s, ok := v.(string); ok && isSensitive(k) {
				fields[k] = maskValue(s)
				changed = true
			}
		}
		if !changed {
			return body
		}
		masked, err := json.Marshal(fields)
		if err != nil {
			return body
		}
		return string(masked)
	}
	if !strings.Contains(trimmed, "=") {
		return body
	}
	pairs := strings.Split(body, "&")
	for i, pair := range pairs {
		k, v, ok := strings.Cut(pair, "=")
		if ok && isSensitive(k) {
			pairs[i] = k + "=" + maskValue(v)
		}
	}
	return strings.Join(pairs, "&")
}

func isSensitive(name string) bool {
	lower := strings.ToLower(name)
	for _, s := range sensitiveHeaders {
		if strings.Contains(lower, s) {
			return true
		}
	}
	return false
}

func maskValue(v string) string {
	if len(v) <= 6 {
		return "***"
	}
	return v[:3] + "***" + v[len(v)-3:]
}
