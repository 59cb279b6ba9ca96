package common

import (
	"crypto/hmac"
	"crypto/md5"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/base64"
	"encoding/hex"
	"hash"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/lemconn/exnorm/types"
)

func hmacSum(h func() hash.Hash, message, secret string) []byte {
	mac := hmac.New(h, []byte(secret))
	mac.Write([]byte(message))
	return mac.Sum(nil)
}

// SignHMAC256 HMAC-SHA256签名（hex编码）
func SignHMAC256(message, secret string) string {
	return hex.EncodeToString(hmacSum(sha256.New, message, secret))
}

// SignHMAC384 HMAC-SHA384签名（hex编码，用于 Buda）
func SignHMAC384(message, secret string) string {
	return hex.EncodeToString(hmacSum(sha512.New384, message, secret))
}

// SignHMAC512 HMAC-SHA512签名（hex编码）
func SignHMAC512(message, secret string) string {
	return hex.EncodeToString(hmacSum(sha512.New, message, secret))
}

// HashMD5 MD5摘要（hex编码，用于 BtcBox 派生签名密钥）
func HashMD5(message string) string {
	sum := md5.Sum([]byte(message))
	return hex.EncodeToString(sum[:])
}

// Base64Encode base64 编码
func Base64Encode(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

// BuildQueryString 构建查询字符串（key 排序，值不使用科学计数法）
func BuildQueryString(params map[string]interface{}) string {
	if len(params) == 0 {
		return ""
	}

	keys := make([]string, 0, len(params))
	for k := range params {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	var parts []string
	for _, k := range keys {
		value, ok := types.FormatValue(params[k])
		if !ok {
			continue
		}
		parts = append(parts, k+"="+url.QueryEscape(value))
	}
	return strings.Join(parts, "&")
}

// GetTimestamp 获取时间戳（毫秒）
func GetTimestamp() int64 {
	return time.Now().UnixMilli()
}

