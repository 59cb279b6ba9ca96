package common

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// UUID16 生成 16 位十六进制随机串
func UUID16() string {
	id := uuid.New()
	return strings.ReplaceAll(id.String(), "-", "")[:16]
}

// UUIDv1 生成基于时间的 UUID（IDEX 使用其作为 nonce）
func UUIDv1() (string, error) {
	id, err := uuid.NewUUID()
	if err != nil {
		return "", fmt.Errorf("generate uuid v1: %w", err)
	}
	return id.String(), nil
}

// GenerateClientOrderID 生成客户端订单ID
// 格式: exnorm-{exchange}-{UUID16}
func GenerateClientOrderID(exchange string) string {
	exchange = strings.ToLower(exchange)
	return fmt.Sprintf("exnorm-%s-%s", exchange, UUID16())
}
