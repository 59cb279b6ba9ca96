package common

import (
	"fmt"
	"strings"
)

// NormalizeSymbol 标准化交易对格式为 BASE/QUOTE (如 BTC/USDT)
func NormalizeSymbol(base, quote string) string {
	return strings.ToUpper(base) + "/" + strings.ToUpper(quote)
}

// NormalizeContractSymbol 标准化合约交易对格式 BASE/QUOTE:SETTLE (如 BTC/USDT:USDT)
func NormalizeContractSymbol(base, quote, settle string) string {
	if settle != "" {
		return NormalizeSymbol(base, quote) + ":" + strings.ToUpper(settle)
	}
	return NormalizeSymbol(base, quote)
}

// ParseSymbol 解析标准化交易对 (BTC/USDT -> base, quote；BTC/USDT:USDT -> base, quote, settle)
func ParseSymbol(symbol string) (base, quote, settle string, err error) {
	rest := symbol
	if i := strings.Index(rest, ":"); i >= 0 {
		settle = strings.ToUpper(rest[i+1:])
		rest = rest[:i]
	}
	parts := strings.Split(rest, "/")
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", "", fmt.Errorf("invalid symbol format: %s, expected BASE/QUOTE[:SETTLE]", symbol)
	}
	return strings.ToUpper(parts[0]), strings.ToUpper(parts[1]), settle, nil
}

// SplitMarketID 按分隔符拆分交易所原始市场ID (ETH-BTC -> ETH, BTC)
func SplitMarketID(marketID, delimiter string) (baseID, quoteID string, ok bool) {
	if delimiter == "" {
		return "", "", false
	}
	parts := strings.Split(marketID, delimiter)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
