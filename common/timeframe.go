package common

import (
	"fmt"
	"strconv"
	"strings"
)

// TimeframeMap 时间框架别名映射表
var TimeframeMap = map[string]string{
	"7d":  "1w",
	"30d": "1M",
}

// NormalizeTimeframe 标准化时间框架
func NormalizeTimeframe(timeframe string) string {
	timeframe = strings.TrimSpace(timeframe)
	if normalized, ok := TimeframeMap[timeframe]; ok {
		return normalized
	}
	return timeframe
}

// ParseTimeframe 解析时间框架为秒数，如 1m -> 60，1d -> 86400
func ParseTimeframe(timeframe string) (int64, error) {
	timeframe = NormalizeTimeframe(timeframe)
	if len(timeframe) < 2 {
		return 0, fmt.Errorf("invalid timeframe: %q", timeframe)
	}
	unit := timeframe[len(timeframe)-1:]
	amount, err := strconv.ParseInt(timeframe[:len(timeframe)-1], 10, 64)
	if err != nil || amount <= 0 {
		return 0, fmt.Errorf("invalid timeframe: %q", timeframe)
	}
	var scale int64
	switch unit {
	case "y":
		scale = 60 * 60 * 24 * 365
	case "M":
		scale = 60 * 60 * 24 * 30
	case "w":
		scale = 60 * 60 * 24 * 7
	case "d":
		scale = 60 * 60 * 24
	case "h":
		scale = 60 * 60
	case "m":
		scale = 60
	case "s":
		scale = 1
	default:
		return 0, fmt.Errorf("invalid timeframe unit: %q", timeframe)
	}
	return amount * scale, nil
}
