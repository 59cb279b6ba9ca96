package model

// Timeframe 时间框架类型
type Timeframe string

const (
	// Timeframe1m 1分钟
	Timeframe1m Timeframe = "1m"
	// Timeframe3m 3分钟
	Timeframe3m Timeframe = "3m"
	// Timeframe5m 5分钟
	Timeframe5m Timeframe = "5m"
	// Timeframe15m 15分钟
	Timeframe15m Timeframe = "15m"
	// Timeframe30m 30分钟
	Timeframe30m Timeframe = "30m"
	// Timeframe1h 1小时
	Timeframe1h Timeframe = "1h"
	// Timeframe2h 2小时
	Timeframe2h Timeframe = "2h"
	// Timeframe4h 4小时
	Timeframe4h Timeframe = "4h"
	// Timeframe6h 6小时
	Timeframe6h Timeframe = "6h"
	// Timeframe12h 12小时
	Timeframe12h Timeframe = "12h"
	// Timeframe1d 1天
	Timeframe1d Timeframe = "1d"
	// Timeframe3d 3天
	Timeframe3d Timeframe = "3d"
	// Timeframe1w 1周
	Timeframe1w Timeframe = "1w"
	// Timeframe1M 1月
	Timeframe1M Timeframe = "1M"
)

// TimeframeMap 统一时间框架 -> 交易所时间框架
type TimeframeMap map[Timeframe]string

// Get 查找交易所时间框架
func (m TimeframeMap) Get(tf string) (string, bool) {
	v, ok := m[Timeframe(tf)]
	return v, ok
}

// Keys 返回支持的时间框架
func (m TimeframeMap) Keys() []Timeframe {
	out := make([]Timeframe, 0, len(m))
	for k := range m {
		out = append(out, k)
	}
	return out
}
