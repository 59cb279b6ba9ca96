package model

import "github.com/lemconn/exnorm/types"

// Ticker 行情信息，未返回的字段保持无效
type Ticker struct {
	// Symbol 交易对
	Symbol string `json:"symbol"`
	// Timestamp 时间戳（毫秒）
	Timestamp int64 `json:"timestamp"`
	// Datetime ISO-8601 时间
	Datetime string `json:"datetime"`
	// High 最高价
	High types.ExDecimal `json:"high"`
	// Low 最低价
	Low types.ExDecimal `json:"low"`
	// Bid 买一价
	Bid types.ExDecimal `json:"bid"`
	// BidVolume 买一量
	BidVolume types.ExDecimal `json:"bid_volume"`
	// Ask 卖一价
	Ask types.ExDecimal `json:"ask"`
	// AskVolume 卖一量
	AskVolume types.ExDecimal `json:"ask_volume"`
	// Vwap 成交量加权平均价
	Vwap types.ExDecimal `json:"vwap"`
	// Open 开盘价
	Open types.ExDecimal `json:"open"`
	// Close 收盘价
	Close types.ExDecimal `json:"close"`
	// Last 最新价
	Last types.ExDecimal `json:"last"`
	// PreviousClose 前收盘价
	PreviousClose types.ExDecimal `json:"previous_close"`
	// Change 涨跌额
	Change types.ExDecimal `json:"change"`
	// Percentage 涨跌幅（百分比）
	Percentage types.ExDecimal `json:"percentage"`
	// Average 均价
	Average types.ExDecimal `json:"average"`
	// BaseVolume 24小时成交量
	BaseVolume types.ExDecimal `json:"base_volume"`
	// QuoteVolume 24小时成交额
	QuoteVolume types.ExDecimal `json:"quote_volume"`
	// Info 交易所原始信息
	Info interface{} `json:"info,omitempty"`
}

// Tickers 行情信息（交易对 -> 行情）
type Tickers map[string]*Ticker
