package kabus

import (
	"strconv"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/types"
)

// boardDepth 板情报的档位数
const boardDepth = 10

func (k *Kabus) parseMarket(instrument string) *model.Market {
	return &model.Market{
		ID:      instrument,
		Symbol:  common.NormalizeSymbol(instrument, "JPY"),
		Base:    instrument,
		Quote:   "JPY",
		BaseID:  instrument,
		QuoteID: "JPY",
		Type:    model.MarketTypeSpot,
		Spot:    true,
		Active:  true,
		Taker:   types.NewExDecimal("0.001"),
		Maker:   types.NewExDecimal("0.001"),
		Limits: model.MarketLimits{
			Amount: model.MinMax{Min: types.NewExDecimal("100"), Max: types.NewExDecimal("100000000")},
			Price:  model.MinMax{Min: types.NewExDecimal("100"), Max: types.NewExDecimal("100000000")},
			Cost:   model.MinMax{Min: types.NewExDecimal("0"), Max: types.NewExDecimal("100000000")},
		},
		Info: instrument,
	}
}

// parseTicker 板情报；BidPrice 为最良卖价，AskPrice 为最良买价，字段名与方向相反
//
//	{"Symbol":"8306","CurrentPrice":734.7,"CurrentPriceTime":"2022-01-28T15:00:00+09:00","OpeningPrice":730,
//	 "HighPrice":738.3,"LowPrice":727.4,"TradingVolume":60818400,"TradingValue":44571826990,"VWAP":732.8716,
//	 "BidPrice":734.8,"BidQty":79400,"AskPrice":734.7,"AskQty":55200,"PreviousClose":735.8,
//	 "ChangePreviousClose":-1.1,"ChangePreviousClosePer":-0.15}
func (k *Kabus) parseTicker(raw interface{}, market *model.Market) *model.Ticker {
	ticker := &model.Ticker{
		Symbol:        k.Registry().SafeSymbol("", market, ""),
		High:          common.SafeDecimal(raw, "HighPrice"),
		Low:           common.SafeDecimal(raw, "LowPrice"),
		Bid:           common.SafeDecimal(raw, "AskPrice"),
		BidVolume:     common.SafeDecimal(raw, "AskQty"),
		Ask:           common.SafeDecimal(raw, "BidPrice"),
		AskVolume:     common.SafeDecimal(raw, "BidQty"),
		Vwap:          common.SafeDecimal(raw, "VWAP"),
		Open:          common.SafeDecimal(raw, "OpeningPrice"),
		Close:         common.SafeDecimal(raw, "CurrentPrice"),
		Last:          common.SafeDecimal(raw, "CurrentPrice"),
		PreviousClose: common.SafeDecimal(raw, "PreviousClose"),
		Change:        common.SafeDecimal(raw, "ChangePreviousClose"),
		Percentage:    common.SafeDecimal(raw, "ChangePreviousClosePer"),
		BaseVolume:    common.SafeDecimal(raw, "TradingVolume"),
		QuoteVolume:   common.SafeDecimal(raw, "TradingValue"),
		Info:          raw,
	}
	if at, ok := common.SafeString(raw, "CurrentPriceTime"); ok {
		ticker.Timestamp, _ = types.Parse8601(at)
	}
	return base.SafeTicker(ticker)
}

// parseBoard Buy1..Buy10 为买盘，Sell1..Sell10 为卖盘，每档 {"Price","Qty"}
func parseBoard(raw interface{}, side string) []model.OrderBookEntry {
	levels := make([]interface{}, 0, boardDepth)
	for i := 1; i <= boardDepth; i++ {
		level, ok := common.SafeMap(raw, side+strconv.Itoa(i))
		if !ok {
			continue
		}
		// 无报价的档位价格为 0
		if price := common.SafeDecimal(level, "Price"); !price.IsPositive() {
			continue
		}
		levels = append(levels, level)
	}
	return base.ParseBidsAsks(levels, "Price", "Qty")
}
