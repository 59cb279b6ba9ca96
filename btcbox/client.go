package btcbox

import (
	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/option"
)

const (
	btcboxName    = "btcbox"
	btcboxBaseURL = "https://www.btcbox.co.jp/api/v1"
	// defaultSymbol 未指定 symbol 时的订单查询市场
	defaultSymbol = "BTC/JPY"
)

// staticMarket 交易所不提供市场接口，市场列表固定
type staticMarket struct {
	id    string
	base  string
	quote string
	fee   string
}

var staticMarkets = []staticMarket{
	{id: "btc", base: "BTC", quote: "JPY", fee: "0.0005"},
	{id: "eth", base: "ETH", quote: "JPY", fee: "0.001"},
	{id: "ltc", base: "LTC", quote: "JPY", fee: "0.001"},
	{id: "bch", base: "BCH", quote: "JPY", fee: "0.001"},
}

// NewClient 创建 BTCBox 客户端
func NewClient(options *option.ExchangeOptions) (*base.Client, error) {
	return base.NewClient(btcboxName, btcboxBaseURL, options)
}
