package paymium

import (
	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/option"
)

const (
	paymiumName    = "paymium"
	paymiumBaseURL = "https://paymium.com/api/v1"
)

// tradingFee maker / taker 费率相同
const tradingFee = "0.002"

// NewClient 创建 Paymium 客户端
func NewClient(options *option.ExchangeOptions) (*base.Client, error) {
	return base.NewClient(paymiumName, paymiumBaseURL, options)
}
