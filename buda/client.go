package buda

import (
	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/option"
)

const (
	budaName    = "buda"
	budaBaseURL = "https://www.buda.com/api/v2"
	// budaSignPrefix 签名串中的路径前缀
	budaSignPrefix = "/api/v2/"
)

// fiatCurrencies 法币，不支持充值地址
var fiatCurrencies = map[string]bool{
	"ARS": true,
	"CLP": true,
	"COP": true,
	"PEN": true,
}

// NewClient 创建 Buda 客户端
func NewClient(options *option.ExchangeOptions) (*base.Client, error) {
	return base.NewClient(budaName, budaBaseURL, options)
}
