package hitbtc

import (
	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/option"
)

const (
	hitbtcName        = "hitbtc"
	hitbtcBaseURL     = "https://api.hitbtc.com/api/3"
	hitbtcSandboxURL  = "https://api.demo.hitbtc.com/api/3"
	hitbtcSignPrefix  = "/api/3/"
	hitbtcDefaultType = "spot"
)

// Config HitBTC 自定义配置，通过 option.WithConfig 传入
type Config struct {
	// Networks 统一网络名称 -> USDT 链上币种 ID
	Networks map[string]string
	// AccountsByType 账户类型 -> 交易所账户 ID
	AccountsByType map[string]string
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		Networks: map[string]string{
			"ETH":   "USDT20",
			"ERC20": "USDT20",
			"TRX":   "USDTRX",
			"TRC20": "USDTRX",
			"OMNI":  "USDT",
		},
		AccountsByType: map[string]string{
			"spot":        "spot",
			"wallet":      "wallet",
			"derivatives": "derivatives",
		},
	}
}

// configFrom 读取自定义配置，未设置的字段使用默认值
func configFrom(options *option.ExchangeOptions) Config {
	cfg := DefaultConfig()
	if options == nil {
		return cfg
	}
	var custom *Config
	switch v := options.Options[option.ConfigKey].(type) {
	case Config:
		custom = &v
	case *Config:
		custom = v
	}
	if custom == nil {
		return cfg
	}
	if custom.Networks != nil {
		cfg.Networks = custom.Networks
	}
	if custom.AccountsByType != nil {
		cfg.AccountsByType = custom.AccountsByType
	}
	return cfg
}

// NewClient 创建 HitBTC 客户端，模拟盘使用 demo 地址
func NewClient(options *option.ExchangeOptions) (*base.Client, error) {
	baseURL := hitbtcBaseURL
	if options != nil && options.Sandbox {
		baseURL = hitbtcSandboxURL
	}
	return base.NewClient(hitbtcName, baseURL, options)
}
