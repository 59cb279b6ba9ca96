package idex

import (
	"strings"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/option"
)

const (
	idexName    = "idex"
	idexVersion = "v1"
)

var (
	idexHosts = map[string]string{
		"MATIC": "https://api-matic.idex.io",
	}
	idexSandboxHosts = map[string]string{
		"MATIC": "https://api-sandbox-matic.idex.io",
	}
	// orderVersions 各网络的订单签名版本号
	orderVersions = map[string]byte{
		"ETH":   1,
		"BSC":   2,
		"MATIC": 4,
	}
)

// Config IDEX 自定义配置，通过 option.WithConfig 传入
type Config struct {
	// DefaultTimeInForce 未指定 WithTimeInForce 时使用：gtc / ioc / fok
	DefaultTimeInForce string
	// DefaultSelfTradePrevention 自成交保护：dc / co / cn / cb
	DefaultSelfTradePrevention string
	// Network 链网络，决定接口地址和订单签名版本
	Network string
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{
		DefaultTimeInForce:         "gtc",
		DefaultSelfTradePrevention: "cn",
		Network:                    "MATIC",
	}
}

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
	if custom.DefaultTimeInForce != "" {
		cfg.DefaultTimeInForce = strings.ToLower(custom.DefaultTimeInForce)
	}
	if custom.DefaultSelfTradePrevention != "" {
		cfg.DefaultSelfTradePrevention = strings.ToLower(custom.DefaultSelfTradePrevention)
	}
	if custom.Network != "" {
		cfg.Network = strings.ToUpper(custom.Network)
	}
	return cfg
}

// NewClient 创建 IDEX 客户端，地址由网络和是否模拟盘决定
func NewClient(options *option.ExchangeOptions, cfg Config) (*base.Client, error) {
	hosts := idexHosts
	if options != nil && options.Sandbox {
		hosts = idexSandboxHosts
	}
	host, ok := hosts[cfg.Network]
	if !ok {
		return nil, exerr.Newf(exerr.ErrNotSupported, idexName, "network %s is not supported", cfg.Network)
	}
	return base.NewClient(idexName, host+"/"+idexVersion, options)
}
