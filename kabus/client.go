package kabus

import (
	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/option"
)

const (
	kabusName = "kabus"
	// kabusPath 本地 kabuステーション 网关的接口前缀
	kabusPath = "/live/kabusapi"
)

// instruments 固定的证券代码列表，格式为 <代码>@<市场>
var instruments = []string{
	"8306@1",
	"4689@1",
	"6501@1",
	"3826@1",
	"5020@1",
	"3632@1",
	"5191@1",
	"6440@1",
	"8897@1",
	"167060018@24",
}

// Config kabus 自定义配置
type Config struct {
	// Hostname 网关地址 host:port
	Hostname string
}

// DefaultConfig 默认配置
func DefaultConfig() Config {
	return Config{Hostname: "192.168.11.6:8070"}
}

func configFrom(options *option.ExchangeOptions) Config {
	cfg := DefaultConfig()
	if options == nil {
		return cfg
	}
	switch v := options.Options[option.ConfigKey].(type) {
	case Config:
		if v.Hostname != "" {
			cfg.Hostname = v.Hostname
		}
	case *Config:
		if v != nil && v.Hostname != "" {
			cfg.Hostname = v.Hostname
		}
	}
	return cfg
}

// NewClient 创建 kabus 客户端
func NewClient(options *option.ExchangeOptions, cfg Config) (*base.Client, error) {
	return base.NewClient(kabusName, "http://"+cfg.Hostname+kabusPath, options)
}
