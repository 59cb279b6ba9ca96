package option

import (
	"log"
	"time"
)

// ExchangeOptions 交易所配置选项（用于 Exchange 初始化）
type ExchangeOptions struct {
	APIKey        string
	SecretKey     string
	Password      string // 密码（部分交易所需要）
	UID           string
	WalletAddress string // 钱包地址（IDEX 等链上交易所）
	PrivateKey    string // 钱包私钥（IDEX 等链上交易所）
	Sandbox       bool
	Proxy         string
	BaseURL       string
	Timeout       time.Duration
	Debug         bool
	Logger        *log.Logger
	Options       map[string]interface{} // 交易所自定义选项
}

// Option 配置选项函数类型（用于 Exchange 初始化）
type Option func(*ExchangeOptions)

// Apply 应用选项
func Apply(opts ...Option) *ExchangeOptions {
	options := &ExchangeOptions{
		Options: make(map[string]interface{}),
	}
	for _, opt := range opts {
		opt(options)
	}
	return options
}

// WithAPIKey 设置 API Key
func WithAPIKey(apiKey string) Option {
	return func(opts *ExchangeOptions) {
		opts.APIKey = apiKey
	}
}

// WithSecretKey 设置 Secret Key
func WithSecretKey(secretKey string) Option {
	return func(opts *ExchangeOptions) {
		opts.SecretKey = secretKey
	}
}

// WithPassword 设置 Password
func WithPassword(password string) Option {
	return func(opts *ExchangeOptions) {
		opts.Password = password
	}
}

// WithUID 设置用户ID
func WithUID(uid string) Option {
	return func(opts *ExchangeOptions) {
		opts.UID = uid
	}
}

// WithWalletAddress 设置钱包地址
func WithWalletAddress(address string) Option {
	return func(opts *ExchangeOptions) {
		opts.WalletAddress = address
	}
}

// WithPrivateKey 设置钱包私钥（hex）
func WithPrivateKey(privateKey string) Option {
	return func(opts *ExchangeOptions) {
		opts.PrivateKey = privateKey
	}
}

// WithSandbox 设置是否使用模拟盘
func WithSandbox(sandbox bool) Option {
	return func(opts *ExchangeOptions) {
		opts.Sandbox = sandbox
	}
}

// WithProxy 设置代理
func WithProxy(proxy string) Option {
	return func(opts *ExchangeOptions) {
		opts.Proxy = proxy
	}
}

// WithBaseURL 设置基础 URL
func WithBaseURL(baseURL string) Option {
	return func(opts *ExchangeOptions) {
		opts.BaseURL = baseURL
	}
}

// WithTimeout 设置请求超时
func WithTimeout(timeout time.Duration) Option {
	return func(opts *ExchangeOptions) {
		opts.Timeout = timeout
	}
}

// WithDebug 设置是否启用调试模式
func WithDebug(debug bool) Option {
	return func(opts *ExchangeOptions) {
		opts.Debug = debug
	}
}

// WithLogger 设置调试日志输出
func WithLogger(logger *log.Logger) Option {
	return func(opts *ExchangeOptions) {
		opts.Logger = logger
	}
}

// WithOption 设置自定义选项
func WithOption(key string, value interface{}) Option {
	return func(opts *ExchangeOptions) {
		if opts.Options == nil {
			opts.Options = make(map[string]interface{})
		}
		opts.Options[key] = value
	}
}

// ConfigKey 交易所自定义配置在 Options 中的键
const ConfigKey = "config"

// WithConfig 设置交易所自定义配置（如 hitbtc.Config）
func WithConfig(cfg interface{}) Option {
	return WithOption(ConfigKey, cfg)
}
