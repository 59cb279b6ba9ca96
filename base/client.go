package base

import (
	"log"

	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/option"
)

// RequiredCredentials 私有接口需要的凭证
type RequiredCredentials struct {
	APIKey        bool
	Secret        bool
	Password      bool
	UID           bool
	WalletAddress bool
	PrivateKey    bool
}

// Client 交易所客户端，包含 HTTP 客户端和凭证
type Client struct {
	// Name 交易所名称
	Name string

	// HTTPClient HTTP 客户端
	HTTPClient *common.HTTPClient

	// APIKey API 密钥
	APIKey string

	// SecretKey 密钥
	SecretKey string

	// Password 密码（部分交易所需要）
	Password string

	// UID 用户ID
	UID string

	// WalletAddress 钱包地址
	WalletAddress string

	// PrivateKey 钱包私钥
	PrivateKey string

	// Sandbox 是否为模拟盘
	Sandbox bool

	// ProxyURL 代理地址
	ProxyURL string

	// Debug 是否启用调试模式
	Debug bool

	// Logger 日志
	Logger *log.Logger

	// Required 私有接口需要的凭证，nil 时要求 APIKey 和 Secret
	Required *RequiredCredentials
}

// NewClient 创建客户端，options.BaseURL 优先于 baseURL
func NewClient(name, baseURL string, options *option.ExchangeOptions) (*Client, error) {
	if options == nil {
		options = option.Apply()
	}
	if options.BaseURL != "" {
		baseURL = options.BaseURL
	}

	logger := options.Logger
	if logger == nil {
		logger = common.NewLogger(name)
	}

	client := &Client{
		Name:          name,
		HTTPClient:    common.NewHTTPClient(baseURL),
		APIKey:        options.APIKey,
		SecretKey:     options.SecretKey,
		Password:      options.Password,
		UID:           options.UID,
		WalletAddress: options.WalletAddress,
		PrivateKey:    options.PrivateKey,
		Sandbox:       options.Sandbox,
		ProxyURL:      options.Proxy,
		Debug:         options.Debug,
		Logger:        logger,
	}

	// 设置代理
	if client.ProxyURL != "" {
		if err := client.HTTPClient.SetProxy(client.ProxyURL); err != nil {
			return nil, err
		}
	}

	if options.Timeout > 0 {
		client.HTTPClient.SetTimeout(options.Timeout)
	}

	// 设置调试模式
	if client.Debug {
		client.HTTPClient.SetDebug(true)
		client.HTTPClient.SetLogger(logger)
	}

	return client, nil
}

// CheckRequiredCredentials 检查私有接口凭证，缺失时返回 ErrAuthentication
func (c *Client) CheckRequiredCredentials() error {
	required := RequiredCredentials{APIKey: true, Secret: true}
	if c.Required != nil {
		required = *c.Required
	}
	missing := ""
	switch {
	case required.APIKey && c.APIKey == "":
		missing = "apiKey"
	case required.Secret && c.SecretKey == "":
		missing = "secret"
	case required.Password && c.Password == "":
		missing = "password"
	case required.UID && c.UID == "":
		missing = "uid"
	case required.WalletAddress && c.WalletAddress == "":
		missing = "walletAddress"
	case required.PrivateKey && c.PrivateKey == "":
		missing = "privateKey"
	}
	if missing != "" {
		return exerr.Newf(exerr.ErrAuthentication, c.Name, "requires %q credential", missing)
	}
	return nil
}
