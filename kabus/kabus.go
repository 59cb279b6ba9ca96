package kabus

import (
	"context"
	"errors"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exchange"
	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/option"
)

// Kabus kabuステーション API 网关
// 未配置 API Key 时用 Password 换取 token，token 失效后重新获取
type Kabus struct {
	*base.BaseExchange

	tokenMu    sync.RWMutex
	token      string
	tokenGroup singleflight.Group
}

// NewKabus 创建 kabus 实例
func NewKabus(options *option.ExchangeOptions) (exchange.Exchange, error) {
	return New(options)
}

// New 创建 kabus 实例（具体类型）
func New(options *option.ExchangeOptions) (*Kabus, error) {
	cfg := configFrom(options)
	client, err := NewClient(options, cfg)
	if err != nil {
		return nil, err
	}

	k := &Kabus{
		BaseExchange: base.NewBaseExchange(kabusName, client),
	}
	k.SetSigner(NewSigner(client, k.currentToken))
	k.SetErrorHandler(handleErrors)
	k.SetRequiredCredentials(base.RequiredCredentials{})
	k.SetRegistry(base.NewRegistry(kabusName, k.FetchMarkets, nil))
	k.SetFeatures(
		exchange.FeatureFetchMarkets,
		exchange.FeatureFetchTicker,
		exchange.FeatureFetchOrderBook,
	)
	return k, nil
}

var _ exchange.Exchange = (*Kabus)(nil)

func (k *Kabus) currentToken() string {
	if apiKey := k.Client().APIKey; apiKey != "" {
		return apiKey
	}
	k.tokenMu.RLock()
	defer k.tokenMu.RUnlock()
	return k.token
}

func (k *Kabus) setToken(token string) {
	k.tokenMu.Lock()
	k.token = token
	k.tokenMu.Unlock()
}

// ensureToken 并发调用只换取一次 token
func (k *Kabus) ensureToken(ctx context.Context) error {
	if k.currentToken() != "" {
		return nil
	}
	password := k.Client().Password
	if password == "" {
		return exerr.New(exerr.ErrAuthentication, kabusName, `requires "apiKey" or "password" credential`)
	}
	_, err, _ := k.tokenGroup.Do("token", func() (interface{}, error) {
		resp, err := k.Request(ctx, base.Public, "POST", "token", map[string]interface{}{
			"APIPassword": password,
		})
		if err != nil {
			return nil, err
		}
		code := common.SafeStringOr(resp, "ResultCode", "")
		token, ok := common.SafeString(resp, "Token")
		if code != "0" || !ok {
			return nil, exerr.Newf(exerr.ErrAuthentication, kabusName, "token request failed with result code %q", code)
		}
		k.setToken(token)
		k.Logf("token refreshed")
		return token, nil
	})
	return err
}

// request 带 token 的请求，认证失败时丢弃缓存的 token
func (k *Kabus) request(ctx context.Context, method, path string, params map[string]interface{}) (interface{}, error) {
	if err := k.ensureToken(ctx); err != nil {
		return nil, err
	}
	resp, err := k.Request(ctx, base.Public, method, path, params)
	if errors.Is(err, exerr.ErrAuthentication) {
		k.setToken("")
	}
	return resp, err
}

// FetchMarkets 固定证券列表
func (k *Kabus) FetchMarkets(ctx context.Context) ([]*model.Market, error) {
	markets := make([]*model.Market, 0, len(instruments))
	for _, instrument := range instruments {
		markets = append(markets, k.parseMarket(instrument))
	}
	return markets, nil
}

// fetchBoard symbol 可以省略 /JPY，如 8306@1
func (k *Kabus) fetchBoard(ctx context.Context, symbol string, opts ...option.ArgsOption) (interface{}, *model.Market, error) {
	if !strings.Contains(symbol, "/") {
		symbol += "/JPY"
	}
	market, err := k.LoadMarket(ctx, symbol)
	if err != nil {
		return nil, nil, err
	}
	args := option.ApplyArgs(opts...)
	resp, err := k.request(ctx, "GET", "board/{symbol}", args.MergeParams(map[string]interface{}{
		"symbol": market.ID,
	}))
	if err != nil {
		return nil, nil, err
	}
	return resp, market, nil
}

// FetchTicker 行情取自板情报
func (k *Kabus) FetchTicker(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.Ticker, error) {
	resp, market, err := k.fetchBoard(ctx, symbol, opts...)
	if err != nil {
		return nil, err
	}
	return k.parseTicker(resp, market), nil
}

// FetchOrderBook 订单簿取自板情报的十档报价
func (k *Kabus) FetchOrderBook(ctx context.Context, symbol string, opts ...option.ArgsOption) (*model.OrderBook, error) {
	resp, market, err := k.fetchBoard(ctx, symbol, opts...)
	if err != nil {
		return nil, err
	}
	book := base.NewOrderBook(market.Symbol, parseBoard(resp, "Buy"), parseBoard(resp, "Sell"), 0, nil)
	if limit := option.ApplyArgs(opts...).LimitOr(0); limit > 0 {
		if len(book.Bids) > limit {
			book.Bids = book.Bids[:limit]
		}
		if len(book.Asks) > limit {
			book.Asks = book.Asks[:limit]
		}
	}
	return book, nil
}
