package base

import (
	"context"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/singleflight"

	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/model"
)

// MarketsFetcher 拉取市场列表
type MarketsFetcher func(ctx context.Context) ([]*model.Market, error)

// CurrenciesFetcher 拉取币种列表
type CurrenciesFetcher func(ctx context.Context) ([]*model.Currency, error)

// commonCurrencies 通用币种别名
var commonCurrencies = map[string]string{
	"XBT": "BTC",
	"BCC": "BCH",
	"DRK": "DASH",
}

// registrySnapshot 一次成功加载的不可变快照
type registrySnapshot struct {
	markets        map[string]*model.Market
	marketsByID    map[string]*model.Market
	symbols        []string
	currencies     map[string]*model.Currency
	currenciesByID map[string]*model.Currency
}

// Registry 市场与币种缓存
type Registry struct {
	exchange        string
	fetchMarkets    MarketsFetcher
	fetchCurrencies CurrenciesFetcher
	aliases         map[string]string

	group singleflight.Group
	mu    sync.RWMutex
	snap  *registrySnapshot
}

// NewRegistry 创建缓存，fetchCurrencies 可为 nil
func NewRegistry(exchange string, fetchMarkets MarketsFetcher, fetchCurrencies CurrenciesFetcher) *Registry {
	return &Registry{
		exchange:        exchange,
		fetchMarkets:    fetchMarkets,
		fetchCurrencies: fetchCurrencies,
		aliases:         commonCurrencies,
	}
}

// SetCurrencyAliases 覆盖币种别名表
func (r *Registry) SetCurrencyAliases(aliases map[string]string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.aliases = aliases
}

func (r *Registry) snapshot() *registrySnapshot {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.snap
}

// Loaded 是否已加载
func (r *Registry) Loaded() bool {
	return r.snapshot() != nil
}

// LoadMarkets 加载市场和币种；并发调用共享同一次请求，失败时保留旧缓存
// 调用方取消只影响自身，已发起的共享加载继续完成并写入缓存
func (r *Registry) LoadMarkets(ctx context.Context, reload bool) (map[string]*model.Market, error) {
	if !reload {
		if s := r.snapshot(); s != nil {
			return s.markets, nil
		}
	}

	// 共享的加载不随单个调用方取消，每个调用方只等待自己的 ctx
	ch := r.group.DoChan("load", func() (interface{}, error) {
		if !reload {
			if s := r.snapshot(); s != nil {
				return s, nil
			}
		}
		return r.load(context.WithoutCancel(ctx))
	})
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*registrySnapshot).markets, nil
	}
}

func (r *Registry) load(ctx context.Context) (*registrySnapshot, error) {
	var currencies []*model.Currency
	if r.fetchCurrencies != nil {
		list, err := r.fetchCurrencies(ctx)
		if err != nil {
			return nil, err
		}
		currencies = list
	}

	markets, err := r.fetchMarkets(ctx)
	if err != nil {
		return nil, err
	}

	s := &registrySnapshot{
		markets:        make(map[string]*model.Market, len(markets)),
		marketsByID:    make(map[string]*model.Market, len(markets)),
		currencies:     make(map[string]*model.Currency, len(currencies)),
		currenciesByID: make(map[string]*model.Currency, len(currencies)),
	}
	for _, m := range markets {
		if m == nil || m.Symbol == "" {
			continue
		}
		// 同一 symbol 只保留第一个
		if _, dup := s.markets[m.Symbol]; dup {
			continue
		}
		s.markets[m.Symbol] = m
		if _, dup := s.marketsByID[m.ID]; !dup {
			s.marketsByID[m.ID] = m
		}
		s.symbols = append(s.symbols, m.Symbol)
	}
	sort.Strings(s.symbols)

	for _, c := range currencies {
		if c == nil || c.Code == "" {
			continue
		}
		if _, dup := s.currencies[c.Code]; dup {
			continue
		}
		s.currencies[c.Code] = c
		s.currenciesByID[c.ID] = c
	}

	r.mu.Lock()
	r.snap = s
	r.mu.Unlock()
	return s, nil
}

// Market 按统一 symbol 查找市场
func (r *Registry) Market(symbol string) (*model.Market, error) {
	s := r.snapshot()
	if s == nil {
		return nil, exerr.Newf(exerr.ErrBadSymbol, r.exchange, "markets not loaded, symbol %s", symbol)
	}
	m, ok := s.markets[symbol]
	if !ok {
		return nil, exerr.Newf(exerr.ErrBadSymbol, r.exchange, "does not have market symbol %s", symbol)
	}
	return m, nil
}

// MarketByID 按交易所原始 ID 查找市场
func (r *Registry) MarketByID(id string) (*model.Market, bool) {
	s := r.snapshot()
	if s == nil {
		return nil, false
	}
	m, ok := s.marketsByID[id]
	return m, ok
}

// Markets 所有市场（只读）
func (r *Registry) Markets() map[string]*model.Market {
	if s := r.snapshot(); s != nil {
		return s.markets
	}
	return nil
}

// Symbols 所有 symbol（已排序）
func (r *Registry) Symbols() []string {
	if s := r.snapshot(); s != nil {
		return append([]string(nil), s.symbols...)
	}
	return nil
}

// Currency 按统一代码查找币种
func (r *Registry) Currency(code string) (*model.Currency, error) {
	s := r.snapshot()
	if s == nil {
		return nil, exerr.Newf(exerr.ErrExchange, r.exchange, "currencies not loaded, code %s", code)
	}
	c, ok := s.currencies[code]
	if !ok {
		return nil, exerr.Newf(exerr.ErrExchange, r.exchange, "does not have currency code %s", code)
	}
	return c, nil
}

// CurrencyByID 按交易所原始 ID 查找币种
func (r *Registry) CurrencyByID(id string) (*model.Currency, bool) {
	s := r.snapshot()
	if s == nil {
		return nil, false
	}
	c, ok := s.currenciesByID[id]
	return c, ok
}

// Currencies 所有币种（只读）
func (r *Registry) Currencies() map[string]*model.Currency {
	if s := r.snapshot(); s != nil {
		return s.currencies
	}
	return nil
}

// SafeMarket 按原始 ID 解析市场，永不失败：
// 缓存命中 > hint > 按分隔符拆分 > 以原始 ID 作为 symbol
func (r *Registry) SafeMarket(marketID string, hint *model.Market, delimiter string) *model.Market {
	if marketID != "" {
		if m, ok := r.MarketByID(marketID); ok {
			return m
		}
	}
	if hint != nil {
		return hint
	}
	if marketID == "" {
		return &model.Market{}
	}
	if delimiter != "" {
		if baseID, quoteID, ok := common.SplitMarketID(marketID, delimiter); ok {
			base := r.SafeCurrencyCode(baseID, nil)
			quote := r.SafeCurrencyCode(quoteID, nil)
			return &model.Market{
				ID:      marketID,
				Symbol:  common.NormalizeSymbol(base, quote),
				Base:    base,
				Quote:   quote,
				BaseID:  baseID,
				QuoteID: quoteID,
				Type:    model.MarketTypeSpot,
				Spot:    true,
			}
		}
	}
	return &model.Market{ID: marketID, Symbol: marketID}
}

// SafeSymbol 按原始 ID 解析 symbol
func (r *Registry) SafeSymbol(marketID string, hint *model.Market, delimiter string) string {
	return r.SafeMarket(marketID, hint, delimiter).Symbol
}

// SafeCurrencyCode 原始币种 ID -> 统一代码
func (r *Registry) SafeCurrencyCode(currencyID string, hint *model.Currency) string {
	if currencyID == "" {
		if hint != nil {
			return hint.Code
		}
		return ""
	}
	if c, ok := r.CurrencyByID(currencyID); ok {
		return c.Code
	}
	if hint != nil {
		return hint.Code
	}
	code := strings.ToUpper(currencyID)
	r.mu.RLock()
	alias, ok := r.aliases[code]
	r.mu.RUnlock()
	if ok {
		return alias
	}
	return code
}
