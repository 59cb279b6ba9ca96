package exnorm

import (
	"fmt"
	"sort"
	"sync"

	"github.com/lemconn/exnorm/btcbox"
	"github.com/lemconn/exnorm/buda"
	"github.com/lemconn/exnorm/exchange"
	"github.com/lemconn/exnorm/hitbtc"
	"github.com/lemconn/exnorm/idex"
	"github.com/lemconn/exnorm/kabus"
	"github.com/lemconn/exnorm/option"
	"github.com/lemconn/exnorm/paymium"
)

// 交易所名称常量
const (
	ExchangeBuda    = "buda"    // Buda 交易所
	ExchangeHitBTC  = "hitbtc"  // HitBTC 交易所
	ExchangeIDEX    = "idex"    // IDEX 交易所
	ExchangeBTCBox  = "btcbox"  // BtcBox 交易所
	ExchangePaymium = "paymium" // Paymium 交易所
	ExchangeKabus   = "kabus"   // kabuステーション API
)

// ExchangeFactory 交易所工厂函数
type ExchangeFactory func(options *option.ExchangeOptions) (exchange.Exchange, error)

// Registry 交易所注册表
type Registry struct {
	mu        sync.RWMutex
	factories map[string]ExchangeFactory
}

var globalRegistry = &Registry{
	factories: make(map[string]ExchangeFactory),
}

// init 初始化函数，注册所有支持的交易所
func init() {
	Register(ExchangeBuda, buda.NewBuda)
	Register(ExchangeHitBTC, hitbtc.NewHitBTC)
	Register(ExchangeIDEX, idex.NewIDEX)
	Register(ExchangeBTCBox, btcbox.NewBTCBox)
	Register(ExchangePaymium, paymium.NewPaymium)
	Register(ExchangeKabus, kabus.NewKabus)
}

// Register 注册交易所
func Register(name string, factory ExchangeFactory) {
	globalRegistry.mu.Lock()
	defer globalRegistry.mu.Unlock()
	globalRegistry.factories[name] = factory
}

// NewExchange 创建交易所实例（使用 Functional Options Pattern）
func NewExchange(name string, opts ...option.Option) (exchange.Exchange, error) {
	globalRegistry.mu.RLock()
	factory, ok := globalRegistry.factories[name]
	globalRegistry.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: exchange %s", ErrExchangeNotSupported, name)
	}

	return factory(option.Apply(opts...))
}

// GetSupportedExchanges 获取支持的交易所列表（已排序）
func GetSupportedExchanges() []string {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()

	exchanges := make([]string, 0, len(globalRegistry.factories))
	for name := range globalRegistry.factories {
		exchanges = append(exchanges, name)
	}
	sort.Strings(exchanges)
	return exchanges
}

// IsExchangeSupported 检查交易所是否支持
func IsExchangeSupported(name string) bool {
	globalRegistry.mu.RLock()
	defer globalRegistry.mu.RUnlock()
	_, ok := globalRegistry.factories[name]
	return ok
}
