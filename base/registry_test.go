package base

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/model"
)

func testMarkets() []*model.Market {
	return []*model.Market{
		{ID: "BTC-USDT", Symbol: "BTC/USDT", Base: "BTC", Quote: "USDT", BaseID: "BTC", QuoteID: "USDT", Spot: true},
		{ID: "ETH-BTC", Symbol: "ETH/BTC", Base: "ETH", Quote: "BTC", BaseID: "ETH", QuoteID: "BTC", Spot: true},
		// 重复 symbol，应被丢弃
		{ID: "BTCUSDT2", Symbol: "BTC/USDT"},
	}
}

func testCurrencies() []*model.Currency {
	return []*model.Currency{
		{ID: "btc", Code: "BTC"},
		{ID: "usdt", Code: "USDT"},
		{ID: "eth", Code: "ETH"},
	}
}

func TestRegistrySingleFlight(t *testing.T) {
	var marketCalls, currencyCalls int32
	release := make(chan struct{})

	r := NewRegistry("test",
		func(ctx context.Context) ([]*model.Market, error) {
			atomic.AddInt32(&marketCalls, 1)
			<-release
			return testMarkets(), nil
		},
		func(ctx context.Context) ([]*model.Currency, error) {
			atomic.AddInt32(&currencyCalls, 1)
			return testCurrencies(), nil
		},
	)

	const n = 32
	var wg sync.WaitGroup
	errs := make(chan error, n)
	sizes := make(chan int, n)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			markets, err := r.LoadMarkets(context.Background(), false)
			errs <- err
			sizes <- len(markets)
		}()
	}
	close(release)
	wg.Wait()
	close(errs)
	close(sizes)

	for err := range errs {
		if err != nil {
			t.Fatalf("LoadMarkets error: %v", err)
		}
	}
	for size := range sizes {
		if size != 2 {
			t.Errorf("expected 2 markets, got %d", size)
		}
	}
	if got := atomic.LoadInt32(&marketCalls); got != 1 {
		t.Errorf("expected 1 markets fetch, got %d", got)
	}
	if got := atomic.LoadInt32(&currencyCalls); got != 1 {
		t.Errorf("expected 1 currencies fetch, got %d", got)
	}
}

func TestRegistryCallerCancelDoesNotFailOthers(t *testing.T) {
	var marketCalls int32
	started := make(chan struct{})
	release := make(chan struct{})

	r := NewRegistry("test", func(ctx context.Context) ([]*model.Market, error) {
		if atomic.AddInt32(&marketCalls, 1) == 1 {
			close(started)
		}
		<-release
		// 加载使用的 ctx 不能被第一个调用方取消
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return testMarkets(), nil
	}, nil)

	ctxA, cancelA := context.WithCancel(context.Background())
	errA := make(chan error, 1)
	go func() {
		_, err := r.LoadMarkets(ctxA, false)
		errA <- err
	}()
	<-started

	type result struct {
		markets map[string]*model.Market
		err     error
	}
	resB := make(chan result, 1)
	go func() {
		markets, err := r.LoadMarkets(context.Background(), false)
		resB <- result{markets, err}
	}()

	cancelA()
	if err := <-errA; !errors.Is(err, context.Canceled) {
		t.Fatalf("canceled caller err = %v, want context.Canceled", err)
	}
	close(release)

	b := <-resB
	if b.err != nil {
		t.Fatalf("live caller err = %v", b.err)
	}
	if len(b.markets) != 2 {
		t.Errorf("expected 2 markets, got %d", len(b.markets))
	}
	if got := atomic.LoadInt32(&marketCalls); got != 1 {
		t.Errorf("expected 1 markets fetch, got %d", got)
	}
	if !r.Loaded() {
		t.Error("shared load should populate the cache")
	}
}

func TestRegistryFailedReloadKeepsCache(t *testing.T) {
	fail := false
	r := NewRegistry("test",
		func(ctx context.Context) ([]*model.Market, error) {
			if fail {
				return nil, errors.New("boom")
			}
			return testMarkets(), nil
		},
		func(ctx context.Context) ([]*model.Currency, error) {
			return testCurrencies(), nil
		},
	)

	ctx := context.Background()
	if _, err := r.LoadMarkets(ctx, false); err != nil {
		t.Fatalf("first load: %v", err)
	}

	fail = true
	if _, err := r.LoadMarkets(ctx, true); err == nil {
		t.Fatal("expected reload error")
	}

	// 旧缓存保持不变
	m, err := r.Market("BTC/USDT")
	if err != nil {
		t.Fatalf("Market after failed reload: %v", err)
	}
	if m.ID != "BTC-USDT" {
		t.Errorf("expected first duplicate to win, got id %s", m.ID)
	}
	if len(r.Symbols()) != 2 {
		t.Errorf("expected 2 symbols, got %v", r.Symbols())
	}
}

func TestRegistryLookups(t *testing.T) {
	r := NewRegistry("test",
		func(ctx context.Context) ([]*model.Market, error) { return testMarkets(), nil },
		func(ctx context.Context) ([]*model.Currency, error) { return testCurrencies(), nil },
	)

	// 未加载
	if _, err := r.Market("BTC/USDT"); !errors.Is(err, exerr.ErrBadSymbol) {
		t.Errorf("expected BadSymbol before load, got %v", err)
	}

	if _, err := r.LoadMarkets(context.Background(), false); err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := r.Market("DOGE/USDT"); !errors.Is(err, exerr.ErrBadSymbol) {
		t.Errorf("expected BadSymbol, got %v", err)
	}
	if _, err := r.Currency("DOGE"); !errors.Is(err, exerr.ErrExchange) {
		t.Errorf("expected ExchangeError, got %v", err)
	}
	if c, err := r.Currency("ETH"); err != nil || c.ID != "eth" {
		t.Errorf("Currency(ETH) = %v, %v", c, err)
	}
	if m, ok := r.MarketByID("ETH-BTC"); !ok || m.Symbol != "ETH/BTC" {
		t.Errorf("MarketByID(ETH-BTC) = %v, %v", m, ok)
	}
}

func TestRegistrySafeMarket(t *testing.T) {
	r := NewRegistry("test",
		func(ctx context.Context) ([]*model.Market, error) { return testMarkets(), nil },
		func(ctx context.Context) ([]*model.Currency, error) { return testCurrencies(), nil },
	)
	if _, err := r.LoadMarkets(context.Background(), false); err != nil {
		t.Fatalf("load: %v", err)
	}

	hint := &model.Market{ID: "hint", Symbol: "HINT/USD"}
	tests := []struct {
		id     string
		hint   *model.Market
		symbol string
	}{
		{"ETH-BTC", hint, "ETH/BTC"},
		{"UNKNOWN", hint, "HINT/USD"},
		{"xbt-eur", nil, "BTC/EUR"},
		{"ltc-btc", nil, "LTC/BTC"},
		{"SOMETHING", nil, "SOMETHING"},
	}
	for _, tt := range tests {
		if got := r.SafeSymbol(tt.id, tt.hint, "-"); got != tt.symbol {
			t.Errorf("SafeSymbol(%q) = %q, want %q", tt.id, got, tt.symbol)
		}
	}
}

func TestRegistrySafeCurrencyCode(t *testing.T) {
	r := NewRegistry("test",
		func(ctx context.Context) ([]*model.Market, error) { return testMarkets(), nil },
		func(ctx context.Context) ([]*model.Currency, error) { return testCurrencies(), nil },
	)
	if _, err := r.LoadMarkets(context.Background(), false); err != nil {
		t.Fatalf("load: %v", err)
	}

	tests := map[string]string{
		"btc":  "BTC",
		"XBT":  "BTC",
		"bcc":  "BCH",
		"DRK":  "DASH",
		"paxg": "PAXG",
		"":     "",
	}
	for id, want := range tests {
		if got := r.SafeCurrencyCode(id, nil); got != want {
			t.Errorf("SafeCurrencyCode(%q) = %q, want %q", id, got, want)
		}
	}
}
