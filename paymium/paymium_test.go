package paymium

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/option"
)

type recorded struct {
	method string
	path   string
	query  string
	header http.Header
	body   string
}

func mustParse(t *testing.T, s string) interface{} {
	t.Helper()
	v, err := common.ParseJSON([]byte(s))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	return v
}

// newTestPaymium 返回实例、服务地址和请求记录
func newTestPaymium(t *testing.T, routes map[string]string, opts ...option.Option) (*Paymium, string, func() []recorded) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []recorded
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		path := strings.TrimPrefix(r.URL.Path, "/api/v1/")
		mu.Lock()
		requests = append(requests, recorded{
			method: r.Method,
			path:   path,
			query:  r.URL.RawQuery,
			header: r.Header.Clone(),
			body:   string(body),
		})
		mu.Unlock()

		resp, ok := routes[r.Method+" "+path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		if strings.HasPrefix(resp, "!") {
			w.WriteHeader(http.StatusUnprocessableEntity)
			resp = resp[1:]
		}
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(server.Close)

	baseURL := server.URL + "/api/v1"
	opts = append([]option.Option{option.WithBaseURL(baseURL)}, opts...)
	p, err := New(option.Apply(opts...))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return p, baseURL, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), requests...)
	}
}

func credentials() []option.Option {
	return []option.Option{option.WithAPIKey("key"), option.WithSecretKey("secret")}
}

func TestFetchTicker(t *testing.T) {
	p, _, requests := newTestPaymium(t, map[string]string{
		"GET data/eur/ticker": `{"high":"33740.82","low":"32185.15","volume":"4.7890433","bid":"33313.53","ask":"33497.97","vwap":"32802.5263553","at":1643381654,"price":"33143.91","open":"33116.86","variation":"0.0817","currency":"EUR"}`,
	})
	ticker, err := p.FetchTicker(context.Background(), "BTC/EUR")
	if err != nil {
		t.Fatalf("FetchTicker: %v", err)
	}
	if got := requests()[0].path; got != "data/eur/ticker" {
		t.Errorf("path = %s", got)
	}
	if ticker.Symbol != "BTC/EUR" || ticker.Timestamp != 1643381654000 {
		t.Errorf("ticker = %+v", ticker)
	}
	if ticker.QuoteVolume.String() != "157092.71906492288449" {
		t.Errorf("quote volume = %s", ticker.QuoteVolume)
	}
	if ticker.Last.String() != "33143.91" || ticker.Percentage.String() != "0.0817" {
		t.Errorf("last = %s percentage = %s", ticker.Last, ticker.Percentage)
	}

	noVwap := p.parseTicker(mustParse(t, `{"volume":"1"}`), nil)
	if noVwap.QuoteVolume.Valid {
		t.Errorf("quote volume = %s", noVwap.QuoteVolume)
	}
}

func TestParseTradeCost(t *testing.T) {
	p, _, _ := newTestPaymium(t, nil)
	markets, err := p.LoadMarkets(context.Background(), false)
	if err != nil {
		t.Fatalf("LoadMarkets: %v", err)
	}
	raw := mustParse(t, `{"uuid":"d6b9a4c9","side":"buy","price":"32600.0","traded_btc":"0.0105","created_at_int":1643377168,"currency":"EUR"}`)

	trade := p.parseTrade(raw, markets["BTC/EUR"])
	if trade.Amount.String() != "0.0105" || trade.Cost.String() != "342.3" {
		t.Errorf("amount = %s cost = %s", trade.Amount, trade.Cost)
	}
	if trade.Timestamp != 1643377168000 || trade.Datetime != "2022-01-28T13:39:28.000Z" {
		t.Errorf("timestamp = %d datetime = %s", trade.Timestamp, trade.Datetime)
	}

	again := p.parseTrade(raw, markets["BTC/EUR"])
	if !again.Cost.Equal(trade.Cost) || again.ID != trade.ID {
		t.Errorf("parseTrade is not idempotent")
	}
}

func TestFetchOrderBookObjects(t *testing.T) {
	p, _, _ := newTestPaymium(t, map[string]string{
		"GET data/eur/depth": `{"bids":[{"amount":"0.1","price":"100","timestamp":1},{"amount":"0.2","price":"101","timestamp":2}],"asks":[{"amount":"0.3","price":"103","timestamp":3}]}`,
	})
	book, err := p.FetchOrderBook(context.Background(), "BTC/EUR", option.WithLimit(1))
	if err != nil {
		t.Fatalf("FetchOrderBook: %v", err)
	}
	if len(book.Bids) != 1 || book.Bids[0].Price.String() != "101" || book.Bids[0].Amount.String() != "0.2" {
		t.Errorf("bids = %+v", book.Bids)
	}
	if len(book.Asks) != 1 || book.Asks[0].Price.String() != "103" {
		t.Errorf("asks = %+v", book.Asks)
	}
}

func TestSignedRequests(t *testing.T) {
	p, baseURL, requests := newTestPaymium(t, map[string]string{
		"POST user/orders": `{"uuid":"968f4580","amount":"1.0","state":"pending_execution","created_at":"2014-03-04T13:25:30Z","currency":"EUR","type":"LimitOrder","traded_btc":"0.0","traded_currency":"0.0","direction":"buy","price":"500.0"}`,
		"GET user/orders":  `[]`,
	}, credentials()...)

	order, err := p.CreateOrder(context.Background(), "BTC/EUR", option.Limit, option.Buy, "1", option.WithPrice("500"))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.ID != "968f4580" || order.Type != "limit" || order.Status != model.OrderStatusOpen || order.Symbol != "BTC/EUR" {
		t.Errorf("order = %+v", order)
	}
	if order.Filled.String() != "0" {
		t.Errorf("filled = %s", order.Filled)
	}

	post := requests()[0]
	if post.body != `{"amount":"1","currency":"eur","direction":"buy","price":"500","type":"LimitOrder"}` {
		t.Errorf("body = %s", post.body)
	}
	nonce := post.header.Get("Api-Nonce")
	if want := common.SignHMAC256(nonce+baseURL+"/user/orders"+post.body, "secret"); post.header.Get("Api-Signature") != want {
		t.Errorf("signature = %s, want %s", post.header.Get("Api-Signature"), want)
	}
	if post.header.Get("Api-Key") != "key" || post.header.Get("Content-Type") != "application/json" {
		t.Errorf("headers = %v", post.header)
	}

	if _, err := p.FetchOrders(context.Background(), "", option.WithLimit(5)); err != nil {
		t.Fatalf("FetchOrders: %v", err)
	}
	get := requests()[1]
	if get.query != "limit=5" {
		t.Errorf("query = %s", get.query)
	}
	nonce = get.header.Get("Api-Nonce")
	if want := common.SignHMAC256(nonce+baseURL+"/user/orders"+"limit=5", "secret"); get.header.Get("Api-Signature") != want {
		t.Errorf("signature = %s, want %s", get.header.Get("Api-Signature"), want)
	}
}

func TestFetchBalance(t *testing.T) {
	p, _, _ := newTestPaymium(t, map[string]string{
		"GET user": `{"name":"BC-U123456","balance_btc":"1.5","locked_btc":"0.5","balance_eur":"10.0","locked_eur":"0.0"}`,
	}, credentials()...)
	balances, err := p.FetchBalance(context.Background())
	if err != nil {
		t.Fatalf("FetchBalance: %v", err)
	}
	btc := balances.Currencies["BTC"]
	if btc == nil || btc.Free.String() != "1.5" || btc.Used.String() != "0.5" {
		t.Fatalf("BTC = %+v", btc)
	}
	if btc.Total.Valid {
		t.Errorf("total = %s", btc.Total)
	}
	if eur := balances.Currencies["EUR"]; eur == nil || eur.Used.String() != "0" {
		t.Errorf("EUR = %+v", eur)
	}
}

func TestCancelOrderWithoutBody(t *testing.T) {
	p, _, requests := newTestPaymium(t, map[string]string{
		"DELETE user/orders/968f4580/cancel": ``,
	}, credentials()...)
	order, err := p.CancelOrder(context.Background(), "968f4580", "BTC/EUR")
	if err != nil {
		t.Fatalf("CancelOrder: %v", err)
	}
	if order.ID != "968f4580" {
		t.Errorf("id = %s", order.ID)
	}
	if req := requests()[0]; req.query != "" || req.body != "" {
		t.Errorf("query = %s body = %s", req.query, req.body)
	}
}

func TestErrors(t *testing.T) {
	p, _, _ := newTestPaymium(t, map[string]string{
		"POST user/orders": `!{"errors":{"amount":["is too small"]}}`,
	}, credentials()...)
	_, err := p.CreateOrder(context.Background(), "BTC/EUR", option.Market, option.Sell, "0.00001")
	if kind := exerr.KindOf(err); kind != exerr.ErrExchange {
		t.Fatalf("kind = %v, err = %v", kind, err)
	}
	if !strings.Contains(err.Error(), "is too small") {
		t.Errorf("err = %v", err)
	}

	_, err = p.FetchBalance(context.Background(), option.WithParam("x", 1))
	if !errors.Is(err, exerr.ErrBadRequest) {
		t.Errorf("404 err = %v", err)
	}
}

func TestSignerRequiresCredentials(t *testing.T) {
	client, err := NewClient(option.Apply(option.WithAPIKey("key")))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	signer := NewSigner(client)

	req := base.NewRequest(base.Private, "GET", "user", nil)
	if err := signer.Sign(req); !errors.Is(err, exerr.ErrAuthentication) {
		t.Fatalf("Sign err = %v, want ErrAuthentication", err)
	}
	if req.Headers["Api-Signature"] != "" {
		t.Errorf("Api-Signature = %q, want empty", req.Headers["Api-Signature"])
	}

	// 公共接口不需要凭证
	if err := signer.Sign(base.NewRequest(base.Public, "GET", "user", nil)); err != nil {
		t.Errorf("public Sign err = %v", err)
	}
}
