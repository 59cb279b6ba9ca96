package buda

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
	"github.com/lemconn/exnorm/model"
	"github.com/lemconn/exnorm/option"
)

const (
	testMarkets    = `{"markets":[{"id":"ETH-BTC","base_currency":"ETH","quote_currency":"BTC","minimum_order_amount":["0.001","ETH"]},{"id":"BTC-CLP","base_currency":"BTC","quote_currency":"CLP","minimum_order_amount":["0.00002","BTC"]}]}`
	testCurrencies = `{"currencies":[{"id":"BTC","managed":true,"input_decimals":8,"deposit_minimum":["0.0","BTC"],"withdrawal_minimum":["0.00001","BTC"]},{"id":"ETH","managed":true,"input_decimals":9},{"id":"CLP","managed":true,"input_decimals":0},{"id":"XYZ","managed":false}]}`
)

func mustParse(t *testing.T, s string) interface{} {
	t.Helper()
	v, err := common.ParseJSON([]byte(s))
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	return v
}

// newTestBuda 创建指向 httptest 服务的实例
func newTestBuda(t *testing.T, routes map[string]string, opts ...option.Option) (*Buda, *[]*http.Request) {
	t.Helper()
	var requests []*http.Request
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		r.Body = io.NopCloser(strings.NewReader(string(body)))
		clone := r.Clone(context.Background())
		clone.Body = io.NopCloser(strings.NewReader(string(body)))
		requests = append(requests, clone)

		key := r.Method + " " + strings.TrimPrefix(r.URL.Path, "/api/v2/")
		resp, ok := routes[key]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"message":"Not found","code":"not_found"}`))
			return
		}
		if strings.HasPrefix(resp, "!") {
			w.WriteHeader(http.StatusUnauthorized)
			resp = resp[1:]
		}
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(server.Close)

	opts = append([]option.Option{option.WithBaseURL(server.URL + "/api/v2")}, opts...)
	b, err := New(option.Apply(opts...))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	b.now = func() int64 { return 1700000000000 }
	return b, &requests
}

func TestParseTicker(t *testing.T) {
	b, _ := newTestBuda(t, nil)
	raw := mustParse(t, `{"market_id":"ETH-BTC","last_price":["0.073","BTC"],"max_bid":["0.0755","BTC"],"min_ask":["0.0771","BTC"]}`)

	ticker := b.parseTicker(raw, nil)
	if ticker.Symbol != "ETH/BTC" {
		t.Errorf("symbol = %s", ticker.Symbol)
	}
	if ticker.Last.String() != "0.073" || ticker.Close.String() != "0.073" {
		t.Errorf("last = %s close = %s", ticker.Last, ticker.Close)
	}
	if ticker.Bid.String() != "0.0755" || ticker.Ask.String() != "0.0771" {
		t.Errorf("bid = %s ask = %s", ticker.Bid, ticker.Ask)
	}
	// 上游未提供的字段保持缺失
	if ticker.High.Valid || ticker.Low.Valid || ticker.BaseVolume.Valid || ticker.Percentage.Valid {
		t.Errorf("absent fields must stay absent: %+v", ticker)
	}

	again := b.parseTicker(raw, nil)
	if !again.Last.Equal(ticker.Last) || !again.Bid.Equal(ticker.Bid) || again.Timestamp != ticker.Timestamp || again.Symbol != ticker.Symbol {
		t.Error("parseTicker not idempotent")
	}
}

func TestParseTickerPercentage(t *testing.T) {
	b, _ := newTestBuda(t, nil)
	raw := mustParse(t, `{"market_id":"ETH-BTC","last_price":["0.07300001","BTC"],"volume":["0.168965697","ETH"],"price_variation_24h":"-0.046"}`)
	ticker := b.parseTicker(raw, nil)
	if ticker.Percentage.String() != "-4.6" {
		t.Errorf("percentage = %s", ticker.Percentage)
	}
	if ticker.BaseVolume.String() != "0.168965697" {
		t.Errorf("baseVolume = %s", ticker.BaseVolume)
	}
}

func TestParseTradeTuple(t *testing.T) {
	b, _ := newTestBuda(t, nil)
	raw := mustParse(t, `["1540077456791","0.0063767","0.03","sell",479842]`)
	trade := b.parseTrade(raw, &model.Market{Symbol: "ETH/BTC"})

	if trade.ID != "479842" {
		t.Errorf("id = %s", trade.ID)
	}
	if trade.Timestamp != 1540077456791 {
		t.Errorf("timestamp = %d", trade.Timestamp)
	}
	if trade.Price.String() != "0.0063767" || trade.Amount.String() != "0.03" {
		t.Errorf("price = %s amount = %s", trade.Price, trade.Amount)
	}
	if trade.Side != "sell" || trade.Symbol != "ETH/BTC" {
		t.Errorf("side = %s symbol = %s", trade.Side, trade.Symbol)
	}
	if trade.Cost.Valid {
		t.Error("cost must not be derived")
	}
	if trade.Datetime != "2018-10-20T23:17:36.791Z" {
		t.Errorf("datetime = %s", trade.Datetime)
	}
}

func TestParseOrder(t *testing.T) {
	b, _ := newTestBuda(t, nil)
	raw := mustParse(t, `{"id":63679183,"market_id":"ETH-CLP","type":"Ask","state":"received","created_at":"2021-01-04T08:29:52.730Z",
		"price_type":"limit","limit":["741000.0","CLP"],"amount":["0.001","ETH"],"original_amount":["0.001","ETH"],
		"traded_amount":["0.0","ETH"],"total_exchanged":["0.0","CLP"],"paid_fee":["0.0","CLP"]}`)
	order := b.parseOrder(raw, nil)

	if order.ID != "63679183" || order.Symbol != "ETH/CLP" {
		t.Errorf("id = %s symbol = %s", order.ID, order.Symbol)
	}
	if order.Side != "sell" || order.Type != "limit" || order.Status != model.OrderStatusOpen {
		t.Errorf("side = %s type = %s status = %s", order.Side, order.Type, order.Status)
	}
	if order.Timestamp != 1609748992730 {
		t.Errorf("timestamp = %d", order.Timestamp)
	}
	if order.Price.String() != "741000" || order.Amount.String() != "0.001" || order.Remaining.String() != "0.001" {
		t.Errorf("price = %s amount = %s remaining = %s", order.Price, order.Amount, order.Remaining)
	}
	if order.Fee == nil || order.Fee.Currency != "CLP" {
		t.Errorf("fee = %+v", order.Fee)
	}

	// 未知状态原样返回
	unknown := b.parseOrder(mustParse(t, `{"id":1,"state":"mystery"}`), nil)
	if unknown.Status != "mystery" {
		t.Errorf("status = %s", unknown.Status)
	}
}

func TestParseTransaction(t *testing.T) {
	b, _ := newTestBuda(t, nil)
	deposit := b.parseTransaction(mustParse(t, `{"id":1,"state":"confirmed","currency":"BTC","created_at":"2018-01-01T00:00:00.000Z",
		"amount":["0.1","BTC"],"fee":["0.0","BTC"],"deposit_data":{"tx_hash":"abc","updated_at":"2018-01-01T00:01:00.000Z"}}`), nil)
	if deposit.Type != model.TransactionDeposit || deposit.Status != model.TransactionStatusOK || deposit.TxID != "abc" {
		t.Errorf("deposit = %+v", deposit)
	}
	if deposit.Updated != 1514764860000 {
		t.Errorf("updated = %d", deposit.Updated)
	}

	withdrawal := b.parseTransaction(mustParse(t, `{"id":2,"state":"anulled","currency":"BTC","amount":["0.2","BTC"],
		"withdrawal_data":{"target_address":"1abc"}}`), nil)
	if withdrawal.Type != model.TransactionWithdrawal || withdrawal.Status != model.TransactionStatusCanceled || withdrawal.Address != "1abc" {
		t.Errorf("withdrawal = %+v", withdrawal)
	}
	if withdrawal.Fee != nil {
		t.Error("fee must stay absent")
	}
}

func TestFetchMarketsAndOrderBook(t *testing.T) {
	b, requests := newTestBuda(t, map[string]string{
		"GET markets":                    testMarkets,
		"GET currencies":                 testCurrencies,
		"GET markets/ETH-BTC/order_book": `{"order_book":{"bids":[["0.07","1"],["0.075","2"]],"asks":[["0.08","1"],["0.077","3"]]}}`,
	})

	ctx := context.Background()
	book, err := b.FetchOrderBook(ctx, "ETH/BTC")
	if err != nil {
		t.Fatalf("FetchOrderBook: %v", err)
	}
	if book.Bids[0].Price.String() != "0.075" || book.Asks[0].Price.String() != "0.077" {
		t.Errorf("book not sorted: %+v", book)
	}

	market, err := b.Market("BTC/CLP")
	if err != nil {
		t.Fatalf("Market: %v", err)
	}
	if market.Precision.Amount.String() != "8" || market.Precision.Price.String() != "0" {
		t.Errorf("precision = %+v", market.Precision)
	}
	if market.Limits.Amount.Min.String() != "0.00002" {
		t.Errorf("amount min = %s", market.Limits.Amount.Min)
	}
	if _, err := b.Currency("XYZ"); err == nil {
		t.Error("unmanaged currency should be skipped")
	}
	if _, err := b.FetchOrderBook(ctx, "DOGE/BTC"); !errors.Is(err, exerr.ErrBadSymbol) {
		t.Errorf("expected BadSymbol, got %v", err)
	}
	for _, r := range *requests {
		if r.Header.Get("X-SBTC-SIGNATURE") != "" {
			t.Errorf("public request %s must not be signed", r.URL.Path)
		}
	}
}

func TestSignedRequest(t *testing.T) {
	b, requests := newTestBuda(t, map[string]string{
		"GET markets":                 testMarkets,
		"GET currencies":              testCurrencies,
		"POST markets/BTC-CLP/orders": `{"order":{"id":1,"market_id":"BTC-CLP","type":"Bid","state":"pending","price_type":"limit","limit":["100","CLP"],"original_amount":["1","BTC"]}}`,
	}, option.WithAPIKey("key"), option.WithSecretKey("secret"))

	order, err := b.CreateOrder(context.Background(), "BTC/CLP", option.Limit, option.Buy, "1", option.WithPrice("100"))
	if err != nil {
		t.Fatalf("CreateOrder: %v", err)
	}
	if order.Side != "buy" || order.Status != model.OrderStatusOpen || order.Symbol != "BTC/CLP" {
		t.Errorf("order = %+v", order)
	}

	req := (*requests)[len(*requests)-1]
	body, _ := io.ReadAll(req.Body)
	nonce := req.Header.Get("X-SBTC-NONCE")
	if req.Header.Get("X-SBTC-APIKEY") != "key" || nonce == "" {
		t.Fatalf("missing auth headers: %v", req.Header)
	}
	if !strings.Contains(string(body), `"type":"Bid"`) || !strings.Contains(string(body), `"limit":"100"`) {
		t.Errorf("body = %s", body)
	}
	message := "POST /api/v2/markets/BTC-CLP/orders " + common.Base64Encode(string(body)) + " " + nonce
	if want := common.SignHMAC384(message, "secret"); req.Header.Get("X-SBTC-SIGNATURE") != want {
		t.Errorf("signature mismatch")
	}
}

func TestErrors(t *testing.T) {
	b, requests := newTestBuda(t, map[string]string{
		"GET balances": `!{"message":"Invalid credentials","code":"not_authorized"}`,
	}, option.WithAPIKey("key"), option.WithSecretKey("secret"))

	ctx := context.Background()
	if _, err := b.FetchBalance(ctx); !errors.Is(err, exerr.ErrAuthentication) {
		t.Errorf("expected AuthenticationError, got %v", err)
	}
	if _, err := b.FetchOrder(ctx, "404", ""); !errors.Is(err, exerr.ErrExchange) || errors.Is(err, exerr.ErrBadRequest) {
		t.Errorf("expected plain ExchangeError for not_found, got %v", err)
	}

	noCreds, noCredsRequests := newTestBuda(t, nil)
	if _, err := noCreds.FetchBalance(ctx); !errors.Is(err, exerr.ErrAuthentication) {
		t.Errorf("expected AuthenticationError, got %v", err)
	}
	if len(*noCredsRequests) != 0 {
		t.Errorf("expected no request, got %d", len(*noCredsRequests))
	}
	_ = requests
}

func TestDepositAddress(t *testing.T) {
	b, _ := newTestBuda(t, map[string]string{
		"GET markets":                          testMarkets,
		"GET currencies":                       testCurrencies,
		"GET currencies/BTC/receive_addresses": `{"receive_addresses":[{"id":1,"address":null,"ready":false}]}`,
		"GET currencies/ETH/receive_addresses": `{"receive_addresses":[{"id":1,"address":"0xabc","ready":true}]}`,
	}, option.WithAPIKey("key"), option.WithSecretKey("secret"))

	ctx := context.Background()
	if _, err := b.FetchDepositAddress(ctx, "CLP"); !errors.Is(err, exerr.ErrNotSupported) {
		t.Errorf("expected NotSupported for fiat, got %v", err)
	}
	if _, err := b.FetchDepositAddress(ctx, "BTC"); !errors.Is(err, exerr.ErrAddressPending) {
		t.Errorf("expected AddressPending, got %v", err)
	}
	addr, err := b.FetchDepositAddress(ctx, "ETH")
	if err != nil || addr.Address != "0xabc" {
		t.Errorf("FetchDepositAddress(ETH) = %+v, %v", addr, err)
	}
}

func TestFetchOHLCV(t *testing.T) {
	b, requests := newTestBuda(t, map[string]string{
		"GET markets":    testMarkets,
		"GET currencies": testCurrencies,
		"GET tv/history": `{"s":"ok","t":[1699990000,1699993600],"o":["1","2"],"h":["3","4"],"l":["0.5","1.5"],"c":["2","3"],"v":["10","20"]}`,
	})
	candles, err := b.FetchOHLCV(context.Background(), "ETH/BTC", "1h")
	if err != nil {
		t.Fatalf("FetchOHLCV: %v", err)
	}
	if len(candles) != 2 || candles[1].Timestamp != 1699993600000 || candles[1].Close.String() != "3" {
		t.Errorf("candles = %+v", candles)
	}
	last := (*requests)[len(*requests)-1]
	if last.URL.Query().Get("resolution") != "60" || last.URL.Query().Get("symbol") != "ETH-BTC" {
		t.Errorf("query = %s", last.URL.RawQuery)
	}
	if _, err := b.FetchOHLCV(context.Background(), "ETH/BTC", "3m"); !errors.Is(err, exerr.ErrBadRequest) {
		t.Errorf("expected BadRequest for unsupported timeframe, got %v", err)
	}
}

func TestSignerRequiresCredentials(t *testing.T) {
	client, err := NewClient(option.Apply(option.WithAPIKey("key")))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	signer := NewSigner(client)

	req := base.NewRequest(base.Private, "GET", "balances", nil)
	if err := signer.Sign(req); !errors.Is(err, exerr.ErrAuthentication) {
		t.Fatalf("Sign err = %v, want ErrAuthentication", err)
	}
	if req.Headers["X-SBTC-SIGNATURE"] != "" {
		t.Errorf("X-SBTC-SIGNATURE = %q, want empty", req.Headers["X-SBTC-SIGNATURE"])
	}

	// 公共接口不需要凭证
	if err := signer.Sign(base.NewRequest(base.Public, "GET", "balances", nil)); err != nil {
		t.Errorf("public Sign err = %v", err)
	}
}
