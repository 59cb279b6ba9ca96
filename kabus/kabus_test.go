package kabus

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
	"github.com/lemconn/exnorm/option"
)

const testBoard = `{"Symbol":"8306","SymbolName":"三菱ＵＦＪフィナンシャルＧ","CurrentPrice":734.7,"CurrentPriceTime":"2022-01-28T15:00:00+09:00",
"OpeningPrice":730,"HighPrice":738.3,"LowPrice":727.4,"TradingVolume":60818400,"TradingValue":44571826990,"VWAP":732.8716,
"BidPrice":734.8,"BidQty":79400,"AskPrice":734.7,"AskQty":55200,"PreviousClose":735.8,"ChangePreviousClose":-1.1,"ChangePreviousClosePer":-0.15,
"Sell1":{"Price":734.8,"Qty":79400},"Sell2":{"Price":734.9,"Qty":100000},"Sell3":{"Price":0,"Qty":0},
"Buy1":{"Price":734.7,"Qty":55200},"Buy2":{"Price":734.5,"Qty":3000},"Buy3":{"Price":734.6,"Qty":200}}`

type recorded struct {
	method string
	path   string
	header http.Header
	body   string
}

// newTestKabus 路由 key 为 "METHOD path"，以 ! 开头的响应返回 401
func newTestKabus(t *testing.T, routes map[string]string, opts ...option.Option) (*Kabus, func() []recorded) {
	t.Helper()
	var (
		mu       sync.Mutex
		requests []recorded
	)
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		path := strings.TrimPrefix(r.URL.Path, kabusPath+"/")
		mu.Lock()
		requests = append(requests, recorded{method: r.Method, path: path, header: r.Header.Clone(), body: string(body)})
		mu.Unlock()

		resp, ok := routes[r.Method+" "+path]
		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"Code":4002001,"Message":"銘柄が見つからない"}`))
			return
		}
		if strings.HasPrefix(resp, "!") {
			w.WriteHeader(http.StatusUnauthorized)
			resp = resp[1:]
		}
		_, _ = w.Write([]byte(resp))
	}))
	t.Cleanup(server.Close)

	host := strings.TrimPrefix(server.URL, "http://")
	opts = append([]option.Option{option.WithConfig(Config{Hostname: host})}, opts...)
	k, err := New(option.Apply(opts...))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return k, func() []recorded {
		mu.Lock()
		defer mu.Unlock()
		return append([]recorded(nil), requests...)
	}
}

func TestStaticInstruments(t *testing.T) {
	k, _ := newTestKabus(t, nil)
	markets, err := k.LoadMarkets(context.Background(), false)
	if err != nil {
		t.Fatalf("LoadMarkets: %v", err)
	}
	if len(markets) != len(instruments) {
		t.Fatalf("markets = %d", len(markets))
	}
	m := markets["8306@1/JPY"]
	if m == nil || m.ID != "8306@1" || m.Quote != "JPY" {
		t.Fatalf("market = %+v", m)
	}
	if m.Limits.Amount.Min.String() != "100" || m.Limits.Cost.Max.String() != "100000000" {
		t.Errorf("limits = %+v", m.Limits)
	}
}

func TestFetchTickerWithToken(t *testing.T) {
	k, requests := newTestKabus(t, map[string]string{
		"POST token":       `{"ResultCode":0,"Token":"tok-1"}`,
		"GET board/8306@1": testBoard,
	}, option.WithPassword("pw"))

	ticker, err := k.FetchTicker(context.Background(), "8306@1")
	if err != nil {
		t.Fatalf("FetchTicker: %v", err)
	}
	if ticker.Symbol != "8306@1/JPY" || ticker.Timestamp != 1643349600000 {
		t.Errorf("symbol = %s timestamp = %d", ticker.Symbol, ticker.Timestamp)
	}
	if ticker.Last.String() != "734.7" || ticker.Open.String() != "730" {
		t.Errorf("last = %s open = %s", ticker.Last, ticker.Open)
	}
	if ticker.Bid.String() != "734.7" || ticker.Ask.String() != "734.8" {
		t.Errorf("bid = %s ask = %s", ticker.Bid, ticker.Ask)
	}
	if ticker.BaseVolume.String() != "60818400" || ticker.QuoteVolume.String() != "44571826990" {
		t.Errorf("volumes = %s %s", ticker.BaseVolume, ticker.QuoteVolume)
	}
	if ticker.Percentage.String() != "-0.15" {
		t.Errorf("percentage = %s", ticker.Percentage)
	}

	if _, err := k.FetchTicker(context.Background(), "8306@1/JPY"); err != nil {
		t.Fatalf("FetchTicker: %v", err)
	}
	reqs := requests()
	if len(reqs) != 3 {
		t.Fatalf("requests = %d", len(reqs))
	}
	if reqs[0].path != "token" || reqs[0].body != `{"APIPassword":"pw"}` || reqs[0].header.Get("X-API-KEY") != "" {
		t.Errorf("token request = %+v", reqs[0])
	}
	for _, r := range reqs[1:] {
		if r.header.Get("X-API-KEY") != "tok-1" {
			t.Errorf("X-API-KEY = %q", r.header.Get("X-API-KEY"))
		}
	}
}

func TestFetchOrderBook(t *testing.T) {
	k, requests := newTestKabus(t, map[string]string{
		"GET board/8306@1": testBoard,
	}, option.WithAPIKey("key"))

	book, err := k.FetchOrderBook(context.Background(), "8306@1/JPY")
	if err != nil {
		t.Fatalf("FetchOrderBook: %v", err)
	}
	if len(book.Bids) != 3 || len(book.Asks) != 2 {
		t.Fatalf("bids = %d asks = %d", len(book.Bids), len(book.Asks))
	}
	if book.Bids[0].Price.String() != "734.7" || book.Bids[1].Price.String() != "734.6" {
		t.Errorf("bids = %+v", book.Bids)
	}
	if book.Asks[0].Price.String() != "734.8" || book.Asks[0].Amount.String() != "79400" {
		t.Errorf("asks = %+v", book.Asks)
	}
	if got := requests()[0].header.Get("X-API-KEY"); got != "key" {
		t.Errorf("X-API-KEY = %q", got)
	}
}

func TestMissingCredentials(t *testing.T) {
	k, requests := newTestKabus(t, nil)
	_, err := k.FetchTicker(context.Background(), "8306@1")
	if !errors.Is(err, exerr.ErrAuthentication) {
		t.Fatalf("err = %v", err)
	}
	if n := len(requests()); n != 0 {
		t.Errorf("requests = %d", n)
	}
}

func TestTokenRejected(t *testing.T) {
	k, _ := newTestKabus(t, map[string]string{
		"POST token": `!{"Code":4001009,"Message":"APIパスワード不一致"}`,
	}, option.WithPassword("wrong"))
	_, err := k.FetchTicker(context.Background(), "8306@1")
	if !errors.Is(err, exerr.ErrAuthentication) {
		t.Fatalf("err = %v", err)
	}
	if k.currentToken() != "" {
		t.Errorf("token = %q", k.currentToken())
	}
}

func TestExpiredTokenIsDropped(t *testing.T) {
	k, _ := newTestKabus(t, map[string]string{
		"POST token":       `{"ResultCode":0,"Token":"tok-1"}`,
		"GET board/8306@1": `!{"Code":4001007,"Message":"ログイン認証エラー"}`,
	}, option.WithPassword("pw"))
	_, err := k.FetchTicker(context.Background(), "8306@1")
	if !errors.Is(err, exerr.ErrAuthentication) {
		t.Fatalf("err = %v", err)
	}
	if k.currentToken() != "" {
		t.Errorf("token = %q", k.currentToken())
	}
}

func TestUnknownSymbol(t *testing.T) {
	k, _ := newTestKabus(t, nil, option.WithAPIKey("key"))
	if err := handleErrors(&common.Response{StatusCode: 404}, map[string]interface{}{"Code": "4002001"}); !errors.Is(err, exerr.ErrBadSymbol) {
		t.Errorf("err = %v", err)
	}
	if _, err := k.FetchTicker(context.Background(), "0000@1"); err == nil {
		t.Error("expected error for unlisted instrument")
	}
}

func TestDefaultHostname(t *testing.T) {
	k, err := New(option.Apply())
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if got := k.Client().HTTPClient.BaseURL(); got != "http://192.168.11.6:8070/live/kabusapi" {
		t.Errorf("base url = %s", got)
	}
}

func TestSignerUsesClientCredentials(t *testing.T) {
	// 未声明所需凭证的客户端默认要求 APIKey 和 Secret
	client, err := NewClient(option.Apply(), DefaultConfig())
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	req := base.NewRequest(base.Private, "GET", "board/{symbol}", map[string]interface{}{"symbol": "8306@1"})
	if err := NewSigner(client, func() string { return "" }).Sign(req); !errors.Is(err, exerr.ErrAuthentication) {
		t.Fatalf("Sign err = %v, want ErrAuthentication", err)
	}

	// 交易所实例不要求静态凭证，X-API-KEY 取 token
	k, _ := newTestKabus(t, nil)
	req = base.NewRequest(base.Private, "GET", "board/{symbol}", map[string]interface{}{"symbol": "8306@1"})
	if err := NewSigner(k.Client(), func() string { return "token" }).Sign(req); err != nil {
		t.Fatalf("Sign err = %v", err)
	}
	if req.Headers["X-API-KEY"] != "token" {
		t.Errorf("X-API-KEY = %q", req.Headers["X-API-KEY"])
	}
}
