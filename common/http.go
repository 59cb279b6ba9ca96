package common

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sort"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/logrusorgru/aurora"
)

// HTTPError 非 2xx 响应且无法识别为交易所业务错误
type HTTPError struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http error %d: %s %s: %s", e.StatusCode, e.Method, e.URL, e.Body)
}

// Response 原始响应
type Response struct {
	StatusCode int
	Header     http.Header
	Body       []byte
}

// OK 是否为 2xx
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// HTTPClient HTTP客户端
type HTTPClient struct {
	client  *resty.Client
	baseURL string
	headers map[string]string
	proxy   string
	debug   bool
	logger  *log.Logger
}

// NewHTTPClient 创建HTTP客户端
func NewHTTPClient(baseURL string) *HTTPClient {
	return &HTTPClient{
		client:  resty.New().SetTimeout(30 * time.Second),
		baseURL: strings.TrimRight(baseURL, "/"),
		headers: make(map[string]string),
	}
}

// BaseURL 返回基础地址
func (c *HTTPClient) BaseURL() string {
	return c.baseURL
}

// SetBaseURL 设置基础地址
func (c *HTTPClient) SetBaseURL(baseURL string) {
	c.baseURL = strings.TrimRight(baseURL, "/")
}

// SetProxy 设置代理
func (c *HTTPClient) SetProxy(proxyURL string) error {
	if proxyURL == "" {
		c.client.RemoveProxy()
		c.proxy = ""
		return nil
	}
	if !strings.Contains(proxyURL, "://") {
		return fmt.Errorf("invalid proxy URL: %s", proxyURL)
	}
	c.client.SetProxy(proxyURL)
	c.proxy = proxyURL
	return nil
}

// GetProxy 获取当前代理设置
func (c *HTTPClient) GetProxy() string {
	return c.proxy
}

// SetHeader 设置公共请求头
func (c *HTTPClient) SetHeader(key, value string) {
	c.headers[key] = value
}

// SetTimeout 设置超时时间
func (c *HTTPClient) SetTimeout(timeout time.Duration) {
	c.client.SetTimeout(timeout)
}

// SetDebug 设置是否启用调试模式
func (c *HTTPClient) SetDebug(debug bool) {
	c.debug = debug
}

// SetLogger 设置调试日志输出
func (c *HTTPClient) SetLogger(logger *log.Logger) {
	c.logger = logger
}

// SetTransport 替换底层 Transport
func (c *HTTPClient) SetTransport(transport http.RoundTripper) {
	c.client.SetTransport(transport)
}

// Do 发送已签名的请求，非 2xx 也返回响应体，由上层分类错误
func (c *HTTPClient) Do(ctx context.Context, method, url string, headers map[string]string, body string) (*Response, error) {
	req := c.client.R().SetContext(ctx)

	merged := make(map[string]string, len(c.headers)+len(headers))
	for k, v := range c.headers {
		merged[k] = v
	}
	for k, v := range headers {
		merged[k] = v
	}
	req.SetHeaders(merged)
	if body != "" {
		req.SetBody(body)
	}

	if c.debug {
		c.logRequest(method, url, merged, body)
	}

	resp, err := req.Execute(strings.ToUpper(method), url)
	if err != nil {
		return nil, fmt.Errorf("send request: %w", err)
	}

	out := &Response{
		StatusCode: resp.StatusCode(),
		Header:     resp.Header(),
		Body:       resp.Body(),
	}

	if c.debug {
		c.logResponse(out, resp.Time())
	}

	return out, nil
}

func (c *HTTPClient) debugLogger() *log.Logger {
	if c.logger == nil {
		c.logger = NewLogger("http")
	}
	return c.logger
}

func (c *HTTPClient) logRequest(method, url string, headers map[string]string, body string) {
	masked := MaskHeaders(headers)
	keys := make([]string, 0, len(masked))
	for k := range masked {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+"="+masked[k])
	}

	l := c.debugLogger()
	l.Printf("%s %s", aurora.Bold(aurora.Cyan(strings.ToUpper(method))), url)
	if len(parts) > 0 {
		l.Printf("  Headers: %s", strings.Join(parts, " "))
	}
	if body != "" {
		l.Printf("  Body: %s", MaskBody(body))
	}
}

func (c *HTTPClient) logResponse(resp *Response, elapsed time.Duration) {
	status := aurora.Green(resp.StatusCode)
	if !resp.OK() {
		status = aurora.Red(resp.StatusCode)
	}
	c.debugLogger().Printf("  Status: %s (%s) Body: %s", aurora.Bold(status), elapsed, string(resp.Body))
}
