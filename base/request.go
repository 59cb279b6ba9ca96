package base

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/types"
)

// API 接口访问级别
type API string

const (
	// Public 公共接口
	Public API = "public"
	// Private 私有接口（需要签名）
	Private API = "private"
)

// Request 待签名的请求
type Request struct {
	// API 访问级别
	API API
	// Method HTTP 方法
	Method string
	// Path 路径模板，如 "markets/{market}/ticker"
	Path string
	// Endpoint 替换占位符之后的路径
	Endpoint string
	// Params 未被路径消费的参数
	Params map[string]interface{}
	// Headers 请求头（签名器写入）
	Headers map[string]string
	// URL 完整地址（签名器写入）
	URL string
	// Body 请求体（签名器写入）
	Body string
}

// NewRequest 创建请求并展开路径占位符
func NewRequest(api API, method, path string, params map[string]interface{}) *Request {
	endpoint, rest := ImplodePath(path, params)
	return &Request{
		API:      api,
		Method:   strings.ToUpper(method),
		Path:     path,
		Endpoint: endpoint,
		Params:   rest,
		Headers:  make(map[string]string),
	}
}

// ImplodePath 替换路径中的 {key} 占位符，返回路径和剩余参数
func ImplodePath(path string, params map[string]interface{}) (string, map[string]interface{}) {
	rest := OmitPathParams(path, params)
	for key, value := range params {
		placeholder := "{" + key + "}"
		if !strings.Contains(path, placeholder) {
			continue
		}
		s, _ := types.FormatValue(value)
		path = strings.ReplaceAll(path, placeholder, url.PathEscape(s))
	}
	return path, rest
}

// OmitPathParams 返回未在原始路径模板中出现的参数
func OmitPathParams(path string, params map[string]interface{}) map[string]interface{} {
	rest := make(map[string]interface{}, len(params))
	for key, value := range params {
		if strings.Contains(path, "{"+key+"}") {
			continue
		}
		rest[key] = value
	}
	return rest
}

// Query 剩余参数的查询字符串（key 排序）
func (r *Request) Query() string {
	return common.BuildQueryString(r.Params)
}

// IsQueryMethod GET / DELETE 参数放在查询字符串
func (r *Request) IsQueryMethod() bool {
	return r.Method == "GET" || r.Method == "DELETE"
}

// JoinURL 拼接 baseURL、路径和查询字符串
func JoinURL(baseURL, endpoint, query string) string {
	u := strings.TrimRight(baseURL, "/") + "/" + strings.TrimLeft(endpoint, "/")
	if query != "" {
		u += "?" + query
	}
	return u
}

// EncodeDefault 默认编码：GET/DELETE 使用查询字符串，其余使用 JSON 请求体
func (r *Request) EncodeDefault(baseURL string) error {
	if r.IsQueryMethod() {
		r.URL = JoinURL(baseURL, r.Endpoint, r.Query())
		return nil
	}
	r.URL = JoinURL(baseURL, r.Endpoint, "")
	if len(r.Params) == 0 {
		return nil
	}
	body, err := common.MarshalJSON(r.Params)
	if err != nil {
		return fmt.Errorf("encode body: %w", err)
	}
	r.Body = body
	r.Headers["Content-Type"] = "application/json"
	return nil
}

// Signer 请求签名器
type Signer interface {
	Sign(req *Request) error
}

// SignerFunc 函数形式的签名器
type SignerFunc func(req *Request) error

// Sign 实现 Signer
func (f SignerFunc) Sign(req *Request) error {
	return f(req)
}
