package kabus

import (
	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
)

// Signer 只附加 X-API-KEY，取值为 API Key 或换取的 token
type Signer struct {
	client *base.Client
	token  func() string
}

// NewSigner 创建签名工具
func NewSigner(client *base.Client, token func() string) *Signer {
	return &Signer{client: client, token: token}
}

// Sign 编码请求，GET 使用查询串，其余使用 JSON 请求体
func (s *Signer) Sign(req *base.Request) error {
	if req.API == base.Private {
		if err := s.client.CheckRequiredCredentials(); err != nil {
			return err
		}
	}
	baseURL := s.client.HTTPClient.BaseURL()
	if req.Method == "GET" {
		req.URL = base.JoinURL(baseURL, req.Endpoint, req.Query())
	} else {
		req.URL = base.JoinURL(baseURL, req.Endpoint, "")
		if len(req.Params) > 0 {
			body, err := common.MarshalJSON(req.Params)
			if err != nil {
				return err
			}
			req.Body = body
		}
	}
	req.Headers["Content-Type"] = "application/json"
	if token := s.token(); token != "" {
		req.Headers["X-API-KEY"] = token
	}
	return nil
}
