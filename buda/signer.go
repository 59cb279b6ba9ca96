package buda

import (
	"strconv"
	"strings"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
)

// Signer Buda 签名工具
// 签名串: METHOD /api/v2/<path>[?query] [base64(body)] nonce，HMAC-SHA384
type Signer struct {
	client *base.Client
	nonce  *common.Nonce
}

// NewSigner 创建签名工具
func NewSigner(client *base.Client) *Signer {
	return &Signer{
		client: client,
		nonce:  common.MicrosecondNonce,
	}
}

// Sign 编码并签名请求
func (s *Signer) Sign(req *base.Request) error {
	if req.API == base.Private {
		if err := s.client.CheckRequiredCredentials(); err != nil {
			return err
		}
	}
	request := req.Endpoint
	if len(req.Params) > 0 {
		if req.Method == "GET" {
			request += "?" + req.Query()
		} else {
			body, err := common.MarshalJSON(req.Params)
			if err != nil {
				return err
			}
			req.Body = body
		}
	}
	req.URL = base.JoinURL(s.client.HTTPClient.BaseURL(), request, "")

	if req.API != base.Private {
		return nil
	}

	nonce := strconv.FormatInt(s.nonce.Next(), 10)
	req.Headers["X-SBTC-APIKEY"] = s.client.APIKey
	req.Headers["X-SBTC-SIGNATURE"] = s.Signature(req.Method, request, req.Body, nonce)
	req.Headers["X-SBTC-NONCE"] = nonce
	req.Headers["Content-Type"] = "application/json"
	return nil
}

// Signature 计算签名
func (s *Signer) Signature(method, request, body, nonce string) string {
	components := []string{method, budaSignPrefix + request}
	if body != "" {
		components = append(components, common.Base64Encode(body))
	}
	components = append(components, nonce)
	return common.SignHMAC384(strings.Join(components, " "), s.client.SecretKey)
}
