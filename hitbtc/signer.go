package hitbtc

import (
	"strconv"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
)

// Signer HitBTC 签名工具
// 签名串: METHOD + /api/3/<path> + (?query | body) + timestamp，HMAC-SHA256
type Signer struct {
	client *base.Client
	nonce  *common.Nonce
}

// NewSigner 创建签名工具
func NewSigner(client *base.Client) *Signer {
	return &Signer{
		client: client,
		nonce:  common.MillisecondNonce,
	}
}

// Sign 编码并签名请求
func (s *Signer) Sign(req *base.Request) error {
	if req.API == base.Private {
		if err := s.client.CheckRequiredCredentials(); err != nil {
			return err
		}
	}
	query := ""
	if req.Method == "GET" {
		if len(req.Params) > 0 {
			query = "?" + req.Query()
		}
	} else {
		body, err := common.MarshalJSON(req.Params)
		if err != nil {
			return err
		}
		req.Body = body
	}
	req.URL = base.JoinURL(s.client.HTTPClient.BaseURL(), req.Endpoint+query, "")
	req.Headers["Content-Type"] = "application/json"

	if req.API != base.Private {
		return nil
	}

	timestamp := strconv.FormatInt(s.nonce.Next(), 10)
	payload := req.Method + hitbtcSignPrefix + req.Endpoint
	if req.Method == "GET" {
		payload += query
	} else {
		payload += req.Body
	}
	req.Headers["Authorization"] = s.Authorization(payload, timestamp)
	return nil
}

// Authorization 生成 HS256 认证头
func (s *Signer) Authorization(payload, timestamp string) string {
	signature := common.SignHMAC256(payload+timestamp, s.client.SecretKey)
	return "HS256 " + common.Base64Encode(s.client.APIKey+":"+signature+":"+timestamp)
}
