package paymium

import (
	"strconv"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
)

// Signer Paymium 签名工具
// 签名串: nonce + 完整 URL（不含查询串）+ (JSON 请求体 | 查询串)，HMAC-SHA256 hex
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

// Sign 编码并签名请求，私有 POST 使用 JSON 请求体，其余使用查询串
func (s *Signer) Sign(req *base.Request) error {
	if req.API == base.Private {
		if err := s.client.CheckRequiredCredentials(); err != nil {
			return err
		}
	}
	endpoint := base.JoinURL(s.client.HTTPClient.BaseURL(), req.Endpoint, "")
	if req.API != base.Private {
		req.URL = base.JoinURL(s.client.HTTPClient.BaseURL(), req.Endpoint, req.Query())
		return nil
	}

	nonce := strconv.FormatInt(s.nonce.Next(), 10)
	auth := nonce + endpoint
	req.URL = endpoint
	if len(req.Params) > 0 {
		if req.Method == "POST" {
			body, err := common.MarshalJSON(req.Params)
			if err != nil {
				return err
			}
			req.Body = body
			auth += body
			req.Headers["Content-Type"] = "application/json"
		} else {
			query := req.Query()
			auth += query
			req.URL += "?" + query
		}
	}
	req.Headers["Api-Key"] = s.client.APIKey
	req.Headers["Api-Nonce"] = nonce
	req.Headers["Api-Signature"] = common.SignHMAC256(auth, s.client.SecretKey)
	return nil
}
