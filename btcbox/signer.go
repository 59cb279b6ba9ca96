package btcbox

import (
	"strconv"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/types"
)

// Signer BTCBox 签名工具
// 私有请求为表单：key, nonce, 业务参数, signature；签名密钥为 md5(secret) 的 hex
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
	baseURL := s.client.HTTPClient.BaseURL()
	if req.API != base.Private {
		req.URL = base.JoinURL(baseURL, req.Endpoint, req.Query())
		return nil
	}

	form := types.NewExValues()
	form.Set("key", s.client.APIKey)
	form.Set("nonce", strconv.FormatInt(s.nonce.Next(), 10))
	form.Merge(types.ExValuesFromMap(req.Params))
	form.Set("signature", s.Signature(form.EncodeQuery()))

	req.URL = base.JoinURL(baseURL, req.Endpoint, "")
	req.Body = form.EncodeQuery()
	req.Headers["Content-Type"] = "application/x-www-form-urlencoded"
	return nil
}

// Signature HMAC-SHA256(query, md5hex(secret))
func (s *Signer) Signature(query string) string {
	return common.SignHMAC256(query, common.HashMD5(s.client.SecretKey))
}
