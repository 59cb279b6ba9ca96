package idex

import (
	"bytes"
	"strings"

	"github.com/ethereum/go-ethereum/accounts"
	ethcommon "github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/google/uuid"

	"github.com/lemconn/exnorm/base"
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
)

// Signer IDEX 请求签名
// 所有请求带 IDEX-API-Key，私有请求额外带 IDEX-HMAC-Signature（查询串或请求体的 HMAC-SHA256）
type Signer struct {
	client *base.Client
}

// NewSigner 创建签名工具
func NewSigner(client *base.Client) *Signer {
	return &Signer{client: client}
}

// Sign 编码并签名请求，GET 使用查询串，其余方法使用 JSON 请求体
func (s *Signer) Sign(req *base.Request) error {
	if req.API == base.Private {
		if err := s.client.CheckRequiredCredentials(); err != nil {
			return err
		}
	}
	baseURL := s.client.HTTPClient.BaseURL()
	payload := ""
	if req.Method == "GET" {
		payload = req.Query()
		req.URL = base.JoinURL(baseURL, req.Endpoint, payload)
	} else {
		req.URL = base.JoinURL(baseURL, req.Endpoint, "")
		if len(req.Params) > 0 {
			body, err := common.MarshalJSON(req.Params)
			if err != nil {
				return err
			}
			req.Body = body
		}
		payload = req.Body
	}
	req.Headers["Content-Type"] = "application/json"
	if s.client.APIKey != "" {
		req.Headers["IDEX-API-Key"] = s.client.APIKey
	}
	if req.API == base.Private {
		req.Headers["IDEX-HMAC-Signature"] = common.SignHMAC256(payload, s.client.SecretKey)
	}
	return nil
}

// walletPayload 钱包签名的原始字节：keccak256 后按以太坊个人消息签名
type walletPayload struct {
	bytes.Buffer
}

// writeNonce 写入 UUID nonce 的 16 个字节
func (p *walletPayload) writeNonce(nonce string) error {
	id, err := uuid.Parse(nonce)
	if err != nil {
		return exerr.Newf(exerr.ErrInvalidNonce, idexName, "invalid nonce %q", nonce)
	}
	p.Write(id[:])
	return nil
}

// writeWallet 写入 20 字节钱包地址
func (p *walletPayload) writeWallet(wallet string) error {
	if !ethcommon.IsHexAddress(wallet) {
		return exerr.Newf(exerr.ErrInvalidAddress, idexName, "invalid wallet address %q", wallet)
	}
	p.Write(ethcommon.HexToAddress(wallet).Bytes())
	return nil
}

// Hash keccak256
func (p *walletPayload) Hash() []byte {
	return crypto.Keccak256(p.Bytes())
}

// sign 用钱包私钥签名，返回 0x 开头的 r‖s‖v，v 为 27 / 28
func (p *walletPayload) sign(privateKey string) (string, error) {
	return signWalletHash(p.Hash(), privateKey)
}

func signWalletHash(hash []byte, privateKey string) (string, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(privateKey, "0x"))
	if err != nil {
		return "", exerr.Newf(exerr.ErrAuthentication, idexName, "invalid private key: %v", err)
	}
	signature, err := crypto.Sign(accounts.TextHash(hash), key)
	if err != nil {
		return "", exerr.Newf(exerr.ErrAuthentication, idexName, "sign wallet payload: %v", err)
	}
	signature[crypto.RecoveryIDOffset] += 27
	return hexutil.Encode(signature), nil
}
