package btcbox

import (
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
)

var classifier = exerr.NewClassifier(btcboxName, map[string]*exerr.Kind{
	"104": exerr.ErrAuthentication,
	"105": exerr.ErrPermissionDenied,
	"106": exerr.ErrInvalidNonce,
	"107": exerr.ErrInvalidOrder, // price should be an integer
	"200": exerr.ErrInsufficientFunds,
	"201": exerr.ErrInvalidOrder, // amount too small
	"202": exerr.ErrInvalidOrder,
	"203": exerr.ErrOrderNotFound,
	"401": exerr.ErrOrderNotFound, // 撤销已完成或不存在的订单
	"402": exerr.ErrDDoSProtection,
}, nil)

// handleErrors {"result":false,"code":"401"}，HTTP 错误交给默认状态映射
func handleErrors(resp *common.Response, body interface{}) error {
	if body == nil || resp.StatusCode >= 400 {
		return nil
	}
	result, ok := common.SafeBool(body, "result")
	if !ok || result {
		return nil
	}
	code, _ := common.SafeString(body, "code")
	return classifier.Classify(code, "", btcboxName+" "+string(resp.Body))
}
