package paymium

import (
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
)

// handleErrors {"errors":{"amount":["is too small"]}}，不区分错误码
func handleErrors(resp *common.Response, body interface{}) error {
	if body == nil {
		return nil
	}
	if _, ok := common.SafeValue(body, "errors"); !ok {
		return nil
	}
	return exerr.New(exerr.ErrExchange, paymiumName, string(resp.Body))
}
