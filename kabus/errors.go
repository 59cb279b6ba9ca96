package kabus

import (
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
)

var classifier = exerr.NewClassifier(kabusName, map[string]*exerr.Kind{
	"4001005": exerr.ErrBadRequest,
	"4001007": exerr.ErrAuthentication,
	"4001009": exerr.ErrAuthentication,
	"4002001": exerr.ErrBadSymbol,
}, nil)

// handleErrors {"Code":4001009,"Message":"APIパスワード不一致"}
func handleErrors(resp *common.Response, body interface{}) error {
	if body == nil || resp.StatusCode < 400 {
		return nil
	}
	code, ok := common.SafeString(body, "Code")
	if !ok {
		return nil
	}
	message, _ := common.SafeString(body, "Message")
	return classifier.Classify(code, "", kabusName+" "+message)
}
