package buda

import (
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
)

var classifier = exerr.NewClassifier(budaName, map[string]*exerr.Kind{
	"not_authorized":    exerr.ErrAuthentication,
	"forbidden":         exerr.ErrPermissionDenied,
	"invalid_record":    exerr.ErrExchange,
	"not_found":         exerr.ErrExchange,
	"parameter_missing": exerr.ErrExchange,
	"bad_parameter":     exerr.ErrExchange,
}, nil)

// handleErrors {"code":"not_authorized","message":"Invalid credentials"}，仅在状态码 >= 400 时识别
func handleErrors(resp *common.Response, body interface{}) error {
	if body == nil || resp.StatusCode < 400 {
		return nil
	}
	code, ok := common.SafeString(body, "code")
	if !ok {
		return nil
	}
	message := common.SafeStringOr(body, "message", string(resp.Body))
	return classifier.Classify(code, "", budaName+" "+message)
}
