package idex

import (
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
)

var classifier = exerr.NewClassifier(idexName, map[string]*exerr.Kind{
	"INVALID_ORDER_QUANTITY":   exerr.ErrInvalidOrder,
	"INSUFFICIENT_FUNDS":       exerr.ErrInsufficientFunds,
	"SERVICE_UNAVAILABLE":      exerr.ErrExchangeNotAvailable,
	"EXCEEDED_RATE_LIMIT":      exerr.ErrDDoSProtection,
	"INVALID_PARAMETER":        exerr.ErrBadRequest,
	"WALLET_NOT_ASSOCIATED":    exerr.ErrInvalidAddress,
	"INVALID_WALLET_SIGNATURE": exerr.ErrAuthentication,
}, nil)

// handleErrors {"code":"INVALID_PARAMETER","message":"invalid value provided for request parameter \"price\""}
func handleErrors(resp *common.Response, body interface{}) error {
	code, ok := common.SafeString(body, "code")
	if !ok {
		return nil
	}
	message, _ := common.SafeString(body, "message")
	return classifier.Classify(code, "", idexName+" "+message)
}
