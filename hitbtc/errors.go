package hitbtc

import (
	"github.com/lemconn/exnorm/common"
	"github.com/lemconn/exnorm/exerr"
)

var classifier = exerr.NewClassifier(hitbtcName, map[string]*exerr.Kind{
	"429":   exerr.ErrRateLimitExceeded,
	"500":   exerr.ErrExchange,
	"503":   exerr.ErrExchangeNotAvailable,
	"504":   exerr.ErrExchangeNotAvailable,
	"600":   exerr.ErrPermissionDenied,
	"800":   exerr.ErrExchange,
	"1002":  exerr.ErrAuthentication,
	"1003":  exerr.ErrPermissionDenied,
	"1004":  exerr.ErrAuthentication,
	"1005":  exerr.ErrAuthentication,
	"2001":  exerr.ErrBadSymbol,
	"2002":  exerr.ErrBadRequest,
	"2003":  exerr.ErrBadRequest,
	"2010":  exerr.ErrBadRequest,
	"2011":  exerr.ErrBadRequest,
	"2012":  exerr.ErrBadRequest,
	"2020":  exerr.ErrBadRequest,
	"2022":  exerr.ErrBadRequest,
	"10001": exerr.ErrBadRequest,
	"10021": exerr.ErrAccountSuspended,
	"10022": exerr.ErrBadRequest,
	"20001": exerr.ErrInsufficientFunds,
	"20002": exerr.ErrOrderNotFound,
	"20003": exerr.ErrExchange,
	"20004": exerr.ErrExchange,
	"20005": exerr.ErrExchange,
	"20006": exerr.ErrExchange,
	"20007": exerr.ErrExchange,
	"20008": exerr.ErrInvalidOrder,
	"20009": exerr.ErrInvalidOrder,
	"20010": exerr.ErrOnMaintenance,
	"20011": exerr.ErrExchange,
	"20012": exerr.ErrExchange,
	"20014": exerr.ErrExchange,
	"20016": exerr.ErrExchange,
	"20031": exerr.ErrExchange,
	"20032": exerr.ErrExchange,
	"20033": exerr.ErrExchange,
	"20034": exerr.ErrExchange,
	"20040": exerr.ErrExchange,
	"20041": exerr.ErrExchange,
	"20042": exerr.ErrExchange,
	"20043": exerr.ErrExchange,
	"20044": exerr.ErrPermissionDenied,
	"20045": exerr.ErrExchange,
	"20080": exerr.ErrExchange,
	"21001": exerr.ErrExchange,
	"21003": exerr.ErrAccountSuspended,
	"21004": exerr.ErrAccountSuspended,
}, nil)

// handleErrors {"error":{"code":20001,"message":"Insufficient funds","description":"..."}}
func handleErrors(resp *common.Response, body interface{}) error {
	errObj, ok := common.SafeMap(body, "error")
	if !ok {
		return nil
	}
	code, ok := common.SafeString(errObj, "code")
	if !ok {
		return nil
	}
	message, _ := common.SafeString2(errObj, "message", "description")
	return classifier.Classify(code, message, hitbtcName+" "+string(resp.Body))
}
