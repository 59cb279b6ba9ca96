package common

import (
	"strings"

	"github.com/shopspring/decimal"

	"github.com/lemconn/exnorm/exerr"
)

// PreciseDivisionDigits 除法保留的小数位数
const PreciseDivisionDigits = 18

func parsePrecise(op string, operands ...string) ([]decimal.Decimal, error) {
	out := make([]decimal.Decimal, len(operands))
	for i, s := range operands {
		d, err := decimal.NewFromString(strings.TrimSpace(s))
		if err != nil {
			return nil, &exerr.NumericError{Op: op, Operands: operands, Reason: "malformed number " + quote(s)}
		}
		out[i] = d
	}
	return out, nil
}

func quote(s string) string {
	return `"` + s + `"`
}

// PreciseMul 字符串乘法
func PreciseMul(a, b string) (string, error) {
	d, err := parsePrecise("mul", a, b)
	if err != nil {
		return "", err
	}
	return d[0].Mul(d[1]).String(), nil
}

// PreciseDiv 字符串除法，保留 PreciseDivisionDigits 位小数
func PreciseDiv(a, b string) (string, error) {
	d, err := parsePrecise("div", a, b)
	if err != nil {
		return "", err
	}
	if d[1].IsZero() {
		return "", &exerr.NumericError{Op: "div", Operands: []string{a, b}, Reason: "division by zero"}
	}
	return d[0].DivRound(d[1], PreciseDivisionDigits).String(), nil
}

// PreciseAdd 字符串加法
func PreciseAdd(a, b string) (string, error) {
	d, err := parsePrecise("add", a, b)
	if err != nil {
		return "", err
	}
	return d[0].Add(d[1]).String(), nil
}

// PreciseSub 字符串减法
func PreciseSub(a, b string) (string, error) {
	d, err := parsePrecise("sub", a, b)
	if err != nil {
		return "", err
	}
	return d[0].Sub(d[1]).String(), nil
}

// PreciseMin 返回较小值
func PreciseMin(a, b string) (string, error) {
	d, err := parsePrecise("min", a, b)
	if err != nil {
		return "", err
	}
	if d[0].LessThanOrEqual(d[1]) {
		return d[0].String(), nil
	}
	return d[1].String(), nil
}

// PreciseMax 返回较大值
func PreciseMax(a, b string) (string, error) {
	d, err := parsePrecise("max", a, b)
	if err != nil {
		return "", err
	}
	if d[0].GreaterThanOrEqual(d[1]) {
		return d[0].String(), nil
	}
	return d[1].String(), nil
}

// PreciseEquals 数值相等比较（"1.0" 与 "1" 相等）
func PreciseEquals(a, b string) (bool, error) {
	d, err := parsePrecise("eq", a, b)
	if err != nil {
		return false, err
	}
	return d[0].Equal(d[1]), nil
}

// PreciseCompare 比较大小：a<b 返回 -1，相等返回 0，a>b 返回 1
func PreciseCompare(a, b string) (int, error) {
	d, err := parsePrecise("cmp", a, b)
	if err != nil {
		return 0, err
	}
	return d[0].Cmp(d[1]), nil
}
