package common

import (
	"errors"
	"testing"

	"github.com/lemconn/exnorm/exerr"
)

func TestPreciseOperations(t *testing.T) {
	tests := []struct {
		name string
		fn   func(a, b string) (string, error)
		a, b string
		want string
	}{
		{"mul", PreciseMul, "0.0817", "100", "8.17"},
		{"mul tick", PreciseMul, "0.001", "0.000001", "0.000000001"},
		{"div", PreciseDiv, "10", "4", "2.5"},
		{"add", PreciseAdd, "0.1", "0.2", "0.3"},
		{"sub", PreciseSub, "1", "0.9", "0.1"},
		{"min", PreciseMin, "0.5", "0.25", "0.25"},
		{"max", PreciseMax, "0.5", "0.25", "0.5"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.fn(tt.a, tt.b)
			if err != nil {
				t.Fatalf("%s(%s, %s): %v", tt.name, tt.a, tt.b, err)
			}
			if got != tt.want {
				t.Errorf("%s(%s, %s) = %s, want %s", tt.name, tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestPreciseErrors(t *testing.T) {
	if _, err := PreciseDiv("1", "0"); !errors.Is(err, exerr.ErrNumeric) {
		t.Errorf("division by zero should be NumericError, got %v", err)
	}
	if _, err := PreciseMul("abc", "1"); !errors.Is(err, exerr.ErrNumeric) {
		t.Errorf("malformed input should be NumericError, got %v", err)
	}
	var numErr *exerr.NumericError
	_, err := PreciseAdd("1", "")
	if !errors.As(err, &numErr) || numErr.Op != "add" {
		t.Errorf("expected NumericError for add, got %v", err)
	}
}

func TestPreciseRoundTrip(t *testing.T) {
	// 整数结果精确还原
	exact := [][2]string{{"10", "4"}, {"1540077456791", "1000"}, {"0.0063767", "0.0000001"}}
	for _, c := range exact {
		q, err := PreciseDiv(c[0], c[1])
		if err != nil {
			t.Fatalf("PreciseDiv: %v", err)
		}
		back, err := PreciseMul(q, c[1])
		if err != nil {
			t.Fatalf("PreciseMul: %v", err)
		}
		eq, err := PreciseEquals(back, c[0])
		if err != nil {
			t.Fatalf("PreciseEquals: %v", err)
		}
		if !eq {
			t.Errorf("mul(div(%s, %s), %s) = %s", c[0], c[1], c[1], back)
		}
	}

	// 无限小数在精度范围内近似还原
	q, _ := PreciseDiv("1", "3")
	back, _ := PreciseMul(q, "3")
	diff, _ := PreciseSub("1", back)
	if cmp, _ := PreciseCompare(diff, "0.000000000000000001"); cmp > 0 {
		t.Errorf("round trip error %s exceeds precision", diff)
	}
}

func TestPreciseEqualsAndCompare(t *testing.T) {
	if eq, _ := PreciseEquals("1.0", "1"); !eq {
		t.Errorf("1.0 should equal 1")
	}
	if eq, _ := PreciseEquals("0", "0.00"); !eq {
		t.Errorf("0 should equal 0.00")
	}
	if c, _ := PreciseCompare("2", "10"); c != -1 {
		t.Errorf("compare(2, 10) = %d", c)
	}
}
