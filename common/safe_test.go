package common

import (
	"testing"
)

func mustParse(t *testing.T, s string) interface{} {
	t.Helper()
	v, err := ParseJSON([]byte(s))
	if err != nil {
		t.Fatalf("ParseJSON(%s): %v", s, err)
	}
	return v
}

func TestSafeString(t *testing.T) {
	raw := mustParse(t, `{"a":"0.073","b":0.0000001,"c":479842,"d":null,"e":"","f":true,"g":{"x":1},"h":[1,2]}`)

	tests := []struct {
		key    string
		want   string
		wantOK bool
	}{
		{"a", "0.073", true},
		// 数字保留原始文本，不做浮点转换
		{"b", "0.0000001", true},
		{"c", "479842", true},
		{"d", "", false},
		{"e", "", false},
		{"f", "true", true},
		{"g", "", false},
		{"h", "", false},
		{"missing", "", false},
	}

	for _, tt := range tests {
		got, ok := SafeString(raw, tt.key)
		if got != tt.want || ok != tt.wantOK {
			t.Errorf("SafeString(%q) = %q, %v; want %q, %v", tt.key, got, ok, tt.want, tt.wantOK)
		}
	}

	if got, ok := SafeString(nil, "a"); ok || got != "" {
		t.Errorf("SafeString(nil) should be absent")
	}
	if got, ok := SafeString("not a container", "a"); ok || got != "" {
		t.Errorf("SafeString(string) should be absent")
	}
}

func TestSafeStringAliasesAndIndex(t *testing.T) {
	raw := mustParse(t, `{"qty":"0.5","last_price":["0.073","BTC"],"tuple":["1540077456791","0.0063767","0.03","sell",479842]}`)

	if got, ok := SafeString2(raw, "quantity", "qty"); !ok || got != "0.5" {
		t.Errorf("SafeString2 = %q, %v", got, ok)
	}
	if _, ok := SafeStringN(raw, "x", "y", "z"); ok {
		t.Errorf("SafeStringN with no matching key should be absent")
	}
	if got, ok := SafeStringIndex(raw, "last_price", 0); !ok || got != "0.073" {
		t.Errorf("SafeStringIndex = %q, %v", got, ok)
	}
	if got, ok := SafeStringIndex(raw, "last_price", 1); !ok || got != "BTC" {
		t.Errorf("SafeStringIndex[1] = %q, %v", got, ok)
	}
	if _, ok := SafeStringIndex(raw, "last_price", 5); ok {
		t.Errorf("out of range index should be absent")
	}

	tuple, _ := SafeList(raw, "tuple")
	if got, ok := SafeString(tuple, 4); !ok || got != "479842" {
		t.Errorf("SafeString(tuple, 4) = %q, %v", got, ok)
	}
	if got, ok := SafeInteger(tuple, 0); !ok || got != 1540077456791 {
		t.Errorf("SafeInteger(tuple, 0) = %d, %v", got, ok)
	}
	if got, ok := SafeStringUpper(tuple, 3); !ok || got != "SELL" {
		t.Errorf("SafeStringUpper = %q, %v", got, ok)
	}
}

func TestSafeIntegerAndTimestamp(t *testing.T) {
	raw := mustParse(t, `{"a":"12","b":12.9,"c":"abc","d":1643381654,"e":"1.5"}`)

	if n, ok := SafeInteger(raw, "a"); !ok || n != 12 {
		t.Errorf("SafeInteger(a) = %d, %v", n, ok)
	}
	if n, ok := SafeInteger(raw, "b"); !ok || n != 12 {
		t.Errorf("SafeInteger(b) = %d, %v", n, ok)
	}
	if _, ok := SafeInteger(raw, "c"); ok {
		t.Errorf("SafeInteger(c) should be absent")
	}
	if n, ok := SafeTimestamp(raw, "d"); !ok || n != 1643381654000 {
		t.Errorf("SafeTimestamp(d) = %d, %v", n, ok)
	}
	if n, ok := SafeTimestamp(raw, "e"); !ok || n != 1500 {
		t.Errorf("SafeTimestamp(e) = %d, %v", n, ok)
	}
}

func TestSafeIntegerOutOfRange(t *testing.T) {
	raw := mustParse(t, `{"big":"92233720368547758070","neg":-92233720368547758070.5,"max":"9223372036854775807.9","ts":9223372036854775}`)

	if n, ok := SafeInteger(raw, "big"); ok {
		t.Errorf("SafeInteger(big) = %d, want absent", n)
	}
	if n, ok := SafeInteger(raw, "neg"); ok {
		t.Errorf("SafeInteger(neg) = %d, want absent", n)
	}
	if n, ok := SafeInteger(raw, "max"); !ok || n != 9223372036854775807 {
		t.Errorf("SafeInteger(max) = %d, %v", n, ok)
	}
	if n, ok := SafeTimestamp(raw, "ts"); ok {
		t.Errorf("SafeTimestamp(ts) = %d, want absent", n)
	}
}

func TestSafeBoolMapList(t *testing.T) {
	raw := mustParse(t, `{"a":true,"b":"false","c":1,"m":{"k":"v"},"l":[1]}`)

	if b, ok := SafeBool(raw, "a"); !ok || !b {
		t.Errorf("SafeBool(a) = %v, %v", b, ok)
	}
	if b, ok := SafeBool(raw, "b"); !ok || b {
		t.Errorf("SafeBool(b) = %v, %v", b, ok)
	}
	if _, ok := SafeBool(raw, "c"); ok {
		t.Errorf("SafeBool(c) should be absent")
	}
	if SafeBoolOr(raw, "missing", true) != true {
		t.Errorf("SafeBoolOr default not used")
	}
	if _, ok := SafeMap(raw, "l"); ok {
		t.Errorf("SafeMap on list should be absent")
	}
	if l, ok := SafeList(raw, "l"); !ok || len(l) != 1 {
		t.Errorf("SafeList = %v, %v", l, ok)
	}
}

func TestSafeDecimal(t *testing.T) {
	raw := mustParse(t, `{"a":"0.0755","b":"NaN","c":null,"p":["0.0771","BTC"]}`)

	if d := SafeDecimal(raw, "a"); !d.Valid || d.String() != "0.0755" {
		t.Errorf("SafeDecimal(a) = %+v", d)
	}
	if d := SafeDecimal(raw, "b"); d.Valid {
		t.Errorf("SafeDecimal(b) should be invalid")
	}
	if d := SafeDecimal(raw, "c"); d.Valid || d.String() != "" {
		t.Errorf("SafeDecimal(c) should be invalid")
	}
	if d := SafeDecimalIndex(raw, "p", 0); d.String() != "0.0771" {
		t.Errorf("SafeDecimalIndex = %q", d.String())
	}
	if d := SafeDecimal2(raw, "x", "a"); d.String() != "0.0755" {
		t.Errorf("SafeDecimal2 = %q", d.String())
	}
}
