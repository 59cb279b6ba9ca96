package common

import (
	"strings"
	"testing"
)

func TestMaskHeaders(t *testing.T) {
	masked := MaskHeaders(map[string]string{
		"X-SBTC-APIKEY":  "abcdef123456",
		"Api-Signature":  "0123456789",
		"Content-Type":   "application/json",
		"X-API-KEY":      "tok",
		"Authorization":  "HS256 c2VjcmV0",
		"IDEX-HMAC-Sign": "ffffffffff",
	})
	if masked["X-SBTC-APIKEY"] != "abc***456" {
		t.Errorf("X-SBTC-APIKEY = %s", masked["X-SBTC-APIKEY"])
	}
	if masked["X-API-KEY"] != "***" {
		t.Errorf("X-API-KEY = %s", masked["X-API-KEY"])
	}
	if masked["Content-Type"] != "application/json" {
		t.Errorf("Content-Type = %s", masked["Content-Type"])
	}
	for _, k := range []string{"Api-Signature", "Authorization", "IDEX-HMAC-Sign"} {
		if !strings.Contains(masked[k], "***") {
			t.Errorf("%s = %s", k, masked[k])
		}
	}
}

func TestMaskBody(t *testing.T) {
	if got := MaskBody(`{"APIPassword":"supersecret"}`); strings.Contains(got, "supersecret") {
		t.Errorf("json body = %s", got)
	}
	form := MaskBody("key=abcdefgh&nonce=1&amount=0.1&signature=0123456789")
	if strings.Contains(form, "abcdefgh") || strings.Contains(form, "0123456789") {
		t.Errorf("form body = %s", form)
	}
	if !strings.Contains(form, "nonce=1&amount=0.1") {
		t.Errorf("form body = %s", form)
	}
	plain := `{"market":"ETH-BTC"}`
	if got := MaskBody(plain); got != plain {
		t.Errorf("plain body = %s", got)
	}
}
