package option

import (
	"testing"
	"time"
)

func TestSinceMillis(t *testing.T) {
	if got := ApplyArgs().SinceMillis(); got != 0 {
		t.Errorf("未设置 since 应返回 0，实际 %d", got)
	}
	if got := ApplyArgs(WithSince(time.Time{})).SinceMillis(); got != 0 {
		t.Errorf("零值 since 应返回 0，实际 %d", got)
	}
	since := time.UnixMilli(1700000000123)
	if got := ApplyArgs(WithSince(since)).SinceMillis(); got != 1700000000123 {
		t.Errorf("since = %d", got)
	}
}

func TestLimitOr(t *testing.T) {
	if got := ApplyArgs().LimitOr(50); got != 50 {
		t.Errorf("默认 limit = %d", got)
	}
	if got := ApplyArgs(WithLimit(5)).LimitOr(50); got != 5 {
		t.Errorf("limit = %d", got)
	}
}

func TestPopParam(t *testing.T) {
	opts := ApplyArgs(WithParam("stopPrice", "10"), WithParam("type", "x"))
	v, ok := opts.PopParam("stopPrice")
	if !ok || v != "10" {
		t.Fatalf("PopParam = %v, %v", v, ok)
	}
	if _, ok := opts.PopParam("stopPrice"); ok {
		t.Error("参数取出后应被移除")
	}
	merged := opts.MergeParams(map[string]interface{}{"type": "limit"})
	if merged["type"] != "x" {
		t.Errorf("透传参数应覆盖请求参数，实际 %v", merged["type"])
	}
}
