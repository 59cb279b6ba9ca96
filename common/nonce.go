package common

import (
	"sync"
	"time"
)

// Nonce 进程内严格递增的 nonce 生成器
type Nonce struct {
	mu   sync.Mutex
	last int64
	now  func() int64
}

// MillisecondNonce 进程共享的毫秒级 nonce，同一 API Key 被多个实例使用时也不会重复
var MillisecondNonce = NewMillisecondNonce()

// MicrosecondNonce 进程共享的微秒级 nonce
var MicrosecondNonce = NewMicrosecondNonce()

// NewMillisecondNonce 毫秒级 nonce
func NewMillisecondNonce() *Nonce {
	return &Nonce{now: func() int64 { return time.Now().UnixMilli() }}
}

// NewMicrosecondNonce 微秒级 nonce
func NewMicrosecondNonce() *Nonce {
	return &Nonce{now: func() int64 { return time.Now().UnixMicro() }}
}

// Next 返回 max(当前时间, 上一次+1)
func (n *Nonce) Next() int64 {
	n.mu.Lock()
	defer n.mu.Unlock()

	v := n.now()
	if v <= n.last {
		v = n.last + 1
	}
	n.last = v
	return v
}
