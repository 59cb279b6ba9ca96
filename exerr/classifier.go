package exerr

import (
	"sort"
	"strings"
)

// Classifier 将交易所错误码 / 错误信息映射到统一错误类别
type Classifier struct {
	// Exchange 交易所名称
	Exchange string
	// Exact 精确匹配表（错误码或完整错误信息）
	Exact map[string]*Kind
	// Broad 模糊匹配表（错误信息包含的子串）
	Broad map[string]*Kind

	broadKeys []string
}

// NewClassifier 创建错误分类器
func NewClassifier(exchange string, exact, broad map[string]*Kind) *Classifier {
	c := &Classifier{
		Exchange: exchange,
		Exact:    exact,
		Broad:    broad,
	}
	c.broadKeys = make([]string, 0, len(broad))
	for k := range broad {
		c.broadKeys = append(c.broadKeys, k)
	}
	// 长串优先，保证匹配结果稳定
	sort.Slice(c.broadKeys, func(i, j int) bool {
		if len(c.broadKeys[i]) != len(c.broadKeys[j]) {
			return len(c.broadKeys[i]) > len(c.broadKeys[j])
		}
		return c.broadKeys[i] < c.broadKeys[j]
	})
	return c
}

// Match 查找错误类别：错误码精确匹配 > 错误信息精确匹配 > 错误信息模糊匹配
func (c *Classifier) Match(code, message string) (*Kind, bool) {
	if code != "" {
		if k, ok := c.Exact[code]; ok {
			return k, true
		}
	}
	if message != "" {
		if k, ok := c.Exact[message]; ok {
			return k, true
		}
		for _, key := range c.broadKeys {
			if strings.Contains(message, key) {
				return c.Broad[key], true
			}
		}
	}
	return nil, false
}

// Classify 生成分类错误，未匹配时返回 ErrExchange
func (c *Classifier) Classify(code, message, feedback string) *Error {
	kind, ok := c.Match(code, message)
	if !ok {
		kind = ErrExchange
	}
	if feedback == "" {
		feedback = message
	}
	return &Error{
		Kind:     kind,
		Exchange: c.Exchange,
		Code:     code,
		Message:  feedback,
	}
}
