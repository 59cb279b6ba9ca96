package common

import (
	"bytes"
	"fmt"

	"github.com/goccy/go-json"
)

// ParseJSON 将响应体解析为 interface{} 树，数字保留为 json.Number 以保持原始精度
func ParseJSON(data []byte) (interface{}, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return nil, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v interface{}
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return v, nil
}

// MarshalJSON 编码请求体
func MarshalJSON(v interface{}) (string, error) {
	b, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal request body: %w", err)
	}
	return string(b), nil
}
