package base

// StatusMap 交易所原始状态 -> 统一状态
type StatusMap map[string]string

// Parse 映射状态，未知状态原样返回，空值返回 ("", false)
func (m StatusMap) Parse(raw string) (string, bool) {
	if raw == "" {
		return "", false
	}
	if v, ok := m[raw]; ok {
		return v, true
	}
	return raw, true
}
