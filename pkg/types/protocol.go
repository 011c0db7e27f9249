package types

import "strings"

// ProtocolID 协议标识符
//
// 形如 "/tls/1.0.0"、"/yamux/1.0.0" 的子协议名，
// 由 multistream-select 协商确定。
type ProtocolID string

// String 返回协议 ID 的字符串表示
func (p ProtocolID) String() string {
	return string(p)
}

// IsEmpty 检查协议 ID 是否为空
func (p ProtocolID) IsEmpty() bool {
	return p == ""
}

// Version 返回协议版本
func (p ProtocolID) Version() string {
	parts := strings.Split(string(p), "/")
	if len(parts) > 0 {
		return parts[len(parts)-1]
	}
	return ""
}

// Name 返回协议名称（不含版本）
func (p ProtocolID) Name() string {
	s := string(p)
	lastSlash := strings.LastIndex(s, "/")
	if lastSlash > 0 {
		return s[:lastSlash]
	}
	return s
}
