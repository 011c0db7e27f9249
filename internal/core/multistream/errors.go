package multistream

import "errors"

var (
	// ErrHeaderMismatch 对端协议头不匹配
	ErrHeaderMismatch = errors.New("multistream: protocol header mismatch")

	// ErrNotAvailable 对端不支持提议的协议
	//
	// 这是协商的正常结局之一，调用方可换协议重试或放弃。
	ErrNotAvailable = errors.New("multistream: protocol not available")

	// ErrUnexpectedResponse 对端返回了既非回显也非 na 的响应
	ErrUnexpectedResponse = errors.New("multistream: unexpected negotiation response")

	// ErrMalformedFrame 帧格式非法
	ErrMalformedFrame = errors.New("multistream: malformed frame")
)
