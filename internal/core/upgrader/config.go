package upgrader

import (
	"time"

	"github.com/dep2p/go-upgrader/pkg/types"
)

// DefaultMuxerProtocol 默认提议的多路复用协议
const DefaultMuxerProtocol types.ProtocolID = "/yamux/1.0.0"

// defaultNegotiateTimeout 默认协商超时
const defaultNegotiateTimeout = 60 * time.Second

// Config 升级器配置
type Config struct {
	// MuxerProtocol 握手后提议的多路复用协议（默认 /yamux/1.0.0）
	MuxerProtocol types.ProtocolID

	// NegotiateTimeout 单个协商阶段的超时（默认 60s）
	NegotiateTimeout time.Duration
}

// NewConfig 创建默认配置
func NewConfig() Config {
	return Config{
		MuxerProtocol:    DefaultMuxerProtocol,
		NegotiateTimeout: defaultNegotiateTimeout,
	}
}
