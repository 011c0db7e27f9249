package upgrader

import (
	securityif "github.com/dep2p/go-upgrader/pkg/interfaces/security"
	"github.com/dep2p/go-upgrader/pkg/types"
)

// Conn 升级后的连接
//
// 嵌入安全连接，额外记录两个协商结果。后续的流
// 多路复用由调用方按 Muxer() 自行建立。
type Conn struct {
	securityif.SecureConn

	securityProto types.ProtocolID
	muxerProto    types.ProtocolID
}

// newConn 创建升级后的连接
func newConn(sconn securityif.SecureConn, security, muxer types.ProtocolID) *Conn {
	return &Conn{
		SecureConn:    sconn,
		securityProto: security,
		muxerProto:    muxer,
	}
}

// Security 返回协商的安全协议
func (c *Conn) Security() types.ProtocolID {
	return c.securityProto
}

// Muxer 返回协商的多路复用协议
func (c *Conn) Muxer() types.ProtocolID {
	return c.muxerProto
}
