package tls

import (
	"crypto/tls"

	securityif "github.com/dep2p/go-upgrader/pkg/interfaces/security"
	"github.com/dep2p/go-upgrader/pkg/lib/crypto"
	"github.com/dep2p/go-upgrader/pkg/types"
)

// 确保实现了接口
var _ securityif.SecureConn = (*secureConn)(nil)

// secureConn 安全连接实现
type secureConn struct {
	*tls.Conn // 嵌入 TLS 连接

	localID   types.NodeID
	remoteID  types.NodeID
	localPub  crypto.PublicKey
	remotePub crypto.PublicKey
}

// newSecureConn 创建安全连接
func newSecureConn(
	tlsConn *tls.Conn,
	localID, remoteID types.NodeID,
	localPub, remotePub crypto.PublicKey,
) *secureConn {
	return &secureConn{
		Conn:      tlsConn,
		localID:   localID,
		remoteID:  remoteID,
		localPub:  localPub,
		remotePub: remotePub,
	}
}

// LocalIdentity 返回本地节点 ID
func (c *secureConn) LocalIdentity() types.NodeID {
	return c.localID
}

// RemoteIdentity 返回远程节点 ID
func (c *secureConn) RemoteIdentity() types.NodeID {
	return c.remoteID
}

// LocalPublicKey 返回本地长期公钥
func (c *secureConn) LocalPublicKey() crypto.PublicKey {
	return c.localPub
}

// RemotePublicKey 返回远程长期公钥
func (c *secureConn) RemotePublicKey() crypto.PublicKey {
	return c.remotePub
}
