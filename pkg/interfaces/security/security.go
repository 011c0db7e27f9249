// Package security 定义安全层接口
//
// 安全模块负责将已协商安全协议的普通连接升级为加密连接，
// 并在握手中完成对端身份验证。本模块只实现发起方
//（出站握手）；响应方语义不在范围内。
package security

import (
	"context"
	"net"

	"github.com/dep2p/go-upgrader/pkg/lib/crypto"
	"github.com/dep2p/go-upgrader/pkg/types"
)

// ============================================================================
//                              SecureTransport 接口
// ============================================================================

// SecureTransport 安全传输接口
//
// 将普通连接升级为加密连接。
type SecureTransport interface {
	// SecureOutbound 对出站连接进行安全握手
	//
	// 发起方角色。握手成功后返回的连接携带经过
	// 身份扩展验证的对端公钥；任何验证失败都会
	// 中止握手，绝不降级为未认证通道。
	SecureOutbound(ctx context.Context, conn net.Conn) (SecureConn, error)

	// Protocol 返回安全协议标识符，如 "/tls/1.0.0"
	Protocol() types.ProtocolID
}

// ============================================================================
//                              SecureConn 接口
// ============================================================================

// SecureConn 安全连接接口
//
// 经过安全握手后的加密连接，提供双方身份信息。
type SecureConn interface {
	net.Conn

	// LocalIdentity 返回本地节点 ID
	LocalIdentity() types.NodeID

	// LocalPublicKey 返回本地长期公钥
	LocalPublicKey() crypto.PublicKey

	// RemoteIdentity 返回远程节点 ID（由验证过的公钥派生）
	RemoteIdentity() types.NodeID

	// RemotePublicKey 返回远程长期公钥（已通过身份扩展验证）
	RemotePublicKey() crypto.PublicKey
}
