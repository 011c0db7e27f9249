package tls

import (
	"context"
	"crypto/tls"
	"fmt"
	"net"
	"time"

	"github.com/dep2p/go-upgrader/internal/core/identity"
	"github.com/dep2p/go-upgrader/internal/util/logger"
	securityif "github.com/dep2p/go-upgrader/pkg/interfaces/security"
	"github.com/dep2p/go-upgrader/pkg/types"
)

var log = logger.Logger("security.tls")

// Protocol TLS 安全协议标识符
const Protocol types.ProtocolID = "/tls/1.0.0"

// defaultHandshakeTimeout 默认握手超时
const defaultHandshakeTimeout = 10 * time.Second

// Config 传输配置
type Config struct {
	// HandshakeTimeout 握手超时（上下文无截止时间时生效）
	HandshakeTimeout time.Duration

	// NextProtos ALPN 协议列表（默认 ["libp2p"]）
	NextProtos []string
}

// DefaultConfig 返回默认配置
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: defaultHandshakeTimeout,
	}
}

// Transport TLS 安全传输（发起方）
//
// 将已协商安全协议的普通连接升级为 TLS 加密连接，
// 并通过身份扩展验证对端长期身份。
type Transport struct {
	identity *identity.Identity
	builder  *ConfigBuilder
	config   Config
}

// 确保实现 securityif.SecureTransport 接口
var _ securityif.SecureTransport = (*Transport)(nil)

// NewTransport 创建 TLS 传输
func NewTransport(ident *identity.Identity, cfg Config) (*Transport, error) {
	if ident == nil {
		return nil, ErrNilIdentity
	}

	builder := NewConfigBuilder(ident)
	if len(cfg.NextProtos) > 0 {
		builder.WithNextProtos(cfg.NextProtos)
	}
	if cfg.HandshakeTimeout <= 0 {
		cfg.HandshakeTimeout = defaultHandshakeTimeout
	}

	return &Transport{
		identity: ident,
		builder:  builder,
		config:   cfg,
	}, nil
}

// SecureOutbound 对出站连接进行安全握手
//
// 发起方角色。每次调用生成新的会话密钥和证书；
// 握手成功后返回的连接携带经过验证的对端身份。
func (t *Transport) SecureOutbound(ctx context.Context, conn net.Conn) (securityif.SecureConn, error) {
	clientConfig, peerInfo, err := t.builder.BuildClientConfig()
	if err != nil {
		return nil, fmt.Errorf("build client TLS config: %w", err)
	}

	log.Debug("开始出站 TLS 握手",
		"localID", t.identity.ID().ShortString())

	tlsConn := tls.Client(conn, clientConfig)

	// 设置握手超时
	deadline := time.Now().Add(t.config.HandshakeTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	_ = tlsConn.SetDeadline(deadline)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		_ = tlsConn.Close()
		return nil, fmt.Errorf("TLS handshake: %w", err)
	}

	// 清除超时设置
	_ = tlsConn.SetDeadline(time.Time{})

	// 校验 ALPN 结果
	state := tlsConn.ConnectionState()
	if state.NegotiatedProtocol != alpnProtocol {
		_ = tlsConn.Close()
		return nil, fmt.Errorf("%w: %q", ErrALPNMismatch, state.NegotiatedProtocol)
	}

	// VerifyPeerCertificate 回调已在握手中运行；
	// 公钥缺失意味着回调被跳过，按协议违规处理
	if peerInfo.PublicKey == nil {
		_ = tlsConn.Close()
		return nil, ErrNoCertificate
	}

	remoteID, err := identity.DeriveNodeID(peerInfo.PublicKey)
	if err != nil {
		_ = tlsConn.Close()
		return nil, fmt.Errorf("derive remote node ID: %w", err)
	}

	log.Debug("出站 TLS 握手成功",
		"remoteID", remoteID.ShortString())

	return newSecureConn(
		tlsConn,
		t.identity.ID(),
		remoteID,
		t.identity.PublicKey(),
		peerInfo.PublicKey,
	), nil
}

// Protocol 返回安全协议标识符
func (t *Transport) Protocol() types.ProtocolID {
	return Protocol
}
