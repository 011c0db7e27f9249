package upgrader

import (
	"context"
	"net"
	"time"

	"github.com/dep2p/go-upgrader/internal/core/multistream"
	"github.com/dep2p/go-upgrader/internal/util/logger"
	securityif "github.com/dep2p/go-upgrader/pkg/interfaces/security"
	"github.com/dep2p/go-upgrader/pkg/types"
)

var log = logger.Logger("upgrader")

// Upgrader 出站连接升级器
type Upgrader struct {
	security securityif.SecureTransport
	config   Config
}

// New 创建连接升级器
func New(security securityif.SecureTransport, cfg Config) (*Upgrader, error) {
	if security == nil {
		return nil, ErrNilTransport
	}

	if cfg.MuxerProtocol.IsEmpty() {
		cfg.MuxerProtocol = DefaultMuxerProtocol
	}
	if cfg.NegotiateTimeout <= 0 {
		cfg.NegotiateTimeout = defaultNegotiateTimeout
	}

	return &Upgrader{
		security: security,
		config:   cfg,
	}, nil
}

// Upgrade 升级出站连接
//
// 升级流程：
//  1. 明文连接上协商安全协议（multistream-select）
//  2. 安全握手，验证对端身份
//  3. 加密信道内协商多路复用器
//
// 任一阶段失败都会关闭连接并返回携带阶段标记的错误。
// 成功后连接的生命周期移交给返回的 Conn。
func (u *Upgrader) Upgrade(ctx context.Context, conn net.Conn) (*Conn, error) {
	if conn == nil {
		return nil, ErrNilConn
	}

	// 1. 协商安全协议
	log.Debug("协商安全协议", "protocol", u.security.Protocol())
	securityProto, err := u.negotiate(ctx, conn, u.security.Protocol())
	if err != nil {
		conn.Close()
		return nil, stageErr(StageNegotiateSecurity, err)
	}

	// 2. 安全握手
	log.Debug("执行安全握手", "protocol", securityProto)
	sconn, err := u.security.SecureOutbound(ctx, conn)
	if err != nil {
		conn.Close()
		return nil, stageErr(StageHandshake, err)
	}
	log.Debug("安全握手成功", "remoteID", sconn.RemoteIdentity().ShortString())

	// 3. 加密信道内协商多路复用器
	log.Debug("协商多路复用器", "protocol", u.config.MuxerProtocol)
	muxerProto, err := u.negotiate(ctx, sconn, u.config.MuxerProtocol)
	if err != nil {
		sconn.Close()
		return nil, stageErr(StageNegotiateMuxer, err)
	}

	log.Info("连接升级成功",
		"remoteID", sconn.RemoteIdentity().ShortString(),
		"security", securityProto,
		"muxer", muxerProto)

	return newConn(sconn, securityProto, muxerProto), nil
}

// negotiate 在超时保护下运行一次协商
//
// 协商引擎本身不感知超时，用连接截止时间兜底；
// 上下文截止时间更早时以其为准。
func (u *Upgrader) negotiate(ctx context.Context, conn net.Conn, proto types.ProtocolID) (types.ProtocolID, error) {
	deadline := time.Now().Add(u.config.NegotiateTimeout)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}
	if err := conn.SetDeadline(deadline); err != nil {
		return "", err
	}
	defer conn.SetDeadline(time.Time{})

	return multistream.SelectProtocol(conn, proto)
}
