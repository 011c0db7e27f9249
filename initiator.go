package upgrader

import (
	"context"
	"net"
	"sync"
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-upgrader/internal/core/identity"
	coreupgrader "github.com/dep2p/go-upgrader/internal/core/upgrader"
	"github.com/dep2p/go-upgrader/internal/util/logger"
	"github.com/dep2p/go-upgrader/pkg/lib/crypto"
	"github.com/dep2p/go-upgrader/pkg/types"
)

var log = logger.Logger("go-upgrader")

// 启动/停止超时
const (
	startTimeout = 15 * time.Second
	stopTimeout  = 15 * time.Second
)

// Initiator 连接升级发起方
//
// 聚合长期身份和升级器，是使用本模块的主入口。
// 并发安全；同一个 Initiator 可用于任意多条连接。
type Initiator struct {
	app      *fx.App
	ident    *identity.Identity
	upgrader *coreupgrader.Upgrader

	mu     sync.Mutex
	closed bool
}

// New 创建连接升级发起方
//
// 未提供私钥时按 WithKeyType（默认 Ed25519）生成新身份。
func New(opts ...Option) (*Initiator, error) {
	o := defaultOptions()
	for _, opt := range opts {
		if err := opt(o); err != nil {
			return nil, err
		}
	}

	ini := &Initiator{}
	ini.app = buildFxApp(o, &ini.ident, &ini.upgrader)
	if err := ini.app.Err(); err != nil {
		return nil, err
	}

	startCtx, cancel := context.WithTimeout(context.Background(), startTimeout)
	defer cancel()
	if err := ini.app.Start(startCtx); err != nil {
		// 启动失败时回收已启动的钩子，不能把应用悬在半启动状态
		stopCtx, stopCancel := context.WithTimeout(context.Background(), stopTimeout)
		defer stopCancel()
		if stopErr := ini.app.Stop(stopCtx); stopErr != nil {
			log.Warn("启动失败后停止应用出错", "err", stopErr)
		}
		return nil, err
	}

	log.Debug("发起方已就绪", "localID", ini.ident.ID().ShortString())
	return ini, nil
}

// ID 返回本地节点 ID
func (i *Initiator) ID() types.NodeID {
	return i.ident.ID()
}

// PublicKey 返回本地长期公钥
func (i *Initiator) PublicKey() crypto.PublicKey {
	return i.ident.PublicKey()
}

// Dial 建立 TCP 连接并升级
//
// 连接失败返回 connect 阶段错误，升级失败返回对应
// 阶段的错误；两者都可用 errors.As 取出 StageError。
func (i *Initiator) Dial(ctx context.Context, addr string) (*coreupgrader.Conn, error) {
	if err := i.checkOpen(); err != nil {
		return nil, err
	}

	var d net.Dialer
	conn, err := d.DialContext(ctx, "tcp", addr)
	if err != nil {
		return nil, &coreupgrader.StageError{Stage: coreupgrader.StageConnect, Err: err}
	}

	return i.upgrader.Upgrade(ctx, conn)
}

// Upgrade 升级一条已建立的连接
//
// 与传输方式无关的入口：调用方自备连接（TCP、Unix
// socket、测试管道），升级流程相同。
func (i *Initiator) Upgrade(ctx context.Context, conn net.Conn) (*coreupgrader.Conn, error) {
	if err := i.checkOpen(); err != nil {
		return nil, err
	}
	return i.upgrader.Upgrade(ctx, conn)
}

// Close 关闭发起方
//
// 已升级的连接不受影响，生命周期归调用方。
func (i *Initiator) Close() error {
	i.mu.Lock()
	if i.closed {
		i.mu.Unlock()
		return nil
	}
	i.closed = true
	i.mu.Unlock()

	stopCtx, cancel := context.WithTimeout(context.Background(), stopTimeout)
	defer cancel()
	return i.app.Stop(stopCtx)
}

func (i *Initiator) checkOpen() error {
	i.mu.Lock()
	defer i.mu.Unlock()
	if i.closed {
		return ErrClosed
	}
	return nil
}
