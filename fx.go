package upgrader

import (
	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"

	"github.com/dep2p/go-upgrader/internal/core/identity"
	"github.com/dep2p/go-upgrader/internal/core/security/tls"
	coreupgrader "github.com/dep2p/go-upgrader/internal/core/upgrader"
	"github.com/dep2p/go-upgrader/internal/util/logger"
)

// buildFxApp 构建 Fx 应用
//
// 组装三个内部模块并抽取两个出口对象：
//
//	Identity → Security(TLS) → Upgrader
//
// 各模块的配置通过 fx.Supply 注入，零值字段由模块自身
// 回落到默认值。
func buildFxApp(opts *options, ident **identity.Identity, up **coreupgrader.Upgrader) *fx.App {
	identCfg := &identity.Config{
		KeyType:    opts.keyType,
		PrivateKey: opts.privateKey,
	}
	tlsCfg := &tls.Config{
		HandshakeTimeout: opts.handshakeTimeout,
	}
	upCfg := &coreupgrader.Config{
		MuxerProtocol:    opts.muxerProtocol,
		NegotiateTimeout: opts.negotiateTimeout,
	}

	fxOpts := []fx.Option{
		fx.Supply(identCfg, tlsCfg, upCfg),

		identity.Module(),
		tls.Module(),
		coreupgrader.Module(),

		fx.Populate(ident, up),

		fx.WithLogger(func() fxevent.Logger {
			return &fxevent.SlogLogger{Logger: logger.Logger("fx")}
		}),
	}

	// 用户扩展的 Fx 选项
	fxOpts = append(fxOpts, opts.fxOptions...)

	return fx.New(fxOpts...)
}
