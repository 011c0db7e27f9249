package upgrader

import (
	"time"

	"go.uber.org/fx"

	"github.com/dep2p/go-upgrader/pkg/lib/crypto"
	"github.com/dep2p/go-upgrader/pkg/types"
)

// Option 用户配置选项函数
type Option func(*options) error

// options 内部选项结构
type options struct {
	// 身份配置
	keyType    crypto.KeyType
	privateKey crypto.PrivateKey

	// 协商配置
	muxerProtocol    types.ProtocolID
	negotiateTimeout time.Duration

	// 握手配置
	handshakeTimeout time.Duration

	// 用户扩展的 Fx 选项
	fxOptions []fx.Option
}

// defaultOptions 返回默认选项
func defaultOptions() *options {
	return &options{
		keyType: crypto.KeyTypeEd25519,
	}
}

// WithKeyType 设置生成长期身份密钥的算法
//
// 与 WithPrivateKey 互斥时以后者为准。
func WithKeyType(keyType crypto.KeyType) Option {
	return func(o *options) error {
		o.keyType = keyType
		return nil
	}
}

// WithPrivateKey 使用已有的长期私钥作为节点身份
func WithPrivateKey(priv crypto.PrivateKey) Option {
	return func(o *options) error {
		if priv == nil {
			return ErrNilPrivateKey
		}
		o.privateKey = priv
		return nil
	}
}

// WithMuxerProtocol 设置握手后提议的多路复用协议
func WithMuxerProtocol(proto types.ProtocolID) Option {
	return func(o *options) error {
		if proto.IsEmpty() {
			return ErrEmptyProtocol
		}
		o.muxerProtocol = proto
		return nil
	}
}

// WithNegotiateTimeout 设置单个协商阶段的超时
func WithNegotiateTimeout(d time.Duration) Option {
	return func(o *options) error {
		o.negotiateTimeout = d
		return nil
	}
}

// WithHandshakeTimeout 设置 TLS 握手超时
func WithHandshakeTimeout(d time.Duration) Option {
	return func(o *options) error {
		o.handshakeTimeout = d
		return nil
	}
}

// WithFxOption 追加自定义 Fx 选项
//
// 用于注入额外的生命周期钩子或装饰内部组件。
func WithFxOption(fxOpts ...fx.Option) Option {
	return func(o *options) error {
		o.fxOptions = append(o.fxOptions, fxOpts...)
		return nil
	}
}
