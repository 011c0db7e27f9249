package tls

import (
	"go.uber.org/fx"

	"github.com/dep2p/go-upgrader/internal/core/identity"
	securityif "github.com/dep2p/go-upgrader/pkg/interfaces/security"
)

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	Identity *identity.Identity

	// 配置（可选，缺省使用默认配置）
	Config *Config `optional:"true"`
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	SecureTransport securityif.SecureTransport
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	cfg := DefaultConfig()
	if input.Config != nil {
		cfg = *input.Config
	}

	transport, err := NewTransport(input.Identity, cfg)
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{SecureTransport: transport}, nil
}

// Module 返回 TLS 安全传输模块的 fx 选项
func Module() fx.Option {
	return fx.Module("security.tls",
		fx.Provide(ProvideServices),
	)
}
