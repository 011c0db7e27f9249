package upgrader

import (
	"go.uber.org/fx"

	securityif "github.com/dep2p/go-upgrader/pkg/interfaces/security"
)

// ============================================================================
//                              模块输入依赖
// ============================================================================

// ModuleInput 定义模块输入依赖
type ModuleInput struct {
	fx.In

	SecureTransport securityif.SecureTransport

	// 配置（可选，缺省使用默认配置）
	Config *Config `optional:"true"`
}

// ============================================================================
//                              模块输出服务
// ============================================================================

// ModuleOutput 定义模块输出服务
type ModuleOutput struct {
	fx.Out

	Upgrader *Upgrader
}

// ============================================================================
//                              服务提供
// ============================================================================

// ProvideServices 提供模块服务
func ProvideServices(input ModuleInput) (ModuleOutput, error) {
	cfg := NewConfig()
	if input.Config != nil {
		cfg = *input.Config
	}

	up, err := New(input.SecureTransport, cfg)
	if err != nil {
		return ModuleOutput{}, err
	}

	return ModuleOutput{Upgrader: up}, nil
}

// Module 返回升级器模块的 fx 选项
func Module() fx.Option {
	return fx.Module("upgrader",
		fx.Provide(ProvideServices),
	)
}
