package identity

import "github.com/dep2p/go-upgrader/pkg/lib/crypto"

// Config 身份配置
type Config struct {
	// KeyType 生成新身份时使用的密钥类型
	KeyType crypto.KeyType

	// PrivateKey 已有私钥（非空时优先于 KeyType）
	PrivateKey crypto.PrivateKey
}

// DefaultConfig 返回默认配置（Ed25519）
func DefaultConfig() Config {
	return Config{
		KeyType: crypto.KeyTypeEd25519,
	}
}

// Load 根据配置创建身份
//
// 提供了私钥则直接使用，否则生成新密钥对。
func Load(cfg Config) (*Identity, error) {
	if cfg.PrivateKey != nil {
		return New(cfg.PrivateKey)
	}

	keyType := cfg.KeyType
	if keyType == crypto.KeyTypeUnspecified {
		keyType = crypto.KeyTypeEd25519
	}
	return Generate(keyType)
}
