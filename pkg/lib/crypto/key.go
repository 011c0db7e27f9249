package crypto

import (
	"crypto/rand"
	"crypto/subtle"
	"io"
)

// ============================================================================
//                              密钥类型定义
// ============================================================================

// KeyType 密钥类型
//
// 值与 libp2p 的 KeyType 枚举对齐：
//   - RSA = 1（仅保留标签，本模块不实现）
//   - Ed25519 = 2
//   - Secp256k1 = 3
//   - ECDSA = 4
type KeyType int

const (
	// KeyTypeUnspecified 未指定密钥类型
	KeyTypeUnspecified KeyType = 0
	// KeyTypeRSA RSA 密钥（不支持，标签保留用于识别对端算法）
	KeyTypeRSA KeyType = 1
	// KeyTypeEd25519 Ed25519 密钥（默认推荐）
	KeyTypeEd25519 KeyType = 2
	// KeyTypeSecp256k1 Secp256k1 密钥（区块链兼容）
	KeyTypeSecp256k1 KeyType = 3
	// KeyTypeECDSA ECDSA 密钥（命名曲线）
	KeyTypeECDSA KeyType = 4
)

// String 返回密钥类型名称
func (kt KeyType) String() string {
	switch kt {
	case KeyTypeUnspecified:
		return "Unspecified"
	case KeyTypeRSA:
		return "RSA"
	case KeyTypeEd25519:
		return "Ed25519"
	case KeyTypeSecp256k1:
		return "Secp256k1"
	case KeyTypeECDSA:
		return "ECDSA"
	default:
		return "Unknown"
	}
}

// KeyTypes 本模块支持的密钥类型列表
var KeyTypes = []KeyType{
	KeyTypeEd25519,
	KeyTypeSecp256k1,
	KeyTypeECDSA,
}

// ============================================================================
//                              密钥接口定义
// ============================================================================

// Key 基础密钥接口
type Key interface {
	// Raw 返回规范编码的原始密钥字节
	Raw() ([]byte, error)

	// Type 返回密钥类型
	Type() KeyType

	// Equals 比较两个密钥是否相等
	Equals(Key) bool
}

// PublicKey 公钥接口
type PublicKey interface {
	Key

	// Verify 使用此公钥验证签名
	//
	// 畸形签名返回 (false, nil)，绝不 panic。
	Verify(data, sig []byte) (bool, error)
}

// PrivateKey 私钥接口
type PrivateKey interface {
	Key

	// Sign 使用此私钥签名数据
	Sign(data []byte) ([]byte, error)

	// GetPublic 返回对应的公钥
	GetPublic() PublicKey
}

// ============================================================================
//                              密钥工厂函数
// ============================================================================

// GenerateKeyPair 生成密钥对
//
// 使用系统默认的加密安全随机源。
func GenerateKeyPair(keyType KeyType) (PrivateKey, PublicKey, error) {
	return GenerateKeyPairWithReader(keyType, rand.Reader)
}

// GenerateKeyPairWithReader 使用指定的随机源生成密钥对
func GenerateKeyPairWithReader(keyType KeyType, reader io.Reader) (PrivateKey, PublicKey, error) {
	switch keyType {
	case KeyTypeEd25519:
		return GenerateEd25519Key(reader)
	case KeyTypeSecp256k1:
		return GenerateSecp256k1Key(reader)
	case KeyTypeECDSA:
		return GenerateECDSAKey(reader)
	default:
		return nil, nil, ErrBadKeyType
	}
}

// ============================================================================
//                              反序列化函数
// ============================================================================

// PubKeyUnmarshaller 公钥反序列化函数类型
type PubKeyUnmarshaller func(data []byte) (PublicKey, error)

// PubKeyUnmarshallers 公钥反序列化函数映射
var PubKeyUnmarshallers = map[KeyType]PubKeyUnmarshaller{
	KeyTypeEd25519:   UnmarshalEd25519PublicKey,
	KeyTypeSecp256k1: UnmarshalSecp256k1PublicKey,
	KeyTypeECDSA:     UnmarshalECDSAPublicKey,
}

// UnmarshalPublicKey 从规范编码字节反序列化公钥
//
// 未知类型标签返回 ErrBadKeyType（fail-closed）。
func UnmarshalPublicKey(keyType KeyType, data []byte) (PublicKey, error) {
	um, ok := PubKeyUnmarshallers[keyType]
	if !ok {
		return nil, ErrBadKeyType
	}
	return um(data)
}

// ============================================================================
//                              辅助函数
// ============================================================================

// KeyEqual 通过规范编码比较两个密钥
//
// 类型或编码失败时返回 false。使用常量时间比较。
func KeyEqual(a, b Key) bool {
	if a == nil || b == nil {
		return false
	}
	if a.Type() != b.Type() {
		return false
	}

	ab, err := a.Raw()
	if err != nil {
		return false
	}
	bb, err := b.Raw()
	if err != nil {
		return false
	}
	return subtle.ConstantTimeCompare(ab, bb) == 1
}

// Verify 验证签名（按类型标签多态分发）
//
// 这是面向不可信输入的纯函数入口：公钥字节来自对端，
// 任何未知标签、畸形公钥或畸形签名都产生 false 或
// 类型化错误，绝不 panic。
func Verify(keyType KeyType, pubKeyBytes, data, sig []byte) (bool, error) {
	pub, err := UnmarshalPublicKey(keyType, pubKeyBytes)
	if err != nil {
		return false, err
	}
	return pub.Verify(data, sig)
}
