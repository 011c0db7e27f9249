package crypto

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"io"

	secp "github.com/decred/dcrd/dcrec/secp256k1/v4"
	secpecdsa "github.com/decred/dcrd/dcrec/secp256k1/v4/ecdsa"
)

// Secp256k1 密钥常量
const (
	// Secp256k1PrivateKeySize Secp256k1 私钥大小（32 字节）
	Secp256k1PrivateKeySize = 32
	// Secp256k1PublicKeySize Secp256k1 压缩公钥大小（33 字节）
	Secp256k1PublicKeySize = 33
)

// ============================================================================
//                              Secp256k1PublicKey
// ============================================================================

// Secp256k1PublicKey Secp256k1 公钥实现
type Secp256k1PublicKey struct {
	k *secp.PublicKey
}

// Raw 返回压缩格式的公钥字节（33 字节，规范编码）
func (k *Secp256k1PublicKey) Raw() ([]byte, error) {
	return k.k.SerializeCompressed(), nil
}

// Type 返回密钥类型
func (k *Secp256k1PublicKey) Type() KeyType {
	return KeyTypeSecp256k1
}

// Equals 比较两个公钥是否相等
func (k *Secp256k1PublicKey) Equals(other Key) bool {
	sk, ok := other.(*Secp256k1PublicKey)
	if !ok {
		return KeyEqual(k, other)
	}
	return k.k.IsEqual(sk.k)
}

// Verify 使用此公钥验证签名
//
// 签名为 SHA-256 摘要上的 DER ECDSA 签名。
// 畸形签名返回 (false, nil)。
func (k *Secp256k1PublicKey) Verify(data, sig []byte) (bool, error) {
	parsed, err := secpecdsa.ParseDERSignature(sig)
	if err != nil {
		return false, nil
	}
	hash := sha256.Sum256(data)
	return parsed.Verify(hash[:], k.k), nil
}

// ============================================================================
//                              Secp256k1PrivateKey
// ============================================================================

// Secp256k1PrivateKey Secp256k1 私钥实现
type Secp256k1PrivateKey struct {
	k *secp.PrivateKey
}

// Raw 返回原始私钥字节（32 字节）
func (k *Secp256k1PrivateKey) Raw() ([]byte, error) {
	return k.k.Serialize(), nil
}

// Type 返回密钥类型
func (k *Secp256k1PrivateKey) Type() KeyType {
	return KeyTypeSecp256k1
}

// Equals 比较两个私钥是否相等
func (k *Secp256k1PrivateKey) Equals(other Key) bool {
	sk, ok := other.(*Secp256k1PrivateKey)
	if !ok {
		return KeyEqual(k, other)
	}
	return subtle.ConstantTimeCompare(k.k.Serialize(), sk.k.Serialize()) == 1
}

// Sign 使用此私钥签名数据
//
// 签名为 SHA-256 摘要上的 DER ECDSA 签名（RFC 6979 确定性 nonce）。
func (k *Secp256k1PrivateKey) Sign(data []byte) ([]byte, error) {
	hash := sha256.Sum256(data)
	return secpecdsa.Sign(k.k, hash[:]).Serialize(), nil
}

// GetPublic 返回对应的公钥
func (k *Secp256k1PrivateKey) GetPublic() PublicKey {
	return &Secp256k1PublicKey{k: k.k.PubKey()}
}

// ============================================================================
//                              生成与反序列化
// ============================================================================

// GenerateSecp256k1Key 生成 Secp256k1 密钥对
func GenerateSecp256k1Key(src io.Reader) (PrivateKey, PublicKey, error) {
	var buf [Secp256k1PrivateKeySize]byte
	if _, err := io.ReadFull(src, buf[:]); err != nil {
		return nil, nil, err
	}

	priv := secp.PrivKeyFromBytes(buf[:])
	if priv.Key.IsZero() {
		return nil, nil, ErrInvalidPrivateKey
	}
	return &Secp256k1PrivateKey{k: priv}, &Secp256k1PublicKey{k: priv.PubKey()}, nil
}

// UnmarshalSecp256k1PublicKey 从压缩点字节反序列化 Secp256k1 公钥
func UnmarshalSecp256k1PublicKey(data []byte) (PublicKey, error) {
	if len(data) != Secp256k1PublicKeySize {
		return nil, ErrInvalidKeySize
	}
	pub, err := secp.ParsePubKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	return &Secp256k1PublicKey{k: pub}, nil
}

// UnmarshalSecp256k1PrivateKey 从原始字节反序列化 Secp256k1 私钥
func UnmarshalSecp256k1PrivateKey(data []byte) (PrivateKey, error) {
	if len(data) != Secp256k1PrivateKeySize {
		return nil, ErrInvalidKeySize
	}
	priv := secp.PrivKeyFromBytes(data)
	if priv.Key.IsZero() {
		return nil, ErrInvalidPrivateKey
	}
	return &Secp256k1PrivateKey{k: priv}, nil
}
