package crypto

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"fmt"
	"io"
)

// ============================================================================
//                              ECDSAPublicKey
// ============================================================================

// ECDSAPublicKey ECDSA 公钥实现（命名曲线）
//
// 与 Ed25519/Secp256k1 不同，ECDSA 公钥没有固定长度的
// 点编码约定，规范编码为 DER SubjectPublicKeyInfo，
// 曲线信息由 DER 自描述。
type ECDSAPublicKey struct {
	k *ecdsa.PublicKey
}

// Raw 返回 DER SubjectPublicKeyInfo 编码（规范编码）
func (k *ECDSAPublicKey) Raw() ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(k.k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarshalFailed, err)
	}
	return der, nil
}

// Type 返回密钥类型
func (k *ECDSAPublicKey) Type() KeyType {
	return KeyTypeECDSA
}

// Equals 比较两个公钥是否相等
func (k *ECDSAPublicKey) Equals(other Key) bool {
	ek, ok := other.(*ECDSAPublicKey)
	if !ok {
		return KeyEqual(k, other)
	}
	return k.k.Equal(ek.k)
}

// Verify 使用此公钥验证签名
//
// 签名为 SHA-256 摘要上的 ASN.1 DER ECDSA 签名。
// 畸形签名返回 (false, nil)。
func (k *ECDSAPublicKey) Verify(data, sig []byte) (bool, error) {
	hash := sha256.Sum256(data)
	return ecdsa.VerifyASN1(k.k, hash[:], sig), nil
}

// Curve 返回底层曲线名称
func (k *ECDSAPublicKey) Curve() string {
	return k.k.Curve.Params().Name
}

// ============================================================================
//                              ECDSAPrivateKey
// ============================================================================

// ECDSAPrivateKey ECDSA 私钥实现（命名曲线）
type ECDSAPrivateKey struct {
	k *ecdsa.PrivateKey
}

// Raw 返回 DER EC 私钥编码（SEC 1）
func (k *ECDSAPrivateKey) Raw() ([]byte, error) {
	der, err := x509.MarshalECPrivateKey(k.k)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarshalFailed, err)
	}
	return der, nil
}

// Type 返回密钥类型
func (k *ECDSAPrivateKey) Type() KeyType {
	return KeyTypeECDSA
}

// Equals 比较两个私钥是否相等
func (k *ECDSAPrivateKey) Equals(other Key) bool {
	ek, ok := other.(*ECDSAPrivateKey)
	if !ok {
		return KeyEqual(k, other)
	}
	return k.k.Equal(ek.k)
}

// Sign 使用此私钥签名数据
//
// 签名为 SHA-256 摘要上的 ASN.1 DER ECDSA 签名
//（nonce 随机化，同一消息两次签名字节不同）。
func (k *ECDSAPrivateKey) Sign(data []byte) ([]byte, error) {
	hash := sha256.Sum256(data)
	return ecdsa.SignASN1(rand.Reader, k.k, hash[:])
}

// GetPublic 返回对应的公钥
func (k *ECDSAPrivateKey) GetPublic() PublicKey {
	return &ECDSAPublicKey{k: &k.k.PublicKey}
}

// ============================================================================
//                              生成与反序列化
// ============================================================================

// GenerateECDSAKey 生成 ECDSA 密钥对（默认 P-256 曲线）
func GenerateECDSAKey(src io.Reader) (PrivateKey, PublicKey, error) {
	return GenerateECDSAKeyWithCurve(elliptic.P256(), src)
}

// GenerateECDSAKeyWithCurve 在指定曲线上生成 ECDSA 密钥对
//
// 支持 P-256、P-384、P-521。
func GenerateECDSAKeyWithCurve(curve elliptic.Curve, src io.Reader) (PrivateKey, PublicKey, error) {
	switch curve {
	case elliptic.P256(), elliptic.P384(), elliptic.P521():
	default:
		return nil, nil, ErrUnsupportedCurve
	}

	priv, err := ecdsa.GenerateKey(curve, src)
	if err != nil {
		return nil, nil, err
	}
	return &ECDSAPrivateKey{k: priv}, &ECDSAPublicKey{k: &priv.PublicKey}, nil
}

// UnmarshalECDSAPublicKey 从 DER SubjectPublicKeyInfo 反序列化 ECDSA 公钥
func UnmarshalECDSAPublicKey(data []byte) (PublicKey, error) {
	pub, err := x509.ParsePKIXPublicKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPublicKey, err)
	}
	ecPub, ok := pub.(*ecdsa.PublicKey)
	if !ok {
		return nil, ErrInvalidPublicKey
	}
	return &ECDSAPublicKey{k: ecPub}, nil
}

// UnmarshalECDSAPrivateKey 从 DER EC 私钥编码反序列化 ECDSA 私钥
func UnmarshalECDSAPrivateKey(data []byte) (PrivateKey, error) {
	priv, err := x509.ParseECPrivateKey(data)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidPrivateKey, err)
	}
	return &ECDSAPrivateKey{k: priv}, nil
}
