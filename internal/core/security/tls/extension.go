package tls

import (
	"encoding/asn1"
	"fmt"

	"github.com/dep2p/go-upgrader/internal/core/identity"
	"github.com/dep2p/go-upgrader/pkg/lib/crypto"
)

// identityExtensionOID 身份扩展的对象标识符
// 私有企业号段: 1.3.6.1.4.1.53594.1.1
var identityExtensionOID = asn1.ObjectIdentifier{1, 3, 6, 1, 4, 1, 53594, 1, 1}

// signaturePrefix 签名域前缀
//
// 签名覆盖 prefix || 会话公钥 DER，而不是证书本身。
// 固定前缀将签名语义绑定到"这是一把 libp2p TLS 会话密钥"，
// 防止签名被挪用到其他协议。
const signaturePrefix = "libp2p-tls-handshake:"

// signedKey 身份扩展的 DER 结构
//
//	SEQUENCE {
//	    publicKey  OCTET STRING
//	    signature  OCTET STRING
//	}
type signedKey struct {
	PubKey    []byte
	Signature []byte
}

// buildExtensionValue 构造身份扩展载荷
//
// signature = identity.Sign(prefix || sessionPubKeyDER)，
// publicKey 为长期公钥的自描述记录。
func buildExtensionValue(ident *identity.Identity, sessionPubKeyDER []byte) ([]byte, error) {
	keyRecord, err := crypto.MarshalPublicKey(ident.PublicKey())
	if err != nil {
		return nil, fmt.Errorf("marshal identity public key: %w", err)
	}

	msg := make([]byte, 0, len(signaturePrefix)+len(sessionPubKeyDER))
	msg = append(msg, signaturePrefix...)
	msg = append(msg, sessionPubKeyDER...)

	sig, err := ident.Sign(msg)
	if err != nil {
		return nil, fmt.Errorf("sign session key: %w", err)
	}

	value, err := asn1.Marshal(signedKey{
		PubKey:    keyRecord,
		Signature: sig,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal identity extension: %w", err)
	}
	return value, nil
}

// parseExtensionValue 解码身份扩展载荷
//
// 载荷来自不可信对端：解码失败、尾部多余字节都返回
// ErrMalformedExtension。
func parseExtensionValue(value []byte) (*signedKey, error) {
	var sk signedKey
	rest, err := asn1.Unmarshal(value, &sk)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedExtension, err)
	}
	if len(rest) != 0 {
		return nil, fmt.Errorf("%w: trailing bytes", ErrMalformedExtension)
	}
	return &sk, nil
}
