package tls

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/tls"
	"crypto/x509"
	"crypto/x509/pkix"
	"fmt"
	"math/big"
	"time"

	"github.com/dep2p/go-upgrader/internal/core/identity"
)

// 证书有效期窗口
//
// NotBefore 回拨一小时以容忍时钟偏差；有效期远大于
// 握手时长即可，证书只活一个连接。
const (
	certValidityBackdate = time.Hour
	certValidityPeriod   = 365 * 24 * time.Hour
)

// GenerateCertificate 生成携带身份扩展的自签名会话证书
//
// 每次调用生成一把新的 ECDSA P-256 会话密钥，证书由
// 会话密钥自签名（而不是长期身份签名）——证书的可信度
// 完全来自嵌入的身份扩展，不来自签名链。
func GenerateCertificate(ident *identity.Identity) (*tls.Certificate, error) {
	if ident == nil {
		return nil, ErrNilIdentity
	}

	sessionKey, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("%w: generate session key: %v", ErrCertificateGeneration, err)
	}

	// 签名域使用会话公钥的 DER SubjectPublicKeyInfo，
	// 与验证方从证书里取到的 RawSubjectPublicKeyInfo 一致
	sessionPubDER, err := x509.MarshalPKIXPublicKey(&sessionKey.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("%w: marshal session key: %v", ErrCertificateGeneration, err)
	}

	extValue, err := buildExtensionValue(ident, sessionPubDER)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCertificateGeneration, err)
	}

	template := &x509.Certificate{
		SerialNumber: big.NewInt(time.Now().UnixNano()),
		Subject: pkix.Name{
			Organization: []string{"DeP2P"},
			CommonName:   "DeP2P Node " + ident.ID().ShortString(),
		},
		NotBefore:             time.Now().Add(-certValidityBackdate),
		NotAfter:              time.Now().Add(certValidityPeriod),
		KeyUsage:              x509.KeyUsageDigitalSignature,
		ExtKeyUsage:           []x509.ExtKeyUsage{x509.ExtKeyUsageServerAuth, x509.ExtKeyUsageClientAuth},
		BasicConstraintsValid: true,
		ExtraExtensions: []pkix.Extension{
			{
				Id:    identityExtensionOID,
				Value: extValue,
			},
		},
	}

	certDER, err := x509.CreateCertificate(rand.Reader, template, template, &sessionKey.PublicKey, sessionKey)
	if err != nil {
		return nil, fmt.Errorf("%w: create certificate: %v", ErrCertificateGeneration, err)
	}

	cert, err := x509.ParseCertificate(certDER)
	if err != nil {
		return nil, fmt.Errorf("%w: parse certificate: %v", ErrCertificateGeneration, err)
	}

	return &tls.Certificate{
		Certificate: [][]byte{certDER},
		PrivateKey:  sessionKey,
		Leaf:        cert,
	}, nil
}
