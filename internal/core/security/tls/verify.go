package tls

import (
	"crypto/x509"
	"crypto/x509/pkix"
	"errors"
	"fmt"

	"github.com/dep2p/go-upgrader/pkg/lib/crypto"
)

// VerifyPeerCertificateChain 验证对端证书链并提取长期公钥
//
// 信任模型要求链中恰好一张证书：没有 CA，多余的证书
// 只能是干扰。
func VerifyPeerCertificateChain(rawCerts [][]byte) (crypto.PublicKey, error) {
	if len(rawCerts) != 1 {
		return nil, fmt.Errorf("%w: got %d", ErrNoCertificate, len(rawCerts))
	}
	return ValidateCertificate(rawCerts[0])
}

// ValidateCertificate 验证单张证书并提取长期公钥
//
// 验证步骤（全部 fail-closed，无副作用）：
//  1. 解析证书，定位身份扩展——缺失或重复都是错误
//  2. 解码扩展载荷为 (publicKey, signature)
//  3. 取证书自身的 SubjectPublicKeyInfo DER
//  4. 用扩展公钥验证 signature over prefix || SPKI
//  5. 仅在验证成功时返回长期公钥
func ValidateCertificate(certDER []byte) (crypto.PublicKey, error) {
	cert, err := x509.ParseCertificate(certDER)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedCertificate, err)
	}
	return validateParsedCertificate(cert)
}

func validateParsedCertificate(cert *x509.Certificate) (crypto.PublicKey, error) {
	ext, err := findIdentityExtension(cert.Extensions)
	if err != nil {
		return nil, err
	}

	sk, err := parseExtensionValue(ext.Value)
	if err != nil {
		return nil, err
	}

	pub, err := crypto.UnmarshalPublicKeyRecord(sk.PubKey)
	if err != nil {
		if errors.Is(err, crypto.ErrBadKeyType) {
			return nil, fmt.Errorf("%w: %v", ErrUnsupportedKeyType, err)
		}
		return nil, fmt.Errorf("%w: public key record: %v", ErrMalformedExtension, err)
	}

	msg := make([]byte, 0, len(signaturePrefix)+len(cert.RawSubjectPublicKeyInfo))
	msg = append(msg, signaturePrefix...)
	msg = append(msg, cert.RawSubjectPublicKeyInfo...)

	ok, err := pub.Verify(msg, sk.Signature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrSignatureMismatch, err)
	}
	if !ok {
		return nil, ErrSignatureMismatch
	}

	return pub, nil
}

// findIdentityExtension 在扩展列表中定位唯一的身份扩展
func findIdentityExtension(exts []pkix.Extension) (*pkix.Extension, error) {
	var found *pkix.Extension
	for i := range exts {
		if !exts[i].Id.Equal(identityExtensionOID) {
			continue
		}
		if found != nil {
			return nil, ErrDuplicateExtension
		}
		found = &exts[i]
	}
	if found == nil {
		return nil, ErrMissingExtension
	}
	return found, nil
}
