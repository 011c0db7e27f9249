package tls

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dep2p/go-upgrader/internal/core/identity"
	"github.com/dep2p/go-upgrader/pkg/lib/crypto"
)

func TestGenerateCertificate(t *testing.T) {
	ident, err := identity.Generate(crypto.KeyTypeEd25519)
	require.NoError(t, err)

	cert, err := GenerateCertificate(ident)
	require.NoError(t, err)

	require.Len(t, cert.Certificate, 1)
	require.NotNil(t, cert.Leaf)
	require.NotNil(t, cert.PrivateKey)

	// 会话密钥是 P-256，且与证书公钥配对
	sessionKey, ok := cert.PrivateKey.(*ecdsa.PrivateKey)
	require.True(t, ok)
	assert.Equal(t, elliptic.P256(), sessionKey.Curve)

	leafPub, ok := cert.Leaf.PublicKey.(*ecdsa.PublicKey)
	require.True(t, ok)
	assert.True(t, sessionKey.PublicKey.Equal(leafPub))

	// 自签名：没有 CA 链
	assert.Equal(t, cert.Leaf.Issuer.String(), cert.Leaf.Subject.String())

	// 身份扩展恰好出现一次
	count := 0
	for _, ext := range cert.Leaf.Extensions {
		if ext.Id.Equal(identityExtensionOID) {
			count++
		}
	}
	assert.Equal(t, 1, count)
}

func TestGenerateCertificateValidityWindow(t *testing.T) {
	ident, err := identity.Generate(crypto.KeyTypeEd25519)
	require.NoError(t, err)

	cert, err := GenerateCertificate(ident)
	require.NoError(t, err)

	now := time.Now()
	assert.True(t, cert.Leaf.NotBefore.Before(now), "NotBefore 应回拨以容忍时钟偏差")
	assert.True(t, cert.Leaf.NotAfter.After(now.Add(24*time.Hour)))
}

func TestGenerateCertificateNilIdentity(t *testing.T) {
	_, err := GenerateCertificate(nil)
	assert.ErrorIs(t, err, ErrNilIdentity)
}
