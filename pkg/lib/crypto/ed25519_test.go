package crypto

import (
	"crypto/ed25519"
	"crypto/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEd25519RawEncoding(t *testing.T) {
	_, pub, err := GenerateEd25519Key(rand.Reader)
	require.NoError(t, err)

	raw, err := pub.Raw()
	require.NoError(t, err)
	assert.Len(t, raw, Ed25519PublicKeySize)

	got, err := UnmarshalEd25519PublicKey(raw)
	require.NoError(t, err)
	assert.True(t, pub.Equals(got))
}

func TestEd25519SignDeterministic(t *testing.T) {
	priv, _, err := GenerateEd25519Key(rand.Reader)
	require.NoError(t, err)

	sig1, err := priv.Sign([]byte("msg"))
	require.NoError(t, err)
	sig2, err := priv.Sign([]byte("msg"))
	require.NoError(t, err)
	assert.Equal(t, sig1, sig2)
	assert.Len(t, sig1, Ed25519SignatureSize)
}

func TestUnmarshalEd25519PrivateKeyFromSeed(t *testing.T) {
	priv, _, err := GenerateEd25519Key(rand.Reader)
	require.NoError(t, err)

	raw, err := priv.Raw()
	require.NoError(t, err)
	require.Len(t, raw, Ed25519PrivateKeySize)

	// 完整 64 字节
	got, err := UnmarshalEd25519PrivateKey(raw)
	require.NoError(t, err)
	assert.True(t, priv.Equals(got))

	// 仅 32 字节种子
	got, err = UnmarshalEd25519PrivateKey(raw[:ed25519.SeedSize])
	require.NoError(t, err)
	assert.True(t, priv.Equals(got))

	// 其他长度拒绝
	_, err = UnmarshalEd25519PrivateKey(raw[:40])
	assert.ErrorIs(t, err, ErrInvalidKeySize)
}

func TestUnmarshalEd25519PublicKeyCopies(t *testing.T) {
	_, pub, err := GenerateEd25519Key(rand.Reader)
	require.NoError(t, err)
	raw, err := pub.Raw()
	require.NoError(t, err)

	got, err := UnmarshalEd25519PublicKey(raw)
	require.NoError(t, err)

	// 反序列化后修改输入不得影响密钥
	raw[0] ^= 0xff
	assert.True(t, pub.Equals(got))
}
