package types

import (
	"crypto/sha256"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeIDRoundTrip(t *testing.T) {
	h := sha256.Sum256([]byte("some public key bytes"))

	id, err := NodeIDFromBytes(h[:])
	require.NoError(t, err)
	assert.False(t, id.IsEmpty())

	parsed, err := ParseNodeID(id.String())
	require.NoError(t, err)
	assert.True(t, id.Equal(parsed))
}

func TestNodeIDFromBytesInvalidLength(t *testing.T) {
	_, err := NodeIDFromBytes([]byte{1, 2, 3})
	assert.ErrorIs(t, err, ErrInvalidNodeID)
}

func TestParseNodeIDInvalid(t *testing.T) {
	// 空字符串
	_, err := ParseNodeID("")
	assert.ErrorIs(t, err, ErrInvalidNodeID)

	// 非 Base58 字符（0 和 l 不在字母表中）
	_, err = ParseNodeID("0lII")
	assert.ErrorIs(t, err, ErrInvalidNodeID)

	// 合法 Base58 但长度不是 32 字节
	_, err = ParseNodeID("abc")
	assert.ErrorIs(t, err, ErrInvalidNodeID)
}

func TestNodeIDShortString(t *testing.T) {
	var id NodeID
	assert.Equal(t, "", id.ShortString())

	h := sha256.Sum256([]byte("x"))
	id, err := NodeIDFromBytes(h[:])
	require.NoError(t, err)
	assert.Len(t, id.ShortString(), 8)
}

func TestProtocolID(t *testing.T) {
	p := ProtocolID("/tls/1.0.0")
	assert.Equal(t, "/tls/1.0.0", p.String())
	assert.Equal(t, "1.0.0", p.Version())
	assert.Equal(t, "/tls", p.Name())
	assert.False(t, p.IsEmpty())
	assert.True(t, ProtocolID("").IsEmpty())
}
