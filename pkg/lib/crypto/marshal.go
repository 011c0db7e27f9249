package crypto

import (
	"encoding/binary"
	"fmt"
)

// ============================================================================
//                              公钥记录格式
// ============================================================================

// 跨实现传输公钥时使用的自描述记录：
//
//   ┌─────────────────────────────────────────────────────────────┐
//   │                       公钥记录格式                            │
//   ├─────────────────────────────────────────────────────────────┤
//   │  Type:   uint8 (KeyType)                                    │
//   │  Length: uint32 (大端序)                                     │
//   │  Data:   规范编码的公钥字节                                    │
//   └─────────────────────────────────────────────────────────────┘
//
// 证书身份扩展中的 publicKey 字段即为此记录。

const (
	// 记录头大小：1 字节类型 + 4 字节长度
	marshalHeaderSize = 5
)

// MarshalPublicKey 将公钥序列化为自描述记录
//
// 返回格式：[Type(1)] [Length(4)] [Data(n)]
func MarshalPublicKey(key PublicKey) ([]byte, error) {
	if key == nil {
		return nil, ErrNilPublicKey
	}

	raw, err := key.Raw()
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMarshalFailed, err)
	}

	buf := make([]byte, marshalHeaderSize+len(raw))
	buf[0] = byte(key.Type())
	binary.BigEndian.PutUint32(buf[1:5], uint32(len(raw)))
	copy(buf[5:], raw)

	return buf, nil
}

// UnmarshalPublicKeyRecord 从自描述记录反序列化公钥
//
// 参数格式：[Type(1)] [Length(4)] [Data(n)]
//
// 记录来自不可信对端：头部截断、长度与实际数据不符、
// 尾部多余字节、未知类型标签都会被拒绝。
func UnmarshalPublicKeyRecord(data []byte) (PublicKey, error) {
	if len(data) < marshalHeaderSize {
		return nil, fmt.Errorf("%w: record too short", ErrUnmarshalFailed)
	}

	keyType := KeyType(data[0])
	length := binary.BigEndian.Uint32(data[1:5])

	if uint64(len(data)-marshalHeaderSize) != uint64(length) {
		return nil, fmt.Errorf("%w: record length mismatch", ErrUnmarshalFailed)
	}

	return UnmarshalPublicKey(keyType, data[5:])
}
