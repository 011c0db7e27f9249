package identity

import (
	"crypto/sha256"
	"errors"
	"fmt"

	"github.com/dep2p/go-upgrader/internal/util/logger"
	"github.com/dep2p/go-upgrader/pkg/lib/crypto"
	"github.com/dep2p/go-upgrader/pkg/types"
)

var log = logger.Logger("identity")

// 错误定义
var (
	// ErrNilPrivateKey 私钥为空
	ErrNilPrivateKey = errors.New("identity: nil private key")
)

// Identity 节点长期身份
//
// 持有长期密钥对和由公钥派生的 NodeID。
// 创建后不可变；私钥材料只由本结构持有。
type Identity struct {
	priv crypto.PrivateKey
	pub  crypto.PublicKey
	id   types.NodeID
}

// New 从已有私钥创建身份
func New(priv crypto.PrivateKey) (*Identity, error) {
	if priv == nil {
		return nil, ErrNilPrivateKey
	}

	pub := priv.GetPublic()
	id, err := DeriveNodeID(pub)
	if err != nil {
		return nil, fmt.Errorf("derive node ID: %w", err)
	}

	return &Identity{priv: priv, pub: pub, id: id}, nil
}

// Generate 生成新身份
func Generate(keyType crypto.KeyType) (*Identity, error) {
	priv, _, err := crypto.GenerateKeyPair(keyType)
	if err != nil {
		return nil, fmt.Errorf("generate %s key: %w", keyType, err)
	}

	ident, err := New(priv)
	if err != nil {
		return nil, err
	}

	log.Debug("身份已生成",
		"keyType", keyType.String(),
		"nodeID", ident.id.ShortString())
	return ident, nil
}

// ID 返回节点 ID
func (i *Identity) ID() types.NodeID {
	return i.id
}

// PublicKey 返回长期公钥
func (i *Identity) PublicKey() crypto.PublicKey {
	return i.pub
}

// PrivateKey 返回长期私钥
func (i *Identity) PrivateKey() crypto.PrivateKey {
	return i.priv
}

// Sign 使用长期私钥签名数据
func (i *Identity) Sign(data []byte) ([]byte, error) {
	return i.priv.Sign(data)
}

// DeriveNodeID 从公钥派生 NodeID
//
// 派生规则：公钥记录（[Type][Length][Data]）的 SHA256 哈希。
// 记录包含类型标签，不同算法的同字节公钥不会碰撞。
func DeriveNodeID(pub crypto.PublicKey) (types.NodeID, error) {
	rec, err := crypto.MarshalPublicKey(pub)
	if err != nil {
		return types.EmptyNodeID, err
	}
	hash := sha256.Sum256(rec)
	return types.NodeIDFromBytes(hash[:])
}
