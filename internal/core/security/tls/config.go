package tls

import (
	"crypto/tls"
	"crypto/x509"

	"github.com/dep2p/go-upgrader/internal/core/identity"
	"github.com/dep2p/go-upgrader/pkg/lib/crypto"
)

// alpnProtocol 握手必须协商出的 ALPN 协议
const alpnProtocol = "libp2p"

// PeerInfo 接收握手验证结果的容器
//
// VerifyPeerCertificate 回调在握手期间填入对端长期公钥；
// 握手成功后 PublicKey 必定非空。
type PeerInfo struct {
	PublicKey crypto.PublicKey
}

// ConfigBuilder TLS 客户端配置构建器
type ConfigBuilder struct {
	identity   *identity.Identity
	nextProtos []string
}

// NewConfigBuilder 创建配置构建器
func NewConfigBuilder(ident *identity.Identity) *ConfigBuilder {
	return &ConfigBuilder{
		identity:   ident,
		nextProtos: []string{alpnProtocol},
	}
}

// WithNextProtos 设置 ALPN 协议列表
func (b *ConfigBuilder) WithNextProtos(protos []string) *ConfigBuilder {
	b.nextProtos = protos
	return b
}

// BuildClientConfig 构建一次性客户端 TLS 配置
//
// 每次调用生成新的会话密钥和证书（SessionKeyPair 只活
// 一个连接），因此返回的配置只能用于一次握手。
//
// 默认的证书链和主机名校验被禁用——没有 PKI 也没有
// 主机名可验。信任判定由注入的 VerifyPeerCertificate
// 回调承担，结果写入返回的 PeerInfo。
func (b *ConfigBuilder) BuildClientConfig() (*tls.Config, *PeerInfo, error) {
	if b.identity == nil {
		return nil, nil, ErrNilIdentity
	}

	cert, err := GenerateCertificate(b.identity)
	if err != nil {
		return nil, nil, err
	}

	info := &PeerInfo{}
	conf := &tls.Config{
		MinVersion:   tls.VersionTLS13,
		Certificates: []tls.Certificate{*cert},
		NextProtos:   append([]string(nil), b.nextProtos...),
		// P2P 场景使用自签名证书，链式信任不适用
		InsecureSkipVerify: true, //nolint:gosec // G402: 信任判定由 VerifyPeerCertificate 承担
		VerifyPeerCertificate: func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
			pub, err := VerifyPeerCertificateChain(rawCerts)
			if err != nil {
				return err
			}
			info.PublicKey = pub
			return nil
		},
		SessionTicketsDisabled: true,
	}

	return conf, info, nil
}
