package tls

import "errors"

// 证书验证相关错误
//
// 全部是握手致命错误：验证失败时连接必须被丢弃，
// 绝不降级为未认证通道。
var (
	// ErrNoCertificate 对端未提供证书，或提供了多于一张
	ErrNoCertificate = errors.New("tls: expected exactly one peer certificate")

	// ErrMalformedCertificate 证书本身无法按 DER 解析
	ErrMalformedCertificate = errors.New("tls: malformed peer certificate")

	// ErrMissingExtension 证书缺少身份扩展
	ErrMissingExtension = errors.New("tls: no identity extension in certificate")

	// ErrDuplicateExtension 证书包含多个身份扩展
	ErrDuplicateExtension = errors.New("tls: duplicate identity extension in certificate")

	// ErrMalformedExtension 身份扩展载荷无法解码
	ErrMalformedExtension = errors.New("tls: malformed identity extension")

	// ErrUnsupportedKeyType 扩展中的公钥算法标签不被支持
	ErrUnsupportedKeyType = errors.New("tls: unsupported key type in identity extension")

	// ErrSignatureMismatch 扩展签名未能绑定长期身份与会话密钥
	ErrSignatureMismatch = errors.New("tls: identity extension signature mismatch")

	// ErrALPNMismatch 握手协商出非预期的 ALPN 协议
	ErrALPNMismatch = errors.New("tls: unexpected ALPN negotiated")
)

// 本地配置/生成相关错误
var (
	// ErrCertificateGeneration 会话证书生成失败
	ErrCertificateGeneration = errors.New("tls: certificate generation failed")

	// ErrNilIdentity 身份为空
	ErrNilIdentity = errors.New("tls: nil identity")
)
