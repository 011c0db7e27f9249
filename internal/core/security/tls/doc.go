// Package tls 实现基于 TLS 1.3 的安全传输（发起方）
//
// 信任模型不依赖 CA 链：每个连接使用一次性会话密钥
// 自签名证书，证书中嵌入身份扩展，将长期身份绑定到
// 会话密钥上：
//
//	extension = SEQUENCE {
//	    publicKey  OCTET STRING,  -- 长期公钥记录
//	    signature  OCTET STRING,  -- 长期私钥对
//	                              -- prefix || 会话公钥 DER 的签名
//	}
//
// 验证方重新计算签名域并用扩展中的公钥验证，
// 成功则以该公钥作为对端身份。证书链和主机名
// 校验被禁用（无 PKI、无主机名），信任完全来自扩展。
//
// 任何验证失败都中止握手；连接绝不降级为未认证通道。
package tls
