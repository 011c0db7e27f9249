// Package upgrader 将原始网络连接升级为带认证的加密连接
//
// # 概述
//
// go-upgrader 实现 libp2p 安全信道引导的发起方：
// 在 TCP 等原始连接上先用 multistream-select 协商安全协议，
// 随后完成 TLS 1.3 握手并通过证书身份扩展验证对端的长期
// 身份，最后在加密信道内协商流多路复用协议。
//
// 身份模型：每个节点持有一把长期签名密钥（Ed25519、
// Secp256k1 或 ECDSA），NodeID 由长期公钥派生。TLS 证书
// 使用一次性会话密钥自签名，证书的可信度完全来自内嵌的
// 身份扩展——长期密钥对会话公钥的签名。
//
// # 使用示例
//
//	init, err := upgrader.New(
//	    upgrader.WithKeyType(crypto.KeyTypeEd25519),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer init.Close()
//
//	conn, err := init.Dial(ctx, "example.com:4001")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println("connected to", conn.RemoteIdentity())
//
// # 范围
//
// 只实现发起方。响应方语义（监听、入站握手、协议列表
// 响应）不在范围内；收到协议列表按协商失败处理。
package upgrader

// Version 当前版本
const Version = "v0.1.0"
