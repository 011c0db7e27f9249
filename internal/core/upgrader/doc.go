// Package upgrader 实现出站连接升级器
//
// # 概述
//
// upgrader 负责将原始网络连接升级为带认证的加密连接。
// 它按固定顺序协调三个阶段，全部以发起方角色运行：
//
//  1. 安全协议协商（multistream-select，明文）
//     - 提议 /tls/1.0.0，等待对端回显
//
//  2. 安全握手（TLS 1.3）
//     - 证书身份扩展验证对端长期身份
//
//  3. 多路复用器协商（multistream-select，密文）
//     - 在加密信道内提议 /yamux/1.0.0
//
// 每个阶段失败都携带阶段标记返回，调用方能够区分
// 失败发生在哪一步、因何而败。对端以 na 拒绝提议
// 是可恢复结局，透传 multistream.ErrNotAvailable。
//
// # 使用示例
//
//	import (
//	    "github.com/dep2p/go-upgrader/internal/core/security/tls"
//	    "github.com/dep2p/go-upgrader/internal/core/upgrader"
//	)
//
//	ident, _ := identity.Generate(crypto.KeyTypeEd25519)
//	transport, _ := tls.NewTransport(ident, tls.DefaultConfig())
//
//	up, _ := upgrader.New(transport, upgrader.NewConfig())
//
//	conn, _ := net.Dial("tcp", "example.com:4001")
//	uconn, err := up.Upgrade(context.Background(), conn)
//	if err != nil {
//	    // err 携带失败阶段
//	}
//	remoteID := uconn.RemoteIdentity()
package upgrader
