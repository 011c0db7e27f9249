// Package identity 提供节点长期身份
//
// 身份模块负责：
//   - 长期密钥对生成或从配置载入
//   - NodeID 派生（公钥记录的 SHA256 哈希）
//   - 为证书身份扩展提供签名能力
//
// Identity 在进程启动时创建一次，此后不可变。
package identity
