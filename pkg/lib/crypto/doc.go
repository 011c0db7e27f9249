// Package crypto 提供节点身份密钥抽象
//
// 支持三种长期身份密钥变体，每种实现统一的
// PublicKey/PrivateKey 接口：
//
//   - Ed25519:   规范编码为原始 32 字节公钥（默认推荐）
//   - Secp256k1: 规范编码为 33 字节压缩点（区块链兼容）
//   - ECDSA:     任意命名曲线（P-256/P-384/P-521），
//     规范编码为 DER SubjectPublicKeyInfo
//
// 公钥跨实现传输时使用 marshal.go 定义的
// [Type][Length][Data] 记录格式，类型值与 libp2p
// 的 KeyType 枚举对齐。
//
// 所有验证路径对畸形输入 fail-closed：返回 false 或
// 类型化错误，绝不 panic。
package crypto
