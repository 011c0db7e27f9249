// Package types 定义 go-upgrader 的基础类型
//
// 这是整个模块的最底层包，不依赖任何其他内部包。
// 所有类型都是纯值类型，用于在各模块间传递数据：
//
//   - ids.go      - NodeID（节点标识，由公钥派生）
//   - protocol.go - ProtocolID（子协议标识符）
package types
