// Package multistream 实现 multistream-select 协议的发起方
//
// 发起方在一条双工流上运行一次协商：先交换协议头确认双方
// 说同一种协商协议，再提议一个子协议并等待对端裁决。
//
// 本实现只发送单个提议，不解析协议列表响应（ls 语义）；
// 收到列表按协议违规处理。同一引擎既用于明文连接上的
// 安全协议协商，也用于加密信道内的多路复用器协商。
package multistream
