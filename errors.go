package upgrader

import "errors"

var (
	// ErrNilPrivateKey 私钥为空
	ErrNilPrivateKey = errors.New("go-upgrader: private key is nil")

	// ErrEmptyProtocol 协议标识符为空
	ErrEmptyProtocol = errors.New("go-upgrader: protocol ID is empty")

	// ErrClosed 发起方已关闭
	ErrClosed = errors.New("go-upgrader: initiator is closed")
)
