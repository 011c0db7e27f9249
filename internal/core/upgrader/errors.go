package upgrader

import (
	"errors"
	"fmt"
)

var (
	// ErrNilTransport 安全传输为空
	ErrNilTransport = errors.New("upgrader: security transport is nil")

	// ErrNilConn 连接为空
	ErrNilConn = errors.New("upgrader: connection is nil")
)

// Stage 升级流程的阶段标记
type Stage string

const (
	// StageConnect 底层连接建立
	StageConnect Stage = "connect"

	// StageNegotiateSecurity 明文连接上的安全协议协商
	StageNegotiateSecurity Stage = "negotiate-security"

	// StageHandshake 安全握手
	StageHandshake Stage = "handshake"

	// StageNegotiateMuxer 加密信道内的多路复用器协商
	StageNegotiateMuxer Stage = "negotiate-muxer"
)

// StageError 携带失败阶段的升级错误
//
// 底层错误原样透传，errors.Is/As 可穿透到具体原因
//（如 multistream.ErrNotAvailable）。
type StageError struct {
	Stage Stage
	Err   error
}

// Error 实现 error 接口
func (e *StageError) Error() string {
	return fmt.Sprintf("upgrade %s: %v", e.Stage, e.Err)
}

// Unwrap 返回底层错误
func (e *StageError) Unwrap() error {
	return e.Err
}

// stageErr 构造阶段错误
func stageErr(stage Stage, err error) error {
	return &StageError{Stage: stage, Err: err}
}
