package multistream

import (
	"fmt"
	"io"

	"github.com/dep2p/go-upgrader/internal/util/logger"
	"github.com/dep2p/go-upgrader/pkg/types"
)

var log = logger.Logger("multistream")

const (
	// ProtocolHeader 协商协议版本头
	ProtocolHeader = "/multistream/1.0.0"

	// naToken 对端拒绝提议时的固定响应
	naToken = "na"
)

// ============================================================================
//                              协商状态机
// ============================================================================

// sessionState 协商会话状态
type sessionState int

const (
	stateStart sessionState = iota
	stateHeaderSent
	stateHeaderConfirmed
	stateProposalSent
	stateNegotiated
	stateNotAvailable
	stateFailed
)

// String 返回状态名称
func (s sessionState) String() string {
	switch s {
	case stateStart:
		return "Start"
	case stateHeaderSent:
		return "HeaderSent"
	case stateHeaderConfirmed:
		return "HeaderConfirmed"
	case stateProposalSent:
		return "ProposalSent"
	case stateNegotiated:
		return "Negotiated"
	case stateNotAvailable:
		return "NotAvailable"
	case stateFailed:
		return "Failed"
	default:
		return "Unknown"
	}
}

// session 单次协商会话
//
// 会话独占流直到协商结束，结束后即废弃；
// 同一个会话不可复用。
type session struct {
	rw    io.ReadWriter
	state sessionState
}

// SelectProtocol 作为发起方在流上协商一个子协议
//
// 流程：发送协议头 → 等待对端回显 → 发送提议 → 等待裁决。
// 对端回显提议即协商成功；回复 na 返回 ErrNotAvailable
// （流由调用方处置）；其它响应（包括协议列表）按协议违规
// 处理。
func SelectProtocol(rw io.ReadWriter, proto types.ProtocolID) (types.ProtocolID, error) {
	s := &session{rw: rw, state: stateStart}

	if err := s.sendHeader(); err != nil {
		return "", err
	}
	if err := s.confirmHeader(); err != nil {
		return "", err
	}
	if err := s.sendProposal(proto); err != nil {
		return "", err
	}
	return s.readVerdict(proto)
}

// sendHeader Start → HeaderSent
func (s *session) sendHeader() error {
	if err := writeFrame(s.rw, ProtocolHeader); err != nil {
		s.state = stateFailed
		return err
	}
	s.state = stateHeaderSent
	return nil
}

// confirmHeader HeaderSent → HeaderConfirmed
//
// 对端必须逐字回显协议头，否则双方说的不是同一种
// 协商协议，继续没有意义。
func (s *session) confirmHeader() error {
	echo, err := readFrame(s.rw)
	if err != nil {
		s.state = stateFailed
		return err
	}
	if echo != ProtocolHeader {
		s.state = stateFailed
		return fmt.Errorf("%w: got %q", ErrHeaderMismatch, echo)
	}
	s.state = stateHeaderConfirmed
	return nil
}

// sendProposal HeaderConfirmed → ProposalSent
func (s *session) sendProposal(proto types.ProtocolID) error {
	if err := writeFrame(s.rw, string(proto)); err != nil {
		s.state = stateFailed
		return err
	}
	s.state = stateProposalSent
	return nil
}

// readVerdict ProposalSent → {Negotiated, NotAvailable, Failed}
func (s *session) readVerdict(proto types.ProtocolID) (types.ProtocolID, error) {
	verdict, err := readFrame(s.rw)
	if err != nil {
		s.state = stateFailed
		return "", err
	}

	switch verdict {
	case string(proto):
		s.state = stateNegotiated
		log.Debug("协议协商成功", "protocol", proto)
		return proto, nil

	case naToken:
		s.state = stateNotAvailable
		log.Debug("对端不支持协议", "protocol", proto)
		return "", fmt.Errorf("%w: %s", ErrNotAvailable, proto)

	default:
		// 协议列表等多提议语义不在发起方实现范围内
		s.state = stateFailed
		return "", fmt.Errorf("%w: proposed %q, got %q", ErrUnexpectedResponse, proto, verdict)
	}
}
