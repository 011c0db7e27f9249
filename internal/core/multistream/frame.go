package multistream

import (
	"errors"
	"fmt"
	"io"
	"net"
	"unicode/utf8"

	"github.com/multiformats/go-varint"
)

// maxFrameSize 单帧载荷上限（含换行符）
//
// 协商帧只承载协议标识符，远小于此值；上限用于
// 在读取载荷前拒绝恶意的超长长度声明。
const maxFrameSize = 1024

// delimiter 帧定界符
const delimiter = '\n'

// writeFrame 写出一帧
//
// 线格式：varint(len(payload)+1) || payload || '\n'，
// 长度计入定界符。整帧一次写出，避免半帧落在对端。
func writeFrame(w io.Writer, payload string) error {
	length := uint64(len(payload) + 1)

	buf := varint.ToUvarint(length)
	buf = append(buf, payload...)
	buf = append(buf, delimiter)

	if _, err := w.Write(buf); err != nil {
		return fmt.Errorf("write frame: %w", err)
	}
	return nil
}

// readFrame 读入一帧并返回去掉定界符的载荷
//
// 帧来自不可信对端，以下情况都返回 ErrMalformedFrame：
//   - varint 非法（溢出、非最小编码）或在中途断流
//   - 长度为零或超过 maxFrameSize
//   - 载荷在读满前断流
//   - 末字节不是换行符
//   - 载荷不是合法 UTF-8
//
// 截止时间到期不算畸形帧：沉默的对端是 I/O 超时，
// 原样透传供调用方按传输错误处理。
func readFrame(r io.Reader) (string, error) {
	length, err := varint.ReadUvarint(&byteReader{r: r})
	if err != nil {
		return "", readErr("read length", err)
	}
	if length == 0 {
		return "", fmt.Errorf("%w: zero-length frame", ErrMalformedFrame)
	}
	if length > maxFrameSize {
		return "", fmt.Errorf("%w: frame of %d bytes exceeds limit", ErrMalformedFrame, length)
	}

	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", readErr("read payload", err)
	}

	if buf[length-1] != delimiter {
		return "", fmt.Errorf("%w: missing delimiter", ErrMalformedFrame)
	}

	payload := buf[:length-1]
	if !utf8.Valid(payload) {
		return "", fmt.Errorf("%w: payload is not valid UTF-8", ErrMalformedFrame)
	}

	return string(payload), nil
}

// readErr 区分超时与畸形输入
//
// 截止时间到期透传底层错误，保留 net.Error 类型；
// 其余读取失败（EOF、断流）归为畸形帧。
func readErr(op string, err error) error {
	var nerr net.Error
	if errors.As(err, &nerr) && nerr.Timeout() {
		return fmt.Errorf("%s: %w", op, err)
	}
	return fmt.Errorf("%w: %s: %v", ErrMalformedFrame, op, err)
}

// byteReader 把 io.Reader 适配为 varint 需要的 io.ByteReader
//
// 逐字节读取，绝不越过 varint 末尾预读载荷。
type byteReader struct {
	r io.Reader
}

func (br *byteReader) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(br.r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}
