package multistream

import (
	"bytes"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFrameRoundTrip(t *testing.T) {
	payloads := []string{
		"/multistream/1.0.0",
		"/tls/1.0.0",
		"/yamux/1.0.0",
		"na",
		"",
		"带中文的协议名/1.0.0",
	}

	for _, payload := range payloads {
		t.Run(payload, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, writeFrame(&buf, payload))

			got, err := readFrame(&buf)
			require.NoError(t, err)
			assert.Equal(t, payload, got)
			assert.Zero(t, buf.Len(), "帧后不应有剩余字节")
		})
	}
}

func TestFrameWireFormat(t *testing.T) {
	// 长度前缀计入定界符
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, "na"))
	assert.Equal(t, []byte{0x03, 'n', 'a', '\n'}, buf.Bytes())
}

func TestReadFrameMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input []byte
	}{
		{"空输入", nil},
		{"零长度帧", []byte{0x00}},
		{"长度后断流", []byte{0x05}},
		{"载荷截断", []byte{0x05, 'a', 'b'}},
		{"缺定界符", []byte{0x03, 'a', 'b', 'c'}},
		{"非法 UTF-8", []byte{0x03, 0xff, 0xfe, '\n'}},
		{"非最小 varint", []byte{0x83, 0x00, 'n', 'a', '\n'}},
		{"超长声明", []byte{0x80, 0x40}}, // 8192 > maxFrameSize
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readFrame(bytes.NewReader(tt.input))
			assert.ErrorIs(t, err, ErrMalformedFrame)
		})
	}
}

// timeoutReader 先吐出预置字节，随后每次读取都返回截止时间错误
type timeoutReader struct {
	data []byte
}

func (tr *timeoutReader) Read(p []byte) (int, error) {
	if len(tr.data) == 0 {
		return 0, os.ErrDeadlineExceeded
	}
	n := copy(p, tr.data)
	tr.data = tr.data[n:]
	return n, nil
}

func TestReadFrameTimeoutPassthrough(t *testing.T) {
	// 截止时间到期是传输超时，不得归为畸形帧
	tests := []struct {
		name string
		data []byte
	}{
		{"长度前超时", nil},
		{"载荷中超时", []byte{0x05, 'a', 'b'}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := readFrame(&timeoutReader{data: tt.data})
			require.Error(t, err)
			assert.ErrorIs(t, err, os.ErrDeadlineExceeded)
			assert.NotErrorIs(t, err, ErrMalformedFrame)
		})
	}

	// 同样字节在断流时仍是畸形帧
	_, err := readFrame(bytes.NewReader([]byte{0x05, 'a', 'b'}))
	assert.ErrorIs(t, err, ErrMalformedFrame)
}

func TestReadFrameAtLimit(t *testing.T) {
	// 恰好 maxFrameSize 的帧可以通过
	payload := string(bytes.Repeat([]byte{'a'}, maxFrameSize-1))
	var buf bytes.Buffer
	require.NoError(t, writeFrame(&buf, payload))

	got, err := readFrame(&buf)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	// 超出一字节即被拒绝
	var over bytes.Buffer
	require.NoError(t, writeFrame(&over, payload+"a"))
	_, err = readFrame(&over)
	assert.ErrorIs(t, err, ErrMalformedFrame)
}
