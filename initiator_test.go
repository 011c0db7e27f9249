package upgrader

import (
	"context"
	stdtls "crypto/tls"
	"crypto/x509"
	"errors"
	"io"
	"net"
	"testing"
	"time"

	"github.com/multiformats/go-varint"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/fx"

	"github.com/dep2p/go-upgrader/internal/core/identity"
	"github.com/dep2p/go-upgrader/internal/core/multistream"
	sectls "github.com/dep2p/go-upgrader/internal/core/security/tls"
	coreupgrader "github.com/dep2p/go-upgrader/internal/core/upgrader"
	"github.com/dep2p/go-upgrader/pkg/lib/crypto"
	"github.com/dep2p/go-upgrader/pkg/types"
)

// ============================================================================
//                              测试响应方
// ============================================================================

// testPeer 端到端测试里的对端节点
//
// 持有自己的长期身份，按响应方语义处理完整升级流程：
// 明文协商回显、TLS 握手、密文协商回显。
type testPeer struct {
	ident *identity.Identity
	conf  *stdtls.Config
}

func newTestPeer(t *testing.T) *testPeer {
	t.Helper()

	ident, err := identity.Generate(crypto.KeyTypeEd25519)
	require.NoError(t, err)

	cert, err := sectls.GenerateCertificate(ident)
	require.NoError(t, err)

	return &testPeer{
		ident: ident,
		conf: &stdtls.Config{
			MinVersion:   stdtls.VersionTLS13,
			Certificates: []stdtls.Certificate{*cert},
			NextProtos:   []string{"libp2p"},
			ClientAuth:   stdtls.RequireAnyClientCert,
			//nolint:gosec // G402: 信任判定由 VerifyPeerCertificate 承担
			InsecureSkipVerify: true,
			VerifyPeerCertificate: func(rawCerts [][]byte, _ [][]*x509.Certificate) error {
				_, err := sectls.VerifyPeerCertificateChain(rawCerts)
				return err
			},
		},
	}
}

// echo 按响应方语义回显一轮协商
func (p *testPeer) echo(rw io.ReadWriter) error {
	header, err := readPeerFrame(rw)
	if err != nil {
		return err
	}
	if header != multistream.ProtocolHeader {
		return errors.New("unexpected header: " + header)
	}
	if err := writePeerFrame(rw, multistream.ProtocolHeader); err != nil {
		return err
	}

	proposal, err := readPeerFrame(rw)
	if err != nil {
		return err
	}
	return writePeerFrame(rw, proposal)
}

// serve 处理一条入站连接的完整升级流程
func (p *testPeer) serve(conn net.Conn) error {
	defer conn.Close()

	if err := p.echo(conn); err != nil {
		return err
	}

	tlsConn := stdtls.Server(conn, p.conf)
	defer tlsConn.Close()
	if err := tlsConn.Handshake(); err != nil {
		return err
	}

	if err := p.echo(tlsConn); err != nil {
		return err
	}

	// 等发起方关闭
	buf := make([]byte, 16)
	if _, err := tlsConn.Read(buf); !errors.Is(err, io.EOF) {
		return err
	}
	return nil
}

func readPeerFrame(r io.Reader) (string, error) {
	length, err := varint.ReadUvarint(&peerByteReader{r: r})
	if err != nil {
		return "", err
	}
	buf := make([]byte, length)
	if _, err := io.ReadFull(r, buf); err != nil {
		return "", err
	}
	return string(buf[:length-1]), nil
}

func writePeerFrame(w io.Writer, payload string) error {
	buf := varint.ToUvarint(uint64(len(payload) + 1))
	buf = append(buf, payload...)
	buf = append(buf, '\n')
	_, err := w.Write(buf)
	return err
}

type peerByteReader struct {
	r io.Reader
}

func (br *peerByteReader) ReadByte() (byte, error) {
	var b [1]byte
	if _, err := io.ReadFull(br.r, b[:]); err != nil {
		return 0, err
	}
	return b[0], nil
}

// ============================================================================
//                              测试用例
// ============================================================================

func TestInitiatorDial(t *testing.T) {
	peer := newTestPeer(t)

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	defer ln.Close()

	serveErr := make(chan error, 1)
	go func() {
		conn, err := ln.Accept()
		if err != nil {
			serveErr <- err
			return
		}
		serveErr <- peer.serve(conn)
	}()

	ini, err := New()
	require.NoError(t, err)
	defer ini.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := ini.Dial(ctx, ln.Addr().String())
	require.NoError(t, err)

	assert.Equal(t, ini.ID(), conn.LocalIdentity())
	assert.Equal(t, peer.ident.ID(), conn.RemoteIdentity())
	assert.True(t, conn.RemotePublicKey().Equals(peer.ident.PublicKey()))
	assert.Equal(t, sectls.Protocol, conn.Security())
	assert.Equal(t, coreupgrader.DefaultMuxerProtocol, conn.Muxer())

	require.NoError(t, conn.Close())
	require.NoError(t, <-serveErr)
}

func TestInitiatorUpgradeOverPipe(t *testing.T) {
	peer := newTestPeer(t)

	ini, err := New(WithKeyType(crypto.KeyTypeSecp256k1))
	require.NoError(t, err)
	defer ini.Close()

	clientSide, serverSide := net.Pipe()
	serveErr := make(chan error, 1)
	go func() {
		serveErr <- peer.serve(serverSide)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := ini.Upgrade(ctx, clientSide)
	require.NoError(t, err)
	assert.Equal(t, crypto.KeyTypeSecp256k1, conn.LocalPublicKey().Type())
	assert.Equal(t, peer.ident.ID(), conn.RemoteIdentity())

	require.NoError(t, conn.Close())
	require.NoError(t, <-serveErr)
}

func TestInitiatorWithPrivateKey(t *testing.T) {
	priv, pub, err := crypto.GenerateKeyPair(crypto.KeyTypeEd25519)
	require.NoError(t, err)

	ini, err := New(WithPrivateKey(priv))
	require.NoError(t, err)
	defer ini.Close()

	// 身份由提供的私钥决定
	assert.True(t, ini.PublicKey().Equals(pub))

	expectedID, err := identity.DeriveNodeID(pub)
	require.NoError(t, err)
	assert.Equal(t, expectedID, ini.ID())
}

func TestInitiatorOptionValidation(t *testing.T) {
	_, err := New(WithPrivateKey(nil))
	assert.ErrorIs(t, err, ErrNilPrivateKey)

	_, err = New(WithMuxerProtocol(""))
	assert.ErrorIs(t, err, ErrEmptyProtocol)
}

func TestInitiatorCustomMuxerProtocol(t *testing.T) {
	peer := newTestPeer(t)

	ini, err := New(WithMuxerProtocol("/mplex/6.7.0"))
	require.NoError(t, err)
	defer ini.Close()

	clientSide, serverSide := net.Pipe()
	go func() {
		_ = peer.serve(serverSide)
	}()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	conn, err := ini.Upgrade(ctx, clientSide)
	require.NoError(t, err)
	defer conn.Close()

	assert.Equal(t, types.ProtocolID("/mplex/6.7.0"), conn.Muxer())
}

func TestInitiatorDialConnectFailure(t *testing.T) {
	ini, err := New()
	require.NoError(t, err)
	defer ini.Close()

	// 先占端口再关闭，确保无人监听
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := ln.Addr().String()
	require.NoError(t, ln.Close())

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	_, err = ini.Dial(ctx, addr)
	require.Error(t, err)

	var se *coreupgrader.StageError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, coreupgrader.StageConnect, se.Stage)
}

func TestInitiatorStartFailureStopsApp(t *testing.T) {
	// 启动失败时已启动的钩子必须被回收
	var started, stopped bool

	_, err := New(WithFxOption(
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					started = true
					return nil
				},
				OnStop: func(context.Context) error {
					stopped = true
					return nil
				},
			})
		}),
		fx.Invoke(func(lc fx.Lifecycle) {
			lc.Append(fx.Hook{
				OnStart: func(context.Context) error {
					return errors.New("boom")
				},
			})
		}),
	))

	require.Error(t, err)
	assert.ErrorContains(t, err, "boom")
	assert.True(t, started, "第一个钩子应已启动")
	assert.True(t, stopped, "启动失败后第一个钩子应被停止")
}

func TestInitiatorClose(t *testing.T) {
	ini, err := New()
	require.NoError(t, err)

	require.NoError(t, ini.Close())
	require.NoError(t, ini.Close(), "重复关闭应是幂等的")

	_, err = ini.Dial(context.Background(), "127.0.0.1:1")
	assert.ErrorIs(t, err, ErrClosed)
}
