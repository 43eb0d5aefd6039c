package network

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/iridum-cli/iridum/log"
	"github.com/puzpuzpuz/xsync/v3"
	utls "github.com/refraction-networking/utls"
	"golang.org/x/net/http2"
)

const dialTimeout = 30 * time.Second

// errNegotiatedHTTP1 reports a connection on which the server chose http/1.1 over h2.
var errNegotiatedHTTP1 = errors.New("server negotiated http/1.1")

// fingerprintTransport dials once with a Chrome ClientHello and speaks the
// protocol the server picked through ALPN. A connection negotiated as
// http/1.1 is handed to the HTTP/1.1 transport instead of being dialed again.
type fingerprintTransport struct {
	h2 *http2.Transport
	h1 *http.Transport

	// roots overrides the system pool when set.
	roots *x509.CertPool

	// handoff holds http/1.1 connections dialed by the h2 transport, by address.
	handoff *xsync.MapOf[string, net.Conn]
	// http1 remembers hosts that answered with http/1.1.
	http1 *xsync.MapOf[string, bool]
}

func newFingerprintTransport() *fingerprintTransport {
	t := &fingerprintTransport{
		handoff: xsync.NewMapOf[string, net.Conn](),
		http1:   xsync.NewMapOf[string, bool](),
	}

	t.h2 = &http2.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string, _ *tls.Config) (net.Conn, error) {
			conn, protocol, err := t.dial(ctx, network, addr)
			if err != nil {
				return nil, err
			}
			if protocol != http2.NextProtoTLS {
				if previous, loaded := t.handoff.LoadAndStore(addr, conn); loaded {
					previous.Close()
				}
				return nil, errNegotiatedHTTP1
			}
			return conn, nil
		},
	}

	t.h1 = &http.Transport{
		DialTLSContext: func(ctx context.Context, network, addr string) (net.Conn, error) {
			if conn, ok := t.handoff.LoadAndDelete(addr); ok {
				return conn, nil
			}
			conn, _, err := t.dial(ctx, network, addr)
			return conn, err
		},
	}

	return t
}

func (t *fingerprintTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	if req.URL.Scheme != "https" {
		return t.h1.RoundTrip(req)
	}

	if known, _ := t.http1.Load(req.URL.Host); known {
		return t.h1.RoundTrip(req)
	}

	resp, err := t.h2.RoundTrip(req)
	if !errors.Is(err, errNegotiatedHTTP1) {
		return resp, err
	}

	log.Debugf("%s speaks http/1.1", req.URL.Host)
	t.http1.Store(req.URL.Host, true)
	return t.h1.RoundTrip(req)
}

func (t *fingerprintTransport) CloseIdleConnections() {
	t.h2.CloseIdleConnections()
	t.h1.CloseIdleConnections()
	t.handoff.Range(func(addr string, conn net.Conn) bool {
		t.handoff.Delete(addr)
		conn.Close()
		return true
	})
}

// dial opens a TLS connection presenting Chrome's fingerprint and returns the negotiated protocol.
func (t *fingerprintTransport) dial(ctx context.Context, network, addr string) (net.Conn, string, error) {
	host, _, err := net.SplitHostPort(addr)
	if err != nil {
		host = addr
	}

	dialer := &net.Dialer{Timeout: dialTimeout}
	conn, err := dialer.DialContext(ctx, network, addr)
	if err != nil {
		return nil, "", err
	}

	tlsConn := utls.UClient(conn, &utls.Config{
		ServerName: host,
		RootCAs:    t.roots,
		MinVersion: tls.VersionTLS12,
	}, utls.HelloChrome_120)

	if err := tlsConn.HandshakeContext(ctx); err != nil {
		conn.Close()
		return nil, "", fmt.Errorf("tls handshake: %w", err)
	}

	return tlsConn, tlsConn.ConnectionState().NegotiatedProtocol, nil
}
