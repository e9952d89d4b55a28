package transport

import (
	"net"
	"time"

	log "github.com/sirupsen/logrus"
)

const readBufferSize = 4096

// TCPTransport is a Transporter over a plain TCP connection. One Send is
// one request written in full followed by one response read; the control
// channel never interleaves.
type TCPTransport struct {
	conn    net.Conn
	timeout time.Duration
}

func DialTCP(addr string, timeout time.Duration) (*TCPTransport, error) {
	conn, err := net.DialTimeout("tcp", addr, timeout)
	if err != nil {
		return nil, err
	}
	log.Debugf("tcp transport connected to %s", addr)
	return &TCPTransport{conn: conn, timeout: timeout}, nil
}

func (t *TCPTransport) Send(payload []byte) ([]byte, error) {
	if t.timeout > 0 {
		t.conn.SetWriteDeadline(time.Now().Add(t.timeout))
	}
	if _, err := t.conn.Write(payload); err != nil {
		return nil, err
	}
	return t.ReadData()
}

func (t *TCPTransport) ReadData() ([]byte, error) {
	if t.timeout > 0 {
		t.conn.SetReadDeadline(time.Now().Add(t.timeout))
	}
	buf := make([]byte, readBufferSize)
	n, err := t.conn.Read(buf)
	if err != nil {
		return nil, err
	}
	return buf[:n], nil
}

func (t *TCPTransport) Close() error {
	return t.conn.Close()
}
