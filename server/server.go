package server

import (
	"fmt"
	"io"
	"net"
	"sync"
	"time"

	"rtspd/rtsp"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Server owns the RTSP listening socket. Connections are served strictly
// one at a time: an accepted client is driven to completion before the
// next accept, so a silent client holds the accept loop.
type Server struct {
	addr    string
	bufSize int
	monitor *Monitor

	mu      sync.Mutex
	ln      net.Listener
	stopped bool
}

func New(port, bufSize int, monitor *Monitor) *Server {
	return &Server{
		addr:    fmt.Sprintf("0.0.0.0:%d", port),
		bufSize: bufSize,
		monitor: monitor,
	}
}

// Start binds the listener and blocks in the accept loop until Stop is
// called or accept fails.
func (s *Server) Start() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if s.stopped {
		s.mu.Unlock()
		ln.Close()
		return nil
	}
	s.ln = ln
	s.mu.Unlock()

	log.Infof("rtsp server listening on %s", ln.Addr())

	for {
		conn, err := ln.Accept()
		if err != nil {
			if s.isStopped() {
				return nil
			}
			return err
		}
		s.serveConn(conn)
	}
}

// Addr reports the bound listener address, nil before Start.
func (s *Server) Addr() net.Addr {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Stop closes the listening socket and makes Start return. Safe to call
// more than once and before Start.
func (s *Server) Stop() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.stopped {
		return
	}
	s.stopped = true
	if s.ln != nil {
		if err := s.ln.Close(); err != nil {
			log.WithError(err).Warn("closing rtsp listener")
		}
	}
}

func (s *Server) isStopped() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.stopped
}

// serveConn runs the per-connection read/parse/dispatch/write loop.
//
// Each read is assumed to hold one complete message; nothing is buffered
// across reads. A parse failure is logged and the loop keeps the
// connection, sending no reply. The socket is closed on every exit path.
func (s *Server) serveConn(conn net.Conn) {
	defer conn.Close()

	id := uuid.NewString()
	remote := conn.RemoteAddr().String()
	clog := log.WithFields(log.Fields{"conn": id, "remote": remote})

	s.monitor.ConnAccepted()
	clog.Info("client connected")

	buf := make([]byte, s.bufSize)
	for {
		n, err := conn.Read(buf)
		if err != nil {
			if err != io.EOF {
				clog.WithError(err).Warn("read failed")
			}
			clog.Info("client disconnected")
			return
		}
		if n == 0 {
			clog.Info("client disconnected")
			return
		}

		req, err := rtsp.ParseRequest(buf[:n])
		if err != nil {
			clog.WithError(err).Warn("discarding unparseable message")
			s.monitor.RecordParseFailure()
			continue
		}

		res := rtsp.Dispatch(req)
		clog.Debugf("%s %s -> %d %s", req.Method, req.URI, res.StatusCode, res.Status)
		s.monitor.RecordRequest(Event{
			ConnID: id,
			Remote: remote,
			Method: req.Method,
			URI:    req.URI,
			Status: res.StatusCode,
			Time:   time.Now(),
		})

		if _, err := conn.Write(res.Bytes()); err != nil {
			clog.WithError(err).Error("write failed")
			return
		}
	}
}
