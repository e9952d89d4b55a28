package rtsp

import (
	"bytes"
	"errors"
	"testing"
)

func TestMethodKindOf(t *testing.T) {
	cases := []struct {
		token string
		kind  MethodKind
	}{
		{"OPTIONS", MethodKindOptions},
		{"DESCRIBE", MethodKindDescribe},
		{"SETUP", MethodKindSetup},
		{"PLAY", MethodKindPlay},
		{"PAUSE", MethodKindPause},
		{"TEARDOWN", MethodKindTeardown},
		{"ANNOUNCE", MethodKindUnknown},
		{"options", MethodKindUnknown},
		{"GET_PARAMETER", MethodKindUnknown},
	}
	for _, c := range cases {
		if got := MethodKindOf(c.token); got != c.kind {
			t.Errorf("MethodKindOf(%q) = %v, want %v", c.token, got, c.kind)
		}
	}
}

func TestParseRequestLine(t *testing.T) {
	req, err := ParseRequest([]byte("OPTIONS rtsp://example.com/test RTSP/1.0\r\nCSeq: 1\r\n\r\n"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if req.Method != "OPTIONS" || req.Kind != MethodKindOptions {
		t.Errorf("method = %q kind = %v", req.Method, req.Kind)
	}
	if req.URI != "rtsp://example.com/test" {
		t.Errorf("uri = %q", req.URI)
	}
	if req.Proto != "RTSP/1.0" {
		t.Errorf("proto = %q", req.Proto)
	}
	if req.Header[HeaderCSeq] != "1" {
		t.Errorf("CSeq = %q", req.Header[HeaderCSeq])
	}
}

func TestParseRequestMalformedLine(t *testing.T) {
	for _, raw := range []string{"", "NOT_A_VALID_REQUEST\r\n", "OPTIONS rtsp://x\r\n\r\n"} {
		_, err := ParseRequest([]byte(raw))
		if err == nil {
			t.Errorf("ParseRequest(%q): expected error", raw)
			continue
		}
		if !errors.Is(err, ErrMalformedRequestLine) {
			t.Errorf("ParseRequest(%q): err = %v, want ErrMalformedRequestLine", raw, err)
		}
		var perr *ParseError
		if !errors.As(err, &perr) {
			t.Errorf("ParseRequest(%q): err is not a *ParseError", raw)
		}
	}
}

func TestParseRequestSkipsBadHeaderLines(t *testing.T) {
	raw := "PLAY rtsp://example.com/test RTSP/1.0\r\n" +
		"CSeq: 2\r\n" +
		"this line has no separator\r\n" +
		"Session:12345\r\n" +
		"\r\n"
	req, err := ParseRequest([]byte(raw))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if len(req.Header) != 1 || req.Header[HeaderCSeq] != "2" {
		t.Errorf("header = %v, want only CSeq", req.Header)
	}
}

func TestParseRequestDuplicateHeaderLastWins(t *testing.T) {
	raw := "SETUP rtsp://example.com/test RTSP/1.0\r\n" +
		"CSeq: 1\r\n" +
		"CSeq: 7\r\n" +
		"\r\n"
	req, err := ParseRequest([]byte(raw))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if req.Header[HeaderCSeq] != "7" {
		t.Errorf("CSeq = %q, want 7", req.Header[HeaderCSeq])
	}
}

func TestParseRequestBody(t *testing.T) {
	body := "abcdefghijklmnopqrstuvwxyz"
	raw := "DESCRIBE rtsp://example.com/test RTSP/1.0\r\n" +
		"Content-Length: 26\r\n" +
		"\r\n" +
		body
	req, err := ParseRequest([]byte(raw))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if string(req.Body) != body {
		t.Errorf("body = %q, want %q", req.Body, body)
	}
}

func TestParseRequestNoBody(t *testing.T) {
	for _, raw := range []string{
		"PLAY rtsp://example.com/test RTSP/1.0\r\nContent-Length: 0\r\n\r\n",
		"PLAY rtsp://example.com/test RTSP/1.0\r\nCSeq: 1\r\n\r\n",
	} {
		req, err := ParseRequest([]byte(raw))
		if err != nil {
			t.Fatalf("parse error: %v", err)
		}
		if req.Body != nil {
			t.Errorf("ParseRequest(%q): body = %q, want none", raw, req.Body)
		}
	}
}

func TestParseRequestInvalidContentLength(t *testing.T) {
	raw := "DESCRIBE rtsp://example.com/test RTSP/1.0\r\n" +
		"Content-Length: abc\r\n" +
		"\r\n"
	_, err := ParseRequest([]byte(raw))
	if !errors.Is(err, ErrInvalidContentLength) {
		t.Errorf("err = %v, want ErrInvalidContentLength", err)
	}
}

func TestResponseBytesIdempotent(t *testing.T) {
	res := NewResponse(200, "OK")
	res.Header[HeaderSession] = SessionID
	res.Body = []byte("payload")

	first := res.Bytes()
	second := res.Bytes()
	if !bytes.Equal(first, second) {
		t.Errorf("Bytes() not idempotent:\n%q\n%q", first, second)
	}
}

func TestResponseRoundTrip(t *testing.T) {
	res := NewResponse(404, "Not Found")
	res.Header[HeaderCSeq] = "3"

	parsed, err := ParseResponse(res.Bytes())
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}
	if parsed.StatusCode != 404 || parsed.Status != "Not Found" {
		t.Errorf("status = %d %q", parsed.StatusCode, parsed.Status)
	}
	if parsed.Header[HeaderCSeq] != "3" {
		t.Errorf("CSeq = %q", parsed.Header[HeaderCSeq])
	}
}

func TestResponseBytesFraming(t *testing.T) {
	res := NewResponse(200, "OK")
	res.Body = []byte("x")

	b := res.Bytes()
	if !bytes.HasPrefix(b, []byte("RTSP/1.0 200 OK\r\n")) {
		t.Errorf("status line missing: %q", b)
	}
	if !bytes.HasSuffix(b, []byte("\r\n\r\nx")) {
		t.Errorf("header block not terminated before body: %q", b)
	}
}
