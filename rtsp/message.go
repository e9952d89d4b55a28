package rtsp

import (
	"bytes"
	"fmt"
	"strconv"
	"strings"
)

const (
	// ProtoLabel is the protocol token emitted on every response status line.
	ProtoLabel = "RTSP/1.0"
)

const (
	MethodOptions  = "OPTIONS"
	MethodDescribe = "DESCRIBE"
	MethodSetup    = "SETUP"
	MethodPlay     = "PLAY"
	MethodPause    = "PAUSE"
	MethodTeardown = "TEARDOWN"
)

const (
	HeaderContentLength = "Content-Length"
	HeaderContentType   = "Content-Type"
	HeaderPublic        = "Public"
	HeaderSession       = "Session"
	HeaderTransport     = "Transport"
	HeaderRange         = "Range"
	HeaderCSeq          = "CSeq"
)

// MethodKind is the enumerated form of a request method token.
type MethodKind int

const (
	MethodKindUnknown MethodKind = iota
	MethodKindOptions
	MethodKindDescribe
	MethodKindSetup
	MethodKindPlay
	MethodKindPause
	MethodKindTeardown
)

func (k MethodKind) String() string {
	switch k {
	case MethodKindOptions:
		return MethodOptions
	case MethodKindDescribe:
		return MethodDescribe
	case MethodKindSetup:
		return MethodSetup
	case MethodKindPlay:
		return MethodPlay
	case MethodKindPause:
		return MethodPause
	case MethodKindTeardown:
		return MethodTeardown
	}
	return "UNKNOWN"
}

// MethodKindOf maps a literal method token to its kind. The match is
// case-sensitive; anything outside the six known tokens is unknown.
func MethodKindOf(method string) MethodKind {
	switch method {
	case MethodOptions:
		return MethodKindOptions
	case MethodDescribe:
		return MethodKindDescribe
	case MethodSetup:
		return MethodKindSetup
	case MethodPlay:
		return MethodKindPlay
	case MethodPause:
		return MethodKindPause
	case MethodTeardown:
		return MethodKindTeardown
	}
	return MethodKindUnknown
}

// Request is one parsed client message. It lives for a single
// request/response exchange and is never shared across connections.
type Request struct {
	Method string
	Kind   MethodKind
	URI    string
	Proto  string
	Header map[string]string
	Body   []byte
}

// ParseRequest parses one complete RTSP message from a raw read buffer.
//
// The request line must split on single spaces into at least method, URI
// and version. Header lines lacking the literal ": " separator are skipped
// rather than rejected; duplicate keys are last-write-wins. A positive
// Content-Length pulls in the next CRLF segment as the body, unchecked
// against the declared length.
func ParseRequest(raw []byte) (*Request, error) {
	lines := strings.Split(string(raw), "\r\n")

	parts := strings.Split(lines[0], " ")
	if len(parts) < 3 {
		return nil, newParseError(ReasonMalformedRequestLine, lines[0])
	}

	req := &Request{
		Method: parts[0],
		Kind:   MethodKindOf(parts[0]),
		URI:    parts[1],
		Proto:  parts[2],
		Header: make(map[string]string),
	}

	blank := len(lines)
	for i := 1; i < len(lines); i++ {
		if lines[i] == "" {
			blank = i
			break
		}
		idx := strings.Index(lines[i], ": ")
		if idx < 0 {
			// lenient: not a header line, skip it
			continue
		}
		req.Header[lines[i][:idx]] = lines[i][idx+2:]
	}

	if v, ok := req.Header[HeaderContentLength]; ok {
		length, err := strconv.Atoi(v)
		if err != nil || length < 0 {
			return nil, newParseError(ReasonInvalidContentLength, v)
		}
		if length > 0 && blank+1 < len(lines) {
			req.Body = []byte(lines[blank+1])
		}
	}

	return req, nil
}

// Response is one outgoing message. Header and Body may be mutated freely
// until Bytes is called.
type Response struct {
	StatusCode int
	Status     string
	Header     map[string]string
	Body       []byte
}

func NewResponse(code int, status string) *Response {
	return &Response{
		StatusCode: code,
		Status:     status,
		Header:     make(map[string]string),
	}
}

// Bytes serializes the response into its wire form. Header emission order
// follows map iteration and is not specified.
func (r *Response) Bytes() []byte {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "%s %d %s\r\n", ProtoLabel, r.StatusCode, r.Status)
	for k, v := range r.Header {
		fmt.Fprintf(&buf, "%s: %s\r\n", k, v)
	}
	buf.WriteString("\r\n")
	if len(r.Body) > 0 {
		buf.Write(r.Body)
	}
	return buf.Bytes()
}

// ParseResponse parses a serialized response, used by the smoke client and
// for status-line round-trip checks. Framing mirrors ParseRequest.
func ParseResponse(raw []byte) (*Response, error) {
	lines := strings.Split(string(raw), "\r\n")

	parts := strings.SplitN(lines[0], " ", 3)
	if len(parts) < 3 {
		return nil, newParseError(ReasonMalformedStatusLine, lines[0])
	}
	code, err := strconv.Atoi(parts[1])
	if err != nil {
		return nil, newParseError(ReasonMalformedStatusLine, lines[0])
	}

	res := &Response{
		StatusCode: code,
		Status:     parts[2],
		Header:     make(map[string]string),
	}

	blank := len(lines)
	for i := 1; i < len(lines); i++ {
		if lines[i] == "" {
			blank = i
			break
		}
		idx := strings.Index(lines[i], ": ")
		if idx < 0 {
			continue
		}
		res.Header[lines[i][:idx]] = lines[i][idx+2:]
	}

	if blank+1 < len(lines) {
		body := strings.Join(lines[blank+1:], "\r\n")
		if body != "" {
			res.Body = []byte(body)
		}
	}

	return res, nil
}
