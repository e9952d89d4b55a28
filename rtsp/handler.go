package rtsp

import (
	"strconv"

	log "github.com/sirupsen/logrus"
)

// PublicMethods is the value of the Public header announced on OPTIONS,
// in this fixed order.
const PublicMethods = "OPTIONS, DESCRIBE, SETUP, PLAY, PAUSE, TEARDOWN"

// Fixed session and transport parameters. There is no per-client session
// table; every client is handed the same literals.
const (
	SessionID       = "12345"
	TransportParams = "RTP/AVP;unicast;client_port=8000-8001;server_port=9000-9001"
	PlayRange       = "npt=0.000-"
	SDPContentType  = "application/sdp"
)

// sdpBody describes a single H264 video stream. Port 0 and the placeholder
// origin stand in for real media negotiation, which this server does not do.
var sdpBody = []byte("v=0\r\n" +
	"o=- 0 0 IN IP4 127.0.0.1\r\n" +
	"s=RTSP Session\r\n" +
	"c=IN IP4 0.0.0.0\r\n" +
	"t=0 0\r\n" +
	"m=video 0 RTP/AVP 96\r\n" +
	"a=rtpmap:96 H264/90000\r\n")

// SDPBody returns the session description sent on DESCRIBE.
func SDPBody() []byte {
	b := make([]byte, len(sdpBody))
	copy(b, sdpBody)
	return b
}

// Dispatch maps a parsed request to its response. The table is stateless:
// no handler reads request headers or body, none can fail, and nothing
// survives the call.
func Dispatch(req *Request) *Response {
	switch req.Kind {
	case MethodKindOptions:
		res := NewResponse(200, "OK")
		res.Header[HeaderPublic] = PublicMethods
		return res

	case MethodKindDescribe:
		res := NewResponse(200, "OK")
		res.Header[HeaderContentType] = SDPContentType
		res.Header[HeaderContentLength] = strconv.Itoa(len(sdpBody))
		res.Body = SDPBody()
		return res

	case MethodKindSetup:
		res := NewResponse(200, "OK")
		res.Header[HeaderSession] = SessionID
		res.Header[HeaderTransport] = TransportParams
		return res

	case MethodKindPlay:
		res := NewResponse(200, "OK")
		res.Header[HeaderSession] = SessionID
		res.Header[HeaderRange] = PlayRange
		return res

	case MethodKindPause:
		res := NewResponse(200, "OK")
		res.Header[HeaderSession] = SessionID
		return res

	case MethodKindTeardown:
		return NewResponse(200, "OK")
	}

	log.Debugf("unsupported method %q", req.Method)
	return NewResponse(501, "Not Implemented")
}
