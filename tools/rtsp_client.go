package tools

import (
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"

	"rtspd/rtsp"
	"rtspd/transport"
)

var smokeMethods = []string{
	rtsp.MethodOptions,
	rtsp.MethodDescribe,
	rtsp.MethodSetup,
	rtsp.MethodPlay,
	rtsp.MethodPause,
	rtsp.MethodTeardown,
}

// SmokeTest walks the full control sequence against a running server and
// fails on the first non-200 answer. Meant for manual checks against a
// deployed instance.
func SmokeTest(addr string) error {
	trans, err := transport.DialTCP(addr, 10*time.Second)
	if err != nil {
		return err
	}
	defer func() {
		if err := trans.Close(); err != nil {
			log.Debug("transport close err:", err)
		}
	}()

	uri := fmt.Sprintf("rtsp://%s/test", addr)
	for cseq, method := range smokeMethods {
		res, err := sendRequest(trans, method, uri, cseq+1)
		if err != nil {
			return fmt.Errorf("%s: %w", method, err)
		}
		log.Infof("%s %s -> %d %s", method, uri, res.StatusCode, res.Status)
		if res.StatusCode != 200 {
			return fmt.Errorf("%s: got %d %s", method, res.StatusCode, res.Status)
		}
		if method == rtsp.MethodDescribe && len(res.Body) == 0 {
			return fmt.Errorf("DESCRIBE: empty session description")
		}
	}
	return nil
}

func sendRequest(trans transport.Transporter, method, uri string, cseq int) (*rtsp.Response, error) {
	raw := fmt.Sprintf("%s %s %s\r\n%s: %d\r\nUser-Agent: rtspd-smoke\r\n\r\n",
		method, uri, rtsp.ProtoLabel, rtsp.HeaderCSeq, cseq)

	data, err := trans.Send([]byte(raw))
	if err != nil {
		return nil, err
	}
	return rtsp.ParseResponse(data)
}
