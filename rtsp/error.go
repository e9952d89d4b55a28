package rtsp

import (
	"errors"
	"fmt"
)

var (
	ErrMalformedRequestLine  = errors.New("rtsp: malformed request line")
	ErrMalformedStatusLine  = errors.New("rtsp: malformed status line")
	ErrInvalidContentLength = errors.New("rtsp: invalid Content-Length")
)

// ParseReason identifies which framing rule a message violated.
type ParseReason int

const (
	ReasonMalformedRequestLine ParseReason = iota
	ReasonMalformedStatusLine
	ReasonInvalidContentLength
)

// ParseError is returned by ParseRequest and ParseResponse. It is recovered
// locally by the connection loop: logged, then the next read is attempted.
type ParseError struct {
	Reason ParseReason
	Detail string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("%s: %q", e.Unwrap().Error(), e.Detail)
}

func (e *ParseError) Unwrap() error {
	switch e.Reason {
	case ReasonMalformedStatusLine:
		return ErrMalformedStatusLine
	case ReasonInvalidContentLength:
		return ErrInvalidContentLength
	}
	return ErrMalformedRequestLine
}

func newParseError(reason ParseReason, detail string) *ParseError {
	return &ParseError{Reason: reason, Detail: detail}
}
