package http1

import "errors"

// Parse and transport failures surfaced by the wire reader. Request-level
// malformations map to a 400 at the connection layer; ErrConnectionClosed
// means the peer went away and nothing can be sent back.
var (
	ErrMalformedRequestLine   = errors.New("http1: malformed request line")
	ErrMalformedHeader        = errors.New("http1: malformed header")
	ErrMalformedContentLength = errors.New("http1: malformed content length")
	ErrRequestTooLarge        = errors.New("http1: request header too large")
	ErrBodyTooLarge           = errors.New("http1: request body too large")
	ErrConnectionClosed       = errors.New("http1: connection closed")
)
