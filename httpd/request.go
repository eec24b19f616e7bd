package httpd

import (
	"github.com/gabfec/go-http-server/httpd/internal/http1"
)

// Method is a request method token. Anything the parser framed is kept
// verbatim, so methods beyond the two constants still round-trip.
type Method string

const (
	MethodGet  Method = "GET"
	MethodPost Method = "POST"
)

// Request is one fully read request. The connection loop builds it once
// per exchange and hands it to the Handler; nothing mutates it afterward.
// Body is exactly Content-Length bytes, nil when the header was absent.
type Request struct {
	Method Method
	Target string
	Proto  string
	Header Header
	Body   []byte
}

func newRequest(pr *http1.ParsedRequest) *Request {
	return &Request{
		Method: Method(pr.Method),
		Target: pr.Target,
		Proto:  pr.Proto,
		Header: Header{fields: pr.Fields},
		Body:   pr.Body,
	}
}
