package httpd

// Response is built by a handler and serialized once by the encoder.
// Reason may be left empty; the encoder fills in the default phrase.
// Content-Length in Header is advisory only: the encoder recomputes it
// from len(Body) at write time.
type Response struct {
	StatusCode int
	Reason     string
	Header     Header
	Body       []byte
}

// NewResponse builds a response with a Content-Type field, the shape
// almost every handler wants.
func NewResponse(status int, contentType string, body []byte) *Response {
	r := &Response{StatusCode: status, Body: body}
	if contentType != "" {
		r.Header.Set("Content-Type", contentType)
	}
	return r
}
