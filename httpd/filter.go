package httpd

import (
	"bytes"
	"compress/gzip"
	"strings"
)

// CompressResponse gzips resp's body and sets Content-Encoding when the
// request's Accept-Encoding lists gzip. It must run before the response
// is encoded so Content-Length reflects the compressed size. Empty and
// already-encoded bodies are left alone.
func CompressResponse(req *Request, resp *Response) error {
	if req == nil || resp == nil || len(resp.Body) == 0 {
		return nil
	}
	if resp.Header.Get("Content-Encoding") != "" {
		return nil
	}
	if !acceptsGzip(&req.Header) {
		return nil
	}
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(resp.Body); err != nil {
		return err
	}
	if err := zw.Close(); err != nil {
		return err
	}
	resp.Body = buf.Bytes()
	resp.Header.Set("Content-Encoding", "gzip")
	return nil
}

// acceptsGzip scans Accept-Encoding for the gzip token. The value is a
// comma-separated list; tokens may carry parameters after a semicolon
// and arbitrary whitespace.
func acceptsGzip(h *Header) bool {
	for _, v := range h.Values("Accept-Encoding") {
		for _, tok := range strings.Split(v, ",") {
			if i := strings.IndexByte(tok, ';'); i >= 0 {
				tok = tok[:i]
			}
			if strings.EqualFold(strings.TrimSpace(tok), "gzip") {
				return true
			}
		}
	}
	return false
}
