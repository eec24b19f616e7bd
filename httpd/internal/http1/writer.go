package http1

import (
	"bufio"
	"fmt"
	"strconv"
	"strings"
)

// WriteResponse serializes one complete response: status line, fields in
// the order given, then the body. Content-Length is recomputed from the
// actual body length; a caller-supplied value is overwritten in place so
// declared and actual length can never drift apart. No other fields are
// injected.
func WriteResponse(bw *bufio.Writer, status int, reason string, fields []Field, body []byte) error {
	if reason == "" {
		reason = defaultReason(status)
	}
	if _, err := fmt.Fprintf(bw, "HTTP/1.1 %d %s\r\n", status, reason); err != nil {
		return err
	}
	fields = withContentLength(fields, len(body))
	for _, f := range fields {
		if _, err := fmt.Fprintf(bw, "%s: %s\r\n", f.Name, sanitizeFieldValue(f.Value)); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(bw, "\r\n"); err != nil {
		return err
	}
	if len(body) > 0 {
		if _, err := bw.Write(body); err != nil {
			return err
		}
	}
	return nil
}

// withContentLength forces Content-Length to n. The first existing field
// keeps its position; duplicates are dropped; absent means append.
func withContentLength(fields []Field, n int) []Field {
	out := make([]Field, 0, len(fields)+1)
	seen := false
	for _, f := range fields {
		if f.Name == "Content-Length" {
			if seen {
				continue
			}
			f.Value = strconv.Itoa(n)
			seen = true
		}
		out = append(out, f)
	}
	if !seen {
		out = append(out, Field{Name: "Content-Length", Value: strconv.Itoa(n)})
	}
	return out
}

func defaultReason(code int) string {
	switch code {
	case 200:
		return "OK"
	case 201:
		return "Created"
	case 204:
		return "No Content"
	case 301:
		return "Moved Permanently"
	case 302:
		return "Found"
	case 304:
		return "Not Modified"
	case 400:
		return "Bad Request"
	case 401:
		return "Unauthorized"
	case 403:
		return "Forbidden"
	case 404:
		return "Not Found"
	case 500:
		return "Internal Server Error"
	case 501:
		return "Not Implemented"
	default:
		return ""
	}
}

// sanitizeFieldValue removes CR/LF and control chars except HTAB.
func sanitizeFieldValue(v string) string {
	if v == "" {
		return v
	}
	var b strings.Builder
	b.Grow(len(v))
	for i := 0; i < len(v); i++ {
		c := v[i]
		if c == '\r' || c == '\n' || c == 0x7f {
			continue
		}
		if c < 0x20 && c != '\t' {
			continue
		}
		b.WriteByte(c)
	}
	return b.String()
}
