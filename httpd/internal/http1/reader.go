package http1

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

// Field is one header as it appeared on the wire, name canonicalized.
// Requests and responses keep fields as an ordered slice so output order
// matches input order; lookup semantics live in the public package.
type Field struct {
	Name  string
	Value string
}

// ParsedRequest is a fully framed request read from the wire. Body has
// been read in its entirety; its length equals ContentLength.
type ParsedRequest struct {
	Method        string
	Target        string
	Proto         string
	Fields        []Field
	ContentLength int64
	Body          []byte
}

// Reader consumes one request at a time from a buffered stream.
// MaxHeaderBytes caps the total size of the request line plus headers;
// MaxBodyBytes caps the declared Content-Length, so a hostile peer
// cannot make the server allocate an arbitrary amount up front. Zero
// means the defaults (8 KiB and 10 MiB).
type Reader struct {
	BR             *bufio.Reader
	MaxHeaderBytes int
	MaxBodyBytes   int64

	consumed int // header bytes consumed for the current request
}

const (
	defaultMaxHeaderBytes = 8 << 10
	defaultMaxBodyBytes   = 10 << 20
)

func (r *Reader) headerLimit() int {
	if r.MaxHeaderBytes <= 0 {
		return defaultMaxHeaderBytes
	}
	return r.MaxHeaderBytes
}

func (r *Reader) bodyLimit() int64 {
	if r.MaxBodyBytes <= 0 {
		return defaultMaxBodyBytes
	}
	return r.MaxBodyBytes
}

// ReadRequest reads and frames exactly one request. A clean peer close
// before any request bytes arrive returns io.EOF; a close partway
// through returns ErrConnectionClosed.
func (r *Reader) ReadRequest() (*ParsedRequest, error) {
	r.consumed = 0
	line, err := r.ReadLine()
	if err != nil {
		return nil, err
	}
	method, target, proto, err := parseRequestLine(line)
	if err != nil {
		return nil, err
	}
	fields, err := r.readFields()
	if err != nil {
		return nil, err
	}
	cl, err := contentLength(fields)
	if err != nil {
		return nil, err
	}
	if cl > r.bodyLimit() {
		return nil, ErrBodyTooLarge
	}
	var body []byte
	if cl > 0 {
		body, err = r.ReadExact(int(cl))
		if err != nil {
			return nil, err
		}
	}
	return &ParsedRequest{
		Method:        method,
		Target:        target,
		Proto:         proto,
		Fields:        fields,
		ContentLength: cl,
		Body:          body,
	}, nil
}

// ReadLine reads bytes up to and excluding the CRLF terminator. Only
// the CR directly before the LF belongs to the terminator; a stray CR
// inside the line stays part of the returned bytes. io.EOF is returned
// only when the stream ends before any byte of the line; a close
// mid-line is ErrConnectionClosed.
func (r *Reader) ReadLine() (string, error) {
	var sb strings.Builder
	for {
		b, err := r.BR.ReadByte()
		if err != nil {
			if err == io.EOF && sb.Len() == 0 {
				return "", io.EOF
			}
			return "", ErrConnectionClosed
		}
		r.consumed++
		if r.consumed > r.headerLimit() {
			return "", ErrRequestTooLarge
		}
		if b == '\n' {
			return strings.TrimSuffix(sb.String(), "\r"), nil
		}
		sb.WriteByte(b)
	}
}

// ReadExact reads exactly n bytes, failing with ErrConnectionClosed if
// the peer closes first.
func (r *Reader) ReadExact(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := io.ReadFull(r.BR, buf); err != nil {
		return nil, ErrConnectionClosed
	}
	return buf, nil
}

func parseRequestLine(line string) (method, target, proto string, err error) {
	parts := strings.SplitN(line, " ", 3)
	if len(parts) != 3 || parts[0] == "" || parts[1] == "" {
		return "", "", "", ErrMalformedRequestLine
	}
	// Exactly HTTP/1.1; anything else cannot be framed by this reader.
	if parts[2] != "HTTP/1.1" {
		return "", "", "", ErrMalformedRequestLine
	}
	return parts[0], parts[1], parts[2], nil
}

func (r *Reader) readFields() ([]Field, error) {
	var fields []Field
	for {
		line, err := r.ReadLine()
		if err != nil {
			if err == io.EOF {
				return nil, ErrConnectionClosed
			}
			return nil, err
		}
		if line == "" {
			return fields, nil
		}
		i := strings.IndexByte(line, ':')
		if i <= 0 {
			return nil, ErrMalformedHeader
		}
		name := strings.TrimSpace(line[:i])
		if !validFieldName(name) {
			return nil, ErrMalformedHeader
		}
		fields = append(fields, Field{
			Name:  CanonicalFieldName(name),
			Value: strings.TrimSpace(line[i+1:]),
		})
	}
}

// contentLength extracts the declared body length. Absent means zero.
// Multiple Content-Length fields must agree.
func contentLength(fields []Field) (int64, error) {
	var cl int64 = -1
	for _, f := range fields {
		if f.Name != "Content-Length" {
			continue
		}
		for _, part := range strings.Split(f.Value, ",") {
			n, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
			if err != nil || n < 0 {
				return 0, ErrMalformedContentLength
			}
			if cl >= 0 && n != cl {
				return 0, ErrMalformedContentLength
			}
			cl = n
		}
	}
	if cl < 0 {
		return 0, nil
	}
	return cl, nil
}

// validFieldName reports whether name is an RFC 7230 token.
func validFieldName(name string) bool {
	if name == "" {
		return false
	}
	for i := 0; i < len(name); i++ {
		c := name[i]
		if (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9') {
			continue
		}
		switch c {
		case '!', '#', '$', '%', '&', '\'', '*', '+', '-', '.', '^', '_', '`', '|', '~':
			continue
		default:
			return false
		}
	}
	return true
}

// CanonicalFieldName uppercases the first letter of each dash-separated
// word. Small enough to avoid importing textproto here.
func CanonicalFieldName(s string) string {
	b := []byte(strings.ToLower(s))
	upper := true
	for i, c := range b {
		if c >= 'a' && c <= 'z' {
			if upper {
				b[i] = byte(c - 'a' + 'A')
			}
			upper = false
			continue
		}
		upper = c == '-'
	}
	return string(b)
}
