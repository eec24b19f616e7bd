package httpd

import (
	"net/textproto"

	"github.com/gabfec/go-http-server/httpd/internal/http1"
)

// Header holds fields as an ordered list. Names are canonicalized on the
// way in, so lookup is case-insensitive while output preserves the order
// fields were added or parsed in. The zero value is ready to use.
type Header struct {
	fields []http1.Field
}

func (h *Header) Get(key string) string {
	k := textproto.CanonicalMIMEHeaderKey(key)
	for _, f := range h.fields {
		if f.Name == k {
			return f.Value
		}
	}
	return ""
}

// Values returns every value for key, in order.
func (h *Header) Values(key string) []string {
	k := textproto.CanonicalMIMEHeaderKey(key)
	var vv []string
	for _, f := range h.fields {
		if f.Name == k {
			vv = append(vv, f.Value)
		}
	}
	return vv
}

// Set replaces all values for key with value. An existing field keeps
// its position; otherwise the field is appended.
func (h *Header) Set(key, value string) {
	k := textproto.CanonicalMIMEHeaderKey(key)
	out := h.fields[:0]
	done := false
	for _, f := range h.fields {
		if f.Name == k {
			if done {
				continue
			}
			f.Value = value
			done = true
		}
		out = append(out, f)
	}
	if !done {
		out = append(out, http1.Field{Name: k, Value: value})
	}
	h.fields = out
}

// Add appends a value for key without touching existing ones.
func (h *Header) Add(key, value string) {
	h.fields = append(h.fields, http1.Field{
		Name:  textproto.CanonicalMIMEHeaderKey(key),
		Value: value,
	})
}

// Del removes every field named key.
func (h *Header) Del(key string) {
	k := textproto.CanonicalMIMEHeaderKey(key)
	out := h.fields[:0]
	for _, f := range h.fields {
		if f.Name != k {
			out = append(out, f)
		}
	}
	h.fields = out
}

// Len returns the number of fields, duplicates counted.
func (h *Header) Len() int {
	return len(h.fields)
}

func (h *Header) wireFields() []http1.Field {
	return h.fields
}
