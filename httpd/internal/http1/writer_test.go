package http1

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
)

func encode(t *testing.T, status int, reason string, fields []Field, body []byte) string {
	t.Helper()
	var buf bytes.Buffer
	bw := bufio.NewWriter(&buf)
	if err := WriteResponse(bw, status, reason, fields, body); err != nil {
		t.Fatalf("WriteResponse error: %v", err)
	}
	if err := bw.Flush(); err != nil {
		t.Fatalf("flush: %v", err)
	}
	return buf.String()
}

func TestWriteResponse_ExactBytes(t *testing.T) {
	got := encode(t, 200, "", []Field{{"Content-Type", "text/plain"}}, []byte("hello"))
	want := "HTTP/1.1 200 OK\r\nContent-Type: text/plain\r\nContent-Length: 5\r\n\r\nhello"
	if got != want {
		t.Fatalf("wire bytes:\n got %q\nwant %q", got, want)
	}
}

func TestWriteResponse_FieldOrder(t *testing.T) {
	fields := []Field{{"Z-Last", "z"}, {"A-First", "a"}, {"M-Mid", "m"}}
	got := encode(t, 200, "", fields, nil)
	zi := strings.Index(got, "Z-Last")
	ai := strings.Index(got, "A-First")
	mi := strings.Index(got, "M-Mid")
	if zi < 0 || ai < 0 || mi < 0 || !(zi < ai && ai < mi) {
		t.Fatalf("insertion order not preserved:\n%q", got)
	}
}

func TestWriteResponse_ContentLengthAuthority(t *testing.T) {
	// A caller-supplied Content-Length is overwritten in place.
	fields := []Field{{"Content-Length", "999"}, {"Content-Type", "text/plain"}}
	got := encode(t, 200, "", fields, []byte("abc"))
	want := "HTTP/1.1 200 OK\r\nContent-Length: 3\r\nContent-Type: text/plain\r\n\r\nabc"
	if got != want {
		t.Fatalf("wire bytes:\n got %q\nwant %q", got, want)
	}
}

func TestWriteResponse_EmptyBody(t *testing.T) {
	got := encode(t, 404, "", nil, nil)
	want := "HTTP/1.1 404 Not Found\r\nContent-Length: 0\r\n\r\n"
	if got != want {
		t.Fatalf("wire bytes:\n got %q\nwant %q", got, want)
	}
}

func TestWriteResponse_CustomReason(t *testing.T) {
	got := encode(t, 200, "Alright", nil, nil)
	if !strings.HasPrefix(got, "HTTP/1.1 200 Alright\r\n") {
		t.Fatalf("status line: %q", got)
	}
}

func TestWriteResponse_SanitizesFieldValue(t *testing.T) {
	got := encode(t, 200, "", []Field{{"X-Evil", "a\r\nInjected: yes"}}, nil)
	if strings.Contains(got, "\nInjected:") {
		t.Fatalf("CRLF not stripped from field value:\n%q", got)
	}
	if !strings.Contains(got, "X-Evil: aInjected: yes\r\n") {
		t.Fatalf("unexpected sanitized value:\n%q", got)
	}
}

func TestDefaultReason(t *testing.T) {
	if got := defaultReason(201); got != "Created" {
		t.Fatalf("defaultReason(201)=%q", got)
	}
	if got := defaultReason(599); got != "" {
		t.Fatalf("defaultReason(599)=%q", got)
	}
}
