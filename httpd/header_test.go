package httpd

import "testing"

func TestHeaderCaseInsensitiveLookup(t *testing.T) {
	var h Header
	h.Add("x-foo", "a")
	h.Add("X-Foo", "b")
	if got := h.Get("X-FOO"); got != "a" {
		t.Fatalf("Get = %q, want %q", got, "a")
	}
	if got := len(h.Values("x-FOO")); got != 2 {
		t.Fatalf("len values = %d, want 2", got)
	}
	h.Set("content-type", "text/plain")
	if got := h.Get("Content-Type"); got != "text/plain" {
		t.Fatalf("content-type = %q", got)
	}
	h.Del("x-foo")
	if got := h.Get("X-Foo"); got != "" {
		t.Fatalf("after Del, got %q, want empty", got)
	}
}

func TestHeaderOrderPreserved(t *testing.T) {
	var h Header
	h.Add("Z-One", "1")
	h.Add("A-Two", "2")
	h.Add("M-Three", "3")
	want := []string{"Z-One", "A-Two", "M-Three"}
	fields := h.wireFields()
	if len(fields) != len(want) {
		t.Fatalf("fields = %v", fields)
	}
	for i, f := range fields {
		if f.Name != want[i] {
			t.Fatalf("field[%d] = %q, want %q", i, f.Name, want[i])
		}
	}
}

func TestHeaderSetKeepsPosition(t *testing.T) {
	var h Header
	h.Add("A", "1")
	h.Add("B", "2")
	h.Add("A", "3")
	h.Set("a", "new")
	fields := h.wireFields()
	if len(fields) != 2 {
		t.Fatalf("fields = %v, want duplicate collapsed", fields)
	}
	if fields[0].Name != "A" || fields[0].Value != "new" || fields[1].Name != "B" {
		t.Fatalf("fields = %v", fields)
	}
}

func TestHeaderZeroValue(t *testing.T) {
	var h Header
	if got := h.Get("Anything"); got != "" {
		t.Fatalf("zero-value Get = %q", got)
	}
	if h.Len() != 0 {
		t.Fatalf("zero-value Len = %d", h.Len())
	}
}
