package main

import (
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabfec/go-http-server/httpd"
)

// routes is the fixed route table. The engine imposes no opinion on
// response content; everything below is ordinary handler code.
type routes struct {
	dir string // directory backing /files/; empty disables the route
}

func (h *routes) Serve(r *httpd.Request) *httpd.Response {
	switch {
	case r.Target == "/":
		return httpd.NewResponse(200, "text/plain", nil)
	case strings.HasPrefix(r.Target, "/echo/"):
		return httpd.NewResponse(200, "text/plain", []byte(r.Target[len("/echo/"):]))
	case r.Target == "/user-agent":
		return httpd.NewResponse(200, "text/plain", []byte(r.Header.Get("User-Agent")))
	case strings.HasPrefix(r.Target, "/files/"):
		return h.serveFile(r, r.Target[len("/files/"):])
	}
	return httpd.NewResponse(404, "text/plain", nil)
}

func (h *routes) serveFile(r *httpd.Request, name string) *httpd.Response {
	p, ok := h.filePath(name)
	if !ok {
		return httpd.NewResponse(404, "text/plain", nil)
	}
	switch r.Method {
	case httpd.MethodGet:
		content, err := os.ReadFile(p)
		if err != nil {
			return httpd.NewResponse(404, "text/plain", nil)
		}
		return httpd.NewResponse(200, "application/octet-stream", content)
	case httpd.MethodPost:
		if err := os.WriteFile(p, r.Body, 0o644); err != nil {
			return httpd.NewResponse(500, "text/plain", nil)
		}
		return httpd.NewResponse(201, "text/plain", nil)
	}
	return httpd.NewResponse(404, "text/plain", nil)
}

// filePath confines name to the configured directory so a crafted
// "../" target cannot escape it.
func (h *routes) filePath(name string) (string, bool) {
	if h.dir == "" || name == "" {
		return "", false
	}
	return filepath.Join(h.dir, filepath.FromSlash(path.Clean("/"+name))), true
}
