// Package httpd is a small HTTP/1.1 server that speaks the wire protocol
// directly over TCP, with no framework underneath. It exists to make the
// protocol mechanics visible: framing, persistent connections, and
// content negotiation are all explicit code rather than library behavior.
//
// Highlights
//   - Strict request parsing: Content-Length framing only, exact
//     HTTP/1.1 version match, anything ambiguously framed is rejected
//     with 400 rather than guessed at.
//   - Keep-alive by default, torn down on Connection: close from either
//     side or on any transport error.
//   - Opt-in gzip response compression driven by Accept-Encoding.
//   - One goroutine per connection, unbounded, with no deadlines unless
//     configured. A slow or silent peer holds its goroutine
//     indefinitely; set Read/Write/IdleTimeout when that matters.
//   - Pluggable Logger and Meter hooks.
//
// Quick start:
//
//	s := &httpd.Server{Addr: "127.0.0.1:4221"}
//	s.Handler = httpd.HandlerFunc(func(r *httpd.Request) *httpd.Response {
//	    return httpd.NewResponse(200, "text/plain", []byte("hello"))
//	})
//	if err := s.ListenAndServe(); err != nil { log.Fatal(err) }
package httpd
