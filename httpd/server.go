package httpd

import (
	"bufio"
	"errors"
	"io"
	"net"
	"strings"
	"time"

	"github.com/gabfec/go-http-server/httpd/internal/http1"
	"github.com/gabfec/go-http-server/internal/obs"
)

// Handler produces a complete response for one parsed request. Panics
// inside Serve are caught at the dispatch boundary and answered with 500.
type Handler interface {
	Serve(*Request) *Response
}

type HandlerFunc func(*Request) *Response

func (f HandlerFunc) Serve(r *Request) *Response {
	return f(r)
}

// Server owns a listening socket and runs one connection loop goroutine
// per accepted connection, unbounded. Timeouts default to zero, meaning
// no deadline: a silent peer holds its goroutine until it closes.
type Server struct {
	Addr           string
	Handler        Handler
	MaxHeaderBytes int
	MaxBodyBytes   int64

	// Optional deadlines for deployments that cannot tolerate a slow
	// peer pinning a goroutine forever.
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	Logger obs.Logger
	Meter  obs.Meter
}

func (s *Server) ListenAndServe() error {
	addr := s.Addr
	if addr == "" {
		addr = "127.0.0.1:4221"
	}
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return err
	}
	return s.Serve(ln)
}

// Serve accepts connections on l until Accept fails. The listener is
// owned by the caller; Serve closes it on return.
func (s *Server) Serve(l net.Listener) error {
	defer l.Close()
	for {
		c, err := l.Accept()
		if err != nil {
			return err
		}
		go s.serveConn(c)
	}
}

// serveConn is the per-connection state machine: parse, dispatch,
// respond, then either loop for the next request or close.
func (s *Server) serveConn(c net.Conn) {
	defer c.Close()
	cid := connID()
	s.logf(obs.Debug, "conn %s: accepted from %s", cid, c.RemoteAddr())
	s.metricCounter("httpd_conns_total", 1)

	rr := &http1.Reader{BR: bufio.NewReader(c), MaxHeaderBytes: s.MaxHeaderBytes, MaxBodyBytes: s.MaxBodyBytes}
	bw := bufio.NewWriter(c)
	for {
		if s.ReadTimeout > 0 {
			_ = c.SetReadDeadline(time.Now().Add(s.ReadTimeout))
		}
		pr, err := rr.ReadRequest()
		if err != nil {
			if err == io.EOF {
				s.logf(obs.Debug, "conn %s: closed by peer", cid)
				return
			}
			if errors.Is(err, http1.ErrConnectionClosed) {
				s.logf(obs.Debug, "conn %s: lost mid-request", cid)
				return
			}
			// Framing is unrecoverable on this socket; answer 400 if the
			// peer is still there, then tear down.
			s.logf(obs.Warn, "conn %s: parse failed: %v", cid, err)
			s.metricCounter("httpd_requests_error", 1, obs.Label{Key: "stage", Value: "parse"})
			_ = http1.WriteResponse(bw, 400, "", []http1.Field{{Name: "Connection", Value: "close"}}, nil)
			_ = bw.Flush()
			return
		}

		req := newRequest(pr)
		start := time.Now()
		resp := s.dispatch(req)

		reqClose := strings.EqualFold(req.Header.Get("Connection"), "close")
		if reqClose {
			resp.Header.Set("Connection", "close")
		}
		keepAlive := !reqClose && !strings.EqualFold(resp.Header.Get("Connection"), "close")

		if err := CompressResponse(req, resp); err != nil {
			s.logf(obs.Error, "conn %s: compress failed: %v", cid, err)
			return
		}
		if s.WriteTimeout > 0 {
			_ = c.SetWriteDeadline(time.Now().Add(s.WriteTimeout))
		}
		if err := http1.WriteResponse(bw, resp.StatusCode, resp.Reason, resp.Header.wireFields(), resp.Body); err != nil {
			s.logf(obs.Warn, "conn %s: write failed: %v", cid, err)
			return
		}
		if err := bw.Flush(); err != nil {
			s.logf(obs.Warn, "conn %s: flush failed: %v", cid, err)
			return
		}

		s.logf(obs.Info, "conn %s: %s %s -> %d (%d bytes)", cid, req.Method, req.Target, resp.StatusCode, len(resp.Body))
		s.metricCounter("httpd_requests_total", 1, obs.Label{Key: "method", Value: string(req.Method)})
		s.metricHistogram("httpd_request_duration_seconds", time.Since(start).Seconds())

		if !keepAlive {
			return
		}
		if s.IdleTimeout > 0 {
			_ = c.SetReadDeadline(time.Now().Add(s.IdleTimeout))
		} else if s.ReadTimeout <= 0 {
			_ = c.SetReadDeadline(time.Time{})
		}
	}
}

// dispatch invokes the handler and converts failures (panic or a nil
// response) into a 500. A nil Handler answers 404.
func (s *Server) dispatch(r *Request) (resp *Response) {
	defer func() {
		if v := recover(); v != nil {
			s.logf(obs.Error, "handler panic on %s %s: %v", r.Method, r.Target, v)
			s.metricCounter("httpd_requests_error", 1, obs.Label{Key: "stage", Value: "handler"})
			resp = &Response{StatusCode: 500}
		}
	}()
	h := s.Handler
	if h == nil {
		return NewResponse(404, "text/plain", []byte("not found"))
	}
	resp = h.Serve(r)
	if resp == nil {
		s.logf(obs.Error, "handler returned nil response on %s %s", r.Method, r.Target)
		s.metricCounter("httpd_requests_error", 1, obs.Label{Key: "stage", Value: "handler"})
		resp = &Response{StatusCode: 500}
	}
	return resp
}

func (s *Server) logf(level obs.Level, format string, args ...interface{}) {
	if s.Logger == nil {
		return
	}
	s.Logger.Logf(level, format, args...)
}

func (s *Server) metricCounter(name string, v float64, labels ...obs.Label) {
	if s.Meter == nil {
		return
	}
	s.Meter.Counter(name, v, labels...)
}

func (s *Server) metricHistogram(name string, v float64, labels ...obs.Label) {
	if s.Meter == nil {
		return
	}
	s.Meter.Histogram(name, v, labels...)
}
