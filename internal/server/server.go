// Package server implements the connection dispatcher (C5): it reads
// one HTTP request per accepted connection, routes a WebSocket
// upgrade request to its tenant, or otherwise hands the raw request
// off to the plain-HTTP router (static files, stats) and relays its
// response back onto the socket in the runtime's raw wire format. It
// plays the role the teacher's ServeWs/Hub registration played,
// generalized off gorilla/websocket onto the hand-rolled framing this
// runtime implements itself.
package server

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/http/httptest"

	"github.com/rs/zerolog"

	"github.com/EtomicBomb/ethan-ws/internal/handshake"
	"github.com/EtomicBomb/ethan-ws/internal/httpparse"
	"github.com/EtomicBomb/ethan-ws/internal/registry"
	"github.com/EtomicBomb/ethan-ws/internal/tenant"
	"github.com/EtomicBomb/ethan-ws/internal/wsproto"
)

const internalErrorBody = "HTTP/1.1 500 Internal Server Error\r\n\r\nInternal Server Error"

// Server accepts TCP connections and dispatches each one to either
// the WebSocket upgrade path or the plain-HTTP handler.
type Server struct {
	reg           *registry.Registry
	peerIDs       *registry.PeerIDGenerator
	httpHandler   http.Handler
	maxRequestLen int
	log           zerolog.Logger
}

// New builds a Server over an already-populated, closed registry.
// httpHandler serves every request that isn't a WebSocket upgrade
// (ordinarily an *httpapi.NewRouter result).
func New(reg *registry.Registry, peerIDs *registry.PeerIDGenerator, httpHandler http.Handler, maxRequestLen int, log zerolog.Logger) *Server {
	return &Server{reg: reg, peerIDs: peerIDs, httpHandler: httpHandler, maxRequestLen: maxRequestLen, log: log}
}

// ListenAndServe binds addr and accepts connections until ctx is
// cancelled or the listener fails.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	lc := net.ListenConfig{}
	ln, err := lc.Listen(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("server: bind %s: %w", addr, err)
	}
	s.log.Info().Str("addr", addr).Msg("listening")

	go func() {
		<-ctx.Done()
		ln.Close()
	}()

	for {
		conn, err := ln.Accept()
		if err != nil {
			select {
			case <-ctx.Done():
				return nil
			default:
				s.log.Error().Err(err).Msg("accept failed")
				return err
			}
		}
		go s.handleConn(conn)
	}
}

func (s *Server) handleConn(conn net.Conn) {
	defer conn.Close()

	buf := make([]byte, s.maxRequestLen)
	n, err := readRequest(conn, buf)
	if err != nil {
		return
	}

	req, err := httpparse.Parse(buf[:n])
	if err != nil {
		return
	}

	if key, ok := req.Header("Sec-WebSocket-Key"); ok {
		s.serveWebSocket(conn, req.Target, key)
		return
	}

	s.serveHTTP(conn, buf[:n])
}

// readRequest reads from conn until a blank line (end of headers) is
// seen or buf fills, mirroring the "at most N bytes, one request per
// connection" contract.
func readRequest(conn net.Conn, buf []byte) (int, error) {
	total := 0
	for total < len(buf) {
		n, err := conn.Read(buf[total:])
		total += n
		if err != nil {
			return total, err
		}
		if sawHeaderTerminator(buf[:total]) {
			return total, nil
		}
	}
	return total, fmt.Errorf("server: request exceeded %d bytes", len(buf))
}

func sawHeaderTerminator(b []byte) bool {
	for i := 0; i+3 < len(b); i++ {
		if b[i] == '\r' && b[i+1] == '\n' && b[i+2] == '\r' && b[i+3] == '\n' {
			return true
		}
	}
	return false
}

func (s *Server) serveWebSocket(conn net.Conn, path, key string) {
	t, tok, ok := s.reg.Find(path)
	if !ok {
		return
	}

	accept := handshake.AcceptToken(key)
	if _, err := conn.Write([]byte(handshake.Response(accept))); err != nil {
		return
	}

	id := s.peerIDs.Next()
	writer := wsproto.NewWriter(conn)
	handle := tenant.NewHandle(writer)

	tok.Lock()
	t.OnConnect(id, handle)
	tok.Unlock()

	defer func() {
		tok.Lock()
		t.OnDisconnect(id)
		tok.Unlock()
	}()

	reader := wsproto.NewReader(conn, conn)
	for {
		msg, err := reader.Next()
		if err != nil {
			return
		}

		tok.Lock()
		err = t.OnMessage(id, msg)
		tok.Unlock()
		if err != nil {
			return
		}
	}
}

// serveHTTP re-parses the already-buffered raw request through
// net/http so it can be routed by the gorilla/mux catch-all (static
// files, stats), then relays the router's response back onto conn in
// the runtime's raw "status line + blank line + body" wire format
// rather than a full net/http response dump.
func (s *Server) serveHTTP(conn net.Conn, raw []byte) {
	req, err := http.ReadRequest(bufio.NewReader(bytes.NewReader(raw)))
	if err != nil {
		conn.Write([]byte(internalErrorBody))
		return
	}

	rec := httptest.NewRecorder()
	s.httpHandler.ServeHTTP(rec, req)
	resp := rec.Result()
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		s.log.Error().Err(err).Msg("reading routed response body")
		conn.Write([]byte(internalErrorBody))
		return
	}

	fmt.Fprintf(conn, "HTTP/1.1 %s\r\n\r\n", resp.Status)
	conn.Write(body)
}
