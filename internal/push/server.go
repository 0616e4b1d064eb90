// Package push hosts the XML-RPC endpoint the debuggee calls to publish
// snapshots whenever it pauses.
package push

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"time"

	"github.com/julienschmidt/httprouter"

	"github.com/stefvonb/lazy-pdb/internal/event"
	"github.com/stefvonb/lazy-pdb/internal/logging"
	"github.com/stefvonb/lazy-pdb/internal/logging/events"
	"github.com/stefvonb/lazy-pdb/internal/protocol"
)

// Ack is the reply to every accepted snapshot.
const Ack = "ok"

const maxBodySize = 32 << 20

// Server accepts update_snapshot calls and forwards them as events.
type Server struct {
	addr   string
	sender event.Sender
	router *httprouter.Router
	server *http.Server
	ln     net.Listener
}

// New creates a server that will listen on addr.
func New(addr string, sender event.Sender) *Server {
	s := &Server{
		addr:   addr,
		sender: sender,
		router: httprouter.New(),
	}
	s.setupRoutes()
	s.server = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

func (s *Server) setupRoutes() {
	// Python's ServerProxy posts to /RPC2 unless the URL names a path.
	s.router.POST("/", s.handleCall)
	s.router.POST("/RPC2", s.handleCall)
}

// Handler exposes the routing table, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Listen binds the configured address. A failure here is fatal to startup.
func (s *Server) Listen() error {
	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("listen on %s: %w", s.addr, err)
	}
	s.ln = ln
	events.Push.Listen(ln.Addr().String())
	return nil
}

// Addr returns the bound address, or nil before Listen.
func (s *Server) Addr() net.Addr {
	if s.ln == nil {
		return nil
	}
	return s.ln.Addr()
}

// Serve handles calls until Shutdown. It returns nil after a clean shutdown.
func (s *Server) Serve() error {
	if s.ln == nil {
		return errors.New("push server not listening")
	}
	if err := s.server.Serve(s.ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve push endpoint: %w", err)
	}
	return nil
}

// Shutdown stops accepting calls and waits for in-flight ones.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

func (s *Server) handleCall(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		s.reject(w, "", protocol.FaultParse, fmt.Errorf("read request: %w", err))
		return
	}
	method, err := protocol.MethodName(body)
	if err != nil {
		s.reject(w, "", protocol.FaultParse, err)
		return
	}
	if method != protocol.MethodUpdateSnapshot {
		events.Push.Reject(method, errors.New("method not found"))
		writeXML(w, protocol.EncodeFault(protocol.FaultMethodNotFound, fmt.Sprintf("method %q is not supported", method)))
		return
	}
	snapshot, err := protocol.DecodeSnapshotCall(body)
	if err != nil {
		s.reject(w, method, protocol.FaultInvalidParams, err)
		return
	}
	s.sender.Send(event.SnapshotReceived{Snapshot: snapshot})
	events.Push.Snapshot(len(snapshot.Stack))
	writeXML(w, protocol.EncodeStringResponse(Ack))
}

// reject answers a malformed call with a fault and reports it to the UI.
func (s *Server) reject(w http.ResponseWriter, method string, code int, err error) {
	logging.Error(fmt.Errorf("push %s: %w", method, err))
	events.Push.Reject(method, err)
	s.sender.Send(event.PayloadRejected{Err: err})
	writeXML(w, protocol.EncodeFault(code, err.Error()))
}

func writeXML(w http.ResponseWriter, body []byte) {
	w.Header().Set("Content-Type", "text/xml")
	_, _ = w.Write(body)
}
