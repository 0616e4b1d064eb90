// Package control sends debug actions to the debuggee's XML-RPC endpoint.
package control

import (
	"errors"
	"fmt"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/kolo/xmlrpc"

	"github.com/stefvonb/lazy-pdb/internal/protocol"
)

// ErrRejected is returned when the debuggee answers with a non-success status.
var ErrRejected = errors.New("debugger rejected action")

// DefaultTimeout bounds connection setup and the wait for a reply.
const DefaultTimeout = 10 * time.Second

// Client issues interact_with_debugger calls. Every call dials a fresh
// connection; nothing is reused between calls.
type Client struct {
	url     string
	timeout time.Duration
}

// New creates a client for addr, given as host:port or a full http URL.
func New(addr string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Client{url: endpointURL(addr), timeout: timeout}
}

// URL returns the endpoint the client calls.
func (c *Client) URL() string {
	return c.url
}

// Send executes one action and waits for its result. It blocks for the
// whole round trip.
func (c *Client) Send(action protocol.DebugAction) (protocol.DebugActionResult, error) {
	rpc, err := xmlrpc.NewClient(c.url, c.transport())
	if err != nil {
		return protocol.DebugActionResult{}, fmt.Errorf("%s: create client: %w", action.RequestedAction, err)
	}
	defer rpc.Close()

	var reply protocol.ActionResultReply
	if err := rpc.Call(protocol.MethodInteract, protocol.WireAction(action), reply.Target()); err != nil {
		return protocol.DebugActionResult{}, fmt.Errorf("%s: %w", action.RequestedAction, err)
	}
	result := reply.Result()
	if !result.OK() {
		msg := strings.TrimSpace(result.Message)
		if msg == "" {
			msg = fmt.Sprintf("status %q", result.Status)
		}
		return result, fmt.Errorf("%s: %w: %s", action.RequestedAction, ErrRejected, msg)
	}
	return result, nil
}

func (c *Client) transport() http.RoundTripper {
	dialer := &net.Dialer{Timeout: c.timeout}
	return &http.Transport{
		DialContext:           dialer.DialContext,
		DisableKeepAlives:     true,
		ResponseHeaderTimeout: c.timeout,
	}
}

func endpointURL(addr string) string {
	addr = strings.TrimSpace(addr)
	if strings.HasPrefix(addr, "http://") || strings.HasPrefix(addr, "https://") {
		return addr
	}
	return "http://" + addr
}
