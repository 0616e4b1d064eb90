// Package testutil provides stand-ins for the Python side of the debugger:
// a control endpoint that answers actions and a client that pushes
// snapshots.
package testutil

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"sync"
	"testing"

	"github.com/stefvonb/lazy-pdb/internal/protocol"
)

const resultTemplate = `<?xml version='1.0'?>
<methodResponse><params><param><value><struct>
<member><name>requested_action</name><value><string>%s</string></value></member>
<member><name>arguments</name><value><array><data></data></array></value></member>
<member><name>status</name><value><string>%s</string></value></member>
<member><name>message</name><value><string>%s</string></value></member>
</struct></value></param></params></methodResponse>`

// FakeDebugger answers interact_with_debugger calls with a fixed status.
// It is an http.Handler; mount it on an httptest server.
type FakeDebugger struct {
	Status  string
	Message string

	mu      sync.Mutex
	calls   int
	actions []protocol.DebugAction
}

func (f *FakeDebugger) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	f.calls++
	status, message := f.Status, f.Message
	f.mu.Unlock()

	body, _ := io.ReadAll(r.Body)
	w.Header().Set("Content-Type", "text/xml")
	name, err := protocol.MethodName(body)
	if err != nil || name != protocol.MethodInteract {
		w.Write(protocol.EncodeFault(protocol.FaultMethodNotFound, "unknown method"))
		return
	}
	action, err := protocol.DecodeActionCall(body)
	if err != nil {
		w.Write(protocol.EncodeFault(protocol.FaultParse, err.Error()))
		return
	}
	f.mu.Lock()
	f.actions = append(f.actions, action)
	f.mu.Unlock()
	fmt.Fprintf(w, resultTemplate, action.RequestedAction, status, message)
}

// Calls returns the number of requests received.
func (f *FakeDebugger) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// Actions returns the decoded actions in arrival order.
func (f *FakeDebugger) Actions() []protocol.DebugAction {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]protocol.DebugAction(nil), f.actions...)
}

// PushSnapshot posts s to url as the debugger would and returns the HTTP
// status and response body.
func PushSnapshot(t *testing.T, url string, s protocol.Snapshot) (int, string) {
	t.Helper()
	body, err := protocol.EncodeSnapshotCall(s)
	if err != nil {
		t.Fatalf("encode snapshot: %v", err)
	}
	return PostXML(t, url, body)
}

// PostXML posts a raw XML-RPC body.
func PostXML(t *testing.T, url string, body []byte) (int, string) {
	t.Helper()
	resp, err := http.Post(url, "text/xml", bytes.NewReader(body))
	if err != nil {
		t.Fatalf("post %s: %v", url, err)
	}
	defer resp.Body.Close()
	out, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("read response: %v", err)
	}
	return resp.StatusCode, string(out)
}
