package control

import (
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/stefvonb/lazy-pdb/internal/protocol"
	"github.com/stefvonb/lazy-pdb/internal/testutil"
)

func TestSendSuccess(t *testing.T) {
	fake := &testutil.FakeDebugger{Status: "ok"}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	client := New(srv.URL, time.Second)
	result, err := client.Send(protocol.NewAction(protocol.ActionContinue))
	require.NoError(t, err)
	assert.Equal(t, protocol.ActionContinue, result.RequestedAction)
	assert.Equal(t, "ok", result.Status)
	assert.True(t, result.OK())

	actions := fake.Actions()
	require.Len(t, actions, 1)
	assert.Equal(t, protocol.ActionContinue, actions[0].RequestedAction)
	assert.NotNil(t, actions[0].Arguments)
}

func TestSendDialsPerCall(t *testing.T) {
	fake := &testutil.FakeDebugger{Status: "ok"}
	srv := httptest.NewUnstartedServer(fake)
	var conns atomic.Int32
	srv.Config.ConnState = func(_ net.Conn, state http.ConnState) {
		if state == http.StateNew {
			conns.Add(1)
		}
	}
	srv.Start()
	defer srv.Close()

	client := New(srv.URL, time.Second)
	for i := 0; i < 3; i++ {
		_, err := client.Send(protocol.NewAction(protocol.ActionNext))
		require.NoError(t, err)
	}
	assert.Equal(t, 3, fake.Calls())
	assert.Equal(t, int32(3), conns.Load())
}

func TestSendRejectedStatus(t *testing.T) {
	fake := &testutil.FakeDebugger{Status: "error", Message: "not paused"}
	srv := httptest.NewServer(fake)
	defer srv.Close()

	result, err := New(srv.URL, time.Second).Send(protocol.NewAction(protocol.ActionNext))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrRejected)
	assert.Contains(t, err.Error(), "not paused")
	assert.Equal(t, "error", result.Status)
}

func TestSendFault(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write(protocol.EncodeFault(protocol.FaultMethodNotFound, "no such method"))
	}))
	defer srv.Close()

	_, err := New(srv.URL, time.Second).Send(protocol.NewAction(protocol.ActionStop))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no such method")
	assert.NotErrorIs(t, err, ErrRejected)
}

func TestSendTransportFailure(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := strings.TrimPrefix(srv.URL, "http://")
	srv.Close()

	_, err := New(addr, 200*time.Millisecond).Send(protocol.NewAction(protocol.ActionContinue))
	require.Error(t, err)
	assert.Contains(t, err.Error(), protocol.ActionContinue)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://127.0.0.1:8081", New("127.0.0.1:8081", 0).URL())
	assert.Equal(t, "http://localhost:9000/RPC2", New("http://localhost:9000/RPC2", 0).URL())
}
