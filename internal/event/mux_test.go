package event

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"testing"
	"testing/iotest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func drain(t *testing.T, m *Multiplexer, n int) []Event {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	out := make([]Event, 0, n)
	for len(out) < n {
		ev, err := m.Next(ctx)
		require.NoError(t, err)
		out = append(out, ev)
	}
	return out
}

func TestSingleProducerOrder(t *testing.T) {
	m := New()
	s := m.Sender()
	for i := 0; i < 100; i++ {
		require.True(t, s.Send(StdoutReceived{Line: fmt.Sprint(i)}))
	}
	got := drain(t, m, 100)
	for i, ev := range got {
		assert.Equal(t, StdoutReceived{Line: fmt.Sprint(i)}, ev)
	}
	assert.Equal(t, 0, m.Len())
}

func TestInterleavedProducersKeepLocalOrder(t *testing.T) {
	const producers = 8
	const perProducer = 500

	m := New()
	var wg sync.WaitGroup
	for p := 0; p < producers; p++ {
		wg.Add(1)
		go func(p int, s Sender) {
			defer wg.Done()
			for i := 0; i < perProducer; i++ {
				s.Send(StdoutReceived{Line: fmt.Sprintf("%d:%d", p, i)})
			}
		}(p, m.Sender())
	}

	got := drain(t, m, producers*perProducer)
	wg.Wait()

	next := make([]int, producers)
	for _, ev := range got {
		line := ev.(StdoutReceived).Line
		var p, i int
		_, err := fmt.Sscanf(line, "%d:%d", &p, &i)
		require.NoError(t, err)
		require.Equal(t, next[p], i, "producer %d out of order", p)
		next[p]++
	}
	for p, n := range next {
		assert.Equal(t, perProducer, n, "producer %d lost events", p)
	}
	_, ok := m.TryNext()
	assert.False(t, ok, "no duplicate events expected")
}

func TestNextBlocksUntilSend(t *testing.T) {
	m := New()
	done := make(chan Event, 1)
	go func() {
		ev, err := m.Next(context.Background())
		if err == nil {
			done <- ev
		}
	}()

	select {
	case <-done:
		t.Fatal("Next returned before any event was sent")
	case <-time.After(20 * time.Millisecond):
	}

	m.Sender().Send(Resize{Width: 80, Height: 24})
	select {
	case ev := <-done:
		assert.Equal(t, Resize{Width: 80, Height: 24}, ev)
	case <-time.After(5 * time.Second):
		t.Fatal("Next did not wake up")
	}
}

func TestNextHonoursContext(t *testing.T) {
	m := New()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	_, err := m.Next(ctx)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestCloseDrainsThenReportsClosed(t *testing.T) {
	m := New()
	s := m.Sender()
	s.Send(Tick{})
	s.Send(StderrReceived{Line: "boom"})
	m.Close()

	assert.False(t, s.Send(Tick{}), "send after close must be rejected")

	got := drain(t, m, 2)
	assert.IsType(t, Tick{}, got[0])
	assert.Equal(t, StderrReceived{Line: "boom"}, got[1])

	_, err := m.Next(context.Background())
	assert.ErrorIs(t, err, ErrClosed)
}

func TestZeroSenderAndNilEvent(t *testing.T) {
	var s Sender
	assert.False(t, s.Send(Tick{}))

	m := New()
	assert.False(t, m.Sender().Send(nil))
	assert.Equal(t, 0, m.Len())
}

func TestReadLinesSplitsStream(t *testing.T) {
	m := New()
	ReadLines(strings.NewReader("first\nsecond\r\nlast"), m.Sender(), Stdout)
	got := drain(t, m, 3)
	assert.Equal(t, []Event{
		StdoutReceived{Line: "first"},
		StdoutReceived{Line: "second"},
		StdoutReceived{Line: "last"},
	}, got)
	assert.Equal(t, 0, m.Len())
}

func TestReadLinesCutsOverlongLineAndKeepsReading(t *testing.T) {
	m := New()
	long := strings.Repeat("x", 2*maxLineSize)
	ReadLines(strings.NewReader("a\n"+long+"\nafter\n\nend"), m.Sender(), Stdout)
	got := drain(t, m, 5)
	require.Len(t, got, 5)
	assert.Equal(t, StdoutReceived{Line: "a"}, got[0])
	cut, ok := got[1].(StdoutReceived)
	require.True(t, ok, "expected StdoutReceived, got %T", got[1])
	assert.Len(t, cut.Line, maxLineSize)
	assert.Equal(t, []Event{
		StdoutReceived{Line: "after"},
		StdoutReceived{Line: ""},
		StdoutReceived{Line: "end"},
	}, got[2:])
	assert.Equal(t, 0, m.Len())
}

func TestReadLinesStopsSilentlyOnError(t *testing.T) {
	m := New()
	r := io.MultiReader(strings.NewReader("partial output\n"), iotest.ErrReader(errors.New("broken pipe")))
	ReadLines(r, m.Sender(), Stderr)
	got := drain(t, m, 1)
	assert.Equal(t, StderrReceived{Line: "partial output"}, got[0])
	assert.Equal(t, 0, m.Len(), "read errors must not surface as events")
}

func TestRunTickerEmitsUntilCancelled(t *testing.T) {
	m := New()
	ctx, cancel := context.WithCancel(context.Background())
	stopped := make(chan struct{})
	go func() {
		RunTicker(ctx, m.Sender(), 2*time.Millisecond)
		close(stopped)
	}()

	got := drain(t, m, 3)
	for _, ev := range got {
		assert.IsType(t, Tick{}, ev)
	}
	cancel()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("ticker did not stop")
	}
}

func TestRunTickerStopsWhenClosed(t *testing.T) {
	m := New()
	m.Close()
	stopped := make(chan struct{})
	go func() {
		RunTicker(context.Background(), m.Sender(), time.Millisecond)
		close(stopped)
	}()
	select {
	case <-stopped:
	case <-time.After(5 * time.Second):
		t.Fatal("ticker kept running after close")
	}
}
