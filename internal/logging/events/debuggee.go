package events

import "github.com/stefvonb/lazy-pdb/internal/logging"

type DebuggeeTracer struct{}

type StreamTracer struct{}

var (
	Debuggee = DebuggeeTracer{}
	Stream   = StreamTracer{}
)

func (DebuggeeTracer) Start(pid int, argv []string) {
	logging.Trace("debuggee.start", map[string]interface{}{"pid": pid, "argv": argv})
}

func (DebuggeeTracer) Exit(pid, code int, err error) {
	payload := map[string]interface{}{"pid": pid, "code": code}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("debuggee.exit", payload)
}

func (DebuggeeTracer) Kill(pid int) {
	logging.Trace("debuggee.kill", map[string]interface{}{"pid": pid})
}

func (StreamTracer) End(stream string, lines int, err error) {
	payload := map[string]interface{}{"stream": stream, "lines": lines}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("stream.end", payload)
}
