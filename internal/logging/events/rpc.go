package events

import "github.com/stefvonb/lazy-pdb/internal/logging"

type PushTracer struct{}

var Push = PushTracer{}

func (PushTracer) Listen(addr string) {
	logging.Trace("push.listen", map[string]interface{}{"addr": addr})
}

func (PushTracer) Snapshot(frames int) {
	logging.Trace("push.snapshot", map[string]interface{}{"frames": frames})
}

func (PushTracer) Reject(method string, err error) {
	if err == nil {
		return
	}
	logging.Trace("push.reject", map[string]interface{}{"method": method, "error": err.Error()})
}
