package events

import "github.com/stefvonb/lazy-pdb/internal/logging"

type UITracer struct{}

type ActionTracer struct{}

type CommandTracer struct{}

var (
	UI      = UITracer{}
	Action  = ActionTracer{}
	Command = CommandTracer{}
)

func (UITracer) Panel(panel string) {
	logging.Trace("ui.panel", map[string]interface{}{"panel": panel})
}

func (UITracer) Frame(index int) {
	logging.Trace("ui.frame", map[string]interface{}{"index": index})
}

func (UITracer) Mode(from, to string) {
	logging.Trace("ui.mode", map[string]interface{}{"from": from, "to": to})
}

func (ActionTracer) Error(err error) {
	if err == nil {
		return
	}
	logging.Trace("action.error", map[string]interface{}{"error": err.Error()})
}

func (ActionTracer) Refused(action, pending string) {
	logging.Trace("action.refused", map[string]interface{}{"action": action, "pending": pending})
}

func (CommandTracer) Queue(id, action string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "action": action})
}

func (CommandTracer) Result(id, action, status string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "action": action, "status": status})
}

func (CommandTracer) Error(id, action string, err error) {
	logging.Trace("command.error", map[string]interface{}{"id": id, "action": action, "error": err.Error()})
}
