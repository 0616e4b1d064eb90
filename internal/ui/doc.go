// Package ui contains the Bubble Tea program that renders the debugger.
//
// Event flow:
//   - Bubble Tea owns the terminal. Key, mouse and resize messages are not
//     acted on directly; Update converts them to event values and sends them
//     into the event.Multiplexer alongside ticks, snapshot pushes, debuggee
//     output and command outcomes.
//   - waitForEvent blocks on the multiplexer and hands each event back to
//     Update as an eventMsg. apply performs the transition on state.App and
//     re-arms the wait, so events are consumed strictly one at a time in
//     arrival order.
//
// Commands:
//   - Debugger actions (continue, next, step, return, stop) run through the
//     command.Bus as tea.Cmd values, off the update loop. Their result comes
//     back as an event.ActionCompleted; state.App refuses a second action while
//     one is pending.
//
// Rendering:
//   - The call stack and code panels share the top row, variables and output
//     the bottom row, with a status row underneath. Panel view state (list
//     cursors, the variable filter, the output viewport) lives on the Model and
//     is rebuilt from state.App after every event.
package ui
