package ui

import (
	"reflect"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/stefvonb/lazy-pdb/internal/event"
	"github.com/stefvonb/lazy-pdb/internal/source"
	"github.com/stefvonb/lazy-pdb/internal/state"
	"github.com/stefvonb/lazy-pdb/internal/theme"
	"github.com/stefvonb/lazy-pdb/internal/ui/command"
	uistate "github.com/stefvonb/lazy-pdb/internal/ui/state"
)

var styles = theme.Default()

type msgHandler func(tea.Msg) tea.Cmd

// Options configures a Model.
type Options struct {
	// Mux carries every input event; NewModel creates one when nil.
	Mux        *event.Multiplexer
	Controller command.Controller
	Sources    *source.Cache
	// Listen makes the model block on the multiplexer between events. A
	// program needs it; tests drive the queue through Harness.Pump instead.
	Listen bool
	Width  int
	Height int
}

// Model implements the Bubble Tea model for the debugger front end.
type Model struct {
	app     *state.App
	mux     *event.Multiplexer
	sender  event.Sender
	bus     *command.Bus
	sources *source.Cache
	listen  bool

	width  int
	height int

	stack     *uistate.List
	vars      *uistate.List
	filtering bool
	output    viewport.Model
	help      help.Model

	// rendered output lines and whether the viewport still lacks some
	outputCache []string
	outputDirty bool

	handlers map[reflect.Type]msgHandler
}

// NewModel initialises the UI state.
func NewModel(opts Options) *Model {
	mux := opts.Mux
	if mux == nil {
		mux = event.New()
	}
	sources := opts.Sources
	if sources == nil {
		sources = source.NewCache()
	}
	m := &Model{
		app:     state.New(),
		mux:     mux,
		sender:  mux.Sender(),
		sources: sources,
		listen:  opts.Listen,
		stack:   uistate.NewList(nil),
		vars:    uistate.NewList(nil),
		output:  viewport.New(0, 0),
		help:    help.New(),
	}
	m.bus = command.New(opts.Controller, m.sender)
	m.resize(opts.Width, opts.Height)
	m.registerHandlers()
	return m
}

// Init is part of the tea.Model interface.
func (m *Model) Init() tea.Cmd {
	if !m.listen {
		return nil
	}
	return waitForEvent(m.mux)
}

// Update responds to Bubble Tea messages. Terminal messages are forwarded
// into the multiplexer so they are ordered with every other source; state
// only changes when an event comes back out.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if handler := m.handlerFor(msg); handler != nil {
		return m, handler(msg)
	}
	return m, nil
}

func (m *Model) registerHandlers() {
	m.handlers = map[reflect.Type]msgHandler{
		reflect.TypeOf(tea.KeyMsg{}):        m.handleKeyMsg,
		reflect.TypeOf(tea.MouseMsg{}):      m.handleMouseMsg,
		reflect.TypeOf(tea.WindowSizeMsg{}): m.handleWindowSizeMsg,
		reflect.TypeOf(eventMsg{}):          m.handleEventMsg,
		reflect.TypeOf(muxClosedMsg{}):      m.handleMuxClosedMsg,
	}
}

func (m *Model) handlerFor(msg tea.Msg) msgHandler {
	if msg == nil || m.handlers == nil {
		return nil
	}
	t := reflect.TypeOf(msg)
	if handler, ok := m.handlers[t]; ok {
		return handler
	}
	if t.Kind() == reflect.Ptr {
		if handler, ok := m.handlers[t.Elem()]; ok {
			return handler
		}
	}
	return nil
}

// State exposes the application state. It must only be read from the
// update loop.
func (m *Model) State() *state.App {
	return m.app
}

// Sender returns a producer handle for the model's multiplexer.
func (m *Model) Sender() event.Sender {
	return m.sender
}
