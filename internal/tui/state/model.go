// Package state is the root bubbletea model. It owns the REPL history view
// and the map view and toggles between them.
package state

import (
	"context"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/cristianoliveira/maprepl/internal/errors"
	"github.com/cristianoliveira/maprepl/internal/logging"
	"github.com/cristianoliveira/maprepl/internal/mapview"
	"github.com/cristianoliveira/maprepl/internal/repl"
	"github.com/cristianoliveira/maprepl/internal/tui/render"
)

// View selects the visible screen.
type View int

const (
	ViewMap View = iota
	ViewREPL
)

// ParseView accepts "map" and "repl"; anything else is the map.
func ParseView(s string) View {
	if s == "repl" {
		return ViewREPL
	}
	return ViewMap
}

const (
	headerLines           = 1
	footerLines           = 2
	defaultViewportWidth  = 80
	defaultViewportHeight = 24
)

// Options wires the model to the application.
type Options struct {
	Dispatcher *repl.Dispatcher
	Session    *repl.Session
	Controller *mapview.Controller
	StartView  View
	Logger     logging.Logger
	Context    context.Context
	Now        func() time.Time
}

// Model is the root TUI model.
type Model struct {
	ctx    context.Context
	log    logging.Logger
	now    func() time.Time
	view   View
	width  int
	height int

	// REPL
	dispatcher *repl.Dispatcher
	session    *repl.Session
	replInput  textinput.Model
	history    viewport.Model
	entries    []repl.Entry

	// Map
	controller  *mapview.Controller
	bridge      *mapview.Bridge
	mapState    mapview.State
	mapInput    textinput.Model
	canvasFocus bool
	alerts      *errors.TUIHandler
}

// NewModel creates the root model.
func NewModel(opts Options) *Model {
	if opts.Logger == nil {
		opts.Logger = logging.Nop()
	}
	if opts.Context == nil {
		opts.Context = context.Background()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.Session == nil {
		opts.Session = repl.NewSession(repl.ModeBrief)
	}

	m := &Model{
		ctx:        opts.Context,
		log:        opts.Logger.With("component", "tui"),
		now:        opts.Now,
		view:       opts.StartView,
		width:      defaultViewportWidth,
		height:     defaultViewportHeight,
		dispatcher: opts.Dispatcher,
		session:    opts.Session,
		replInput:  newInput("Enter command here!"),
		controller: opts.Controller,
		mapInput:   newInput("broadband <state> <county> | search <keyword> | mocksearch <keyword>"),
		mapState:   mapview.NewState(),
	}
	if m.controller != nil {
		m.bridge = mapview.NewBridge(m.controller)
	}
	m.history = viewport.New(m.width, m.bodyHeight())
	m.alerts = errors.NewTUIHandler(func(msg errors.Message) {
		m.log.Info("alert", "type", msg.Type.String(), "text", msg.Text)
	})
	m.focusActiveInput()
	m.refreshHistory()
	return m
}

func newInput(placeholder string) textinput.Model {
	in := textinput.New()
	in.Placeholder = placeholder
	in.Prompt = "> "
	in.CharLimit = 0
	return in
}

// Init starts the base overlay fetch.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.loadBase(), textinput.Blink)
}

// Update handles messages and updates the model state.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		return m.handleWindowSize(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case entryRecordedMsg:
		if msg.Err != nil {
			m.log.Error("history record failed", "error", msg.Err.Error())
		}
		m.refreshHistory()
		return m, nil
	case mapOutcomeMsg:
		m.applyOutcome(msg.Outcome)
		return m, nil
	}
	return m.updateInput(msg)
}

func (m *Model) handleWindowSize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width, m.height = msg.Width, msg.Height
	m.history.Width = m.width
	m.history.Height = m.bodyHeight()
	m.replInput.Width = max(m.width-4, 1)
	m.mapInput.Width = max(m.width-4, 1)
	m.refreshHistory()
	return m, nil
}

func (m *Model) bodyHeight() int {
	return max(m.height-headerLines-footerLines, 1)
}

func (m *Model) focusActiveInput() {
	if m.view == ViewREPL {
		m.mapInput.Blur()
		m.replInput.Focus()
		return
	}
	m.replInput.Blur()
	if m.canvasFocus {
		m.mapInput.Blur()
		return
	}
	m.mapInput.Focus()
}

func (m *Model) refreshHistory() {
	if m.dispatcher != nil {
		m.entries = m.dispatcher.Store().Entries()
	}
	m.history.SetContent(render.History(render.HistoryFrame{
		Entries: m.entries,
		Mode:    m.session.Mode(),
		Width:   m.width,
		Now:     m.now(),
	}))
	m.history.GotoBottom()
}

func (m *Model) applyOutcome(o mapview.Outcome) {
	m.mapState = o.Apply(m.mapState)
	if o.HasAlert() {
		m.alerts.Push(o.Alert, o.AlertType)
	}
}

func (m *Model) projection() render.Projection {
	return render.NewProjection(m.mapState.Viewport, m.width, m.bodyHeight())
}

// CurrentView reports the visible screen.
func (m *Model) CurrentView() View { return m.view }

// MapState returns the map view state.
func (m *Model) MapState() mapview.State { return m.mapState }

// Entries returns the REPL history shown in the view.
func (m *Model) Entries() []repl.Entry { return m.entries }
