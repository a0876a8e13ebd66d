// Package host runs a built element tree as an interactive terminal program
// on top of bubbletea.
//
// The model turns terminal messages into element events, dispatches them
// through the tree synchronously, and redraws into a term.Grid. The last
// frame is kept as a picture.Picture and reused until an event is
// dispatched, the terminal is resized, or a CellChanged message names a
// cell the tree depends on.
package host

import (
	"context"
	stderrors "errors"
	"image/color"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/go-drift/strata/pkg/element"
	"github.com/go-drift/strata/pkg/errors"
	"github.com/go-drift/strata/pkg/geometry"
	"github.com/go-drift/strata/pkg/picture"
	"github.com/go-drift/strata/pkg/shared"
	"github.com/go-drift/strata/pkg/term"
)

// DefaultQuitKeys end the program unless overridden with WithQuitKeys.
var DefaultQuitKeys = []string{"ctrl+c", "q"}

// CellChanged tells the model that a shared cell was written outside event
// dispatch, for example by a background goroutine. Send it with
// tea.Program.Send.
type CellChanged struct {
	Addr shared.Addr
}

// Custom delivers an application payload to the tree as a Custom event.
type Custom struct {
	Payload any
}

type tickMsg time.Time

// Model is a tea.Model hosting an element tree.
type Model struct {
	root       element.Drawable
	resources  element.Resources
	background color.NRGBA
	quitKeys   map[string]bool
	tick       time.Duration
	now        func() time.Time
	logger     *log.Logger
	title      string

	width, height int
	frame         *picture.Picture
	view          string
	dirty         bool
	lastErr       error
	redraws       int
}

// Option configures a Model.
type Option func(*Model)

// WithQuitKeys replaces the keys that end the program.
func WithQuitKeys(keys ...string) Option {
	return func(m *Model) {
		m.quitKeys = make(map[string]bool, len(keys))
		for _, k := range keys {
			m.quitKeys[k] = true
		}
	}
}

// WithTick enables periodic Tick events. A zero interval disables them.
func WithTick(interval time.Duration) Option {
	return func(m *Model) { m.tick = interval }
}

// WithClock sets the time source used to stamp ticks.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithBackground sets the colour the grid is cleared to before each frame.
func WithBackground(c color.NRGBA) Option {
	return func(m *Model) { m.background = c }
}

// WithResources sets the bundle passed to every draw.
func WithResources(res element.Resources) Option {
	return func(m *Model) { m.resources = res }
}

// WithLogger sets the logger for host diagnostics.
func WithLogger(l *log.Logger) Option {
	return func(m *Model) { m.logger = l }
}

// WithTitle sets the terminal window title.
func WithTitle(title string) Option {
	return func(m *Model) { m.title = title }
}

// WithSize sets the initial size, before the terminal reports one.
func WithSize(width, height int) Option {
	return func(m *Model) {
		m.width = width
		m.height = height
	}
}

// New returns a model hosting root.
func New(root element.Drawable, opts ...Option) *Model {
	m := &Model{
		root:       root,
		resources:  element.NoResources,
		background: color.NRGBA{A: 255},
		now:        time.Now,
		logger:     log.Default(),
		dirty:      true,
	}
	WithQuitKeys(DefaultQuitKeys...)(m)
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Init sets the window title and starts the ticker, when configured.
func (m *Model) Init() tea.Cmd {
	if m.title == "" {
		return m.scheduleTick()
	}
	return tea.Batch(tea.SetWindowTitle(m.title), m.scheduleTick())
}

// Update handles one message.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.logger.Debug("resize", "width", msg.Width, "height", msg.Height)
		m.dispatch(element.ResizeEvent(m.Size()))

	case tea.KeyMsg:
		key := msg.String()
		if m.quitKeys[key] {
			return m, tea.Quit
		}
		m.dispatch(element.KeyEvent(key))

	case tickMsg:
		m.dispatch(element.TickEvent(time.Time(msg)))
		return m, m.scheduleTick()

	case Custom:
		m.dispatch(element.Event{Kind: element.Custom, Payload: msg.Payload})

	case CellChanged:
		if element.InvalidateCache(m.root, msg.Addr) {
			m.dirty = true
		}
	}
	return m, nil
}

// View renders the current frame.
func (m *Model) View() string {
	if m.width <= 0 || m.height <= 0 {
		return ""
	}
	if m.dirty || m.frame == nil {
		m.frame = picture.Record(m.root, m.resources, m.Size())
		grid := term.NewGrid(m.width, m.height)
		grid.Clear(m.background)
		m.frame.Paint(grid)
		m.view = grid.Render()
		m.dirty = false
		m.redraws++
	}
	return m.view
}

// Size returns the current size in cells.
func (m *Model) Size() geometry.Size {
	return geometry.Size{Width: float64(m.width), Height: float64(m.height)}
}

// Err returns the last dispatch failure, or nil.
func (m *Model) Err() error {
	return m.lastErr
}

// Redraws counts how many frames were drawn from the tree rather than
// reused.
func (m *Model) Redraws() int {
	return m.redraws
}

// dispatch sends ev through the tree. Failures are reported to the global
// error handler; the program keeps running. Handlers may have written any
// cell, so the frame is always redrawn.
func (m *Model) dispatch(ev element.Event) {
	defer errors.Recover("host.dispatch")
	m.dirty = true
	err := element.HandleEvent(m.root, ev)
	m.lastErr = err
	if err != nil {
		errors.Report(&errors.StrataError{
			Op:   "host.dispatch",
			Kind: errors.KindEvent,
			Err:  err,
		})
	}
}

func (m *Model) scheduleTick() tea.Cmd {
	if m.tick <= 0 {
		return nil
	}
	return tea.Tick(m.tick, func(time.Time) tea.Msg {
		return tickMsg(m.now())
	})
}

// Run hosts root in the terminal until a quit key is pressed or ctx is
// done.
func Run(ctx context.Context, root element.Drawable, opts ...Option) error {
	p := tea.NewProgram(New(root, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil && !stderrors.Is(err, tea.ErrProgramKilled) {
		return &errors.StrataError{Op: "host.Run", Kind: errors.KindRender, Err: err}
	}
	return nil
}
