package ui

import (
	"fmt"
	"math"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"pkt.systems/pslog"

	"picturereel/internal/carousel"
	"picturereel/internal/carousel/gesture"
	"picturereel/internal/carousel/navigation"
	"picturereel/internal/config"
	"picturereel/internal/domain"
	"picturereel/internal/eventbus"
	"picturereel/internal/ui/input"
	inputtypes "picturereel/internal/ui/input/types"
	"picturereel/internal/ui/state"
	"picturereel/internal/ui/transition"
	"picturereel/internal/ui/views"
)

const (
	frameInterval = 33 * time.Millisecond
	statusTimeout = 3 * time.Second
)

// Model represents the UI state
type Model struct {
	bus    eventbus.EventBus
	config *config.Config
	state  *state.AppState
	logger pslog.Logger

	widget     *carousel.Widget
	tracker    *gesture.Tracker
	transition *transition.Transition
	layout     views.Layout

	help      help.Model
	paginator paginator.Model
	spinner   spinner.Model

	renderer     *views.Renderer
	helpRenderer *HelpRenderer
	inputHandler *input.Handler

	now func() time.Time

	// Program reference for terminal management
	program *tea.Program
}

// NewModel creates a new UI model showing set
func NewModel(cfg *config.Config, bus eventbus.EventBus, set domain.PictureSet, logger pslog.Logger) (*Model, error) {
	source := cfg.BaseDir
	if len(cfg.Pictures) > 0 {
		source = config.FileName
	}

	p := paginator.New()
	p.Type = paginator.Dots
	p.PerPage = 1

	m := &Model{
		bus:    bus,
		config: cfg,
		state:  state.NewAppState(source),
		logger: logger,
		tracker: gesture.NewTracker(gesture.TrackerOptions{
			CellWidth:  cfg.UI.CellWidthPx,
			CellHeight: cfg.UI.CellHeightPx,
			Rubberband: cfg.UI.Rubberband,
		}),
		help:         help.New(),
		paginator:    p,
		spinner:      spinner.New(spinner.WithSpinner(spinner.Dot)),
		renderer:     views.NewRenderer(),
		helpRenderer: NewHelpRenderer(),
		inputHandler: input.New(),
		now:          time.Now,
	}

	if err := m.mount(set); err != nil {
		return nil, err
	}
	return m, nil
}

// SetProgram sets the program reference for terminal management
func (m *Model) SetProgram(p *tea.Program) {
	m.program = p
}

// Init returns an initial command
func (m *Model) Init() tea.Cmd {
	return nil
}

// mount replaces the carousel with a fresh one over set, starting at (0, 0)
func (m *Model) mount(set domain.PictureSet) error {
	w, err := carousel.New(set,
		carousel.WithBus(m.bus),
		carousel.WithSource(m.tracker),
	)
	if err != nil {
		return fmt.Errorf("mount carousel: %w", err)
	}
	m.widget = w
	m.transition = nil
	m.tracker.Release()
	m.paginator.SetTotalPages(set.Len())
	m.paginator.Page = 0
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.state.Width = msg.Width
		m.state.Height = msg.Height
		m.help.Width = msg.Width
		m.relayout()
		return m, nil

	case tea.KeyMsg:
		if m.state.InPagerMode {
			return m, nil
		}
		var cmds []tea.Cmd
		for _, action := range m.inputHandler.HandleKey(msg) {
			if cmd := m.processAction(action); cmd != nil {
				cmds = append(cmds, cmd)
			}
		}
		return m, tea.Batch(cmds...)

	case tea.MouseMsg:
		if m.state.InPagerMode {
			return m, nil
		}
		return m, m.handleMouse(msg)

	default:
		return m.handleNonKeyboardMsg(msg)
	}
}

// relayout recomputes the viewport and the free drag travel after a resize or
// a help toggle
func (m *Model) relayout() {
	helpLines := lipgloss.Height(m.help.View(m.inputHandler.Keys()))
	m.layout = views.ComputeLayout(m.state.Width, m.state.Height, helpLines)
	m.tracker.SetBounds(m.layout.Width/2, m.layout.ViewportHeight/2)
}

func (m *Model) processAction(action inputtypes.Action) tea.Cmd {
	switch a := action.(type) {
	case inputtypes.PaginateAction:
		return m.paginate(a.Delta)

	case inputtypes.ToggleHelpAction:
		m.help.ShowAll = !m.help.ShowAll
		m.relayout()
		return nil

	case inputtypes.OpenHelpPagerAction:
		if m.program == nil {
			m.help.ShowAll = true
			m.relayout()
			return nil
		}
		return m.fetchHelpPager(m.helpRenderer.RenderHelpContent())

	case inputtypes.RescanAction:
		if m.bus == nil || m.state.Scanning {
			return nil
		}
		m.bus.Publish(eventbus.ScanRequestedEvent{Paths: []string{m.config.BaseDir}})
		return nil

	case inputtypes.QuitAction:
		return tea.Quit
	}
	return nil
}

// paginate steps the carousel from a key or a control click
func (m *Model) paginate(delta int) tea.Cmd {
	from := m.widget.Navigation()
	to := m.widget.Paginate(delta)
	return m.startTransition(from, to)
}

func (m *Model) handleMouse(msg tea.MouseMsg) tea.Cmd {
	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return nil
		}
		switch m.layout.HitTest(msg.X, msg.Y) {
		case views.ZonePrevious:
			return m.paginate(navigation.Previous)
		case views.ZoneNext:
			return m.paginate(navigation.Next)
		case views.ZonePicture:
			m.tracker.Press(msg.X, msg.Y, m.now())
			m.widget.BeginDrag()
		}

	case tea.MouseActionMotion:
		sample, ok := m.tracker.Move(msg.X, msg.Y, m.now())
		if !ok {
			return nil
		}
		from := m.widget.Navigation()
		out := m.widget.Drag(sample)
		if out.Commit {
			m.logger.Debug("swipe committed", "delta", out.Delta, "power", out.Power)
			return m.startTransition(from, m.widget.Navigation())
		}

	case tea.MouseActionRelease:
		if m.tracker.Release() {
			m.widget.EndDrag()
		}
	}
	return nil
}

// startTransition slides from one picture to the next. Nothing moves when the
// index did not change.
func (m *Model) startTransition(from, to domain.NavigationState) tea.Cmd {
	m.paginator.Page = to.CurrentIndex
	if from.CurrentIndex == to.CurrentIndex {
		return nil
	}
	d := time.Duration(m.config.UI.TransitionMs) * time.Millisecond
	if d <= 0 {
		m.transition = nil
		return nil
	}
	m.transition = transition.New(from.CurrentIndex, to.CurrentIndex, to.Direction, d, m.now())
	return frameTick()
}

func frameTick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return frameMsg(t)
	})
}

func clearStatusAfter(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(time.Time) tea.Msg { return clearStatusMsg{} })
}

func (m *Model) handleNonKeyboardMsg(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case EventMsg:
		return m, m.handleEvent(msg.Event)

	case frameMsg:
		if m.transition == nil {
			return m, nil
		}
		if m.state.InPagerMode || m.transition.Done(m.now()) {
			m.transition = nil
			return m, nil
		}
		return m, frameTick()

	case spinner.TickMsg:
		if !m.state.Scanning {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case helpPagerMsg:
		if msg.err != nil {
			m.logger.Warn("help pager failed", "err", msg.err)
		}
		return m, nil

	case pauseRenderingMsg:
		m.state.InPagerMode = true
		return m, nil

	case resumeRenderingMsg:
		m.state.InPagerMode = false
		return m, nil

	case clearStatusMsg:
		if m.state.StatusKind != views.StatusLoading {
			m.state.ClearStatus()
		}
		return m, nil
	}
	return m, nil
}

func (m *Model) handleEvent(event eventbus.DomainEvent) tea.Cmd {
	switch e := event.(type) {
	case eventbus.ScanStartedEvent:
		m.state.Scanning = true
		m.state.SetStatus(views.StatusLoading, "Scanning for pictures...")
		return m.spinner.Tick

	case eventbus.ScanCompletedEvent:
		m.state.Scanning = false
		m.state.SetStatus(views.StatusInfo, fmt.Sprintf("Found %d pictures", e.PicturesFound))
		return clearStatusAfter(statusTimeout)

	case eventbus.PicturesDiscoveredEvent:
		return m.handleDiscovered(e)

	case eventbus.ErrorEvent:
		m.logger.Warn("error event", "message", e.Message, "err", e.Err)
		msg := e.Message
		if e.Err != nil {
			msg = fmt.Sprintf("%s: %v", e.Message, e.Err)
		}
		m.state.SetStatus(views.StatusError, msg)
		return nil
	}
	return nil
}

// handleDiscovered remounts the carousel on a changed scan result. Pictures
// listed in the config file are never replaced by a scan.
func (m *Model) handleDiscovered(e eventbus.PicturesDiscoveredEvent) tea.Cmd {
	if len(m.config.Pictures) > 0 {
		return nil
	}
	if len(e.Pictures) == 0 {
		m.state.SetStatus(views.StatusError, fmt.Sprintf("No pictures found in %s", e.Root))
		return nil
	}
	if samePictures(m.widget.Pictures().All(), e.Pictures) {
		return nil
	}

	set, err := domain.NewPictureSet(e.Pictures)
	if err != nil {
		m.state.SetStatus(views.StatusError, err.Error())
		return nil
	}
	if err := m.mount(set); err != nil {
		m.state.SetStatus(views.StatusError, err.Error())
		return nil
	}
	m.logger.Info("pictures remounted", "root", e.Root, "count", set.Len())
	return nil
}

func samePictures(a, b []domain.Picture) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// fetchHelpPager returns a command that shows help using ov pager
func (m *Model) fetchHelpPager(helpContent string) tea.Cmd {
	ops := NewHelpOps(m.program)
	return func() tea.Msg {
		m.program.Send(pauseRenderingMsg{})
		err := ops.ShowHelpInPager(helpContent)
		m.program.Send(resumeRenderingMsg{})
		return helpPagerMsg{err: err}
	}
}

// View renders the UI
func (m *Model) View() string {
	if m.state.Width == 0 {
		return "Loading..."
	}
	if m.state.InPagerMode {
		return ""
	}

	current := m.widget.Current()
	vs := views.ViewState{
		Layout:          m.layout,
		Title:           m.title(),
		Cards:           m.cards(m.now()),
		Description:     current.Description,
		ShowDescription: m.config.UI.ShowDescription,
		Dots:            m.paginator.View(),
		StatusMessage:   m.state.StatusMessage,
		StatusKind:      m.state.StatusKind,
		HelpView:        m.help.View(m.inputHandler.Keys()),
	}
	if m.state.Scanning {
		vs.Spinner = m.spinner.View()
	}
	return m.renderer.Render(vs)
}

func (m *Model) title() string {
	if m.state.Source == config.FileName {
		return m.state.Source
	}
	return filepath.Base(m.state.Source)
}

// cards places the resting picture, or both pictures of a running slide
func (m *Model) cards(now time.Time) []views.CardPlacement {
	set := m.widget.Pictures()
	nav := m.widget.Navigation()
	drag := m.widget.DragOffset()

	if m.transition != nil && !m.transition.Done(now) {
		out := m.transition.Outgoing(now)
		in := m.transition.Incoming(now)
		return []views.CardPlacement{
			m.placement(set, m.transition.From, out.OffsetX, out.Opacity),
			m.placement(set, nav.CurrentIndex, in.OffsetX+drag.OffsetX, in.Opacity),
		}
	}
	return []views.CardPlacement{m.placement(set, nav.CurrentIndex, drag.OffsetX, 1)}
}

func (m *Model) placement(set domain.PictureSet, index int, offsetPx, opacity float64) views.CardPlacement {
	return views.CardPlacement{
		Picture:    set.At(index),
		Index:      index,
		Total:      set.Len(),
		OffsetCols: int(math.Round(offsetPx / m.tracker.CellWidth())),
		Opacity:    opacity,
	}
}
