// Package tui is the Bubble Tea interface of the sleep diary: a month
// calendar, the notes of the selected day and a note form.
package tui

import (
	"context"
	"errors"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"tableflip.dev/sleepdiary/pkg/app"
	"tableflip.dev/sleepdiary/pkg/note"
	"tableflip.dev/sleepdiary/pkg/store"
	"tableflip.dev/sleepdiary/pkg/timeutil"
	"tableflip.dev/sleepdiary/pkg/tui/calendar"
	"tableflip.dev/sleepdiary/pkg/tui/form"
	"tableflip.dev/sleepdiary/pkg/tui/theme"
)

type mode int

const (
	modeBrowse mode = iota
	modeForm
	modeConfirmDelete
	modeBedtime
	modeHelp
)

type pane int

const (
	paneCalendar pane = iota
	paneNotes
)

const browseHelp = "h/j/k/l move · [/] month · t today · tab notes · a add · e edit · d delete · b bedtime · ? help · q quit"

// Model contains UI state.
type Model struct {
	svc   *app.Service
	ctx   context.Context
	now   func() time.Time
	theme theme.Theme

	mode  mode
	focus pane

	month    time.Time
	selected time.Time
	grid     app.MonthGrid
	notes    []note.SleepNote
	cursor   int

	form     form.Model
	wake     textinput.Model
	bedtimes []timeutil.Bedtime

	status string
	failed bool

	changes <-chan store.Event

	termWidth  int
	termHeight int
}

// Option configures a Model.
type Option func(*Model)

// WithClock replaces time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *Model) { m.now = now }
}

// WithChanges refreshes the view whenever ch yields.
func WithChanges(ch <-chan store.Event) Option {
	return func(m *Model) { m.changes = ch }
}

// WithContext sets the context passed to the service.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// New creates a UI model backed by svc, showing today.
func New(svc *app.Service, opts ...Option) Model {
	wake := textinput.New()
	wake.Placeholder = "07:00"
	wake.Prompt = "Wake up at "
	wake.CharLimit = len("HH:MM")

	m := Model{
		svc:    svc,
		ctx:    context.Background(),
		now:    time.Now,
		theme:  theme.Default(),
		form:   form.New(),
		wake:   wake,
		status: browseHelp,
	}
	for _, opt := range opts {
		opt(&m)
	}
	today := app.StartOfDay(m.now())
	m.selected = today
	m.month = calendar.FirstOfMonth(today)
	m.grid = app.BuildMonth(m.month, m.now(), nil)
	return m
}

// messages
type loadedMsg struct {
	grid  app.MonthGrid
	notes []note.SleepNote
	err   error
}
type changedMsg struct{ event store.Event }
type savedMsg struct {
	note note.SleepNote
	err  error
}
type deletedMsg struct {
	id  string
	err error
}

// Init loads the current month and starts listening for store changes.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.load(), m.waitForChange())
}

func (m Model) load() tea.Cmd {
	svc, ctx, month, day := m.svc, m.ctx, m.month, m.selected
	return func() tea.Msg {
		if svc == nil {
			return loadedMsg{err: app.ErrNoStore}
		}
		grid, err := svc.Month(ctx, month)
		if err != nil {
			return loadedMsg{err: err}
		}
		notes, err := svc.NotesOn(ctx, day)
		return loadedMsg{grid: grid, notes: notes, err: err}
	}
}

func (m Model) waitForChange() tea.Cmd {
	ch := m.changes
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return changedMsg{event: ev}
	}
}

func (m Model) save(req app.SaveRequest) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		n, err := svc.Save(ctx, req)
		return savedMsg{note: n, err: err}
	}
}

func (m Model) remove(id string) tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		_, err := svc.Delete(ctx, id)
		return deletedMsg{id: id, err: err}
	}
}

func (m *Model) setStatus(text string) {
	m.status = text
	m.failed = false
}

func (m *Model) setError(err error) {
	m.status = err.Error()
	m.failed = true
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.termWidth = msg.Width
		m.termHeight = msg.Height
		m.form.SetWidth(m.formWidth())
		return m, nil
	case loadedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.grid = msg.grid
		m.notes = msg.notes
		if m.cursor >= len(m.notes) {
			m.cursor = len(m.notes) - 1
		}
		if m.cursor < 0 {
			m.cursor = 0
		}
		if len(m.notes) == 0 {
			m.focus = paneCalendar
		}
		return m, nil
	case changedMsg:
		return m, tea.Batch(m.load(), m.waitForChange())
	case savedMsg:
		if msg.err != nil {
			m.setError(msg.err)
			return m, nil
		}
		m.mode = modeBrowse
		if m.form.EditID == "" {
			m.setStatus("Saved " + msg.note.Title)
			m.selected = app.StartOfDay(msg.note.CreatedAt.In(m.now().Location()))
			m.month = calendar.FirstOfMonth(m.selected)
		} else {
			m.setStatus("Updated " + msg.note.Title)
		}
		m.form = form.New()
		return m, m.load()
	case deletedMsg:
		if msg.err != nil {
			m.setError(msg.err)
		} else {
			m.setStatus("Deleted")
		}
		m.mode = modeBrowse
		return m, m.load()
	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	if m.mode == modeForm {
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	switch m.mode {
	case modeHelp:
		switch msg.String() {
		case "q", "esc", "?":
			m.mode = modeBrowse
		}
		return m, nil

	case modeConfirmDelete:
		switch msg.String() {
		case "y", "Y", "enter":
			if n, ok := m.current(); ok {
				return m, m.remove(n.ID)
			}
			m.mode = modeBrowse
		case "n", "N", "esc", "q":
			m.mode = modeBrowse
			m.setStatus("Delete cancelled")
		}
		return m, nil

	case modeBedtime:
		switch msg.String() {
		case "esc":
			m.mode = modeBrowse
			m.wake.Blur()
			m.setStatus(browseHelp)
			return m, nil
		}
		var cmd tea.Cmd
		m.wake, cmd = m.wake.Update(msg)
		if clean := timeutil.SanitizeKeystroke(m.wake.Value()); clean != m.wake.Value() {
			m.wake.SetValue(clean)
			m.wake.CursorEnd()
		}
		m.bedtimes = nil
		if c, err := timeutil.ParseClock(m.wake.Value()); err == nil {
			m.bedtimes = timeutil.SuggestBedtimeDetails(c)
		}
		return m, cmd

	case modeForm:
		switch msg.String() {
		case "esc":
			m.mode = modeBrowse
			m.form = form.New()
			m.setStatus("Cancelled")
			return m, nil
		case "ctrl+s":
			if !m.form.CanSave() {
				m.setError(errors.New("title and note are required and times must be HH:MM"))
				return m, nil
			}
			return m, m.save(m.form.Request())
		}
		var cmd tea.Cmd
		m.form, cmd = m.form.Update(msg)
		return m, cmd
	}

	return m.handleBrowseKey(msg)
}

func (m Model) handleBrowseKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	now := m.now()
	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "?":
		m.mode = modeHelp
		return m, nil
	case "tab":
		if m.focus == paneCalendar && len(m.notes) > 0 {
			m.focus = paneNotes
		} else {
			m.focus = paneCalendar
		}
		return m, nil
	case "a", "o":
		return m.openForm(form.New())
	case "b":
		m.mode = modeBedtime
		m.wake.Reset()
		m.bedtimes = nil
		cmd := m.wake.Focus()
		return m, cmd
	case "t":
		return m.selectDay(app.StartOfDay(now), calendar.FirstOfMonth(now))
	case "[":
		return m.selectDay(calendar.ShiftMonth(m.selected, -1, now))
	case "]":
		return m.selectDay(calendar.ShiftMonth(m.selected, 1, now))
	}

	if m.focus == paneNotes {
		switch msg.String() {
		case "j", "down":
			if m.cursor < len(m.notes)-1 {
				m.cursor++
			}
		case "k", "up":
			if m.cursor > 0 {
				m.cursor--
			}
		case "esc", "h", "left":
			m.focus = paneCalendar
		case "e", "enter":
			if n, ok := m.current(); ok {
				return m.openForm(form.Edit(n))
			}
		case "d", "x":
			if _, ok := m.current(); ok {
				m.mode = modeConfirmDelete
			}
		}
		return m, nil
	}

	delta := 0
	switch msg.String() {
	case "h", "left":
		delta = -1
	case "l", "right":
		delta = 1
	case "k", "up":
		delta = -7
	case "j", "down":
		delta = 7
	case "enter":
		if len(m.notes) > 0 {
			m.focus = paneNotes
		}
		return m, nil
	}
	if delta == 0 {
		return m, nil
	}
	return m.selectDay(calendar.Move(m.selected, delta, now))
}

func (m Model) selectDay(day, month time.Time) (tea.Model, tea.Cmd) {
	m.selected = day
	m.cursor = 0
	if !month.Equal(m.month) {
		m.month = month
		m.grid = app.BuildMonth(month, m.now(), nil)
	}
	m.notes = nil
	return m, m.load()
}

func (m Model) openForm(f form.Model) (tea.Model, tea.Cmd) {
	f.SetWidth(m.formWidth())
	m.form = f
	m.mode = modeForm
	m.setStatus("")
	cmd := m.form.Focus(form.Title)
	return m, tea.Batch(cmd, textinput.Blink)
}

func (m Model) current() (note.SleepNote, bool) {
	if m.cursor < 0 || m.cursor >= len(m.notes) {
		return note.SleepNote{}, false
	}
	return m.notes[m.cursor], true
}

func (m Model) formWidth() int {
	w := m.termWidth - 8
	if w > 72 {
		w = 72
	}
	return w
}

// Run launches the UI on the terminal and refreshes it whenever the journal
// changes, from this process or another one.
func Run(ctx context.Context, svc *app.Service, logger *zap.SugaredLogger) error {
	if svc == nil {
		return app.ErrNoStore
	}
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	changes := make(chan store.Event, 16)
	forward := func(ev store.Event) {
		select {
		case changes <- ev:
		default:
		}
	}

	unsubscribe, err := svc.Subscribe(forward)
	if err != nil {
		return err
	}
	defer unsubscribe()

	if events, err := svc.Watch(ctx); err != nil {
		logger.Debugw("not watching the journal for other writers", "error", err)
	} else {
		go func() {
			for ev := range events {
				forward(ev)
			}
		}()
	}

	p := tea.NewProgram(New(svc, WithChanges(changes), WithContext(ctx)), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err = p.Run()
	if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
		return nil
	}
	return err
}
