package pick

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/datebox/pkg/store"
	"tableflip.dev/datebox/pkg/tui/components/calendar"
	"tableflip.dev/datebox/pkg/tui/components/datebox"
	"tableflip.dev/datebox/pkg/tui/components/eventviewer"
	"tableflip.dev/datebox/pkg/tui/events"
	"tableflip.dev/datebox/pkg/tui/theme"
)

const (
	marginX     = 2
	maxWidth    = 40
	footerLines = 2
)

type formOptions struct {
	Fields     []Field
	Props      calendar.Props
	Store      store.Persistence
	Watch      bool
	ShowEvents bool
	Logger     *log.Logger
	Theme      theme.Theme
}

// form hosts one date input per field and moves focus between them.
type form struct {
	ctx    context.Context
	inputs []*datebox.Model
	slots  []string
	focus  int

	events     *eventviewer.Model
	showEvents bool
	theme      theme.Theme
	logger     *log.Logger

	store       store.Persistence
	watch       bool
	watchCh     <-chan store.Event
	watchCancel context.CancelFunc

	width  int
	height int

	submitting bool
	submitted  bool
	aborted    bool
	status     string
}

func newForm(ctx context.Context, opts formOptions) (*form, error) {
	if len(opts.Fields) == 0 {
		return nil, errors.New("pick: at least one field is required")
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard, "", 0)
	}
	if opts.Theme.Field.Glyph == "" {
		opts.Theme = theme.Default()
	}
	f := &form{
		ctx:        ctx,
		events:     eventviewer.NewModel(200),
		showEvents: opts.ShowEvents,
		theme:      opts.Theme,
		logger:     opts.Logger,
		store:      opts.Store,
		watch:      opts.Watch && opts.Store != nil,
	}
	seen := make(map[string]bool, len(opts.Fields))
	for _, field := range opts.Fields {
		if seen[field.Slot] {
			return nil, fmt.Errorf("pick: duplicate field %q", field.Slot)
		}
		seen[field.Slot] = true
		in, err := datebox.New(datebox.Options{
			ID:              events.ComponentID(field.Slot),
			LabelText:       field.Label,
			PreselectedDate: field.Date,
			DatePickerProps: opts.Props,
			Theme:           opts.Theme,
			Logger:          opts.Logger,
		})
		if err != nil {
			return nil, fmt.Errorf("pick: field %q: %w", field.Slot, err)
		}
		f.inputs = append(f.inputs, in)
		f.slots = append(f.slots, field.Slot)
	}
	return f, nil
}

func (f *form) Init() tea.Cmd {
	cmds := make([]tea.Cmd, 0, len(f.inputs)+2)
	for _, in := range f.inputs {
		cmds = append(cmds, in.Init())
	}
	cmds = append(cmds, f.inputs[0].Focus())
	if f.watch {
		cmds = append(cmds, f.startWatchCmd())
	}
	return tea.Batch(cmds...)
}

func (f *form) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if f.showEvents {
		f.events.Record(msg)
	}

	var cmds []tea.Cmd
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		f.width = msg.Width
		f.height = msg.Height
		f.layout()
		return f, nil
	case tea.KeyPressMsg:
		return f, f.handleKey(msg)
	case tea.MouseClickMsg:
		return f, f.handleClick(msg)
	case watchStartedMsg:
		if msg.err != nil {
			f.status = fmt.Sprintf("watch failed: %v", msg.err)
			f.logger.Printf("pick: %s", f.status)
			return f, nil
		}
		f.watchCh = msg.ch
		f.watchCancel = msg.cancel
		return f, f.waitForWatch()
	case watchEventMsg:
		cmds = append(cmds, f.handleWatchEvent(msg.event), f.waitForWatch())
		return f, tea.Batch(cmds...)
	case watchStoppedMsg:
		f.stopWatch()
		return f, nil
	case events.DateCommitMsg:
		f.status = fmt.Sprintf("%s = %s", msg.Component, msg.Value)
	}

	for i, in := range f.inputs {
		var cmd tea.Cmd
		f.inputs[i], cmd = in.Update(msg)
		cmds = append(cmds, cmd)
	}

	if lost, ok := msg.(events.FieldFocusLostMsg); ok && f.submitting && lost.Component == f.inputs[f.focus].FieldID() {
		f.submitted = true
		f.stopWatch()
		cmds = append(cmds, tea.Quit)
	}
	return f, tea.Batch(cmds...)
}

func (f *form) handleKey(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "ctrl+c":
		f.aborted = true
		f.stopWatch()
		return tea.Quit
	case "tab":
		return f.moveFocus(1)
	case "shift+tab":
		return f.moveFocus(-1)
	case "enter":
		if f.submitting {
			return nil
		}
		f.submitting = true
		if cmd := f.inputs[f.focus].Blur(); cmd != nil {
			return cmd
		}
		f.submitted = true
		f.stopWatch()
		return tea.Quit
	}
	var cmd tea.Cmd
	f.inputs[f.focus], cmd = f.inputs[f.focus].Update(msg)
	return cmd
}

func (f *form) moveFocus(delta int) tea.Cmd {
	if len(f.inputs) < 2 {
		return nil
	}
	next := (f.focus + delta + len(f.inputs)) % len(f.inputs)
	return f.focusInput(next)
}

func (f *form) focusInput(i int) tea.Cmd {
	if i == f.focus && f.inputs[i].Focused() {
		return nil
	}
	blur := f.inputs[f.focus].Blur()
	f.focus = i
	return tea.Batch(blur, f.inputs[i].Focus())
}

// handleClick routes a click to the popover it lands on, if any. Otherwise
// every input sees it so open popovers can dismiss themselves, and a click
// on another field moves focus there first.
func (f *form) handleClick(msg tea.MouseClickMsg) tea.Cmd {
	mouse := msg.Mouse()
	for _, i := range f.stackOrder() {
		if f.inputs[i].PopoverBounds().Contains(mouse.X, mouse.Y) {
			var cmd tea.Cmd
			f.inputs[i], cmd = f.inputs[i].Update(msg)
			return cmd
		}
	}

	var cmds []tea.Cmd
	for i, in := range f.inputs {
		if i != f.focus && in.FieldRect().Contains(mouse.X, mouse.Y) {
			cmds = append(cmds, f.inputs[f.focus].Blur())
			f.focus = i
		}
	}
	for i, in := range f.inputs {
		var cmd tea.Cmd
		f.inputs[i], cmd = in.Update(msg)
		cmds = append(cmds, cmd)
	}
	return tea.Batch(cmds...)
}

// stackOrder lists inputs topmost first. The focused input's popover is
// drawn last, so it is hit-tested first.
func (f *form) stackOrder() []int {
	order := []int{f.focus}
	for i := range f.inputs {
		if i != f.focus {
			order = append(order, i)
		}
	}
	return order
}

func (f *form) layout() {
	if f.width <= 0 || f.height <= 0 {
		return
	}
	fieldWidth := min(maxWidth, max(1, f.width-2*marginX))
	top := f.fieldsTop()
	for i, in := range f.inputs {
		in.SetSize(fieldWidth, 2)
		in.SetScreenSize(f.width, f.height)
		in.SetOrigin(marginX, top+i*3)
	}
	if top > 3 {
		f.events.SetSize(f.width, top-1)
	}
}

func (f *form) fieldsTop() int {
	return max(0, f.height-footerLines-1-(len(f.inputs)*3-1))
}

func (f *form) View() (string, *tea.Cursor) {
	if f.width <= 0 || f.height <= 0 {
		return "", nil
	}
	lines := make([]string, f.height)

	top := f.fieldsTop()
	if f.showEvents && top > 3 {
		for i, line := range strings.Split(f.events.View(), "\n") {
			if i < top-1 {
				lines[i] = line
			}
		}
	}

	var cursor *tea.Cursor
	for i, in := range f.inputs {
		view, c := in.View()
		y := top + i*3
		for j, line := range strings.Split(view, "\n") {
			if y+j < len(lines) {
				lines[y+j] = strings.Repeat(" ", marginX) + line
			}
		}
		if i == f.focus && c != nil {
			clone := *c
			clone.X += marginX
			clone.Y += y
			cursor = &clone
		}
	}

	help := f.theme.Footer.Help.Render("tab next • enter done • esc close calendar • ctrl+c abort")
	lines[f.height-footerLines] = help
	if f.height-footerLines+1 < len(lines) {
		lines[f.height-footerLines+1] = f.theme.Footer.Status.Render(f.status)
	}

	frame := strings.Join(lines, "\n")
	for _, i := range f.drawOrder() {
		frame = f.inputs[i].Overlay(frame)
	}
	if f.inputs[f.focus].PopoverBounds().Empty() {
		return frame, cursor
	}
	return frame, nil
}

func (f *form) drawOrder() []int {
	order := f.stackOrder()
	for i, j := 0, len(order)-1; i < j; i, j = i+1, j-1 {
		order[i], order[j] = order[j], order[i]
	}
	return order
}

// Values returns each field's committed date in field order.
func (f *form) Values() []Value {
	out := make([]Value, len(f.inputs))
	for i, in := range f.inputs {
		out[i] = Value{Slot: f.slots[i], Date: in.Value()}
	}
	return out
}

// Value is one field's result.
type Value struct {
	Slot string `json:"slot"`
	Date string `json:"date"`
}

type watchStartedMsg struct {
	ch     <-chan store.Event
	cancel context.CancelFunc
	err    error
}

type watchEventMsg struct {
	event store.Event
}

type watchStoppedMsg struct{}

func (f *form) startWatchCmd() tea.Cmd {
	parent := f.ctx
	p := f.store
	return func() tea.Msg {
		ctx, cancel := context.WithCancel(parent)
		ch, err := p.Watch(ctx)
		if err != nil {
			cancel()
			return watchStartedMsg{err: err}
		}
		return watchStartedMsg{ch: ch, cancel: cancel}
	}
}

func (f *form) waitForWatch() tea.Cmd {
	if f.watchCh == nil {
		return nil
	}
	ch := f.watchCh
	return func() tea.Msg {
		if ev, ok := <-ch; ok {
			return watchEventMsg{event: ev}
		}
		return watchStoppedMsg{}
	}
}

func (f *form) stopWatch() {
	if f.watchCancel != nil {
		f.watchCancel()
		f.watchCancel = nil
	}
	f.watchCh = nil
}

// handleWatchEvent re-reads the changed slots and pushes them into the
// matching inputs as owner preselections.
func (f *form) handleWatchEvent(ev store.Event) tea.Cmd {
	var cmds []tea.Cmd
	for i, slot := range f.slots {
		if ev.Type == store.EventSlotChanged && ev.Slot != slot {
			continue
		}
		cmds = append(cmds, f.loadSlotCmd(f.inputs[i].ID(), slot))
	}
	return tea.Batch(cmds...)
}

func (f *form) loadSlotCmd(id events.ComponentID, slot string) tea.Cmd {
	p := f.store
	logger := f.logger
	return func() tea.Msg {
		s, err := p.Get(slot)
		switch {
		case errors.Is(err, store.ErrSlotNotFound):
			return events.PreselectMsg{Component: id}
		case err != nil:
			logger.Printf("pick: reload slot %s: %v", slot, err)
			return nil
		}
		return events.PreselectMsg{Component: id, Value: s.Date}
	}
}
