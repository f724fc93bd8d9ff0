package datebox

import (
	"bytes"
	"errors"
	"log"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/datebox/pkg/datefmt"
	"tableflip.dev/datebox/pkg/tui/components/calendar"
	"tableflip.dev/datebox/pkg/tui/components/textfield"
	"tableflip.dev/datebox/pkg/tui/events"
	"tableflip.dev/datebox/pkg/tui/ui"
)

// fakeField satisfies the text field contract without a terminal input.
type fakeField struct {
	opts    textfield.Options
	value   string
	focused bool
}

func newFakeField(opts textfield.Options) textfield.TextField {
	return &fakeField{opts: opts, value: opts.InitialValue}
}

func (f *fakeField) Init() tea.Cmd                                 { return nil }
func (f *fakeField) Update(tea.Msg) (textfield.TextField, tea.Cmd) { return f, nil }
func (f *fakeField) SetSize(int, int)                              {}
func (f *fakeField) Focused() bool                                 { return f.focused }
func (f *fakeField) Value() string                                 { return f.value }
func (f *fakeField) SetValue(v string)                             { f.value = v }

func (f *fakeField) View() (string, *tea.Cursor) {
	return f.opts.LabelText + "\n[#] " + f.value, nil
}

func (f *fakeField) Focus() tea.Cmd {
	if f.focused {
		return nil
	}
	f.focused = true
	return events.FocusCmd(f.opts.ID)
}

func (f *fakeField) Blur() tea.Cmd {
	if !f.focused {
		return nil
	}
	f.focused = false
	return events.FieldFocusLostCmd(f.opts.ID, f.value)
}

func (f *fakeField) Click(x, _ int) tea.Cmd {
	if !f.focused {
		return f.Focus()
	}
	region := textfield.RegionInput
	if x < 3 {
		region = textfield.RegionPrepend
	}
	return events.FieldClickCmd(f.opts.ID, region)
}

func (f *fakeField) Anchor() ui.Anchor {
	return ui.Anchor{Component: f.opts.ID, Region: textfield.RegionPrepend, X: 0, Y: 1, Width: 3}
}

// Type replaces the value the way a user edit would.
func (f *fakeField) Type(text string) tea.Cmd {
	f.value = text
	return events.FieldChangeCmd(f.opts.ID, text)
}

type harness struct {
	t       *testing.T
	m       *Model
	commits []string
	msgs    []tea.Msg
}

func newHarness(t *testing.T, opts Options) *harness {
	t.Helper()
	h := &harness{t: t}
	if opts.LabelText == "" {
		opts.LabelText = "Due"
	}
	if opts.TextComponent == nil {
		opts.TextComponent = newFakeField
	}
	opts.ID = "due"
	opts.DateSelected = func(v string) { h.commits = append(h.commits, v) }
	opts.Now = func() time.Time { return time.Date(2024, time.January, 10, 9, 0, 0, 0, time.UTC) }

	m, err := New(opts)
	if err != nil {
		t.Fatalf("new: %v", err)
	}
	m.SetSize(30, 2)
	m.SetScreenSize(40, 30)
	m.SetOrigin(0, 20)
	h.m = m
	h.pump(m.Init())
	return h
}

func (h *harness) field() *fakeField {
	f, ok := h.m.field.(*fakeField)
	if !ok {
		h.t.Fatalf("field is %T, not the fake", h.m.field)
	}
	return f
}

// pump runs cmd and feeds every produced message back into the model until
// nothing is left to run.
func (h *harness) pump(cmd tea.Cmd) {
	queue := []tea.Cmd{cmd}
	for len(queue) > 0 {
		next := queue[0]
		queue = queue[1:]
		if next == nil {
			continue
		}
		msg := next()
		if batch, ok := msg.(tea.BatchMsg); ok {
			queue = append(queue, batch...)
			continue
		}
		h.msgs = append(h.msgs, msg)
		_, follow := h.m.Update(msg)
		queue = append(queue, follow)
	}
}

func (h *harness) send(msg tea.Msg) {
	_, cmd := h.m.Update(msg)
	h.pump(cmd)
}

func (h *harness) click(x, y int) {
	h.send(tea.MouseClickMsg{X: x, Y: y, Button: tea.MouseLeft})
}

// clickPicker clicks a cell given in picker content coordinates.
func (h *harness) clickPicker(x, y int) {
	h.t.Helper()
	bounds := h.m.PopoverBounds()
	if bounds.Empty() {
		h.t.Fatalf("picker is not shown")
	}
	h.click(bounds.X+2+x, bounds.Y+1+y)
}

func (h *harness) commitMsgs() []events.DateCommitMsg {
	var out []events.DateCommitMsg
	for _, msg := range h.msgs {
		if c, ok := msg.(events.DateCommitMsg); ok {
			out = append(out, c)
		}
	}
	return out
}

func TestMountPickAndCommitScenario(t *testing.T) {
	h := newHarness(t, Options{PreselectedDate: "1/1/2024"})

	if got := h.m.Text(); got != "1/1/2024" {
		t.Fatalf("expected initial display 1/1/2024, got %q", got)
	}

	h.click(5, 21)
	if h.m.State().Visibility != Shown {
		t.Fatalf("expected picker shown after click")
	}
	if got := datefmt.Format(h.m.Picker().Preselected()); got != "1/1/2024" {
		t.Fatalf("expected picker preselected 1/1/2024, got %q", got)
	}

	// Page to February, then pick the 2nd (a Friday, first row).
	h.clickPicker(calendar.GridWidth-1, 0)
	if h.m.Picker().Month().Month() != time.February {
		t.Fatalf("expected February in view, got %v", h.m.Picker().Month())
	}
	h.clickPicker(15, 2)

	if h.m.State().Visibility != Hidden {
		t.Fatalf("expected picker hidden after selection")
	}
	if len(h.commits) != 1 || h.commits[0] != "2/2/2024" {
		t.Fatalf("expected one commit of 2/2/2024, got %v", h.commits)
	}
	if got := h.m.Text(); got != "2/2/2024" {
		t.Fatalf("expected field to display 2/2/2024, got %q", got)
	}
	if msgs := h.commitMsgs(); len(msgs) != 1 || msgs[0].Component != "due" || msgs[0].Value != "2/2/2024" {
		t.Fatalf("expected one DateCommitMsg, got %+v", msgs)
	}
}

func TestInvalidTextNeverNotifies(t *testing.T) {
	h := newHarness(t, Options{})

	h.pump(h.m.Focus())
	if h.m.State().Visibility != Shown {
		t.Fatalf("focus should show the picker on first focus")
	}
	h.pump(h.field().Type("not-a-date"))
	h.pump(h.m.Blur())

	if len(h.commits) != 0 {
		t.Fatalf("expected no commits, got %v", h.commits)
	}
	if h.m.Value() != "" {
		t.Fatalf("expected selection unset, got %q", h.m.Value())
	}
	if h.m.Text() != "not-a-date" {
		t.Fatalf("raw text must be kept, got %q", h.m.Text())
	}

	h.pump(h.m.Focus())
	if h.m.State().Visibility != Shown {
		t.Fatalf("re-focus should show the picker")
	}
	if !h.m.Picker().Preselected().IsZero() {
		t.Fatalf("picker must not highlight a date")
	}
}

func TestValidTextCommitsOnBlur(t *testing.T) {
	h := newHarness(t, Options{})
	h.pump(h.m.Focus())
	h.pump(h.field().Type("03/01/2024"))
	if h.m.Value() != "" {
		t.Fatalf("typing must not commit")
	}
	h.pump(h.m.Blur())

	if len(h.commits) != 1 || h.commits[0] != "3/1/2024" {
		t.Fatalf("expected one commit of 3/1/2024, got %v", h.commits)
	}
	if h.m.Text() != "3/1/2024" {
		t.Fatalf("expected canonical display, got %q", h.m.Text())
	}
}

func TestYearOneTextIsKeptAndNeverNotifies(t *testing.T) {
	h := newHarness(t, Options{})
	h.pump(h.m.Focus())
	h.pump(h.field().Type("1/1/0001"))
	h.pump(h.m.Blur())

	if len(h.commits) != 0 || len(h.commitMsgs()) != 0 {
		t.Fatalf("expected no commits, got %v", h.commits)
	}
	if h.m.Text() != "1/1/0001" {
		t.Fatalf("typed text must be left alone, got %q", h.m.Text())
	}
	if h.m.Value() != "" {
		t.Fatalf("expected no selection, got %q", h.m.Value())
	}
}

func TestOutsideClickDismissesAndFocusRearms(t *testing.T) {
	h := newHarness(t, Options{})
	h.pump(h.m.Focus())
	if h.m.State().Visibility != Shown {
		t.Fatalf("expected shown after focus")
	}

	h.click(39, 0)
	st := h.m.State()
	if st.Visibility != Hidden || !st.PreviouslyShown {
		t.Fatalf("expected dismissal, got %+v", st)
	}

	// Clicking the focused field toggles it back open.
	h.click(10, 21)
	if h.m.State().Visibility != Shown {
		t.Fatalf("click on focused field should toggle open")
	}
	h.click(10, 21)
	if h.m.State().Visibility != Hidden {
		t.Fatalf("second click should toggle closed")
	}

	h.pump(h.m.Blur())
	if h.m.State().PreviouslyShown {
		t.Fatalf("blur should re-arm")
	}
	h.pump(h.m.Focus())
	if h.m.State().Visibility != Shown {
		t.Fatalf("focus after re-arm should show")
	}
}

func TestEscapeDismisses(t *testing.T) {
	h := newHarness(t, Options{})
	h.pump(h.m.Focus())
	h.send(tea.KeyPressMsg{Code: tea.KeyEscape})
	if h.m.State().Visibility != Hidden {
		t.Fatalf("esc should dismiss the picker")
	}
	h.pump(h.m.Focus())
	if h.m.State().Visibility != Hidden {
		t.Fatalf("still-focused field must not re-open on focus")
	}
}

func TestPreselectMsgWinsOverEdits(t *testing.T) {
	h := newHarness(t, Options{})
	h.pump(h.m.Focus())
	h.pump(h.field().Type("3/1/2024"))
	h.pump(h.m.Blur())
	h.pump(h.m.Focus())
	h.pump(h.field().Type("3/1/20"))

	h.send(events.PreselectMsg{Component: "due", Value: "6/1/2024"})
	if h.m.Value() != "6/1/2024" || h.m.Text() != "6/1/2024" {
		t.Fatalf("expected external value to win, got value=%q text=%q", h.m.Value(), h.m.Text())
	}
	if len(h.commits) != 1 {
		t.Fatalf("preselection must not notify, got %v", h.commits)
	}

	h.send(events.PreselectMsg{Component: "other", Value: "7/1/2024"})
	if h.m.Value() != "6/1/2024" {
		t.Fatalf("messages for other inputs must be ignored")
	}
}

func TestInvalidPreselectMsgIsLoggedAndIgnored(t *testing.T) {
	var buf bytes.Buffer
	h := newHarness(t, Options{PreselectedDate: "1/1/2024", Logger: log.New(&buf, "", 0)})
	h.send(events.PreselectMsg{Component: "due", Value: "banana"})
	if h.m.Value() != "1/1/2024" {
		t.Fatalf("invalid preselection must leave the value alone, got %q", h.m.Value())
	}
	if !strings.Contains(buf.String(), "ignoring preselection") {
		t.Fatalf("expected a log line, got %q", buf.String())
	}
	if err := h.m.SetPreselectedDate("13/45/2024"); !errors.Is(err, datefmt.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
}

func TestInstancesDoNotShareState(t *testing.T) {
	a := newHarness(t, Options{})
	b := newHarness(t, Options{})
	a.pump(a.m.Focus())
	if b.m.State().Visibility != Hidden {
		t.Fatalf("focusing one input must not affect another")
	}
}

func TestAnchorCapturedAtMountAndRemount(t *testing.T) {
	h := newHarness(t, Options{PreselectedDate: "1/1/2024"})
	if a := h.m.Anchor(); a.Component != "due/field" || a.Width != 3 {
		t.Fatalf("unexpected anchor %+v", a)
	}

	h.pump(h.m.SetTextComponent(textfield.New))
	a := h.m.Anchor()
	if a.Region != textfield.RegionPrepend || a.Width != 1 {
		t.Fatalf("expected anchor from the built-in field, got %+v", a)
	}
	if h.m.Text() != "1/1/2024" {
		t.Fatalf("remounted field should show the selection, got %q", h.m.Text())
	}
}

func TestNewValidatesOptions(t *testing.T) {
	if _, err := New(Options{}); !errors.Is(err, ErrLabelRequired) {
		t.Fatalf("expected ErrLabelRequired, got %v", err)
	}
	if _, err := New(Options{LabelText: "Due", PreselectedDate: "banana"}); !errors.Is(err, datefmt.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if _, err := New(Options{LabelText: "Due", DatePickerProps: calendar.Props{Month: "nope"}}); err == nil {
		t.Fatalf("expected picker props to be validated")
	}
}

func TestPreselectionUsesConfiguredParser(t *testing.T) {
	iso := &datefmt.LayoutParser{Layouts: []string{"2006-01-02"}}
	if _, err := New(Options{LabelText: "Due", Parser: iso, PreselectedDate: "6/1/2024"}); !errors.Is(err, datefmt.ErrInvalidDate) {
		t.Fatalf("expected the configured parser to reject 6/1/2024, got %v", err)
	}

	h := newHarness(t, Options{Parser: iso, PreselectedDate: "2024-01-05"})
	if h.m.Value() != "1/5/2024" {
		t.Fatalf("expected 1/5/2024, got %q", h.m.Value())
	}
	h.send(events.PreselectMsg{Component: "due", Value: "2024-06-01"})
	if h.m.Value() != "6/1/2024" {
		t.Fatalf("expected 6/1/2024, got %q", h.m.Value())
	}
	h.send(events.PreselectMsg{Component: "due", Value: "7/1/2024"})
	if h.m.Value() != "6/1/2024" {
		t.Fatalf("values the parser rejects must be ignored, got %q", h.m.Value())
	}
}

func TestOverlayDrawsOnlyWhenShown(t *testing.T) {
	h := newHarness(t, Options{})
	bg := strings.Repeat(strings.Repeat(" ", 40)+"\n", 29) + strings.Repeat(" ", 40)
	if got := h.m.Overlay(bg); got != bg {
		t.Fatalf("hidden picker must not draw")
	}
	h.pump(h.m.Focus())
	if got := h.m.Overlay(bg); !strings.Contains(got, "January 2024") {
		t.Fatalf("expected the calendar title in the overlay")
	}
}
