package pick

import (
	"context"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea/v2"

	"tableflip.dev/datebox/pkg/store"
	"tableflip.dev/datebox/pkg/tui/components/datebox"
	"tableflip.dev/datebox/pkg/tui/events"
)

// run executes cmd and returns the messages it produced. Commands that do not
// finish promptly (cursor blinks, watch waits) are abandoned.
func run(cmd tea.Cmd) []tea.Msg {
	if cmd == nil {
		return nil
	}
	done := make(chan tea.Msg, 1)
	go func() { done <- cmd() }()
	var msg tea.Msg
	select {
	case msg = <-done:
	case <-time.After(50 * time.Millisecond):
		return nil
	}
	switch m := msg.(type) {
	case tea.BatchMsg:
		var out []tea.Msg
		for _, c := range m {
			out = append(out, run(c)...)
		}
		return out
	case nil:
		return nil
	}
	return []tea.Msg{msg}
}

// pump feeds component events back into the form until none are left.
func pump(t *testing.T, f *form, cmd tea.Cmd) (quit bool) {
	t.Helper()
	queue := run(cmd)
	for len(queue) > 0 {
		msg := queue[0]
		queue = queue[1:]
		if _, ok := msg.(tea.QuitMsg); ok {
			quit = true
			continue
		}
		if _, ok := events.Source(msg); !ok {
			continue
		}
		_, next := f.Update(msg)
		queue = append(queue, run(next)...)
	}
	return quit
}

func newTestForm(t *testing.T, fields ...Field) *form {
	t.Helper()
	f, err := newForm(context.Background(), formOptions{Fields: fields})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	pump(t, f, f.Init())
	return f
}

func TestFormFocusesFirstField(t *testing.T) {
	f := newTestForm(t, Field{Slot: "start", Label: "Start"}, Field{Slot: "end", Label: "End"})
	if !f.inputs[0].Focused() || f.inputs[1].Focused() {
		t.Fatalf("expected only the first field focused")
	}
	view, _ := f.View()
	if !strings.Contains(view, "Start") || !strings.Contains(view, "End") {
		t.Fatalf("expected both labels in view")
	}
	field, popover := f.inputs[0].FieldRect(), f.inputs[0].PopoverBounds()
	if popover.Empty() {
		t.Fatalf("expected the focused field's picker to be open")
	}
	if popover.Y+popover.Height > field.Y {
		t.Fatalf("picker %+v must sit above its field %+v", popover, field)
	}
}

func TestFormTabMovesFocusAndKeepsInputsIndependent(t *testing.T) {
	f := newTestForm(t, Field{Slot: "start", Label: "Start", Date: "1/1/2024"}, Field{Slot: "end", Label: "End"})

	_, cmd := f.Update(tea.KeyPressMsg{Code: tea.KeyTab})
	pump(t, f, cmd)

	if f.focus != 1 || !f.inputs[1].Focused() || f.inputs[0].Focused() {
		t.Fatalf("expected focus on the second field")
	}
	if got := f.inputs[0].Value(); got != "1/1/2024" {
		t.Fatalf("blurring a valid field keeps its date, got %q", got)
	}
	if got := f.inputs[1].Value(); got != "" {
		t.Fatalf("second field must not share state, got %q", got)
	}
}

func TestFormEnterCommitsAndQuits(t *testing.T) {
	f := newTestForm(t, Field{Slot: "due", Label: "Due"})
	pump(t, f, func() tea.Msg { return events.PreselectMsg{Component: "due", Value: "2024-03-14"} })

	_, cmd := f.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if !pump(t, f, cmd) {
		t.Fatalf("expected the form to quit after enter")
	}
	if !f.submitted || f.aborted {
		t.Fatalf("expected a submitted form")
	}
	values := f.Values()
	if len(values) != 1 || values[0].Slot != "due" || values[0].Date != "3/14/2024" {
		t.Fatalf("unexpected values %+v", values)
	}
}

func TestFormCtrlCAborts(t *testing.T) {
	f := newTestForm(t, Field{Slot: "due", Label: "Due"})
	_, cmd := f.Update(tea.KeyPressMsg{Code: 'c', Mod: tea.ModCtrl})
	if !pump(t, f, cmd) || !f.aborted {
		t.Fatalf("expected ctrl+c to abort")
	}
}

func TestFormClickOnOtherFieldMovesFocus(t *testing.T) {
	f := newTestForm(t, Field{Slot: "start", Label: "Start"}, Field{Slot: "end", Label: "End"})
	rect := f.inputs[1].FieldRect()

	_, cmd := f.Update(tea.MouseClickMsg{X: rect.X + 5, Y: rect.Y + 1, Button: tea.MouseLeft})
	pump(t, f, cmd)

	if f.focus != 1 || !f.inputs[1].Focused() || f.inputs[0].Focused() {
		t.Fatalf("expected the click to move focus to the second field")
	}
	if f.inputs[0].State().Visibility != datebox.Hidden {
		t.Fatalf("outside click should dismiss the first picker")
	}
}

func TestFormWatchPreselectsChangedSlot(t *testing.T) {
	p, err := store.Load(store.StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load store: %v", err)
	}
	f, err := newForm(context.Background(), formOptions{
		Fields: []Field{{Slot: "due", Label: "Due"}, {Slot: "other", Label: "Other"}},
		Store:  p,
	})
	if err != nil {
		t.Fatalf("new form: %v", err)
	}
	f.Update(tea.WindowSizeMsg{Width: 60, Height: 30})
	pump(t, f, f.Init())

	if _, err := p.Set("due", time.Date(2024, time.July, 4, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("set slot: %v", err)
	}
	pump(t, f, f.handleWatchEvent(store.Event{Type: store.EventSlotChanged, Slot: "due"}))

	if got := f.inputs[0].Value(); got != "7/4/2024" {
		t.Fatalf("expected stored date pushed into the form, got %q", got)
	}
	if got := f.inputs[1].Value(); got != "" {
		t.Fatalf("other slot must be untouched, got %q", got)
	}
}

func TestNewFormRejectsDuplicates(t *testing.T) {
	_, err := newForm(context.Background(), formOptions{Fields: []Field{{Slot: "a", Label: "A"}, {Slot: "a", Label: "B"}}})
	if err == nil {
		t.Fatalf("expected duplicate slot error")
	}
}

func TestParseField(t *testing.T) {
	tests := []struct {
		in      string
		slot    string
		label   string
		wantErr bool
	}{
		{in: "due", slot: "due", label: "Date"},
		{in: "due:Due date", slot: "due", label: "Due date"},
		{in: "due:", slot: "due", label: "Date"},
		{in: "../x", wantErr: true},
	}
	for _, tt := range tests {
		got, err := ParseField(tt.in, "Date")
		if tt.wantErr {
			if err == nil {
				t.Fatalf("%q: expected error", tt.in)
			}
			continue
		}
		if err != nil {
			t.Fatalf("%q: %v", tt.in, err)
		}
		if got.Slot != tt.slot || got.Label != tt.label {
			t.Fatalf("%q: got %+v", tt.in, got)
		}
	}
}
