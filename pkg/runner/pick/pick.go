// Package pick runs the interactive date form.
package pick

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/fatih/color"
	"github.com/mattn/go-isatty"

	"tableflip.dev/datebox/pkg/datefmt"
	"tableflip.dev/datebox/pkg/store"
	"tableflip.dev/datebox/pkg/tui/components/calendar"
)

var (
	// ErrNotTerminal is returned when stdout is not an interactive terminal.
	ErrNotTerminal = errors.New("pick: stdout is not a terminal")
	// ErrAborted is returned when the user cancels the form.
	ErrAborted = errors.New("pick: aborted")
)

// Field is one date input in the form.
type Field struct {
	Slot  string
	Label string
	// Date preselects the input; a remembered slot value is used when empty.
	Date string
}

// ParseField reads a `slot[:Label]` flag value.
func ParseField(spec, defaultLabel string) (Field, error) {
	slot, label, found := strings.Cut(spec, ":")
	slot = strings.TrimSpace(slot)
	if err := store.ValidateSlot(slot); err != nil {
		return Field{}, err
	}
	label = strings.TrimSpace(label)
	if !found || label == "" {
		label = defaultLabel
	}
	if label == "" {
		label = slot
	}
	return Field{Slot: slot, Label: label}, nil
}

// Pick runs the form and prints the chosen dates.
type Pick struct {
	Fields []Field
	Props  calendar.Props

	// Persistence, when set with Remember, seeds fields from stored slots,
	// saves the results and pushes slot changes made elsewhere into the form.
	Persistence store.Persistence
	Remember    bool

	LogPath    string
	ShowEvents bool
	JSON       bool

	Out io.Writer
}

func (p *Pick) Do(ctx context.Context) error {
	if !isatty.IsTerminal(os.Stdout.Fd()) && !isatty.IsCygwinTerminal(os.Stdout.Fd()) {
		return ErrNotTerminal
	}
	if p.Out == nil {
		p.Out = color.Output
	}

	logger := log.New(io.Discard, "", 0)
	if p.LogPath != "" {
		f, err := os.OpenFile(p.LogPath, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
		if err != nil {
			return fmt.Errorf("pick: open log: %w", err)
		}
		defer f.Close()
		logger = log.New(f, "datebox ", log.LstdFlags|log.Lmicroseconds)
	}

	fields, err := p.seed()
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	model, err := newForm(ctx, formOptions{
		Fields:     fields,
		Props:      p.Props,
		Store:      p.store(),
		Watch:      p.Remember,
		ShowEvents: p.ShowEvents,
		Logger:     logger,
	})
	if err != nil {
		return err
	}

	program := tea.NewProgram(model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
		tea.WithContext(ctx),
	)
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("pick: %w", err)
	}
	done, ok := final.(*form)
	if !ok || done.aborted {
		return ErrAborted
	}

	values := done.Values()
	if err := p.save(values); err != nil {
		return err
	}
	return p.print(values)
}

// seed fills empty field dates from the store when remembering.
func (p *Pick) seed() ([]Field, error) {
	fields := make([]Field, len(p.Fields))
	copy(fields, p.Fields)
	for i, f := range fields {
		if f.Date != "" {
			if _, err := datefmt.Validate(f.Date); err != nil {
				return nil, fmt.Errorf("pick: %s: %w", f.Slot, err)
			}
			continue
		}
		s := p.store()
		if s == nil {
			continue
		}
		slot, err := s.Get(f.Slot)
		switch {
		case errors.Is(err, store.ErrSlotNotFound):
			continue
		case err != nil:
			return nil, err
		}
		fields[i].Date = slot.Date
	}
	return fields, nil
}

func (p *Pick) store() store.Persistence {
	if !p.Remember {
		return nil
	}
	return p.Persistence
}

func (p *Pick) save(values []Value) error {
	s := p.store()
	if s == nil {
		return nil
	}
	for _, v := range values {
		if v.Date == "" {
			continue
		}
		date, err := datefmt.Validate(v.Date)
		if err != nil {
			return err
		}
		if _, err := s.Set(v.Slot, date); err != nil {
			return fmt.Errorf("pick: save %s: %w", v.Slot, err)
		}
	}
	return nil
}

func (p *Pick) print(values []Value) error {
	if p.JSON {
		b, err := json.Marshal(values)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.Out, string(b))
		return err
	}
	for _, v := range values {
		if _, err := fmt.Fprintf(p.Out, "%s=%s\n", v.Slot, v.Date); err != nil {
			return err
		}
	}
	return nil
}
