package slot

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/datebox/pkg/datefmt"
	"tableflip.dev/datebox/pkg/printers"
	"tableflip.dev/datebox/pkg/store"
)

// Action selects what Slot does.
type Action string

const (
	Get    Action = "get"
	Set    Action = "set"
	List   Action = "list"
	Delete Action = "delete"
)

// Slot reads and writes stored dates.
type Slot struct {
	Action      Action
	Name        string
	Date        string
	Persistence store.Persistence
	JSON        bool
	Out         io.Writer
}

func (s *Slot) Do(ctx context.Context) error {
	if s.Persistence == nil {
		return errors.New("slot: persistence required")
	}
	if s.Out == nil {
		s.Out = color.Output
	}

	switch s.Action {
	case Get:
		slot, err := s.Persistence.Get(s.Name)
		if err != nil {
			return err
		}
		return s.print(slot)
	case Set:
		date, err := datefmt.Validate(s.Date)
		if err != nil {
			return err
		}
		if date.IsZero() {
			return fmt.Errorf("slot: set %s: %w", s.Name, datefmt.ErrInvalidDate)
		}
		slot, err := s.Persistence.Set(s.Name, date)
		if err != nil {
			return err
		}
		return s.print(slot)
	case Delete:
		return s.Persistence.Delete(s.Name)
	case List:
		slots := s.Persistence.List(ctx)
		if s.JSON {
			return s.json(slots)
		}
		pp := printers.PrettyPrint{Out: s.Out}
		pp.Slots(slots...)
		return nil
	default:
		return fmt.Errorf("slot: unknown action %q", s.Action)
	}
}

func (s *Slot) print(slot store.Slot) error {
	if s.JSON {
		return s.json(slot)
	}
	_, err := fmt.Fprintln(s.Out, slot.Date)
	return err
}

func (s *Slot) json(v interface{}) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(s.Out, string(b))
	return err
}
