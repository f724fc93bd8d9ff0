package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"tableflip.dev/datebox/pkg/datefmt"
)

func TestSlotSetGetList(t *testing.T) {
	p, err := Load(StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := p.Set("due", time.Date(2024, time.March, 14, 15, 4, 0, 0, time.UTC)); err != nil {
		t.Fatalf("set due: %v", err)
	}
	if _, err := p.Set("start", time.Date(2024, time.January, 2, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("set start: %v", err)
	}

	s, err := p.Get("due")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if s.Date != "3/14/2024" || s.Name != "due" {
		t.Fatalf("unexpected slot %+v", s)
	}
	if !datefmt.SameDay(s.Time(), time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)) {
		t.Fatalf("unexpected slot time %v", s.Time())
	}

	list := p.List(context.Background())
	if len(list) != 2 || list[0].Name != "due" || list[1].Name != "start" {
		t.Fatalf("unexpected list %+v", list)
	}
}

func TestSlotErrors(t *testing.T) {
	p, err := Load(StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if _, err := p.Get("missing"); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound, got %v", err)
	}
	if _, err := p.Set("../escape", time.Now()); !errors.Is(err, ErrInvalidSlot) {
		t.Fatalf("expected ErrInvalidSlot, got %v", err)
	}
	if _, err := p.Set("due", time.Time{}); !errors.Is(err, datefmt.ErrInvalidDate) {
		t.Fatalf("expected ErrInvalidDate, got %v", err)
	}
	if err := p.Delete("missing"); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound on delete, got %v", err)
	}
}

func TestSlotDelete(t *testing.T) {
	p, err := Load(StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if _, err := p.Set("due", time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := p.Delete("due"); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := p.Get("due"); !errors.Is(err, ErrSlotNotFound) {
		t.Fatalf("expected slot to be gone, got %v", err)
	}
}

func TestSlotReadsSeeOtherWriters(t *testing.T) {
	base := t.TempDir()
	a, err := Load(StaticConfig(base))
	if err != nil {
		t.Fatalf("load a: %v", err)
	}
	b, err := Load(StaticConfig(base))
	if err != nil {
		t.Fatalf("load b: %v", err)
	}
	if _, err := a.Set("due", time.Date(2024, time.March, 14, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("set: %v", err)
	}
	if _, err := b.Get("due"); err != nil {
		t.Fatalf("warm b: %v", err)
	}
	if _, err := a.Set("due", time.Date(2024, time.April, 1, 0, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("set: %v", err)
	}
	s, err := b.Get("due")
	if err != nil || s.Date != "4/1/2024" {
		t.Fatalf("expected b to read 4/1/2024, got %+v, %v", s, err)
	}
	if _, err := os.Stat(filepath.Join(base, slotDir, "due")); err != nil {
		t.Fatalf("expected slot file on disk: %v", err)
	}
}
