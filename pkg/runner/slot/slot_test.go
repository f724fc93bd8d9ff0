package slot

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"tableflip.dev/datebox/pkg/datefmt"
	"tableflip.dev/datebox/pkg/store"
)

func TestSetGetListDelete(t *testing.T) {
	p, err := store.Load(store.StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	ctx := context.Background()
	var buf bytes.Buffer

	set := Slot{Action: Set, Name: "due", Date: "2024-03-14", Persistence: p, Out: &buf}
	if err := set.Do(ctx); err != nil {
		t.Fatalf("set: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "3/14/2024" {
		t.Fatalf("set should print the canonical date, got %q", buf.String())
	}

	buf.Reset()
	get := Slot{Action: Get, Name: "due", Persistence: p, Out: &buf}
	if err := get.Do(ctx); err != nil {
		t.Fatalf("get: %v", err)
	}
	if strings.TrimSpace(buf.String()) != "3/14/2024" {
		t.Fatalf("unexpected get output %q", buf.String())
	}

	buf.Reset()
	list := Slot{Action: List, Persistence: p, JSON: true, Out: &buf}
	if err := list.Do(ctx); err != nil {
		t.Fatalf("list: %v", err)
	}
	if !strings.Contains(buf.String(), `"name":"due"`) {
		t.Fatalf("unexpected list output %q", buf.String())
	}

	del := Slot{Action: Delete, Name: "due", Persistence: p, Out: &buf}
	if err := del.Do(ctx); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if err := get.Do(ctx); !errors.Is(err, store.ErrSlotNotFound) {
		t.Fatalf("expected ErrSlotNotFound after delete, got %v", err)
	}
}

func TestSetRejectsEmptyAndInvalid(t *testing.T) {
	p, err := store.Load(store.StaticConfig(t.TempDir()))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	for _, date := range []string{"", "banana"} {
		s := Slot{Action: Set, Name: "due", Date: date, Persistence: p, Out: &bytes.Buffer{}}
		if err := s.Do(context.Background()); !errors.Is(err, datefmt.ErrInvalidDate) {
			t.Fatalf("%q: expected ErrInvalidDate, got %v", date, err)
		}
	}
}
