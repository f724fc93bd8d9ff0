// Package store persists named date slots on disk and reports changes made
// to them, so a running form can pick up dates written by another process.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"time"

	"github.com/peterbourgon/diskv/v3"

	"tableflip.dev/datebox/pkg/datefmt"
)

const slotDir = "slots"

var (
	// ErrSlotNotFound is returned by Get for a slot that was never set.
	ErrSlotNotFound = errors.New("store: slot not found")
	// ErrInvalidSlot is returned for names that are not usable as keys.
	ErrInvalidSlot = errors.New("store: invalid slot name")

	slotName = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]*$`)
)

// Slot is one stored date.
type Slot struct {
	Name    string    `json:"name"`
	Date    string    `json:"date"`
	Updated time.Time `json:"updated"`
}

// Time parses the stored canonical date.
func (s Slot) Time() time.Time {
	t, _ := datefmt.Validate(s.Date)
	return t
}

// Persistence is the slot storage contract.
type Persistence interface {
	Get(name string) (Slot, error)
	Set(name string, date time.Time) (Slot, error)
	Delete(name string) error
	List(ctx context.Context) []Slot
	Watch(ctx context.Context) (<-chan Event, error)
}

// Load creates a Persistence backed by diskv using the provided config.
func Load(cfg Config) (Persistence, error) {
	if cfg == nil {
		var err error
		cfg, err = LoadConfig()
		if err != nil {
			return nil, err
		}
	}

	basePath := cfg.BasePath()
	if basePath == "" {
		return nil, errors.New("store: base path unknown")
	}
	return &persistence{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: keyToPathTransform,
		InverseTransform:  pathToKeyTransform,
		// No cache: other processes write slots and reads must see them.
		CacheSizeMax: 0,
	}), basePath: basePath, now: time.Now}, nil
}

type persistence struct {
	d        *diskv.Diskv
	basePath string
	now      func() time.Time
}

// ValidateSlot checks that name can be used as a slot key.
func ValidateSlot(name string) error {
	if !slotName.MatchString(name) {
		return fmt.Errorf("%w: %q", ErrInvalidSlot, name)
	}
	return nil
}

func (p *persistence) Get(name string) (Slot, error) {
	if err := ValidateSlot(name); err != nil {
		return Slot{}, err
	}
	if !p.d.Has(name) {
		return Slot{}, fmt.Errorf("%w: %s", ErrSlotNotFound, name)
	}
	return p.read(name)
}

func (p *persistence) read(key string) (Slot, error) {
	val, err := p.d.Read(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Slot{}, fmt.Errorf("%w: %s", ErrSlotNotFound, key)
		}
		return Slot{}, err
	}
	s := Slot{}
	if err := json.Unmarshal(val, &s); err != nil {
		return Slot{}, fmt.Errorf("store: decode %s: %w", key, err)
	}
	s.Name = key
	return s, nil
}

func (p *persistence) Set(name string, date time.Time) (Slot, error) {
	if err := ValidateSlot(name); err != nil {
		return Slot{}, err
	}
	if date.IsZero() {
		return Slot{}, fmt.Errorf("store: set %s: %w", name, datefmt.ErrInvalidDate)
	}
	s := Slot{Name: name, Date: datefmt.Format(date), Updated: p.now().UTC()}
	data, err := json.Marshal(s)
	if err != nil {
		return Slot{}, err
	}
	if err := p.d.Write(name, data); err != nil {
		return Slot{}, err
	}
	return s, nil
}

func (p *persistence) Delete(name string) error {
	if err := ValidateSlot(name); err != nil {
		return err
	}
	if !p.d.Has(name) {
		return fmt.Errorf("%w: %s", ErrSlotNotFound, name)
	}
	return p.d.Erase(name)
}

func (p *persistence) List(ctx context.Context) []Slot {
	all := make([]Slot, 0)
	for key := range p.d.Keys(ctx.Done()) {
		s, err := p.read(key)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %s\n", key, err)
			continue
		}
		all = append(all, s)
	}
	sort.SliceStable(all, func(i, j int) bool {
		return all[i].Name < all[j].Name
	})
	return all
}

func (p *persistence) slotPath() string {
	return filepath.Join(p.basePath, slotDir)
}

func keyToPathTransform(s string) *diskv.PathKey {
	return &diskv.PathKey{
		Path:     []string{slotDir},
		FileName: s,
	}
}

func pathToKeyTransform(pathKey *diskv.PathKey) string {
	return pathKey.FileName
}
