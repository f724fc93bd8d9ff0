package info

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"

	"tableflip.dev/datebox/pkg/store"
)

// Info prints where configuration and slots come from.
type Info struct {
	Config      store.Config
	Persistence store.Persistence
	Out         io.Writer
}

func (n *Info) Do(ctx context.Context) error {
	if n.Out == nil {
		n.Out = color.Output
	}
	out := n.Out

	if override := os.Getenv("DATEBOX_CONFIG_PATH"); override != "" {
		fmt.Fprintln(out, "DATEBOX_CONFIG_PATH found on env, using", override)
	} else {
		fmt.Fprintln(out, "DATEBOX_CONFIG_PATH env var not set")
	}

	if n.Config == nil {
		var err error
		n.Config, err = store.LoadConfig()
		if err != nil {
			return err
		}
	}

	file := n.Config.File()
	if file == "" {
		file = "(none)"
	}
	fmt.Fprintln(out, "Config.file:", file)
	fmt.Fprintln(out, "Config.path:", n.Config.BasePath())
	fmt.Fprintln(out, "Config.label:", n.Config.Label())
	fmt.Fprintln(out, "Config.slot:", n.Config.Slot())
	if n.Config.LogPath() != "" {
		fmt.Fprintln(out, "Config.log:", n.Config.LogPath())
	}

	if n.Persistence == nil {
		return fmt.Errorf("failed to create persistence object")
	}

	fmt.Fprintf(out, "Slots:\n")
	found := 0
	for _, s := range n.Persistence.List(ctx) {
		fmt.Fprintf(out, "  %s = %s\n", s.Name, s.Date)
		found++
	}
	if found == 0 {
		fmt.Fprintf(out, "  %s\n", "no slots")
	}
	return nil
}
