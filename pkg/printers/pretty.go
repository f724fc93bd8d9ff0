// Package printers renders dates, slots and parse results for the
// non-interactive commands.
package printers

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/datebox/pkg/store"
)

// PrettyPrint writes coloured output to Out, or color.Output when Out is nil.
type PrettyPrint struct {
	Out io.Writer
}

// ParseRow is one line of `datebox parse` output.
type ParseRow struct {
	Input     string `json:"input"`
	Valid     bool   `json:"valid"`
	Canonical string `json:"canonical,omitempty"`
	Weekday   string `json:"weekday,omitempty"`
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

// Parsed prints a table of parse results.
func (pp *PrettyPrint) Parsed(rows ...ParseRow) {
	bold := color.New(color.Bold).SprintFunc()
	bad := color.New(color.FgRed).SprintFunc()
	good := color.New(color.FgGreen).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Input"), bold("Valid"), bold("Canonical"), bold("Weekday"))
	for _, r := range rows {
		if !r.Valid {
			tbl.AddRow(r.Input, bad("no"), "", "")
			continue
		}
		tbl.AddRow(r.Input, good("yes"), r.Canonical, r.Weekday)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Slots prints stored slots, or a faint placeholder when there are none.
func (pp *PrettyPrint) Slots(slots ...store.Slot) {
	if len(slots) == 0 {
		f := color.New(color.Faint, color.Italic)
		_, _ = f.Fprint(pp.out(), " none\n")
		return
	}
	bold := color.New(color.Bold).SprintFunc()
	faint := color.New(color.Faint).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Slot"), bold("Date"), bold("Updated"))
	for _, s := range slots {
		updated := ""
		if !s.Updated.IsZero() {
			updated = s.Updated.Local().Format("2006-01-02 15:04")
		}
		tbl.AddRow(s.Name, s.Date, faint(updated))
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}
