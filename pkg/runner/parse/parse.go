package parse

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/datebox/pkg/datefmt"
	"tableflip.dev/datebox/pkg/printers"
)

// Parse reports how each input would be read by a date input.
type Parse struct {
	Inputs []string
	Parser datefmt.Parser
	JSON   bool
	Out    io.Writer
}

func (p *Parse) Do(ctx context.Context) error {
	if p.Parser == nil {
		p.Parser = datefmt.DefaultParser()
	}
	if p.Out == nil {
		p.Out = color.Output
	}
	rows := p.Rows()
	if p.JSON {
		b, err := json.Marshal(rows)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(p.Out, string(b))
		return err
	}
	pp := printers.PrettyPrint{Out: p.Out}
	pp.Parsed(rows...)
	return nil
}

// Rows parses every input.
func (p *Parse) Rows() []printers.ParseRow {
	parser := p.Parser
	if parser == nil {
		parser = datefmt.DefaultParser()
	}
	rows := make([]printers.ParseRow, 0, len(p.Inputs))
	for _, in := range p.Inputs {
		t, ok := parser.Parse(in)
		if !ok {
			rows = append(rows, printers.ParseRow{Input: in})
			continue
		}
		rows = append(rows, printers.ParseRow{
			Input:     in,
			Valid:     true,
			Canonical: datefmt.Format(t),
			Weekday:   t.Weekday().String(),
		})
	}
	return rows
}
