package diagfmt

import (
	"encoding/json"
	"fmt"
	"io"

	"fortio.org/safecast"

	"github.com/dhamidi/closuredoc/diag"
	"github.com/dhamidi/closuredoc/source"
)

// LocationJSON is a one-based source range.
type LocationJSON struct {
	File      string `json:"file"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
	StartLine uint32 `json:"start_line"`
	StartCol  uint32 `json:"start_col"`
	EndLine   uint32 `json:"end_line"`
	EndCol    uint32 `json:"end_col"`
}

type DiagnosticJSON struct {
	Severity string       `json:"severity"`
	Category string       `json:"category"`
	Message  string       `json:"message"`
	Location LocationJSON `json:"location"`
}

// JSON writes one JSON object per diagnostic and line.
func JSON(w io.Writer, bag *diag.Bag, opts JSONOpts) error {
	enc := json.NewEncoder(w)
	for i, d := range bag.Items() {
		if opts.Max > 0 && i >= opts.Max {
			break
		}
		out, err := makeDiagnostic(d, opts)
		if err != nil {
			return err
		}
		if err := enc.Encode(out); err != nil {
			return err
		}
	}
	return nil
}

func makeDiagnostic(d diag.Diagnostic, opts JSONOpts) (DiagnosticJSON, error) {
	loc, err := makeLocation(d.File, d.Span, opts)
	if err != nil {
		return DiagnosticJSON{}, fmt.Errorf("%s: %w", d, err)
	}
	return DiagnosticJSON{
		Severity: d.Severity.String(),
		Category: d.Category.String(),
		Message:  d.Text(),
		Location: loc,
	}, nil
}

func makeLocation(file string, span source.Span, opts JSONOpts) (LocationJSON, error) {
	var vals [6]uint32
	for i, n := range []int{
		span.Start.Offset, span.End.Offset,
		span.Start.Line + 1, span.Start.Column + 1,
		span.End.Line + 1, span.End.Column + 1,
	} {
		v, err := safecast.Conv[uint32](n)
		if err != nil {
			return LocationJSON{}, err
		}
		vals[i] = v
	}
	return LocationJSON{
		File:      formatPath(file, opts.PathMode, opts.BaseDir),
		StartByte: vals[0],
		EndByte:   vals[1],
		StartLine: vals[2],
		StartCol:  vals[3],
		EndLine:   vals[4],
		EndCol:    vals[5],
	}, nil
}
