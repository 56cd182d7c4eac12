// Package report summarizes a completed run across every table worker,
// the way an operator needs to see which tables succeeded, which
// failed, and how long the whole thing took.
package report

import (
	"fmt"
	"strings"
	"time"
)

// TableResult is one table worker's outcome.
type TableResult struct {
	Table        string
	FilesApplied int
	FilesSkipped int
	Err          error
	Elapsed      time.Duration
}

// RunReport aggregates every table's result for one snapshot run.
type RunReport struct {
	Started time.Time
	Elapsed time.Duration
	Tables  []TableResult
}

// Failed returns the subset of tables that did not complete cleanly.
func (r *RunReport) Failed() []TableResult {
	var out []TableResult
	for _, t := range r.Tables {
		if t.Err != nil {
			out = append(out, t)
		}
	}
	return out
}

// ExitCode is 0 when every table succeeded, 1 otherwise.
func (r *RunReport) ExitCode() int {
	if len(r.Failed()) > 0 {
		return 1
	}
	return 0
}

// Format is the enum of supported report renderings.
type Format string

const (
	FormatHuman Format = "human"
	FormatJSON  Format = "json"
)

// Formatter renders a RunReport as a string.
type Formatter interface {
	Format(*RunReport) (string, error)
}

// NewFormatter returns the Formatter for name, defaulting to human.
func NewFormatter(name string) (Formatter, error) {
	format := Format(strings.ToLower(strings.TrimSpace(name)))
	switch format {
	case "", FormatHuman:
		return humanFormatter{}, nil
	case FormatJSON:
		return jsonFormatter{}, nil
	default:
		return nil, fmt.Errorf("report: unsupported format %q; use 'human' or 'json'", name)
	}
}

// beautifyDuration renders sub-second durations as milliseconds and
// everything else as whole seconds, to keep the common case readable.
func beautifyDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	return fmt.Sprintf("%ds", int(d.Seconds()))
}
