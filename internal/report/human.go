package report

import (
	"fmt"
	"strings"
)

type humanFormatter struct{}

func (humanFormatter) Format(r *RunReport) (string, error) {
	var b strings.Builder

	fmt.Fprintf(&b, "run started %s, took %s\n", r.Started.Format("2006-01-02T15:04:05Z07:00"), beautifyDuration(r.Elapsed))
	fmt.Fprintf(&b, "%d table(s) processed, %d failed\n", len(r.Tables), len(r.Failed()))

	for _, t := range r.Tables {
		status := "ok"
		if t.Err != nil {
			status = fmt.Sprintf("FAILED: %v", t.Err)
		}
		fmt.Fprintf(&b, "  %-32s %-40s applied=%d skipped=%d took=%s\n",
			t.Table, status, t.FilesApplied, t.FilesSkipped, beautifyDuration(t.Elapsed))
	}

	return b.String(), nil
}
