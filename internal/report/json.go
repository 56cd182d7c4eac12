package report

import "encoding/json"

type jsonFormatter struct{}

type tablePayload struct {
	Table        string `json:"table"`
	FilesApplied int    `json:"filesApplied"`
	FilesSkipped int    `json:"filesSkipped"`
	ElapsedMs    int64  `json:"elapsedMs"`
	Error        string `json:"error,omitempty"`
}

type runPayload struct {
	Started   string         `json:"started"`
	ElapsedMs int64          `json:"elapsedMs"`
	Failed    int            `json:"failed"`
	Tables    []tablePayload `json:"tables"`
}

func (jsonFormatter) Format(r *RunReport) (string, error) {
	payload := runPayload{
		Started:   r.Started.Format("2006-01-02T15:04:05Z07:00"),
		ElapsedMs: r.Elapsed.Milliseconds(),
		Failed:    len(r.Failed()),
		Tables:    make([]tablePayload, 0, len(r.Tables)),
	}

	for _, t := range r.Tables {
		tp := tablePayload{
			Table:        t.Table,
			FilesApplied: t.FilesApplied,
			FilesSkipped: t.FilesSkipped,
			ElapsedMs:    t.Elapsed.Milliseconds(),
		}
		if t.Err != nil {
			tp.Error = t.Err.Error()
		}
		payload.Tables = append(payload.Tables, tp)
	}

	b, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return "", err
	}
	return string(b) + "\n", nil
}
