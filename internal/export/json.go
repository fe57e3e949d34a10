package export

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dkaraca/timecard/internal/store"
	"github.com/dkaraca/timecard/internal/timecalc"
)

type jsonExport struct {
	ExportedAt string      `json:"exported_at"`
	Count      int         `json:"count"`
	Entries    []jsonEntry `json:"entries"`
}

type jsonEntry struct {
	ID          string `json:"id"`
	User        string `json:"user"`
	Client      string `json:"client"`
	Project     string `json:"project"`
	Date        string `json:"date"`
	Start       string `json:"start"`
	End         string `json:"end"`
	Minutes     int    `json:"duration_minutes"`
	Duration    string `json:"duration"`
	Description string `json:"description,omitempty"`
}

func ToJSON(entries []store.TimeEntry, path string) error {
	out := jsonExport{
		ExportedAt: time.Now().UTC().Format(time.RFC3339),
		Count:      len(entries),
	}

	for _, e := range entries {
		out.Entries = append(out.Entries, jsonEntry{
			ID:          e.ID,
			User:        e.UserName,
			Client:      e.ClientName,
			Project:     e.ProjectName,
			Date:        e.Date,
			Start:       e.Start.Local().Format(time.RFC3339),
			End:         e.End.Local().Format(time.RFC3339),
			Minutes:     e.DurationMinutes,
			Duration:    timecalc.FormatMinutes(e.DurationMinutes),
			Description: e.Description,
		})
	}

	data, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal json: %w", err)
	}

	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write json file: %w", err)
	}
	return nil
}
