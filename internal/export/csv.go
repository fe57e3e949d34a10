package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"time"

	"github.com/dkaraca/timecard/internal/store"
	"github.com/dkaraca/timecard/internal/timecalc"
)

func ToCSV(entries []store.TimeEntry, path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create csv file: %w", err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	defer w.Flush()

	header := []string{"ID", "User", "Client", "Project", "Date", "Start", "End", "Minutes", "Duration", "Description"}
	if err := w.Write(header); err != nil {
		return err
	}

	for _, e := range entries {
		row := []string{
			e.ID,
			e.UserName,
			e.ClientName,
			e.ProjectName,
			e.Date,
			e.Start.Local().Format(time.RFC3339),
			e.End.Local().Format(time.RFC3339),
			fmt.Sprintf("%d", e.DurationMinutes),
			timecalc.FormatMinutes(e.DurationMinutes),
			e.Description,
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}

	return w.Error()
}
