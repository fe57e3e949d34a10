package tui

import (
	"fmt"
	"time"

	"github.com/NimbleMarkets/ntcharts/barchart"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dkaraca/timecard/internal/service"
	"github.com/dkaraca/timecard/internal/store"
	"github.com/dkaraca/timecard/internal/timecalc"
)

type reportsModel struct {
	svc    *service.Entries
	width  int
	height int

	entries []store.TimeEntry
	offset  int // weeks back from the current week (0 = current)

	chart barchart.Model
}

func newReportsView(svc *service.Entries) reportsModel {
	return reportsModel{
		svc:   svc,
		chart: barchart.New(60, 12),
	}
}

func (r *reportsModel) setSize(w, h int) {
	r.width = w
	r.height = h
}

func (r reportsModel) refresh() tea.Cmd {
	return func() tea.Msg {
		entries, err := r.svc.List()
		if err != nil {
			return statusMsg{text: "Failed to load time entries", isError: true}
		}
		return entriesDataMsg{entries: entries, events: service.CalendarEvents(entries)}
	}
}

// weekRange returns the Monday of the displayed week and the Monday after.
func (r reportsModel) weekRange() (time.Time, time.Time) {
	now := time.Now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	weekday := int(today.Weekday())
	if weekday == 0 {
		weekday = 7
	}
	monday := today.AddDate(0, 0, -(weekday - 1)).AddDate(0, 0, -7*r.offset)
	return monday, monday.AddDate(0, 0, 7)
}

func (r reportsModel) update(msg tea.Msg) (reportsModel, tea.Cmd) {
	switch msg := msg.(type) {
	case entriesDataMsg:
		r.entries = msg.entries
		r.buildChart()
		return r, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Left):
			r.offset++
			r.buildChart()
			return r, nil
		case key.Matches(msg, keys.Right):
			if r.offset > 0 {
				r.offset--
			}
			r.buildChart()
			return r, nil
		}
	}
	return r, nil
}

func (r *reportsModel) buildChart() {
	chartWidth := r.width - 8
	if chartWidth < 20 {
		chartWidth = 20
	}
	chartHeight := 12
	if r.height > 30 {
		chartHeight = 16
	}

	r.chart = barchart.New(chartWidth, chartHeight)

	from, to := r.weekRange()

	// Minutes per day for the displayed week.
	totals := make(map[string]int)
	for _, e := range r.entries {
		if e.Start.Before(from) || !e.Start.Before(to) {
			continue
		}
		totals[e.Start.Local().Format("2006-01-02")] += e.DurationMinutes
	}

	var bars []barchart.BarData
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		hours := float64(totals[d.Format("2006-01-02")]) / 60.0
		style := lipgloss.NewStyle().Foreground(colorPrimary)
		if hours == 0 {
			style = lipgloss.NewStyle().Foreground(colorSubtle)
		}
		bars = append(bars, barchart.BarData{
			Label: d.Format("Mon 02"),
			Values: []barchart.BarValue{
				{Name: "hours", Value: hours, Style: style},
			},
		})
	}

	r.chart.PushAll(bars)
	r.chart.Draw()
}

func (r reportsModel) view() string {
	w := r.width - 4
	if w < 20 {
		return "Terminal too small"
	}

	from, to := r.weekRange()
	dateLabel := mutedStyle.Render(fmt.Sprintf("%s — %s",
		from.Format("Jan 02"), to.AddDate(0, 0, -1).Format("Jan 02, 2006")))

	header := lipgloss.JoinHorizontal(lipgloss.Bottom,
		titleStyle.Render("Reports"), "  ", dateLabel,
	)

	weekMinutes := 0
	for _, e := range r.entries {
		if !e.Start.Before(from) && e.Start.Before(to) {
			weekMinutes += e.DurationMinutes
		}
	}
	monthCount := timecalc.CountEntriesInMonth(r.entries, time.Now())

	summary := fmt.Sprintf("  Week total: %s    Entries this month: %d",
		highlightStyle.Render(timecalc.FormatMinutes(weekMinutes)), monthCount)

	nav := mutedStyle.Render("  ←/→: navigate weeks  E: export")

	return panelStyle.Width(w).Render(
		lipgloss.JoinVertical(lipgloss.Left,
			header, "", r.chart.View(), "", summary, "", nav,
		),
	)
}
