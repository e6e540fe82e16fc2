package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/analytics"
	"github.com/MaheshGaireUCumberlands/qa-automation-service-hub/internal/types"
)

// maxDataWidth truncates the data column in record tables
const maxDataWidth = 72

// ANSI color codes
const (
	colorReset  = "\x1b[0m"
	colorRed    = "\x1b[31m"
	colorGreen  = "\x1b[32m"
	colorYellow = "\x1b[33m"
)

func statusColor(status types.APIStatus) string {
	switch status {
	case types.APIStatusConnected:
		return colorGreen
	case types.APIStatusChecking:
		return colorYellow
	}
	return colorRed
}

func renderRecordsTable(w io.Writer, records []types.TestRecord) {
	if len(records) == 0 {
		fmt.Fprintln(w, "(0 records)")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "ID", "Type", "Created", "Data"})

	for i, r := range records {
		t.AppendRow(table.Row{i + 1, r.ID, r.Type, createdLabel(r), compactData(r.Data)})
	}

	t.Render()
	fmt.Fprintf(w, "(%d records, %d types)\n", len(records), countTypes(records))
}

func renderTemplatesTable(w io.Writer, names []string) {
	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"#", "Template"})
	for i, name := range names {
		t.AppendRow(table.Row{i + 1, name})
	}
	t.Render()
}

func renderStatsTable(w io.Writer, stats []analytics.Stats) {
	if len(stats) == 0 {
		fmt.Fprintln(w, "No calls recorded yet")
		return
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(table.Row{"Operation", "Type", "Calls", "Success", "Errors", "Network", "Records", "Avg", "Min", "Max", "Last Called"})

	for _, s := range stats {
		entityType := s.EntityType
		if entityType == "" {
			entityType = "-"
		}
		t.AppendRow(table.Row{
			s.Operation,
			entityType,
			s.TotalCalls,
			fmt.Sprintf("%.0f%%", s.SuccessRate()),
			s.ErrorCount,
			s.NetworkErrors,
			s.TotalRecords,
			fmt.Sprintf("%.0fms", s.AvgDurationMs),
			fmt.Sprintf("%dms", s.MinDurationMs),
			fmt.Sprintf("%dms", s.MaxDurationMs),
			humanize.Time(s.LastCalled),
		})
	}

	t.Render()
}

// createdLabel shows a relative time when createdAt parses, else the raw value
func createdLabel(r types.TestRecord) string {
	if t, ok := r.CreatedTime(); ok {
		return humanize.Time(t)
	}
	return r.CreatedAt
}

func compactData(data any) string {
	if data == nil {
		return ""
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Sprintf("%v", data)
	}
	s := string(raw)
	if len(s) > maxDataWidth {
		s = s[:maxDataWidth-3] + "..."
	}
	return strings.ReplaceAll(s, "\n", " ")
}

func countTypes(records []types.TestRecord) int {
	seen := make(map[string]struct{})
	for _, r := range records {
		seen[r.Type] = struct{}{}
	}
	return len(seen)
}
