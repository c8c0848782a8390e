package report

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/balkashynov/weeklog/internal/models"
	"github.com/balkashynov/weeklog/internal/parser"
)

// Output formats accepted by Encode
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatYAML  = "yaml"
)

var entryHeader = []string{"ID", "DATE", "DAY", "PROJECT", "SYSTEM", "HOURS", "TASK", "NOTES"}

// RenderEntries writes entries as a text table sized to its content
func RenderEntries(w io.Writer, entries []models.Entry) error {
	if len(entries) == 0 {
		_, err := io.WriteString(w, "No entries for this week.\n")
		return err
	}

	table := [][]string{entryHeader}
	for _, e := range entries {
		table = append(table, []string{
			strconv.FormatUint(uint64(e.ID), 10),
			e.Date,
			e.Weekday,
			e.Project,
			e.System,
			parser.FormatHours(e.Hours),
			e.Task,
			e.Notes,
		})
	}

	widths := make([]int, len(entryHeader))
	for _, row := range table {
		for i, cell := range row {
			widths[i] = max(widths[i], len(cell))
		}
	}

	var b strings.Builder
	for _, row := range table {
		var line strings.Builder
		for i, cell := range row {
			if i > 0 {
				line.WriteString("  ")
			}
			fmt.Fprintf(&line, "%-*s", widths[i], cell)
		}
		b.WriteString(strings.TrimRight(line.String(), " ") + "\n")
	}

	_, err := io.WriteString(w, b.String())
	return err
}

// Encode writes entries in the requested format
func Encode(w io.Writer, format string, entries []models.Entry) error {
	switch strings.ToLower(format) {
	case "", FormatTable:
		return RenderEntries(w, entries)
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(entries); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unknown output format %q (use table, json or yaml)", format)
	}
}
