package report

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/balkashynov/weeklog/internal/models"
	"github.com/balkashynov/weeklog/internal/week"
)

// dayNames are the short column headers, Monday first
var dayNames = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// PivotRow is one project's hours across the week
type PivotRow struct {
	Project string
	Days    [7]decimal.Decimal
	Total   decimal.Decimal
}

// Pivot is the weekly summary grid: project x weekday -> summed hours
type Pivot struct {
	Span      week.Span
	Rows      []PivotRow
	DayTotals [7]decimal.Decimal
	Total     decimal.Decimal
}

// BuildPivot arranges summary rows into a project x weekday grid.
// Projects are sorted by name; rows with an unknown weekday are skipped.
func BuildPivot(span week.Span, rows []models.SummaryRow) Pivot {
	byProject := make(map[string]*PivotRow)
	var projects []string

	p := Pivot{Span: span}
	for _, row := range rows {
		day, err := week.WeekdayIndex(row.Weekday)
		if err != nil {
			continue
		}

		pr, ok := byProject[row.Project]
		if !ok {
			pr = &PivotRow{Project: row.Project}
			byProject[row.Project] = pr
			projects = append(projects, row.Project)
		}

		hours := decimal.NewFromFloat(row.Hours)
		pr.Days[day] = pr.Days[day].Add(hours)
		pr.Total = pr.Total.Add(hours)
		p.DayTotals[day] = p.DayTotals[day].Add(hours)
		p.Total = p.Total.Add(hours)
	}

	sort.Strings(projects)
	for _, name := range projects {
		p.Rows = append(p.Rows, *byProject[name])
	}
	return p
}

// Hours returns the summed hours of project on the given weekday
func (p Pivot) Hours(project, weekday string) decimal.Decimal {
	day, err := week.WeekdayIndex(weekday)
	if err != nil {
		return decimal.Zero
	}
	for _, row := range p.Rows {
		if row.Project == project {
			return row.Days[day]
		}
	}
	return decimal.Zero
}

// RenderPivot writes the pivot as a fixed-width text table
func RenderPivot(w io.Writer, p Pivot) error {
	if len(p.Rows) == 0 {
		_, err := fmt.Fprintf(w, "No time logged in the week of %s.\n", p.Span.Start())
		return err
	}

	nameWidth := len("Project")
	for _, row := range p.Rows {
		nameWidth = max(nameWidth, len(row.Project))
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Week of %s\n\n", p.Span.Start())

	writePivotLine(&b, nameWidth, "Project", dayNames[:], "Total")
	b.WriteString(strings.Repeat("-", nameWidth+7*7+8) + "\n")

	for _, row := range p.Rows {
		writePivotLine(&b, nameWidth, row.Project, cells(row.Days), formatCell(row.Total))
	}

	b.WriteString(strings.Repeat("-", nameWidth+7*7+8) + "\n")
	writePivotLine(&b, nameWidth, "Total", cells(p.DayTotals), formatCell(p.Total))

	_, err := io.WriteString(w, b.String())
	return err
}

func writePivotLine(b *strings.Builder, nameWidth int, name string, days []string, total string) {
	fmt.Fprintf(b, "%-*s", nameWidth, name)
	for _, d := range days {
		fmt.Fprintf(b, " %6s", d)
	}
	fmt.Fprintf(b, " %7s\n", total)
}

func cells(days [7]decimal.Decimal) []string {
	out := make([]string, len(days))
	for i, d := range days {
		out[i] = formatCell(d)
	}
	return out
}

// formatCell renders zero as "-" so worked days stand out
func formatCell(d decimal.Decimal) string {
	if d.IsZero() {
		return "-"
	}
	return d.String()
}
