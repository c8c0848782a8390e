package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/balkashynov/weeklog/internal/week"
)

// Entry represents one logged unit of work
type Entry struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id" yaml:"id"`
	Date    string  `gorm:"not null" json:"date" yaml:"date"` // 2006-01-02
	Weekday string  `gorm:"column:weekday;not null" json:"weekday" yaml:"weekday"`
	Project string  `gorm:"not null" json:"project" yaml:"project"`
	System  string  `gorm:"not null" json:"system" yaml:"system"`
	Hours   float64 `gorm:"not null" json:"hours" yaml:"hours"`
	Task    string  `gorm:"not null" json:"task" yaml:"task"`
	Notes   string  `gorm:"column:notes" json:"notes" yaml:"notes"`
}

// TableName pins the table name used by the schema migrations
func (Entry) TableName() string {
	return "entries"
}

// SummaryRow is the summed hours of one project on one weekday
type SummaryRow struct {
	Project string
	Weekday string
	Hours   float64
}

// HoursStep is the smallest bookable unit of time
var HoursStep = decimal.RequireFromString("0.25")

// ValidationError reports an entry field that breaks an invariant
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// IsQuarterHours reports whether h is a positive multiple of HoursStep
func IsQuarterHours(h float64) bool {
	d := decimal.NewFromFloat(h)
	return d.IsPositive() && d.Mod(HoursStep).IsZero()
}

// Validate checks the entry invariants. ID is not inspected.
func (e Entry) Validate() error {
	if strings.TrimSpace(e.Project) == "" {
		return &ValidationError{Field: "project", Reason: "must not be empty"}
	}
	if !IsQuarterHours(e.Hours) {
		return &ValidationError{Field: "hours", Reason: "must be a positive multiple of 0.25"}
	}
	if strings.TrimSpace(e.Task) == "" && strings.TrimSpace(e.Notes) == "" {
		return &ValidationError{Field: "task", Reason: "task or notes is required"}
	}
	if _, err := week.WeekdayIndex(e.Weekday); err != nil {
		return &ValidationError{Field: "weekday", Reason: fmt.Sprintf("%q is not a weekday name", e.Weekday)}
	}
	d, err := time.Parse(week.DateLayout, e.Date)
	if err != nil {
		return &ValidationError{Field: "date", Reason: fmt.Sprintf("%q is not an ISO date", e.Date)}
	}
	if d.Weekday().String() != e.Weekday {
		return &ValidationError{Field: "date", Reason: fmt.Sprintf("%s is a %s, not a %s", e.Date, d.Weekday(), e.Weekday)}
	}
	return nil
}
