package parser

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/balkashynov/weeklog/internal/week"
)

// Suggested values offered by the entry form
var (
	ProjectSuggestions = []string{"Indirect - others", "Indirect - training", "Indirect - R&D"}
	TaskSuggestions    = []string{"Development", "Support"}
)

// fold lowercases for case-insensitive comparison
func fold(s string) string {
	return cases.Fold().String(norm.NFC.String(strings.TrimSpace(s)))
}

// NormalizeSystem returns the upper-cased system name
func NormalizeSystem(input string) string {
	return cases.Upper(language.Und).String(norm.NFC.String(strings.TrimSpace(input)))
}

// CompleteWeekday resolves a case-insensitive weekday name or unique prefix
// ("mon", "TH" is ambiguous, "thu") to its canonical name
func CompleteWeekday(input string) (string, error) {
	typed := fold(input)
	if typed == "" {
		return "", fmt.Errorf("%w: empty", week.ErrUnknownWeekday)
	}

	var matches []string
	for _, day := range week.Weekdays {
		folded := fold(day)
		if folded == typed {
			return day, nil
		}
		if strings.HasPrefix(folded, typed) {
			matches = append(matches, day)
		}
	}

	if len(matches) == 1 {
		return matches[0], nil
	}
	if len(matches) > 1 {
		return "", fmt.Errorf("%w: %q matches %s", week.ErrUnknownWeekday, input, strings.Join(matches, ", "))
	}
	return "", fmt.Errorf("%w: %q", week.ErrUnknownWeekday, input)
}

// CompleteTask expands a prefix of a suggested task ("dev" -> "Development").
// Anything else is kept as free text.
func CompleteTask(input string) string {
	trimmed := strings.TrimSpace(input)
	typed := fold(trimmed)
	if typed == "" {
		return ""
	}
	for _, task := range TaskSuggestions {
		if strings.HasPrefix(fold(task), typed) {
			return task
		}
	}
	return trimmed
}

// ValidateTaskChoice accepts only the suggested tasks, or an empty task.
// Used by the grid editor, which does not take free text for the task column.
func ValidateTaskChoice(input string) (string, error) {
	if strings.TrimSpace(input) == "" {
		return "", nil
	}
	typed := fold(input)
	for _, task := range TaskSuggestions {
		if fold(task) == typed {
			return task, nil
		}
	}
	return "", fmt.Errorf("task must be either %s", strings.Join(TaskSuggestions, " or "))
}

// CompleteProject applies the indirect project shortcuts:
//   - "i" or "indirect" -> "Indirect - others"
//   - "indirect o|t|r" -> others, training or R&D
//
// Other input is kept as free text.
func CompleteProject(input string) string {
	trimmed := strings.TrimSpace(input)
	typed := fold(trimmed)

	switch typed {
	case "i", "indirect":
		return ProjectSuggestions[0]
	}

	if rest, ok := strings.CutPrefix(typed, "indirect"); ok {
		rest = strings.TrimLeft(rest, " -")
		switch {
		case strings.HasPrefix(rest, "o"):
			return ProjectSuggestions[0]
		case strings.HasPrefix(rest, "t"):
			return ProjectSuggestions[1]
		case strings.HasPrefix(rest, "r"):
			return ProjectSuggestions[2]
		}
	}

	return trimmed
}
