package tui

// Color constants for the weeklog TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Cell values, user input
	ColorSecondaryText = "#B1B8C7" // Labels, empty-state text
	ColorDisabledText  = "#6D7383" // Skipped steps, disabled Add button
	ColorPlaceholder   = "#B1B8C7" // Input placeholders
	ColorHelpText      = "240"     // Dark grey for help text

	// Accent Colors (Purple theme)
	ColorAccentMain   = "#7C3AED" // Title, selected row, summary border
	ColorAccentBright = "#A78BFA" // Column headers, cursor

	// State Colors
	ColorError   = "#EF4444" // Validation errors
	ColorSuccess = "#22C55E" // Saved / deleted confirmations
	ColorWarning = "#F59E0B" // Delete prompt
)
