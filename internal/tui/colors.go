package tui

// Color constants for the worklock TUI theme
const (
	ColorBorder = "#3A3F55" // Grey-blue

	// Text Colors
	ColorPrimaryText   = "#E6EAF2" // Primary text (labels, user input, titles)
	ColorSecondaryText = "#B1B8C7" // Secondary text
	ColorPlaceholder   = "#6D7383" // Placeholder text in inputs
	ColorHelpText      = "240"     // Dark grey for help bars

	// Accent Colors
	ColorAccentMain   = "#7C3AED" // Accent elements, active borders
	ColorAccentBright = "#A78BFA" // Highlights, the running clock

	// State Colors
	ColorError   = "#EF4444" // Validation errors, inconsistent days
	ColorSuccess = "#22C55E" // Success, confirmations
	ColorWarning = "#F59E0B" // Paused state
)
