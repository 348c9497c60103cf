package cli

import (
	"github.com/fatih/color"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/validation"
)

var (
	colorError   = color.New(color.FgRed, color.Bold)
	colorWarning = color.New(color.FgYellow)
	colorInfo    = color.New(color.FgCyan)
	colorOK      = color.New(color.FgGreen)
	colorHeader  = color.New(color.Bold)
	colorMuted   = color.New(color.FgWhite, color.Faint)
)

// DisableColor disables all color output.
func DisableColor() {
	color.NoColor = true
}

func severityColor(s validation.Severity) *color.Color {
	switch s {
	case validation.SeverityError:
		return colorError
	case validation.SeverityWarning:
		return colorWarning
	default:
		return colorInfo
	}
}
