package timeutils

// Converter exposes the package functions as methods so callers can hold the
// conversion behind an interface.
type Converter struct{}

// Default is the shared Converter. It carries no state.
var Default Converter

// Parse returns the offset of an HH:MM:SS string, or nil when the string is
// nil, empty, blank or malformed.
func (Converter) Parse(s *string) *int { return ParseOptional(s) }

// Format renders an offset as HH:MM:SS. It fails only for a nil offset.
func (Converter) Format(n *int) (string, error) { return FormatOptional(n) }
