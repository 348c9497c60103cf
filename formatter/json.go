package formatter

import (
	"encoding/json"

	"github.com/go-faster/errors"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/validation"
)

// Format names accepted by Build.
const (
	FormatJSON = "json"
	FormatXML  = "xml"
)

type responseBuilder struct{}

// NewResponseBuilder creates a new builder for formatting validation reports
func NewResponseBuilder() *responseBuilder {
	return &responseBuilder{}
}

// BuildJSON serializes a report to indented JSON
func (rb *responseBuilder) BuildJSON(rep *validation.Report) ([]byte, error) {
	b, err := json.MarshalIndent(rep, "", "  ")
	if err != nil {
		return nil, errors.Wrap(err, "marshal report")
	}
	return b, nil
}

// Build serializes a report in the named format.
func (rb *responseBuilder) Build(rep *validation.Report, format string) ([]byte, error) {
	switch format {
	case FormatJSON, "":
		return rb.BuildJSON(rep)
	case FormatXML:
		return rb.BuildXML(rep), nil
	default:
		return nil, errors.Errorf("unknown format %q", format)
	}
}
