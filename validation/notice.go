package validation

import "sort"

// Severity ranks notices.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
	SeverityInfo    Severity = "INFO"
)

// Notice codes.
const (
	CodeMissingRequiredFile   = "missing_required_file"
	CodeInvalidTime           = "invalid_time"
	CodeMissingTripEdgeTime   = "missing_trip_edge_time"
	CodeArrivalAfterDeparture = "arrival_after_departure"
	CodeDecreasingStopTime    = "decreasing_stop_time"
	CodeTripTooLong           = "trip_too_long"
	CodeLargeStopGap          = "large_stop_gap"
	CodeUnknownTrip           = "unknown_trip"
	CodeInvalidStartTime      = "invalid_start_time"
	CodeStartTimeMismatch     = "start_time_mismatch"
)

// Notice is a single data-quality finding.
type Notice struct {
	Code     string   `json:"code"`
	Severity Severity `json:"severity"`
	File     string   `json:"file,omitempty"`
	Row      int      `json:"row,omitempty"`
	Field    string   `json:"field,omitempty"`
	Value    string   `json:"value,omitempty"`
	TripID   string   `json:"tripId,omitempty"`
	Message  string   `json:"message"`
}

// NoticeContainer collects notices in the order rules emit them.
type NoticeContainer struct {
	notices []Notice
}

// NewNoticeContainer creates an empty container
func NewNoticeContainer() *NoticeContainer {
	return &NoticeContainer{}
}

// Add records a notice.
func (c *NoticeContainer) Add(n Notice) { c.notices = append(c.notices, n) }

// Notices returns the collected notices sorted by file, row and code.
func (c *NoticeContainer) Notices() []Notice {
	out := make([]Notice, len(c.notices))
	copy(out, c.notices)
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].File != out[j].File {
			return out[i].File < out[j].File
		}
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Code < out[j].Code
	})
	return out
}

// Len returns the number of notices collected so far.
func (c *NoticeContainer) Len() int { return len(c.notices) }

// CountBySeverity returns the number of notices per severity.
func (c *NoticeContainer) CountBySeverity() map[Severity]int {
	counts := map[Severity]int{}
	for _, n := range c.notices {
		counts[n.Severity]++
	}
	return counts
}

// CountByCode returns the number of notices per code.
func (c *NoticeContainer) CountByCode() map[string]int {
	counts := map[string]int{}
	for _, n := range c.notices {
		counts[n.Code]++
	}
	return counts
}

// HasErrors reports whether any ERROR notice was collected.
func (c *NoticeContainer) HasErrors() bool { return c.CountBySeverity()[SeverityError] > 0 }
