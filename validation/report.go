package validation

import (
	"time"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/timeutils"
)

// Summary counts what a run looked at and what it found.
type Summary struct {
	Trips        int                   `json:"trips"`
	StopTimes    int                   `json:"stopTimes"`
	ServiceStart *timeutils.NoonOffset `json:"serviceStart,omitempty"`
	ServiceEnd   *timeutils.NoonOffset `json:"serviceEnd,omitempty"`
	Errors       int                   `json:"errors"`
	Warnings     int                   `json:"warnings"`
	Infos        int                   `json:"infos"`
}

// Report is the outcome of one validation run.
type Report struct {
	FeedName    string    `json:"feedName"`
	GeneratedAt time.Time `json:"generatedAt"`
	Summary     Summary   `json:"summary"`
	Notices     []Notice  `json:"notices"`
}

// NewReport snapshots the container into a report. The notice counts of
// scope are overwritten from c.
func NewReport(feedName string, generatedAt time.Time, scope Summary, c *NoticeContainer) Report {
	counts := c.CountBySeverity()
	scope.Errors = counts[SeverityError]
	scope.Warnings = counts[SeverityWarning]
	scope.Infos = counts[SeverityInfo]
	return Report{
		FeedName:    feedName,
		GeneratedAt: generatedAt.UTC(),
		Summary:     scope,
		Notices:     c.Notices(),
	}
}
