// Package gtfsvalidator checks the stop times of a GTFS feed and, optionally,
// the trip descriptors of a GTFS-Realtime TripUpdates feed against it.
package gtfsvalidator

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/config"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/gtfs"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/validation"
)

// Validator runs every rule over one loaded feed.
type Validator struct {
	GTFS        *gtfs.Index
	TripUpdates *gtfsrt.TripUpdates // nil when no realtime feed is configured
	Cfg         config.AppConfig
	Log         zerolog.Logger

	now func() time.Time
}

// NewValidator creates a validator for an already loaded feed.
func NewValidator(idx *gtfs.Index, tu *gtfsrt.TripUpdates, cfg config.AppConfig, log zerolog.Logger) *Validator {
	return &Validator{GTFS: idx, TripUpdates: tu, Cfg: cfg, Log: log, now: time.Now}
}

// Run validates the feed and returns the report.
func (v *Validator) Run(feedName string) *validation.Report {
	c := validation.NewNoticeContainer()

	sched := &validation.ScheduleValidator{
		MaxTripDuration: v.Cfg.Validation.MaxTripDuration(),
		MaxStopGap:      v.Cfg.Validation.MaxStopGap(),
		Log:             v.Log,
	}
	sched.Validate(v.GTFS, c)

	if v.TripUpdates != nil {
		rt := &validation.TripUpdatesValidator{Log: v.Log}
		rt.Validate(v.GTFS, v.TripUpdates, c)
	}

	scope := validation.Summary{
		Trips:     len(v.GTFS.TripIDsWithStopTimes()),
		StopTimes: v.GTFS.StopTimeCount(),
	}
	if start, end, ok := v.GTFS.ServiceSpan(); ok {
		scope.ServiceStart, scope.ServiceEnd = &start, &end
	}
	rep := validation.NewReport(feedName, v.now(), scope, c)

	v.Log.Info().
		Str("feed", feedName).
		Int("errors", rep.Summary.Errors).
		Int("warnings", rep.Summary.Warnings).
		Int("infos", rep.Summary.Infos).
		Msg("Validation finished")
	return &rep
}

// ValidateFeed loads the static feed, the optional TripUpdates feed, and
// validates them.
func ValidateFeed(ctx context.Context, cfg config.AppConfig, feed config.Feed, log zerolog.Logger) (*validation.Report, error) {
	log = log.With().Str("feed", feed.Name).Logger()

	idx, err := gtfs.NewIndexFromConfig(ctx, feed.GTFS, log)
	if err != nil {
		return nil, err
	}
	log.Info().Int("trips", len(idx.Trips)).Int("stop_times", idx.StopTimeCount()).Msg("Loaded GTFS static")

	tu, err := gtfsrt.LoadTripUpdates(ctx, feed.GTFSRT)
	if err != nil {
		return nil, err
	}
	if tu != nil {
		log.Info().Int("trip_updates", len(tu.Trips)).Msg("Loaded GTFS-RT trip updates")
	}

	return NewValidator(idx, tu, cfg, log).Run(feed.Name), nil
}
