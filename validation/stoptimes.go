package validation

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/gtfs"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/timeutils"
)

var requiredFiles = []string{gtfs.FileAgency, gtfs.FileRoutes, gtfs.FileStops, gtfs.FileTrips, gtfs.FileStopTimes}

// ScheduleValidator checks stop_times.txt of a static feed.
type ScheduleValidator struct {
	MaxTripDuration time.Duration // zero disables trip_too_long
	MaxStopGap      time.Duration // zero disables large_stop_gap
	Log             zerolog.Logger
}

// Validate runs every schedule rule against idx.
func (v *ScheduleValidator) Validate(idx *gtfs.Index, c *NoticeContainer) {
	for _, f := range requiredFiles {
		if !idx.HasFile(f) {
			c.Add(Notice{
				Code:     CodeMissingRequiredFile,
				Severity: SeverityError,
				File:     f,
				Message:  fmt.Sprintf("required file %s is missing", f),
			})
		}
	}
	trips := idx.TripIDsWithStopTimes()
	for _, tripID := range trips {
		v.validateTrip(idx, tripID, idx.StopTimesForTrip(tripID), c)
	}
	v.Log.Debug().Int("trips", len(trips)).Int("notices", c.Len()).Msg("Validated stop times")
}

func (v *ScheduleValidator) validateTrip(idx *gtfs.Index, tripID string, sts []gtfs.StopTime, c *NoticeContainer) {
	if len(sts) == 0 {
		return
	}
	for _, st := range sts {
		checkParsed(st, "arrival_time", st.ArrivalTime, st.Arrival, c)
		checkParsed(st, "departure_time", st.DepartureTime, st.Departure, c)
		if st.HasArrival() && st.HasDeparture() && *st.Arrival > *st.Departure {
			c.Add(stopTimeNotice(st, CodeArrivalAfterDeparture, SeverityError, "arrival_time", st.ArrivalTime,
				fmt.Sprintf("arrival_time %s is after departure_time %s", st.Arrival, st.Departure)))
		}
	}

	checkEdge(sts[0], c)
	if len(sts) > 1 {
		checkEdge(sts[len(sts)-1], c)
	}

	var (
		prev      *gtfs.StopTime
		prevTime  timeutils.NoonOffset
		firstTime *timeutils.NoonOffset
		lastTime  timeutils.NoonOffset
	)
	for i := range sts {
		st := &sts[i]
		earliest, ok := earliestTime(*st)
		if !ok {
			continue
		}
		if firstTime == nil {
			t := earliest
			firstTime = &t
		}
		if prev != nil {
			switch {
			case earliest < prevTime:
				c.Add(stopTimeNotice(*st, CodeDecreasingStopTime, SeverityError, fieldOf(*st), earliest.String(),
					fmt.Sprintf("stop %s at %s is earlier than stop %s at %s",
						idx.StopLabel(st.StopID), earliest, idx.StopLabel(prev.StopID), prevTime)))
			case v.MaxStopGap > 0 && gap(prevTime, earliest) > v.MaxStopGap:
				c.Add(stopTimeNotice(*st, CodeLargeStopGap, SeverityInfo, fieldOf(*st), earliest.String(),
					fmt.Sprintf("%s between stop %s at %s and stop %s at %s",
						gap(prevTime, earliest), idx.StopLabel(prev.StopID), prevTime, idx.StopLabel(st.StopID), earliest)))
			}
		}
		prev = st
		prevTime = latestTime(*st)
		lastTime = prevTime
	}

	if firstTime != nil && v.MaxTripDuration > 0 && gap(*firstTime, lastTime) > v.MaxTripDuration {
		c.Add(Notice{
			Code:     CodeTripTooLong,
			Severity: SeverityWarning,
			File:     gtfs.FileStopTimes,
			Row:      sts[0].Row,
			TripID:   tripID,
			Message: fmt.Sprintf("trip %s runs from %s to %s, longer than %s",
				idx.TripLabel(tripID), *firstTime, lastTime, v.MaxTripDuration),
		})
	}
}

func checkParsed(st gtfs.StopTime, field, raw string, parsed *timeutils.NoonOffset, c *NoticeContainer) {
	if raw == "" || parsed != nil {
		return
	}
	c.Add(stopTimeNotice(st, CodeInvalidTime, SeverityError, field, raw,
		fmt.Sprintf("%s %q is not a valid HH:MM:SS time", field, raw)))
}

func checkEdge(st gtfs.StopTime, c *NoticeContainer) {
	if st.ArrivalTime == "" {
		c.Add(stopTimeNotice(st, CodeMissingTripEdgeTime, SeverityError, "arrival_time", "",
			fmt.Sprintf("first and last stops of a trip require arrival_time, stop %s has none", st.StopID)))
	}
	if st.DepartureTime == "" {
		c.Add(stopTimeNotice(st, CodeMissingTripEdgeTime, SeverityError, "departure_time", "",
			fmt.Sprintf("first and last stops of a trip require departure_time, stop %s has none", st.StopID)))
	}
}

func stopTimeNotice(st gtfs.StopTime, code string, sev Severity, field, value, msg string) Notice {
	return Notice{
		Code:     code,
		Severity: sev,
		File:     gtfs.FileStopTimes,
		Row:      st.Row,
		Field:    field,
		Value:    value,
		TripID:   st.TripID,
		Message:  msg,
	}
}

// earliestTime is the arrival, or the departure when arrival is unusable.
func earliestTime(st gtfs.StopTime) (timeutils.NoonOffset, bool) {
	if st.HasArrival() {
		return *st.Arrival, true
	}
	if st.HasDeparture() {
		return *st.Departure, true
	}
	return 0, false
}

// latestTime is the departure, or the arrival when departure is unusable.
// Only called for stop times that have at least one usable value.
func latestTime(st gtfs.StopTime) timeutils.NoonOffset {
	if st.HasDeparture() {
		return *st.Departure
	}
	return *st.Arrival
}

func fieldOf(st gtfs.StopTime) string {
	if st.HasArrival() {
		return "arrival_time"
	}
	return "departure_time"
}

func gap(from, to timeutils.NoonOffset) time.Duration {
	return time.Duration(to-from) * time.Second
}
