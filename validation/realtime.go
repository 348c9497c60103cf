package validation

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/gtfs"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/gtfsrt"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/timeutils"
)

// FileTripUpdates names the realtime feed in notices.
const FileTripUpdates = "trip_updates"

// TripUpdatesValidator cross-checks TripUpdates trip descriptors against the schedule.
type TripUpdatesValidator struct {
	Log zerolog.Logger
}

// Validate checks every trip descriptor of tu against idx.
func (v *TripUpdatesValidator) Validate(idx *gtfs.Index, tu *gtfsrt.TripUpdates, c *NoticeContainer) {
	if tu == nil {
		return
	}
	for i, d := range tu.Trips {
		v.validateDescriptor(idx, i+1, d, c)
	}
	v.Log.Debug().Int("trips", len(tu.Trips)).Msg("Validated trip updates")
}

func (v *TripUpdatesValidator) validateDescriptor(idx *gtfs.Index, entity int, d gtfsrt.TripDescriptor, c *NoticeContainer) {
	base := Notice{File: FileTripUpdates, Row: entity, TripID: d.TripID}

	if d.TripID != "" && d.IsScheduled() && !idx.TripIsAScheduledTrip(d.TripID) {
		n := base
		n.Code, n.Severity, n.Field, n.Value = CodeUnknownTrip, SeverityError, "trip_id", d.TripID
		if d.RouteID != "" {
			n.Message = fmt.Sprintf("entity %s references trip %s on route %s, which is not in trips.txt",
				d.EntityID, d.TripID, idx.RouteLabel(d.RouteID))
		} else {
			n.Message = fmt.Sprintf("entity %s references trip %s, which is not in trips.txt", d.EntityID, d.TripID)
		}
		c.Add(n)
		return
	}
	if !d.HasStartTime {
		return
	}

	start, ok := timeutils.ParseNoonOffset(d.StartTime)
	if !ok {
		n := base
		n.Code, n.Severity, n.Field, n.Value = CodeInvalidStartTime, SeverityError, "start_time", d.StartTime
		n.Message = fmt.Sprintf("entity %s start_time %q is not a valid HH:MM:SS time", d.EntityID, d.StartTime)
		c.Add(n)
		return
	}
	if !d.IsScheduled() || idx.IsFrequencyBased(d.TripID) {
		return
	}
	scheduled, ok := idx.FirstDeparture(d.TripID)
	if ok && scheduled != start {
		n := base
		n.Code, n.Severity, n.Field, n.Value = CodeStartTimeMismatch, SeverityWarning, "start_time", d.StartTime
		n.Message = fmt.Sprintf("entity %s start_time %s differs from scheduled first departure %s of trip %s",
			d.EntityID, start, scheduled, idx.TripLabel(d.TripID))
		c.Add(n)
	}
}
