package gtfsrt

import (
	"context"
	"os"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/go-faster/errors"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/config"
)

// TripDescriptor is the trip identification carried by one TripUpdate entity.
type TripDescriptor struct {
	EntityID     string
	TripID       string
	RouteID      string
	StartDate    string
	StartTime    string
	HasStartTime bool
	Relationship gtfsrtpb.TripDescriptor_ScheduleRelationship
}

// IsScheduled reports whether the trip is expected to exist in the static feed.
func (d TripDescriptor) IsScheduled() bool {
	switch d.Relationship {
	case gtfsrtpb.TripDescriptor_ADDED, gtfsrtpb.TripDescriptor_UNSCHEDULED:
		return false
	}
	return true
}

// TripUpdates is a decoded TripUpdates feed.
type TripUpdates struct {
	HeaderTimestamp uint64
	Trips           []TripDescriptor
}

// ParseTripUpdates decodes a protobuf FeedMessage and extracts its trip descriptors.
// Entities without a TripUpdate are skipped.
func ParseTripUpdates(data []byte) (*TripUpdates, error) {
	var fm gtfsrtpb.FeedMessage
	if err := proto.Unmarshal(data, &fm); err != nil {
		return nil, errors.Wrap(err, "decode feed message")
	}
	out := &TripUpdates{HeaderTimestamp: fm.GetHeader().GetTimestamp()}
	for _, e := range fm.GetEntity() {
		tu := e.GetTripUpdate()
		if tu == nil || tu.GetTrip() == nil {
			continue
		}
		trip := tu.GetTrip()
		out.Trips = append(out.Trips, TripDescriptor{
			EntityID:     e.GetId(),
			TripID:       trip.GetTripId(),
			RouteID:      trip.GetRouteId(),
			StartDate:    trip.GetStartDate(),
			StartTime:    trip.GetStartTime(),
			HasStartTime: trip.StartTime != nil,
			Relationship: trip.GetScheduleRelationship(),
		})
	}
	return out, nil
}

// LoadTripUpdates reads the configured TripUpdates feed. A local path wins
// over a URL. It returns nil, nil when neither is configured.
func LoadTripUpdates(ctx context.Context, cfg config.GTFSRTConfig) (*TripUpdates, error) {
	var (
		data []byte
		err  error
	)
	switch {
	case cfg.TripUpdatesPath != "":
		data, err = os.ReadFile(cfg.TripUpdatesPath)
		if err != nil {
			return nil, errors.Wrap(err, "read trip updates")
		}
	case cfg.TripUpdatesURL != "":
		client := NewClient(time.Duration(cfg.TimeoutMS) * time.Millisecond)
		data, err = client.Fetch(ctx, cfg.TripUpdatesURL)
		if err != nil {
			return nil, errors.Wrap(err, "trip updates")
		}
	default:
		return nil, nil
	}
	return ParseTripUpdates(data)
}
