package gtfs

import (
	"sort"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/timeutils"
)

// GTFS file names read by the loader.
const (
	FileAgency      = "agency.txt"
	FileRoutes      = "routes.txt"
	FileStops       = "stops.txt"
	FileTrips       = "trips.txt"
	FileStopTimes   = "stop_times.txt"
	FileFrequencies = "frequencies.txt"
)

// Route is a row of routes.txt
type Route struct {
	ID        string
	ShortName string
}

// Stop is a row of stops.txt
type Stop struct {
	ID   string
	Name string
}

// Trip is a row of trips.txt
type Trip struct {
	ID       string
	RouteID  string
	Headsign string
}

// StopTime is a row of stop_times.txt.
// Arrival and Departure are nil when the raw value is empty or malformed.
type StopTime struct {
	Row           int // CSV row number, header is row 1
	TripID        string
	StopID        string
	StopSequence  int
	ArrivalTime   string
	DepartureTime string
	Arrival       *timeutils.NoonOffset
	Departure     *timeutils.NoonOffset
}

// HasArrival reports whether the row has a usable arrival time.
func (st StopTime) HasArrival() bool { return st.Arrival != nil }

// HasDeparture reports whether the row has a usable departure time.
func (st StopTime) HasDeparture() bool { return st.Departure != nil }

// Index stores GTFS static data in memory for fast lookups.
// Fields are exported so the index can be gob encoded.
type Index struct {
	Source         string // set by NewIndexFromConfig, checked against the cache
	AgencyID       string
	AgencyName     string
	AgencyTimezone string
	Files          map[string]bool       // file name -> present in archive
	Routes         map[string]Route      // route_id -> route
	Stops          map[string]Stop       // stop_id -> stop
	Trips          map[string]Trip       // trip_id -> trip
	StopTimes      map[string][]StopTime // trip_id -> stop times ordered by stop_sequence
	FrequencyTrips map[string]bool       // trip_id -> listed in frequencies.txt
}

// NewIndex creates a new empty index
func NewIndex() *Index {
	return &Index{
		Files:          map[string]bool{},
		Routes:         map[string]Route{},
		Stops:          map[string]Stop{},
		Trips:          map[string]Trip{},
		StopTimes:      map[string][]StopTime{},
		FrequencyTrips: map[string]bool{},
	}
}

// HasFile reports whether the archive contained the named file.
func (g *Index) HasFile(name string) bool { return g.Files[name] }

// GetTrip looks up a row of trips.txt.
func (g *Index) GetTrip(tripID string) (Trip, bool) {
	t, ok := g.Trips[tripID]
	return t, ok
}

// TripIsAScheduledTrip reports whether tripID is listed in trips.txt.
func (g *Index) TripIsAScheduledTrip(tripID string) bool {
	_, ok := g.Trips[tripID]
	return ok
}

// IsFrequencyBased reports whether the trip is expanded from frequencies.txt,
// in which case its realtime start times differ from the template trip.
func (g *Index) IsFrequencyBased(tripID string) bool { return g.FrequencyTrips[tripID] }

// GetStopName returns stop_name, or "" for an unknown stop.
func (g *Index) GetStopName(stopID string) string { return g.Stops[stopID].Name }

// GetRouteShortName returns route_short_name, or "" for an unknown route.
func (g *Index) GetRouteShortName(routeID string) string { return g.Routes[routeID].ShortName }

// StopLabel names a stop for messages: "Lions Bridge (S2)", or the bare id
// when stops.txt has no name for it.
func (g *Index) StopLabel(stopID string) string {
	if name := g.GetStopName(stopID); name != "" {
		return name + " (" + stopID + ")"
	}
	return stopID
}

// RouteLabel is the route short name, falling back to the route id.
func (g *Index) RouteLabel(routeID string) string {
	if name := g.GetRouteShortName(routeID); name != "" {
		return name
	}
	return routeID
}

// TripLabel describes a trip for messages, e.g. "T1 (94 to Serdika)".
func (g *Index) TripLabel(tripID string) string {
	trip, ok := g.GetTrip(tripID)
	if !ok {
		return tripID
	}
	var desc string
	switch route := g.RouteLabel(trip.RouteID); {
	case route != "" && trip.Headsign != "":
		desc = route + " to " + trip.Headsign
	case route != "":
		desc = route
	case trip.Headsign != "":
		desc = "to " + trip.Headsign
	default:
		return tripID
	}
	return tripID + " (" + desc + ")"
}

// StopTimesForTrip returns the stop times of a trip ordered by stop_sequence.
func (g *Index) StopTimesForTrip(tripID string) []StopTime { return g.StopTimes[tripID] }

// FirstDeparture returns the departure time at the first stop of a trip,
// falling back to the arrival time. ok is false when neither is usable.
func (g *Index) FirstDeparture(tripID string) (timeutils.NoonOffset, bool) {
	sts := g.StopTimes[tripID]
	if len(sts) == 0 {
		return 0, false
	}
	first := sts[0]
	switch {
	case first.Departure != nil:
		return *first.Departure, true
	case first.Arrival != nil:
		return *first.Arrival, true
	}
	return 0, false
}

// TripIDsWithStopTimes returns the trip ids present in stop_times.txt, sorted.
func (g *Index) TripIDsWithStopTimes() []string {
	keys := make([]string, 0, len(g.StopTimes))
	for k := range g.StopTimes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// StopTimeCount returns the number of stop_times.txt rows indexed.
func (g *Index) StopTimeCount() int {
	n := 0
	for _, sts := range g.StopTimes {
		n += len(sts)
	}
	return n
}

// ServiceSpan returns the earliest and latest usable stop time in the feed.
func (g *Index) ServiceSpan() (start, end timeutils.NoonOffset, ok bool) {
	for _, sts := range g.StopTimes {
		for _, st := range sts {
			for _, o := range []*timeutils.NoonOffset{st.Arrival, st.Departure} {
				if o == nil {
					continue
				}
				if !ok || *o < start {
					start = *o
				}
				if !ok || *o > end {
					end = *o
				}
				ok = true
			}
		}
	}
	return start, end, ok
}
