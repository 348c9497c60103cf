// Package gtfsrt fetches and decodes GTFS-Realtime TripUpdates feeds.
//
// Only the TripDescriptor of each TripUpdate is kept: trip_id, route_id,
// start_date and the start_time string, which uses the same HH:MM:SS
// convention as GTFS static stop times and is checked against the schedule.
package gtfsrt
