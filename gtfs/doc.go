/*
Package gtfs provides GTFS static data loading and indexing.

The loader reads agency.txt, routes.txt, stops.txt, trips.txt and
stop_times.txt out of a GTFS zip and builds an in-memory Index. Stop times
keep the raw arrival_time/departure_time strings next to their parsed
noon-relative offsets, so validation rules can report the original text of a
value that failed to parse.

# Basic Usage

Load from raw bytes:

	index, err := gtfs.NewIndexFromBytes(zipBytes, log)
	if err != nil {
	    return err
	}
	for _, st := range index.StopTimesForTrip("trip_123") {
	    fmt.Println(st.StopID, st.ArrivalTime)
	}

Load from a local file or from configuration:

	index, err := gtfs.NewIndexFromFile("gtfs.zip", log)
	index, err := gtfs.NewIndexFromConfig(ctx, cfg.GTFS, log)

# Caching

Parsing a large stop_times.txt takes seconds. An index can be written to and
read from a gob file with SerializeIndexToFile and DeserializeIndexFromFile;
NewIndexFromConfig does this automatically when GTFSConfig.CachePath is set.
*/
package gtfs
