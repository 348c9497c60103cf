package gtfs

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
	"github.com/rs/zerolog"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/config"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/timeutils"
)

// NewIndexFromBytes builds an index from the bytes of a GTFS zip.
func NewIndexFromBytes(data []byte, log zerolog.Logger) (*Index, error) {
	return NewIndexFromReader(bytes.NewReader(data), int64(len(data)), log)
}

// NewIndexFromFile builds an index from a GTFS zip on disk.
func NewIndexFromFile(path string, log zerolog.Logger) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrap(err, "open gtfs")
	}
	defer func() { _ = f.Close() }()
	stat, err := f.Stat()
	if err != nil {
		return nil, errors.Wrap(err, "stat gtfs")
	}
	return NewIndexFromReader(f, stat.Size(), log)
}

// NewIndexFromReader builds an index from a GTFS zip read through r.
func NewIndexFromReader(r io.ReaderAt, size int64, log zerolog.Logger) (*Index, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, errors.Wrap(err, "open zip")
	}
	g := NewIndex()
	for _, f := range zr.File {
		name := strings.ToLower(f.Name)
		switch name {
		case FileAgency, FileRoutes, FileStops, FileTrips, FileStopTimes, FileFrequencies:
		default:
			continue
		}
		g.Files[name] = true
		rows, err := g.consumeCSV(f, name)
		if err != nil {
			return nil, errors.Wrapf(err, "read %s", name)
		}
		log.Debug().Str("file", name).Int("rows", rows).Msg("Loaded GTFS file")
	}
	for trip, sts := range g.StopTimes {
		sort.SliceStable(sts, func(i, j int) bool { return sts[i].StopSequence < sts[j].StopSequence })
		g.StopTimes[trip] = sts
	}
	return g, nil
}

// NewIndexFromConfig loads the static feed named by cfg. A local path wins
// over a URL. When CachePath is set, a cache built from the same source is
// used instead of the zip, and a fresh load is written back to it.
func NewIndexFromConfig(ctx context.Context, cfg config.GTFSConfig, log zerolog.Logger) (*Index, error) {
	key, err := sourceKey(cfg)
	if err != nil {
		return nil, err
	}
	if cfg.CachePath != "" {
		cached, err := DeserializeIndexFromFile(cfg.CachePath)
		switch {
		case err != nil:
			log.Debug().Err(err).Str("path", cfg.CachePath).Msg("GTFS cache unavailable")
		case cached.Source != key:
			log.Info().Str("path", cfg.CachePath).Str("cached", cached.Source).Str("source", key).
				Msg("GTFS cache was built from another source, reloading")
		default:
			log.Info().Str("path", cfg.CachePath).Msg("Loaded GTFS index from cache")
			return cached, nil
		}
	}

	var idx *Index
	if cfg.StaticPath != "" {
		idx, err = NewIndexFromFile(cfg.StaticPath, log)
	} else {
		var data []byte
		data, err = FetchGTFSData(ctx, http.DefaultClient, cfg.StaticURL)
		if err == nil {
			idx, err = NewIndexFromBytes(data, log)
		}
	}
	if err != nil {
		return nil, err
	}
	idx.Source = key

	if cfg.CachePath != "" {
		if err := SerializeIndexToFile(idx, cfg.CachePath); err != nil {
			log.Warn().Err(err).Str("path", cfg.CachePath).Msg("Failed to write GTFS cache")
		}
	}
	return idx, nil
}

// sourceKey identifies where an index comes from. A local zip is keyed by
// absolute path, size and modification time so that a replaced file
// invalidates the cache. A URL is keyed by the URL alone.
func sourceKey(cfg config.GTFSConfig) (string, error) {
	switch {
	case cfg.StaticPath != "":
		st, err := os.Stat(cfg.StaticPath)
		if err != nil {
			return "", errors.Wrap(err, "stat gtfs")
		}
		path, err := filepath.Abs(cfg.StaticPath)
		if err != nil {
			path = cfg.StaticPath
		}
		return fmt.Sprintf("file:%s:%d:%d", path, st.Size(), st.ModTime().UnixNano()), nil
	case cfg.StaticURL != "":
		return "url:" + cfg.StaticURL, nil
	default:
		return "", errors.New("no GTFS static source configured")
	}
}

// FetchGTFSData downloads a GTFS zip. This is a CLI helper; servers should
// fetch on their own schedule and call NewIndexFromBytes.
func FetchGTFSData(ctx context.Context, client *http.Client, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, http.NoBody)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, errors.Wrapf(err, "fetch %s", url)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}
	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read body")
	}
	return data, nil
}

// row gives access to a CSV record by column name.
type row struct {
	header map[string]int
	record []string
}

func (r row) get(col string) string {
	i, ok := r.header[col]
	if !ok || i >= len(r.record) {
		return ""
	}
	return strings.TrimSpace(r.record[i])
}

func (r row) getInt(col string) int {
	n, _ := strconv.Atoi(r.get(col))
	return n
}

func (g *Index) consumeCSV(f *zip.File, name string) (int, error) {
	rc, err := f.Open()
	if err != nil {
		return 0, err
	}
	defer func() { _ = rc.Close() }()

	csvr := csv.NewReader(rc)
	csvr.FieldsPerRecord = -1
	csvr.ReuseRecord = true
	head, err := csvr.Read()
	if err == io.EOF {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}
	header := make(map[string]int, len(head))
	for i, h := range head {
		h = strings.TrimPrefix(h, "\ufeff")
		header[strings.ToLower(strings.TrimSpace(h))] = i
	}

	n := 0
	for {
		rec, err := csvr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return n, err
		}
		n++
		g.consumeRow(name, n+1, row{header: header, record: rec})
	}
	return n, nil
}

func (g *Index) consumeRow(name string, rowNumber int, r row) {
	switch name {
	case FileAgency:
		if g.AgencyID == "" && g.AgencyName == "" {
			g.AgencyID = r.get("agency_id")
			g.AgencyName = r.get("agency_name")
			g.AgencyTimezone = r.get("agency_timezone")
		}
	case FileRoutes:
		id := r.get("route_id")
		g.Routes[id] = Route{ID: id, ShortName: r.get("route_short_name")}
	case FileStops:
		id := r.get("stop_id")
		g.Stops[id] = Stop{ID: id, Name: r.get("stop_name")}
	case FileTrips:
		id := r.get("trip_id")
		g.Trips[id] = Trip{
			ID:       id,
			RouteID:  r.get("route_id"),
			Headsign: r.get("trip_headsign"),
		}
	case FileStopTimes:
		st := StopTime{
			Row:           rowNumber,
			TripID:        r.get("trip_id"),
			StopID:        r.get("stop_id"),
			StopSequence:  r.getInt("stop_sequence"),
			ArrivalTime:   r.get("arrival_time"),
			DepartureTime: r.get("departure_time"),
		}
		st.Arrival = parseOffset(st.ArrivalTime)
		st.Departure = parseOffset(st.DepartureTime)
		g.StopTimes[st.TripID] = append(g.StopTimes[st.TripID], st)
	case FileFrequencies:
		if id := r.get("trip_id"); id != "" {
			g.FrequencyTrips[id] = true
		}
	}
}

func parseOffset(s string) *timeutils.NoonOffset {
	o, ok := timeutils.ParseNoonOffset(s)
	if !ok {
		return nil
	}
	return &o
}
