// Package gtfstest builds small GTFS archives in memory for tests.
package gtfstest

import (
	"archive/zip"
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"testing"
)

// Feed maps a file name such as "stop_times.txt" to its CSV content.
type Feed map[string]string

// Basic is a two-trip feed with one trip running past midnight.
func Basic() Feed {
	return Feed{
		"agency.txt": "agency_id,agency_name,agency_url,agency_timezone\n" +
			"SOFIA,Sofia Urban Mobility,https://example.com,Europe/Sofia\n",
		"routes.txt": "route_id,route_short_name,route_type\n" +
			"R1,94,3\n",
		"stops.txt": "stop_id,stop_name,stop_lat,stop_lon\n" +
			"S1,Central Station,42.7115,23.3211\n" +
			"S2,Lions Bridge,42.7053,23.3225\n" +
			"S3,Serdika,42.6977,23.3219\n",
		"trips.txt": "route_id,service_id,trip_id,trip_headsign,direction_id\n" +
			"R1,WD,T1,Serdika,0\n" +
			"R1,WD,T2,Serdika,0\n",
		"stop_times.txt": "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n" +
			"T1,08:00:00,08:00:00,S1,1\n" +
			"T1,08:05:00,08:06:00,S2,2\n" +
			"T1,08:15:30,08:15:30,S3,3\n" +
			"T2,23:50:00,23:50:00,S1,1\n" +
			"T2,24:05:00,24:05:00,S2,2\n" +
			"T2,25:30:40,25:30:40,S3,3\n",
	}
}

// With returns a copy of f with file replaced by content.
func (f Feed) With(file, content string) Feed {
	out := make(Feed, len(f)+1)
	for k, v := range f {
		out[k] = v
	}
	out[file] = content
	return out
}

// Without returns a copy of f without file.
func (f Feed) Without(file string) Feed {
	out := make(Feed, len(f))
	for k, v := range f {
		if k != file {
			out[k] = v
		}
	}
	return out
}

// Zip encodes the feed as a zip archive.
func (f Feed) Zip(t testing.TB) []byte {
	t.Helper()
	names := make([]string, 0, len(f))
	for name := range f {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			t.Fatalf("create %s: %v", name, err)
		}
		if _, err := w.Write([]byte(f[name])); err != nil {
			t.Fatalf("write %s: %v", name, err)
		}
	}
	if err := zw.Close(); err != nil {
		t.Fatalf("close zip: %v", err)
	}
	return buf.Bytes()
}

// WriteZip writes the feed to a temporary file and returns its path.
func (f Feed) WriteZip(t testing.TB) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gtfs.zip")
	if err := os.WriteFile(path, f.Zip(t), 0o644); err != nil {
		t.Fatalf("write zip: %v", err)
	}
	return path
}
