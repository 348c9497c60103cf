package gtfsvalidator

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/config"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/gtfs"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/internal/gtfstest"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/validation"
)

func testConfig(t *testing.T) config.AppConfig {
	t.Helper()
	cfg, err := config.Parse([]byte("{}"))
	require.NoError(t, err)
	return cfg
}

func TestValidator_Run(t *testing.T) {
	feed := gtfstest.Basic().With("stop_times.txt",
		"trip_id,arrival_time,departure_time,stop_id,stop_sequence\n"+
			"T1,08:00:00,08:00:00,S1,1\n"+
			"T1,8:5:00,08:06:00,S2,2\n"+
			"T1,07:50:00,07:50:00,S3,3\n")
	idx, err := gtfs.NewIndexFromBytes(feed.Zip(t), zerolog.Nop())
	require.NoError(t, err)

	v := NewValidator(idx, nil, testConfig(t), zerolog.Nop())
	v.now = func() time.Time { return time.Date(2025, 10, 3, 8, 0, 0, 0, time.UTC) }
	rep := v.Run("sofia")

	assert.Equal(t, "sofia", rep.FeedName)
	assert.Equal(t, time.Date(2025, 10, 3, 8, 0, 0, 0, time.UTC), rep.GeneratedAt)
	assert.Equal(t, 1, rep.Summary.Trips)
	assert.Equal(t, 3, rep.Summary.StopTimes)
	assert.Equal(t, 2, rep.Summary.Errors)
	require.NotNil(t, rep.Summary.ServiceStart)
	assert.Equal(t, "07:50:00", rep.Summary.ServiceStart.String())
	assert.Equal(t, "08:06:00", rep.Summary.ServiceEnd.String())

	codes := []string{}
	for _, n := range rep.Notices {
		codes = append(codes, n.Code)
	}
	assert.Equal(t, []string{validation.CodeInvalidTime, validation.CodeDecreasingStopTime}, codes)
}

func TestValidator_Run_StopGapThreshold(t *testing.T) {
	idx, err := gtfs.NewIndexFromBytes(gtfstest.Basic().Zip(t), zerolog.Nop())
	require.NoError(t, err)

	tests := []struct {
		name    string
		yaml    string
		notices int
	}{
		// T2 waits 85 minutes between its last two stops.
		{name: "default", yaml: "{}", notices: 0},
		{name: "one hour", yaml: "validation:\n  maxStopGapMinutes: 60\n", notices: 1},
		{name: "disabled", yaml: "validation:\n  maxStopGapMinutes: 0\n  maxTripDurationHours: 0\n", notices: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := config.Parse([]byte(tt.yaml))
			require.NoError(t, err)
			rep := NewValidator(idx, nil, cfg, zerolog.Nop()).Run("sofia")
			assert.Len(t, rep.Notices, tt.notices)
			assert.Equal(t, tt.notices, rep.Summary.Infos)
		})
	}
}

func TestValidateFeed(t *testing.T) {
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{GtfsRealtimeVersion: proto.String("2.0")},
		Entity: []*gtfsrtpb.FeedEntity{{
			Id: proto.String("e1"),
			TripUpdate: &gtfsrtpb.TripUpdate{Trip: &gtfsrtpb.TripDescriptor{
				TripId:    proto.String("T2"),
				StartTime: proto.String("23:55:00"),
			}},
		}},
	}
	data, err := proto.Marshal(fm)
	require.NoError(t, err)
	tuPath := filepath.Join(t.TempDir(), "trip-updates.pb")
	require.NoError(t, os.WriteFile(tuPath, data, 0o644))

	feed := config.Feed{
		Name:   "sofia",
		GTFS:   config.GTFSConfig{StaticPath: gtfstest.Basic().WriteZip(t)},
		GTFSRT: config.GTFSRTConfig{TripUpdatesPath: tuPath},
	}
	rep, err := ValidateFeed(context.Background(), testConfig(t), feed, zerolog.Nop())
	require.NoError(t, err)

	require.Len(t, rep.Notices, 1)
	assert.Equal(t, validation.CodeStartTimeMismatch, rep.Notices[0].Code)
	assert.Equal(t, 2, rep.Summary.Trips)
	assert.Equal(t, 1, rep.Summary.Warnings)
}

func TestValidateFeed_MissingStatic(t *testing.T) {
	feed := config.Feed{Name: "x", GTFS: config.GTFSConfig{StaticPath: filepath.Join(t.TempDir(), "none.zip")}}
	_, err := ValidateFeed(context.Background(), testConfig(t), feed, zerolog.Nop())
	assert.Error(t, err)
}
