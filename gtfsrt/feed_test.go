package gtfsrt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	gtfsrtpb "github.com/MobilityData/gtfs-realtime-bindings/golang/gtfs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/proto"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/config"
)

func testFeed(t *testing.T) []byte {
	t.Helper()
	added := gtfsrtpb.TripDescriptor_ADDED
	fm := &gtfsrtpb.FeedMessage{
		Header: &gtfsrtpb.FeedHeader{
			GtfsRealtimeVersion: proto.String("2.0"),
			Timestamp:           proto.Uint64(1696320000),
		},
		Entity: []*gtfsrtpb.FeedEntity{
			{
				Id: proto.String("e1"),
				TripUpdate: &gtfsrtpb.TripUpdate{
					Trip: &gtfsrtpb.TripDescriptor{
						TripId:    proto.String("T1"),
						RouteId:   proto.String("R1"),
						StartTime: proto.String("08:00:00"),
						StartDate: proto.String("20231003"),
					},
				},
			},
			{
				Id: proto.String("e2"),
				TripUpdate: &gtfsrtpb.TripUpdate{
					Trip: &gtfsrtpb.TripDescriptor{
						TripId:               proto.String("X1"),
						ScheduleRelationship: &added,
					},
				},
			},
			{
				Id:      proto.String("e3"),
				Vehicle: &gtfsrtpb.VehiclePosition{},
			},
		},
	}
	data, err := proto.Marshal(fm)
	require.NoError(t, err)
	return data
}

func TestParseTripUpdates(t *testing.T) {
	tu, err := ParseTripUpdates(testFeed(t))
	require.NoError(t, err)

	assert.Equal(t, uint64(1696320000), tu.HeaderTimestamp)
	require.Len(t, tu.Trips, 2)

	first := tu.Trips[0]
	assert.Equal(t, "e1", first.EntityID)
	assert.Equal(t, "T1", first.TripID)
	assert.Equal(t, "08:00:00", first.StartTime)
	assert.True(t, first.HasStartTime)
	assert.True(t, first.IsScheduled())

	second := tu.Trips[1]
	assert.False(t, second.HasStartTime)
	assert.False(t, second.IsScheduled())
}

func TestParseTripUpdates_Garbage(t *testing.T) {
	_, err := ParseTripUpdates([]byte{0xff, 0xff, 0xff})
	assert.Error(t, err)
}

func TestLoadTripUpdates(t *testing.T) {
	data := testFeed(t)

	t.Run("path", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "trip-updates.pb")
		require.NoError(t, os.WriteFile(path, data, 0o644))
		tu, err := LoadTripUpdates(context.Background(), config.GTFSRTConfig{TripUpdatesPath: path})
		require.NoError(t, err)
		assert.Len(t, tu.Trips, 2)
	})

	t.Run("url", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write(data)
		}))
		defer srv.Close()
		tu, err := LoadTripUpdates(context.Background(), config.GTFSRTConfig{TripUpdatesURL: srv.URL, TimeoutMS: 2000})
		require.NoError(t, err)
		assert.Len(t, tu.Trips, 2)
	})

	t.Run("http error", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusServiceUnavailable)
		}))
		defer srv.Close()
		_, err := LoadTripUpdates(context.Background(), config.GTFSRTConfig{TripUpdatesURL: srv.URL})
		assert.Error(t, err)
	})

	t.Run("not configured", func(t *testing.T) {
		tu, err := LoadTripUpdates(context.Background(), config.GTFSRTConfig{})
		require.NoError(t, err)
		assert.Nil(t, tu)
	})
}
