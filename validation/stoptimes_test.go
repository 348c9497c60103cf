package validation

import (
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/gtfs"
	"github.com/theoremus-urban-solutions/gtfs-schedule-validator/internal/gtfstest"
)

const stopTimesHeader = "trip_id,arrival_time,departure_time,stop_id,stop_sequence\n"

func loadIndex(t *testing.T, feed gtfstest.Feed) *gtfs.Index {
	t.Helper()
	idx, err := gtfs.NewIndexFromBytes(feed.Zip(t), zerolog.Nop())
	require.NoError(t, err)
	return idx
}

func runSchedule(t *testing.T, stopTimes string) []Notice {
	t.Helper()
	idx := loadIndex(t, gtfstest.Basic().With("stop_times.txt", stopTimesHeader+stopTimes))
	v := &ScheduleValidator{MaxTripDuration: 6 * time.Hour, MaxStopGap: time.Hour, Log: zerolog.Nop()}
	c := NewNoticeContainer()
	v.Validate(idx, c)
	return c.Notices()
}

func codes(notices []Notice) []string {
	out := make([]string, 0, len(notices))
	for _, n := range notices {
		out = append(out, n.Code)
	}
	return out
}

func TestScheduleValidator_CleanFeed(t *testing.T) {
	idx := loadIndex(t, gtfstest.Basic())
	c := NewNoticeContainer()
	(&ScheduleValidator{MaxTripDuration: 6 * time.Hour, MaxStopGap: 2 * time.Hour}).Validate(idx, c)
	assert.Empty(t, c.Notices())
	assert.False(t, c.HasErrors())
}

func TestScheduleValidator_InvalidTime(t *testing.T) {
	notices := runSchedule(t,
		"T1,08:00:00,08:00:00,S1,1\n"+
			"T1,08:5:00,xxee,S2,2\n"+
			"T1,08:15:00,08:15:00,S3,3\n")

	require.Len(t, notices, 2)
	assert.Equal(t, CodeInvalidTime, notices[0].Code)
	assert.Equal(t, 3, notices[0].Row)
	assert.Equal(t, "T1", notices[0].TripID)
	assert.ElementsMatch(t, []string{"arrival_time", "departure_time"}, []string{notices[0].Field, notices[1].Field})
	assert.ElementsMatch(t, []string{"08:5:00", "xxee"}, []string{notices[0].Value, notices[1].Value})
}

func TestScheduleValidator_MissingTripEdgeTime(t *testing.T) {
	notices := runSchedule(t,
		"T1,,08:00:00,S1,1\n"+
			"T1,,,S2,2\n"+
			"T1,08:15:00,,S3,3\n")

	assert.Equal(t, []string{CodeMissingTripEdgeTime, CodeMissingTripEdgeTime}, codes(notices))
	assert.Equal(t, "arrival_time", notices[0].Field)
	assert.Equal(t, 2, notices[0].Row)
	assert.Equal(t, "departure_time", notices[1].Field)
	assert.Equal(t, 4, notices[1].Row)
}

func TestScheduleValidator_ArrivalAfterDeparture(t *testing.T) {
	notices := runSchedule(t,
		"T1,08:00:00,08:00:00,S1,1\n"+
			"T1,08:07:00,08:06:00,S2,2\n"+
			"T1,08:15:00,08:15:00,S3,3\n")

	require.Equal(t, []string{CodeArrivalAfterDeparture}, codes(notices))
	assert.Equal(t, "arrival_time 08:07:00 is after departure_time 08:06:00", notices[0].Message)
}

func TestScheduleValidator_DecreasingStopTime(t *testing.T) {
	notices := runSchedule(t,
		"T1,08:00:00,08:00:00,S1,1\n"+
			"T1,07:59:00,07:59:00,S2,2\n"+
			"T1,08:15:00,08:15:00,S3,3\n")

	require.Equal(t, []string{CodeDecreasingStopTime}, codes(notices))
	assert.Equal(t, SeverityError, notices[0].Severity)
	assert.Equal(t, "07:59:00", notices[0].Value)
	assert.Equal(t, "stop Lions Bridge (S2) at 07:59:00 is earlier than stop Central Station (S1) at 08:00:00", notices[0].Message)
}

func TestScheduleValidator_UnnamedStop(t *testing.T) {
	notices := runSchedule(t,
		"T1,08:00:00,08:00:00,S1,1\n"+
			"T1,07:59:00,07:59:00,S404,2\n")

	require.Equal(t, []string{CodeDecreasingStopTime}, codes(notices))
	assert.Equal(t, "stop S404 at 07:59:00 is earlier than stop Central Station (S1) at 08:00:00", notices[0].Message)
}

func TestScheduleValidator_PastMidnightIsNotDecreasing(t *testing.T) {
	notices := runSchedule(t,
		"T2,23:50:00,23:50:00,S1,1\n"+
			"T2,24:05:00,24:05:00,S2,2\n"+
			"T2,25:00:00,25:00:00,S3,3\n")
	assert.Empty(t, notices)
}

func TestScheduleValidator_SkipsUntimedStops(t *testing.T) {
	notices := runSchedule(t,
		"T1,08:00:00,08:00:00,S1,1\n"+
			"T1,,,S2,2\n"+
			"T1,08:15:00,08:15:00,S3,3\n")
	assert.Empty(t, notices)
}

func TestScheduleValidator_LargeStopGapAndTripTooLong(t *testing.T) {
	notices := runSchedule(t,
		"T1,06:00:00,06:00:00,S1,1\n"+
			"T1,06:30:00,06:30:00,S2,2\n"+
			"T1,13:00:00,13:00:00,S3,3\n")

	require.ElementsMatch(t, []string{CodeLargeStopGap, CodeTripTooLong}, codes(notices))
	for _, n := range notices {
		switch n.Code {
		case CodeLargeStopGap:
			assert.Equal(t, SeverityInfo, n.Severity)
			assert.Equal(t, "6h30m0s between stop Lions Bridge (S2) at 06:30:00 and stop Serdika (S3) at 13:00:00", n.Message)
		case CodeTripTooLong:
			assert.Equal(t, SeverityWarning, n.Severity)
			assert.Equal(t, "trip T1 (94 to Serdika) runs from 06:00:00 to 13:00:00, longer than 6h0m0s", n.Message)
		}
	}
}

func TestScheduleValidator_ThresholdsDisabled(t *testing.T) {
	idx := loadIndex(t, gtfstest.Basic().With("stop_times.txt", stopTimesHeader+
		"T1,00:00:00,00:00:00,S1,1\n"+
		"T1,40:00:00,40:00:00,S2,2\n"))
	c := NewNoticeContainer()
	(&ScheduleValidator{}).Validate(idx, c)
	assert.Empty(t, c.Notices())
}

func TestScheduleValidator_MissingRequiredFile(t *testing.T) {
	idx := loadIndex(t, gtfstest.Basic().Without("trips.txt"))
	c := NewNoticeContainer()
	(&ScheduleValidator{}).Validate(idx, c)

	require.Equal(t, []string{CodeMissingRequiredFile}, codes(c.Notices()))
	assert.Equal(t, "trips.txt", c.Notices()[0].File)
	assert.True(t, c.HasErrors())
}

func TestNoticeContainer_Counts(t *testing.T) {
	c := NewNoticeContainer()
	c.Add(Notice{Code: CodeInvalidTime, Severity: SeverityError, File: "stop_times.txt", Row: 9})
	c.Add(Notice{Code: CodeLargeStopGap, Severity: SeverityInfo, File: "stop_times.txt", Row: 3})
	c.Add(Notice{Code: CodeInvalidTime, Severity: SeverityError, File: "stop_times.txt", Row: 4})

	assert.Equal(t, 3, c.Len())
	assert.Equal(t, map[Severity]int{SeverityError: 2, SeverityInfo: 1}, c.CountBySeverity())
	assert.Equal(t, map[string]int{CodeInvalidTime: 2, CodeLargeStopGap: 1}, c.CountByCode())

	rows := []int{}
	for _, n := range c.Notices() {
		rows = append(rows, n.Row)
	}
	assert.Equal(t, []int{3, 4, 9}, rows)
}
