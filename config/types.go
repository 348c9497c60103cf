package config

import "time"

// LogConfig contains logger configuration
type LogConfig struct {
	Level  string `yaml:"level" validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Pretty bool   `yaml:"pretty"`
}

// GTFSConfig contains GTFS static feed configuration
type GTFSConfig struct {
	StaticURL  string `yaml:"staticURL" validate:"omitempty,url"`
	StaticPath string `yaml:"staticPath" validate:"omitempty"`
	CachePath  string `yaml:"cachePath" validate:"omitempty"`
}

// GTFSRTConfig contains GTFS-Realtime feed configuration
type GTFSRTConfig struct {
	TripUpdatesURL  string `yaml:"tripUpdatesURL" validate:"omitempty,url"`
	TripUpdatesPath string `yaml:"tripUpdatesPath" validate:"omitempty"`
	TimeoutMS       int    `yaml:"timeoutMS" validate:"gte=0"`
}

// ValidationConfig contains rule thresholds. An unset threshold takes its
// default; an explicit 0 disables the rule.
type ValidationConfig struct {
	MaxTripDurationHours *int `yaml:"maxTripDurationHours" validate:"omitempty,gte=0"`
	MaxStopGapMinutes    *int `yaml:"maxStopGapMinutes" validate:"omitempty,gte=0"`
}

// MaxTripDuration is the trip_too_long threshold, zero when disabled.
func (v ValidationConfig) MaxTripDuration() time.Duration {
	if v.MaxTripDurationHours == nil {
		return DefaultMaxTripDurationHours * time.Hour
	}
	return time.Duration(*v.MaxTripDurationHours) * time.Hour
}

// MaxStopGap is the large_stop_gap threshold, zero when disabled.
func (v ValidationConfig) MaxStopGap() time.Duration {
	if v.MaxStopGapMinutes == nil {
		return DefaultMaxStopGapMinutes * time.Minute
	}
	return time.Duration(*v.MaxStopGapMinutes) * time.Minute
}

// StoreConfig contains the report store location
type StoreConfig struct {
	Path string `yaml:"path"`
}

// OutputConfig contains report rendering options
type OutputConfig struct {
	Format string `yaml:"format" validate:"omitempty,oneof=json xml"`
}

// Feed represents a single GTFS feed configuration
type Feed struct {
	Name   string       `yaml:"name" validate:"required"`
	GTFS   GTFSConfig   `yaml:"gtfs" validate:"required"`
	GTFSRT GTFSRTConfig `yaml:"gtfsrt"`
}

// AppConfig is the root configuration structure
type AppConfig struct {
	Log        LogConfig        `yaml:"log"`
	GTFS       GTFSConfig       `yaml:"gtfs"`
	GTFSRT     GTFSRTConfig     `yaml:"gtfsrt"`
	Validation ValidationConfig `yaml:"validation"`
	Store      StoreConfig      `yaml:"store"`
	Output     OutputConfig     `yaml:"output"`
	Feeds      []Feed           `yaml:"feeds" validate:"dive"`
}
