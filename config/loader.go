package config

import (
	"os"
	"strings"

	"github.com/go-faster/errors"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// Defaults applied by LoadAppConfig when a value is left unset.
const (
	DefaultMaxTripDurationHours = 24
	DefaultMaxStopGapMinutes    = 120
	DefaultOutputFormat         = "json"
	DefaultLogLevel             = "info"
)

// DefaultPaths are searched in order when no explicit path is given.
var DefaultPaths = []string{"config.yml", "./config/config.yml"}

// Config is the global application configuration
var Config AppConfig

// LoadAppConfig loads and validates the application configuration.
// The first readable path wins; with no paths, DefaultPaths are searched.
func LoadAppConfig(paths ...string) error {
	if len(paths) == 0 {
		paths = DefaultPaths
	}
	var data []byte
	var err error
	for _, p := range paths {
		data, err = os.ReadFile(p)
		if err == nil {
			break
		}
	}
	if err != nil {
		return errors.Wrap(err, "read config")
	}
	cfg, err := Parse(data)
	if err != nil {
		return err
	}
	Config = cfg
	return nil
}

// Parse decodes, defaults and validates a YAML document.
func Parse(data []byte) (AppConfig, error) {
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return AppConfig{}, errors.Wrap(err, "decode config")
	}
	cfg.ApplyDefaults()
	if err := validator.New().Struct(cfg); err != nil {
		return AppConfig{}, errors.Wrap(err, "validate config")
	}
	return cfg, nil
}

// ApplyDefaults fills unset values. Explicit zero thresholds are kept.
func (c *AppConfig) ApplyDefaults() {
	if c.Log.Level == "" {
		c.Log.Level = DefaultLogLevel
	}
	if c.Validation.MaxTripDurationHours == nil {
		n := DefaultMaxTripDurationHours
		c.Validation.MaxTripDurationHours = &n
	}
	if c.Validation.MaxStopGapMinutes == nil {
		n := DefaultMaxStopGapMinutes
		c.Validation.MaxStopGapMinutes = &n
	}
	if c.Output.Format == "" {
		c.Output.Format = DefaultOutputFormat
	}
}

// SelectFeed chooses a feed by name; fallback to first; if none, use top-level GTFS/GTFSRT.
func (c *AppConfig) SelectFeed(name string) Feed {
	if name != "" {
		for _, f := range c.Feeds {
			if f.Name == name {
				return f
			}
		}
	}
	if len(c.Feeds) > 0 {
		return c.Feeds[0]
	}
	return Feed{Name: name, GTFS: c.GTFS, GTFSRT: c.GTFSRT}
}

// ErrUnknownFeed is returned by FeedByName when no configured feed has the name.
var ErrUnknownFeed = errors.New("unknown feed")

// FeedByName is SelectFeed for an explicitly requested name: when feeds[] is
// configured, a name matching none of them is an error rather than a
// fallback to the first feed.
func (c *AppConfig) FeedByName(name string) (Feed, error) {
	if name == "" || len(c.Feeds) == 0 {
		return c.SelectFeed(name), nil
	}
	for _, f := range c.Feeds {
		if f.Name == name {
			return f, nil
		}
	}
	names := make([]string, 0, len(c.Feeds))
	for _, f := range c.Feeds {
		names = append(names, f.Name)
	}
	return Feed{}, errors.Wrapf(ErrUnknownFeed, "%q (configured: %s)", name, strings.Join(names, ", "))
}
