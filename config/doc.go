// Package config loads the validator's YAML configuration.
//
// A config file lists one or more feeds (a GTFS zip path or URL plus an
// optional GTFS-RT TripUpdates source), the rule thresholds, the report
// format and the SQLite store path. Values are checked with validator/v10
// struct tags after defaults are applied.
package config
