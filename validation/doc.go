// Package validation runs schedule rules over a GTFS index and collects the
// data-quality problems it finds as notices.
//
// Malformed values never stop a run. A stop time whose arrival_time cannot be
// parsed produces an invalid_time notice, and the remaining rules skip the
// unusable value.
package validation
