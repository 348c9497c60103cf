// Package timeutils converts GTFS time-of-day strings to and from signed
// offsets in seconds relative to noon of the service day.
//
// GTFS times use HH:MM:SS where HH may exceed 23 for trips running past
// midnight, e.g. "25:30:00" is 01:30 the next calendar day but still belongs
// to the same service day. Measuring from noon keeps those values ordered and
// makes arithmetic between stop times trivial.
//
// Parsing is tolerant: empty, blank or malformed input yields no value.
// Formatting is strict: a nil offset is a programming error.
//
//	off, ok := timeutils.ParseSecondsSinceNoon("15:00:00") // 10800, true
//	s := timeutils.FormatSecondsSinceNoon(off)               // "15:00:00"
package timeutils
