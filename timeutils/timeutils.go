package timeutils

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/go-faster/errors"
)

const (
	secondsPerHour   = 3600
	secondsPerMinute = 60
	noonInSeconds    = 12 * secondsPerHour
)

// ErrInvalidArgument is matched by every argument error returned from this package.
var ErrInvalidArgument = errors.New("invalid argument")

// ErrNilElapsedDuration is returned when formatting a nil offset.
var ErrNilElapsedDuration error = &argumentError{name: "elapsedDurationSinceNoonInSeconds"}

type argumentError struct {
	name string
}

func (e *argumentError) Error() string { return e.name + " cannot be null" }

func (e *argumentError) Is(target error) bool { return target == ErrInvalidArgument }

var hhmmss = regexp.MustCompile(`^([0-9]+):([0-9]{2}):([0-9]{2})$`)

// ParseSecondsSinceNoon converts an HH:MM:SS string to seconds since noon.
// The boolean is false when the input is empty, blank or malformed.
func ParseSecondsSinceNoon(s string) (int, bool) {
	if strings.TrimSpace(s) == "" {
		return 0, false
	}
	m := hhmmss.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	hour, err := strconv.Atoi(m[1])
	if err != nil || hour > (maxInt-noonInSeconds)/secondsPerHour {
		return 0, false
	}
	// Both fields are two digits, Atoi cannot fail.
	minute, _ := strconv.Atoi(m[2])
	second, _ := strconv.Atoi(m[3])
	if minute >= 60 || second >= 60 {
		return 0, false
	}
	return hour*secondsPerHour + minute*secondsPerMinute + second - noonInSeconds, true
}

// ParseOptional is ParseSecondsSinceNoon for optional fields: nil, empty,
// blank and malformed input all return nil.
func ParseOptional(s *string) *int {
	if s == nil {
		return nil
	}
	n, ok := ParseSecondsSinceNoon(*s)
	if !ok {
		return nil
	}
	return &n
}

// FormatSecondsSinceNoon renders seconds since noon as HH:MM:SS.
// Hours are zero-padded to two digits and never truncated, so offsets past
// midnight render as "24:00:00", "28:47:20" and so on.
func FormatSecondsSinceNoon(n int) string {
	// total is kept unsigned so that offsets near the int limits cannot wrap.
	var total uint64
	sign := ""
	switch {
	case n >= 0:
		total = uint64(n) + noonInSeconds
	case n >= -noonInSeconds:
		total = uint64(n + noonInSeconds)
	default:
		sign = "-"
		total = uint64(-(n + noonInSeconds))
	}
	hour := total / secondsPerHour
	minute := (total % secondsPerHour) / secondsPerMinute
	second := total % secondsPerMinute
	return fmt.Sprintf("%s%02d:%02d:%02d", sign, hour, minute, second)
}

// FormatOptional formats a possibly nil offset. A nil offset returns
// ErrNilElapsedDuration.
func FormatOptional(n *int) (string, error) {
	if n == nil {
		return "", ErrNilElapsedDuration
	}
	return FormatSecondsSinceNoon(*n), nil
}

const maxInt = int(^uint(0) >> 1)
