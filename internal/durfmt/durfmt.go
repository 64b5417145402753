package durfmt

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// ErrInvalidFormat is returned when a duration string does not match the
// compact `([0-9]+[smhd])+` syntax.
var ErrInvalidFormat = errors.New("invalid duration format")

// unitSeconds maps a unit suffix to its length in seconds.
var unitSeconds = map[byte]int64{
	's': 1,
	'm': 60,
	'h': 3600,
	'd': 86400,
}

var (
	// wholePattern anchors the full input; partial matches are rejected.
	wholePattern = regexp.MustCompile(`^([0-9]+[smhd])+$`)
	// itemPattern extracts the individual value/unit items.
	itemPattern = regexp.MustCompile(`([0-9]+)([smhd])`)
)

// Parse converts a compact duration string such as "1h30m" or "90m" into a
// duration. Units are s, m, h and d; repeated units simply sum.
func Parse(text string) (time.Duration, error) {
	if !wholePattern.MatchString(text) {
		return 0, fmt.Errorf("%q: %w", text, ErrInvalidFormat)
	}

	var total int64

	for _, item := range itemPattern.FindAllStringSubmatch(text, -1) {
		value, err := strconv.ParseInt(item[1], 10, 64)
		if err != nil {
			return 0, fmt.Errorf("%q: %w", text, ErrInvalidFormat)
		}

		total += value * unitSeconds[item[2][0]]
	}

	return time.Duration(total) * time.Second, nil
}

// Format renders a duration in the same compact syntax Parse accepts.
// The input is rounded to the nearest second and decomposed into days,
// hours, minutes and seconds; zero components are omitted, except that a
// zero duration formats as "0s". Negative input clamps to "0s".
func Format(d time.Duration) string {
	total := int64(d.Round(time.Second) / time.Second)
	if total < 0 {
		total = 0
	}

	var (
		seconds = total % 60
		minutes = total / 60 % 60
		hours   = total / 3600 % 24
		days    = total / 86400
	)

	var b strings.Builder

	if days > 0 {
		fmt.Fprintf(&b, "%dd", days)
	}

	if hours > 0 {
		fmt.Fprintf(&b, "%dh", hours)
	}

	if minutes > 0 {
		fmt.Fprintf(&b, "%dm", minutes)
	}

	// Seconds are emitted when present, or alone when everything is zero.
	if seconds > 0 || b.Len() == 0 {
		fmt.Fprintf(&b, "%ds", seconds)
	}

	return b.String()
}
