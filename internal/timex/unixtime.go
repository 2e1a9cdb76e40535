package timex

import (
	"errors"
	"fmt"
	"math"
	"time"
)

// TicksPerSecond is the number of 100ns ticks in one second.
const TicksPerSecond int64 = 10_000_000

const nanosPerTick = 100

// ErrOutOfRange is returned when a time cannot be represented as an int64
// count of ticks or seconds since the Unix epoch.
var ErrOutOfRange = errors.New("time out of range")

// Epoch is 1970-01-01T00:00:00Z.
var Epoch = time.Unix(0, 0).UTC()

// FromTicks converts a tick count since the epoch to a UTC time.
func FromTicks(ticks int64) time.Time {
	sec := ticks / TicksPerSecond
	rem := ticks % TicksPerSecond
	return time.Unix(sec, rem*nanosPerTick).UTC()
}

// ToTicks converts t to a tick count since the epoch. Sub-tick precision is
// truncated.
func ToTicks(t time.Time) (int64, error) {
	sec := t.Unix()
	frac := int64(t.Nanosecond() / nanosPerTick)
	if sec < 0 && frac > 0 {
		sec++
		frac -= TicksPerSecond
	}

	if sec > math.MaxInt64/TicksPerSecond || sec < math.MinInt64/TicksPerSecond {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, t.Format(time.RFC3339))
	}

	ticks := sec * TicksPerSecond
	if (frac > 0 && ticks > math.MaxInt64-frac) || (frac < 0 && ticks < math.MinInt64-frac) {
		return 0, fmt.Errorf("%w: %s", ErrOutOfRange, t.Format(time.RFC3339))
	}
	return ticks + frac, nil
}

// FromSeconds converts whole seconds since the epoch to a UTC time.
func FromSeconds(sec int64) time.Time {
	return time.Unix(sec, 0).UTC()
}

// ToSeconds converts t to whole seconds since the epoch, truncating the
// fractional part.
func ToSeconds(t time.Time) int64 {
	return t.Unix()
}
