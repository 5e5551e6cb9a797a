package attendance

import (
	"fmt"
	"time"

	"go-attendance/internal/config"
)

// Policy decides clock-in status. Clock times are stored as wall-clock
// time in Location.
type Policy struct {
	Location  *time.Location
	LateAfter time.Duration // offset from local midnight
	Now       func() time.Time
}

func DefaultPolicy() Policy {
	return Policy{Location: time.UTC, LateAfter: 9*time.Hour + 15*time.Minute}
}

func NewPolicy(cfg config.AttendanceConfig) (Policy, error) {
	loc, err := time.LoadLocation(cfg.Timezone)
	if err != nil {
		return Policy{}, fmt.Errorf("attendance timezone: %w", err)
	}
	cutoff, err := time.Parse("15:04", cfg.LateAfter)
	if err != nil {
		return Policy{}, fmt.Errorf("attendance late_after: %w", err)
	}
	return Policy{
		Location:  loc,
		LateAfter: time.Duration(cutoff.Hour())*time.Hour + time.Duration(cutoff.Minute())*time.Minute,
	}, nil
}

// WallClock returns the current local time re-labelled as UTC, truncated to
// the second, matching the zone-less storage format.
func (p Policy) WallClock() time.Time {
	now := time.Now
	if p.Now != nil {
		now = p.Now
	}
	loc := p.Location
	if loc == nil {
		loc = time.UTC
	}
	l := now().In(loc)
	return time.Date(l.Year(), l.Month(), l.Day(), l.Hour(), l.Minute(), l.Second(), 0, time.UTC)
}

// ClockInStatus is Late when the clock-in minute is after the cutoff.
func (p Policy) ClockInStatus(wall time.Time) string {
	minuteOfDay := time.Duration(wall.Hour())*time.Hour + time.Duration(wall.Minute())*time.Minute
	if minuteOfDay > p.LateAfter {
		return StatusLate
	}
	return StatusNormal
}
