// Package schedule implements the post-now / post-later choice and its timing rules
package schedule

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// Option is the user's choice between immediate and scheduled posting
type Option string

const (
	Now   Option = "now"
	Later Option = "later"
)

// LocalLayout is the minute-precision layout schedule times are exchanged in
const LocalLayout = "2006-01-02T15:04"

// DefaultMinLead is how far in the future a scheduled post must be
const DefaultMinLead = 20 * time.Minute

var (
	// ErrMissingTime is returned when Later is chosen without a time
	ErrMissingTime = errors.New("no schedule time given")
	// ErrTooSoon is returned when the chosen time is before the minimum
	ErrTooSoon = errors.New("schedule time is too soon")
)

// ParseOption parses "now" or "later"; the empty string means Now
func ParseOption(s string) (Option, error) {
	switch Option(strings.ToLower(strings.TrimSpace(s))) {
	case "", Now:
		return Now, nil
	case Later:
		return Later, nil
	default:
		return Now, fmt.Errorf("invalid schedule option %q: must be now or later", s)
	}
}

// MinimumTime returns the earliest selectable time: now + lead, rounded up to the whole minute
// so the minute-precision value is never earlier than the lead.
func MinimumTime(now time.Time, lead time.Duration) time.Time {
	t := now.Add(lead)
	if tr := t.Truncate(time.Minute); tr.Before(t) {
		return tr.Add(time.Minute)
	}
	return t
}

// Parse reads a schedule time in LocalLayout (interpreted in loc) or RFC 3339
func Parse(s string, loc *time.Location) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrMissingTime
	}
	if loc == nil {
		loc = time.UTC
	}
	if t, err := time.ParseInLocation(LocalLayout, s, loc); err == nil {
		return t, nil
	}
	if t, err := time.ParseInLocation("2006-01-02 15:04", s, loc); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid schedule time %q: use YYYY-MM-DDTHH:MM", s)
	}
	return t, nil
}

// Format renders t in loc using LocalLayout
func Format(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.UTC
	}
	return t.In(loc).Format(LocalLayout)
}

// Check returns ErrTooSoon when t is before earliest
func Check(t, earliest time.Time) error {
	if t.Before(earliest) {
		return fmt.Errorf("%w: earliest allowed is %s", ErrTooSoon, earliest.Format(LocalLayout))
	}
	return nil
}
