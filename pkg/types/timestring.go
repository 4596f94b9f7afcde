package types

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"time"
)

const (
	// MinutesPerDay minutes in a day
	MinutesPerDay = 24 * 60

	timeLayout = "15:04"
)

var (
	// ErrInvalidTimeString is returned for values that are not "HH:mm"
	ErrInvalidTimeString = errors.New("invalid time string format")

	timeStringPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)$`)
)

// TimeString wall-clock time of day in zero-padded "HH:mm" form.
// Zero padding makes lexicographic order equal chronological order.
type TimeString string

// NewTimeString builds a TimeString from the clock of t.
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString parses and validates "HH:mm".
func NewTimeStringFromString(s string) (TimeString, error) {
	ts := TimeString(s)
	if err := ts.Validate(); err != nil {
		return "", err
	}
	return ts, nil
}

// FromMinutes converts minutes since midnight to "HH:mm", wrapping modulo 24h.
func FromMinutes(total int) TimeString {
	total %= MinutesPerDay
	if total < 0 {
		total += MinutesPerDay
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60))
}

// Validate checks the "HH:mm" format with 00..23 hours and 00..59 minutes.
func (t TimeString) Validate() error {
	if !timeStringPattern.MatchString(string(t)) {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes returns minutes since midnight. Malformed input is not rejected,
// callers validate first.
func (t TimeString) Minutes() int {
	s := string(t)
	if len(s) < 5 {
		return 0
	}
	h, _ := strconv.Atoi(s[0:2])
	m, _ := strconv.Atoi(s[3:5])
	return h*60 + m
}

// AddMinutes returns t shifted by d minutes; the result wraps past midnight.
func (t TimeString) AddMinutes(d int) TimeString {
	return FromMinutes(t.Minutes() + d)
}

// IsBefore compares lexicographically
func (t TimeString) IsBefore(other TimeString) bool {
	return string(t) < string(other)
}

// IsAfter compares lexicographically
func (t TimeString) IsAfter(other TimeString) bool {
	return string(t) > string(other)
}

// OnDate returns the instant of t on the calendar day of date, in date's location.
func (t TimeString) OnDate(date time.Time) time.Time {
	y, mo, d := date.Date()
	m := t.Minutes()
	return time.Date(y, mo, d, m/60, m%60, 0, 0, date.Location())
}

func (t TimeString) String() string {
	return string(t)
}

// Value implements driver.Valuer. Postgres TIME columns accept "HH:mm".
func (t TimeString) Value() (driver.Value, error) {
	if t == "" {
		return nil, nil
	}
	return string(t), nil
}

// Scan implements sql.Scanner for TIME columns ("HH:mm:ss" or time.Time).
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: unsupported scan type %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	if len(s) < 5 {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
	}
	ts, err := NewTimeStringFromString(s[:5])
	if err != nil {
		return err
	}
	*t = ts
	return nil
}

// UnmarshalJSON validates the value on decode.
func (t *TimeString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	ts, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = ts
	return nil
}
