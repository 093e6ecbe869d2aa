package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// ClockTime is a time of day without a date, backed by a Postgres TIME
// column. Work sessions care only about wall-clock start/end; the calendar
// date lives in its own column.
type ClockTime struct {
	Hour   int
	Minute int
	Second int
}

func NewClockTime(hour, minute int) ClockTime {
	return ClockTime{Hour: hour, Minute: minute}
}

// ParseClockTime accepts "15:04" and "15:04:05".
func ParseClockTime(s string) (ClockTime, error) {
	layouts := []string{"15:04:05", "15:04"}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return ClockTime{Hour: t.Hour(), Minute: t.Minute(), Second: t.Second()}, nil
		}
	}
	return ClockTime{}, fmt.Errorf("invalid time of day %q", s)
}

func (c ClockTime) String() string {
	return fmt.Sprintf("%02d:%02d:%02d", c.Hour, c.Minute, c.Second)
}

// SecondsOfDay is the offset from midnight in seconds.
func (c ClockTime) SecondsOfDay() int {
	return c.Hour*3600 + c.Minute*60 + c.Second
}

func (c ClockTime) Before(other ClockTime) bool {
	return c.SecondsOfDay() < other.SecondsOfDay()
}

func (c ClockTime) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *ClockTime) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

func (c ClockTime) Value() (driver.Value, error) {
	return c.String(), nil
}

func (c *ClockTime) Scan(src any) error {
	switch v := src.(type) {
	case time.Time:
		*c = ClockTime{Hour: v.Hour(), Minute: v.Minute(), Second: v.Second()}
		return nil
	case string:
		return c.scanString(v)
	case []byte:
		return c.scanString(string(v))
	case nil:
		*c = ClockTime{}
		return nil
	}
	return fmt.Errorf("cannot scan %T into ClockTime", src)
}

func (c *ClockTime) scanString(s string) error {
	// TIME columns may carry fractional seconds, which we do not keep.
	if i := strings.IndexByte(s, '.'); i >= 0 {
		s = s[:i]
	}
	parsed, err := ParseClockTime(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// NullClockTime handles nullable TIME columns and null JSON values.
type NullClockTime struct {
	ClockTime ClockTime
	Valid     bool
}

func (n NullClockTime) MarshalJSON() ([]byte, error) {
	if !n.Valid {
		return []byte("null"), nil
	}
	return n.ClockTime.MarshalJSON()
}

func (n *NullClockTime) UnmarshalJSON(b []byte) error {
	var s *string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	if s == nil {
		*n = NullClockTime{}
		return nil
	}
	parsed, err := ParseClockTime(*s)
	if err != nil {
		return err
	}
	*n = NullClockTime{ClockTime: parsed, Valid: true}
	return nil
}

func (n NullClockTime) Value() (driver.Value, error) {
	if !n.Valid {
		return nil, nil
	}
	return n.ClockTime.Value()
}

func (n *NullClockTime) Scan(src any) error {
	if src == nil {
		*n = NullClockTime{}
		return nil
	}
	if err := n.ClockTime.Scan(src); err != nil {
		return err
	}
	n.Valid = true
	return nil
}
