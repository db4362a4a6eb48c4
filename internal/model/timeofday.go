package model

import (
	"database/sql/driver"
	"fmt"
	"time"
)

// TimeOfDay is a clock time stored as the offset from midnight.
type TimeOfDay time.Duration

func NewTimeOfDay(hour, minute int) TimeOfDay {
	return TimeOfDay(time.Duration(hour)*time.Hour + time.Duration(minute)*time.Minute)
}

func (t TimeOfDay) Duration() time.Duration {
	return time.Duration(t)
}

func (t TimeOfDay) String() string {
	d := time.Duration(t)
	h := int(d / time.Hour)
	m := int((d % time.Hour) / time.Minute)
	return fmt.Sprintf("%02d:%02d", h, m)
}

// Value stores the time as "HH:MM:SS" for a Postgres time column.
func (t TimeOfDay) Value() (driver.Value, error) {
	d := time.Duration(t)
	return fmt.Sprintf("%02d:%02d:%02d", int(d/time.Hour), int((d%time.Hour)/time.Minute), int((d%time.Minute)/time.Second)), nil
}

func (t *TimeOfDay) Scan(src interface{}) error {
	var s string
	switch v := src.(type) {
	case nil:
		*t = 0
		return nil
	case string:
		s = v
	case []byte:
		s = string(v)
	case time.Time:
		*t = TimeOfDay(time.Duration(v.Hour())*time.Hour + time.Duration(v.Minute())*time.Minute + time.Duration(v.Second())*time.Second)
		return nil
	default:
		return fmt.Errorf("cannot scan %T into TimeOfDay", src)
	}

	for _, layout := range []string{"15:04:05", "15:04"} {
		if parsed, err := time.Parse(layout, s); err == nil {
			*t = TimeOfDay(time.Duration(parsed.Hour())*time.Hour + time.Duration(parsed.Minute())*time.Minute + time.Duration(parsed.Second())*time.Second)
			return nil
		}
	}
	return fmt.Errorf("invalid time of day %q", s)
}
