package config

import (
	"fmt"
	"time"

	"github.com/spf13/cast"
)

// Date is a calendar day in UTC. It decodes from a TOML local date
// (series_start = 2021-01-01) or from a string.
type Date struct{ time.Time }

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Date) UnmarshalTOML(v any) error {
	var t time.Time
	switch v := v.(type) {
	case time.Time:
		t = v
	case string:
		parsed, err := cast.ToTimeInDefaultLocationE(v, time.UTC)
		if err != nil {
			return err
		}
		t = parsed
	default:
		return fmt.Errorf("expected a date, got %T", v)
	}
	// Keep the written calendar day regardless of the decoded zone.
	d.Time = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	return nil
}

// Duration decodes from strings such as "168h" or "10s".
type Duration struct{ time.Duration }

// UnmarshalTOML implements toml.Unmarshaler.
func (d *Duration) UnmarshalTOML(v any) error {
	s, ok := v.(string)
	if !ok {
		return fmt.Errorf("expected a duration string, got %T", v)
	}
	parsed, err := cast.ToDurationE(s)
	if err != nil {
		return err
	}
	d.Duration = parsed
	return nil
}
