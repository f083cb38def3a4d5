package content

import (
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

const yearMonthLayout = "2006-01"

// YearMonth is a month-precision date used by the data tables. The zero
// value means "not set", which for an end date reads as "Present".
type YearMonth struct {
	t time.Time
}

// NewYearMonth returns the YearMonth for year and month.
func NewYearMonth(year int, month time.Month) YearMonth {
	return YearMonth{t: time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)}
}

// ParseYearMonth parses "2006-01". An empty string yields the zero value.
func ParseYearMonth(value string) (YearMonth, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return YearMonth{}, nil
	}
	t, err := time.Parse(yearMonthLayout, value)
	if err != nil {
		return YearMonth{}, fmt.Errorf("invalid month %q: want YYYY-MM", value)
	}
	return YearMonth{t: t}, nil
}

// UnmarshalYAML implements yaml.Unmarshaler.
func (m *YearMonth) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: month must be a scalar", value.Line)
	}
	parsed, err := ParseYearMonth(value.Value)
	if err != nil {
		return fmt.Errorf("line %d: %w", value.Line, err)
	}
	*m = parsed
	return nil
}

// IsZero reports whether the month is unset.
func (m YearMonth) IsZero() bool {
	return m.t.IsZero()
}

// Before reports whether m is earlier than other.
func (m YearMonth) Before(other YearMonth) bool {
	return m.t.Before(other.t)
}

// Equal reports whether both values name the same month.
func (m YearMonth) Equal(other YearMonth) bool {
	return m.t.Equal(other.t)
}

// Time returns the first instant of the month in UTC.
func (m YearMonth) Time() time.Time {
	return m.t
}

// String renders the month as "Jan 2006".
func (m YearMonth) String() string {
	if m.IsZero() {
		return ""
	}
	return m.t.Format("Jan 2006")
}

// Period renders a start/end range, with an unset end shown as "Present".
func Period(start, end YearMonth) string {
	if end.IsZero() {
		return start.String() + " – Present"
	}
	return start.String() + " – " + end.String()
}
