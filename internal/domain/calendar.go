package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// YearMonth is a calendar month used for period matching
type YearMonth struct {
	Year  int `yaml:"year" json:"year"`
	Month int `yaml:"month" json:"month"`
}

// Index returns a monotonically increasing month number for comparisons
func (ym YearMonth) Index() int {
	return ym.Year*12 + ym.Month - 1
}

// String renders the month as "Apr 2025"
func (ym YearMonth) String() string {
	if ym.Month < 1 || ym.Month > 12 {
		return fmt.Sprintf("%02d/%d", ym.Month, ym.Year)
	}
	return fmt.Sprintf("%s %d", time.Month(ym.Month).String()[:3], ym.Year)
}

// FiscalYear runs from April of StartYear through March of the following year
type FiscalYear struct {
	Label     string `yaml:"label" json:"label" validate:"required"`
	StartYear int    `yaml:"start_year" json:"start_year" validate:"gte=2000,lte=2100"`
}

// Months returns the twelve months of the fiscal year in order, April first
func (fy FiscalYear) Months() []YearMonth {
	months := make([]YearMonth, 0, 12)
	for i := 0; i < 12; i++ {
		m := 4 + i
		y := fy.StartYear
		if m > 12 {
			m -= 12
			y++
		}
		months = append(months, YearMonth{Year: y, Month: m})
	}
	return months
}

// First returns April of the start year
func (fy FiscalYear) First() YearMonth { return YearMonth{Year: fy.StartYear, Month: 4} }

// Last returns March of the following year
func (fy FiscalYear) Last() YearMonth { return YearMonth{Year: fy.StartYear + 1, Month: 3} }

// FiscalYearLabel returns the fiscal year key ("2024-25") a date falls in
func FiscalYearLabel(t time.Time) string {
	start := t.Year()
	if t.Month() < time.April {
		start--
	}
	return fmt.Sprintf("%d-%02d", start, (start+1)%100)
}

// MonthsBetween counts whole calendar months from a to b
func MonthsBetween(a, b time.Time) int {
	months := (b.Year()-a.Year())*12 + int(b.Month()) - int(a.Month())
	if b.Day() < a.Day() {
		months--
	}
	return months
}

const dateLayout = "2006-01-02"

// Date is a calendar date serialised as YYYY-MM-DD. Empty input decodes as the zero date.
type Date struct {
	time.Time
}

// NewDate builds a Date at midnight UTC
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a YYYY-MM-DD string
func ParseDate(s string) (Date, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Date{}, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (expected YYYY-MM-DD): %w", s, err)
	}
	return Date{t}, nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (d *Date) UnmarshalText(text []byte) error {
	parsed, err := ParseDate(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// MarshalText implements encoding.TextMarshaler
func (d Date) MarshalText() ([]byte, error) {
	if d.IsZero() {
		return []byte{}, nil
	}
	return []byte(d.Format(dateLayout)), nil
}

// UnmarshalJSON implements json.Unmarshaler
func (d *Date) UnmarshalJSON(data []byte) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		*d = Date{}
		return nil
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return fmt.Errorf("date must be a string: %w", err)
	}
	return d.UnmarshalText([]byte(s))
}

// MarshalJSON implements json.Marshaler
func (d Date) MarshalJSON() ([]byte, error) {
	text, _ := d.MarshalText()
	return json.Marshal(string(text))
}

// String renders the date as YYYY-MM-DD
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Format(dateLayout)
}
