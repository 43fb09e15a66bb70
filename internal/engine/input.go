package engine

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/pillar"
)

// Input is the raw birth profile as received from a user or a file.
type Input struct {
	BirthDate    string `json:"birthDate" yaml:"birthDate"` // YYYY-MM-DD
	BirthTime    string `json:"birthTime" yaml:"birthTime"` // HH:MM, 24h
	TimeUnknown  bool   `json:"isTimeUnknown" yaml:"isTimeUnknown"`
	Gender       string `json:"gender" yaml:"gender"`             // 남/여, male/female, m/f
	CalendarType string `json:"calendarType" yaml:"calendarType"` // label only, no lunar conversion
	Name         string `json:"name,omitempty" yaml:"name,omitempty"`
}

// Birth is a validated Input. Only the civil fields of At are meaningful.
type Birth struct {
	At           time.Time
	TimeKnown    bool
	Gender       pillar.Gender
	CalendarType string
	Name         string
}

// ParseInput validates the raw input. This is the only place birth data is checked;
// the calculation packages assume well-formed values.
func ParseInput(in Input) (Birth, error) {
	date, err := time.Parse(config.DateFormatFullDash, strings.TrimSpace(in.BirthDate))
	if err != nil {
		return Birth{}, fmt.Errorf("%s: %w", config.ErrDateParse, err)
	}
	if date.Year() < config.MinBirthYear || date.Year() > config.MaxBirthYear {
		return Birth{}, fmt.Errorf("%s: %d", config.ErrDateRange, date.Year())
	}

	hour, minute := 0, 0
	timeKnown := !in.TimeUnknown
	if raw := strings.TrimSpace(in.BirthTime); raw != "" || timeKnown {
		clock, err := time.Parse(config.TimeFormatHM, raw)
		switch {
		case err == nil:
			hour, minute = clock.Hour(), clock.Minute()
		case timeKnown:
			return Birth{}, fmt.Errorf("%s: %w", config.ErrTimeParse, err)
		}
	}

	gender, err := ParseGender(in.Gender)
	if err != nil {
		return Birth{}, err
	}

	calendar, err := ParseCalendarType(in.CalendarType)
	if err != nil {
		return Birth{}, err
	}

	return Birth{
		At:           time.Date(date.Year(), date.Month(), date.Day(), hour, minute, 0, 0, time.UTC),
		TimeKnown:    timeKnown,
		Gender:       gender,
		CalendarType: calendar,
		Name:         strings.TrimSpace(in.Name),
	}, nil
}

// ParseGender accepts the Korean labels and their common English spellings.
func ParseGender(label string) (pillar.Gender, error) {
	l := strings.ToLower(strings.TrimSpace(label))
	switch {
	case slices.Contains(config.GenderMaleLabels, l):
		return pillar.Male, nil
	case slices.Contains(config.GenderFemaleLabels, l):
		return pillar.Female, nil
	}
	return pillar.Male, fmt.Errorf("%s: %q", config.ErrGender, label)
}

// ParseCalendarType normalizes the calendar label. Empty means solar.
// Lunar dates are not converted.
func ParseCalendarType(label string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(label)) {
	case "", config.CalendarSolar, "양력":
		return config.CalendarSolar, nil
	case config.CalendarLunar, "음력":
		return config.CalendarLunar, nil
	}
	return "", fmt.Errorf("%s: %q", config.ErrCalendarType, label)
}

// Input converts the validated birth back to its canonical raw form.
func (b Birth) Input() Input {
	in := Input{
		BirthDate:    b.At.Format(config.DateFormatFullDash),
		TimeUnknown:  !b.TimeKnown,
		Gender:       b.Gender.String(),
		CalendarType: b.CalendarType,
		Name:         b.Name,
	}
	if b.TimeKnown {
		in.BirthTime = b.At.Format(config.TimeFormatHM)
	}
	return in
}
