// Package pillar turns a civil birth date and time into the four pillars and the
// cycles derived from them (daeun, saeun, solar term).
//
// All functions are pure. Inputs are assumed to be valid calendar values; validation
// belongs to the caller (see engine.ParseInput). Only the civil fields of time.Time
// (year, month, day, hour, minute) are read, the location is ignored.
package pillar

import (
	"time"

	"github.com/tartampluch/go-saju/internal/cycle"
)

const (
	// anchorYear is a 갑자 year (stem 0, branch 0).
	anchorYear = 1984

	// dayBranchOffset aligns the day branch count on the epoch.
	dayBranchOffset = 4

	secondsPerDay = 24 * 60 * 60

	DaeunStartAge = 10
	DaeunStep     = 10
	DaeunCount    = 8
)

// dayEpoch is the reference date for the day pillar count.
var dayEpoch = time.Date(1900, time.January, 1, 0, 0, 0, 0, time.UTC)

// monthStartOffset is the stem of the first solar month (인월) for each year stem,
// following the five-tiger rule: 갑/기 -> 병, 을/경 -> 무, 병/신 -> 경, 정/임 -> 임, 무/계 -> 갑.
var monthStartOffset = [cycle.StemCount]int{2, 4, 6, 8, 0, 2, 4, 6, 8, 0}

// Gender selects the daeun direction.
type Gender int

const (
	Male Gender = iota
	Female
)

func (g Gender) String() string {
	if g == Female {
		return "여"
	}
	return "남"
}

// Key returns the identifier used in message catalogs.
func (g Gender) Key() string {
	if g == Female {
		return "female"
	}
	return "male"
}

// MarshalText renders the gender label.
func (g Gender) MarshalText() ([]byte, error) {
	return []byte(g.String()), nil
}

// FourPillars is the chart core. Time is nil when the birth time is unknown.
type FourPillars struct {
	Year  cycle.Pillar  `json:"year" yaml:"year"`
	Month cycle.Pillar  `json:"month" yaml:"month"`
	Day   cycle.Pillar  `json:"day" yaml:"day"`
	Time  *cycle.Pillar `json:"time" yaml:"time"`
}

// All returns the present pillars in year, month, day, time order.
func (fp FourPillars) All() []cycle.Pillar {
	out := []cycle.Pillar{fp.Year, fp.Month, fp.Day}
	if fp.Time != nil {
		out = append(out, *fp.Time)
	}
	return out
}

// DaeunEntry is one decade of the luck ladder.
type DaeunEntry struct {
	Age    int          `json:"age" yaml:"age"`
	Pillar cycle.Pillar `json:"pillar" yaml:"pillar"`
}

// SajuYear returns the chart year: the calendar year, or the previous one when the date
// falls before that year's spring-begins boundary.
func SajuYear(t time.Time) int {
	year := t.Year()
	if monthDayOf(t).Before(SpringBegins(year)) {
		return year - 1
	}
	return year
}

// SixtyCycle returns the sexagenary pillar of a year. Periodic with period 60.
func SixtyCycle(year int) cycle.Pillar {
	diff := year - anchorYear
	return cycle.NewPillar(diff, diff)
}

// YearPillar is the sixty-cycle pillar of the chart year.
func YearPillar(sajuYear int) cycle.Pillar {
	return SixtyCycle(sajuYear)
}

// Saeun is the pillar of an arbitrary calendar year, usually the current one.
func Saeun(year int) cycle.Pillar {
	return SixtyCycle(year)
}

// MonthPillar derives the month pillar from the year stem and the 1-based solar month.
func MonthPillar(yearStem cycle.Stem, solarMonth int) cycle.Pillar {
	return cycle.Pillar{
		Stem:   cycle.StemAt(monthStartOffset[yearStem] + solarMonth - 1),
		Branch: cycle.MonthBranchOrder[cycle.Mod(solarMonth-1, cycle.BranchCount)],
	}
}

// DaysSinceEpoch counts whole days between 1900-01-01 00:00 and the date-time, as an
// absolute value. Dates before the epoch therefore mirror around it.
func DaysSinceEpoch(t time.Time) int {
	civil := time.Date(t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), 0, 0, time.UTC)
	secs := civil.Unix() - dayEpoch.Unix()
	if secs < 0 {
		secs = -secs
	}
	return int(secs / secondsPerDay)
}

// DayPillar derives the day pillar from the epoch day count.
func DayPillar(t time.Time) cycle.Pillar {
	days := DaysSinceEpoch(t)
	return cycle.NewPillar(days, days+dayBranchOffset)
}

// TimeSlot maps an hour (0-23) to one of the twelve two-hour slots.
// Slot 0 spans 23:00-00:59; slot n (n >= 1) starts at hour 2n-1.
func TimeSlot(hour int) int {
	if hour >= 23 || hour < 1 {
		return 0
	}
	return (hour + 1) / 2
}

// TimePillar derives the hour pillar from the day stem.
func TimePillar(dayStem cycle.Stem, hour int) cycle.Pillar {
	slot := TimeSlot(hour)
	return cycle.Pillar{
		Stem:   cycle.StemAt(dayStem.Index()*2 + slot),
		Branch: cycle.TimeBranchOrder[slot],
	}
}

// DaeunForward reports the ladder direction: forward for a man born in a yang year or a
// woman born in a yin year.
func DaeunForward(gender Gender, yearStem cycle.Stem) bool {
	yang := yearStem.Polarity() == cycle.Yang
	return (gender == Male && yang) || (gender == Female && !yang)
}

// Daeun builds the eight-decade ladder by stepping the month pillar one position per decade.
func Daeun(gender Gender, year, month cycle.Pillar) []DaeunEntry {
	dir := -1
	if DaeunForward(gender, year.Stem) {
		dir = 1
	}

	out := make([]DaeunEntry, 0, DaeunCount)
	for i := 0; i < DaeunCount; i++ {
		out = append(out, DaeunEntry{
			Age:    DaeunStartAge + i*DaeunStep,
			Pillar: month.Step(dir * (i + 1)),
		})
	}
	return out
}

// Calculate assembles the four pillars for a birth date-time.
// When timeKnown is false the time pillar is omitted.
func Calculate(birth time.Time, timeKnown bool) FourPillars {
	year := YearPillar(SajuYear(birth))
	day := DayPillar(birth)

	fp := FourPillars{
		Year:  year,
		Month: MonthPillar(year.Stem, SolarMonth(birth)),
		Day:   day,
	}
	if timeKnown {
		tp := TimePillar(day.Stem, birth.Hour())
		fp.Time = &tp
	}
	return fp
}
