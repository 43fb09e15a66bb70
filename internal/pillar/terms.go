package pillar

import "time"

// MonthDay is a calendar day without a year.
type MonthDay struct {
	Month time.Month
	Day   int
}

// Before reports whether m falls strictly before o within the same year.
func (m MonthDay) Before(o MonthDay) bool {
	return m.Month < o.Month || (m.Month == o.Month && m.Day < o.Day)
}

func monthDayOf(t time.Time) MonthDay {
	return MonthDay{Month: t.Month(), Day: t.Day()}
}

// SolarTermInfo is one of the 24 seasonal markers pinned to a fixed calendar day.
// The dates are approximations; real terms drift by a day between years.
type SolarTermInfo struct {
	MonthDay
	Name  string
	Hanja string
}

var solarTerms = [...]SolarTermInfo{
	{MonthDay{time.January, 5}, "소한", "小寒"},
	{MonthDay{time.January, 20}, "대한", "大寒"},
	{MonthDay{time.February, 4}, "입춘", "立春"},
	{MonthDay{time.February, 19}, "우수", "雨水"},
	{MonthDay{time.March, 5}, "경칩", "驚蟄"},
	{MonthDay{time.March, 20}, "춘분", "春分"},
	{MonthDay{time.April, 5}, "청명", "淸明"},
	{MonthDay{time.April, 20}, "곡우", "穀雨"},
	{MonthDay{time.May, 5}, "입하", "立夏"},
	{MonthDay{time.May, 21}, "소만", "小滿"},
	{MonthDay{time.June, 6}, "망종", "芒種"},
	{MonthDay{time.June, 21}, "하지", "夏至"},
	{MonthDay{time.July, 7}, "소서", "小暑"},
	{MonthDay{time.July, 23}, "대서", "大暑"},
	{MonthDay{time.August, 8}, "입추", "立秋"},
	{MonthDay{time.August, 23}, "처서", "處暑"},
	{MonthDay{time.September, 8}, "백로", "白露"},
	{MonthDay{time.September, 23}, "추분", "秋分"},
	{MonthDay{time.October, 8}, "한로", "寒露"},
	{MonthDay{time.October, 23}, "상강", "霜降"},
	{MonthDay{time.November, 7}, "입동", "立冬"},
	{MonthDay{time.November, 22}, "소설", "小雪"},
	{MonthDay{time.December, 7}, "대설", "大雪"},
	{MonthDay{time.December, 22}, "동지", "冬至"},
}

// SolarTermCount is the number of solar terms in a year.
const SolarTermCount = len(solarTerms)

// SolarTerms returns the term table in calendar order.
func SolarTerms() []SolarTermInfo {
	out := make([]SolarTermInfo, SolarTermCount)
	copy(out, solarTerms[:])
	return out
}

// SolarTerm returns the name of the latest term on or before the date.
// Dates before the first term of the year (Jan 1-4) wrap to the last term of the table.
func SolarTerm(t time.Time) string {
	return solarTermInfo(t).Name
}

func solarTermInfo(t time.Time) SolarTermInfo {
	md := monthDayOf(t)
	for i := SolarTermCount - 1; i >= 0; i-- {
		if !md.Before(solarTerms[i].MonthDay) {
			return solarTerms[i]
		}
	}
	return solarTerms[SolarTermCount-1]
}

// TermDate materializes term i of the table in the given year, at midnight in loc.
func TermDate(year, i int, loc *time.Location) time.Time {
	term := solarTerms[i]
	return time.Date(year, term.Month, term.Day, 0, 0, 0, 0, loc)
}

// solarMonthStarts are the first days of solar months 1-11; month 12 starts on Jan 5 and
// also covers every date before Feb 4.
var solarMonthStarts = [...]MonthDay{
	{time.February, 4},
	{time.March, 5},
	{time.April, 5},
	{time.May, 5},
	{time.June, 6},
	{time.July, 7},
	{time.August, 8},
	{time.September, 8},
	{time.October, 8},
	{time.November, 7},
	{time.December, 7},
}

// SolarMonth returns the 1-based solar month index of the date.
// A date before Feb 4 belongs to month 12 of the previous solar year.
func SolarMonth(t time.Time) int {
	md := monthDayOf(t)
	for i := len(solarMonthStarts) - 1; i >= 0; i-- {
		if !md.Before(solarMonthStarts[i]) {
			return i + 1
		}
	}
	return 12
}

// springBegins overrides the default Feb 4 year boundary (입춘) for years where the term falls
// on another day in Korean time. Years absent from the table use defaultSpringBegins.
var springBegins = map[int]MonthDay{
	2021: {time.February, 3},
	2025: {time.February, 3},
	2029: {time.February, 3},
	2033: {time.February, 3},
	2037: {time.February, 3},
	2041: {time.February, 3},
	2045: {time.February, 3},
	2049: {time.February, 3},
}

var defaultSpringBegins = MonthDay{time.February, 4}

// SpringBegins returns the year boundary used for the given calendar year.
func SpringBegins(year int) MonthDay {
	if md, ok := springBegins[year]; ok {
		return md
	}
	return defaultSpringBegins
}
