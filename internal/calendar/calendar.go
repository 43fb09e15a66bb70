// Package calendar renders iCalendar feeds: the yearly solar terms and the
// daeun ladder of a chart.
package calendar

import (
	"bytes"
	"crypto/sha256"
	"errors"
	"fmt"
	"time"

	"github.com/emersion/go-ical"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/pillar"
)

// SolarTermFeed builds one all-day event per solar term for each year.
// stamp is written as DTSTAMP; passing a fixed instant makes the output reproducible.
func SolarTermFeed(years []int, stamp time.Time) ([]byte, error) {
	if len(years) == 0 {
		return nil, errors.New(config.ErrYearRange)
	}

	cal := newCalendar(config.ICalCalName)
	dtStamp := stampProp(stamp)

	terms := pillar.SolarTerms()
	for _, y := range years {
		if y < config.MinBirthYear || y > config.MaxBirthYear {
			return nil, fmt.Errorf("%s: %d", config.ErrYearRange, y)
		}
		for i, term := range terms {
			event := newEvent(uid(term.Name, y), fmt.Sprintf(config.FormatTermSummary, term.Name, term.Hanja),
				pillar.TermDate(y, i, time.UTC), dtStamp)
			event.Props.SetText(config.PropCategories, config.ICalCalName)
			cal.Children = append(cal.Children, event.Component)
		}
	}

	return encode(cal)
}

// DaeunFeed builds one all-day event per decade of the ladder, dated on the
// birthday in the year the decade starts.
func DaeunFeed(name string, birth time.Time, ladder []pillar.DaeunEntry, stamp time.Time) ([]byte, error) {
	if len(ladder) == 0 {
		return nil, errors.New(config.ErrFeedBuild)
	}

	cal := newCalendar(config.ICalDaeun)
	dtStamp := stampProp(stamp)

	for _, entry := range ladder {
		at := time.Date(birth.Year()+entry.Age, birth.Month(), birth.Day(), 0, 0, 0, 0, time.UTC)
		event := newEvent(uid(name+birth.Format(config.DateFormatFullT), entry.Age),
			fmt.Sprintf(config.FormatDaeunSummary, entry.Pillar, entry.Age), at, dtStamp)
		event.Props.SetText(config.PropCategories, config.ICalDaeun)
		event.Props.SetText(config.PropDescr, name+" "+entry.Pillar.Hanja())
		cal.Children = append(cal.Children, event.Component)
	}

	return encode(cal)
}

func newCalendar(name string) *ical.Calendar {
	cal := ical.NewCalendar()
	cal.Props.SetText(config.PropVersion, config.ICalVersion)
	cal.Props.SetText(config.PropProdid, config.ICalProdid)
	cal.Props.SetText(config.PropXWRCalName, name)
	cal.Props.SetText(config.PropCalScale, config.ICalScale)
	cal.Props.SetText(config.PropMethod, config.ICalMethod)

	// RFC 7986 refresh hint
	refreshProp := ical.NewProp(config.PropRefresh)
	refreshProp.SetDuration(config.DefaultICalRefresh)
	cal.Props.Set(refreshProp)
	return cal
}

func stampProp(stamp time.Time) *ical.Prop {
	p := ical.NewProp(config.PropDTStamp)
	p.SetDateTime(stamp.UTC())
	return p
}

func newEvent(uid, summary string, date time.Time, dtStamp *ical.Prop) *ical.Event {
	event := ical.NewEvent()
	event.Props.SetText(config.PropUID, uid)
	event.Props.SetText(config.PropSummary, summary)
	event.Props.Set(dtStamp)

	dtStart := ical.NewProp(config.PropDTStart)
	dtStart.SetDate(date)
	event.Props.Set(dtStart)
	return event
}

// uid is stable across refreshes so clients update events in place.
func uid(seed string, n int) string {
	hash := sha256.Sum256(fmt.Appendf(nil, config.FormatHashInput, seed, n, config.UIDSalt))
	return fmt.Sprintf(config.FormatUID, fmt.Sprintf("%x", hash[:config.UIDHashLength]), n, config.ICalDomain)
}

func encode(cal *ical.Calendar) ([]byte, error) {
	var buf bytes.Buffer
	if err := ical.NewEncoder(&buf).Encode(cal); err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrICalEncode, err)
	}
	return buf.Bytes(), nil
}

// RollingYears returns the previous, current and next calendar years, so
// clients scrolling around today find events without a resync.
func RollingYears(now time.Time) []int {
	y := now.Year()
	return []int{y - 1, y, y + 1}
}

// RollingTermFeed is SolarTermFeed over RollingYears, stamped with now.
func RollingTermFeed(now time.Time) ([]byte, error) {
	return SolarTermFeed(RollingYears(now), now)
}
