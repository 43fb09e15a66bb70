package calendar_test

import (
	"bytes"
	"testing"
	"time"

	"github.com/emersion/go-ical"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-saju/internal/calendar"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/cycle"
	"github.com/tartampluch/go-saju/internal/pillar"
)

var stamp = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

func decode(t *testing.T, data []byte) *ical.Calendar {
	t.Helper()
	cal, err := ical.NewDecoder(bytes.NewReader(data)).Decode()
	require.NoError(t, err)
	return cal
}

func TestSolarTermFeed(t *testing.T) {
	data, err := calendar.SolarTermFeed([]int{2024, 2025}, stamp)
	require.NoError(t, err)

	cal := decode(t, data)
	events := cal.Events()
	require.Len(t, events, 2*pillar.SolarTermCount)

	first := events[0]
	summary, err := first.Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "소한 (小寒)", summary)

	start, err := first.DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), start)

	uids := make(map[string]bool)
	for _, e := range events {
		u, err := e.Props.Text(config.PropUID)
		require.NoError(t, err)
		uids[u] = true
	}
	assert.Len(t, uids, len(events), "UIDs must be unique")

	name, err := cal.Props.Text(config.PropXWRCalName)
	require.NoError(t, err)
	assert.Equal(t, config.ICalCalName, name)
}

func TestSolarTermFeed_IsDeterministic(t *testing.T) {
	a, err := calendar.SolarTermFeed([]int{2025}, stamp)
	require.NoError(t, err)
	b, err := calendar.SolarTermFeed([]int{2025}, stamp)
	require.NoError(t, err)
	assert.Equal(t, a, b)
}

func TestSolarTermFeed_RejectsBadYears(t *testing.T) {
	_, err := calendar.SolarTermFeed(nil, stamp)
	assert.Error(t, err)

	_, err = calendar.SolarTermFeed([]int{2025, 3000}, stamp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrYearRange)
}

func TestDaeunFeed(t *testing.T) {
	birth := time.Date(1990, 5, 15, 14, 30, 0, 0, time.UTC)
	year := pillar.SixtyCycle(1990)
	ladder := pillar.Daeun(pillar.Male, year, pillar.MonthPillar(year.Stem, 4))

	data, err := calendar.DaeunFeed("김철수", birth, ladder, stamp)
	require.NoError(t, err)

	events := decode(t, data).Events()
	require.Len(t, events, pillar.DaeunCount)

	summary, err := events[0].Props.Text(config.PropSummary)
	require.NoError(t, err)
	assert.Equal(t, "대운 임오 (10세)", summary)

	start, err := events[0].DateTimeStart(time.UTC)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2000, 5, 15, 0, 0, 0, 0, time.UTC), start)

	descr, err := events[0].Props.Text(config.PropDescr)
	require.NoError(t, err)
	assert.Equal(t, "김철수 "+cycle.Pillar{Stem: cycle.Im, Branch: cycle.O}.Hanja(), descr)
}

func TestDaeunFeed_EmptyLadder(t *testing.T) {
	_, err := calendar.DaeunFeed("x", stamp, nil, stamp)
	require.Error(t, err)
	assert.Contains(t, err.Error(), config.ErrFeedBuild)
}
