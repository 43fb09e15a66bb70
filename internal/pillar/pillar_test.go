package pillar_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tartampluch/go-saju/internal/cycle"
	"github.com/tartampluch/go-saju/internal/pillar"
)

func date(y int, m time.Month, d, hh, mm int) time.Time {
	return time.Date(y, m, d, hh, mm, 0, 0, time.UTC)
}

func TestSajuYear(t *testing.T) {
	tests := []struct {
		name string
		at   time.Time
		want int
	}{
		{"After default boundary", date(1990, 5, 15, 14, 30), 1990},
		{"On default boundary", date(1990, 2, 4, 0, 0), 1990},
		{"Day before default boundary", date(1990, 2, 3, 23, 59), 1989},
		{"January", date(2000, 1, 10, 0, 0), 1999},
		{"Override year, on boundary", date(2025, 2, 3, 0, 0), 2025},
		{"Override year, before boundary", date(2025, 2, 2, 0, 0), 2024},
		{"Non-override neighbour", date(2024, 2, 3, 0, 0), 2023},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, pillar.SajuYear(tt.at))
		})
	}
}

func TestSixtyCycle(t *testing.T) {
	assert.Equal(t, "갑자", pillar.SixtyCycle(1984).String())
	assert.Equal(t, "경오", pillar.SixtyCycle(1990).String())
	assert.Equal(t, "계해", pillar.SixtyCycle(1983).String(), "floor modulo before the anchor")
	assert.Equal(t, "경자", pillar.SixtyCycle(1900).String())
	assert.Equal(t, "을사", pillar.SixtyCycle(2025).String())

	for y := 1800; y < 2100; y += 7 {
		assert.Equal(t, pillar.SixtyCycle(y), pillar.SixtyCycle(y+60), "year %d", y)
	}
	assert.Equal(t, pillar.SixtyCycle(2025), pillar.Saeun(2025))
	assert.Equal(t, pillar.SixtyCycle(1990), pillar.YearPillar(1990))
}

func TestSolarMonth(t *testing.T) {
	tests := []struct {
		at   time.Time
		want int
	}{
		{date(2000, 1, 1, 0, 0), 12},
		{date(2000, 1, 10, 0, 0), 12},
		{date(2000, 2, 3, 0, 0), 12},
		{date(2000, 2, 4, 0, 0), 1},
		{date(2000, 3, 4, 0, 0), 1},
		{date(2000, 3, 5, 0, 0), 2},
		{date(1990, 5, 15, 0, 0), 4},
		{date(2000, 12, 6, 0, 0), 10},
		{date(2000, 12, 7, 0, 0), 11},
		{date(2000, 12, 31, 0, 0), 11},
	}

	for _, tt := range tests {
		t.Run(tt.at.Format("01-02"), func(t *testing.T) {
			assert.Equal(t, tt.want, pillar.SolarMonth(tt.at))
		})
	}
}

func TestMonthPillar_FiveTigers(t *testing.T) {
	// First month stem per year stem.
	want := map[cycle.Stem]string{
		cycle.Gap: "병인", cycle.Gi: "병인",
		cycle.Eul: "무인", cycle.Gyeong: "무인",
		cycle.Byeong: "경인", cycle.Sin: "경인",
		cycle.Jeong: "임인", cycle.Im: "임인",
		cycle.Mu: "갑인", cycle.Gye: "갑인",
	}
	for stem, p := range want {
		assert.Equal(t, p, pillar.MonthPillar(stem, 1).String(), "year stem %s", stem)
	}

	assert.Equal(t, "신사", pillar.MonthPillar(cycle.Gyeong, 4).String())
	assert.Equal(t, "정축", pillar.MonthPillar(cycle.Gi, 12).String())
}

func TestDayPillar(t *testing.T) {
	assert.Equal(t, 0, pillar.DaysSinceEpoch(date(1900, 1, 1, 0, 0)))
	assert.Equal(t, "갑진", pillar.DayPillar(date(1900, 1, 1, 0, 0)).String())

	assert.Equal(t, 33006, pillar.DaysSinceEpoch(date(1990, 5, 15, 14, 30)))
	assert.Equal(t, "경술", pillar.DayPillar(date(1990, 5, 15, 14, 30)).String())

	// Time of day never changes the count after the epoch.
	assert.Equal(t, pillar.DayPillar(date(2000, 1, 1, 0, 0)), pillar.DayPillar(date(2000, 1, 1, 23, 59)))
}

func TestDayPillar_BeforeEpochMirrors(t *testing.T) {
	// Half a day before the epoch floors to zero, one full day to one.
	assert.Equal(t, 0, pillar.DaysSinceEpoch(date(1899, 12, 31, 12, 0)))
	assert.Equal(t, 1, pillar.DaysSinceEpoch(date(1899, 12, 31, 0, 0)))
	assert.Equal(t, pillar.DayPillar(date(1900, 1, 2, 0, 0)), pillar.DayPillar(date(1899, 12, 31, 0, 0)))
}

func TestTimeSlot(t *testing.T) {
	want := []int{0, 1, 1, 2, 2, 3, 3, 4, 4, 5, 5, 6, 6, 7, 7, 8, 8, 9, 9, 10, 10, 11, 11, 0}
	for hour, slot := range want {
		assert.Equal(t, slot, pillar.TimeSlot(hour), "hour %d", hour)
	}
}

func TestTimePillar(t *testing.T) {
	assert.Equal(t, "계미", pillar.TimePillar(cycle.Gyeong, 14).String())
	assert.Equal(t, "갑자", pillar.TimePillar(cycle.Gap, 23).String())
	assert.Equal(t, "갑자", pillar.TimePillar(cycle.Gi, 0).String())
	assert.Equal(t, "병자", pillar.TimePillar(cycle.Eul, 0).String())
}

func TestDaeun(t *testing.T) {
	year := pillar.SixtyCycle(1990) // 경오, yang stem
	month := pillar.MonthPillar(year.Stem, 4)

	forward := pillar.Daeun(pillar.Male, year, month)
	reverse := pillar.Daeun(pillar.Female, year, month)
	require.Len(t, forward, pillar.DaeunCount)
	require.Len(t, reverse, pillar.DaeunCount)

	assert.Equal(t, "임오", forward[0].Pillar.String())
	assert.Equal(t, "계미", forward[1].Pillar.String())
	assert.Equal(t, "경진", reverse[0].Pillar.String())
	assert.Equal(t, "기묘", reverse[1].Pillar.String())
	assert.Equal(t, "계유", reverse[7].Pillar.String())

	for _, g := range []pillar.Gender{pillar.Male, pillar.Female} {
		for y := 1980; y < 1990; y++ {
			ladder := pillar.Daeun(g, pillar.SixtyCycle(y), pillar.MonthPillar(pillar.SixtyCycle(y).Stem, 1))
			ages := make([]int, 0, len(ladder))
			for _, e := range ladder {
				ages = append(ages, e.Age)
			}
			assert.Equal(t, []int{10, 20, 30, 40, 50, 60, 70, 80}, ages)
		}
	}
}

func TestDaeunForward(t *testing.T) {
	assert.True(t, pillar.DaeunForward(pillar.Male, cycle.Gap))
	assert.False(t, pillar.DaeunForward(pillar.Male, cycle.Eul))
	assert.False(t, pillar.DaeunForward(pillar.Female, cycle.Gap))
	assert.True(t, pillar.DaeunForward(pillar.Female, cycle.Eul))
}

func TestSolarTerm(t *testing.T) {
	tests := []struct {
		at   time.Time
		want string
	}{
		{date(2000, 1, 1, 0, 0), "동지"},
		{date(2000, 1, 4, 0, 0), "동지"},
		{date(2000, 1, 5, 0, 0), "소한"},
		{date(2000, 2, 4, 0, 0), "입춘"},
		{date(1990, 5, 15, 0, 0), "입하"},
		{date(1990, 5, 21, 0, 0), "소만"},
		{date(2000, 12, 31, 0, 0), "동지"},
	}
	for _, tt := range tests {
		t.Run(tt.at.Format("01-02"), func(t *testing.T) {
			assert.Equal(t, tt.want, pillar.SolarTerm(tt.at))
		})
	}
}

func TestSolarTerms_TableIsOrdered(t *testing.T) {
	terms := pillar.SolarTerms()
	require.Len(t, terms, pillar.SolarTermCount)
	assert.Equal(t, 24, pillar.SolarTermCount)
	for i := 1; i < len(terms); i++ {
		assert.True(t, terms[i-1].Before(terms[i].MonthDay), "%s before %s", terms[i-1].Name, terms[i].Name)
	}

	// Mutating the copy must not touch the table.
	terms[0].Name = "x"
	assert.Equal(t, "소한", pillar.SolarTerms()[0].Name)

	assert.Equal(t, date(2026, 2, 4, 0, 0), pillar.TermDate(2026, 2, time.UTC))
}

func TestCalculate(t *testing.T) {
	fp := pillar.Calculate(date(1990, 5, 15, 14, 30), true)
	assert.Equal(t, "경오", fp.Year.String())
	assert.Equal(t, "신사", fp.Month.String())
	assert.Equal(t, "경술", fp.Day.String())
	require.NotNil(t, fp.Time)
	assert.Equal(t, "계미", fp.Time.String())
	assert.Len(t, fp.All(), 4)

	unknown := pillar.Calculate(date(1990, 5, 15, 14, 30), false)
	assert.Nil(t, unknown.Time)
	assert.Len(t, unknown.All(), 3)
}
