package analysis_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tartampluch/go-saju/internal/analysis"
	"github.com/tartampluch/go-saju/internal/cycle"
	"github.com/tartampluch/go-saju/internal/pillar"
)

func TestCountElements_Example(t *testing.T) {
	// 경오 신사 경술 계미
	fp := pillar.Calculate(time.Date(1990, 5, 15, 14, 30, 0, 0, time.UTC), true)

	got := analysis.CountElements(fp)
	assert.Equal(t, analysis.ElementCounts{Wood: 0, Fire: 2, Earth: 2, Metal: 3, Water: 1}, got)
	assert.Equal(t, 8, got.Total())
	assert.Equal(t, cycle.Wood, got.Weakest())
	assert.Equal(t, cycle.Metal, got.Strongest())
	assert.Equal(t, []cycle.Element{cycle.Wood}, got.Missing())

	yy := analysis.CountYinYang(fp)
	// Yang: 경 오 경 술. Yin: 신 사 계 미.
	assert.Equal(t, analysis.YinYangCounts{Yin: 4, Yang: 4}, yy)
}

func TestCounts_TotalsOverManyDates(t *testing.T) {
	start := time.Date(1930, 1, 1, 0, 0, 0, 0, time.UTC)
	for day := 0; day < 365*90; day += 37 {
		at := start.AddDate(0, 0, day).Add(time.Duration(day%24) * time.Hour)

		for _, known := range []bool{true, false} {
			fp := pillar.Calculate(at, known)
			want := 2 * len(fp.All())

			assert.Equal(t, want, analysis.CountElements(fp).Total(), "%s known=%v", at, known)
			assert.Equal(t, want, analysis.CountYinYang(fp).Total(), "%s known=%v", at, known)
		}
	}
}

func TestCounts_TimeUnknown(t *testing.T) {
	fp := pillar.Calculate(time.Date(1990, 5, 15, 14, 30, 0, 0, time.UTC), false)
	assert.Equal(t, 6, analysis.CountElements(fp).Total())
	assert.Equal(t, 6, analysis.CountYinYang(fp).Total())
}

func TestWeakest_TieBreak(t *testing.T) {
	c := analysis.ElementCounts{Wood: 2, Fire: 1, Earth: 1, Metal: 2, Water: 2}
	assert.Equal(t, cycle.Fire, c.Weakest())
	assert.Equal(t, cycle.Wood, c.Strongest())

	var zero analysis.ElementCounts
	assert.Equal(t, cycle.Wood, zero.Weakest())
	assert.Len(t, zero.Missing(), cycle.ElementCount)
}
