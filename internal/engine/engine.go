package engine

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/tartampluch/go-saju/internal/advice"
	"github.com/tartampluch/go-saju/internal/analysis"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/cycle"
	"github.com/tartampluch/go-saju/internal/interpret"
	"github.com/tartampluch/go-saju/internal/pillar"
)

// Advisor produces the advice block. It must not fail: errors are folded into
// its fallback text. *advice.Gateway implements it.
type Advisor interface {
	Advise(ctx context.Context, req advice.Request) string
}

// ResultSink receives finished charts, e.g. for persistence.
type ResultSink interface {
	Save(ctx context.Context, chart *Chart) error
}

// SinkFunc adapts a function to ResultSink.
type SinkFunc func(ctx context.Context, chart *Chart) error

// Save calls f.
func (f SinkFunc) Save(ctx context.Context, chart *Chart) error { return f(ctx, chart) }

// Chart is the full calculation result. It is not modified after Compute returns.
type Chart struct {
	Input          Input                    `json:"input" yaml:"input"`
	Year           int                      `json:"currentYear" yaml:"currentYear"`
	SajuYear       int                      `json:"sajuYear" yaml:"sajuYear"`
	SolarMonth     int                      `json:"solarMonth" yaml:"solarMonth"`
	FourPillars    pillar.FourPillars       `json:"fourPillars" yaml:"fourPillars"`
	Elements       analysis.ElementCounts   `json:"elements" yaml:"elements"`
	YinYang        analysis.YinYangCounts   `json:"yinYang" yaml:"yinYang"`
	Daeun          []pillar.DaeunEntry      `json:"daeun" yaml:"daeun"`
	Saeun          cycle.Pillar             `json:"saeun" yaml:"saeun"`
	SolarTerm      string                   `json:"solarTerm" yaml:"solarTerm"`
	Interpretation interpret.Interpretation `json:"interpretation" yaml:"interpretation"`
}

// Calculator wires the pipeline: pillars, analysis, interpretation and advice.
type Calculator struct {
	Clock       Clock                  // Source of the current year.
	Interpreter *interpret.Interpreter // Optional. Nil yields fallback texts.
	Advisor     Advisor                // Optional. Nil yields the advice fallback.
	Sink        ResultSink             // Optional hand-off for finished charts.
}

// Calculate validates the input, computes the chart and hands it to the sink.
// A sink failure is returned together with the (complete) chart.
func (c *Calculator) Calculate(ctx context.Context, in Input) (*Chart, error) {
	birth, err := ParseInput(in)
	if err != nil {
		return nil, err
	}

	chart := c.Compute(ctx, birth)
	if err := c.save(ctx, chart); err != nil {
		return chart, err
	}
	return chart, nil
}

// Compute builds the chart for a validated birth. The advice call runs
// concurrently with the interpretation and is bounded by the advisor's timeout.
func (c *Calculator) Compute(ctx context.Context, b Birth) *Chart {
	start := time.Now()
	log := slog.With(slog.String(config.LogKeyComponent, config.CompEngine))
	log.DebugContext(ctx, config.MsgCalcStarted, slog.String(config.LogKeyDOB, b.At.Format(config.DateFormatFullDash)))

	year := c.clock().Now().Year()
	saeun := pillar.Saeun(year)

	fp := pillar.Calculate(b.At, b.TimeKnown)
	elements := analysis.CountElements(fp)
	yinYang := analysis.CountYinYang(fp)

	adviceCh := make(chan string, config.ChannelBufferSize)
	go func() {
		adviceCh <- c.advise(ctx, advice.Request{
			Gender:   b.Gender,
			Pillars:  fp,
			Elements: elements,
			YinYang:  yinYang,
			Year:     year,
			Saeun:    saeun,
		})
	}()

	text := c.interpreter().Interpret(interpret.Request{
		Gender:   b.Gender,
		Pillars:  fp,
		Elements: elements,
		YinYang:  yinYang,
		Saeun:    saeun,
	})
	text.Timely.Advice = <-adviceCh

	chart := &Chart{
		Input:          b.Input(),
		Year:           year,
		SajuYear:       pillar.SajuYear(b.At),
		SolarMonth:     pillar.SolarMonth(b.At),
		FourPillars:    fp,
		Elements:       elements,
		YinYang:        yinYang,
		Daeun:          pillar.Daeun(b.Gender, fp.Year, fp.Month),
		Saeun:          saeun,
		SolarTerm:      pillar.SolarTerm(b.At),
		Interpretation: text,
	}

	log.DebugContext(ctx, config.MsgCalcDone,
		slog.Any(config.LogKeyPillars, fp.All()),
		slog.Int64(config.LogKeyDuration, time.Since(start).Milliseconds()),
	)
	return chart
}

func (c *Calculator) clock() Clock {
	if c.Clock == nil {
		return RealClock{}
	}
	return c.Clock
}

func (c *Calculator) interpreter() *interpret.Interpreter {
	if c.Interpreter == nil {
		return interpret.New(nil)
	}
	return c.Interpreter
}

func (c *Calculator) advise(ctx context.Context, req advice.Request) string {
	if c.Advisor == nil {
		return advice.Fallback
	}
	return c.Advisor.Advise(ctx, req)
}

func (c *Calculator) save(ctx context.Context, chart *Chart) error {
	if c.Sink == nil {
		return nil
	}
	if err := c.Sink.Save(ctx, chart); err != nil {
		slog.Error(config.MsgSinkFailed,
			config.LogKeyComponent, config.CompEngine,
			config.LogKeyError, err,
		)
		return fmt.Errorf("%s: %w", config.ErrSink, err)
	}
	return nil
}
