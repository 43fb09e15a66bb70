package main

import (
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-saju/internal/calendar"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
)

type calcFlags struct {
	input    engine.Input
	format   string
	noAdvice bool
	ics      bool
}

func newCalcCmd(a *app) *cobra.Command {
	var flags calcFlags

	cmd := &cobra.Command{
		Use:     "calc",
		Short:   "Compute the chart of one birth",
		Example: "  go-saju calc --date 1990-05-15 --time 14:30 --gender 남",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runCalc(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.input.BirthDate, config.FlagDate, "", config.FlagDescDate)
	f.StringVar(&flags.input.BirthTime, config.FlagTime, "", config.FlagDescTime)
	f.BoolVar(&flags.input.TimeUnknown, config.FlagUnknownTime, false, config.FlagDescUnknownTime)
	f.StringVar(&flags.input.Gender, config.FlagGender, "", config.FlagDescGender)
	f.StringVar(&flags.input.CalendarType, config.FlagCalendar, config.CalendarSolar, config.FlagDescCalendar)
	f.StringVar(&flags.input.Name, config.FlagName, "", config.FlagDescName)
	f.StringVar(&flags.format, config.FlagFormat, "", config.FlagDescFormat)
	f.BoolVar(&flags.noAdvice, config.FlagNoAdvice, false, config.FlagDescNoAdvice)
	f.BoolVar(&flags.ics, config.FlagICS, false, config.FlagDescICS)

	_ = cmd.MarkFlagRequired(config.FlagDate)
	_ = cmd.MarkFlagRequired(config.FlagGender)
	return cmd
}

// runCalc prints the chart, or with --ics the daeun ladder as a calendar.
func (a *app) runCalc(cmd *cobra.Command, flags calcFlags) error {
	ctx := cmd.Context()

	calc, err := a.newCalculator(ctx, !flags.noAdvice && !flags.ics)
	if err != nil {
		return err
	}

	if flags.ics {
		birth, err := engine.ParseInput(flags.input)
		if err != nil {
			return err
		}
		chart := calc.Compute(ctx, birth)
		data, err := calendar.DaeunFeed(birth.Name, birth.At, chart.Daeun, time.Now())
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(data)
		return err
	}

	chart, err := calc.Calculate(ctx, flags.input)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), a.pickFormat(flags.format), chart)
}
