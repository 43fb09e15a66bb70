package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-saju/internal/calendar"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/pillar"
)

func newTermsCmd(a *app) *cobra.Command {
	var (
		year int
		ics  bool
	)

	cmd := &cobra.Command{
		Use:     "terms",
		Short:   "List the 24 solar terms (절기) of a year",
		Example: "  go-saju terms --year 2025 --ics > terms.ics",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runTerms(cmd, year, ics)
		},
	}

	f := cmd.Flags()
	f.IntVar(&year, config.FlagYear, 0, config.FlagDescYear)
	f.BoolVar(&ics, config.FlagICS, false, config.FlagDescICS)
	return cmd
}

func (a *app) runTerms(cmd *cobra.Command, year int, ics bool) error {
	now := time.Now()
	if year == 0 {
		year = now.Year()
	}
	if year < config.MinBirthYear || year > config.MaxBirthYear {
		return fmt.Errorf("%s: %d", config.ErrYearRange, year)
	}

	out := cmd.OutOrStdout()
	if ics {
		data, err := calendar.SolarTermFeed([]int{year}, now)
		if err != nil {
			return err
		}
		_, err = out.Write(data)
		return err
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	for i, term := range pillar.SolarTerms() {
		fmt.Fprintf(tw, "%s\t%s\t%s\n",
			pillar.TermDate(year, i, time.UTC).Format(config.DateFormatFullDash), term.Name, term.Hanja)
	}
	return tw.Flush()
}
