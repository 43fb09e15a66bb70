package main

import (
	"github.com/spf13/cobra"
	"github.com/tartampluch/go-saju/internal/calendar"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/server"
)

func newServeCmd(a *app) *cobra.Command {
	var port string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Publish the solar-term feed over HTTP on localhost",
		Long:  "serve publishes the solar terms of the previous, current and next year as an\niCalendar feed on GET /. The feed is rebuilt on the configured cron schedule.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if port == "" {
				port = a.settings.Port
			}
			if err := config.ValidatePort(port); err != nil {
				return err
			}

			srv := server.NewFeedServer(port, a.settings.FeedCron, calendar.RollingTermFeed)
			return srv.Start(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&port, config.FlagPort, "", config.FlagDescPort)
	return cmd
}
