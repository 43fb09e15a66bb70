package main

import (
	"bufio"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-saju/internal/config"
)

func newKeyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Manage the Gemini API key stored in the OS keyring",
	}

	set := &cobra.Command{
		Use:   "set [key]",
		Short: "Store the API key (read from standard input when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var key string
			if len(args) == 1 {
				key = args[0]
			} else {
				fmt.Fprint(cmd.ErrOrStderr(), config.MsgKeyPrompt)
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && strings.TrimSpace(line) == "" {
					return fmt.Errorf("%s: %w", config.ErrStdinRead, err)
				}
				key = line
			}
			return config.StoreAPIKey(key)
		},
	}

	del := &cobra.Command{
		Use:   "delete",
		Short: "Remove the stored API key",
		Args:  cobra.NoArgs,
		RunE: func(*cobra.Command, []string) error {
			return config.DeleteAPIKey()
		},
	}

	cmd.AddCommand(set, del)
	return cmd
}
