package main

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
)

type batchFlags struct {
	vcf      string
	workers  int
	format   string
	noAdvice bool
}

func newBatchCmd(a *app) *cobra.Command {
	var flags batchFlags

	cmd := &cobra.Command{
		Use:     "batch",
		Short:   "Compute charts for every contact of a vCard file",
		Long:    "batch reads BDAY and GENDER from each vCard and prints one record per usable contact.\nContacts without a birth year or a gender are skipped. Use --vcf - to read standard input.",
		Example: "  go-saju batch --vcf contacts.vcf --no-advice",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.runBatch(cmd, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.vcf, config.FlagVCF, "", config.FlagDescVCF)
	f.IntVar(&flags.workers, config.FlagWorkers, 0, config.FlagDescWorkers)
	f.StringVar(&flags.format, config.FlagFormat, "", config.FlagDescFormat)
	f.BoolVar(&flags.noAdvice, config.FlagNoAdvice, false, config.FlagDescNoAdvice)

	_ = cmd.MarkFlagRequired(config.FlagVCF)
	return cmd
}

func (a *app) runBatch(cmd *cobra.Command, flags batchFlags) error {
	ctx := cmd.Context()

	r, err := openInput(cmd, flags.vcf)
	if err != nil {
		return err
	}
	defer func() { _ = r.Close() }()

	profiles, err := engine.ReadProfiles(ctx, r)
	if err != nil {
		return err
	}

	calc, err := a.newCalculator(ctx, !flags.noAdvice)
	if err != nil {
		return err
	}

	workers := flags.workers
	if workers <= 0 {
		workers = a.settings.BatchWorkers
	}

	results, err := calc.CalculateBatch(ctx, profiles, workers)
	if err != nil {
		return err
	}
	return writeOutput(cmd.OutOrStdout(), a.pickFormat(flags.format), results)
}

// openInput opens the regular file at path, or standard input for "-".
func openInput(cmd *cobra.Command, path string) (io.ReadCloser, error) {
	if path == "-" {
		return io.NopCloser(cmd.InOrStdin()), nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrVCardOpen, err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %w", config.ErrVCardOpen, err)
	}
	if info.IsDir() {
		_ = f.Close()
		return nil, fmt.Errorf("%s: %q: %s", config.ErrVCardOpen, path, config.ErrIsDirectory)
	}
	return f, nil
}
