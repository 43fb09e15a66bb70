package main

import (
	"context"
	"io"
	"log/slog"

	"github.com/spf13/cobra"
	"github.com/tartampluch/go-saju/internal/advice"
	"github.com/tartampluch/go-saju/internal/config"
	"github.com/tartampluch/go-saju/internal/engine"
	"github.com/tartampluch/go-saju/internal/interpret"
)

// app carries the global flags and the state shared by subcommands.
type app struct {
	configPath string
	debug      bool

	settings  config.Settings
	logCloser io.Closer
}

func newRootCmd(a *app) *cobra.Command {
	root := &cobra.Command{
		Use:           "go-saju",
		Short:         "Four pillars (사주) birth chart calculator",
		Long:          "go-saju computes the four pillars of a birth date, their five-element balance,\nthe daeun ladder and a Korean reading, and publishes a solar-term calendar feed.",
		Version:       config.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		CompletionOptions: cobra.CompletionOptions{
			HiddenDefaultCmd: true,
		},
		PersistentPreRunE: func(*cobra.Command, []string) error {
			return a.setup()
		},
	}
	root.SetVersionTemplate(versionString())

	pf := root.PersistentFlags()
	pf.StringVar(&a.configPath, config.FlagConfig, "", config.FlagDescConfig)
	pf.BoolVar(&a.debug, config.FlagDebug, false, config.FlagDescDebug)

	root.AddCommand(
		newCalcCmd(a),
		newBatchCmd(a),
		newTermsCmd(a),
		newServeCmd(a),
		newKeyCmd(),
	)
	return root
}

// setup configures logging and loads the settings once flags are parsed.
func (a *app) setup() error {
	a.logCloser = setupLogging(a.debug)
	logStartupInfo()

	s, err := config.LoadSettings(a.configPath)
	if err != nil {
		return err
	}
	a.settings = s
	return nil
}

func (a *app) close() {
	if a.logCloser != nil {
		_ = a.logCloser.Close()
	}
}

// newCalculator wires the catalog and, when requested, the advice gateway.
func (a *app) newCalculator(ctx context.Context, withAdvice bool) (*engine.Calculator, error) {
	cat, err := interpret.NewCatalog(config.DefaultLanguage)
	if err != nil {
		return nil, err
	}

	calc := &engine.Calculator{
		Clock:       engine.RealClock{},
		Interpreter: interpret.New(cat),
	}
	if withAdvice {
		calc.Advisor = a.newAdvisor(ctx)
	}
	return calc, nil
}

// newAdvisor never fails: without a usable key the gateway answers with the fallback.
func (a *app) newAdvisor(ctx context.Context) *advice.Gateway {
	log := slog.With(config.LogKeyComponent, config.CompAdvice)

	key, err := config.APIKey()
	if err != nil {
		log.Warn(config.MsgAdviceDisabled, config.LogKeyError, err)
		return advice.NewGateway(nil, a.settings.AdviceTimeout)
	}
	if key == "" {
		log.Info(config.MsgKeyMissing)
		return advice.NewGateway(nil, a.settings.AdviceTimeout)
	}

	gen, err := advice.NewGeminiGenerator(ctx, advice.GeminiConfig{
		APIKey: key,
		Model:  a.settings.AdviceModel,
	})
	if err != nil {
		log.Warn(config.MsgAdviceDisabled, config.LogKeyError, err)
		return advice.NewGateway(nil, a.settings.AdviceTimeout)
	}
	return advice.NewGateway(gen, a.settings.AdviceTimeout)
}
