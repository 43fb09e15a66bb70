package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Settings holds the user-tunable runtime options.
// Values are resolved in order: defaults, YAML file, environment.
type Settings struct {
	AdviceModel   string        `yaml:"advice_model"`
	AdviceTimeout time.Duration `yaml:"advice_timeout"`
	Port          string        `yaml:"port"`
	BatchWorkers  int           `yaml:"batch_workers"`
	FeedCron      string        `yaml:"feed_cron"`
	Format        string        `yaml:"format"`
}

// DefaultSettings returns the built-in configuration.
func DefaultSettings() Settings {
	return Settings{
		AdviceModel:   DefaultAdviceModel,
		AdviceTimeout: AdviceTimeout,
		Port:          DefaultPort,
		BatchWorkers:  DefaultBatchWorkers,
		FeedCron:      DefaultFeedCron,
		Format:        DefaultFormat,
	}
}

// LoadSettings builds the settings from an optional YAML file and the environment.
// An empty path skips the file.
func LoadSettings(path string) (Settings, error) {
	s := DefaultSettings()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return s, fmt.Errorf("%s: %w", ErrSettingsRead, err)
		}
		if err := yaml.Unmarshal(data, &s); err != nil {
			return s, fmt.Errorf("%s: %w", ErrSettingsParse, err)
		}
	}

	if err := s.applyEnv(); err != nil {
		return s, err
	}
	s.Format = strings.ToLower(strings.TrimSpace(s.Format))
	if err := s.Validate(); err != nil {
		return s, err
	}

	slog.Debug(MsgSettingsLoaded,
		LogKeyComponent, CompSettings,
		LogKeyFile, path,
		LogKeyModel, s.AdviceModel,
		LogKeyPort, s.Port,
	)
	return s, nil
}

func (s *Settings) applyEnv() error {
	if v, ok := os.LookupEnv(EnvAdviceModel); ok && v != "" {
		s.AdviceModel = v
	}
	if v, ok := os.LookupEnv(EnvAdviceTimeout); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", ErrSettingsValue, EnvAdviceTimeout, err)
		}
		s.AdviceTimeout = d
	}
	if v, ok := os.LookupEnv(EnvPort); ok && v != "" {
		s.Port = v
	}
	if v, ok := os.LookupEnv(EnvBatchWorkers); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s: %s: %w", ErrSettingsValue, EnvBatchWorkers, err)
		}
		s.BatchWorkers = n
	}
	if v, ok := os.LookupEnv(EnvFeedCron); ok && v != "" {
		s.FeedCron = v
	}
	return nil
}

// Validate checks the ranges the rest of the program relies on.
func (s Settings) Validate() error {
	if err := ValidatePort(s.Port); err != nil {
		return err
	}
	if s.AdviceTimeout <= 0 {
		return fmt.Errorf("%s: advice_timeout must be positive", ErrSettingsValue)
	}
	if s.BatchWorkers < 1 {
		return fmt.Errorf("%s: batch_workers must be at least 1", ErrSettingsValue)
	}
	switch strings.ToLower(s.Format) {
	case FormatJSON, FormatYAML:
	default:
		return fmt.Errorf("%s: %q", ErrFormat, s.Format)
	}
	return nil
}

// ValidatePort checks that the port is a number within the TCP range.
func ValidatePort(port string) error {
	if port == "" {
		return fmt.Errorf("%s", ErrPortRequired)
	}
	n, err := strconv.Atoi(port)
	if err != nil || n < MinPort || n > MaxPort {
		return fmt.Errorf("%s: %q", ErrPortRange, port)
	}
	return nil
}
