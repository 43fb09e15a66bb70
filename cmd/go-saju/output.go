package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/tartampluch/go-saju/internal/config"
	"gopkg.in/yaml.v3"
)

// writeOutput encodes v as JSON or YAML.
func writeOutput(w io.Writer, format string, v any) error {
	switch format {
	case config.FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("%s: %w", config.ErrEncode, err)
		}
	case config.FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("%s: %w", config.ErrEncode, err)
		}
		if err := enc.Close(); err != nil {
			return fmt.Errorf("%s: %w", config.ErrEncode, err)
		}
	default:
		return fmt.Errorf("%s: %q", config.ErrFormat, format)
	}
	return nil
}

// pickFormat prefers the flag value over the settings. Names are case-insensitive.
func (a *app) pickFormat(flagValue string) string {
	if flagValue != "" {
		return strings.ToLower(flagValue)
	}
	return strings.ToLower(a.settings.Format)
}
