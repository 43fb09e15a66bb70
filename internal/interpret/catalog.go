package interpret

import (
	"embed"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/nicksnyder/go-i18n/v2/i18n"
	"github.com/tartampluch/go-saju/internal/config"
	"golang.org/x/text/language"
)

//go:embed locales/*.json
var localeFS embed.FS

// Catalog resolves message IDs against the embedded locale files.
// It is read-only after construction and safe for concurrent use.
type Catalog struct {
	bundle    *i18n.Bundle
	localizer *i18n.Localizer
	langs     []string
}

// NewCatalog loads every active.<lang>.json file under locales/ and selects lang.
func NewCatalog(lang string) (*Catalog, error) {
	bundle := i18n.NewBundle(language.Korean)
	bundle.RegisterUnmarshalFunc("json", json.Unmarshal)

	entries, err := localeFS.ReadDir(config.LocalesDir)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", config.ErrLocalesAccess, err)
	}

	var langs []string
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasPrefix(name, config.LocalePrefix) || !strings.HasSuffix(name, config.LocaleSuffix) {
			slog.Debug(config.MsgLocaleSkip,
				config.LogKeyComponent, config.CompI18n,
				config.LogKeyFile, name,
			)
			continue
		}

		code := strings.TrimSuffix(strings.TrimPrefix(name, config.LocalePrefix), config.LocaleSuffix)
		if _, err := bundle.LoadMessageFileFS(localeFS, config.LocalesDir+"/"+name); err != nil {
			return nil, fmt.Errorf("%s: %s: %w", config.ErrLocaleLoad, name, err)
		}
		langs = append(langs, code)

		slog.Debug(config.MsgLocaleLoaded,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyLang, code,
			config.LogKeyFile, name,
		)
	}

	if lang == "" {
		lang = config.DefaultLanguage
	}

	return &Catalog{
		bundle:    bundle,
		localizer: i18n.NewLocalizer(bundle, lang),
		langs:     langs,
	}, nil
}

// Languages lists the locale codes found in the embedded files.
func (c *Catalog) Languages() []string {
	if c == nil {
		return nil
	}
	return append([]string(nil), c.langs...)
}

// Has reports whether the catalog defines id.
func (c *Catalog) Has(id string) bool {
	if c == nil {
		return false
	}
	_, err := c.lookup(id, nil)
	return err == nil
}

// Text returns the message for id, or fallback when it is not defined.
func (c *Catalog) Text(id, fallback string) string {
	return c.Render(id, nil, fallback)
}

// Render executes the message template for id with data.
func (c *Catalog) Render(id string, data map[string]any, fallback string) string {
	if c == nil {
		return fallback
	}
	msg, err := c.lookup(id, data)
	if err != nil {
		slog.Debug(config.MsgTransMissing,
			config.LogKeyComponent, config.CompI18n,
			config.LogKeyKey, id,
			config.LogKeyError, err,
		)
		return fallback
	}
	return msg
}

func (c *Catalog) lookup(id string, data map[string]any) (string, error) {
	return c.localizer.Localize(&i18n.LocalizeConfig{
		MessageID:    id,
		TemplateData: data,
	})
}

// key joins message ID segments with dots.
func key(parts ...string) string {
	return strings.Join(parts, ".")
}
