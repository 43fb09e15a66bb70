package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/zalando/go-keyring"
)

// APIKey returns the Gemini key, preferring the environment over the OS keyring.
// An unset key yields an empty string and a nil error.
func APIKey() (string, error) {
	if v := strings.TrimSpace(os.Getenv(EnvGeminiAPIKey)); v != "" {
		slog.Debug(MsgKeyFromEnv, LogKeyComponent, CompSecrets)
		return v, nil
	}

	v, err := keyring.Get(KeyringService, KeyringUserGemini)
	if errors.Is(err, keyring.ErrNotFound) {
		slog.Debug(MsgKeyMissing, LogKeyComponent, CompSecrets)
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("%s: %w", ErrKeyringRead, err)
	}

	slog.Debug(MsgKeyFromKeyring, LogKeyComponent, CompSecrets)
	return v, nil
}

// StoreAPIKey saves the Gemini key in the OS keyring.
func StoreAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return fmt.Errorf("%s", ErrAPIKeyEmpty)
	}
	if err := keyring.Set(KeyringService, KeyringUserGemini, key); err != nil {
		return fmt.Errorf("%s: %w", ErrKeyringWrite, err)
	}
	slog.Info(MsgKeyStored, LogKeyComponent, CompSecrets)
	return nil
}

// DeleteAPIKey removes the stored key. Deleting a missing key is not an error.
func DeleteAPIKey() error {
	err := keyring.Delete(KeyringService, KeyringUserGemini)
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return fmt.Errorf("%s: %w", ErrKeyringDelete, err)
	}
	slog.Info(MsgKeyDeleted, LogKeyComponent, CompSecrets)
	return nil
}
