package secret

import (
	"fmt"

	"github.com/pluggedin/pluggedin/internal/domain"
)

// EncryptRecord encrypts the sensitive fields of a server configuration for
// the given profile, producing their at-rest counterparts. Only fields that
// are present and non-empty are encrypted; absent fields stay absent rather
// than round-tripping as empty-ciphertext placeholders.
func (c *Codec) EncryptRecord(cfg domain.ServerConfig, profileID string) (domain.EncryptedServerConfig, error) {
	var enc domain.EncryptedServerConfig

	if cfg.Command != "" {
		out, err := c.Encrypt(cfg.Command, profileID)
		if err != nil {
			return domain.EncryptedServerConfig{}, fmt.Errorf("failed to encrypt command: %w", err)
		}
		enc.Command = out
	}

	if len(cfg.Args) > 0 {
		out, err := c.Encrypt(cfg.Args, profileID)
		if err != nil {
			return domain.EncryptedServerConfig{}, fmt.Errorf("failed to encrypt args: %w", err)
		}
		enc.Args = out
	}

	if len(cfg.Env) > 0 {
		out, err := c.Encrypt(cfg.Env, profileID)
		if err != nil {
			return domain.EncryptedServerConfig{}, fmt.Errorf("failed to encrypt env: %w", err)
		}
		enc.Env = out
	}

	if cfg.URL != "" {
		out, err := c.Encrypt(cfg.URL, profileID)
		if err != nil {
			return domain.EncryptedServerConfig{}, fmt.Errorf("failed to encrypt url: %w", err)
		}
		enc.URL = out
	}

	return enc, nil
}

// DecryptRecord recovers the plaintext configuration from its at-rest form.
// Field failures are isolated: a field that cannot be decrypted is logged and
// degraded to its zero value, and the remaining fields are still recovered.
func (c *Codec) DecryptRecord(enc domain.EncryptedServerConfig, profileID string) domain.ServerConfig {
	var cfg domain.ServerConfig

	if enc.Command != "" {
		out, err := c.DecryptText(enc.Command, profileID)
		if err != nil {
			c.logger.Error("Failed to decrypt field, dropping it", "field", "command", "profile", profileID, "error", err)
		} else {
			cfg.Command = out
		}
	}

	if enc.Args != "" {
		out, err := DecryptStructured[[]string](c, enc.Args, profileID)
		if err != nil {
			c.logger.Error("Failed to decrypt field, dropping it", "field", "args", "profile", profileID, "error", err)
		} else {
			cfg.Args = out
		}
	}

	if enc.Env != "" {
		out, err := DecryptStructured[map[string]string](c, enc.Env, profileID)
		if err != nil {
			c.logger.Error("Failed to decrypt field, dropping it", "field", "env", "profile", profileID, "error", err)
		} else {
			cfg.Env = out
		}
	}

	if enc.URL != "" {
		out, err := c.DecryptText(enc.URL, profileID)
		if err != nil {
			c.logger.Error("Failed to decrypt field, dropping it", "field", "url", "profile", profileID, "error", err)
		} else {
			cfg.URL = out
		}
	}

	return cfg
}
