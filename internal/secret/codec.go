// Package secret implements authenticated encryption for sensitive MCP server
// configuration fields. Values are protected with AES-256-GCM under a key
// derived per profile, so two profiles never share a key even when they store
// identical secrets.
package secret

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/hashicorp/go-hclog"

	"github.com/pluggedin/pluggedin/internal/errors"
)

const (
	// ivSize is the size of the random initialization vector in bytes.
	ivSize = 16

	// tagSize is the size of the GCM authentication tag in bytes.
	tagSize = 16
)

// Codec encrypts and decrypts sensitive configuration values.
// It is stateless apart from the injected base secret and is safe for
// concurrent use. NewCodec should be used to create instances of Codec.
type Codec struct {
	baseSecret []byte
	logger     hclog.Logger
}

// NewCodec creates a codec from the process-wide base secret.
// An empty secret is a configuration error and is rejected here, at first use,
// rather than surfacing later as a garbage ciphertext.
func NewCodec(baseSecret string, logger hclog.Logger) (*Codec, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger cannot be nil")
	}
	if strings.TrimSpace(baseSecret) == "" {
		return nil, errors.ErrSecretNotConfigured
	}

	return &Codec{
		baseSecret: []byte(baseSecret),
		logger:     logger.Named("secret"),
	}, nil
}

// deriveKey computes the 256-bit per-profile key as
// sha256(baseSecret || sha256(profileID)).
// The same (secret, profile) pair always yields the same key, and knowing one
// profile's id alongside the base secret reveals nothing about another's key.
func (c *Codec) deriveKey(profileID string) []byte {
	profileHash := sha256.Sum256([]byte(profileID))
	keyHash := sha256.Sum256(append(append([]byte{}, c.baseSecret...), profileHash[:]...))
	return keyHash[:]
}

// Encrypt protects a value for the given profile and returns the base64 form
// of iv || tag || ciphertext. Strings are encrypted as-is; any other value is
// serialized as JSON first. Encryption is intentionally non-deterministic:
// the IV is freshly random per call, so repeated identical secrets do not
// produce recognizable ciphertext patterns.
func (c *Codec) Encrypt(value any, profileID string) (string, error) {
	if strings.TrimSpace(profileID) == "" {
		return "", fmt.Errorf("%w: profile id cannot be empty", errors.ErrBadRequest)
	}

	var plaintext []byte
	switch v := value.(type) {
	case string:
		plaintext = []byte(v)
	default:
		data, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("failed to serialize value for encryption: %w", err)
		}
		plaintext = data
	}

	aead, err := c.aead(profileID)
	if err != nil {
		return "", err
	}

	iv := make([]byte, ivSize)
	if _, err := rand.Read(iv); err != nil {
		return "", fmt.Errorf("failed to generate initialization vector: %w", err)
	}

	// Seal returns ciphertext || tag; the serialized layout is iv || tag || ciphertext.
	sealed := aead.Seal(nil, iv, plaintext, nil)
	ciphertext := sealed[:len(sealed)-tagSize]
	tag := sealed[len(sealed)-tagSize:]

	blob := make([]byte, 0, ivSize+tagSize+len(ciphertext))
	blob = append(blob, iv...)
	blob = append(blob, tag...)
	blob = append(blob, ciphertext...)

	return base64.StdEncoding.EncodeToString(blob), nil
}

// DecryptText recovers a value encrypted with Encrypt for the same profile,
// returning it as the raw string. Use DecryptStructured for values that were
// JSON-serialized on the way in.
func (c *Codec) DecryptText(encoded string, profileID string) (string, error) {
	plaintext, err := c.open(encoded, profileID)
	if err != nil {
		return "", err
	}
	return string(plaintext), nil
}

// DecryptStructured recovers a JSON-serialized value encrypted with Encrypt,
// decoding it into T. A tag verification failure or a payload that does not
// match the expected shape both fail with ErrDecryptFailed: callers declare
// what they expect and the codec never guesses.
func DecryptStructured[T any](c *Codec, encoded string, profileID string) (T, error) {
	var out T

	plaintext, err := c.open(encoded, profileID)
	if err != nil {
		return out, err
	}

	if err := json.Unmarshal(plaintext, &out); err != nil {
		return out, fmt.Errorf("%w: payload is not the expected shape: %w", errors.ErrDecryptFailed, err)
	}

	return out, nil
}

// open decodes, splits, and authenticates a ciphertext blob.
// Any mismatch (tampering, wrong profile, corrupted data) fails
// deterministically with ErrDecryptFailed; garbage is never returned.
func (c *Codec) open(encoded string, profileID string) ([]byte, error) {
	if strings.TrimSpace(profileID) == "" {
		return nil, fmt.Errorf("%w: profile id cannot be empty", errors.ErrBadRequest)
	}

	blob, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid base64 encoding: %w", errors.ErrDecryptFailed, err)
	}
	if len(blob) < ivSize+tagSize {
		return nil, fmt.Errorf("%w: ciphertext too short (%d bytes)", errors.ErrDecryptFailed, len(blob))
	}

	iv := blob[:ivSize]
	tag := blob[ivSize : ivSize+tagSize]
	ciphertext := blob[ivSize+tagSize:]

	aead, err := c.aead(profileID)
	if err != nil {
		return nil, err
	}

	// Reassemble ciphertext || tag for GCM Open.
	sealed := make([]byte, 0, len(ciphertext)+tagSize)
	sealed = append(sealed, ciphertext...)
	sealed = append(sealed, tag...)

	plaintext, err := aead.Open(nil, iv, sealed, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: authentication tag mismatch", errors.ErrDecryptFailed)
	}

	return plaintext, nil
}

// aead builds the AES-256-GCM cipher for the given profile's derived key.
// The IV is 16 bytes rather than GCM's 12-byte default to keep the serialized
// iv || tag || ciphertext layout stable.
func (c *Codec) aead(profileID string) (cipher.AEAD, error) {
	block, err := aes.NewCipher(c.deriveKey(profileID))
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cipher: %w", err)
	}

	aead, err := cipher.NewGCMWithNonceSize(block, ivSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize GCM: %w", err)
	}

	return aead, nil
}
