package auth

import (
	"fmt"
	"strings"

	nanoid "github.com/matoous/go-nanoid/v2"
)

// Default API key configuration.
const (
	DefaultAPIKeyPrefix       = "cm_"
	DefaultAPIKeyLength       = 32
	DefaultAPIKeyPrefixLength = 10

	base62 = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"
)

// APIKeyConfig holds configuration for API key generation.
type APIKeyConfig struct {
	// Prefix is prepended to all keys. Defaults to "cm_".
	Prefix string

	// RandomLength is the length of the random part. Defaults to 32.
	RandomLength int

	// PrefixLength is how many characters to show in the display prefix.
	// Defaults to 10.
	PrefixLength int
}

func (c APIKeyConfig) prefix() string {
	if c.Prefix == "" {
		return DefaultAPIKeyPrefix
	}
	return c.Prefix
}

func (c APIKeyConfig) randomLength() int {
	if c.RandomLength == 0 {
		return DefaultAPIKeyLength
	}
	return c.RandomLength
}

func (c APIKeyConfig) prefixLength() int {
	if c.PrefixLength == 0 {
		return DefaultAPIKeyPrefixLength
	}
	return c.PrefixLength
}

// APIKeyWithSecret contains the full API key (only available at creation).
type APIKeyWithSecret struct {
	ID string

	// Secret is the full key. It is shown once and never stored.
	Secret string

	// Prefix is the display prefix, e.g. "cm_a1B2c3d...".
	Prefix string

	// Hash is what goes in the config file.
	Hash string
}

// GenerateAPIKey creates a new API key with the given configuration.
func GenerateAPIKey(cfg APIKeyConfig) (*APIKeyWithSecret, error) {
	random, err := nanoid.Generate(base62, cfg.randomLength())
	if err != nil {
		return nil, fmt.Errorf("generate api key: %w", err)
	}

	secret := cfg.prefix() + random

	id, err := nanoid.New()
	if err != nil {
		return nil, fmt.Errorf("generate api key id: %w", err)
	}

	return &APIKeyWithSecret{
		ID:     "key_" + id,
		Secret: secret,
		Prefix: ExtractAPIKeyPrefix(secret, cfg),
		Hash:   HashToken(secret),
	}, nil
}

// ValidateAPIKeyFormat checks if a string matches the expected API key format.
func ValidateAPIKeyFormat(key string, cfg APIKeyConfig) bool {
	prefix := cfg.prefix()
	return strings.HasPrefix(key, prefix) && len(key) == len(prefix)+cfg.randomLength()
}

// ExtractAPIKeyPrefix gets the display prefix from a full key.
func ExtractAPIKeyPrefix(key string, cfg APIKeyConfig) string {
	prefixLen := cfg.prefixLength()
	if len(key) <= prefixLen {
		return key
	}
	return key[:prefixLen] + "..."
}

// KeyRing checks presented API keys against stored hashes.
type KeyRing struct {
	cfg    APIKeyConfig
	hashes []string
}

// NewKeyRing creates a key ring over the stored hashes. Empty hashes are
// ignored.
func NewKeyRing(cfg APIKeyConfig, hashes ...string) *KeyRing {
	kr := &KeyRing{cfg: cfg}
	for _, h := range hashes {
		if h = strings.TrimSpace(h); h != "" {
			kr.hashes = append(kr.hashes, h)
		}
	}
	return kr
}

// Len returns the number of stored keys.
func (kr *KeyRing) Len() int {
	return len(kr.hashes)
}

// Verify returns nil when key is well-formed and matches a stored hash.
func (kr *KeyRing) Verify(key string) error {
	if !ValidateAPIKeyFormat(key, kr.cfg) {
		return ErrInvalidAPIKey
	}
	matched := false
	for _, h := range kr.hashes {
		// No early exit so the time taken does not reveal which entry matched.
		if MatchHash(key, h) {
			matched = true
		}
	}
	if !matched {
		return ErrInvalidAPIKey
	}
	return nil
}
