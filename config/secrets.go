package config

import (
	"errors"
	"log"
	"os"
	"os/user"
	"strings"

	"github.com/zalando/go-keyring"
)

// APIKeySecretName is the keyring service under which the generative API key is stored.
const APIKeySecretName = AppID + ".gemini_api_key"

// Secrets stores credentials in the OS keyring, keyed by the current user.
type Secrets struct {
	userid string
	getenv func(string) string
}

// NewSecrets creates a keyring-backed secret store for the current user.
func NewSecrets() *Secrets {
	uid := "default"
	if u, err := user.Current(); err == nil {
		uid = u.Uid
	} else {
		log.Printf("failed to resolve current user, using shared keyring entry: %v", err)
	}
	return &Secrets{userid: uid, getenv: os.Getenv}
}

// GetAPIKey returns the stored API key, falling back to the GEMINI_API_KEY and API_KEY
// environment variables.
func (s *Secrets) GetAPIKey() string {
	key, err := keyring.Get(APIKeySecretName, s.userid)
	if err == nil && key != "" {
		return key
	}
	if err != nil && !errors.Is(err, keyring.ErrNotFound) {
		log.Printf("failed to retrieve API key from keyring: %v", err)
	}
	for _, env := range []string{APIKeyEnv, FallbackAPIKeyEnv} {
		if v := strings.TrimSpace(s.getenv(env)); v != "" {
			return v
		}
	}
	return ""
}

// HasStoredAPIKey reports whether a key is saved in the keyring.
func (s *Secrets) HasStoredAPIKey() bool {
	key, err := keyring.Get(APIKeySecretName, s.userid)
	return err == nil && key != ""
}

// SetAPIKey saves the key in the keyring. An empty key removes the entry.
func (s *Secrets) SetAPIKey(key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		err := keyring.Delete(APIKeySecretName, s.userid)
		if err != nil && !errors.Is(err, keyring.ErrNotFound) {
			return err
		}
		return nil
	}
	return keyring.Set(APIKeySecretName, s.userid, key)
}
