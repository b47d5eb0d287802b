package app

import (
	"crypto/sha256"
	"fmt"

	"github.com/gorilla/securecookie"

	"ruru-backoffice/internal/config"
	"ruru-backoffice/internal/logx"
)

// secrets are the signing keys of the flash cookie and CSRF tokens.
type secrets struct {
	Flash []byte
	CSRF  []byte
}

// newSecrets derives 32-byte keys from SESSION_SECRET and CSRF_KEY. Missing
// values get a random key, which does not survive a restart.
func newSecrets(cfg *config.Config, logger logx.Logger) (secrets, error) {
	flash, err := deriveKey("SESSION_SECRET", cfg.Session.Secret, logger)
	if err != nil {
		return secrets{}, err
	}
	csrfKey, err := deriveKey("CSRF_KEY", cfg.Session.CSRFKey, logger)
	if err != nil {
		return secrets{}, err
	}
	return secrets{Flash: flash, CSRF: csrfKey}, nil
}

func deriveKey(name, value string, logger logx.Logger) ([]byte, error) {
	if value == "" {
		logger.Warn(name + " not set, using a random key")
		key := securecookie.GenerateRandomKey(32)
		if key == nil {
			return nil, fmt.Errorf("generate %s", name)
		}
		return key, nil
	}
	if len(value) == 32 {
		return []byte(value), nil
	}
	sum := sha256.Sum256([]byte(value))
	return sum[:], nil
}
