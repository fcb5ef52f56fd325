package secretstore

import (
	"encoding/base64"
	"errors"
)

// CryptoConfig carries the master key for sealing secrets at rest.
type CryptoConfig struct {
	EncryptionKey string `env:"TOTP_ENCRYPTION_KEY"` // base64 encoded 32-byte key
}

// Key decodes EncryptionKey and checks its length.
func (c CryptoConfig) Key() ([]byte, error) {
	if c.EncryptionKey == "" {
		return nil, errors.Join(ErrFailedToLoadEncryptionKey, ErrEncryptionKeyNotSet)
	}

	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return nil, errors.Join(ErrFailedToLoadEncryptionKey, err)
	}
	if len(key) != KeySize {
		return nil, errors.Join(ErrFailedToLoadEncryptionKey, ErrInvalidEncryptionKeyLength)
	}

	return key, nil
}
