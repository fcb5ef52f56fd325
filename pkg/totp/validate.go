package totp

import (
	"encoding/base32"
	"errors"
	"regexp"
	"strings"
)

// secretPattern accepts base32 in either case with optional trailing padding.
var secretPattern = regexp.MustCompile("^[A-Za-z2-7]+=*$")

var secretEncoding = base32.StdEncoding.WithPadding(base32.NoPadding)

// ValidateSecret reports whether secret can key a TOTP generator. Every
// failure matches ErrInvalidSecret.
func ValidateSecret(secret string) error {
	_, err := decodeSecret(secret)
	return err
}

// NormalizeSecret trims whitespace and padding and upper-cases the secret.
// It does not validate.
func NormalizeSecret(secret string) string {
	return strings.ToUpper(strings.TrimRight(strings.TrimSpace(secret), "="))
}

func decodeSecret(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.Join(ErrInvalidSecret, ErrEmptySecret)
	}
	if !secretPattern.MatchString(secret) {
		return nil, errors.Join(ErrInvalidSecret, ErrSecretAlphabet)
	}

	key, err := secretEncoding.DecodeString(strings.ToUpper(strings.TrimRight(secret, "=")))
	if err != nil {
		return nil, errors.Join(ErrInvalidSecret, err)
	}
	if len(key) == 0 {
		return nil, errors.Join(ErrInvalidSecret, ErrEmptySecret)
	}
	return key, nil
}
