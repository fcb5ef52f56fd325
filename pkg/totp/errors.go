package totp

import "errors"

var (
	// ErrInvalidSecret reports a secret that is empty, not base32 or fails to decode.
	ErrInvalidSecret = errors.New("invalid TOTP secret")
	// ErrParse reports malformed otpauth URI or key=value input, including
	// out-of-range digits, period or an unsupported algorithm.
	ErrParse = errors.New("failed to parse TOTP parameters")
	// ErrDuplicateSecret is returned by storage when the secret is already registered.
	ErrDuplicateSecret = errors.New("TOTP secret already exists")

	ErrEmptySecret          = errors.New("secret is empty")
	ErrSecretAlphabet       = errors.New("secret contains non-base32 characters")
	ErrMissingSecret        = errors.New("missing secret")
	ErrMissingIssuer        = errors.New("missing issuer")
	ErrInvalidScheme        = errors.New("URI scheme must be otpauth")
	ErrUnsupportedType      = errors.New("only totp URIs are supported")
	ErrIssuerMismatch       = errors.New("label issuer does not match issuer parameter")
	ErrInvalidPair          = errors.New("expected key=value pair")
	ErrInvalidNumber        = errors.New("value is not an integer")
	ErrDigitsOutOfRange     = errors.New("digits out of range")
	ErrPeriodOutOfRange     = errors.New("period out of range")
	ErrUnsupportedAlgorithm = errors.New("unsupported algorithm")
)
