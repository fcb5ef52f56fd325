package secretstore

import "errors"

var (
	ErrNotFound    = errors.New("secret not found")
	ErrCorruptData = errors.New("stored secret cannot be restored")

	ErrFailedToEncryptSecret         = errors.New("failed to encrypt TOTP secret")
	ErrFailedToDecryptSecret         = errors.New("failed to decrypt TOTP secret")
	ErrFailedToLoadEncryptionKey     = errors.New("failed to load encryption key")
	ErrFailedToGenerateEncryptionKey = errors.New("failed to generate encryption key")
	ErrEncryptionKeyNotSet           = errors.New("encryption key is not set, use TOTP_ENCRYPTION_KEY")
	ErrInvalidEncryptionKeyLength    = errors.New("encryption key must be 32 bytes")
	ErrInvalidCipherTooShort         = errors.New("ciphertext shorter than nonce")
)
