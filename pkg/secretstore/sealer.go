package secretstore

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"io"

	"golang.org/x/crypto/hkdf"
)

// KeySize is the master key length required for AES-256.
const KeySize = 32

const (
	sealLabel        = "otpvault/seal/v1"
	fingerprintLabel = "otpvault/fingerprint/v1"
)

// Sealer encrypts secrets with AES-256-GCM and derives keyed fingerprints so
// uniqueness can be enforced without storing the plain secret.
// Sealing and fingerprinting use independent subkeys of the master key.
type Sealer struct {
	aead   cipher.AEAD
	macKey []byte
}

// NewSealer derives the subkeys from a 32-byte master key.
func NewSealer(key []byte) (*Sealer, error) {
	if len(key) != KeySize {
		return nil, ErrInvalidEncryptionKeyLength
	}

	sealKey, err := deriveKey(key, sealLabel)
	if err != nil {
		return nil, err
	}
	macKey, err := deriveKey(key, fingerprintLabel)
	if err != nil {
		return nil, err
	}

	block, err := aes.NewCipher(sealKey)
	if err != nil {
		return nil, err
	}
	aead, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	return &Sealer{aead: aead, macKey: macKey}, nil
}

// NewSealerFromConfig decodes the configured key and builds a Sealer.
func NewSealerFromConfig(cfg CryptoConfig) (*Sealer, error) {
	key, err := cfg.Key()
	if err != nil {
		return nil, err
	}
	return NewSealer(key)
}

// Seal encrypts plainText and returns nonce||ciphertext as base64.
func (s *Sealer) Seal(plainText string) (string, error) {
	nonce := make([]byte, s.aead.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", errors.Join(ErrFailedToEncryptSecret, err)
	}

	cipherText := s.aead.Seal(nonce, nonce, []byte(plainText), nil)
	return base64.StdEncoding.EncodeToString(cipherText), nil
}

// Open reverses Seal.
func (s *Sealer) Open(sealed string) (string, error) {
	cipherText, err := base64.StdEncoding.DecodeString(sealed)
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptSecret, err)
	}

	nonceSize := s.aead.NonceSize()
	if len(cipherText) < nonceSize {
		return "", errors.Join(ErrFailedToDecryptSecret, ErrInvalidCipherTooShort)
	}
	nonce, cipherText := cipherText[:nonceSize], cipherText[nonceSize:]

	plainText, err := s.aead.Open(nil, nonce, cipherText, nil)
	if err != nil {
		return "", errors.Join(ErrFailedToDecryptSecret, err)
	}

	return string(plainText), nil
}

// Fingerprint returns HMAC-SHA256 of the secret. Equal secrets give equal
// fingerprints under the same master key.
func (s *Sealer) Fingerprint(secret string) []byte {
	mac := hmac.New(sha256.New, s.macKey)
	mac.Write([]byte(secret))
	return mac.Sum(nil)
}

// GenerateKey creates a random master key.
func GenerateKey() ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := rand.Read(key); err != nil {
		return nil, errors.Join(ErrFailedToGenerateEncryptionKey, err)
	}
	return key, nil
}

// GenerateEncodedKey returns a random master key in the TOTP_ENCRYPTION_KEY format.
func GenerateEncodedKey() (string, error) {
	key, err := GenerateKey()
	if err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(key), nil
}

func deriveKey(master []byte, label string) ([]byte, error) {
	key := make([]byte, KeySize)
	if _, err := io.ReadFull(hkdf.New(sha256.New, master, nil, []byte(label)), key); err != nil {
		return nil, errors.Join(ErrFailedToLoadEncryptionKey, err)
	}
	return key, nil
}
