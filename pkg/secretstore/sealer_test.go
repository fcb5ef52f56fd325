package secretstore_test

import (
	"encoding/base64"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpvault/pkg/secretstore"
)

func newSealer(t *testing.T) *secretstore.Sealer {
	t.Helper()
	key, err := secretstore.GenerateKey()
	require.NoError(t, err)
	s, err := secretstore.NewSealer(key)
	require.NoError(t, err)
	return s
}

func TestSealer_SealOpen(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name      string
		plainText string
	}{
		{name: "secret", plainText: "JBSWY3DPEHPK3PXP"},
		{name: "empty", plainText: ""},
		{name: "long", plainText: "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"},
	}

	s := newSealer(t)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			sealed, err := s.Seal(tt.plainText)
			require.NoError(t, err)
			assert.NotEmpty(t, sealed)

			opened, err := s.Open(sealed)
			require.NoError(t, err)
			assert.Equal(t, tt.plainText, opened)
		})
	}
}

func TestSealer_SealIsRandomized(t *testing.T) {
	t.Parallel()
	s := newSealer(t)

	a, err := s.Seal("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)
	b, err := s.Seal("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestSealer_OpenInvalid(t *testing.T) {
	t.Parallel()
	s := newSealer(t)
	sealed, err := s.Seal("JBSWY3DPEHPK3PXP")
	require.NoError(t, err)

	raw, err := base64.StdEncoding.DecodeString(sealed)
	require.NoError(t, err)
	raw[len(raw)-1] ^= 0xff

	tests := []struct {
		name   string
		sealed string
	}{
		{name: "invalid base64", sealed: "invalid-base64!@#$"},
		{name: "too short", sealed: base64.StdEncoding.EncodeToString([]byte("short"))},
		{name: "tampered", sealed: base64.StdEncoding.EncodeToString(raw)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := s.Open(tt.sealed)
			assert.ErrorIs(t, err, secretstore.ErrFailedToDecryptSecret)
		})
	}

	other := newSealer(t)
	_, err = other.Open(sealed)
	assert.ErrorIs(t, err, secretstore.ErrFailedToDecryptSecret)
}

func TestSealer_Fingerprint(t *testing.T) {
	t.Parallel()
	s := newSealer(t)

	a := s.Fingerprint("JBSWY3DPEHPK3PXP")
	assert.Len(t, a, 32)
	assert.Equal(t, a, s.Fingerprint("JBSWY3DPEHPK3PXP"))
	assert.NotEqual(t, a, s.Fingerprint("GEZDGNBVGY3TQOJQ"))
	assert.NotEqual(t, a, newSealer(t).Fingerprint("JBSWY3DPEHPK3PXP"))
}

func TestNewSealer_InvalidKey(t *testing.T) {
	t.Parallel()
	_, err := secretstore.NewSealer(make([]byte, 16))
	assert.ErrorIs(t, err, secretstore.ErrInvalidEncryptionKeyLength)
}

func TestCryptoConfig_Key(t *testing.T) {
	t.Parallel()
	encoded, err := secretstore.GenerateEncodedKey()
	require.NoError(t, err)

	key, err := secretstore.CryptoConfig{EncryptionKey: encoded}.Key()
	require.NoError(t, err)
	assert.Len(t, key, secretstore.KeySize)

	_, err = secretstore.NewSealerFromConfig(secretstore.CryptoConfig{EncryptionKey: encoded})
	require.NoError(t, err)

	tests := []struct {
		name    string
		value   string
		wantErr error
	}{
		{name: "unset", value: "", wantErr: secretstore.ErrEncryptionKeyNotSet},
		{name: "short", value: base64.StdEncoding.EncodeToString(make([]byte, 16)), wantErr: secretstore.ErrInvalidEncryptionKeyLength},
		{name: "not base64", value: "%%%", wantErr: secretstore.ErrFailedToLoadEncryptionKey},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := secretstore.CryptoConfig{EncryptionKey: tt.value}.Key()
			assert.ErrorIs(t, err, secretstore.ErrFailedToLoadEncryptionKey)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
