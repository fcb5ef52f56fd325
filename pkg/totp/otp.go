package totp

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/subtle"
	"encoding/binary"
	"errors"
	"fmt"
	"math"
	"strings"
	"time"
)

// ErrFailedToGenerateSecret is returned when the random source fails.
var ErrFailedToGenerateSecret = errors.New("failed to generate TOTP secret")

// Code is a generated one-time password and the end of its validity window.
type Code struct {
	Value            string    // Zero-padded decimal code
	ValidUntil       time.Time // Instant the window closes
	SecondsRemaining int       // Whole seconds left in the window, 1..period
}

// GenerateSecret creates a new Base32-encoded 160-bit secret without padding.
func GenerateSecret() (string, error) {
	secret := make([]byte, 20) // RFC 4226 recommended key length
	if _, err := rand.Read(secret); err != nil {
		return "", errors.Join(ErrFailedToGenerateSecret, err)
	}
	return secretEncoding.EncodeToString(secret), nil
}

// Compute returns the RFC 6238 code for rec at the given instant.
// rec must come from NewRecord; a secret that fails to decode panics.
func Compute(rec Record, at time.Time) Code {
	key, err := decodeSecret(rec.secret)
	if err != nil {
		panic(fmt.Sprintf("totp: record secret does not decode: %v", err))
	}

	unix := at.Unix()
	period := int64(rec.period)
	counter := floorDiv(unix, period)
	remaining := period - (unix - counter*period)

	code := GenerateHOTP(key, uint64(counter), rec.digits, rec.algorithm)

	return Code{
		Value:            fmt.Sprintf("%0*d", rec.digits, code),
		ValidUntil:       at.Add(time.Duration(remaining) * time.Second),
		SecondsRemaining: int(remaining),
	}
}

// Now computes the code for the current wall-clock time.
func Now(rec Record) Code {
	return Compute(rec, time.Now())
}

// Verify reports whether code matches the window containing at.
// Neighbouring windows are not accepted.
func Verify(rec Record, code string, at time.Time) bool {
	expected := Compute(rec, at).Value
	return subtle.ConstantTimeCompare([]byte(expected), []byte(strings.TrimSpace(code))) == 1
}

// GenerateHOTP implements the RFC 4226 HMAC-based One-Time Password algorithm
// with a selectable hash function.
func GenerateHOTP(key []byte, counter uint64, digits int, alg Algorithm) int {
	var msg [8]byte
	binary.BigEndian.PutUint64(msg[:], counter)

	mac := hmac.New(alg.Hash(), key)
	mac.Write(msg[:])
	sum := mac.Sum(nil)

	// Dynamic truncation: low nibble of the last byte selects a 4-byte window.
	offset := sum[len(sum)-1] & 0x0f
	code := int(binary.BigEndian.Uint32(sum[offset:offset+4]) & 0x7fffffff)

	return code % int(math.Pow10(digits))
}

func floorDiv(a, b int64) int64 {
	q := a / b
	if (a%b != 0) && ((a < 0) != (b < 0)) {
		q--
	}
	return q
}
