package totp_test

import (
	"encoding/base32"
	"strings"
	"testing"
	"time"

	"github.com/pquerna/otp"
	ptotp "github.com/pquerna/otp/totp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpvault/pkg/totp"
)

const (
	rfcSeedSHA1   = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQ"
	rfcSeedSHA256 = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZA"
	rfcSeedSHA512 = "GEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNBVGY3TQOJQGEZDGNA"
)

func mustRecord(t *testing.T, p totp.Params) totp.Record {
	t.Helper()
	rec, err := totp.NewRecord(p)
	require.NoError(t, err)
	return rec
}

func TestCompute_RFC6238Vectors(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		secret string
		alg    totp.Algorithm
		unix   int64
		want   string
	}{
		{name: "SHA1 at 59", secret: rfcSeedSHA1, alg: totp.AlgorithmSHA1, unix: 59, want: "94287082"},
		{name: "SHA256 at 59", secret: rfcSeedSHA256, alg: totp.AlgorithmSHA256, unix: 59, want: "46119246"},
		{name: "SHA512 at 59", secret: rfcSeedSHA512, alg: totp.AlgorithmSHA512, unix: 59, want: "90693936"},
		{name: "SHA1 at 1111111109", secret: rfcSeedSHA1, alg: totp.AlgorithmSHA1, unix: 1111111109, want: "07081804"},
		{name: "SHA256 at 1111111109", secret: rfcSeedSHA256, alg: totp.AlgorithmSHA256, unix: 1111111109, want: "68084774"},
		{name: "SHA512 at 1111111109", secret: rfcSeedSHA512, alg: totp.AlgorithmSHA512, unix: 1111111109, want: "25091201"},
		{name: "SHA1 at 1234567890", secret: rfcSeedSHA1, alg: totp.AlgorithmSHA1, unix: 1234567890, want: "89005924"},
		{name: "SHA256 at 2000000000", secret: rfcSeedSHA256, alg: totp.AlgorithmSHA256, unix: 2000000000, want: "90698825"},
		{name: "SHA512 at 20000000000", secret: rfcSeedSHA512, alg: totp.AlgorithmSHA512, unix: 20000000000, want: "47863826"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := mustRecord(t, totp.Params{Secret: tt.secret, Digits: 8, Algorithm: tt.alg})
			code := totp.Compute(rec, time.Unix(tt.unix, 0))
			assert.Equal(t, tt.want, code.Value)
		})
	}
}

func TestCompute_KnownSecret(t *testing.T) {
	t.Parallel()
	rec := mustRecord(t, totp.Params{Secret: "JBSWY3DPEHPK3PXP"})

	at := time.Unix(1111111109, 0)
	code := totp.Compute(rec, at)
	assert.Equal(t, "071271", code.Value)

	reference, err := ptotp.GenerateCodeCustom("JBSWY3DPEHPK3PXP", at, ptotp.ValidateOpts{
		Period:    30,
		Digits:    otp.DigitsSix,
		Algorithm: otp.AlgorithmSHA1,
	})
	require.NoError(t, err)
	assert.Equal(t, reference, code.Value)
}

func TestCompute_MatchesReferenceImplementation(t *testing.T) {
	t.Parallel()
	algorithms := map[totp.Algorithm]otp.Algorithm{
		totp.AlgorithmSHA1:   otp.AlgorithmSHA1,
		totp.AlgorithmSHA256: otp.AlgorithmSHA256,
		totp.AlgorithmSHA512: otp.AlgorithmSHA512,
	}

	secret, err := totp.GenerateSecret()
	require.NoError(t, err)

	for alg, refAlg := range algorithms {
		for _, digits := range []int{6, 7, 8} {
			for _, period := range []int{15, 30, 60, 120} {
				rec := mustRecord(t, totp.Params{Secret: secret, Digits: digits, Period: period, Algorithm: alg})
				at := time.Unix(1700000000+int64(digits*period), 0)

				want, err := ptotp.GenerateCodeCustom(secret, at, ptotp.ValidateOpts{
					Period:    uint(period),
					Digits:    otp.Digits(digits),
					Algorithm: refAlg,
				})
				require.NoError(t, err)
				assert.Equal(t, want, totp.Compute(rec, at).Value, "alg=%s digits=%d period=%d", alg, digits, period)
			}
		}
	}
}

func TestCompute_Deterministic(t *testing.T) {
	t.Parallel()
	rec := mustRecord(t, totp.Params{Secret: "JBSWY3DPEHPK3PXP", Digits: 8, Algorithm: totp.AlgorithmSHA256})
	at := time.Unix(1700000123, 500)

	assert.Equal(t, totp.Compute(rec, at), totp.Compute(rec, at))
}

func TestCompute_WindowStability(t *testing.T) {
	t.Parallel()
	rec := mustRecord(t, totp.Params{Secret: "JBSWY3DPEHPK3PXP"})

	// 1700000010 opens a 30 second window.
	first := totp.Compute(rec, time.Unix(1700000010, 0))
	last := totp.Compute(rec, time.Unix(1700000039, 0))
	next := totp.Compute(rec, time.Unix(1700000040, 0))

	assert.Equal(t, first.Value, last.Value)
	assert.Equal(t, first.ValidUntil, last.ValidUntil)
	assert.NotEqual(t, first.Value, next.Value)
}

func TestCompute_Remaining(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name          string
		period        int
		unix          int64
		wantRemaining int
	}{
		{name: "window start", period: 30, unix: 1700000010, wantRemaining: 30},
		{name: "mid window", period: 30, unix: 1700000025, wantRemaining: 15},
		{name: "last second", period: 30, unix: 1700000039, wantRemaining: 1},
		{name: "minimum period", period: 15, unix: 14, wantRemaining: 1},
		{name: "maximum period", period: 120, unix: 121, wantRemaining: 119},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			rec := mustRecord(t, totp.Params{Secret: "JBSWY3DPEHPK3PXP", Period: tt.period})
			at := time.Unix(tt.unix, 0)

			code := totp.Compute(rec, at)
			assert.Equal(t, tt.wantRemaining, code.SecondsRemaining)
			assert.Equal(t, at.Add(time.Duration(tt.wantRemaining)*time.Second), code.ValidUntil)
		})
	}
}

func TestCompute_ZeroPadding(t *testing.T) {
	t.Parallel()
	rec := mustRecord(t, totp.Params{Secret: "JBSWY3DPEHPK3PXP"})

	code := totp.Compute(rec, time.Unix(173550, 0))
	assert.Equal(t, "000021", code.Value)
	assert.Len(t, code.Value, 6)
}

func TestCompute_PanicsOnZeroRecord(t *testing.T) {
	t.Parallel()
	assert.Panics(t, func() {
		totp.Compute(totp.Record{}, time.Now())
	})
}

func TestVerify(t *testing.T) {
	t.Parallel()
	rec := mustRecord(t, totp.Params{Secret: "JBSWY3DPEHPK3PXP"})
	at := time.Unix(1111111109, 0)

	assert.True(t, totp.Verify(rec, "071271", at))
	assert.True(t, totp.Verify(rec, " 071271 ", at))
	assert.False(t, totp.Verify(rec, "071272", at))
	assert.False(t, totp.Verify(rec, "071271", at.Add(30*time.Second)))
	assert.False(t, totp.Verify(rec, "", at))
}

func TestNow(t *testing.T) {
	t.Parallel()
	rec := mustRecord(t, totp.Params{Secret: "JBSWY3DPEHPK3PXP", Digits: 7})

	code := totp.Now(rec)
	assert.Len(t, code.Value, 7)
	assert.True(t, code.ValidUntil.After(time.Now().Add(-time.Second)))
	assert.GreaterOrEqual(t, code.SecondsRemaining, 1)
	assert.LessOrEqual(t, code.SecondsRemaining, 30)
}

func TestGenerateHOTP_RFC4226Vectors(t *testing.T) {
	t.Parallel()
	key := []byte("12345678901234567890")
	want := []int{755224, 287082, 359152, 969429, 338314, 254676, 287922, 162583, 399871, 520489}

	for counter, expected := range want {
		assert.Equal(t, expected, totp.GenerateHOTP(key, uint64(counter), 6, totp.AlgorithmSHA1), "counter %d", counter)
	}
}

func TestGenerateSecret(t *testing.T) {
	t.Parallel()
	secret, err := totp.GenerateSecret()
	require.NoError(t, err)
	require.NoError(t, totp.ValidateSecret(secret))

	key, err := base32.StdEncoding.WithPadding(base32.NoPadding).DecodeString(secret)
	require.NoError(t, err)
	assert.Len(t, key, 20)
	assert.Equal(t, strings.ToUpper(secret), secret)
}
