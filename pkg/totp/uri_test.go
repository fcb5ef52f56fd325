package totp_test

import (
	"testing"

	"github.com/pquerna/otp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/otpvault/pkg/totp"
)

func TestBuildURI(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		params totp.Params
		want   string
	}{
		{
			name:   "defaults",
			params: totp.Params{Secret: "jbswy3dpehpk3pxp", Issuer: "Acme", AccountID: "alice@example.com"},
			want:   "otpauth://totp/Acme:alice%40example.com?period=30&digits=6&algorithm=SHA1&secret=JBSWY3DPEHPK3PXP&issuer=Acme",
		},
		{
			name: "special characters",
			params: totp.Params{
				Secret:    "JBSWY3DPEHPK3PXP",
				Issuer:    "Test & App",
				AccountID: "test+user@example.com",
				Digits:    8,
				Period:    60,
				Algorithm: totp.AlgorithmSHA512,
			},
			want: "otpauth://totp/Test%20%26%20App:test%2Buser%40example.com?period=60&digits=8&algorithm=SHA512&secret=JBSWY3DPEHPK3PXP&issuer=Test%20%26%20App",
		},
		{
			name:   "empty labels",
			params: totp.Params{Secret: "JBSWY3DPEHPK3PXP"},
			want:   "otpauth://totp/:?period=30&digits=6&algorithm=SHA1&secret=JBSWY3DPEHPK3PXP&issuer=",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, totp.BuildURI(mustRecord(t, tt.params)))
		})
	}
}

func TestURIRoundTrip(t *testing.T) {
	t.Parallel()
	cases := []totp.Params{
		{Secret: "JBSWY3DPEHPK3PXP"},
		{Secret: "JBSWY3DPEHPK3PXP", Issuer: "Acme", AccountID: "alice@example.com"},
		{Secret: "GEZDGNBVGY3TQOJQ", Issuer: "a:b", AccountID: "c:d", Digits: 7, Period: 15, Algorithm: totp.AlgorithmSHA256},
		{Secret: "GEZDGNBVGY3TQOJQ", Issuer: "Ünïcødé Bank", AccountID: "José Ñ", Digits: 8, Period: 120, Algorithm: totp.AlgorithmSHA512},
		{Secret: "GEZDGNBVGY3TQOJQ", Issuer: "100% & more?", AccountID: "x/y#z=1+2"},
		{Secret: "GEZDGNBVGY3TQOJQ", AccountID: "only-account"},
		{Secret: "GEZDGNBVGY3TQOJQ", Issuer: "only-issuer"},
	}

	for _, p := range cases {
		rec := mustRecord(t, p)
		got, err := totp.RecordFromURI(totp.BuildURI(rec))
		require.NoError(t, err, "uri %s", totp.BuildURI(rec))
		assert.Equal(t, rec, got)
	}
}

func TestBuildURI_ReadableByAuthenticatorLibraries(t *testing.T) {
	t.Parallel()
	rec := mustRecord(t, totp.Params{
		Secret:    "JBSWY3DPEHPK3PXP",
		Issuer:    "Acme Corp",
		AccountID: "alice@example.com",
		Digits:    8,
		Period:    60,
		Algorithm: totp.AlgorithmSHA256,
	})

	key, err := otp.NewKeyFromURL(totp.BuildURI(rec))
	require.NoError(t, err)

	assert.Equal(t, "totp", key.Type())
	assert.Equal(t, "Acme Corp", key.Issuer())
	assert.Equal(t, "alice@example.com", key.AccountName())
	assert.Equal(t, "JBSWY3DPEHPK3PXP", key.Secret())
	assert.Equal(t, uint64(60), key.Period())
	assert.Equal(t, otp.Digits(8), key.Digits())
	assert.Equal(t, otp.AlgorithmSHA256, key.Algorithm())
}

func TestParseURI(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		uri     string
		want    totp.Values
		wantErr error
	}{
		{
			name: "full",
			uri:  "otpauth://totp/Acme:alice@example.com?secret=JBSWY3DPEHPK3PXP&issuer=Acme&algorithm=SHA256&digits=8&period=60",
			want: totp.Values{
				totp.FieldSecret:    "JBSWY3DPEHPK3PXP",
				totp.FieldIssuer:    "Acme",
				totp.FieldAccountID: "alice@example.com",
				totp.FieldAlgorithm: "SHA256",
				totp.FieldDigits:    "8",
				totp.FieldPeriod:    "60",
			},
		},
		{
			name: "issuer only in query",
			uri:  "otpauth://totp/alice?secret=JBSWY3DPEHPK3PXP&issuer=Acme",
			want: totp.Values{
				totp.FieldSecret:    "JBSWY3DPEHPK3PXP",
				totp.FieldIssuer:    "Acme",
				totp.FieldAccountID: "alice",
			},
		},
		{
			name: "issuer only in label",
			uri:  "otpauth://totp/Acme:alice?secret=JBSWY3DPEHPK3PXP",
			want: totp.Values{
				totp.FieldSecret:    "JBSWY3DPEHPK3PXP",
				totp.FieldIssuer:    "Acme",
				totp.FieldAccountID: "alice",
			},
		},
		{
			name: "encoded separator with space",
			uri:  "otpauth://totp/Big%20Co%3A%20bob?secret=JBSWY3DPEHPK3PXP",
			want: totp.Values{
				totp.FieldSecret:    "JBSWY3DPEHPK3PXP",
				totp.FieldIssuer:    "Big Co",
				totp.FieldAccountID: "bob",
			},
		},
		{
			name: "uppercase scheme and unknown parameters",
			uri:  "OTPAUTH://TOTP/x?secret=GE&image=https%3A%2F%2Fexample.com%2Flogo.png",
			want: totp.Values{
				totp.FieldSecret:    "GE",
				totp.FieldAccountID: "x",
			},
		},
		{name: "wrong scheme", uri: "https://totp/x?secret=GE", wantErr: totp.ErrInvalidScheme},
		{name: "hotp", uri: "otpauth://hotp/x?secret=GE&counter=1", wantErr: totp.ErrUnsupportedType},
		{name: "missing secret", uri: "otpauth://totp/Acme:alice?issuer=Acme", wantErr: totp.ErrMissingSecret},
		{name: "empty secret", uri: "otpauth://totp/Acme:alice?secret=", wantErr: totp.ErrMissingSecret},
		{name: "non integer digits", uri: "otpauth://totp/x?secret=GE&digits=six", wantErr: totp.ErrInvalidNumber},
		{name: "digits 5", uri: "otpauth://totp/x?secret=GE&digits=5", wantErr: totp.ErrDigitsOutOfRange},
		{name: "digits 9", uri: "otpauth://totp/x?secret=GE&digits=9", wantErr: totp.ErrDigitsOutOfRange},
		{name: "period 14", uri: "otpauth://totp/x?secret=GE&period=14", wantErr: totp.ErrPeriodOutOfRange},
		{name: "period 121", uri: "otpauth://totp/x?secret=GE&period=121", wantErr: totp.ErrPeriodOutOfRange},
		{name: "unknown algorithm", uri: "otpauth://totp/x?secret=GE&algorithm=MD5", wantErr: totp.ErrUnsupportedAlgorithm},
		{name: "issuer mismatch", uri: "otpauth://totp/Acme:alice?secret=GE&issuer=Other", wantErr: totp.ErrIssuerMismatch},
		{name: "not a uri", uri: "::::", wantErr: totp.ErrParse},
		{name: "bad escape", uri: "otpauth://totp/a%zz?secret=GE", wantErr: totp.ErrParse},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := totp.ParseURI(tt.uri)
			if tt.wantErr != nil {
				require.Error(t, err)
				assert.ErrorIs(t, err, totp.ErrParse)
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, got)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseURI_BoundaryPeriodsAccepted(t *testing.T) {
	t.Parallel()
	for _, uri := range []string{
		"otpauth://totp/x?secret=GE&period=15",
		"otpauth://totp/x?secret=GE&period=120",
	} {
		rec, err := totp.RecordFromURI(uri)
		require.NoError(t, err, uri)
		assert.False(t, rec.IsZero())
	}
}

func TestRecordFromURI_InvalidSecret(t *testing.T) {
	t.Parallel()
	_, err := totp.RecordFromURI("otpauth://totp/x?secret=NOT-BASE32")
	assert.ErrorIs(t, err, totp.ErrInvalidSecret)
	assert.NotErrorIs(t, err, totp.ErrParse)
}

func TestParseKeyValue(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name    string
		input   string
		want    totp.Values
		wantErr error
	}{
		{
			name:  "all keys",
			input: "secret=JBSWY3DPEHPK3PXP, issuer=Acme, name=alice, digits=8, period=60, algorithm=sha256",
			want: totp.Values{
				totp.FieldSecret:    "JBSWY3DPEHPK3PXP",
				totp.FieldIssuer:    "Acme",
				totp.FieldAccountID: "alice",
				totp.FieldDigits:    "8",
				totp.FieldPeriod:    "60",
				totp.FieldAlgorithm: "sha256",
			},
		},
		{
			name:  "unknown keys ignored",
			input: "secret=JBSWY3DPEHPK3PXP,issuer=Acme,color=blue,account_id=ignored",
			want: totp.Values{
				totp.FieldSecret: "JBSWY3DPEHPK3PXP",
				totp.FieldIssuer: "Acme",
			},
		},
		{
			name:  "padded secret",
			input: "secret=GE======,issuer=Acme",
			want: totp.Values{
				totp.FieldSecret: "GE======",
				totp.FieldIssuer: "Acme",
			},
		},
		{name: "missing issuer", input: "secret=JBSWY3DPEHPK3PXP", wantErr: totp.ErrMissingIssuer},
		{name: "missing secret", input: "issuer=Acme,name=alice", wantErr: totp.ErrMissingSecret},
		{name: "empty", input: "", wantErr: totp.ErrMissingSecret},
		{name: "pair without value separator", input: "secret=GE,issuer", wantErr: totp.ErrInvalidPair},
		{name: "digits out of range", input: "secret=GE,issuer=Acme,digits=9", wantErr: totp.ErrDigitsOutOfRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, err := totp.ParseKeyValue(tt.input)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, totp.ErrParse)
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRecordFromKeyValue(t *testing.T) {
	t.Parallel()
	rec, err := totp.RecordFromKeyValue("secret=jbswy3dpehpk3pxp,issuer=Acme,name=alice")
	require.NoError(t, err)
	assert.Equal(t, "JBSWY3DPEHPK3PXP", rec.Secret())
	assert.Equal(t, "alice", rec.AccountID())

	_, err = totp.RecordFromKeyValue("secret=123,issuer=Acme")
	assert.ErrorIs(t, err, totp.ErrInvalidSecret)
}
