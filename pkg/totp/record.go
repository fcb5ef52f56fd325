package totp

import (
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"errors"
	"fmt"
	"hash"
	"strconv"
	"strings"
)

const (
	DefaultDigits    = 6             // Standard 6-digit TOTP codes
	DefaultPeriod    = 30            // 30-second validity window (RFC 6238 standard)
	DefaultAlgorithm = AlgorithmSHA1 // HMAC-SHA1 algorithm (RFC 6238 standard)

	MinDigits = 6
	MaxDigits = 8
	MinPeriod = 15
	MaxPeriod = 120
)

// Algorithm names the HMAC hash function used to derive codes.
type Algorithm string

const (
	AlgorithmSHA1   Algorithm = "SHA1"
	AlgorithmSHA256 Algorithm = "SHA256"
	AlgorithmSHA512 Algorithm = "SHA512"
)

// Algorithms lists every supported algorithm in URI form.
var Algorithms = []Algorithm{AlgorithmSHA1, AlgorithmSHA256, AlgorithmSHA512}

// ParseAlgorithm matches name case-insensitively against the supported algorithms.
func ParseAlgorithm(name string) (Algorithm, error) {
	candidate := Algorithm(strings.ToUpper(strings.TrimSpace(name)))
	for _, a := range Algorithms {
		if a == candidate {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnsupportedAlgorithm, name)
}

// Hash returns the hash constructor for HMAC. Unknown values fall back to SHA1,
// records never carry one.
func (a Algorithm) Hash() func() hash.Hash {
	switch a {
	case AlgorithmSHA256:
		return sha256.New
	case AlgorithmSHA512:
		return sha512.New
	default:
		return sha1.New
	}
}

func (a Algorithm) String() string { return string(a) }

// Params is the editable form of a Record. Zero-valued Digits, Period and
// Algorithm are replaced with defaults by NewRecord.
type Params struct {
	Secret    string    // Base32-encoded shared secret (required)
	Issuer    string    // Service name shown by authenticator apps
	AccountID string    // Account label, usually an email
	Digits    int       // Code length, 6-8
	Period    int       // Window length in seconds, 15-120
	Algorithm Algorithm // SHA1, SHA256 or SHA512
}

// WithDefaults returns a copy with zero-valued fields set to RFC 6238 defaults.
func (p Params) WithDefaults() Params {
	if p.Algorithm == "" {
		p.Algorithm = DefaultAlgorithm
	}
	if p.Digits == 0 {
		p.Digits = DefaultDigits
	}
	if p.Period == 0 {
		p.Period = DefaultPeriod
	}
	return p
}

// Validate checks every field against the field table. Secret failures match
// ErrInvalidSecret, all other failures match ErrParse.
func (p Params) Validate() error {
	var errs []error
	if err := ValidateSecret(p.Secret); err != nil {
		errs = append(errs, err)
	}

	var parseErrs []error
	if err := checkDigits(strconv.Itoa(p.Digits)); err != nil {
		parseErrs = append(parseErrs, err)
	}
	if err := checkPeriod(strconv.Itoa(p.Period)); err != nil {
		parseErrs = append(parseErrs, err)
	}
	if err := checkAlgorithm(string(p.Algorithm)); err != nil {
		parseErrs = append(parseErrs, err)
	}
	if len(parseErrs) > 0 {
		errs = append(errs, errors.Join(append([]error{ErrParse}, parseErrs...)...))
	}

	return errors.Join(errs...)
}

func (p Params) normalize() Params {
	p.Secret = NormalizeSecret(p.Secret)
	p.Issuer = strings.TrimSpace(p.Issuer)
	p.AccountID = strings.TrimSpace(p.AccountID)
	if p.Algorithm != "" {
		if a, err := ParseAlgorithm(string(p.Algorithm)); err == nil {
			p.Algorithm = a
		}
	}
	return p
}

// Record is a validated TOTP secret with its generation parameters.
// Records are immutable; use Params and NewRecord to derive a changed copy.
type Record struct {
	secret    string
	issuer    string
	accountID string
	digits    int
	period    int
	algorithm Algorithm
}

// NewRecord normalizes p, applies defaults and validates the result.
func NewRecord(p Params) (Record, error) {
	p = p.normalize().WithDefaults()
	if err := p.Validate(); err != nil {
		return Record{}, err
	}
	return Record{
		secret:    p.Secret,
		issuer:    p.Issuer,
		accountID: p.AccountID,
		digits:    p.Digits,
		period:    p.Period,
		algorithm: p.Algorithm,
	}, nil
}

// NewRecordFromValues builds a Record from decoded field values, using
// defaults for the fields that are absent.
func NewRecordFromValues(v Values) (Record, error) {
	p, err := v.Params()
	if err != nil {
		return Record{}, err
	}
	return NewRecord(p)
}

func (r Record) Secret() string       { return r.secret }
func (r Record) Issuer() string       { return r.issuer }
func (r Record) AccountID() string    { return r.accountID }
func (r Record) Digits() int          { return r.digits }
func (r Record) Period() int          { return r.period }
func (r Record) Algorithm() Algorithm { return r.algorithm }

// IsZero reports whether r was not produced by NewRecord.
func (r Record) IsZero() bool { return r.secret == "" }

// Params returns an editable copy of the record fields.
func (r Record) Params() Params {
	return Params{
		Secret:    r.secret,
		Issuer:    r.issuer,
		AccountID: r.accountID,
		Digits:    r.digits,
		Period:    r.period,
		Algorithm: r.algorithm,
	}
}

// Values returns the record as a field map. Empty issuer and account are omitted.
func (r Record) Values() Values {
	v := Values{
		FieldSecret:    r.secret,
		FieldDigits:    strconv.Itoa(r.digits),
		FieldPeriod:    strconv.Itoa(r.period),
		FieldAlgorithm: r.algorithm.String(),
	}
	if r.issuer != "" {
		v[FieldIssuer] = r.issuer
	}
	if r.accountID != "" {
		v[FieldAccountID] = r.accountID
	}
	return v
}
