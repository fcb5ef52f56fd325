package totp

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Field enumerates the Record fields exchanged with URIs and manual input.
type Field int

const (
	FieldSecret Field = iota
	FieldIssuer
	FieldAccountID
	FieldDigits
	FieldPeriod
	FieldAlgorithm

	fieldCount
)

type fieldSpec struct {
	name     string             // record field name
	uriKey   string             // otpauth query parameter, empty when label-only
	inputKey string             // key in key=value manual input
	check    func(string) error // value constraint, nil accepts any text
}

// fields is the single source of field names and value constraints shared by
// the URI codec, the key=value parser and Params.Validate.
var fields = [fieldCount]fieldSpec{
	FieldSecret:    {name: "secret", uriKey: "secret", inputKey: "secret"},
	FieldIssuer:    {name: "issuer", uriKey: "issuer", inputKey: "issuer"},
	FieldAccountID: {name: "account_id", inputKey: "name"},
	FieldDigits:    {name: "digits", uriKey: "digits", inputKey: "digits", check: checkDigits},
	FieldPeriod:    {name: "period", uriKey: "period", inputKey: "period", check: checkPeriod},
	FieldAlgorithm: {name: "algorithm", uriKey: "algorithm", inputKey: "algorithm", check: checkAlgorithm},
}

func init() {
	seen := make(map[string]Field, len(fields))
	for i, def := range fields {
		f := Field(i)
		if def.name == "" || def.inputKey == "" {
			panic(fmt.Sprintf("totp: field %d has no name or input key", i))
		}
		if prev, ok := seen[def.inputKey]; ok {
			panic(fmt.Sprintf("totp: input key %q used by %s and %s", def.inputKey, prev, f))
		}
		seen[def.inputKey] = f
	}
}

// Fields returns every field in table order.
func Fields() []Field {
	out := make([]Field, 0, fieldCount)
	for i := range fieldCount {
		out = append(out, Field(i))
	}
	return out
}

// String returns the record field name.
func (f Field) String() string {
	if f < 0 || f >= fieldCount {
		return "Field(" + strconv.Itoa(int(f)) + ")"
	}
	return fields[f].name
}

// URIKey returns the otpauth query parameter name, or "" for label-only fields.
func (f Field) URIKey() string { return fields[f].uriKey }

// InputKey returns the key accepted by ParseKeyValue.
func (f Field) InputKey() string { return fields[f].inputKey }

// Check applies the field's value constraint.
func (f Field) Check(value string) error {
	if check := fields[f].check; check != nil {
		return check(value)
	}
	return nil
}

// FieldByInputKey resolves a manual input key such as "name".
func FieldByInputKey(key string) (Field, bool) {
	for i, def := range fields {
		if def.inputKey == key {
			return Field(i), true
		}
	}
	return 0, false
}

// InputKeys lists the keys accepted by ParseKeyValue in table order.
func InputKeys() []string {
	keys := make([]string, 0, fieldCount)
	for _, def := range fields {
		keys = append(keys, def.inputKey)
	}
	return keys
}

// Values holds decoded field text. Only present, non-empty fields are set.
type Values map[Field]string

// Params converts the text values into Params, leaving absent fields zero.
func (v Values) Params() (Params, error) {
	var p Params
	var errs []error
	for f, raw := range v {
		if err := f.Check(raw); err != nil {
			errs = append(errs, err)
			continue
		}
		switch f {
		case FieldSecret:
			p.Secret = raw
		case FieldIssuer:
			p.Issuer = raw
		case FieldAccountID:
			p.AccountID = raw
		case FieldDigits:
			p.Digits, _ = strconv.Atoi(strings.TrimSpace(raw))
		case FieldPeriod:
			p.Period, _ = strconv.Atoi(strings.TrimSpace(raw))
		case FieldAlgorithm:
			p.Algorithm, _ = ParseAlgorithm(raw)
		}
	}
	if len(errs) > 0 {
		return Params{}, errors.Join(append([]error{ErrParse}, errs...)...)
	}
	return p, nil
}

func (v Values) set(f Field, value string) {
	if value != "" {
		v[f] = value
	}
}

func checkDigits(value string) error {
	n, err := parseInt(FieldDigits, value)
	if err != nil {
		return err
	}
	if n < MinDigits || n > MaxDigits {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrDigitsOutOfRange, n, MinDigits, MaxDigits)
	}
	return nil
}

func checkPeriod(value string) error {
	n, err := parseInt(FieldPeriod, value)
	if err != nil {
		return err
	}
	if n < MinPeriod || n > MaxPeriod {
		return fmt.Errorf("%w: %d not in [%d, %d]", ErrPeriodOutOfRange, n, MinPeriod, MaxPeriod)
	}
	return nil
}

func checkAlgorithm(value string) error {
	_, err := ParseAlgorithm(value)
	return err
}

func parseInt(f Field, value string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: %s=%q", ErrInvalidNumber, f, value)
	}
	return n, nil
}
