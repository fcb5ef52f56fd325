package totp

import (
	"errors"
	"fmt"
	"strings"
)

// ParseKeyValue decodes manual input of the form "secret=ABC,issuer=Acme,name=bob".
// Keys are matched against InputKeys, unknown keys are ignored. Secret and
// issuer are mandatory.
func ParseKeyValue(text string) (Values, error) {
	values := Values{}
	var errs []error

	for _, pair := range strings.Split(text, ",") {
		if strings.TrimSpace(pair) == "" {
			continue
		}
		key, value, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, errors.Join(ErrParse, fmt.Errorf("%w: %q", ErrInvalidPair, strings.TrimSpace(pair)))
		}

		f, known := FieldByInputKey(strings.ToLower(strings.TrimSpace(key)))
		if !known {
			continue
		}
		value = strings.TrimSpace(value)
		if value == "" {
			continue
		}
		if err := f.Check(value); err != nil {
			errs = append(errs, err)
			continue
		}
		values[f] = value
	}

	if _, ok := values[FieldSecret]; !ok {
		errs = append(errs, ErrMissingSecret)
	}
	if _, ok := values[FieldIssuer]; !ok {
		errs = append(errs, ErrMissingIssuer)
	}
	if len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrParse}, errs...)...)
	}

	return values, nil
}

// RecordFromKeyValue decodes and validates manual key=value input.
func RecordFromKeyValue(text string) (Record, error) {
	values, err := ParseKeyValue(text)
	if err != nil {
		return Record{}, err
	}
	return NewRecordFromValues(values)
}
