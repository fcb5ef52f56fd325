package totp

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
)

const (
	uriScheme = "otpauth"
	uriType   = "totp"
)

// ParseURI decodes an otpauth://totp URI into field values.
// The label is "issuer:account" or just "account"; an issuer given both in
// the label and as a query parameter must match. Only fields that are present
// and non-empty are returned, callers merge defaults via NewRecordFromValues.
// The key format is described at
// https://github.com/google/google-authenticator/wiki/Key-Uri-Format
func ParseURI(raw string) (Values, error) {
	u, err := url.Parse(strings.TrimSpace(raw))
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}
	if !strings.EqualFold(u.Scheme, uriScheme) {
		return nil, errors.Join(ErrParse, ErrInvalidScheme)
	}
	if !strings.EqualFold(u.Host, uriType) {
		return nil, errors.Join(ErrParse, fmt.Errorf("%w: %q", ErrUnsupportedType, u.Host))
	}

	labelIssuer, account, err := parseLabel(u.EscapedPath())
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	query, err := url.ParseQuery(u.RawQuery)
	if err != nil {
		return nil, errors.Join(ErrParse, err)
	}

	issuer := labelIssuer
	if queryIssuer := strings.TrimSpace(query.Get(FieldIssuer.URIKey())); queryIssuer != "" {
		if labelIssuer != "" && labelIssuer != queryIssuer {
			return nil, errors.Join(ErrParse, fmt.Errorf("%w: %q != %q", ErrIssuerMismatch, labelIssuer, queryIssuer))
		}
		issuer = queryIssuer
	}

	values := Values{}
	values.set(FieldIssuer, issuer)
	values.set(FieldAccountID, account)

	var errs []error
	for _, f := range Fields() {
		key := f.URIKey()
		if key == "" || f == FieldIssuer {
			continue
		}
		value := strings.TrimSpace(query.Get(key))
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
	if len(errs) > 0 {
		return nil, errors.Join(append([]error{ErrParse}, errs...)...)
	}

	return values, nil
}

// RecordFromURI decodes and validates an otpauth URI in one step.
func RecordFromURI(raw string) (Record, error) {
	values, err := ParseURI(raw)
	if err != nil {
		return Record{}, err
	}
	return NewRecordFromValues(values)
}

// BuildURI renders rec as an otpauth URI. RecordFromURI(BuildURI(rec)) == rec.
func BuildURI(rec Record) string {
	issuer := encodeComponent(rec.issuer)
	return fmt.Sprintf("otpauth://totp/%s:%s?period=%d&digits=%d&algorithm=%s&secret=%s&issuer=%s",
		issuer,
		encodeComponent(rec.accountID),
		rec.period,
		rec.digits,
		rec.algorithm,
		rec.secret,
		issuer,
	)
}

// parseLabel splits an escaped label at the first literal colon, falling back
// to an encoded one ("Issuer%3Aaccount") when no literal colon is present.
func parseLabel(escaped string) (issuer, account string, err error) {
	label := strings.TrimPrefix(escaped, "/")

	rawIssuer, rawAccount := "", label
	if i := strings.IndexByte(label, ':'); i >= 0 {
		rawIssuer, rawAccount = label[:i], label[i+1:]
	} else if i := strings.Index(strings.ToUpper(label), "%3A"); i >= 0 {
		rawIssuer, rawAccount = label[:i], label[i+3:]
	}

	if issuer, err = url.PathUnescape(rawIssuer); err != nil {
		return "", "", err
	}
	if account, err = url.PathUnescape(rawAccount); err != nil {
		return "", "", err
	}
	return strings.TrimSpace(issuer), strings.TrimSpace(account), nil
}

// encodeComponent percent-encodes everything except RFC 3986 unreserved characters.
func encodeComponent(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}
