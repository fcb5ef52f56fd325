// Package totp implements the time-based one-time password engine together with
// the otpauth URI codec and the validation rules shared by both.
//
// Secrets travel through the package as Record values. A Record can only be
// created by NewRecord (or one of the decoders built on it), so holding one
// means the secret decodes as base32, digits are 6-8, the period is 15-120
// seconds and the algorithm is SHA1, SHA256 or SHA512.
//
// # Architecture
//
// The package is split into four small layers that reference one constant
// field table (fields.go) instead of repeating field names:
//
//   • validation – ValidateSecret and Params.Validate decide whether a
//     candidate secret and its parameters are usable.
//
//   • engine     – Compute implements RFC 6238 on top of GenerateHOTP
//     (RFC 4226 with selectable hash) and reports the remaining window.
//
//   • codec      – ParseURI/BuildURI convert between records and
//     otpauth://totp URIs; ParseKeyValue reads "key=value,..." manual input.
//
//   • model      – Params, Record, Values, Field and Algorithm.
//
// # Usage
//
//	rec, err := totp.RecordFromURI("otpauth://totp/Acme:alice?secret=JBSWY3DPEHPK3PXP&issuer=Acme")
//	if err != nil {
//	    // errors.Is(err, totp.ErrParse) or errors.Is(err, totp.ErrInvalidSecret)
//	}
//
//	code := totp.Compute(rec, time.Now())
//	fmt.Println(code.Value, code.SecondsRemaining)
//
//	uri := totp.BuildURI(rec) // portable form for authenticator apps
//
// # Error Handling
//
// Errors are wrapped with errors.Join around package level sentinels. Inspect
// them with errors.Is against ErrInvalidSecret (unusable secret), ErrParse
// (malformed input or out-of-range parameters) and the more specific
// sentinels such as ErrDigitsOutOfRange. ErrDuplicateSecret is declared here
// for storage implementations to return from their create operation.
//
// # See Also
//
//   • RFC 4226 – HMAC-Based One-Time Password (HOTP) Algorithm
//   • RFC 6238 – Time-Based One-Time Password (TOTP) Algorithm
package totp
