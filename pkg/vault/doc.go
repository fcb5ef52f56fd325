// Package vault exposes the user-facing operations of the authenticator: adding
// secrets by hand or from otpauth URIs, bulk import from a file, plain-text and
// QR exports, code lookup, paging and removal.
//
// A Service combines a secretstore.Store with a file.Storage for artifacts:
//
//	svc := vault.NewService(store, storage, vault.WithLogger(log))
//
//	entry, err := svc.AddURI(ctx, userID, "otpauth://totp/Acme:alice?secret=JBSWY3DPEHPK3PXP&issuer=Acme")
//	switch {
//	case errors.Is(err, totp.ErrDuplicateSecret):
//	case errors.Is(err, totp.ErrInvalidSecret), errors.Is(err, totp.ErrParse):
//	}
//
//	res, err := svc.ImportFile(ctx, userID, "imports/batch.txt")
//	// res.Success, res.Duplicate, res.Invalid; res.Report when anything failed
//
//	codes, err := svc.Codes(ctx, userID, "acme", time.Now())
package vault
