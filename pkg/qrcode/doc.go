// Package qrcode renders otpauth URIs as QR codes for authenticator apps.
//
// It wraps github.com/skip2/go-qrcode:
//
//   • Generate returns a PNG image.
//   • Terminal returns a half-block text rendering for the console.
//   • WriteArchive packs several PNGs into a zip, one entry per secret,
//     named with FileName as "<id>_<issuer>_<account>.png".
//
// # Usage
//
//	png, err := qrcode.Generate(totp.BuildURI(rec), 256)
//	if err != nil {
//		// errors.Is(err, qrcode.ErrEmptyContent)
//	}
//
//	err = qrcode.WriteArchive(f, []qrcode.Image{
//		{Name: qrcode.FileName(id, "Acme", "alice"), Content: uri},
//	}, qrcode.DefaultSize, time.Now())
//
// Errors are package level sentinels; compare them with errors.Is.
package qrcode
