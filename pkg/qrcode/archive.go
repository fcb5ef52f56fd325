package qrcode

import (
	"archive/zip"
	"errors"
	"fmt"
	"io"
	"net/url"
	"time"
)

// Image is one QR code to be written into an archive.
type Image struct {
	Name    string // file name inside the archive
	Content string // encoded payload, usually an otpauth URI
}

// FileName builds "<id>_<issuer>_<account>.png" with issuer and account
// query-escaped so the name is safe on any filesystem.
func FileName(id, issuer, account string) string {
	return fmt.Sprintf("%s_%s_%s.png", id, url.QueryEscape(issuer), url.QueryEscape(account))
}

// WriteArchive writes one PNG per image into a zip archive on w.
// Entries are stored in the given order with modtime set to at.
func WriteArchive(w io.Writer, images []Image, size int, at time.Time) error {
	if len(images) == 0 {
		return ErrNoImages
	}

	zw := zip.NewWriter(w)
	for _, img := range images {
		png, err := Generate(img.Content, size)
		if err != nil {
			return fmt.Errorf("%s: %w", img.Name, err)
		}

		// PNG is already compressed.
		f, err := zw.CreateHeader(&zip.FileHeader{
			Name:     img.Name,
			Method:   zip.Store,
			Modified: at,
		})
		if err != nil {
			return errors.Join(ErrorFailedToGenerateQRCode, err)
		}
		if _, err := f.Write(png); err != nil {
			return errors.Join(ErrorFailedToGenerateQRCode, err)
		}
	}

	if err := zw.Close(); err != nil {
		return errors.Join(ErrorFailedToGenerateQRCode, err)
	}
	return nil
}
