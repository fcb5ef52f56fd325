package vault

import (
	"log/slog"
	"time"
)

// ServiceOption configures a Service instance.
type ServiceOption func(*service)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) ServiceOption {
	return func(s *service) {
		if l != nil {
			s.log = l
		}
	}
}

// WithClock overrides the time source used to name export files.
func WithClock(now func() time.Time) ServiceOption {
	return func(s *service) {
		if now != nil {
			s.now = now
		}
	}
}

// WithExportDir sets the storage directory exports are written to.
// Defaults to "exports".
func WithExportDir(dir string) ServiceOption {
	return func(s *service) {
		s.exportDir = dir
	}
}

// WithQRSize sets the edge length in pixels of exported QR images.
func WithQRSize(size int) ServiceOption {
	return func(s *service) {
		if size > 0 {
			s.qrSize = size
		}
	}
}
