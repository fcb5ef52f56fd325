package logger

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/dmitrymomot/otpvault/pkg/totp"
)

// Error creates an attribute for a single error under the key "error".
// If err is nil, it returns an empty Attr.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// UserID records the vault owner under the key "user_id".
func UserID(id int64) slog.Attr {
	return slog.Int64("user_id", id)
}

// EntryID records a stored entry identifier under the key "entry_id".
func EntryID(id uuid.UUID) slog.Attr {
	return slog.String("entry_id", id.String())
}

// Record describes rec under the key "record". The secret is never included.
func Record(rec totp.Record) slog.Attr {
	return slog.Group("record",
		slog.String("issuer", rec.Issuer()),
		slog.String("account", rec.AccountID()),
		slog.String("algorithm", rec.Algorithm().String()),
		slog.Int("digits", rec.Digits()),
		slog.Int("period", rec.Period()),
	)
}

// Index records the position of an item within a batch.
func Index(i int) slog.Attr {
	return slog.Int("index", i)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Path records a file or object path under the key "path".
func Path(p string) slog.Attr {
	return slog.String("path", p)
}
