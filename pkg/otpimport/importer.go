package otpimport

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/dmitrymomot/otpvault/pkg/logger"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

// AddFunc persists a validated record. It returns totp.ErrDuplicateSecret
// when the secret is already stored; any other error aborts the batch.
type AddFunc func(ctx context.Context, rec totp.Record) error

// Importer turns otpauth URIs into stored records, one at a time.
type Importer struct {
	log *slog.Logger
}

// Option configures an Importer.
type Option func(*Importer)

// WithLogger sets the logger. Nil is ignored.
func WithLogger(l *slog.Logger) Option {
	return func(im *Importer) {
		if l != nil {
			im.log = l
		}
	}
}

func New(opts ...Option) *Importer {
	im := &Importer{log: logger.Discard()}
	for _, opt := range opts {
		opt(im)
	}
	return im
}

// Process handles items in order. Undecodable or invalid items and duplicates
// are counted and reported; the batch continues past them. Any other error
// from add stops the batch and is returned together with the outcome of the
// items handled so far. ctx is only passed through to add.
func (im *Importer) Process(ctx context.Context, items []string, add AddFunc) (Outcome, error) {
	out := newOutcome()

	for i, item := range items {
		res, err := im.classify(ctx, item, add)
		if err != nil {
			im.log.ErrorContext(ctx, "import aborted", logger.Index(i), logger.Error(err), slog.Any("outcome", out))
			return out, errors.Join(ErrAborted, fmt.Errorf("item %d: %w", i, err))
		}
		if res.Status != StatusSuccess {
			im.log.DebugContext(ctx, "item rejected",
				logger.Index(i),
				slog.String("status", res.Status.String()),
				slog.String("reason", res.Reason),
			)
		}
		out.add(res)
	}

	im.log.InfoContext(ctx, "import finished", slog.Any("outcome", out))
	return out, nil
}

// classify runs one item through decode, validation and add.
func (im *Importer) classify(ctx context.Context, item string, add AddFunc) (Result, error) {
	rec, err := totp.RecordFromURI(item)
	if err != nil {
		return Result{Status: StatusInvalid, Item: item, Reason: err.Error()}, nil
	}

	switch err := add(ctx, rec); {
	case err == nil:
		return Result{Status: StatusSuccess, Item: item}, nil
	case errors.Is(err, totp.ErrDuplicateSecret):
		return Result{Status: StatusDuplicate, Item: item, Reason: err.Error()}, nil
	default:
		return Result{}, err
	}
}
