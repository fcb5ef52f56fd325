package vault

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/otpvault/pkg/file"
	"github.com/dmitrymomot/otpvault/pkg/logger"
	"github.com/dmitrymomot/otpvault/pkg/otpimport"
	"github.com/dmitrymomot/otpvault/pkg/qrcode"
	"github.com/dmitrymomot/otpvault/pkg/secretstore"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

const (
	// DefaultExportDir is the storage directory exports are written to.
	DefaultExportDir = "exports"

	exportTimeLayout = "20060102_150405"
)

// Service defines the operations available to a vault user.
type Service interface {
	// Add stores a record entered as "secret=...,issuer=...,name=..." text.
	Add(ctx context.Context, userID int64, text string) (secretstore.Entry, error)
	// AddURI stores the record encoded in a single otpauth URI.
	AddURI(ctx context.Context, userID int64, uri string) (secretstore.Entry, error)
	// ImportFile imports one URI per line from the file at path. When any item
	// fails, a JSON report is written next to the source file.
	ImportFile(ctx context.Context, userID int64, path string) (ImportResult, error)

	// Export returns otpauth URIs for the given entries, or all of them.
	Export(ctx context.Context, userID int64, ids ...uuid.UUID) ([]string, error)
	// ExportFile writes Export output, one URI per line, to a timestamped file.
	ExportFile(ctx context.Context, userID int64, ids ...uuid.UUID) (*file.File, error)
	// ExportQR writes a PNG for a single entry or a zip of PNGs otherwise.
	ExportQR(ctx context.Context, userID int64, ids ...uuid.UUID) (*file.File, error)

	// Codes computes the current code of every entry matching query.
	Codes(ctx context.Context, userID int64, query string, at time.Time) ([]EntryCode, error)
	// List pages through the user's entries, newest first.
	List(ctx context.Context, userID int64, page, perPage int) (secretstore.PageResult, error)
	Total(ctx context.Context, userID int64) (int, error)
	// Remove deletes one entry. Unknown ids return secretstore.ErrNotFound.
	Remove(ctx context.Context, userID int64, id uuid.UUID) error
	// Reset deletes every entry of the user and reports how many were removed.
	Reset(ctx context.Context, userID int64) (int, error)

	// Temp computes a code for a secret that is not stored, using default parameters.
	Temp(secret string, at time.Time) (totp.Code, error)
}

// EntryCode pairs a stored entry with its code at a given instant.
type EntryCode struct {
	Entry secretstore.Entry
	Code  totp.Code
}

// ImportResult is the outcome of ImportFile.
type ImportResult struct {
	otpimport.Outcome
	// Report is the written failure report, nil when every item was imported.
	Report *file.File
}

type service struct {
	store     secretstore.Store
	storage   file.Storage
	importer  *otpimport.Importer
	log       *slog.Logger
	now       func() time.Time
	exportDir string
	qrSize    int
}

// NewService creates a Service over the given store and artifact storage.
// Panics if store or storage is nil.
func NewService(store secretstore.Store, storage file.Storage, opts ...ServiceOption) Service {
	if store == nil {
		panic("vault: secretstore.Store is required")
	}
	if storage == nil {
		panic("vault: file.Storage is required")
	}

	s := &service{
		store:     store,
		storage:   storage,
		log:       logger.Discard(),
		now:       time.Now,
		exportDir: DefaultExportDir,
		qrSize:    qrcode.DefaultSize,
	}
	for _, opt := range opts {
		opt(s)
	}
	s.log = s.log.With(logger.Component("vault"))
	s.importer = otpimport.New(otpimport.WithLogger(s.log))

	return s
}

func (s *service) Add(ctx context.Context, userID int64, text string) (secretstore.Entry, error) {
	rec, err := totp.RecordFromKeyValue(text)
	if err != nil {
		return secretstore.Entry{}, err
	}
	return s.create(ctx, userID, rec)
}

func (s *service) AddURI(ctx context.Context, userID int64, uri string) (secretstore.Entry, error) {
	rec, err := totp.RecordFromURI(strings.TrimSpace(uri))
	if err != nil {
		return secretstore.Entry{}, err
	}
	return s.create(ctx, userID, rec)
}

func (s *service) create(ctx context.Context, userID int64, rec totp.Record) (secretstore.Entry, error) {
	e, err := s.store.Create(ctx, userID, rec)
	if err != nil {
		return secretstore.Entry{}, err
	}
	s.log.InfoContext(ctx, "secret added", logger.UserID(userID), logger.EntryID(e.ID), logger.Record(rec))
	return e, nil
}

func (s *service) ImportFile(ctx context.Context, userID int64, p string) (ImportResult, error) {
	rc, err := s.storage.Open(ctx, p)
	if err != nil {
		return ImportResult{}, errors.Join(otpimport.ErrFileProcess, err)
	}
	items, err := otpimport.ReadItems(rc)
	_ = rc.Close()
	if err != nil {
		return ImportResult{}, err
	}

	log := s.log.With(logger.UserID(userID), logger.Path(p))
	outcome, err := s.importer.Process(ctx, items, func(ctx context.Context, rec totp.Record) error {
		_, err := s.store.Create(ctx, userID, rec)
		return err
	})
	res := ImportResult{Outcome: outcome}
	if err != nil {
		return res, err
	}

	if outcome.HasFailures() {
		var buf bytes.Buffer
		if err := otpimport.WriteReport(&buf, outcome.Report); err != nil {
			return res, err
		}
		f, err := s.storage.Put(ctx, ReportPath(p), &buf)
		if err != nil {
			return res, errors.Join(otpimport.ErrFileProcess, err)
		}
		res.Report = f
	}

	log.InfoContext(ctx, "file imported", slog.Any("outcome", outcome))
	return res, nil
}

func (s *service) Export(ctx context.Context, userID int64, ids ...uuid.UUID) ([]string, error) {
	entries, err := s.exportEntries(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	uris := make([]string, 0, len(entries))
	for _, e := range entries {
		uris = append(uris, totp.BuildURI(e.Record))
	}
	return uris, nil
}

func (s *service) ExportFile(ctx context.Context, userID int64, ids ...uuid.UUID) (*file.File, error) {
	uris, err := s.Export(ctx, userID, ids...)
	if err != nil {
		return nil, err
	}

	name := fmt.Sprintf("export_%s.txt", s.now().UTC().Format(exportTimeLayout))
	body := strings.Join(uris, "\n") + "\n"

	f, err := s.storage.Put(ctx, path.Join(s.exportDir, name), strings.NewReader(body))
	if err != nil {
		return nil, errors.Join(ErrFailedToWriteArtifact, err)
	}

	s.log.InfoContext(ctx, "secrets exported", logger.UserID(userID), slog.Int("count", len(uris)), logger.Path(f.RelativePath))
	return f, nil
}

func (s *service) ExportQR(ctx context.Context, userID int64, ids ...uuid.UUID) (*file.File, error) {
	entries, err := s.exportEntries(ctx, userID, ids)
	if err != nil {
		return nil, err
	}

	var (
		buf  bytes.Buffer
		name string
	)
	if len(entries) == 1 {
		e := entries[0]
		png, err := qrcode.Generate(totp.BuildURI(e.Record), s.qrSize)
		if err != nil {
			return nil, errors.Join(ErrFailedToWriteArtifact, err)
		}
		buf.Write(png)
		name = qrcode.FileName(e.ID.String(), e.Record.Issuer(), e.Record.AccountID())
	} else {
		now := s.now().UTC()
		images := make([]qrcode.Image, 0, len(entries))
		for _, e := range entries {
			images = append(images, qrcode.Image{
				Name:    qrcode.FileName(e.ID.String(), e.Record.Issuer(), e.Record.AccountID()),
				Content: totp.BuildURI(e.Record),
			})
		}
		if err := qrcode.WriteArchive(&buf, images, s.qrSize, now); err != nil {
			return nil, errors.Join(ErrFailedToWriteArtifact, err)
		}
		name = fmt.Sprintf("%d_qr_%s.zip", userID, now.Format(exportTimeLayout))
	}

	f, err := s.storage.Put(ctx, path.Join(s.exportDir, name), &buf)
	if err != nil {
		return nil, errors.Join(ErrFailedToWriteArtifact, err)
	}

	s.log.InfoContext(ctx, "qr codes exported", logger.UserID(userID), slog.Int("count", len(entries)), logger.Path(f.RelativePath))
	return f, nil
}

func (s *service) exportEntries(ctx context.Context, userID int64, ids []uuid.UUID) ([]secretstore.Entry, error) {
	entries, err := s.store.Export(ctx, userID, ids...)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, ErrNothingToExport
	}
	return entries, nil
}

func (s *service) Codes(ctx context.Context, userID int64, query string, at time.Time) ([]EntryCode, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, ErrEmptyQuery
	}

	entries, err := s.store.Search(ctx, userID, query)
	if err != nil {
		return nil, err
	}

	codes := make([]EntryCode, 0, len(entries))
	for _, e := range entries {
		codes = append(codes, EntryCode{Entry: e, Code: totp.Compute(e.Record, at)})
	}
	return codes, nil
}

func (s *service) List(ctx context.Context, userID int64, page, perPage int) (secretstore.PageResult, error) {
	if perPage == 0 {
		perPage = secretstore.DefaultPageSize
	}
	if perPage < 1 || perPage > secretstore.MaxPageSize {
		return secretstore.PageResult{}, fmt.Errorf("%w: %d", ErrInvalidPageSize, perPage)
	}
	return s.store.List(ctx, userID, secretstore.Page{Number: page, Size: perPage})
}

func (s *service) Total(ctx context.Context, userID int64) (int, error) {
	return s.store.Count(ctx, userID)
}

func (s *service) Remove(ctx context.Context, userID int64, id uuid.UUID) error {
	n, err := s.store.Delete(ctx, userID, id)
	if err != nil {
		return err
	}
	if n == 0 {
		return secretstore.ErrNotFound
	}
	s.log.InfoContext(ctx, "secret removed", logger.UserID(userID), logger.EntryID(id))
	return nil
}

func (s *service) Reset(ctx context.Context, userID int64) (int, error) {
	n, err := s.store.DeleteAll(ctx, userID)
	if err != nil {
		return 0, err
	}
	s.log.InfoContext(ctx, "secrets reset", logger.UserID(userID), slog.Int("count", n))
	return n, nil
}

func (s *service) Temp(secret string, at time.Time) (totp.Code, error) {
	rec, err := totp.NewRecord(totp.Params{Secret: secret})
	if err != nil {
		return totp.Code{}, err
	}
	return totp.Compute(rec, at), nil
}

// ReportPath returns where the failure report for an import source is written:
// the source name with its extension replaced by ".failures.json".
func ReportPath(source string) string {
	base := path.Base(source)
	stem := strings.TrimSuffix(base, path.Ext(base))
	if stem == "" {
		stem = "import"
	}
	return file.Sibling(source, stem+".failures.json")
}
