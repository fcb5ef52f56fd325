package secretstore

import (
	"context"
	"embed"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/otpvault/pkg/pg"
	"github.com/dmitrymomot/otpvault/pkg/totp"
)

// Migrations holds the goose schema for PostgresStore, rooted at MigrationsDir.
//
//go:embed migrations/*.sql
var Migrations embed.FS

const MigrationsDir = "migrations"

var _ Store = (*PostgresStore)(nil)

// PostgresStore keeps sealed secrets in the secrets table. The plain secret
// is never written; uniqueness is enforced on its keyed fingerprint.
type PostgresStore struct {
	db     *pgxpool.Pool
	sealer *Sealer
}

// NewPostgresStore wraps a pool whose schema was migrated with Migrations.
func NewPostgresStore(db *pgxpool.Pool, sealer *Sealer) *PostgresStore {
	return &PostgresStore{db: db, sealer: sealer}
}

const selectColumns = `id, user_id, sealed_secret, issuer, account_id, digits, period, algorithm, created_at, updated_at`

func (s *PostgresStore) Create(ctx context.Context, userID int64, rec totp.Record) (Entry, error) {
	if rec.IsZero() {
		return Entry{}, totp.ErrInvalidSecret
	}

	sealed, err := s.sealer.Seal(rec.Secret())
	if err != nil {
		return Entry{}, err
	}

	e := Entry{ID: uuid.New(), UserID: userID, Record: rec}
	err = s.db.QueryRow(ctx, `
		INSERT INTO secrets (id, user_id, fingerprint, sealed_secret, issuer, account_id, digits, period, algorithm)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING created_at, updated_at`,
		e.ID, userID, s.sealer.Fingerprint(rec.Secret()), sealed,
		rec.Issuer(), rec.AccountID(), rec.Digits(), rec.Period(), rec.Algorithm().String(),
	).Scan(&e.CreatedAt, &e.UpdatedAt)
	if err != nil {
		if pg.IsDuplicateKeyError(err) {
			return Entry{}, totp.ErrDuplicateSecret
		}
		return Entry{}, err
	}

	return e, nil
}

func (s *PostgresStore) Get(ctx context.Context, userID int64, id uuid.UUID) (Entry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+selectColumns+` FROM secrets WHERE user_id = $1 AND id = $2`,
		userID, id,
	)
	if err != nil {
		return Entry{}, err
	}

	entries, err := s.collect(rows)
	if err != nil {
		return Entry{}, err
	}
	if len(entries) == 0 {
		return Entry{}, ErrNotFound
	}
	return entries[0], nil
}

func (s *PostgresStore) List(ctx context.Context, userID int64, page Page) (PageResult, error) {
	total, err := s.Count(ctx, userID)
	if err != nil {
		return PageResult{}, err
	}

	number, size, offset, pages := page.resolve(total)
	rows, err := s.db.Query(ctx,
		`SELECT `+selectColumns+` FROM secrets WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`,
		userID, size, offset,
	)
	if err != nil {
		return PageResult{}, err
	}

	entries, err := s.collect(rows)
	if err != nil {
		return PageResult{}, err
	}
	return newPageResult(entries, number, size, total, pages), nil
}

func (s *PostgresStore) Search(ctx context.Context, userID int64, query string) ([]Entry, error) {
	rows, err := s.db.Query(ctx,
		`SELECT `+selectColumns+` FROM secrets
		WHERE user_id = $1 AND (issuer ILIKE $2 ESCAPE '\' OR account_id ILIKE $2 ESCAPE '\')
		ORDER BY created_at DESC, id DESC`,
		userID, "%"+escapeLike(query)+"%",
	)
	if err != nil {
		return nil, err
	}
	return s.collect(rows)
}

func (s *PostgresStore) Export(ctx context.Context, userID int64, ids ...uuid.UUID) ([]Entry, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if len(ids) == 0 {
		rows, err = s.db.Query(ctx,
			`SELECT `+selectColumns+` FROM secrets WHERE user_id = $1 ORDER BY created_at, id`,
			userID,
		)
	} else {
		keys := make([]string, len(ids))
		for i, id := range ids {
			keys[i] = id.String()
		}
		rows, err = s.db.Query(ctx,
			`SELECT `+selectColumns+` FROM secrets WHERE user_id = $1 AND id = ANY($2::uuid[]) ORDER BY created_at, id`,
			userID, keys,
		)
	}
	if err != nil {
		return nil, err
	}
	return s.collect(rows)
}

func (s *PostgresStore) Count(ctx context.Context, userID int64) (int, error) {
	var n int
	if err := s.db.QueryRow(ctx, `SELECT count(*) FROM secrets WHERE user_id = $1`, userID).Scan(&n); err != nil {
		return 0, err
	}
	return n, nil
}

func (s *PostgresStore) Delete(ctx context.Context, userID int64, id uuid.UUID) (int, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM secrets WHERE user_id = $1 AND id = $2`, userID, id)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

func (s *PostgresStore) DeleteAll(ctx context.Context, userID int64) (int, error) {
	tag, err := s.db.Exec(ctx, `DELETE FROM secrets WHERE user_id = $1`, userID)
	if err != nil {
		return 0, err
	}
	return int(tag.RowsAffected()), nil
}

type secretRow struct {
	ID           pgtype.UUID
	UserID       int64
	SealedSecret string
	Issuer       string
	AccountID    string
	Digits       int
	Period       int
	Algorithm    string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

func (s *PostgresStore) collect(rows pgx.Rows) ([]Entry, error) {
	scanned, err := pgx.CollectRows(rows, pgx.RowToStructByPos[secretRow])
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(scanned))
	for _, r := range scanned {
		e, err := s.restore(r)
		if err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}
	return entries, nil
}

func (s *PostgresStore) restore(r secretRow) (Entry, error) {
	secret, err := s.sealer.Open(r.SealedSecret)
	if err != nil {
		return Entry{}, errors.Join(ErrCorruptData, err)
	}

	rec, err := totp.NewRecord(totp.Params{
		Secret:    secret,
		Issuer:    r.Issuer,
		AccountID: r.AccountID,
		Digits:    r.Digits,
		Period:    r.Period,
		Algorithm: totp.Algorithm(r.Algorithm),
	})
	if err != nil {
		return Entry{}, errors.Join(ErrCorruptData, err)
	}

	return Entry{
		ID:        uuid.UUID(r.ID.Bytes),
		UserID:    r.UserID,
		Record:    rec,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}, nil
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}
