package secretstore

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/otpvault/pkg/totp"
)

const (
	DefaultPageSize = 10
	MaxPageSize     = 10
)

// Entry is a stored record owned by one user.
type Entry struct {
	ID        uuid.UUID
	UserID    int64
	Record    totp.Record
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Page selects a 1-based page of entries.
type Page struct {
	Number int
	Size   int
}

// PageResult is one page of entries, newest first.
type PageResult struct {
	Entries     []Entry
	Page        int
	PerPage     int
	Total       int
	TotalPages  int
	HasNext     bool
	HasPrevious bool
}

// Store persists records per user. Secrets are unique across all users;
// Create returns totp.ErrDuplicateSecret for a secret that is already stored.
// Implementations are safe for concurrent use.
type Store interface {
	Create(ctx context.Context, userID int64, rec totp.Record) (Entry, error)
	Get(ctx context.Context, userID int64, id uuid.UUID) (Entry, error)
	// List pages through the user's entries, newest first.
	List(ctx context.Context, userID int64, page Page) (PageResult, error)
	// Search matches query case-insensitively against issuer or account.
	Search(ctx context.Context, userID int64, query string) ([]Entry, error)
	// Export returns the given entries, or all of them when ids is empty,
	// oldest first. Unknown ids are skipped.
	Export(ctx context.Context, userID int64, ids ...uuid.UUID) ([]Entry, error)
	Count(ctx context.Context, userID int64) (int, error)
	// Delete removes one entry and reports how many were removed.
	Delete(ctx context.Context, userID int64, id uuid.UUID) (int, error)
	DeleteAll(ctx context.Context, userID int64) (int, error)
}

// resolve clamps the page against total. Out of range numbers land on the
// nearest existing page.
func (p Page) resolve(total int) (number, size, offset, pages int) {
	size = p.Size
	if size < 1 {
		size = DefaultPageSize
	}
	size = min(size, MaxPageSize)

	pages = max((total+size-1)/size, 1)
	number = min(max(p.Number, 1), pages)
	return number, size, (number - 1) * size, pages
}

func newPageResult(entries []Entry, number, size, total, pages int) PageResult {
	return PageResult{
		Entries:     entries,
		Page:        number,
		PerPage:     size,
		Total:       total,
		TotalPages:  pages,
		HasNext:     number < pages,
		HasPrevious: number > 1,
	}
}

func matches(rec totp.Record, query string) bool {
	q := strings.ToLower(query)
	return strings.Contains(strings.ToLower(rec.Issuer()), q) ||
		strings.Contains(strings.ToLower(rec.AccountID()), q)
}
