package cli

import (
	"fmt"
	"strings"

	"github.com/dmitrymomot/otpvault/pkg/file"
	"github.com/dmitrymomot/otpvault/pkg/pg"
	"github.com/dmitrymomot/otpvault/pkg/secretstore"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// Config is the process configuration, read from the environment and .env files.
type Config struct {
	AppEnv   string `env:"APP_ENV" envDefault:"development"`
	LogLevel string `env:"LOG_LEVEL"` // overrides the APP_ENV default when set

	Store       string `env:"OTPVAULT_STORE" envDefault:"memory"` // memory | postgres
	AutoMigrate bool   `env:"OTPVAULT_AUTO_MIGRATE" envDefault:"true"`
	UserID      int64  `env:"OTPVAULT_USER_ID" envDefault:"1"`
	PageSize    int    `env:"OTPVAULT_PAGE_SIZE" envDefault:"10"`

	Storage   string `env:"OTPVAULT_STORAGE" envDefault:"local"` // local | s3
	DataDir   string `env:"OTPVAULT_DATA_DIR" envDefault:"./data"`
	ExportDir string `env:"OTPVAULT_EXPORT_DIR" envDefault:"exports"`
	QRSize    int    `env:"OTPVAULT_QR_SIZE" envDefault:"256"`

	Crypto   secretstore.CryptoConfig
	Postgres pg.Config
	S3       file.S3Config
}

// Validate checks the settings that have no safe fallback.
func (c Config) Validate() error {
	switch strings.ToLower(c.Store) {
	case StoreMemory, StorePostgres:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStore, c.Store)
	}
	switch strings.ToLower(c.Storage) {
	case StorageLocal, StorageS3:
	default:
		return fmt.Errorf("%w: %q", ErrUnknownStorage, c.Storage)
	}
	if c.UserID <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidUserID, c.UserID)
	}
	if c.PageSize < 1 || c.PageSize > secretstore.MaxPageSize {
		return fmt.Errorf("%w: OTPVAULT_PAGE_SIZE must be 1..%d", ErrInvalidConfig, secretstore.MaxPageSize)
	}
	return nil
}
