package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/alecthomas/kingpin/v2"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dmitrymomot/otpvault/pkg/config"
	"github.com/dmitrymomot/otpvault/pkg/file"
	"github.com/dmitrymomot/otpvault/pkg/logger"
	"github.com/dmitrymomot/otpvault/pkg/pg"
	"github.com/dmitrymomot/otpvault/pkg/secretstore"
	"github.com/dmitrymomot/otpvault/pkg/vault"
)

// ServiceName is attached to every log record.
const ServiceName = "otpvault"

// Version is reported by --version.
var Version = "dev"

// App holds the global flags and the lazily opened resources shared by all
// commands.
type App struct {
	Config   Config
	EnvFiles []string
	UserID   int64 // --user, overrides OTPVAULT_USER_ID when set

	Stdout io.Writer
	Log    *slog.Logger

	ctx          context.Context
	now          func() time.Time
	configLoaded bool
	svc          vault.Service
	storage      file.Storage
	pool         *pgxpool.Pool
}

// New builds the kingpin application with every command registered.
func New(stdout io.Writer) (*kingpin.Application, *App) {
	app := kingpin.New(ServiceName, "Store time-based one-time password secrets and generate codes")
	app.Version(Version)
	a := ConfigureGlobals(app, stdout)

	ConfigureAddCommand(app, a)
	ConfigureAddURICommand(app, a)
	ConfigureImportCommand(app, a)
	ConfigureExportCommand(app, a)
	ConfigureExportQRCommand(app, a)
	ConfigureQRCommand(app, a)
	ConfigureGetCommand(app, a)
	ConfigureListCommand(app, a)
	ConfigureTotalCommand(app, a)
	ConfigureRemoveCommand(app, a)
	ConfigureResetCommand(app, a)
	ConfigureTempCommand(app, a)
	ConfigureKeygenCommand(app, a)
	ConfigureMigrateCommand(app, a)

	return app, a
}

// Run parses args, executes the selected command and releases resources.
func Run(ctx context.Context, args []string, stdout io.Writer) error {
	app, a := New(stdout)
	a.ctx = ctx
	defer a.Close()

	_, err := app.Parse(args)
	return err
}

// ConfigureGlobals registers the flags shared by every command.
func ConfigureGlobals(app *kingpin.Application, stdout io.Writer) *App {
	a := &App{
		Stdout: stdout,
		Log:    logger.Discard(),
		ctx:    context.Background(),
		now:    time.Now,
	}

	app.Flag("env-file", "Additional .env file to load, may be repeated").
		StringsVar(&a.EnvFiles)

	app.Flag("user", "User id the command acts for (default OTPVAULT_USER_ID)").
		Short('u').
		Int64Var(&a.UserID)

	app.PreAction(func(*kingpin.ParseContext) error {
		return a.loadConfig()
	})

	return a
}

// Context returns the context commands run under.
func (a *App) Context() context.Context {
	return a.ctx
}

// User returns the effective user id.
func (a *App) User() int64 {
	if a.UserID > 0 {
		return a.UserID
	}
	return a.Config.UserID
}

func (a *App) loadConfig() error {
	if !a.configLoaded {
		if err := config.LoadEnv(a.EnvFiles...); err != nil {
			return err
		}
		if err := config.Load(&a.Config); err != nil {
			return err
		}
		a.configLoaded = true
	}
	if err := a.Config.Validate(); err != nil {
		return err
	}

	opts := []logger.Option{logger.WithEnvironment(a.Config.AppEnv, ServiceName)}
	if a.Config.LogLevel != "" {
		level, err := logger.ParseLevel(a.Config.LogLevel)
		if err != nil {
			return errors.Join(ErrInvalidConfig, err)
		}
		opts = append(opts, logger.WithLevel(level))
	}
	a.Log = logger.New(opts...)

	return nil
}

// Service opens the configured store and storage on first use.
func (a *App) Service() (vault.Service, error) {
	if a.svc != nil {
		return a.svc, nil
	}

	store, err := a.openStore(a.ctx)
	if err != nil {
		return nil, err
	}
	storage, err := a.Storage()
	if err != nil {
		return nil, err
	}

	a.svc = vault.NewService(store, storage,
		vault.WithLogger(a.Log),
		vault.WithClock(a.now),
		vault.WithExportDir(a.Config.ExportDir),
		vault.WithQRSize(a.Config.QRSize),
	)
	return a.svc, nil
}

// Close releases the database pool, if one was opened.
func (a *App) Close() {
	if a.pool != nil {
		a.pool.Close()
		a.pool = nil
	}
}

func (a *App) openStore(ctx context.Context) (secretstore.Store, error) {
	switch strings.ToLower(a.Config.Store) {
	case StorePostgres:
		sealer, err := secretstore.NewSealerFromConfig(a.Config.Crypto)
		if err != nil {
			return nil, err
		}
		pool, err := a.connect(ctx)
		if err != nil {
			return nil, err
		}
		if a.Config.AutoMigrate {
			if err := a.migrate(ctx, pool); err != nil {
				return nil, err
			}
		}
		return secretstore.NewPostgresStore(pool, sealer), nil
	default:
		a.Log.Warn("using the memory store, secrets are discarded on exit")
		return secretstore.NewMemoryStore(), nil
	}
}

func (a *App) connect(ctx context.Context) (*pgxpool.Pool, error) {
	if a.pool != nil {
		return a.pool, nil
	}

	pool, err := pg.Connect(ctx, a.Config.Postgres)
	if err != nil {
		return nil, err
	}
	if err := pg.Healthcheck(pool)(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	a.pool = pool
	return pool, nil
}

func (a *App) migrate(ctx context.Context, pool *pgxpool.Pool) error {
	return pg.Migrate(ctx, pool, a.Config.Postgres, secretstore.Migrations, secretstore.MigrationsDir, a.Log)
}

// Storage opens the configured artifact storage on first use.
func (a *App) Storage() (file.Storage, error) {
	if a.storage != nil {
		return a.storage, nil
	}

	var (
		storage file.Storage
		err     error
	)
	switch strings.ToLower(a.Config.Storage) {
	case StorageS3:
		storage, err = file.NewS3Storage(a.ctx, a.Config.S3)
	default:
		storage, err = file.NewLocalStorage(a.Config.DataDir)
	}
	if err != nil {
		return nil, err
	}

	a.storage = storage
	return storage, nil
}

// run wraps a command body so it gets the service and the effective user.
func (a *App) run(fn func(ctx context.Context, svc vault.Service, userID int64) error) kingpin.Action {
	return func(pc *kingpin.ParseContext) error {
		svc, err := a.Service()
		if err != nil {
			return err
		}
		ctx := a.ctx
		if pc != nil && pc.SelectedCommand != nil {
			ctx = logger.WithCommand(ctx, pc.SelectedCommand.FullCommand())
		}
		return fn(ctx, svc, a.User())
	}
}

func (a *App) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(a.Stdout, format, args...)
}
