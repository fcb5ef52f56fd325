package cli

import (
	"strings"

	"github.com/alecthomas/kingpin/v2"
)

// ConfigureMigrateCommand sets up the migrate command.
func ConfigureMigrateCommand(app *kingpin.Application, a *App) {
	cmd := app.Command("migrate", "Apply database migrations for the postgres store")

	cmd.Action(func(*kingpin.ParseContext) error {
		return MigrateCommand(a)
	})
}

// MigrateCommand connects to Postgres, checks the connection and applies
// pending migrations.
func MigrateCommand(a *App) error {
	if !strings.EqualFold(a.Config.Store, StorePostgres) {
		return ErrPostgresRequired
	}

	pool, err := a.connect(a.ctx)
	if err != nil {
		return err
	}
	if err := a.migrate(a.ctx, pool); err != nil {
		return err
	}

	s := a.styles()
	a.printf("%s\n", s.label.Render("Migrations applied"))
	return nil
}
