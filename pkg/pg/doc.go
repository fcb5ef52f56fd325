// Package pg opens the PostgreSQL pool used by the postgres secret store and
// applies embedded goose migrations against it.
//
// Config is populated from PG_* environment variables by caarlos0/env.
// Connect retries until the database answers a ping or the attempts run out.
// Migrate takes an fs.FS (normally a go:embed directory) so the schema ships
// inside the binary.
//
//	pool, err := pg.Connect(ctx, cfg)
//	if err != nil {
//	    return err
//	}
//	defer pool.Close()
//
//	if err := pg.Migrate(ctx, pool, cfg, migrations, "migrations", log); err != nil {
//	    return err
//	}
//
// IsDuplicateKeyError and IsNotFoundError classify pgx errors so callers can
// map them to their own sentinels.
package pg
