// Package secretstore persists TOTP records per user.
//
// Two Store implementations are provided. MemoryStore keeps records in
// process memory and suits temporary sessions and tests. PostgresStore
// writes to the secrets table created by the embedded goose migrations
// (Migrations, MigrationsDir); apply them with pg.Migrate before use.
//
// # Secrets at rest
//
// PostgresStore never writes the plain secret. A Sealer derives two subkeys
// from the 32-byte master key (TOTP_ENCRYPTION_KEY, base64) with HKDF: one
// seals the secret with AES-256-GCM, the other computes an HMAC-SHA256
// fingerprint. The unique index on the fingerprint rejects a secret that is
// already registered, and Create reports it as totp.ErrDuplicateSecret.
//
// Generate a key with GenerateEncodedKey or the CLI:
//
//	otpvault keygen --encryption-key
//
// # Usage
//
//	sealer, err := secretstore.NewSealerFromConfig(cfg.Crypto)
//	if err != nil {
//	    return err
//	}
//	store := secretstore.NewPostgresStore(pool, sealer)
//
//	entry, err := store.Create(ctx, userID, rec)
//	if errors.Is(err, totp.ErrDuplicateSecret) {
//	    // already registered
//	}
package secretstore
