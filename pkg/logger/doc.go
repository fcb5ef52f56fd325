// Package logger builds the slog loggers used across otpvault.
//
// New creates a *slog.Logger from functional options. WithEnvironment picks
// per-environment defaults (text and debug in development, JSON and info in
// staging and production). Every logger adds the command stored in the
// context by WithCommand; WithContextValue and WithContextExtractors register
// further attributes taken from the context of each log call.
//
//	log := logger.New(logger.WithEnvironment(cfg.AppEnv, "otpvault"))
//	ctx = logger.WithCommand(ctx, "add")
//	log.InfoContext(ctx, "secret added", logger.Record(rec), logger.EntryID(id))
//
// Attribute helpers in attr.go keep key names consistent. Record describes a
// TOTP record without its secret; secrets must never reach a log.
// Error returns an empty attribute for a nil error so it can be passed
// unconditionally.
package logger
