// Package cli implements the otpvault command line: one kingpin command per
// vault operation plus keygen and migrate.
//
// Configuration comes from the environment and optional .env files (see
// Config). The store and artifact storage are opened lazily by the first
// command that needs them and released by App.Close.
package cli
