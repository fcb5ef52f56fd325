// Package config loads typed configuration from environment variables.
//
// Structs describe their settings with github.com/caarlos0/env tags; an
// optional .env file in the working directory is read on first use with
// github.com/joho/godotenv. Extra files can be layered with LoadEnv.
//
//	var cfg cli.Config
//	if err := config.LoadEnv(".env.local"); err != nil {
//		return err
//	}
//	if err := config.Load(&cfg); err != nil {
//		return err
//	}
//
// Parsed values are cached per type. Tests that change the environment call
// ResetCache between cases.
package config
