// Package config loads typed configuration from environment variables.
//
// It wraps github.com/joho/godotenv (optional .env files) and
// github.com/caarlos0/env/v11 (struct tag parsing). Every package that needs
// settings declares its own Config struct with `env` and `envDefault` tags;
// the binary composes them:
//
//	var apiCfg apiclient.Config
//	config.MustLoad(&apiCfg)
//
// Parsed structs are cached per type for the life of the process. Tests that
// change the environment call Reset between cases.
package config
