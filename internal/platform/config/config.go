// Copyright (c) 2026 Fashion Fiesta. All rights reserved.
// Author: avi4306

/*
Package config handles application-wide settings and environment parsing.

Values are read from the process environment with 'caarlos0/env'. A local
.env file, when present, is loaded first with 'joho/godotenv' so developers do
not need to export variables by hand; real environment variables always win.

Usage:

	cfg, err := config.Load()
	if err != nil {
	    log.Fatal(err)
	}

The returned [Config] is read-only and is passed into constructors; nothing in
the module keeps it in a package-level variable.
*/
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// # Configuration Schema

// Config holds all runtime configuration for the API server.
type Config struct {

	// Server settings
	ServerPort  string `env:"SERVER_PORT" envDefault:"8080"`
	Environment string `env:"APP_ENV"     envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL"   envDefault:"info"`

	// Relational Database (PostgreSQL)
	DatabaseURL string `env:"DATABASE_URL,required"`

	// MigrationPath is the filesystem path to the SQL migrations directory.
	MigrationPath string `env:"MIGRATIONS_PATH" envDefault:"./data/migrations"`

	// Key-Value Cache (Redis)
	RedisURL string `env:"REDIS_URL,required"`

	// JWTSecret signs locally issued tokens (HS256).
	JWTSecret string `env:"JWT_SECRET,required,notEmpty"`

	// Outbound email (Resend). Without an API key mail is only logged.
	ResendAPIKey string `env:"RESEND_API_KEY"`
	MailFrom     string `env:"MAIL_FROM" envDefault:"Fashion Fiesta <no-reply@fashionfiesta.app>"`

	// Google OAuth client
	GoogleClientID     string `env:"GOOGLE_CLIENT_ID"`
	GoogleClientSecret string `env:"GOOGLE_CLIENT_SECRET"`
	GoogleRedirectURL  string `env:"GOOGLE_REDIRECT_URL" envDefault:"http://localhost:3000/auth/google/callback"`

	// AdminEmails are promoted to the admin role when they sign up.
	AdminEmails []string `env:"ADMIN_EMAILS" envSeparator:","`

	// Cross-Origin Resource Sharing
	AllowedOrigins []string `env:"ALLOWED_ORIGINS" envSeparator:"," envDefault:"http://localhost:3000"`
}

// # Configuration Loading

// Load parses environment variables into a [Config] struct.
func Load() (*Config, error) {

	// A missing .env file is the normal case outside local development.
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to read .env file: %w", err)
	}

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("config: failed to parse environment variables: %w", err)
	}

	return cfg, nil
}

// IsDevelopment reports whether the server is running in development mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction reports whether the server is running in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// IsAdminEmail reports whether email is listed in ADMIN_EMAILS.
func (c *Config) IsAdminEmail(email string) bool {
	for _, candidate := range c.AdminEmails {
		if strings.EqualFold(strings.TrimSpace(candidate), email) {
			return true
		}
	}
	return false
}

// GoogleEnabled reports whether the OAuth code flow is configured.
func (c *Config) GoogleEnabled() bool {
	return c.GoogleClientID != "" && c.GoogleClientSecret != ""
}
