// Copyright 2025 Oliver Andrich
// Licensed under the EUPL-1.2

package config

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	altsrc "github.com/urfave/cli-altsrc/v3"
	"github.com/urfave/cli-altsrc/v3/toml"
	"github.com/urfave/cli/v3"
)

var configFile = altsrc.StringSourcer("config.toml")

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

type Config struct { //nolint:govet // fieldalignment not critical for config structs
	Server   ServerConfig
	Log      LogConfig
	Database DatabaseConfig
	TLS      TLSConfig
	JWT      JWTConfig
	SMTP     SMTPConfig
	Payment  PaymentConfig
	Seed     SeedConfig
}

type ServerConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host        string
	Port        int
	BaseURL     string
	MaxBodySize int    // in MB
	Environment string // development, production
	FrontendURL string // used for payment links and CORS
	CORSOrigins []string
}

// AllowedOrigins returns the frontend origin plus any extra CORS origins.
func (s ServerConfig) AllowedOrigins() []string {
	origins := make([]string, 0, len(s.CORSOrigins)+1)
	if s.FrontendURL != "" {
		origins = append(origins, s.FrontendURL)
	}
	for _, o := range s.CORSOrigins {
		if o = strings.TrimSuffix(strings.TrimSpace(o), "/"); o != "" {
			origins = append(origins, o)
		}
	}
	return origins
}

// IsDevelopment reports whether detailed error output is allowed.
// An unset environment counts as development.
func (s ServerConfig) IsDevelopment() bool {
	return s.Environment == EnvDevelopment || s.Environment == ""
}

type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // text, json
}

type DatabaseConfig struct {
	DSN string
}

type TLSConfig struct {
	Mode     string // off, manual, acme
	CertDir  string // autocert cache directory
	Email    string // ACME email for Let's Encrypt
	CertFile string // Path to certificate file (manual mode)
	KeyFile  string // Path to private key file (manual mode)
}

type JWTConfig struct {
	Secret string
	TTL    time.Duration
}

type SMTPConfig struct { //nolint:govet // fieldalignment not critical for config structs
	Host     string
	Port     int
	Username string
	Password string
	From     string
	FromName string
	TLS      bool
}

// Enabled reports whether an SMTP relay is configured.
func (s SMTPConfig) Enabled() bool {
	return s.Host != ""
}

// PaymentConfig holds the SSLCommerz store settings.
type PaymentConfig struct { //nolint:govet // fieldalignment not critical for config structs
	StoreID       string
	StorePassword string
	Live          bool
	SuccessURL    string
	FailURL       string
	CancelURL     string
	IPNURL        string
}

type SeedConfig struct {
	SuperAdminEmail    string
	SuperAdminPassword string
}

func NewFromCLI(cmd *cli.Command) *Config {
	cfg := &Config{
		Server: ServerConfig{
			Host:        cmd.String("host"),
			Port:        int(cmd.Int("port")),
			BaseURL:     cmd.String("base-url"),
			MaxBodySize: int(cmd.Int("max-body-size")),
			Environment: strings.ToLower(cmd.String("environment")),
			FrontendURL: strings.TrimSuffix(cmd.String("frontend-url"), "/"),
			CORSOrigins: cmd.StringSlice("cors-origins"),
		},
		Log: LogConfig{
			Level:  cmd.String("log-level"),
			Format: cmd.String("log-format"),
		},
		Database: DatabaseConfig{
			DSN: cmd.String("database-dsn"),
		},
		TLS: TLSConfig{
			Mode:     cmd.String("tls-mode"),
			CertDir:  cmd.String("tls-cert-dir"),
			Email:    cmd.String("tls-email"),
			CertFile: cmd.String("tls-cert-file"),
			KeyFile:  cmd.String("tls-key-file"),
		},
		JWT: JWTConfig{
			Secret: cmd.String("jwt-secret"),
			TTL:    cmd.Duration("jwt-ttl"),
		},
		SMTP: SMTPConfig{
			Host:     cmd.String("smtp-host"),
			Port:     int(cmd.Int("smtp-port")),
			Username: cmd.String("smtp-username"),
			Password: cmd.String("smtp-password"),
			From:     cmd.String("smtp-from"),
			FromName: cmd.String("smtp-from-name"),
			TLS:      cmd.Bool("smtp-tls"),
		},
		Payment: PaymentConfig{
			StoreID:       cmd.String("sslcommerz-store-id"),
			StorePassword: cmd.String("sslcommerz-store-password"),
			Live:          cmd.Bool("sslcommerz-live"),
			SuccessURL:    cmd.String("sslcommerz-success-url"),
			FailURL:       cmd.String("sslcommerz-fail-url"),
			CancelURL:     cmd.String("sslcommerz-cancel-url"),
			IPNURL:        cmd.String("sslcommerz-ipn-url"),
		},
		Seed: SeedConfig{
			SuperAdminEmail:    cmd.String("super-admin-email"),
			SuperAdminPassword: cmd.String("super-admin-password"),
		},
	}

	if cfg.Server.BaseURL == "" {
		cfg.Server.BaseURL = buildBaseURL(cfg)
	}

	return cfg
}

// Validate rejects configurations that are unsafe to serve with.
func (c *Config) Validate() error {
	switch c.Server.Environment {
	case "", EnvDevelopment, EnvProduction:
	default:
		return fmt.Errorf("unknown environment: %s (want %s or %s)", c.Server.Environment, EnvDevelopment, EnvProduction)
	}
	if c.JWT.Secret == "" {
		if !c.Server.IsDevelopment() {
			return errors.New("jwt secret is required in production")
		}
		secret, err := randomSecret()
		if err != nil {
			return err
		}
		c.JWT.Secret = secret
		slog.Warn("jwt_secret_generated", "reason", "no secret configured, tokens expire on restart")
	}
	if c.JWT.TTL <= 0 {
		return fmt.Errorf("jwt ttl must be positive, got %s", c.JWT.TTL)
	}
	switch strings.ToLower(c.TLS.Mode) {
	case "", "off", "manual", "acme":
	default:
		return fmt.Errorf("unknown tls mode: %s", c.TLS.Mode)
	}
	return nil
}

// randomSecret returns a 256-bit hex key for signing tokens.
func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate jwt secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func buildBaseURL(cfg *Config) string {
	host := cfg.Server.Host
	port := cfg.Server.Port
	mode := strings.ToLower(cfg.TLS.Mode)

	scheme := "http"
	if mode == "manual" || mode == "acme" {
		scheme = "https"
	}

	// ACME mode always uses port 443
	if mode == "acme" {
		return fmt.Sprintf("https://%s", host)
	}

	// Hide default ports in URL
	if (scheme == "http" && port == 80) || (scheme == "https" && port == 443) {
		return fmt.Sprintf("%s://%s", scheme, host)
	}
	return fmt.Sprintf("%s://%s:%d", scheme, host, port)
}

// IsLocalhost checks if the host is a localhost address.
func IsLocalhost(host string) bool {
	switch host {
	case "", "localhost", "127.0.0.1", "::1":
		return true
	}
	// Check for *.localhost subdomains (e.g., app.localhost)
	return strings.HasSuffix(host, ".localhost")
}

func source(env, key string) cli.ValueSourceChain {
	return cli.NewValueSourceChain(cli.EnvVar(env), toml.TOML(key, configFile))
}

func Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "host",
			Value:   "localhost",
			Usage:   "Host to bind to",
			Sources: source("HOST", "server.host"),
		},
		&cli.IntFlag{
			Name:    "port",
			Value:   5000,
			Usage:   "Port to listen on",
			Sources: source("PORT", "server.port"),
		},
		&cli.StringFlag{
			Name:    "base-url",
			Usage:   "Base URL for the API",
			Sources: source("BASE_URL", "server.base_url"),
		},
		&cli.IntFlag{
			Name:    "max-body-size",
			Value:   10,
			Usage:   "Maximum request body size in MB",
			Sources: source("MAX_BODY_SIZE", "server.max_body_size"),
		},
		&cli.StringFlag{
			Name:    "environment",
			Value:   EnvDevelopment,
			Usage:   "Runtime environment (development, production)",
			Sources: source("APP_ENV", "server.environment"),
		},
		&cli.StringFlag{
			Name:    "frontend-url",
			Value:   "http://localhost:3000",
			Usage:   "Frontend origin used for CORS and payment links",
			Sources: source("FRONTEND_URL", "server.frontend_url"),
		},
		&cli.StringSliceFlag{
			Name:    "cors-origins",
			Usage:   "Additional allowed CORS origins",
			Sources: source("CORS_ORIGINS", "server.cors_origins"),
		},
		&cli.StringFlag{
			Name:    "log-level",
			Value:   "info",
			Usage:   "Log level (debug, info, warn, error)",
			Sources: source("LOG_LEVEL", "log.level"),
		},
		&cli.StringFlag{
			Name:    "log-format",
			Value:   "text",
			Usage:   "Log format (text, json)",
			Sources: source("LOG_FORMAT", "log.format"),
		},
		&cli.StringFlag{
			Name:    "database-dsn",
			Value:   "./data/carnival.db",
			Usage:   "Database DSN",
			Sources: source("DATABASE_DSN", "database.dsn"),
		},
		&cli.StringFlag{
			Name:    "tls-mode",
			Value:   "off",
			Usage:   "TLS mode (off, manual, acme)",
			Sources: source("TLS_MODE", "tls.mode"),
		},
		&cli.StringFlag{
			Name:    "tls-cert-dir",
			Value:   "./data/certs",
			Usage:   "Directory for ACME certificates",
			Sources: source("TLS_CERT_DIR", "tls.cert_dir"),
		},
		&cli.StringFlag{
			Name:    "tls-email",
			Usage:   "Email for ACME/Let's Encrypt registration",
			Sources: source("TLS_EMAIL", "tls.email"),
		},
		&cli.StringFlag{
			Name:    "tls-cert-file",
			Usage:   "Path to TLS certificate file (manual mode)",
			Sources: source("TLS_CERT_FILE", "tls.cert_file"),
		},
		&cli.StringFlag{
			Name:    "tls-key-file",
			Usage:   "Path to TLS private key file (manual mode)",
			Sources: source("TLS_KEY_FILE", "tls.key_file"),
		},
		// JWT flags
		&cli.StringFlag{
			Name:    "jwt-secret",
			Usage:   "HMAC secret for admin session tokens",
			Sources: source("JWT_SECRET", "jwt.secret"),
		},
		&cli.DurationFlag{
			Name:    "jwt-ttl",
			Value:   7 * 24 * time.Hour,
			Usage:   "Lifetime of admin session tokens",
			Sources: source("JWT_TTL", "jwt.ttl"),
		},
		// SMTP flags
		&cli.StringFlag{
			Name:    "smtp-host",
			Usage:   "SMTP relay host (emails are only logged when empty)",
			Sources: source("EMAIL_HOST", "smtp.host"),
		},
		&cli.IntFlag{
			Name:    "smtp-port",
			Value:   587,
			Usage:   "SMTP relay port",
			Sources: source("EMAIL_PORT", "smtp.port"),
		},
		&cli.StringFlag{
			Name:    "smtp-username",
			Usage:   "SMTP username",
			Sources: source("EMAIL_USER", "smtp.username"),
		},
		&cli.StringFlag{
			Name:    "smtp-password",
			Usage:   "SMTP password",
			Sources: source("EMAIL_PASSWORD", "smtp.password"),
		},
		&cli.StringFlag{
			Name:    "smtp-from",
			Value:   "noreply@carnival.sust.edu",
			Usage:   "Sender address",
			Sources: source("EMAIL_FROM", "smtp.from"),
		},
		&cli.StringFlag{
			Name:    "smtp-from-name",
			Value:   "SUST CSE Carnival",
			Usage:   "Sender display name",
			Sources: source("EMAIL_FROM_NAME", "smtp.from_name"),
		},
		&cli.BoolFlag{
			Name:    "smtp-tls",
			Value:   true,
			Usage:   "Require TLS for SMTP",
			Sources: source("EMAIL_SECURE", "smtp.tls"),
		},
		// Payment gateway flags
		&cli.StringFlag{
			Name:    "sslcommerz-store-id",
			Value:   "test_store",
			Usage:   "SSLCommerz store ID",
			Sources: source("SSLCOMMERZ_STORE_ID", "payment.store_id"),
		},
		&cli.StringFlag{
			Name:    "sslcommerz-store-password",
			Value:   "test_password",
			Usage:   "SSLCommerz store password",
			Sources: source("SSLCOMMERZ_STORE_PASSWORD", "payment.store_password"),
		},
		&cli.BoolFlag{
			Name:    "sslcommerz-live",
			Usage:   "Use the live SSLCommerz gateway instead of the sandbox",
			Sources: source("SSLCOMMERZ_IS_LIVE", "payment.live"),
		},
		&cli.StringFlag{
			Name:    "sslcommerz-success-url",
			Usage:   "Redirect URL after a successful payment",
			Sources: source("SSLCOMMERZ_SUCCESS_URL", "payment.success_url"),
		},
		&cli.StringFlag{
			Name:    "sslcommerz-fail-url",
			Usage:   "Redirect URL after a failed payment",
			Sources: source("SSLCOMMERZ_FAIL_URL", "payment.fail_url"),
		},
		&cli.StringFlag{
			Name:    "sslcommerz-cancel-url",
			Usage:   "Redirect URL after a cancelled payment",
			Sources: source("SSLCOMMERZ_CANCEL_URL", "payment.cancel_url"),
		},
		&cli.StringFlag{
			Name:    "sslcommerz-ipn-url",
			Usage:   "Instant payment notification URL",
			Sources: source("SSLCOMMERZ_IPN_URL", "payment.ipn_url"),
		},
		// Seed flags
		&cli.StringFlag{
			Name:    "super-admin-email",
			Value:   "superadmin@sust.edu",
			Usage:   "Email of the seeded super admin",
			Sources: source("SUPER_ADMIN_EMAIL", "seed.super_admin_email"),
		},
		&cli.StringFlag{
			Name:    "super-admin-password",
			Usage:   "Password of the seeded super admin",
			Sources: source("SUPER_ADMIN_PASSWORD", "seed.super_admin_password"),
		},
	}
}
