package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Store drivers.
const (
	StoreFirestore = "firestore"
	StorePostgres  = "postgres"
	StoreMemory    = "memory"
)

// Storage drivers.
const (
	StorageFirebase = "firebase"
	StorageS3       = "s3"
	StorageNone     = "none"
)

// Config holds all application configuration loaded from environment variables.
// It is the single source of truth for runtime parameters.
type Config struct {
	Port      string
	Env       string
	JWTSecret string

	Session  SessionConfig
	Admin    AdminConfig
	Store    StoreConfig
	Firebase FirebaseConfig
	DB       DatabaseConfig
	Storage  StorageConfig
	S3       S3Config
	Redis    RedisConfig
	Login    LoginConfig
	API      APIConfig
	Site     SiteConfig
}

// SessionConfig controls the lifetime of issued admin sessions.
type SessionConfig struct {
	TTL          time.Duration
	CookieName   string
	CookieSecure bool
}

// AdminConfig holds the bootstrap admin identity. When both Email and Password
// are set the account is created on startup if it does not exist yet.
type AdminConfig struct {
	Email    string
	Password string
	Name     string
}

// StoreConfig selects the document store backend.
type StoreConfig struct {
	Driver string
}

// FirebaseConfig contains the service account used for Firestore and Storage.
type FirebaseConfig struct {
	ProjectID       string
	ClientEmail     string
	PrivateKey      string
	CredentialsFile string
	StorageBucket   string
}

// Configured reports whether enough credentials are present to build a client.
func (f FirebaseConfig) Configured() bool {
	if f.ProjectID == "" {
		return false
	}
	return f.CredentialsFile != "" || (f.ClientEmail != "" && f.PrivateKey != "")
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	Host           string
	Port           string
	User           string
	Password       string
	Name           string
	SSLMode        string
	MigrationsPath string
}

// StorageConfig selects the object storage backend.
type StorageConfig struct {
	Driver string
}

// S3Config contains AWS S3 configuration
type S3Config struct {
	Region          string
	Bucket          string
	Endpoint        string
	AccessKeyID     string
	SecretAccessKey string
}

// RedisConfig contains Redis connection parameters.
type RedisConfig struct {
	Host     string
	Port     string
	Password string
	DB       int
}

// LoginConfig is the server-side lockout policy for admin sign-in.
type LoginConfig struct {
	MaxAttempts int
	Lockout     time.Duration
}

// APIConfig holds behaviour switches for the JSON API.
type APIConfig struct {
	// ListFailOpen makes list endpoints answer with an empty array when the
	// store fails instead of an error status.
	ListFailOpen   bool
	AllowedOrigins []string
	// TrustedProxies lists the proxy IPs or CIDRs whose X-Forwarded-For is
	// believed. Empty trusts none, so the client IP is the peer address.
	TrustedProxies []string
}

// SiteConfig holds marketing details rendered on public pages.
type SiteConfig struct {
	Name  string
	Phone string
}

// Load reads configuration from environment variables. If a .env file exists
// in the working directory, it will be loaded first. It returns a populated
// Config or an error with a human-friendly message.
func Load() (*Config, error) {
	// Load .env if present; ignore error if file is missing so that production
	// environments relying solely on real environment variables keep working.
	_ = godotenv.Load()

	cfg := &Config{}

	// Server
	cfg.Port = getEnv("PORT", "8080")
	cfg.Env = getEnv("ENV", "development")
	cfg.JWTSecret = getEnv("JWT_SECRET", "")

	cfg.Admin = AdminConfig{
		Email:    strings.TrimSpace(getEnv("ADMIN_EMAIL", "")),
		Password: getEnv("ADMIN_PASSWORD", ""),
		Name:     getEnv("ADMIN_NAME", "Admin"),
	}

	cfg.Store = StoreConfig{Driver: strings.ToLower(getEnv("STORE_DRIVER", StoreFirestore))}

	// Firebase (Firestore + Storage)
	cfg.Firebase = FirebaseConfig{
		ProjectID:       getEnv("FIREBASE_PROJECT_ID", ""),
		ClientEmail:     getEnv("FIREBASE_CLIENT_EMAIL", ""),
		PrivateKey:      strings.ReplaceAll(getEnv("FIREBASE_PRIVATE_KEY", ""), `\n`, "\n"),
		CredentialsFile: getEnv("FIREBASE_CREDENTIALS_FILE", ""),
		StorageBucket:   getEnv("FIREBASE_STORAGE_BUCKET", ""),
	}

	// Database
	cfg.DB = DatabaseConfig{
		Host:           getEnv("DB_HOST", ""),
		Port:           getEnv("DB_PORT", "5432"),
		User:           getEnv("DB_USER", ""),
		Password:       getEnv("DB_PASSWORD", ""),
		Name:           getEnv("DB_NAME", ""),
		SSLMode:        getEnv("DB_SSLMODE", "disable"),
		MigrationsPath: getEnv("MIGRATIONS_PATH", "file://migrations"),
	}

	cfg.Storage = StorageConfig{Driver: strings.ToLower(getEnv("STORAGE_DRIVER", StorageFirebase))}

	cfg.S3 = S3Config{
		Region:          getEnv("S3_REGION", "us-east-2"),
		Bucket:          getEnv("S3_BUCKET", ""),
		Endpoint:        getEnv("S3_ENDPOINT", ""),
		AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
		SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
	}

	// Redis
	cfg.Redis = RedisConfig{
		Host:     getEnv("REDIS_HOST", ""),
		Port:     getEnv("REDIS_PORT", "6379"),
		Password: getEnv("REDIS_PASSWORD", ""),
		DB:       getEnvInt("REDIS_DB", 0),
	}

	cfg.API = APIConfig{
		ListFailOpen:   getEnvBool("LIST_FAIL_OPEN", true),
		AllowedOrigins: splitList(getEnv("ALLOWED_ORIGINS", "localhost:3000,127.0.0.1:3000")),
		TrustedProxies: splitList(getEnv("TRUSTED_PROXIES", "")),
	}

	cfg.Site = SiteConfig{
		Name:  getEnv("SITE_NAME", "Affordable Billiards"),
		Phone: getEnv("SITE_PHONE", "586-552-6053"),
	}

	// Durations
	var err error
	if cfg.Session.TTL, err = parseDurationEnv("SESSION_TTL", "24h"); err != nil {
		return nil, fmt.Errorf("invalid SESSION_TTL: %w", err)
	}
	cfg.Session.CookieName = getEnv("SESSION_COOKIE", "session")
	cfg.Session.CookieSecure = getEnvBool("SESSION_COOKIE_SECURE", cfg.Env == "production")

	cfg.Login.MaxAttempts = getEnvInt("LOGIN_MAX_ATTEMPTS", 3)
	if cfg.Login.Lockout, err = parseDurationEnv("LOGIN_LOCKOUT", "5m"); err != nil {
		return nil, fmt.Errorf("invalid LOGIN_LOCKOUT: %w", err)
	}
	if cfg.Login.MaxAttempts < 1 {
		return nil, errors.New("LOGIN_MAX_ATTEMPTS must be at least 1")
	}

	switch cfg.Store.Driver {
	case StoreFirestore, StoreMemory:
	case StorePostgres:
		if cfg.DB.Host == "" || cfg.DB.User == "" || cfg.DB.Name == "" {
			return nil, errors.New("database configuration incomplete: ensure DB_HOST, DB_USER, and DB_NAME are set")
		}
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q: use firestore, postgres or memory", cfg.Store.Driver)
	}

	switch cfg.Storage.Driver {
	case StorageFirebase, StorageNone:
	case StorageS3:
		if cfg.S3.Bucket == "" {
			return nil, errors.New("S3_BUCKET must be set when STORAGE_DRIVER=s3")
		}
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q: use firebase, s3 or none", cfg.Storage.Driver)
	}

	// Validate JWT_SECRET
	if cfg.JWTSecret == "" {
		return nil, errors.New("JWT_SECRET must be set for authentication")
	}

	return cfg, nil
}

// getEnv returns the value of an environment variable or a default if empty.
func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// getEnvInt returns the value of an environment variable as an integer or a default if empty/invalid.
func getEnvInt(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}

func getEnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// parseDurationEnv reads an environment variable and parses it as time.Duration.
// If the variable is empty, it falls back to the provided default value.
func parseDurationEnv(key, def string) (time.Duration, error) {
	raw := getEnv(key, def)
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, err
	}
	if d < 0 {
		return 0, fmt.Errorf("duration must be >= 0")
	}
	return d, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.ToLower(strings.TrimSpace(part)); p != "" {
			out = append(out, p)
		}
	}
	return out
}
