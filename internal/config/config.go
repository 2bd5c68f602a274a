package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The JWT secrets are deliberately separate: access
// tokens and refresh tokens are signed with different keys so a token of one
// kind can never verify as the other.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	AccessSecret   string // secret used to sign access tokens
	RefreshSecret  string // secret used to sign refresh tokens
	AccessTTLMin   int    // access token time to live in minutes
	RefreshTTLDays int    // refresh token time to live in days
	BcryptCost     int    // bcrypt cost for password hashing
	StoreDriver    string // user store backend: "memory" (default) or "mysql"
	DBUser         string // database username (mysql driver only)
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	GroqAPIKey     string // API key for the Groq completion API (empty disables generation)
	GroqAPIURL     string // override for the Groq endpoint, mainly for tests
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Database variables
// are only required when STORE_DRIVER is set to "mysql".
func Load() Config {
	cfg := Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		AccessSecret:   must("JWT_ACCESS_SECRET"),
		RefreshSecret:  must("JWT_REFRESH_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),   // 15 in the reference deployment
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"), // 7 in the reference deployment
		BcryptCost:     mustInt("BCRYPT_COST"),
		StoreDriver:    getenv("STORE_DRIVER", "memory"),
		GroqAPIKey:     os.Getenv("GROQ_API_KEY"),
		GroqAPIURL:     os.Getenv("GROQ_API_URL"),
	}
	if cfg.StoreDriver == "mysql" {
		cfg.DBUser = must("DB_USER")
		cfg.DBPass = os.Getenv("DB_PASS") // empty allowed
		cfg.DBHost = must("DB_HOST")
		cfg.DBPort = must("DB_PORT")
		cfg.DBName = must("DB_NAME")
	}
	return cfg
}

// must retrieves the value of a required environment variable.  If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
// If conversion fails, the application logs a fatal error and exits.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
