package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field corresponds to
// an environment variable. The workbook path points at the xlsx file that
// stands in for the cloud spreadsheet; staff credentials configure the
// single staff account this internal tool knows about.
type Config struct {
	Env            string        // application environment (e.g. "dev", "prod")
	Port           string        // HTTP port to listen on
	WorkbookPath   string        // path of the xlsx workbook holding all sheets
	TemplatePath   string        // optional setlist template workbook
	SetlistDir     string        // directory generated setlists are written to
	JWTSecret      string        // secret used to sign JWTs
	AccessTTLMin   int           // access token time-to-live in minutes
	RefreshTTLDays int           // refresh token time-to-live in days
	BcryptCost     int           // bcrypt cost for the staff password hash
	StaffUser      string        // staff account username
	StaffPassHash  string        // bcrypt hash of the staff password
	RepoCacheTTL   time.Duration // repository read-cache expiry
	QueueEnabled   bool          // publish commit/drift events to RabbitMQ
}

// Load reads configuration values from environment variables and returns a
// Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		WorkbookPath:   must("WORKBOOK_PATH"),
		TemplatePath:   os.Getenv("SETLIST_TEMPLATE_PATH"), // empty -> plain workbook layout
		SetlistDir:     getenv("SETLIST_DIR", "setlists"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLMin:   mustInt("ACCESS_TOKEN_TTL_MIN"),
		RefreshTTLDays: mustInt("REFRESH_TOKEN_TTL_DAYS"),
		BcryptCost:     atoiDefault(os.Getenv("BCRYPT_COST"), 12),
		StaffUser:      must("STAFF_USER"),
		StaffPassHash:  must("STAFF_PASS_HASH"),
		RepoCacheTTL:   parseDur(getenv("REPO_CACHE_TTL", "10m")),
		QueueEnabled:   getenv("QUEUE_ENABLED", "false") == "true",
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func atoiDefault(s string, def int) int {
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func parseDur(s string) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return 10 * time.Minute
	}
	return d
}
