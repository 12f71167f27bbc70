package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
	"strings" // strings splits the CORS origin list
)

// Config holds all runtime configuration values. Each field corresponds
// to an environment variable. The types reflect how the values are used
// in the application: strings for identifiers and secrets, ints for
// durations and costs.
type Config struct {
	Env          string   // application environment (e.g. "dev", "prod")
	Port         string   // HTTP port to listen on
	DBUser       string   // database username
	DBPass       string   // database password (optional)
	DBHost       string   // database host address
	DBPort       string   // database port number
	DBName       string   // database name
	JWTSecret    string   // secret used to sign JWTs
	AccessTTLMin int      // access token time-to-live in minutes
	BcryptCost   int      // bcrypt cost for password hashing
	CORSOrigins  []string // allowed cross-origin hosts
}

// Load reads configuration values from environment variables and returns
// a Config. Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message. The token TTL and
// bcrypt cost have defaults matching production behaviour (30 minutes,
// cost 10) so only the secrets and the database location are mandatory.
func Load() Config {
	return Config{
		Env:          getenvDefault("APP_ENV", "dev"),
		Port:         getenvDefault("APP_PORT", "8000"),
		DBUser:       must("DB_USER"),
		DBPass:       os.Getenv("DB_PASS"), // empty allowed
		DBHost:       must("DB_HOST"),
		DBPort:       must("DB_PORT"),
		DBName:       must("DB_NAME"),
		JWTSecret:    must("JWT_SECRET"),
		AccessTTLMin: intDefault("ACCESS_TOKEN_TTL_MIN", 30),
		BcryptCost:   intDefault("BCRYPT_COST", 10),
		CORSOrigins:  parseOrigins(getenvDefault("CORS_ORIGINS", "*")),
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

// getenvDefault returns the value of key or def when unset/empty.
func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// intDefault reads an integer env var, falling back to def when the
// variable is unset. A present but malformed value is fatal.
func intDefault(key string, def int) int {
	s := os.Getenv(key)
	if s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

// parseOrigins splits a comma-separated origin list, trimming blanks.
func parseOrigins(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		out = []string{"*"}
	}
	return out
}
