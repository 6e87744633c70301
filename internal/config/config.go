package config // package config loads application configuration from environment variables

import (
	"log"     // log is used to report configuration errors and halt execution
	"os"      // os provides access to environment variables
	"strconv" // strconv converts strings to other types
)

// Config holds all runtime configuration values.  Each field corresponds to
// an environment variable.  The types reflect how the values are used in
// the application: strings for identifiers and secrets, ints for durations
// and costs, bools for feature toggles.
type Config struct {
	Env                  string // application environment (e.g. "dev", "prod")
	Port                 string // HTTP port to listen on
	DBUser               string // database username
	DBPass               string // database password (optional)
	DBHost               string // database host address
	DBPort               string // database port number
	DBName               string // database name
	JWTSecret            string // secret used to sign JWTs
	AccessTTLHours       int    // access token time-to-live in hours
	BcryptCost           int    // bcrypt cost for password hashing
	OTPDigits            int    // number of decimal digits in a one-time password
	CompatSilentRegister bool   // reproduce the legacy silent no-op when register omits a password
}

// Load reads configuration values from environment variables and returns a
// Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.  Optional values fall
// back to sensible defaults.
func Load() Config {
	return Config{
		Env:                  must("APP_ENV"),      // environment (dev/test/prod)
		Port:                 must("APP_PORT"),     // port to bind the HTTP server
		DBUser:               must("DB_USER"),      // database user
		DBPass:               os.Getenv("DB_PASS"), // database password (empty allowed)
		DBHost:               must("DB_HOST"),      // database host
		DBPort:               must("DB_PORT"),      // database port
		DBName:               must("DB_NAME"),      // database name
		JWTSecret:            must("JWT_SECRET"),   // secret used for signing JWTs
		AccessTTLHours:       intDefault("ACCESS_TOKEN_TTL_HOURS", 24),
		BcryptCost:           intDefault("BCRYPT_COST", 10),
		OTPDigits:            intDefault("OTP_DIGITS", 6),
		CompatSilentRegister: boolDefault("COMPAT_SILENT_REGISTER", false),
	}
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

// intDefault reads an integer environment variable, returning def when the
// variable is unset.  A set-but-invalid value is a configuration mistake
// and terminates the program, matching must().
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

// boolDefault reads a boolean environment variable, returning def when the
// variable is unset or unrecognised.
func boolDefault(key string, def bool) bool {
	switch os.Getenv(key) {
	case "1", "true", "TRUE", "True", "yes", "YES", "on", "ON":
		return true
	case "0", "false", "FALSE", "False", "no", "NO", "off", "OFF":
		return false
	}
	return def
}
