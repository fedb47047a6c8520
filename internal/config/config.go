// Package config loads application configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
)

// Config holds all runtime configuration values.  Each field corresponds
// to an environment variable.  Booking-specific values (currency, deposit
// percentage, default nightly price) live here rather than in the database
// because the property owner sets them once per deployment.
type Config struct {
	Env               string // application environment (e.g. "dev", "prod")
	Port              string // HTTP port to listen on
	DBUser            string // database username
	DBPass            string // database password (optional)
	DBHost            string // database host address
	DBPort            string // database port number
	DBName            string // database name
	JWTSecret         string // secret used to sign admin JWTs
	AccessTTLMin      int    // admin access token time-to-live in minutes
	BcryptCost        int    // bcrypt cost for admin password hashing
	AdminUser         string // seed admin username (optional)
	AdminPass         string // seed admin password (optional)
	RoomsFile         string // path to the JSON room inventory file
	Currency          string // ISO 4217 currency code for all amounts
	DepositPercent    int    // deposit as a percentage of the booking total
	DefaultPriceCents int64  // nightly price for rooms with none configured
	MinGuestAge       int    // minimum buyer age; 0 disables the policy
}

// Load reads configuration values from environment variables and returns
// a Config.  Required variables are enforced by must() and missing values
// cause the program to exit with a fatal log message.
func Load() Config {
	return Config{
		Env:               must("APP_ENV"),
		Port:              must("APP_PORT"),
		DBUser:            must("DB_USER"),
		DBPass:            os.Getenv("DB_PASS"), // empty allowed
		DBHost:            must("DB_HOST"),
		DBPort:            must("DB_PORT"),
		DBName:            must("DB_NAME"),
		JWTSecret:         must("JWT_SECRET"),
		AccessTTLMin:      mustInt("ACCESS_TOKEN_TTL_MIN"),
		BcryptCost:        mustInt("BCRYPT_COST"),
		AdminUser:         os.Getenv("ADMIN_USER"),
		AdminPass:         os.Getenv("ADMIN_PASS"),
		RoomsFile:         must("ROOMS_FILE"),
		Currency:          getenv("CURRENCY", "EUR"),
		DepositPercent:    atoi(getenv("DEPOSIT_PERCENT", "20")),
		DefaultPriceCents: int64(atoi(getenv("DEFAULT_PRICE_CENTS", "10000"))),
		MinGuestAge:       atoi(getenv("MIN_GUEST_AGE", "0")),
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

// mustInt is like must() but converts the retrieved string into an integer.
func mustInt(key string) int {
	s := must(key)
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}
