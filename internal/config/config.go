package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds everything the web frontend reads from the environment.
// Every piece of business state lives behind the store API; this is only
// wiring: where the backend is, how cookies are signed, and how documents
// are presented.
type Config struct {
	Addr         string
	StoreAPIURL  string
	CookieSecret []byte
	CookieSecure bool

	RequestTimeout  time.Duration
	ShutdownTimeout time.Duration

	// ReceiptModal selects between overlay and standalone rendering for
	// receipt/invoice documents. A deliberate configuration choice, not a
	// page-structure probe.
	ReceiptModal bool

	OTELEndpoint string
}

func Load() *Config {
	return &Config{
		Addr:            getEnv("ADDR", ":8080"),
		StoreAPIURL:     getEnv("STORE_API_URL", "http://localhost:8000"),
		CookieSecret:    []byte(getEnv("COOKIE_SECRET", "dev-only-secret-change-me")),
		CookieSecure:    getBool("COOKIE_SECURE", false),
		RequestTimeout:  getDuration("REQUEST_TIMEOUT", 30*time.Second),
		ShutdownTimeout: getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
		ReceiptModal:    getBool("RECEIPT_MODAL", true),
		OTELEndpoint:    getEnv("OTEL_ENDPOINT", ""),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getBool(key string, def bool) bool {
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

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
