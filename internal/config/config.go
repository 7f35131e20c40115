package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

// Config is loaded once at process start and passed explicitly into every
// constructor. It is read-only for the process lifetime.
type Config struct {
	HTTPAddr string
	LogLevel string

	// AllowedCIDRs is a comma-separated allow-list of caller CIDR ranges.
	// Empty, or any entry of 0.0.0.0/0 (or ::/0), disables IP filtering.
	AllowedCIDRs string

	// APIKey, when non-empty, requires callers to present
	// "Authorization: Bearer <APIKey>". Empty disables auth.
	// The handler receives only the resolved secret value; secret
	// lifecycle is managed by the deployment layer.
	APIKey string

	// TrustProxy makes the first X-Forwarded-For entry authoritative for
	// the caller IP. This trusts the fronting proxy and is spoofable if the
	// service is reachable directly; disable it to make the transport-layer
	// source address authoritative instead.
	TrustProxy bool

	// VerboseRequestLog additionally emits each inbound request body as a
	// separate request_verbatim log record. May include sensitive content.
	VerboseRequestLog bool

	SSEChunkSize int
	ModelName    string
}

func MustLoad() Config {
	cfg := Config{
		HTTPAddr:          getenv("HTTP_ADDR", ":8080"),
		LogLevel:          getenv("LOG_LEVEL", "info"),
		AllowedCIDRs:      os.Getenv("ALLOWED_CALLER_CIDR"),
		APIKey:            os.Getenv("API_KEY"),
		TrustProxy:        getbool("TRUST_PROXY", true),
		VerboseRequestLog: getbool("VERBOSE_REQUEST_LOG", false),
		SSEChunkSize:      getint("SSE_CHUNK_SIZE", 24),
		ModelName:         getenv("MODEL_NAME", "eliza"),
	}
	if cfg.SSEChunkSize <= 0 {
		log.Fatal("SSE_CHUNK_SIZE must be a positive integer")
	}
	return cfg
}

func getenv(k, def string) string {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	return v
}

func getbool(k string, def bool) bool {
	v := strings.ToLower(os.Getenv(k))
	if v == "" {
		return def
	}
	switch v {
	case "1", "true", "yes":
		return true
	default:
		return false
	}
}

func getint(k string, def int) int {
	v := os.Getenv(k)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("%s must be an integer, got %q", k, v)
	}
	return n
}
