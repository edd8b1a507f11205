package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	DownloadModeAttachment = "attachment" // stream the variant back with a filename
	DownloadModeRedirect   = "redirect"   // hand the remote URL to the browser

	DefaultExtractorURL = "https://api.apocalypse.web.id/download/youtube"
	DefaultAIBaseURL    = "https://generativelanguage.googleapis.com/v1beta/openai/"
	DefaultAIModel      = "gemini-3-flash-preview"
)

type Config struct {
	ListenPort      string        // ex: ":8080"
	ShutdownTimeout time.Duration // ex: 5s
	RequestTimeout  time.Duration // per-request timeout for page and API routes (downloads excluded)
	WriteTimeout    time.Duration // http.Server write timeout, must cover a full download

	LogLevel  string // "debug" | "info" | "warn" | "error"
	PrettyLog bool   // true => zap dev (color), false => zap prod (JSON)

	// Extraction API
	ExtractorURL string // endpoint receiving ?url=<video url>

	// Chat assistant (OpenAI-compatible endpoint)
	AIAPIKey      string  // empty => every chat call fails with "Service error."
	AIBaseURL     string  // ex: Gemini OpenAI-compatible endpoint
	AIModel       string  // ex: gemini-3-flash-preview
	AITemperature float32 // low randomness, default 0.4

	// Sessions
	DefaultLang   string        // "id" | "en"
	DownloadMode  string        // "attachment" | "redirect"
	SessionTTL    time.Duration // lifetime of persisted keys and of the session cookie
	SessionIdle   time.Duration // in-memory session eviction after inactivity
	GCInterval    time.Duration // how often idle sessions are swept
	CookieSecure  bool          // mark the session cookie Secure (HTTPS deployments)
	RateBurst     int           // token bucket size per client IP on lookup/chat routes
	RateRefillMin int           // tokens refilled per minute per client IP

	// Redis (optional: empty address => in-memory store)
	RedisAddr           string        // ex: "localhost:6379"
	RedisUser           string        // optional
	RedisPassword       string        // optional
	RedisDB             int           // Redis DB number
	RedisDT             time.Duration // Redis dial timeout (ex: 5s)
	RedisRT             time.Duration // Redis read timeout (ex: 3s)
	RedisWT             time.Duration // Redis write timeout (ex: 3s)
	RedisMaxWait        time.Duration // max wait between retries (ex: 10s)
	RedisPingTimeout    time.Duration // timeout for each ping attempt (ex: 5s)
	RedisPoolSize       int           // Redis connection pool size
	RedisConnectTimeout time.Duration // Total time to retry connecting (ex: 30s)
	RedisRetryInterval  time.Duration // Initial wait between retries (ex: 2s, grows exponentially)
	RedisWarnThreshold  int           // warn after this many attempts

	AllowedHosts []string // optional, restrict access to specific Host headers
	AllowedCIDRS []string // optional, restrict access to infra endpoints (e.g. "1.2.3.4, 10.0.0.0/8")
	TrustProxy   bool     // true => trust X-Forwarded-For headers (e.g. cloudflared)
}

// Load reads an optional .env file, then the environment.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("[WARN] failed to load .env file: %v\n", err)
	}

	cfg := &Config{
		// Server settings
		ListenPort:      getenv("YTDOWN_LISTEN_PORT", ":8080"),
		ShutdownTimeout: mustDuration("YTDOWN_SHUTDOWN_TIMEOUT", 5*time.Second),
		RequestTimeout:  mustDuration("YTDOWN_REQUEST_TIMEOUT", 60*time.Second),
		WriteTimeout:    mustDuration("YTDOWN_WRITE_TIMEOUT", 10*time.Minute),

		// Logging
		LogLevel:  getenv("YTDOWN_LOG_LEVEL", "info"),
		PrettyLog: mustBool("YTDOWN_PRETTY_LOG", true),

		// Upstreams
		ExtractorURL:  getenv("YTDOWN_EXTRACTOR_URL", DefaultExtractorURL),
		AIAPIKey:      getenv("YTDOWN_AI_API_KEY", os.Getenv("API_KEY")),
		AIBaseURL:     getenv("YTDOWN_AI_BASE_URL", DefaultAIBaseURL),
		AIModel:       getenv("YTDOWN_AI_MODEL", DefaultAIModel),
		AITemperature: mustFloat32("YTDOWN_AI_TEMPERATURE", 0.4),

		// Sessions
		DefaultLang:   oneOf("YTDOWN_DEFAULT_LANG", "id", "id", "en"),
		DownloadMode:  oneOf("YTDOWN_DOWNLOAD_MODE", DownloadModeAttachment, DownloadModeAttachment, DownloadModeRedirect),
		SessionTTL:    mustDuration("YTDOWN_SESSION_TTL", 30*24*time.Hour),
		SessionIdle:   mustDuration("YTDOWN_SESSION_IDLE", 2*time.Hour),
		GCInterval:    mustDuration("YTDOWN_GC_INTERVAL", 10*time.Minute),
		CookieSecure:  mustBool("YTDOWN_COOKIE_SECURE", false),
		RateBurst:     getenvInt("YTDOWN_RATE_BURST", 10),
		RateRefillMin: getenvInt("YTDOWN_RATE_PER_MIN", 30),

		// Redis settings
		RedisAddr:           getenv("YTDOWN_REDIS_ADDR", ""),
		RedisUser:           getenv("YTDOWN_REDIS_USERNAME", ""),
		RedisPassword:       getenv("YTDOWN_REDIS_PASSWORD", ""),
		RedisDB:             getenvInt("YTDOWN_REDIS_DB", 0),
		RedisDT:             mustDuration("REDIS_DIAL_TIMEOUT", 5*time.Second),
		RedisRT:             mustDuration("REDIS_READ_TIMEOUT", 3*time.Second),
		RedisWT:             mustDuration("REDIS_WRITE_TIMEOUT", 3*time.Second),
		RedisMaxWait:        mustDuration("REDIS_MAX_WAIT", 10*time.Second),
		RedisPingTimeout:    mustDuration("REDIS_PING_TIMEOUT", 5*time.Second),
		RedisPoolSize:       getenvInt("REDIS_POOL_SIZE", 10),
		RedisConnectTimeout: mustDuration("REDIS_CONNECT_TIMEOUT", 30*time.Second),
		RedisRetryInterval:  mustDuration("REDIS_RETRY_INTERVAL", 2*time.Second),
		RedisWarnThreshold:  getenvInt("REDIS_WARN_THRESHOLD", 3),

		// Access restrictions
		AllowedHosts: splitAndTrim(getenv("YTDOWN_ALLOWED_HOSTS", "")),
		AllowedCIDRS: parseAllowedIPs(getenv("YTDOWN_ALLOWED_CIDRS", "")),
		TrustProxy:   mustBool("YTDOWN_TRUST_PROXY", false),
	}

	if cfg.SessionIdle <= 0 || cfg.GCInterval <= 0 {
		panic("❌ FATAL: YTDOWN_SESSION_IDLE and YTDOWN_GC_INTERVAL must be > 0")
	}

	// Log config only in debug mode with redacted sensitive fields
	if cfg.LogLevel == "debug" {
		log.Printf("[DEBUG] cfg: %+v\n", cfg.Redacted())
	}

	return cfg
}

// UsesRedis reports whether persisted session state goes to Redis.
func (c *Config) UsesRedis() bool {
	return c.RedisAddr != ""
}

// Redacted returns a copy safe to print.
func (c *Config) Redacted() Config {
	cfgCopy := *c
	if cfgCopy.RedisPassword != "" {
		cfgCopy.RedisPassword = "***REDACTED***"
	}
	if cfgCopy.RedisUser != "" {
		cfgCopy.RedisUser = "***REDACTED***"
	}
	if cfgCopy.AIAPIKey != "" {
		cfgCopy.AIAPIKey = "***REDACTED***"
	}
	return cfgCopy
}

// helpers
func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func mustBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		b, err := strconv.ParseBool(v)
		if err == nil {
			return b
		}
	}
	return def
}

func mustDuration(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func mustFloat32(key string, def float32) float32 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return def
}

// oneOf returns the env value if it is one of allowed, def when unset, and panics otherwise.
func oneOf(key, def string, allowed ...string) string {
	v := strings.ToLower(strings.TrimSpace(os.Getenv(key)))
	if v == "" {
		return def
	}
	for _, a := range allowed {
		if v == a {
			return v
		}
	}
	panic(fmt.Sprintf("❌ FATAL: Invalid value for %s: %q (allowed: %s)", key, v, strings.Join(allowed, ", ")))
}

func parseAllowedIPs(allowed string) []string {
	if allowed == "" {
		return nil
	}
	ips := make([]string, 0, 4)
	for _, ip := range splitAndTrim(allowed) {
		if ip != "" {
			ips = append(ips, ip)
		}
	}
	return ips
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	raw := strings.Split(s, ",")
	parts := make([]string, 0, len(raw))
	for _, part := range raw {
		trimmed := strings.TrimSpace(part)
		// Remove surrounding quotes if present
		trimmed = strings.Trim(trimmed, `"'`)
		if trimmed != "" {
			parts = append(parts, trimmed)
		}
	}
	return parts
}
