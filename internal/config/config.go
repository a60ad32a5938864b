// Package config provides application configuration loaded from environment
// variables with defaults and validation. It centralizes server timeouts,
// logging, storage, the survey hand-off secret and windows, report caching,
// portal sign-in, optional Redis/AMQP integrations, and observability.
package config

import (
	"errors"
	"os"
	"strconv"
	"strings"
	"time"
)

// CORSConfig defines Cross-Origin Resource Sharing settings.
type CORSConfig struct {
	AllowedOrigins []string
}

// SecurityConfig defines security-related settings such as HSTS.
type SecurityConfig struct {
	EnableHSTS bool
	HSTSMaxAge time.Duration
}

// OTELConfig defines OpenTelemetry observability settings.
type OTELConfig struct {
	Enabled     bool    // OTEL_ENABLED
	Endpoint    string  // OTEL_EXPORTER_OTLP_ENDPOINT (e.g. "otel:4317")
	Insecure    bool    // OTEL_EXPORTER_OTLP_INSECURE (true if no TLS)
	ServiceName string  // OTEL_SERVICE_NAME (e.g. "go-survey-backend")
	SampleRatio float64 // OTEL_TRACES_SAMPLER_ARG in [0..1]
}

// StoreConfig selects and tunes the persistence backend.
type StoreConfig struct {
	Driver  string // sqlite|memory|mysql|postgres
	Path    string // SQLite file path (sqlite driver)
	DSN     string // connection string (mysql/postgres)
	Seed    bool   // seed default employees/questions/users on empty tables
	Tracing bool   // attach the GORM OpenTelemetry plugin
}

// AuthConfig configures the signed hand-off between the identity source and
// the survey.
type AuthConfig struct {
	SharedSecret   string        // AUTH_SHARED_SECRET
	GroupID        string        // AUTH_GROUP_ID, default group for issued payloads
	Endpoint       string        // AUTH_ENDPOINT, delegated authentication (optional)
	Timeout        time.Duration // AUTH_TIMEOUT, bound on the delegated call
	TokenTTL       time.Duration // AUTH_TOKEN_TTL, payload freshness window
	MockEnabled    bool          // MOCK_AUTH_ENABLED, mount the mock delegated endpoint
	MockSecret     string        // MOCK_AUTH_SHARED_SECRET
	CookieSecure   bool          // COOKIE_SECURE, mark survey cookies Secure
	SupportedLangs []string      // SURVEY_LANGS
	DefaultLang    string        // SURVEY_DEFAULT_LANG
}

// SurveyConfig holds survey lifecycle and reporting knobs.
type SurveyConfig struct {
	DailyWindow    time.Duration // SURVEY_DAILY_WINDOW, rolling once-per-day window
	ReportCacheTTL time.Duration // REPORT_CACHE_TTL
}

// PortalConfig configures admin and portal sign-in.
type PortalConfig struct {
	AdminUsername string
	AdminPassword string
	JWTSecret     string
	SessionTTL    time.Duration
}

// RedisConfig points the report cache at a shared Redis. Empty Addr keeps the
// cache in process memory.
type RedisConfig struct {
	Addr     string
	Password string
	DB       int
}

// AMQPConfig configures completion-event publishing. Empty URL disables it.
type AMQPConfig struct {
	URL   string
	Queue string
}

// Config holds all configuration values for the application.
type Config struct {
	// Server
	Port              string        // just the number
	ReadTimeout       time.Duration // e.g. 15s
	ReadHeaderTimeout time.Duration // e.g. 10s
	WriteTimeout      time.Duration // e.g. 20s
	IdleTimeout       time.Duration // e.g. 60s
	MaxHeaderBytes    int           // bytes
	GinMode           string        // debug|release|test

	// Logging / Docs
	LogLevel       string // debug|info|warn|error|fatal|panic
	LogPretty      bool   // pretty console logs in dev
	SwaggerEnabled bool   // enable Swagger UI route
	APIBasePath    string // base path for API routes

	// Rate limiting
	RateRPS   float64 // tokens per second (>= 0)
	RateBurst int     // bucket size (>= 1)

	// Web protection
	CORS     CORSConfig
	Security SecurityConfig

	// App
	Store  StoreConfig
	Auth   AuthConfig
	Survey SurveyConfig
	Portal PortalConfig
	Redis  RedisConfig
	AMQP   AMQPConfig

	// Observability
	OTEL OTELConfig
}

// MustLoad loads the configuration and panics if validation fails.
func MustLoad() Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}
	return cfg
}

// Load reads configuration from environment variables,
// applies defaults, normalizes values, and validates the result.
func Load() (Config, error) {
	cfg := Config{
		// Server
		Port:              getenv("PORT", "8080"),
		ReadTimeout:       getdur("READ_TIMEOUT", 15*time.Second),
		ReadHeaderTimeout: getdur("READ_HEADER_TIMEOUT", 10*time.Second),
		WriteTimeout:      getdur("WRITE_TIMEOUT", 20*time.Second),
		IdleTimeout:       getdur("IDLE_TIMEOUT", 60*time.Second),
		MaxHeaderBytes:    getint("MAX_HEADER_BYTES", 1<<20),
		GinMode:           strings.ToLower(getenv("GIN_MODE", "release")),

		// Logging / Docs
		LogLevel:       strings.ToLower(getenv("LOG_LEVEL", "info")),
		LogPretty:      getbool("LOG_PRETTY", false),
		SwaggerEnabled: getbool("SWAGGER_ENABLED", false),
		APIBasePath:    normalizeBasePath(getenv("API_BASE_PATH", "/api/v1")),

		// Rate limiting
		RateRPS:   getfloat("RATE_RPS", 5.0),
		RateBurst: getint("RATE_BURST", 10),

		// Web protection
		CORS: CORSConfig{
			AllowedOrigins: splitCSV(getenv("CORS_ALLOWED_ORIGINS", "")),
		},
		Security: SecurityConfig{
			EnableHSTS: getbool("ENABLE_HSTS", false),
			HSTSMaxAge: getdur("HSTS_MAX_AGE", 180*24*time.Hour),
		},

		Store: StoreConfig{
			Driver:  strings.ToLower(getenv("DB_DRIVER", "sqlite")),
			Path:    getenv("DB_PATH", "survey.db"),
			DSN:     getenv("DB_DSN", ""),
			Seed:    getbool("DB_SEED", true),
			Tracing: getbool("OTEL_ENABLED", false),
		},
		Auth: AuthConfig{
			SharedSecret:   getenv("AUTH_SHARED_SECRET", "shared-mvp-secret"),
			GroupID:        getenv("AUTH_GROUP_ID", "G-DEFAULT"),
			Endpoint:       strings.TrimSpace(getenv("AUTH_ENDPOINT", "")),
			Timeout:        getdur("AUTH_TIMEOUT", 5*time.Second),
			TokenTTL:       getdur("AUTH_TOKEN_TTL", 5*time.Minute),
			MockEnabled:    getbool("MOCK_AUTH_ENABLED", false),
			MockSecret:     getenv("MOCK_AUTH_SHARED_SECRET", "MOCK_SHARED_SECRET"),
			CookieSecure:   getbool("COOKIE_SECURE", false),
			SupportedLangs: splitCSV(getenv("SURVEY_LANGS", "fa,en,ar")),
			DefaultLang:    strings.ToLower(getenv("SURVEY_DEFAULT_LANG", "fa")),
		},
		Survey: SurveyConfig{
			DailyWindow:    getdur("SURVEY_DAILY_WINDOW", 24*time.Hour),
			ReportCacheTTL: getdur("REPORT_CACHE_TTL", 30*time.Second),
		},
		Portal: PortalConfig{
			AdminUsername: getenv("ADMIN_USERNAME", "admin"),
			AdminPassword: getenv("ADMIN_PASSWORD", "admin123"),
			JWTSecret:     getenv("JWT_SECRET", "dev-portal-secret"),
			SessionTTL:    getdur("PORTAL_SESSION_TTL", 8*time.Hour),
		},
		Redis: RedisConfig{
			Addr:     strings.TrimSpace(getenv("REDIS_ADDR", "")),
			Password: getenv("REDIS_PASSWORD", ""),
			DB:       getint("REDIS_DB", 0),
		},
		AMQP: AMQPConfig{
			URL:   strings.TrimSpace(getenv("AMQP_URL", "")),
			Queue: getenv("AMQP_QUEUE", "survey.completed"),
		},

		// Observability (OpenTelemetry)
		OTEL: OTELConfig{
			Enabled:     getbool("OTEL_ENABLED", false),
			Endpoint:    getenv("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
			Insecure:    getbool("OTEL_EXPORTER_OTLP_INSECURE", true),
			ServiceName: getenv("OTEL_SERVICE_NAME", "go-survey-backend"),
			SampleRatio: getfloat("OTEL_TRACES_SAMPLER_ARG", 1.0),
		},
	}

	// --- normalization ---
	if cfg.LogLevel == "warning" {
		cfg.LogLevel = "warn"
	}
	switch cfg.GinMode {
	case "debug", "release", "test":
	default:
		cfg.GinMode = "release"
	}
	for i, l := range cfg.Auth.SupportedLangs {
		cfg.Auth.SupportedLangs[i] = strings.ToLower(l)
	}

	// --- validation ---
	switch cfg.LogLevel {
	case "debug", "info", "warn", "error", "fatal", "panic":
	default:
		return cfg, errors.New("LOG_LEVEL must be one of: debug, info, warn, error, fatal, panic")
	}
	if strings.TrimSpace(cfg.Port) == "" {
		return cfg, errors.New("PORT must not be empty")
	}
	if cfg.ReadTimeout <= 0 || cfg.ReadHeaderTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return cfg, errors.New("timeouts must be positive durations")
	}
	if cfg.MaxHeaderBytes <= 0 {
		return cfg, errors.New("MAX_HEADER_BYTES must be > 0")
	}
	if cfg.RateRPS < 0 {
		return cfg, errors.New("RATE_RPS must be >= 0")
	}
	if cfg.RateBurst < 1 {
		return cfg, errors.New("RATE_BURST must be >= 1")
	}
	if cfg.Security.HSTSMaxAge < 0 {
		return cfg, errors.New("HSTS_MAX_AGE must be >= 0")
	}
	switch cfg.Store.Driver {
	case "sqlite":
		if strings.TrimSpace(cfg.Store.Path) == "" {
			return cfg, errors.New("DB_PATH must not be empty")
		}
	case "memory":
	case "mysql", "postgres":
		if strings.TrimSpace(cfg.Store.DSN) == "" {
			return cfg, errors.New("DB_DSN is required for mysql and postgres drivers")
		}
	default:
		return cfg, errors.New("DB_DRIVER must be one of: sqlite, memory, mysql, postgres")
	}
	if strings.TrimSpace(cfg.Auth.SharedSecret) == "" {
		return cfg, errors.New("AUTH_SHARED_SECRET must not be empty")
	}
	if cfg.Auth.Timeout <= 0 {
		return cfg, errors.New("AUTH_TIMEOUT must be > 0")
	}
	if cfg.Auth.TokenTTL <= 0 {
		return cfg, errors.New("AUTH_TOKEN_TTL must be > 0")
	}
	if len(cfg.Auth.SupportedLangs) == 0 {
		return cfg, errors.New("SURVEY_LANGS must list at least one language")
	}
	if cfg.Survey.DailyWindow <= 0 {
		return cfg, errors.New("SURVEY_DAILY_WINDOW must be > 0")
	}
	if cfg.Survey.ReportCacheTTL <= 0 {
		return cfg, errors.New("REPORT_CACHE_TTL must be > 0")
	}
	if strings.TrimSpace(cfg.Portal.JWTSecret) == "" {
		return cfg, errors.New("JWT_SECRET must not be empty")
	}
	if cfg.Portal.SessionTTL <= 0 {
		return cfg, errors.New("PORTAL_SESSION_TTL must be > 0")
	}
	if cfg.OTEL.SampleRatio < 0 || cfg.OTEL.SampleRatio > 1 {
		return cfg, errors.New("OTEL_TRACES_SAMPLER_ARG must be in [0,1]")
	}

	return cfg, nil
}

// ---- helpers (no external deps) ----

func getenv(k, def string) string {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		return v
	}
	return def
}

func getfloat(k string, def float64) float64 {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return def
}

func getint(k string, def int) int {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return def
}

func getbool(k string, def bool) bool {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "1", "true", "yes", "y", "on":
			return true
		case "0", "false", "no", "n", "off":
			return false
		}
	}
	return def
}

func getdur(k string, def time.Duration) time.Duration {
	if v, ok := os.LookupEnv(k); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}

func splitCSV(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		t := strings.TrimSpace(p)
		if t != "" {
			out = append(out, t)
		}
	}
	return out
}

// normalizeBasePath ensures leading '/' and strips trailing '/' (except root).
func normalizeBasePath(p string) string {
	p = strings.TrimSpace(p)
	if p == "" {
		return "/"
	}
	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}
	if len(p) > 1 && strings.HasSuffix(p, "/") {
		p = strings.TrimRight(p, "/")
	}
	return p
}
