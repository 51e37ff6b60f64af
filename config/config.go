package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all application-level configuration
type Config struct {
	// Browser
	Headless  bool
	UserAgent string
	ProxyFile string

	// Collection
	StableRounds   int           // consecutive no-growth scroll rounds before giving up
	ScrollSettle   time.Duration // wait after each feed scroll
	SearchTimeout  time.Duration // budget for the search page to render a feed
	MaxRetries     int
	RateLimitDelay int // milliseconds between listing visits

	// Detail extraction
	ListingTimeout     time.Duration
	InteractionSettle  time.Duration // wait after expand/tab clicks
	InteractionTimeout time.Duration

	// Contact mining
	MineContacts   bool
	WebsiteTimeout time.Duration // per visited page
	SocialSettle   time.Duration // extra wait before the social-profile step
	VerifyEmailMX  bool

	// Collaborators
	ClassifierCmd     string
	ClassifierTimeout time.Duration
	EnricherCmd       string

	// Output
	OutputDir   string
	CSVExport   bool
	DatabaseURL string
	SQLitePath  string

	LogLevel string
}

// Load reads .env (if present) and then environment variables, falling back to defaults
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Headless:  getEnvBool("HEADLESS", true),
		UserAgent: getEnv("USER_AGENT", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"),
		ProxyFile: getEnv("PROXY_FILE", ""),

		StableRounds:   getEnvInt("STABLE_ROUNDS", 5),
		ScrollSettle:   getEnvDuration("SCROLL_SETTLE_MS", 1500*time.Millisecond),
		SearchTimeout:  getEnvDuration("SEARCH_TIMEOUT_MS", 45*time.Second),
		MaxRetries:     getEnvInt("MAX_RETRIES", 3),
		RateLimitDelay: getEnvInt("RATE_LIMIT_DELAY_MS", 2000),

		ListingTimeout:     getEnvDuration("LISTING_TIMEOUT_MS", 45*time.Second),
		InteractionSettle:  getEnvDuration("INTERACTION_SETTLE_MS", 1000*time.Millisecond),
		InteractionTimeout: getEnvDuration("INTERACTION_TIMEOUT_MS", 8*time.Second),

		MineContacts:   getEnvBool("MINE_CONTACTS", true),
		WebsiteTimeout: getEnvDuration("WEBSITE_TIMEOUT_MS", 20*time.Second),
		SocialSettle:   getEnvDuration("SOCIAL_SETTLE_MS", 1500*time.Millisecond),
		VerifyEmailMX:  getEnvBool("VERIFY_EMAIL_MX", false),

		ClassifierCmd:     getEnv("CLASSIFIER_CMD", ""),
		ClassifierTimeout: getEnvDuration("CLASSIFIER_TIMEOUT_MS", 30*time.Second),
		EnricherCmd:       getEnv("ENRICHER_CMD", ""),

		OutputDir:   getEnv("OUTPUT_DIR", "output"),
		CSVExport:   getEnvBool("CSV_EXPORT", true),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		SQLitePath:  getEnv("SQLITE_PATH", ""),

		LogLevel: getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil {
			return n
		}
	}
	return defaultVal
}

// getEnvDuration reads a millisecond count
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		if n, err := strconv.Atoi(val); err == nil && n >= 0 {
			return time.Duration(n) * time.Millisecond
		}
	}
	return defaultVal
}

func getEnvBool(key string, defaultVal bool) bool {
	val := strings.TrimSpace(os.Getenv(key))
	if val == "" {
		return defaultVal
	}
	b, err := strconv.ParseBool(val)
	if err != nil {
		return defaultVal
	}
	return b
}
