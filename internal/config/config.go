package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port                string
	ScraperURL          string
	AdvisorURL          string
	ScrapeTimeout       time.Duration
	AdvisorTimeout      time.Duration
	MaxRetry            time.Duration
	MarketplaceHost     string
	MaxReviewsPerRating int
	MockScraper         bool
	MockAdvisor         bool
}

// Load reads an optional .env file and then the process environment.
// Missing or malformed values fall back to defaults.
func Load(files ...string) Config {
	_ = godotenv.Load(files...) // a missing .env is fine

	return Config{
		Port:                envOr("PORT", "8080"),
		ScraperURL:          strings.TrimRight(envOr("SCRAPER_URL", "http://localhost:8000"), "/"),
		AdvisorURL:          strings.TrimRight(envOr("ADVISOR_URL", "http://localhost:8001"), "/"),
		ScrapeTimeout:       envSeconds("SCRAPE_TIMEOUT_SEC", 120),
		AdvisorTimeout:      envSeconds("ADVISOR_TIMEOUT_SEC", 60),
		MaxRetry:            envSeconds("MAX_RETRY_SEC", 45),
		MarketplaceHost:     envOr("MARKETPLACE_HOST", "tokopedia.com"),
		MaxReviewsPerRating: envInt("MAX_REVIEWS_PER_RATING", 15),
		MockScraper:         os.Getenv("USE_MOCK_SCRAPER") == "true",
		MockAdvisor:         os.Getenv("USE_MOCK_ADVISOR") == "true",
	}
}

func envOr(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envInt(k string, def int) int {
	v, err := strconv.Atoi(os.Getenv(k))
	if err != nil || v <= 0 {
		return def
	}
	return v
}

func envSeconds(k string, def int) time.Duration {
	return time.Duration(envInt(k, def)) * time.Second
}
