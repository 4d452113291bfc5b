package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const DefaultAPIURL = "http://localhost:8000"

type Config struct {
	APIURL     string
	ListenAddr string
	LogLevel   string

	StorageDSN string

	KafkaBrokers []string
	EventsTopic  string

	HTTPTimeout time.Duration
	CartID      int

	Tuning Tuning
}

// Load reads .env when present, then the process environment. A YAML file named by
// STOREFRONT_CONFIG, if set, overlays the tuning values.
func Load() (*Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Printf("Notice: .env file not found: %v. Using system environment variables", err)
	}

	cfg := &Config{
		APIURL:     strings.TrimRight(EnvDefault("API_URL", DefaultAPIURL), "/"),
		ListenAddr: EnvDefault("LISTEN_ADDR", ":3000"),
		LogLevel:   EnvDefault("LOG_LEVEL", "info"),

		StorageDSN: EnvDefault("STORAGE_DSN", "file:storefront.db"),

		KafkaBrokers: CSV(os.Getenv("KAFKA_BROKERS")),
		EventsTopic:  EnvDefault("EVENTS_TOPIC", "storefront_events"),

		HTTPTimeout: EnvDurationDefault("HTTP_TIMEOUT", 0),
		CartID:      EnvIntDefault("CART_ID", 1),

		Tuning: DefaultTuning(),
	}

	if path := os.Getenv("STOREFRONT_CONFIG"); path != "" {
		if err := cfg.Tuning.LoadFile(path); err != nil {
			return nil, err
		}
	}

	return cfg, nil
}

func CSV(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}

func EnvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func EnvIntDefault(key string, def int) int {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func EnvDurationDefault(key string, def time.Duration) time.Duration {
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
