package shared

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

type Config struct {
	AppEnv       string
	HTTPAddr     string
	MetricsAddr  string
	MySQLDSN     string
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	ShopperBase  string
	ShopperKey   string
	ShopperRPS   int
	Workers      int
	MentionCount int
	ScanIDs      []int64
	CacheTTL     time.Duration
}

func Load() Config {
	atoi := func(k string, def int) int {
		if v := os.Getenv(k); v != "" {
			if n, err := strconv.Atoi(v); err == nil {
				return n
			}
		}
		return def
	}
	c := Config{
		AppEnv:       env("APP_ENV", "prod"),
		HTTPAddr:     env("HTTP_ADDR", ":8080"),
		MetricsAddr:  env("METRICS_ADDR", ":9100"),
		MySQLDSN:     env("MYSQL_DSN", "root:root@tcp(localhost:3306)/ratewatch?parseTime=true&charset=utf8mb4,utf8&loc=UTC"),
		RedisAddr:    env("REDIS_ADDR", "localhost:6379"),
		RedisDB:      atoi("REDIS_DB", 0),
		RedisPass:    env("REDIS_PASSWORD", ""),
		ShopperBase:  env("RATESHOPPER_BASE_URL", "https://api.rateshopper.example/v2"),
		ShopperKey:   env("RATESHOPPER_API_KEY", ""),
		ShopperRPS:   atoi("RATESHOPPER_RPS", 5),
		Workers:      atoi("SCAN_WORKERS", 8),
		MentionCount: atoi("SCAN_MENTION_COUNT", 50),
		ScanIDs:      ids("SCAN_PROPERTY_IDS"),
		CacheTTL:     time.Duration(atoi("CACHE_TTL_SECONDS", 900)) * time.Second,
	}
	if c.ShopperKey == "" {
		log.Warn().Msg("RATESHOPPER_API_KEY is empty")
	}
	return c
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// ids parses a comma-separated id list; malformed entries are skipped with a
// warning rather than aborting startup.
func ids(k string) []int64 {
	v := os.Getenv(k)
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		n, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			log.Warn().Str("key", k).Str("value", p).Msg("skipping malformed property id")
			continue
		}
		out = append(out, n)
	}
	return out
}
