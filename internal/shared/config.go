package shared

import (
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Source kinds for BOOKINGS_SOURCE.
const (
	SourceFile  = "file"
	SourceURL   = "url"
	SourceMySQL = "mysql"
)

type Config struct {
	AppEnv      string `envconfig:"APP_ENV" default:"prod"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	HTTPAddr    string `envconfig:"HTTP_ADDR" default:":8080"`
	HTTPRPS     int    `envconfig:"HTTP_RPS" default:"0"`
	MetricsAddr string `envconfig:"METRICS_ADDR"`

	Source       string `envconfig:"BOOKINGS_SOURCE" default:"file"`
	BookingsFile string `envconfig:"BOOKINGS_FILE" default:"booking.txt"`
	BookingsURL  string `envconfig:"BOOKINGS_URL"`
	RemoteRPS    int    `envconfig:"REMOTE_RPS" default:"5"`

	MySQLDSN string `envconfig:"MYSQL_DSN" default:"root:root@tcp(localhost:3306)/bookings?charset=utf8mb4,utf8&loc=UTC"`

	RedisAddr string `envconfig:"REDIS_ADDR"`
	RedisPass string `envconfig:"REDIS_PASSWORD"`
	RedisDB   int    `envconfig:"REDIS_DB" default:"0"`
	CacheTTL  int    `envconfig:"CACHE_TTL_SECONDS" default:"900"`

	Workers   int `envconfig:"INGEST_WORKERS" default:"4"`
	BatchSize int `envconfig:"INGEST_BATCH_SIZE" default:"500"`
}

func (c Config) CacheTTLDuration() time.Duration {
	return time.Duration(c.CacheTTL) * time.Second
}

// Load reads .env (if present) into the environment, then the environment
// into Config.
func Load() (Config, error) {
	if err := godotenv.Load(".env"); err != nil {
		log.Debug().Err(err).Msg("no .env file, using environment only")
	}
	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	if c.Source == SourceURL && c.BookingsURL == "" {
		log.Warn().Msg("BOOKINGS_SOURCE=url but BOOKINGS_URL is empty")
	}
	if c.Workers <= 0 {
		c.Workers = 1
	}
	return c, nil
}
