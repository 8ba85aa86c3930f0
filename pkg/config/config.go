package config

import (
	"time"
)

type DB struct {
	Url string `envconfig:"URL"`
}

type Jwt struct {
	Secret string        `envconfig:"SECRET" required:"true"`
	Expiry time.Duration `envconfig:"EXPIRY" default:"24h"`
}

type Auth struct {
	Strategy string `envconfig:"STRATEGY" default:"jwt"`
	Jwt      *Jwt   `envconfig:"JWT"`
}

type Redis struct {
	URL          string        `envconfig:"URL"`
	KeyPrefix    string        `envconfig:"KEY_PREFIX" default:""`
	PoolSize     int           `envconfig:"POOL_SIZE" default:"10"`
	DialTimeout  time.Duration `envconfig:"DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"READ_TIMEOUT" default:"3s"`
	WriteTimeout time.Duration `envconfig:"WRITE_TIMEOUT" default:"3s"`
}

type RateLimit struct {
	MaxRequests int           `envconfig:"MAX_REQUESTS" default:"100"`
	Window      time.Duration `envconfig:"WINDOW" default:"1m"`
}

// BalanceCache controls the per-user snapshot cache in front of the balance
// aggregator.
type BalanceCache struct {
	TTL    time.Duration `envconfig:"TTL" default:"30s"`
	Prefix string        `envconfig:"PREFIX" default:"balance:snapshot:"`
}

type Log struct {
	Level      int    `envconfig:"LEVEL" default:"0"`
	Format     string `envconfig:"FORMAT" default:"json"`
	TimeFormat string `envconfig:"TIME_FORMAT" default:"2006-01-02 15:04:05"`
	Prefix     string `envconfig:"PREFIX" default:"[financeiro]"`
}

type Server struct {
	Scheme string `envconfig:"SCHEME" default:"http"`
	Host   string `envconfig:"HOST" default:"localhost"`
	Port   int    `envconfig:"PORT" default:"3000"`
}

type App struct {
	Env          string        `envconfig:"APP_ENV" default:"development"`
	Server       *Server       `envconfig:"SERVER"`
	Log          *Log          `envconfig:"LOG"`
	DB           *DB           `envconfig:"DATABASE"`
	Auth         *Auth         `envconfig:"AUTH"`
	Redis        *Redis        `envconfig:"REDIS"`
	RateLimit    *RateLimit    `envconfig:"RATE_LIMIT"`
	BalanceCache *BalanceCache `envconfig:"BALANCE_CACHE"`
}
