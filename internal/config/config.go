package config

import (
	"time"

	"github.com/kelseyhightower/envconfig"
)

var singleConfig *Config = nil

type Config struct {
	Database *dbConfig
	Service  *svcConfig
	Board    *boardConfig
}

type dbConfig struct {
	Type     string `envconfig:"DB_TYPE" default:"pgsql"`
	Hostname string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	Name     string `envconfig:"DB_NAME" default:"schedboard"`
	User     string `envconfig:"DB_USER" default:"admin"`
	Password string `envconfig:"DB_PASS" default:"adminpass"`
}

type svcConfig struct {
	Address        string   `envconfig:"SCHEDBOARD_ADDRESS" default:":3001"`
	BaseUrl        string   `envconfig:"SCHEDBOARD_BASE_URL" default:"http://localhost:3001"`
	LogLevel       string   `envconfig:"SCHEDBOARD_LOG_LEVEL" default:"info"`
	Environment    string   `envconfig:"SCHEDBOARD_ENVIRONMENT" default:"development"`
	AllowedOrigins []string `envconfig:"SCHEDBOARD_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	StaticDir      string   `envconfig:"SCHEDBOARD_STATIC_DIR" default:""`
	// RateLimit is the per-IP request ceiling applied to the /api prefix,
	// requests per RateWindow.
	RateLimit  int           `envconfig:"SCHEDBOARD_RATE_LIMIT" default:"100"`
	RateWindow time.Duration `envconfig:"SCHEDBOARD_RATE_WINDOW" default:"1m"`
}

type boardConfig struct {
	GatewayUrl      string        `envconfig:"SCHEDBOARD_GATEWAY_URL" default:"http://localhost:3001/api"`
	RequestTimeout  time.Duration `envconfig:"SCHEDBOARD_GATEWAY_TIMEOUT" default:"10s"`
	RefreshInterval time.Duration `envconfig:"SCHEDBOARD_REFRESH_INTERVAL" default:"30s"`
	CacheDir        string        `envconfig:"SCHEDBOARD_CACHE_DIR" default:".schedboard"`
	// Machines is the known machine set. The default mirrors the reference
	// shop floor; deployments override it, logic never depends on the names.
	Machines []string `envconfig:"SCHEDBOARD_MACHINES" default:"22,55,90-1,90-2,90-3,Sumi1,170-1,170-2,Sumi2,260-1,260-2,260-3,260-4,500-1,500-2,550,770,950,1100-1,1100-2,1200-1,1200-2"`
}

func New() (*Config, error) {
	if singleConfig == nil {
		singleConfig = new(Config)
		if err := envconfig.Process("", singleConfig); err != nil {
			return nil, err
		}
	}
	return singleConfig, nil
}

// NewDefault returns a freshly processed config, used by tests that must not
// share the singleton.
func NewDefault() (*Config, error) {
	cfg := new(Config)
	if err := envconfig.Process("", cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}
