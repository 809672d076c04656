package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	Security      SecurityConfig
	Facebook      FacebookConfig
	Storage       StorageConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	Metrics       MetricsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadDB reads only the database section, for tools that never serve HTTP.
func LoadDB() (*DBConfig, error) {
	var db DBConfig
	if err := envconfig.Process(EnvPrefix, &db); err != nil {
		return nil, fmt.Errorf("parsing db config: %w", err)
	}
	if err := db.ensureDSN(); err != nil {
		return nil, err
	}
	return &db, nil
}

type AppConfig struct {
	Env          string `envconfig:"SHOPADMIN_APP_ENV" required:"true"`
	Port         string `envconfig:"SHOPADMIN_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"SHOPADMIN_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SHOPADMIN_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SHOPADMIN_DB_DSN"`
	Driver string `envconfig:"SHOPADMIN_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SHOPADMIN_DB_HOST"`
	LegacyPort     int    `envconfig:"SHOPADMIN_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SHOPADMIN_DB_USER"`
	LegacyPassword string `envconfig:"SHOPADMIN_DB_PASSWORD"`
	LegacyName     string `envconfig:"SHOPADMIN_DB_NAME"`
	LegacySSLMode  string `envconfig:"SHOPADMIN_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SHOPADMIN_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SHOPADMIN_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SHOPADMIN_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SHOPADMIN_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// RedisConfig is optional; an empty URL and address disables the redis-backed middleware.
type RedisConfig struct {
	URL          string        `envconfig:"SHOPADMIN_REDIS_URL"`
	Address      string        `envconfig:"SHOPADMIN_REDIS_ADDR"`
	Password     string        `envconfig:"SHOPADMIN_REDIS_PASSWORD"`
	DB           int           `envconfig:"SHOPADMIN_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SHOPADMIN_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SHOPADMIN_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SHOPADMIN_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SHOPADMIN_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SHOPADMIN_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type SecurityConfig struct {
	ArgonMemoryKB    int `envconfig:"SHOPADMIN_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"SHOPADMIN_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"SHOPADMIN_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"SHOPADMIN_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"SHOPADMIN_ARGON_KEY_LEN" default:"32"`

	// TokenCipherKey is a base64 encoded 32 byte key for third-party access tokens at rest.
	TokenCipherKey string `envconfig:"SHOPADMIN_TOKEN_CIPHER_KEY" required:"true"`
}

type FacebookConfig struct {
	GraphBaseURL string        `envconfig:"SHOPADMIN_FACEBOOK_GRAPH_BASE_URL" default:"https://graph.facebook.com"`
	GraphVersion string        `envconfig:"SHOPADMIN_FACEBOOK_GRAPH_VERSION" default:"v19.0"`
	Timeout      time.Duration `envconfig:"SHOPADMIN_FACEBOOK_TIMEOUT" default:"30s"`
}

type StorageConfig struct {
	PublicBaseURL string `envconfig:"SHOPADMIN_STORAGE_PUBLIC_BASE_URL" default:"http://localhost:8080"`
}

// AssetURL resolves a storage-relative path to an absolute public URL.
func (s StorageConfig) AssetURL(path string) string {
	base := strings.TrimRight(strings.TrimSpace(s.PublicBaseURL), "/")
	return base + "/storage/" + strings.TrimLeft(path, "/")
}

type AuthRateLimitConfig struct {
	FailureWindow  time.Duration `envconfig:"SHOPADMIN_AUTH_RATE_LIMIT_FAILURE_WINDOW" default:"1m"`
	FailureIPLimit int           `envconfig:"SHOPADMIN_AUTH_RATE_LIMIT_FAILURE_IP_LIMIT" default:"30"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"SHOPADMIN_AUTO_MIGRATE" default:"false"`
}

type MetricsConfig struct {
	Enabled bool   `envconfig:"SHOPADMIN_METRICS_ENABLED" default:"true"`
	Path    string `envconfig:"SHOPADMIN_METRICS_PATH" default:"/metrics"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
