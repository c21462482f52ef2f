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
	State         StateConfig
	Catalog       CatalogConfig
	Checkout      CheckoutConfig
	ChatRateLimit ChatRateLimitConfig
	Cron          CronConfig
	FeatureFlags  FeatureFlagsConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.validateState(); err != nil {
		return nil, err
	}
	if cfg.State.usesDB() || cfg.Catalog.usesDB() || cfg.FeatureFlags.UseSQLite {
		if err := cfg.DB.ensureDSN(cfg.FeatureFlags.UseSQLite); err != nil {
			return nil, err
		}
	}
	return &cfg, nil
}

// DatabaseEnabled reports whether a database connection should be opened.
func (c *Config) DatabaseEnabled() bool {
	return strings.TrimSpace(c.DB.DSN) != ""
}

type AppConfig struct {
	Env          string `envconfig:"SECONDNEST_APP_ENV" required:"true"`
	Port         string `envconfig:"SECONDNEST_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"SECONDNEST_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"SECONDNEST_LOG_WARN_STACK" default:"false"`

	CORSAllowedOrigins []string      `envconfig:"SECONDNEST_CORS_ALLOWED_ORIGINS"`
	ShutdownTimeout    time.Duration `envconfig:"SECONDNEST_SHUTDOWN_TIMEOUT" default:"15s"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"SECONDNEST_DB_DSN"`
	Driver string `envconfig:"SECONDNEST_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"SECONDNEST_DB_HOST"`
	LegacyPort     int    `envconfig:"SECONDNEST_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"SECONDNEST_DB_USER"`
	LegacyPassword string `envconfig:"SECONDNEST_DB_PASSWORD"`
	LegacyName     string `envconfig:"SECONDNEST_DB_NAME"`
	LegacySSLMode  string `envconfig:"SECONDNEST_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"SECONDNEST_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"SECONDNEST_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"SECONDNEST_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"SECONDNEST_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// IsSQLite reports whether the configured driver targets SQLite.
func (db DBConfig) IsSQLite() bool {
	return strings.EqualFold(strings.TrimSpace(db.Driver), DriverSQLite)
}

type RedisConfig struct {
	URL          string        `envconfig:"SECONDNEST_REDIS_URL"`
	Address      string        `envconfig:"SECONDNEST_REDIS_ADDR"`
	Password     string        `envconfig:"SECONDNEST_REDIS_PASSWORD"`
	DB           int           `envconfig:"SECONDNEST_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"SECONDNEST_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"SECONDNEST_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"SECONDNEST_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"SECONDNEST_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SECONDNEST_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether enough settings exist to dial Redis.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

// StateConfig selects where shopper state (cart, favorites, chats) lives.
type StateConfig struct {
	Backend string        `envconfig:"SECONDNEST_STATE_BACKEND" default:"memory"`
	TTL     time.Duration `envconfig:"SECONDNEST_STATE_TTL" default:"720h"`
}

func (s StateConfig) Kind() string {
	kind := strings.ToLower(strings.TrimSpace(s.Backend))
	if kind == "" {
		return StateBackendMemory
	}
	return kind
}

func (s StateConfig) usesDB() bool {
	return s.Kind() == StateBackendSQL
}

type CatalogConfig struct {
	Source   string `envconfig:"SECONDNEST_CATALOG_SOURCE" default:"seed"`
	SeedPath string `envconfig:"SECONDNEST_CATALOG_SEED_PATH"`
}

// FromDB reports whether listings are read from the listings table instead of the seed document.
func (c CatalogConfig) FromDB() bool {
	return strings.EqualFold(strings.TrimSpace(c.Source), CatalogSourceDB)
}

func (c CatalogConfig) usesDB() bool {
	return c.FromDB()
}

// CheckoutConfig overrides the rates used for order totals.
type CheckoutConfig struct {
	ShippingFee    string `envconfig:"SECONDNEST_CHECKOUT_SHIPPING_FEE" default:"29.99"`
	TaxRate        string `envconfig:"SECONDNEST_CHECKOUT_TAX_RATE" default:"0.08875"`
	MembershipRate string `envconfig:"SECONDNEST_CHECKOUT_MEMBERSHIP_RATE" default:"0.10"`
}

type ChatRateLimitConfig struct {
	Window       time.Duration `envconfig:"SECONDNEST_CHAT_RATE_LIMIT_WINDOW" default:"1m"`
	SessionLimit int           `envconfig:"SECONDNEST_CHAT_RATE_LIMIT_SESSION_LIMIT" default:"10"`
	IPLimit      int           `envconfig:"SECONDNEST_CHAT_RATE_LIMIT_IP_LIMIT" default:"30"`
}

// CronConfig drives the background janitor; StateRetention falls back to State.TTL.
type CronConfig struct {
	Interval       time.Duration `envconfig:"SECONDNEST_CRON_INTERVAL" default:"1h"`
	StateRetention time.Duration `envconfig:"SECONDNEST_CRON_STATE_RETENTION"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"SECONDNEST_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"SECONDNEST_AUTO_MIGRATE" default:"false"`
}

func (c *Config) validateState() error {
	switch c.State.Kind() {
	case StateBackendMemory, StateBackendSQL:
		return nil
	case StateBackendRedis:
		if !c.Redis.Enabled() {
			return fmt.Errorf("%s=redis requires %s or %s", EnvStateBackend, EnvRedisURL, EnvRedisAddr)
		}
		return nil
	default:
		return fmt.Errorf("unsupported %s %q", EnvStateBackend, c.State.Backend)
	}
}

func (db *DBConfig) ensureDSN(useSQLite bool) error {
	if useSQLite {
		db.Driver = DriverSQLite
		if db.DSN == "" {
			db.DSN = DefaultSQLiteDSN
		}
		return nil
	}
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
