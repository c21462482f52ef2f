package config

// EnvPrefix is handed to envconfig; every field carries its full variable name.
const EnvPrefix = "SECONDNEST"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"

	DefaultSQLiteDSN = "file:secondnest.db?cache=shared"

	StateBackendMemory = "memory"
	StateBackendRedis  = "redis"
	StateBackendSQL    = "sql"

	CatalogSourceSeed = "seed"
	CatalogSourceDB   = "db"
)

const (
	EnvAppEnv   = "SECONDNEST_APP_ENV"
	EnvPort     = "SECONDNEST_APP_PORT"
	EnvLogLevel = "SECONDNEST_LOG_LEVEL"

	EnvDBDSN    = "SECONDNEST_DB_DSN"
	EnvDBDriver = "SECONDNEST_DB_DRIVER"
	EnvDBHost   = "SECONDNEST_DB_HOST"
	EnvDBUser   = "SECONDNEST_DB_USER"
	EnvDBName   = "SECONDNEST_DB_NAME"

	EnvRedisURL  = "SECONDNEST_REDIS_URL"
	EnvRedisAddr = "SECONDNEST_REDIS_ADDR"

	EnvStateBackend   = "SECONDNEST_STATE_BACKEND"
	EnvCatalogSource  = "SECONDNEST_CATALOG_SOURCE"
	EnvCatalogSeed    = "SECONDNEST_CATALOG_SEED_PATH"
	EnvTaxRate        = "SECONDNEST_CHECKOUT_TAX_RATE"
	EnvUseSQLite      = "SECONDNEST_USE_SQLITE"
	EnvAutoMigrate    = "SECONDNEST_AUTO_MIGRATE"
	EnvChatRateWindow = "SECONDNEST_CHAT_RATE_LIMIT_WINDOW"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
