package config

// EnvPrefix is handed to envconfig; every field declares its full variable name.
const EnvPrefix = "SHOPADMIN"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
	AppEnvTest = "test"
)

const (
	EnvAppEnv         = "SHOPADMIN_APP_ENV"
	EnvPort           = "SHOPADMIN_APP_PORT"
	EnvLogLevel       = "SHOPADMIN_LOG_LEVEL"
	EnvDBDSN          = "SHOPADMIN_DB_DSN"
	EnvDBHost         = "SHOPADMIN_DB_HOST"
	EnvDBPort         = "SHOPADMIN_DB_PORT"
	EnvDBUser         = "SHOPADMIN_DB_USER"
	EnvDBPassword     = "SHOPADMIN_DB_PASSWORD"
	EnvDBName         = "SHOPADMIN_DB_NAME"
	EnvRedisURL       = "SHOPADMIN_REDIS_URL"
	EnvTokenCipherKey = "SHOPADMIN_TOKEN_CIPHER_KEY"
	EnvGraphBaseURL   = "SHOPADMIN_FACEBOOK_GRAPH_BASE_URL"
	EnvGraphVersion   = "SHOPADMIN_FACEBOOK_GRAPH_VERSION"
	EnvStorageBaseURL = "SHOPADMIN_STORAGE_PUBLIC_BASE_URL"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
