package config

const EnvPrefix = "DIETPLANNER"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "prod"
)

const (
	EnvAppEnv    = "DIETPLANNER_APP_ENV"
	EnvPort      = "DIETPLANNER_APP_PORT"
	EnvDBDSN     = "DIETPLANNER_DB_DSN"
	EnvDBHost    = "DIETPLANNER_DB_HOST"
	EnvDBUser    = "DIETPLANNER_DB_USER"
	EnvDBName    = "DIETPLANNER_DB_NAME"
	EnvRedisURL  = "DIETPLANNER_REDIS_URL"
	EnvJWTSecret = "DIETPLANNER_JWT_SECRET"
	EnvJWTIssuer = "DIETPLANNER_JWT_ISSUER"
	EnvJWTExpMin = "DIETPLANNER_JWT_EXPIRATION_MINUTES"
	EnvSMTPHost  = "DIETPLANNER_SMTP_HOST"
	EnvSMTPFrom  = "DIETPLANNER_SMTP_FROM_EMAIL"
	EnvAlertTo   = "DIETPLANNER_ALERTS_RECIPIENT"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
