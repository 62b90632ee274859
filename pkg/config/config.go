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
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Cart          CartConfig
	SMTP          SMTPConfig
	Mailer        MailerConfig
	Alerts        AlertsConfig
	FeatureFlags  FeatureFlagsConfig
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

type AppConfig struct {
	Env          string `envconfig:"DIETPLANNER_APP_ENV" required:"true"`
	Port         string `envconfig:"DIETPLANNER_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DIETPLANNER_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DIETPLANNER_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"DIETPLANNER_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"DIETPLANNER_DB_DSN"`
	Driver string `envconfig:"DIETPLANNER_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DIETPLANNER_DB_HOST"`
	LegacyPort     int    `envconfig:"DIETPLANNER_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DIETPLANNER_DB_USER"`
	LegacyPassword string `envconfig:"DIETPLANNER_DB_PASSWORD"`
	LegacyName     string `envconfig:"DIETPLANNER_DB_NAME"`
	LegacySSLMode  string `envconfig:"DIETPLANNER_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DIETPLANNER_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DIETPLANNER_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DIETPLANNER_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DIETPLANNER_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DIETPLANNER_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DIETPLANNER_REDIS_ADDR"`
	Password     string        `envconfig:"DIETPLANNER_REDIS_PASSWORD"`
	DB           int           `envconfig:"DIETPLANNER_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DIETPLANNER_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DIETPLANNER_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DIETPLANNER_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DIETPLANNER_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DIETPLANNER_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"DIETPLANNER_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DIETPLANNER_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"DIETPLANNER_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTTLHours   int    `envconfig:"DIETPLANNER_JWT_REFRESH_TTL_HOURS" default:"168"`
}

// Expiration returns the access token lifetime configured in minutes.
func (j JWTConfig) Expiration() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh session lifetime configured in hours.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTTLHours <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTTLHours) * time.Hour
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"DIETPLANNER_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"DIETPLANNER_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"DIETPLANNER_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"DIETPLANNER_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"DIETPLANNER_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"DIETPLANNER_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"DIETPLANNER_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"DIETPLANNER_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"DIETPLANNER_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"DIETPLANNER_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"DIETPLANNER_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type CartConfig struct {
	TTL time.Duration `envconfig:"DIETPLANNER_CART_TTL" default:"336h"`
}

type SMTPConfig struct {
	Host      string `envconfig:"DIETPLANNER_SMTP_HOST"`
	Port      int    `envconfig:"DIETPLANNER_SMTP_PORT" default:"587"`
	Username  string `envconfig:"DIETPLANNER_SMTP_USERNAME"`
	Password  string `envconfig:"DIETPLANNER_SMTP_PASSWORD"`
	FromEmail string `envconfig:"DIETPLANNER_SMTP_FROM_EMAIL"`
}

// Enabled reports whether outbound mail is configured at all. When false
// the mailer logs and drops messages instead of dialing.
func (s SMTPConfig) Enabled() bool {
	return s.Host != "" && s.FromEmail != ""
}

func (s SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type MailerConfig struct {
	Workers     int           `envconfig:"DIETPLANNER_MAILER_WORKERS" default:"4"`
	QueueSize   int           `envconfig:"DIETPLANNER_MAILER_QUEUE_SIZE" default:"256"`
	SendTimeout time.Duration `envconfig:"DIETPLANNER_MAILER_SEND_TIMEOUT" default:"15s"`
	MaxRetries  int           `envconfig:"DIETPLANNER_MAILER_MAX_RETRIES" default:"3"`
}

// AlertsConfig tunes low-stock alerting. Recipient is an optional shared
// mailbox added on top of the staff user emails.
type AlertsConfig struct {
	Recipient     string        `envconfig:"DIETPLANNER_ALERTS_RECIPIENT"`
	Threshold     int           `envconfig:"DIETPLANNER_ALERTS_LOW_STOCK_THRESHOLD" default:"10"`
	SweepInterval time.Duration `envconfig:"DIETPLANNER_ALERTS_SWEEP_INTERVAL" default:"10m"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"DIETPLANNER_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"DIETPLANNER_AUTO_MIGRATE" default:"false"`
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
