package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "duka"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "DUKA_DB_DSN"
	EnvDBHost = "DUKA_DB_HOST"
	EnvDBUser = "DUKA_DB_USER"
	EnvDBName = "DUKA_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	Service      ServiceConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	RateLimit    RateLimitConfig
	FeatureFlags FeatureFlagsConfig
	GCP          GCPConfig
	PubSub       PubSubConfig
	Outbox       OutboxConfig
	Onboarding   OnboardingConfig
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
	Env          string `envconfig:"DUKA_APP_ENV" required:"true"`
	Port         string `envconfig:"DUKA_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"DUKA_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"DUKA_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"DUKA_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"DUKA_DB_DSN"`
	Driver string `envconfig:"DUKA_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"DUKA_DB_HOST"`
	LegacyPort     int    `envconfig:"DUKA_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"DUKA_DB_USER"`
	LegacyPassword string `envconfig:"DUKA_DB_PASSWORD"`
	LegacyName     string `envconfig:"DUKA_DB_NAME"`
	LegacySSLMode  string `envconfig:"DUKA_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"DUKA_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"DUKA_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"DUKA_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"DUKA_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"DUKA_REDIS_URL" required:"true"`
	Address      string        `envconfig:"DUKA_REDIS_ADDR"`
	Password     string        `envconfig:"DUKA_REDIS_PASSWORD"`
	DB           int           `envconfig:"DUKA_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"DUKA_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"DUKA_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"DUKA_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"DUKA_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"DUKA_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"DUKA_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"DUKA_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"DUKA_JWT_EXPIRATION_MINUTES" default:"60"`
}

type RateLimitConfig struct {
	OnboardingWindow    time.Duration `envconfig:"DUKA_RATE_LIMIT_ONBOARDING_WINDOW" default:"5m"`
	OnboardingUserLimit int           `envconfig:"DUKA_RATE_LIMIT_ONBOARDING_USER_LIMIT" default:"3"`
	OnboardingIPLimit   int           `envconfig:"DUKA_RATE_LIMIT_ONBOARDING_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate      bool `envconfig:"DUKA_AUTO_MIGRATE" default:"false"`
	SeedDemoProducts bool `envconfig:"DUKA_SEED_DEMO_PRODUCTS" default:"true"`
}

type GCPConfig struct {
	ProjectID       string `envconfig:"DUKA_GCP_PROJECT_ID"`
	CredentialsJSON string `envconfig:"DUKA_GCP_CREDENTIALS_JSON"`
}

type PubSubConfig struct {
	DomainTopic        string `envconfig:"DUKA_PUBSUB_DOMAIN_TOPIC" default:"duka-domain-events"`
	DomainSubscription string `envconfig:"DUKA_PUBSUB_DOMAIN_SUBSCRIPTION"`
}

type OutboxConfig struct {
	BatchSize      int `envconfig:"DUKA_OUTBOX_PUBLISH_BATCH_SIZE" default:"50"`
	PollIntervalMS int `envconfig:"DUKA_OUTBOX_PUBLISH_POLL_MS" default:"500"`
	MaxAttempts    int `envconfig:"DUKA_OUTBOX_MAX_ATTEMPTS" default:"10"`
}

type OnboardingConfig struct {
	DemoCurrency string `envconfig:"DUKA_ONBOARDING_DEMO_CURRENCY" default:"KES"`
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
