package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	EnvPrefix = "FARMGATE"

	AppEnvDev  = "development"
	AppEnvProd = "production"

	EnvAppEnv = "FARMGATE_APP_ENV"
	EnvPort   = "FARMGATE_APP_PORT"
	EnvDBDSN  = "FARMGATE_DB_DSN"
	EnvDBHost = "FARMGATE_DB_HOST"
	EnvDBUser = "FARMGATE_DB_USER"
	EnvDBName = "FARMGATE_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	HTTP         HTTPConfig
	Import       ImportConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string `envconfig:"FARMGATE_APP_ENV" required:"true"`
	Port         string `envconfig:"FARMGATE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FARMGATE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FARMGATE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"FARMGATE_DB_DSN"`

	LegacyHost     string `envconfig:"FARMGATE_DB_HOST"`
	LegacyPort     int    `envconfig:"FARMGATE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FARMGATE_DB_USER"`
	LegacyPassword string `envconfig:"FARMGATE_DB_PASSWORD"`
	LegacyName     string `envconfig:"FARMGATE_DB_NAME"`
	LegacySSLMode  string `envconfig:"FARMGATE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FARMGATE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FARMGATE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FARMGATE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FARMGATE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type HTTPConfig struct {
	ReadTimeout    time.Duration `envconfig:"FARMGATE_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout   time.Duration `envconfig:"FARMGATE_HTTP_WRITE_TIMEOUT" default:"30s"`
	RequestTimeout time.Duration `envconfig:"FARMGATE_HTTP_REQUEST_TIMEOUT" default:"15s"`
}

type ImportConfig struct {
	// MaxUploadBytes bounds the multipart spreadsheet upload size.
	MaxUploadBytes int64 `envconfig:"FARMGATE_IMPORT_MAX_UPLOAD_BYTES" default:"10485760"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FARMGATE_AUTO_MIGRATE" default:"true"`
	SeedDev     bool `envconfig:"FARMGATE_SEED_DEV" default:"true"`
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
