package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
)

const defaultSessionSecret = "skillup-dev-session-secret"

type HTTPConfig struct {
	Host         string
	Port         int
	BasePath     string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type StorageDriver string

const (
	DriverRedis    StorageDriver = "redis"
	DriverPostgres StorageDriver = "postgres"
	DriverMemory   StorageDriver = "memory"
)

type StorageConfig struct {
	Driver StorageDriver
}

type PostgresConfig struct {
	DSN             string
	MaxOpen         int
	MaxIdle         int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Addr      string
	Password  string
	DB        int
	KeyPrefix string
}

// QuarantineConfig points at the bucket that keeps model output which could
// not be parsed. An empty endpoint disables it.
type QuarantineConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	Region    string
}

type SecurityConfig struct {
	SessionSecret string
}

type AIConfig struct {
	BaseURL         string
	APIKey          string
	Model           string
	Temperature     float64
	MaxOutputTokens int
	// Timeout of zero leaves the call bounded only by the request context.
	Timeout time.Duration
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

type AppConfig struct {
	Environment      string
	HTTP             HTTPConfig
	Storage          StorageConfig
	Postgres         PostgresConfig
	Redis            RedisConfig
	Quarantine       QuarantineConfig
	Security         SecurityConfig
	AI               AIConfig
	Seed             SeedConfig
	AllowCORSOrigins []string
}

func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")

	v.SetEnvPrefix("SKILLUP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("load config file: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "mapstructure"
		dc.DecodeHook = mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
		)
	}); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *AppConfig) validate() error {
	switch c.Storage.Driver {
	case DriverRedis, DriverMemory:
	case DriverPostgres:
		if c.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for the postgres storage driver")
		}
	default:
		return fmt.Errorf("unknown storage driver %q", c.Storage.Driver)
	}
	if c.Environment == "production" && c.Security.SessionSecret == defaultSessionSecret {
		return fmt.Errorf("security.sessionsecret must be set in production")
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", "development")

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.basepath", "/api")
	v.SetDefault("http.readtimeout", "10s")
	v.SetDefault("http.writetimeout", "120s") // generation calls are slow
	v.SetDefault("http.idletimeout", "60s")

	v.SetDefault("storage.driver", string(DriverRedis))

	v.SetDefault("postgres.dsn", "")
	v.SetDefault("postgres.maxopen", 10)
	v.SetDefault("postgres.maxidle", 2)
	v.SetDefault("postgres.connmaxlifetime", "30m")

	v.SetDefault("redis.addr", "127.0.0.1:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.keyprefix", "kv:")

	v.SetDefault("quarantine.endpoint", "")
	v.SetDefault("quarantine.accesskey", "")
	v.SetDefault("quarantine.secretkey", "")
	v.SetDefault("quarantine.bucket", "skillup-model-output")
	v.SetDefault("quarantine.usessl", false)
	v.SetDefault("quarantine.region", "us-east-1")

	v.SetDefault("security.sessionsecret", defaultSessionSecret)

	v.SetDefault("ai.baseurl", "https://generativelanguage.googleapis.com")
	v.SetDefault("ai.apikey", "")
	v.SetDefault("ai.model", "gemini-2.5-flash")
	v.SetDefault("ai.temperature", 0.7)
	v.SetDefault("ai.maxoutputtokens", 8192)
	v.SetDefault("ai.timeout", "0s")

	v.SetDefault("seed.adminemail", "admin@skillup.com")
	v.SetDefault("seed.adminpassword", "admin123")
	v.SetDefault("seed.adminname", "Admin User")

	v.SetDefault("allowcorsorigins", []string{})
}
