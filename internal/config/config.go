package config

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/at-ishikawa/flashrev/internal/scheduling"
)

type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Database   DatabaseConfig   `mapstructure:"database"`
	Cache      CacheConfig      `mapstructure:"cache"`
	Scheduling SchedulingConfig `mapstructure:"scheduling"`
	Review     ReviewConfig     `mapstructure:"review"`
}

type ServerConfig struct {
	Port                   int        `mapstructure:"port" validate:"gte=1,lte=65535"`
	ShutdownTimeoutSeconds int        `mapstructure:"shutdown_timeout_seconds" validate:"gte=0"`
	CORS                   CORSConfig `mapstructure:"cors"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

type DatabaseConfig struct {
	Driver          string            `mapstructure:"driver" validate:"oneof=mysql postgres sqlite"`
	Host            string            `mapstructure:"host"`
	Port            int               `mapstructure:"port"`
	Database        string            `mapstructure:"database"`
	Username        string            `mapstructure:"username"`
	Password        string            `mapstructure:"password"`
	TLS             bool              `mapstructure:"tls"`
	Params          map[string]string `mapstructure:"params"`
	Path            string            `mapstructure:"path" validate:"required_if=Driver sqlite"`
	MaxOpenConns    int               `mapstructure:"max_open_conns"`
	MaxIdleConns    int               `mapstructure:"max_idle_conns"`
	ConnMaxLifetime int               `mapstructure:"conn_max_lifetime_seconds"`
	Retry           RetryConfig       `mapstructure:"retry"`
}

type RetryConfig struct {
	Attempts       uint `mapstructure:"attempts" validate:"gte=1"`
	InitialDelayMs int  `mapstructure:"initial_delay_ms" validate:"gte=0"`
}

const (
	CacheBackendMemory = "memory"
	CacheBackendRedis  = "redis"
	CacheBackendNone   = "none"
)

type CacheConfig struct {
	Backend              string      `mapstructure:"backend" validate:"oneof=memory redis none"`
	Capacity             int         `mapstructure:"capacity" validate:"gte=1"`
	TTLSeconds           int         `mapstructure:"ttl_seconds" validate:"gte=1"`
	SweepIntervalSeconds int         `mapstructure:"sweep_interval_seconds" validate:"gte=1"`
	EvictionPolicy       string      `mapstructure:"eviction_policy" validate:"oneof=least-hit lru"`
	EvictionFraction     float64     `mapstructure:"eviction_fraction" validate:"gt=0,lte=1"`
	Redis                RedisConfig `mapstructure:"redis"`
}

type RedisConfig struct {
	Addr      string `mapstructure:"addr"`
	Password  string `mapstructure:"password"`
	DB        int    `mapstructure:"db"`
	KeyPrefix string `mapstructure:"key_prefix"`
}

type SchedulingConfig struct {
	Profile  string                        `mapstructure:"profile" validate:"required"`
	Profiles map[string]scheduling.Profile `mapstructure:"profiles" validate:"dive"`
}

// ActiveProfile returns the profile selected by Profile.
func (c SchedulingConfig) ActiveProfile() (scheduling.Profile, error) {
	p, ok := c.Profiles[c.Profile]
	if !ok {
		return scheduling.Profile{}, fmt.Errorf("scheduling profile %q is not configured", c.Profile)
	}
	return p, nil
}

type ReviewConfig struct {
	MaxConflictRetries uint `mapstructure:"max_conflict_retries" validate:"gte=1"`
	DefaultDueLimit    int  `mapstructure:"default_due_limit" validate:"gte=0"`
}

type ConfigLoader struct {
	viper      *viper.Viper
	validator  *validator.Validate
	translator ut.Translator
}

func NewConfigLoader(configFile string) (*ConfigLoader, error) {
	validate, trans, err := newValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to create new validator: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/flashrev")
	}

	return &ConfigLoader{
		viper:      v,
		validator:  validate,
		translator: trans,
	}, nil
}

// BindFlags lets command-line flags override the file. Only flags that exist in flags are bound.
func (loader *ConfigLoader) BindFlags(flags *pflag.FlagSet) error {
	bindings := map[string]string{
		"profile": "scheduling.profile",
	}
	for flagName, key := range bindings {
		flag := flags.Lookup(flagName)
		if flag == nil {
			continue
		}
		if err := loader.viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("viper.BindPFlag(%s) > %w", flagName, err)
		}
	}
	return nil
}

func (loader *ConfigLoader) Load() (*Config, error) {
	v := loader.viper
	setDefaults(v)

	// Secrets and deployment switches are read from the environment only
	for key, env := range envBindings {
		if err := v.BindEnv(key, env); err != nil {
			return nil, fmt.Errorf("viper.BindEnv(%s) > %w", env, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config %s: %w", v.ConfigFileUsed(), err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration format: %w", err)
	}
	if err := loader.validate(cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

var envBindings = map[string]string{
	"database.password":    "DB_PASSWORD",
	"cache.redis.password": "REDIS_PASSWORD",
	"scheduling.profile":   "FLASHREV_PROFILE",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.shutdown_timeout_seconds", 10)
	v.SetDefault("server.cors.allowed_origins", []string{"http://localhost:3000"})

	v.SetDefault("database.driver", DriverMySQL)
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.database", "flashrev")
	v.SetDefault("database.username", "user")
	v.SetDefault("database.path", "flashrev.db")
	v.SetDefault("database.retry.attempts", 3)
	v.SetDefault("database.retry.initial_delay_ms", 50)

	v.SetDefault("cache.backend", CacheBackendMemory)
	v.SetDefault("cache.capacity", 100)
	v.SetDefault("cache.ttl_seconds", 30*60)
	v.SetDefault("cache.sweep_interval_seconds", 10*60)
	v.SetDefault("cache.eviction_policy", "least-hit")
	v.SetDefault("cache.eviction_fraction", 0.2)
	v.SetDefault("cache.redis.addr", "localhost:6379")
	v.SetDefault("cache.redis.key_prefix", "flashrev:")

	v.SetDefault("scheduling.profile", scheduling.ProfileStandard)
	for _, name := range scheduling.BuiltinProfileNames() {
		p, _ := scheduling.BuiltinProfile(name)
		setStructDefaults(v, "scheduling.profiles."+name, p)
	}

	v.SetDefault("review.max_conflict_retries", 3)
	v.SetDefault("review.default_due_limit", 50)
}

// validate joins every failed rule into one error, each message translated to English.
func (loader *ConfigLoader) validate(cfg Config) error {
	err := loader.validator.Struct(cfg)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if !errors.As(err, &validationErrors) {
		return fmt.Errorf("validator.Struct() > %w", err)
	}
	msgs := make([]string, 0, len(validationErrors))
	for _, e := range validationErrors {
		msgs = append(msgs, e.Translate(loader.translator))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, ", "))
}

// setStructDefaults registers every mapstructure-tagged field of value under prefix,
// so a config file can override single keys of a nested struct.
func setStructDefaults(v *viper.Viper, prefix string, value any) {
	rv := reflect.ValueOf(value)
	rt := rv.Type()
	for i := 0; i < rt.NumField(); i++ {
		name := strings.SplitN(rt.Field(i).Tag.Get("mapstructure"), ",", 2)[0]
		if name == "" || name == "-" {
			continue
		}
		v.SetDefault(prefix+"."+name, rv.Field(i).Interface())
	}
}
