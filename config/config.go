package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/octabyte/clinic-portal/db/redis"
	"github.com/octabyte/clinic-portal/enums"
	"github.com/octabyte/clinic-portal/lib"
	"github.com/octabyte/clinic-portal/otel"
	"github.com/octabyte/clinic-portal/queue"
	"github.com/octabyte/clinic-portal/utils/logger"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	ServiceName string `mapstructure:"SERVICE_NAME" validate:"required"`
	Env         string `mapstructure:"ENV"`
	LogLevel    string `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error fatal"`
	Port        string `mapstructure:"PORT" validate:"required"`

	// APIBaseURL is the clinic REST API every dashboard talks to.
	APIBaseURL string        `mapstructure:"API_BASE_URL" validate:"required,url"`
	APITimeout time.Duration `mapstructure:"API_TIMEOUT"`

	ClinicTimezone string `mapstructure:"CLINIC_TIMEZONE"`

	SessionBackend string        `mapstructure:"SESSION_BACKEND" validate:"oneof=memory redis"`
	SessionTTL     time.Duration `mapstructure:"SESSION_TTL"`
	CookieSecure   bool          `mapstructure:"COOKIE_SECURE"`

	RedisAddr     string `mapstructure:"REDIS_ADDR" validate:"required_if=SessionBackend redis"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisDB       int    `mapstructure:"REDIS_DB"`

	AMQPURI        string `mapstructure:"AMQP_URI"`
	AMQPExchange   string `mapstructure:"AMQP_EXCHANGE"`
	AMQPRoutingKey string `mapstructure:"AMQP_ROUTING_KEY"`

	OtelEnabled    bool    `mapstructure:"OTEL_ENABLED"`
	OtelEndpoint   string  `mapstructure:"OTEL_ENDPOINT" validate:"required_if=OtelEnabled true"`
	OtelSampleRate float64 `mapstructure:"OTEL_SAMPLE_RATE" validate:"gte=0,lte=1"`
}

var keys = []string{
	"SERVICE_NAME", "ENV", "LOG_LEVEL", "PORT",
	"API_BASE_URL", "API_TIMEOUT", "CLINIC_TIMEZONE",
	"SESSION_BACKEND", "SESSION_TTL", "COOKIE_SECURE",
	"REDIS_ADDR", "REDIS_PASSWORD", "REDIS_DB",
	"AMQP_URI", "AMQP_EXCHANGE", "AMQP_ROUTING_KEY",
	"OTEL_ENABLED", "OTEL_ENDPOINT", "OTEL_SAMPLE_RATE",
}

// Load reads the configuration from the environment, falling back to a
// .env file in the working directory when one exists.
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()

	v.SetDefault("SERVICE_NAME", "clinic-portal")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", enums.LogLevelInfo)
	v.SetDefault("PORT", "8080")
	v.SetDefault("API_BASE_URL", "http://localhost:8081/api")
	v.SetDefault("API_TIMEOUT", 10*time.Second)
	v.SetDefault("CLINIC_TIMEZONE", "UTC")
	v.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	v.SetDefault("SESSION_TTL", 12*time.Hour)
	v.SetDefault("AMQP_EXCHANGE", "clinic")
	v.SetDefault("AMQP_ROUTING_KEY", "appointments.booked")
	v.SetDefault("OTEL_SAMPLE_RATE", 1.0)

	for _, k := range keys {
		_ = v.BindEnv(k)
	}

	// The .env file is optional.
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	cfg.APIBaseURL = strings.TrimRight(cfg.APIBaseURL, "/")

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if err := lib.Validate(c); err != nil {
		return fmt.Errorf("invalid configuration: %s", lib.ValidationMessage(err))
	}
	return nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

func (c *Config) LoggerConfig() *logger.Config {
	return &logger.Config{
		Level:       c.LogLevel,
		Env:         c.Env,
		ServiceName: c.ServiceName,
	}
}

func (c *Config) RedisConfig() redis.Config {
	return redis.Config{
		Addr:     c.RedisAddr,
		Password: c.RedisPassword,
		DB:       c.RedisDB,
	}
}

func (c *Config) OtelConfig() otel.OtelConfig {
	return otel.OtelConfig{
		Enabled:     c.OtelEnabled,
		Endpoint:    c.OtelEndpoint,
		ServiceName: c.ServiceName,
		Environment: c.Env,
		SampleRate:  c.OtelSampleRate,
	}
}

func (c *Config) PublishConfig() queue.PublishConfig {
	return queue.PublishConfig{
		Exchange:     c.AMQPExchange,
		RoutingKey:   c.AMQPRoutingKey,
		ContentType:  "application/json",
		DeliveryMode: 2,
	}
}
