package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: values that differ between environments (port, DB, brokers)
// - default: values common across all environments (timeouts, intervals)
// -----------------------------------------------------------------------------

type Config struct {
	Server ServerConfig
	DB     DBConfig
	Kafka  KafkaConfig
	Redis  RedisConfig
	Saga   SagaConfig
	CORS   CORSConfig
	Log    LogConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
	MaxConns int32  `envconfig:"DB_MAX_CONNS" default:"20"`
}

type KafkaConfig struct {
	Brokers        []string `envconfig:"KAFKA_BROKERS" default:"localhost:9092"`
	ConsumerGroup  string   `envconfig:"KAFKA_CONSUMER_GROUP" default:"reserve-portal"`
	RequestedTopic string   `envconfig:"KAFKA_REQUESTED_TOPIC" default:"reservation.requested"`
	OutcomeTopic   string   `envconfig:"KAFKA_OUTCOME_TOPIC" default:"reservation.outcome"`
	AttachTopic    string   `envconfig:"KAFKA_ATTACH_TOPIC" default:"attachment.linked"`
}

type RedisConfig struct {
	Addr     string        `envconfig:"REDIS_ADDR" default:"localhost:6379"`
	DedupTTL time.Duration `envconfig:"REDIS_DEDUP_TTL" default:"10m"`
}

type SagaConfig struct {
	// RequestTimeout bounds how long a reservation may sit in REQUEST
	// before the sweep compensates it.
	RequestTimeout time.Duration `envconfig:"SAGA_REQUEST_TIMEOUT" default:"5m"`
	SweepInterval  time.Duration `envconfig:"SAGA_SWEEP_INTERVAL" default:"1m"`
	PublishTimeout time.Duration `envconfig:"SAGA_PUBLISH_TIMEOUT" default:"15s"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000,http://localhost:8080"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
			MaxConns: 5,
		},
		Kafka: KafkaConfig{
			Brokers:        []string{"localhost:19092"},
			ConsumerGroup:  "reserve-portal-test",
			RequestedTopic: "reservation.requested",
			OutcomeTopic:   "reservation.outcome",
			AttachTopic:    "attachment.linked",
		},
		Redis: RedisConfig{
			Addr:     "localhost:16379",
			DedupTTL: time.Minute,
		},
		Saga: SagaConfig{
			RequestTimeout: 30 * time.Second,
			SweepInterval:  5 * time.Second,
			PublishTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level: "error",
		},
	}
}
