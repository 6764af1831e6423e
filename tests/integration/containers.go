//go:build integration

// Package integration spins up the real backing services (Postgres,
// Kafka, Redis) in containers and runs the reservation workflow against
// them end to end.
package integration

import (
	"context"
	"os"
	"path/filepath"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/kafka"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type Env struct {
	PG        *postgres.PostgresContainer
	Kafka     *kafka.KafkaContainer
	Redis     testcontainers.Container
	Pool      *pgxpool.Pool
	PGURL     string
	Brokers   []string
	RedisAddr string
	cancel    context.CancelFunc
}

func Setup(ctx context.Context) (*Env, error) {
	ctx, cancel := context.WithTimeout(ctx, 3*time.Minute)

	env := &Env{cancel: cancel}

	pgC, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("reserve_portal"),
		postgres.WithUsername("postgres"),
		postgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(time.Minute),
		),
	)
	if err != nil {
		cancel()
		return nil, err
	}
	env.PG = pgC

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		env.Teardown(ctx)
		return nil, err
	}
	env.PGURL = pgURL

	kafkaC, err := kafka.Run(ctx,
		"confluentinc/confluent-local:7.5.0",
		kafka.WithClusterID("reserve-portal-test"),
	)
	if err != nil {
		env.Teardown(ctx)
		return nil, err
	}
	env.Kafka = kafkaC

	brokers, err := kafkaC.Brokers(ctx)
	if err != nil {
		env.Teardown(ctx)
		return nil, err
	}
	env.Brokers = brokers

	redisC, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort("6379/tcp"),
		},
		Started: true,
	})
	if err != nil {
		env.Teardown(ctx)
		return nil, err
	}
	env.Redis = redisC

	redisHost, err := redisC.Host(ctx)
	if err != nil {
		env.Teardown(ctx)
		return nil, err
	}
	redisPort, err := redisC.MappedPort(ctx, "6379/tcp")
	if err != nil {
		env.Teardown(ctx)
		return nil, err
	}
	env.RedisAddr = redisHost + ":" + redisPort.Port()

	pool, err := pgxpool.New(ctx, pgURL)
	if err != nil {
		env.Teardown(ctx)
		return nil, err
	}
	env.Pool = pool

	if err := env.applyMigrations(ctx); err != nil {
		env.Teardown(ctx)
		return nil, err
	}

	return env, nil
}

func (e *Env) applyMigrations(ctx context.Context) error {
	files, err := filepath.Glob(filepath.Join("..", "..", "migrations", "*.sql"))
	if err != nil {
		return err
	}
	for _, f := range files {
		ddl, err := os.ReadFile(f)
		if err != nil {
			return err
		}
		if _, err := e.Pool.Exec(ctx, string(ddl)); err != nil {
			return err
		}
	}
	return nil
}

func (e *Env) Teardown(ctx context.Context) {
	if e.Pool != nil {
		e.Pool.Close()
	}
	if e.Redis != nil {
		_ = e.Redis.Terminate(ctx)
	}
	if e.Kafka != nil {
		_ = e.Kafka.Terminate(ctx)
	}
	if e.PG != nil {
		_ = e.PG.Terminate(ctx)
	}
	e.cancel()
}
