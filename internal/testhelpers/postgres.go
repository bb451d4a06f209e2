// Package testhelpers provides containerized infrastructure for integration tests.
//
// Tests that use it need a running Docker daemon and are skipped in short mode:
//
//	func TestWithPostgres(t *testing.T) {
//	    db := testhelpers.SetupPostgres(t)
//	    repo := repository.NewPostgresRepository(db.Pool)
//	    // ... test code ...
//	}
package testhelpers

import (
	"context"
	"testing"
	"time"

	"catalog-backend/internal/infrastructure/database"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	postgresImage    = "postgres:16-alpine"
	postgresUser     = "catalog"
	postgresPassword = "catalog"
	postgresDB       = "catalog_test"
)

// SetupPostgres starts a PostgreSQL container, connects a pool to it and
// applies the schema. The container is terminated via t.Cleanup.
func SetupPostgres(t *testing.T) *database.PostgresDB {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping container-based test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        postgresImage,
		ExposedPorts: []string{"5432/tcp"},
		Env: map[string]string{
			"POSTGRES_USER":     postgresUser,
			"POSTGRES_PASSWORD": postgresPassword,
			"POSTGRES_DB":       postgresDB,
		},
		// The server logs readiness twice: once for the init phase, once for real.
		WaitingFor: wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(60 * time.Second),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		if err := container.Terminate(context.Background()); err != nil {
			t.Logf("Warning: failed to terminate PostgreSQL container: %v", err)
		}
	})

	host, err := container.Host(ctx)
	if err != nil {
		t.Fatalf("Failed to get PostgreSQL host: %v", err)
	}
	port, err := container.MappedPort(ctx, "5432/tcp")
	if err != nil {
		t.Fatalf("Failed to get PostgreSQL port: %v", err)
	}

	db := database.NewPostgresDB(&database.DBConfig{
		Host:              host,
		Port:              port.Int(),
		Username:          postgresUser,
		Password:          postgresPassword,
		DBName:            postgresDB,
		SSLMode:           "disable",
		MaxConns:          10,
		MinConns:          1,
		MaxConnLifetime:   5 * time.Minute,
		MaxConnIdleTime:   time.Minute,
		HealthCheckPeriod: time.Minute,
		MaxRetries:        5,
		RetryDelay:        500 * time.Millisecond,
		ConnectTimeout:    5 * time.Second,
	})
	if err := db.Connect(ctx); err != nil {
		t.Fatalf("Failed to connect to PostgreSQL: %v", err)
	}
	t.Cleanup(db.Close)

	if err := db.EnsureSchema(ctx); err != nil {
		t.Fatalf("Failed to apply schema: %v", err)
	}

	t.Logf("PostgreSQL started: %s:%d", host, port.Int())
	return db
}

// ResetPostgres empties every table so the next test starts from a clean store.
func ResetPostgres(t *testing.T, db *database.PostgresDB) {
	t.Helper()
	if _, err := db.Pool.Exec(context.Background(), `TRUNCATE books, authors, users`); err != nil {
		t.Fatalf("Failed to truncate tables: %v", err)
	}
}
