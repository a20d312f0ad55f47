package testutil

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/dimitrije/futbol-api/internal/database"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// tables in truncation order; CASCADE covers the rest.
var tables = []string{"matches", "invitations", "venues", "teams", "users"}

// TestDB is a migrated PostgreSQL running in a throwaway container.
type TestDB struct {
	DB        *database.DB
	Container testcontainers.Container
}

// StartPostgres boots a container and migrates it. Callers share it across
// a package and reset it with CleanTables.
func StartPostgres(ctx context.Context) (*TestDB, error) {
	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "postgres:16-alpine",
			ExposedPorts: []string{"5432/tcp"},
			Env: map[string]string{
				"POSTGRES_USER":     "futbol",
				"POSTGRES_PASSWORD": "futbol",
				"POSTGRES_DB":       "futbol_test",
			},
			WaitingFor: wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60 * time.Second),
		},
		Started: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to start postgres container: %w", err)
	}

	tdb := &TestDB{Container: container}

	host, err := container.Host(ctx)
	if err != nil {
		tdb.Close(ctx)
		return nil, fmt.Errorf("failed to get container host: %w", err)
	}
	port, err := container.MappedPort(ctx, "5432")
	if err != nil {
		tdb.Close(ctx)
		return nil, fmt.Errorf("failed to get container port: %w", err)
	}

	dsn := fmt.Sprintf("postgres://futbol:futbol@%s:%s/futbol_test?sslmode=disable", host, port.Port())
	if tdb.DB, err = database.New(ctx, dsn); err != nil {
		tdb.Close(ctx)
		return nil, err
	}
	if err := tdb.DB.Migrate(ctx); err != nil {
		tdb.Close(ctx)
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}
	return tdb, nil
}

func (tdb *TestDB) Close(ctx context.Context) {
	if tdb.DB != nil {
		tdb.DB.Close()
	}
	_ = tdb.Container.Terminate(ctx)
}

// CleanTables empties every table so each test starts from scratch.
func (tdb *TestDB) CleanTables(t *testing.T) {
	t.Helper()
	_, err := tdb.DB.Pool.Exec(context.Background(), "TRUNCATE TABLE "+strings.Join(tables, ", ")+" CASCADE")
	if err != nil {
		t.Fatalf("failed to truncate tables: %v", err)
	}
}
