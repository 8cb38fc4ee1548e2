package testdb

import (
	"context"
	"testing"
	"time"

	"orderflow/internal/adapters/out/postgres"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Container is a disposable Postgres with the service schema migrated.
type Container struct {
	container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// Postgres starts a container, or skips the test under -short.
func Postgres(t testing.TB) *Container {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping postgres container test in short mode")
	}

	ctx := context.Background()
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("orderflow"),
		tcpostgres.WithUsername("orderflow"),
		tcpostgres.WithPassword("orderflow"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err)

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, postgres.Migrate(db))

	return &Container{container: container, DB: db}
}

// Truncate empties every table between tests.
func (c *Container) Truncate(t testing.TB) {
	t.Helper()
	require.NoError(t, c.DB.Exec("TRUNCATE TABLE orders, riders, rider_locations, order_events").Error)
}

func (c *Container) Terminate(t testing.TB) {
	t.Helper()
	if sqlDB, err := c.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	require.NoError(t, c.container.Terminate(context.Background()))
}
