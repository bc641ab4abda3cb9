package repository

import (
	"fmt"
	"log/slog"
	"os"
	"testing"
	"time"

	"github.com/ory/dockertest/v3"
	"github.com/ory/dockertest/v3/docker"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

// TestRepositorySuite_Postgres は dockertest で postgres コンテナを起動し、同じスイートを流す。
// Docker が必要なため INTEGRATION_DOCKER=1 のときだけ実行する。
func TestRepositorySuite_Postgres(t *testing.T) {
	if testing.Short() || os.Getenv("INTEGRATION_DOCKER") != "1" {
		t.Skip("skipping postgres integration test; set INTEGRATION_DOCKER=1 to run")
	}
	testLogger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelWarn}))

	pool, err := dockertest.NewPool("")
	require.NoError(t, err, "Could not construct pool")
	pool.MaxWait = 120 * time.Second

	resource, err := pool.RunWithOptions(&dockertest.RunOptions{
		Repository: "postgres",
		Tag:        "15-alpine",
		Env: []string{
			"POSTGRES_USER=user",
			"POSTGRES_PASSWORD=secret",
			"POSTGRES_DB=vocab_srs",
			"listen_addresses = '*'",
		},
	}, func(config *docker.HostConfig) {
		config.AutoRemove = true
		config.RestartPolicy = docker.RestartPolicy{Name: "no"}
	})
	require.NoError(t, err, "Could not start PostgreSQL resource")
	t.Cleanup(func() {
		if err := pool.Purge(resource); err != nil {
			t.Logf("Could not purge resource: %s", err)
		}
	})

	host := os.Getenv("INTEGRATION_DOCKER_HOST")
	if host == "" {
		host = "localhost"
	}
	databaseURL := fmt.Sprintf("postgres://user:secret@%s:%s/vocab_srs?sslmode=disable", host, resource.GetPort("5432/tcp"))

	var db *gorm.DB
	err = pool.Retry(func() error {
		var errRetry error
		db, errRetry = NewDB(databaseURL, testLogger)
		return errRetry
	})
	require.NoError(t, err, "Could not connect to postgres")
	require.NoError(t, Migrate(db))

	newDB := func(t testing.TB) *gorm.DB {
		// テストごとにテーブルを空にする
		err := db.Exec("TRUNCATE TABLE review_states, cards, history_entries, kv_entries").Error
		require.NoError(t, err)
		return db
	}
	suite.Run(t, &RepositorySuite{newDB: newDB})
}
