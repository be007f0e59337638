package bootstrap

import (
	"errors"
	"io/fs"
	"testing"
	"testing/fstest"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	coreconfig "github.com/acksonp2c/pscbot/core/config"
	coredatabase "github.com/acksonp2c/pscbot/core/database"
)

func TestRunOrder(t *testing.T) {
	var calls []string
	opts := Options{
		Config:     &coreconfig.Config{},
		Migrations: fstest.MapFS{},
		LoggerInit: func(*coreconfig.Config) error { calls = append(calls, "logger"); return nil },
		Migrate: func(coredatabase.Config, fs.FS) error {
			calls = append(calls, "migrate")
			return nil
		},
		Connect: func(coredatabase.Config) (*sqlx.DB, error) {
			calls = append(calls, "connect")
			return &sqlx.DB{}, nil
		},
	}

	res, err := Run(opts)
	require.NoError(t, err)
	assert.NotNil(t, res.DB)
	assert.Equal(t, []string{"logger", "migrate", "connect"}, calls)
}

func TestRunStopsOnMigrationError(t *testing.T) {
	connected := false
	_, err := Run(Options{
		Config:     &coreconfig.Config{},
		Migrations: fstest.MapFS{},
		LoggerInit: func(*coreconfig.Config) error { return nil },
		Migrate:    func(coredatabase.Config, fs.FS) error { return errors.New("bad sql") },
		Connect: func(coredatabase.Config) (*sqlx.DB, error) {
			connected = true
			return nil, nil
		},
	})
	assert.ErrorContains(t, err, "migrations failed")
	assert.False(t, connected)
}

func TestRunRequiresConfig(t *testing.T) {
	_, err := Run(Options{})
	assert.Error(t, err)
}
