package migrations

import (
	"context"
	"database/sql"
	"errors"
	"github.com/pressly/goose/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io/fs"
	"testing"
)

func TestMigrationsEmbedded(t *testing.T) {
	files, err := fs.Glob(Migrations, "*.sql")
	require.NoError(t, err)
	assert.Contains(t, files, "00001_init.sql")

	data, err := fs.ReadFile(Migrations, "00001_init.sql")
	require.NoError(t, err)
	assert.Contains(t, string(data), "-- +goose Up")
	assert.Contains(t, string(data), "CREATE TABLE IF NOT EXISTS refresh_tokens")
}

func TestRun(t *testing.T) {
	orig := upContext
	defer func() { upContext = orig }()

	t.Run("success", func(t *testing.T) {
		var gotDir string
		upContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			gotDir = dir
			return nil
		}

		require.NoError(t, Run(context.Background(), nil))
		assert.Equal(t, ".", gotDir)
	})

	t.Run("error is wrapped", func(t *testing.T) {
		boom := errors.New("boom")
		upContext = func(ctx context.Context, db *sql.DB, dir string, opts ...goose.OptionsFunc) error {
			return boom
		}

		err := Run(context.Background(), nil)
		require.Error(t, err)
		assert.ErrorIs(t, err, boom)
	})
}
