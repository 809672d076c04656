package migrate

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShippedMigrationsAreValid(t *testing.T) {
	require.NoError(t, ValidateDir("migrations"))
}

func TestMigrationsDeclareStorageConstraints(t *testing.T) {
	checks := map[string][]string{
		"*_create_product_discounts_table.sql": {
			"CONSTRAINT product_discounts_product_id_key UNIQUE (product_id)",
			"ON DELETE CASCADE",
		},
		"*_create_attributes_tables.sql": {
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_attributes_name",
		},
		"*_create_users_and_api_tokens.sql": {
			"CREATE UNIQUE INDEX IF NOT EXISTS idx_api_tokens_token_hash",
			"deleted_at TIMESTAMPTZ NULL",
		},
		"*_create_orders_tables.sql": {
			"INSERT INTO order_statuses",
			"CREATE TABLE IF NOT EXISTS order_status_history",
		},
	}

	for pattern, needles := range checks {
		matches, err := filepath.Glob(filepath.Join("migrations", pattern))
		require.NoError(t, err)
		require.Len(t, matches, 1, pattern)

		data, err := os.ReadFile(matches[0])
		require.NoError(t, err)
		for _, needle := range needles {
			assert.Contains(t, string(data), needle, matches[0])
		}
	}
}

func TestCreateSQLMigration(t *testing.T) {
	dir := t.TempDir()
	now := time.Date(2026, 3, 1, 12, 30, 0, 0, time.UTC)

	path, err := CreateSQLMigration(dir, "Add Banner To Shops!", now)
	require.NoError(t, err)
	assert.Equal(t, "20260301123000_add_banner_to_shops.sql", filepath.Base(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "-- +goose Up"))
	require.NoError(t, ValidateDir(dir))

	_, err = CreateSQLMigration(dir, "Add Banner To Shops!", now)
	assert.Error(t, err, "same version must not be overwritten")

	_, err = CreateSQLMigration(dir, "!!!", now)
	assert.Error(t, err)
}

func TestValidateDirRejectsBadNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "init.sql"), []byte("-- +goose Up\n-- +goose Down\n"), 0o644))
	assert.Error(t, ValidateDir(dir))
}
