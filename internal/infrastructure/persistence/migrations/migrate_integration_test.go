//go:build integration

package migrations_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/alchemorsel/composer/internal/infrastructure/persistence/migrations"
	"github.com/alchemorsel/composer/test/testutils"
)

func TestMigrator_UpDownStatus(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	db := testutils.SetupTestDatabase(t)

	m, err := migrations.Open(db.DSN, zap.NewNop())
	require.NoError(t, err)
	defer m.Close()

	status, err := m.Status()
	require.NoError(t, err)
	assert.Equal(t, uint(2), status.Version)
	assert.False(t, status.Dirty)

	// Already applied by the test database setup.
	require.NoError(t, m.Up())

	require.NoError(t, m.Down(1))
	status, err = m.Status()
	require.NoError(t, err)
	assert.Equal(t, uint(1), status.Version)

	require.NoError(t, m.Up())
	status, err = m.Status()
	require.NoError(t, err)
	assert.Equal(t, uint(2), status.Version)

	assert.Error(t, m.Down(0))
}
