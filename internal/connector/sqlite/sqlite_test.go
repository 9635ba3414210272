package sqlite

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramkit/internal/connector"
)

func TestRegistered(t *testing.T) {
	assert.True(t, connector.IsRegistered(Tag))

	e, err := connector.NewEngine(Tag, nil)
	require.NoError(t, err)
	assert.Equal(t, Tag, e.Type())
}

func TestConnect_Memory(t *testing.T) {
	ctx := context.Background()
	e := New(nil)
	require.NoError(t, e.Connect(ctx, ":memory:"))
	t.Cleanup(func() { _ = e.Disconnect() })

	var fk int
	require.NoError(t, e.DB().QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
	assert.Equal(t, 1, fk)

	var timeout int
	require.NoError(t, e.DB().QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
	assert.Equal(t, 5000, timeout)

	assert.Equal(t, 1, e.DB().Stats().MaxOpenConnections)
}

func TestConnector_FileDatabase(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "params.db")

	c := connector.New()
	require.NoError(t, c.BindEngineType(Tag))
	require.NoError(t, c.SetConnectionString(ctx, path))
	require.NoError(t, c.Connect(ctx))
	assert.Equal(t, connector.StateBoundConnected, c.State())

	db := c.Engine().(connector.DBProvider).DB()
	var mode string
	require.NoError(t, db.QueryRowContext(ctx, "PRAGMA journal_mode").Scan(&mode))
	assert.Equal(t, "wal", mode)

	// Switching files reconnects.
	other := filepath.Join(t.TempDir(), "other.db")
	require.NoError(t, c.SetConnectionString(ctx, other))
	assert.True(t, c.IsConnected())

	require.NoError(t, c.Disconnect())
	assert.Equal(t, connector.StateBoundDisconnected, c.State())
}
