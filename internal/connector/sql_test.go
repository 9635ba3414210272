package connector

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"paramkit/internal/domain"
)

const mockTag EngineType = "mock"

func TestSQLEngine_Connect(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name         string
		dsn          string
		monitorPings bool
		init         InitFunc
		setupMock    func(mock sqlmock.Sqlmock)
		expectErr    bool
		errMsg       string
	}{
		{
			name: "connect success",
			dsn:  "sqlmock_connect_success",
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectClose()
			},
		},
		{
			name: "init statements run in order",
			dsn:  "sqlmock_connect_init",
			init: Statements("PRAGMA busy_timeout=5000", "PRAGMA foreign_keys=ON"),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("PRAGMA busy_timeout").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectExec("PRAGMA foreign_keys").WillReturnResult(sqlmock.NewResult(0, 0))
				mock.ExpectClose()
			},
		},
		{
			name: "init failure",
			dsn:  "sqlmock_connect_init_failure",
			init: Statements("PRAGMA journal_mode=WAL"),
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectExec("PRAGMA journal_mode").WillReturnError(errors.New("database is locked"))
				mock.ExpectClose()
			},
			expectErr: true,
			errMsg:    "failed to initialize database",
		},
		{
			name:         "ping failure",
			dsn:          "sqlmock_connect_ping_failure",
			monitorPings: true,
			setupMock: func(mock sqlmock.Sqlmock) {
				mock.ExpectPing().WillReturnError(errors.New("connection refused"))
				mock.ExpectClose()
			},
			expectErr: true,
			errMsg:    "failed to ping database",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, mock, err := sqlmock.NewWithDSN(tt.dsn, sqlmock.MonitorPingsOption(tt.monitorPings))
			require.NoError(t, err)
			if tt.setupMock != nil {
				tt.setupMock(mock)
			}

			e := NewSQLEngine(mockTag, "sqlmock", nil, tt.init)
			err = e.Connect(ctx, tt.dsn)
			if tt.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, domain.ErrConnection))
				assert.Contains(t, err.Error(), tt.errMsg)
				assert.False(t, e.IsConnected())
				assert.Nil(t, e.DB())
				return
			}

			require.NoError(t, err)
			assert.True(t, e.IsConnected())
			assert.NotNil(t, e.DB())
			assert.Equal(t, mockTag, e.Type())

			require.NoError(t, e.Disconnect())
			assert.False(t, e.IsConnected())
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestSQLEngine_OpenFailures(t *testing.T) {
	ctx := context.Background()

	t.Run("unknown driver", func(t *testing.T) {
		e := NewSQLEngine(mockTag, "nosuchdriver", nil, nil)
		err := e.Connect(ctx, "x")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConnection))
		assert.Contains(t, err.Error(), "failed to open database")
	})

	t.Run("unreachable backend", func(t *testing.T) {
		// The sqlmock driver refuses DSNs that were never registered.
		e := NewSQLEngine(mockTag, "sqlmock", nil, nil)
		err := e.Connect(ctx, "sqlmock_never_registered")
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrConnection))
		assert.False(t, e.IsConnected())
	})
}

func TestSQLEngine_DisconnectWithoutConnection(t *testing.T) {
	e := NewSQLEngine(mockTag, "sqlmock", nil, nil)
	assert.NoError(t, e.Disconnect())
}

func TestSQLEngine_CloseError(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("sqlmock_close_error")
	require.NoError(t, err)
	mock.ExpectClose().WillReturnError(errors.New("close failed"))

	e := NewSQLEngine(mockTag, "sqlmock", nil, nil)
	require.NoError(t, e.Connect(context.Background(), "sqlmock_close_error"))

	err = e.Disconnect()
	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrConnection))
	assert.False(t, e.IsConnected())
}

func TestConnector_WithSQLEngine(t *testing.T) {
	_, mock, err := sqlmock.NewWithDSN("sqlmock_connector")
	require.NoError(t, err)
	mock.ExpectClose()

	c := New()
	c.BindEngine(NewSQLEngine(mockTag, "sqlmock", nil, nil))
	require.NoError(t, c.Assign("sqlmock_connector"))
	require.NoError(t, c.Connect(context.Background()))

	p, ok := c.Engine().(DBProvider)
	require.True(t, ok)
	assert.NotNil(t, p.DB())

	require.NoError(t, c.Release())
	assert.Equal(t, StateUnbound, c.State())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRegistry(t *testing.T) {
	t.Run("duplicate tag panics", func(t *testing.T) {
		assert.Panics(t, func() {
			Register(fakeTag, func(*slog.Logger) Engine { return &fakeEngine{} })
		})
	})

	t.Run("empty tag panics", func(t *testing.T) {
		assert.Panics(t, func() {
			Register("", func(*slog.Logger) Engine { return &fakeEngine{} })
		})
	})

	t.Run("lookup", func(t *testing.T) {
		assert.True(t, IsRegistered(fakeTag))
		assert.False(t, IsRegistered("nosuch"))
		_, ok := Lookup(fakeTag)
		assert.True(t, ok)
	})

	t.Run("engines are sorted", func(t *testing.T) {
		tags := Engines()
		assert.Contains(t, tags, fakeTag)
		for i := 1; i < len(tags); i++ {
			assert.True(t, tags[i-1] < tags[i], "expected %s before %s", tags[i-1], tags[i])
		}
	})

	t.Run("unknown engine", func(t *testing.T) {
		_, err := NewEngine("nosuch", nil)
		require.Error(t, err)

		var unknown *UnknownEngineError
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, EngineType("nosuch"), unknown.Type)
		assert.Contains(t, unknown.Available, fakeTag)
		assert.True(t, errors.Is(err, domain.ErrConnection))
	})
}
