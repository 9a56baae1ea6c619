package health

import (
	"context"
	"errors"
	"strings"
	"testing"

	"smartwarga/core/database"
	"smartwarga/core/storage/mocks"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// setupMockDB creates a mock GORM DB for testing.
func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

type widget struct {
	ID   uint
	Name string
}

func setupSQLite(t *testing.T) *gorm.DB {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := database.Connect(database.Config{
		Driver: database.DriverSQLite,
		Name:   "file:" + name + "?mode=memory&cache=shared",
	})
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db, &widget{}))
	t.Cleanup(func() {
		sqlDB, _ := db.DB()
		sqlDB.Close()
	})
	return db
}

func TestCheckSchema_MySQL(t *testing.T) {
	db, sqlMock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
	rows.AddRow("id", "bigint unsigned", "NO", "PRI", nil, "auto_increment")
	rows.AddRow("nik", "varchar(32)", "NO", "UNI", nil, "")
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `residents`").WillReturnRows(rows)

	svc := NewService(db, []Table{{Name: "residents", Columns: []string{"id", "nik", "status"}}}, nil, "", zap.NewNop())
	reports, ok := svc.CheckSchema()

	assert.False(t, ok)
	assert.Equal(t, "error", reports["residents"].Status)
	assert.Equal(t, []string{"status"}, reports["residents"].MissingColumns)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestCheckSchema_QueryFails(t *testing.T) {
	db, sqlMock := setupMockDB(t)
	sqlMock.ExpectQuery("SHOW COLUMNS FROM `sync_logs`").WillReturnError(errors.New("access denied"))

	svc := NewService(db, []Table{{Name: "sync_logs", Columns: []string{"id"}}}, nil, "", zap.NewNop())
	reports, ok := svc.CheckSchema()

	assert.False(t, ok)
	assert.Equal(t, "error", reports["sync_logs"].Status)
	assert.Contains(t, reports["sync_logs"].Error, "access denied")
}

func TestCheckSchema_SQLite(t *testing.T) {
	db := setupSQLite(t)
	svc := NewService(db, []Table{
		{Name: "widgets", Columns: []string{"id", "name"}},
		{Name: "absent", Columns: []string{"id"}},
	}, nil, "", zap.NewNop())

	reports, ok := svc.CheckSchema()

	assert.False(t, ok)
	assert.Equal(t, "ok", reports["widgets"].Status)
	assert.Empty(t, reports["widgets"].MissingColumns)
	assert.Equal(t, []string{"id"}, reports["absent"].MissingColumns)
}

func TestCheckDatabase(t *testing.T) {
	t.Run("Reachable", func(t *testing.T) {
		svc := NewService(setupSQLite(t), nil, nil, "", zap.NewNop())
		assert.NoError(t, svc.CheckDatabase(context.Background()))
	})

	t.Run("Nil", func(t *testing.T) {
		svc := NewService(nil, nil, nil, "", zap.NewNop())
		assert.Error(t, svc.CheckDatabase(context.Background()))
	})
}

func TestCheckStorage(t *testing.T) {
	t.Run("Disabled", func(t *testing.T) {
		svc := NewService(nil, nil, nil, "", zap.NewNop())
		assert.False(t, svc.StorageEnabled())
		assert.Error(t, svc.CheckStorage(context.Background()))
	})

	t.Run("Exists", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "snapshots").Return(true, nil)
		svc := NewService(nil, nil, client, "snapshots", zap.NewNop())
		assert.NoError(t, svc.CheckStorage(context.Background()))
	})

	t.Run("Missing", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "snapshots").Return(false, nil)
		svc := NewService(nil, nil, client, "snapshots", zap.NewNop())
		err := svc.CheckStorage(context.Background())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "does not exist")
	})

	t.Run("Fails", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "snapshots").Return(false, errors.New("timeout"))
		svc := NewService(nil, nil, client, "snapshots", zap.NewNop())
		assert.ErrorContains(t, svc.CheckStorage(context.Background()), "timeout")
	})
}

func TestRun(t *testing.T) {
	t.Run("Healthy", func(t *testing.T) {
		client := new(mocks.Client)
		client.On("BucketExists", mock.Anything, "snapshots").Return(true, nil)
		svc := NewService(setupSQLite(t), []Table{{Name: "widgets", Columns: []string{"id"}}}, client, "snapshots", zap.NewNop())

		report := svc.Run(context.Background())

		assert.True(t, report.Healthy)
		assert.Equal(t, "ok", report.Database.Status)
		require.NotNil(t, report.Storage)
		assert.Equal(t, "ok", report.Storage.Status)
	})

	t.Run("NoDatabaseSkipsSchema", func(t *testing.T) {
		svc := NewService(nil, []Table{{Name: "widgets", Columns: []string{"id"}}}, nil, "", zap.NewNop())

		report := svc.Run(context.Background())

		assert.False(t, report.Healthy)
		assert.Equal(t, "error", report.Database.Status)
		assert.Empty(t, report.Tables)
		assert.Nil(t, report.Storage)
	})
}
