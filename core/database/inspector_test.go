package database

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

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

func TestGetTableColumns_MySQL(t *testing.T) {
	db, mock := setupMockDB(t)

	rows := sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"}).
		AddRow("NIK", "VARCHAR(16)", "NO", "UNI", nil, "").
		AddRow("updated_at", "DATETIME(3)", "YES", "", nil, "")
	mock.ExpectQuery("SHOW COLUMNS FROM `residents`").WillReturnRows(rows)

	cols, err := GetTableColumns(db, "residents")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "nik", cols[0].Field)
	assert.Equal(t, "varchar(16)", cols[0].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetTableColumns_Error(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS").WillReturnError(assert.AnError)

	cols, err := GetTableColumns(db, "residents")
	assert.Nil(t, cols)
	assert.ErrorContains(t, err, "failed to get columns for table residents")
}

func TestMissingColumns_SQLite(t *testing.T) {
	db, err := Connect(Config{Driver: DriverSQLite, Name: "file:missing_columns_test?mode=memory&cache=shared"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db, &widget{}))

	missing, err := MissingColumns(db, "widgets", []string{"id", "name", "color"})
	require.NoError(t, err)
	assert.Equal(t, []string{"color"}, missing)

	missing, err = MissingColumns(db, "does_not_exist", []string{"id"})
	require.NoError(t, err)
	assert.Equal(t, []string{"id"}, missing)
}
