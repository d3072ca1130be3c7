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

type testModel struct {
	ID     uint   `gorm:"column:id;primaryKey"`
	Name   string `gorm:"column:name;type:varchar(64)"`
	Digest string `gorm:"column:digest;type:char(64)"`
	Note   string `gorm:"-"`
}

func (testModel) TableName() string { return "test_items" }

func columns() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"Field", "Type", "Null", "Key", "Default", "Extra"})
}

func TestGetTableColumns(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery("SHOW COLUMNS FROM `test_items`").WillReturnRows(columns().
		AddRow("ID", "INT(11)", "NO", "PRI", nil, "auto_increment").
		AddRow("Name", "VARCHAR(64)", "YES", "", nil, ""))

	cols, err := GetTableColumns(db, "test_items")
	require.NoError(t, err)
	require.Len(t, cols, 2)
	assert.Equal(t, "id", cols[0].Field)
	assert.Equal(t, "varchar(64)", cols[1].Type)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestInspectModel(t *testing.T) {
	t.Run("Matched", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SHOW COLUMNS FROM `test_items`").WillReturnRows(columns().
			AddRow("id", "int(10) unsigned", "NO", "PRI", nil, "auto_increment").
			AddRow("name", "varchar(64)", "YES", "", nil, "").
			AddRow("digest", "char(64)", "YES", "", nil, ""))

		report, err := InspectModel(db, testModel{})
		require.NoError(t, err)
		assert.True(t, report.Matched())
		assert.Empty(t, report.MissingColumns)
	})

	t.Run("Drift", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery("SHOW COLUMNS FROM `test_items`").WillReturnRows(columns().
			AddRow("id", "int(11)", "NO", "PRI", nil, "").
			AddRow("name", "text", "YES", "", nil, ""))

		report, err := InspectModel(db, &testModel{})
		require.NoError(t, err)
		assert.False(t, report.Matched())
		assert.Equal(t, []string{"digest"}, report.MissingColumns)
		assert.Equal(t, []string{"name: expected varchar(64), got text"}, report.TypeMismatches)
	})

	t.Run("NilDB", func(t *testing.T) {
		_, err := InspectModel(nil, testModel{})
		assert.Error(t, err)
	})
}

func TestGormSetting(t *testing.T) {
	tag := "column:run_id;type:varchar(36);index"
	assert.Equal(t, "run_id", gormSetting(tag, "column"))
	assert.Equal(t, "varchar(36)", gormSetting(tag, "type"))
	assert.Equal(t, "", gormSetting(tag, "default"))
}
