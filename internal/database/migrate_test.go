package database

import (
	"context"
	"errors"
	"testing"
	"testing/fstest"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMockDB(t *testing.T) (*sqlx.DB, sqlmock.Sqlmock) {
	mockDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { mockDB.Close() })
	return sqlx.NewDb(mockDB, "sqlmock"), mock
}

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"migrations/000001_create_a.up.sql":   {Data: []byte("CREATE TABLE A (ID NUMBER);\n")},
		"migrations/000001_create_a.down.sql": {Data: []byte("DROP TABLE A;\n")},
		"migrations/000002_create_b.up.sql":   {Data: []byte("-- second\nCREATE TABLE B (ID NUMBER);\nCREATE INDEX IDX_B ON B (ID);\n")},
	}
}

func TestMigrator_Up_SkipsApplied(t *testing.T) {
	db, mock := newMockDB(t)
	m, err := NewMigratorFromFS(db, testFS(), "migrations")
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS SCHEMA_MIGRATIONS").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT VERSION FROM SCHEMA_MIGRATIONS").
		WillReturnRows(sqlmock.NewRows([]string{"VERSION"}).AddRow(1))
	mock.ExpectBegin()
	mock.ExpectExec(`CREATE TABLE B \(ID NUMBER\)$`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`CREATE INDEX IDX_B ON B \(ID\)$`).WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec("INSERT INTO SCHEMA_MIGRATIONS").WithArgs(2).WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	applied, err := m.Up(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestMigrator_Up_RollsBackOnFailure(t *testing.T) {
	db, mock := newMockDB(t)
	m, err := NewMigratorFromFS(db, testFS(), "migrations")
	require.NoError(t, err)

	mock.ExpectExec("CREATE TABLE IF NOT EXISTS SCHEMA_MIGRATIONS").WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectQuery("SELECT VERSION FROM SCHEMA_MIGRATIONS").WillReturnRows(sqlmock.NewRows([]string{"VERSION"}))
	mock.ExpectBegin()
	mock.ExpectExec("CREATE TABLE A").WillReturnError(errors.New("ORA-00955: name is already used"))
	mock.ExpectRollback()

	applied, err := m.Up(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1_create_a")
	assert.Equal(t, 0, applied)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEmbeddedMigrations(t *testing.T) {
	db, _ := newMockDB(t)
	m, err := NewMigrator(db)
	require.NoError(t, err)

	first, err := m.src.First()
	require.NoError(t, err)
	assert.Equal(t, uint(1), first)
}

func TestSplitStatements(t *testing.T) {
	script := "-- header\nCREATE TABLE X (\n  ID NUMBER\n);\n\nCREATE INDEX I ON X (ID);\nINSERT INTO X VALUES (1)"
	stmts := SplitStatements(script)
	require.Len(t, stmts, 3)
	assert.Equal(t, "CREATE TABLE X (\n  ID NUMBER\n)", stmts[0])
	assert.Equal(t, "CREATE INDEX I ON X (ID)", stmts[1])
	assert.Equal(t, "INSERT INTO X VALUES (1)", stmts[2])
}
