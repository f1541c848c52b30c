package tests

import (
	"os"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-finance-tracker/internal/server/config"
)

// Тест с мок-базой данных через DI
func TestDatabaseInjection(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	mock.ExpectQuery(`SELECT 1`).WillReturnRows(sqlmock.NewRows([]string{"1"}).AddRow(1))

	var x int
	err = db.QueryRow(`SELECT 1`).Scan(&x)
	require.NoError(t, err)
	require.Equal(t, 1, x)

	require.NoError(t, mock.ExpectationsWereMet())
}

// Интеграционный тест с настоящей базой: запускается только при заданном DSN
func TestInit_WithDSN(t *testing.T) {
	dsn := os.Getenv("TEST_POSTGRES_DSN")
	if dsn == "" {
		t.Skip("TEST_POSTGRES_DSN not set; skipping integration test")
	}

	err := config.Init(dsn, "file://../../../../migrations/postgres")
	require.NoError(t, err)

	db := config.GetDB()
	require.NotNil(t, db)
	t.Cleanup(func() { db.Close() })

	var x int
	err = db.QueryRow("SELECT 1").Scan(&x)
	require.NoError(t, err)
	require.Equal(t, 1, x)
}
