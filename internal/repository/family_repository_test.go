package repository

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	return db, mock
}

func TestCreditCoinsIssuesSingleIncrement(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFamilyRepository(db)

	// The credit must be a relative increment, not a read-modify-write.
	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `family_members` SET `coins`=coins \\+ \\?").
		WithArgs(10, 42).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.CreditCoins(42, 10)
	require.NoError(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreditCoinsMissingMember(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewFamilyRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec("UPDATE `family_members` SET `coins`=coins \\+ \\?").
		WithArgs(5, 404).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectCommit()

	err := repo.CreditCoins(404, 5)
	assert.Error(t, err)

	assert.NoError(t, mock.ExpectationsWereMet())
}
