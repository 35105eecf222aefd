package postgres

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/go-shop-auth/internal/domain"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return db, mock
}

var sellerColumns = []string{"seller_id", "name", "email", "phone_number", "country", "password_hash"}

func TestSellerRepo_GetPreloadsShop(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "sellers" WHERE seller_id = \$1`).
		WillReturnRows(sqlmock.NewRows(sellerColumns).
			AddRow("s1", "Shopkeeper", "s@b.com", "+15550001111", "US", "hash"))
	mock.ExpectQuery(`SELECT \* FROM "shops" WHERE "shops"."seller_id" = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"shop_id", "seller_id", "name"}).
			AddRow("shop1", "s1", "Corner"))

	s, err := NewSellerRepo(db).Get(context.Background(), "s1", true)
	require.NoError(t, err)
	assert.Equal(t, "s@b.com", s.Email)
	require.NotNil(t, s.Shop)
	assert.Equal(t, "shop1", s.Shop.ShopID)
	assert.Equal(t, "Corner", s.Shop.Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSellerRepo_GetWithoutShop(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "sellers" WHERE seller_id = \$1`).
		WillReturnRows(sqlmock.NewRows(sellerColumns).
			AddRow("s1", "Shopkeeper", "s@b.com", "+15550001111", "US", "hash"))

	s, err := NewSellerRepo(db).Get(context.Background(), "s1", false)
	require.NoError(t, err)
	assert.Nil(t, s.Shop)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSellerRepo_GetMissing(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "sellers" WHERE seller_id = \$1`).
		WillReturnRows(sqlmock.NewRows(sellerColumns))

	_, err := NewSellerRepo(db).Get(context.Background(), "nope", true)
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuyerRepo_GetByEmail(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectQuery(`SELECT \* FROM "buyers" WHERE email = \$1`).
		WillReturnRows(sqlmock.NewRows([]string{"buyer_id", "name", "email", "password_hash"}).
			AddRow("b1", "Ann", "a@b.com", "hash"))

	b, err := NewBuyerRepo(db).GetByEmail(context.Background(), "a@b.com")
	require.NoError(t, err)
	assert.Equal(t, "b1", b.BuyerID)
	assert.Equal(t, "hash", b.PasswordHash)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestBuyerRepo_UpdatePasswordHash(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "buyers" SET .*"password_hash"=.* WHERE buyer_id = `).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := NewBuyerRepo(db).Update(context.Background(), "b1", map[string]interface{}{"password_hash": "new"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSellerRepo_UpdateMissingRow(t *testing.T) {
	db, mock := newMockDB(t)
	mock.ExpectExec(`UPDATE "sellers" SET`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	err := NewSellerRepo(db).Update(context.Background(), "nope", map[string]interface{}{"password_hash": "new"})
	assert.True(t, errors.Is(err, domain.ErrNotFound))
	assert.NoError(t, mock.ExpectationsWereMet())
}
