package postgres

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"

	"github.com/go-shop-auth/internal/config"
	"github.com/go-shop-auth/internal/domain"
)

func TestTranslateError(t *testing.T) {
	assert.NoError(t, translateError(nil))

	err := translateError(fmt.Errorf("query: %w", gorm.ErrRecordNotFound))
	assert.True(t, errors.Is(err, domain.ErrNotFound))

	err = translateError(&pgconn.PgError{Code: "23505", ConstraintName: "idx_buyers_email"})
	assert.True(t, errors.Is(err, domain.ErrConflict))
	assert.Contains(t, err.Error(), "idx_buyers_email")

	fk := &pgconn.PgError{Code: "23503"}
	assert.Equal(t, error(fk), translateError(fk))
}

func TestOpen_RequiresURL(t *testing.T) {
	_, err := Open(&config.Config{})
	assert.ErrorContains(t, err, "DATABASE_URL")
}
