package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func TestTranslate(t *testing.T) {
	assert.NoError(t, translate(nil))
	assert.ErrorIs(t, translate(sql.ErrNoRows), ErrNotFound)
	assert.ErrorIs(t, translate(fmt.Errorf("scan: %w", sql.ErrNoRows)), ErrNotFound)

	dup := &pq.Error{Code: "23505", Constraint: "user_email_key"}
	err := translate(dup)
	assert.ErrorIs(t, err, ErrConflict)
	assert.Contains(t, err.Error(), "user_email_key")

	other := &pq.Error{Code: "23503"}
	assert.Equal(t, error(other), translate(other))

	plain := errors.New("conexão perdida")
	assert.Equal(t, plain, translate(plain))
}
