package postgres

import (
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/mrp-api/internal/domain"
	"github.com/jhoicas/mrp-api/internal/domain/entity"
)

func TestPgCode_ErrorEnvuelto(t *testing.T) {
	err := fmt.Errorf("insert: %w", &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "users_email_key"})

	assert.True(t, isUniqueViolation(err))
	assert.False(t, isForeignKeyViolation(err))
	assert.Equal(t, "users_email_key", uniqueConstraint(err))
	assert.False(t, isUniqueViolation(fmt.Errorf("otro error")))
}

func TestStoreErr_EnvuelveErrStoreYCausa(t *testing.T) {
	cause := &pgconn.PgError{Code: "57014", Message: "canceling statement"}
	err := storeErr("list ledger by product", cause)

	assert.ErrorIs(t, err, domain.ErrStore)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "57014", pgCode(err))
	assert.Contains(t, err.Error(), "list ledger by product")
}

func TestMapUserUnique(t *testing.T) {
	email := &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "users_email_key"}
	username := &pgconn.PgError{Code: codeUniqueViolation, ConstraintName: "users_username_key"}

	assert.ErrorIs(t, mapUserUnique(email), domain.ErrEmailAlreadyExists)
	assert.ErrorIs(t, mapUserUnique(username), domain.ErrDuplicate)
}

func TestLimitArg(t *testing.T) {
	assert.Nil(t, limitArg(0))
	assert.Nil(t, limitArg(-1))
	assert.Equal(t, 20, limitArg(20))
}

func TestJSONB_ArreglosVacios(t *testing.T) {
	raw, err := toJSON(nonNil([]entity.BOMItem(nil)))
	assert.NoError(t, err)
	assert.Equal(t, "[]", string(raw))

	var items []entity.BOMItem
	assert.NoError(t, fromJSON(nil, &items))
	assert.Nil(t, items)
}
