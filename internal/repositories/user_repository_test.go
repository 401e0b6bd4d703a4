package repository_test

import (
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/aaravmahajanofficial/helmet-storefront/internal/models"
	repository "github.com/aaravmahajanofficial/helmet-storefront/internal/repositories"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserRepository(t *testing.T) {
	db, mock := newMockDB(t)
	repo := repository.NewUserRepo(db)
	ctx := t.Context()
	now := time.Now()

	t.Run("CreateUser - defaults role to customer", func(t *testing.T) {
		// Arrange
		user := &models.User{Email: "test@example.com", Password: "hashed", Name: "Test User"}
		newID := uuid.New()

		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users(email, password, name, phone, role, created_at, updated_at)")).
			WithArgs(user.Email, user.Password, user.Name, "", models.RoleCustomer).
			WillReturnRows(sqlmock.NewRows([]string{"id", "created_at", "updated_at"}).AddRow(newID.String(), now, now))

		// Act
		err := repo.CreateUser(ctx, user)

		// Assert
		require.NoError(t, err)
		assert.Equal(t, newID, user.ID)
		assert.Equal(t, models.RoleCustomer, user.Role)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("CreateUser - Error", func(t *testing.T) {
		// Arrange
		dbErr := errors.New("duplicate key")
		mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO users")).WillReturnError(dbErr)

		// Act
		err := repo.CreateUser(ctx, &models.User{Email: "dup@example.com"})

		// Assert
		assert.ErrorIs(t, err, dbErr)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetUserByEmail - Success", func(t *testing.T) {
		// Arrange
		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE email = $1")).
			WithArgs("admin@example.com").
			WillReturnRows(sqlmock.NewRows([]string{"id", "email", "password", "name", "phone", "role", "created_at", "updated_at"}).
				AddRow(id.String(), "admin@example.com", "hash", "Admin", "", "admin", now, now))

		// Act
		user, err := repo.GetUserByEmail(ctx, "admin@example.com")

		// Assert
		require.NoError(t, err)
		assert.True(t, user.IsAdmin())
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("GetUserById - Not Found", func(t *testing.T) {
		// Arrange
		id := uuid.New()
		mock.ExpectQuery(regexp.QuoteMeta("FROM users WHERE id = $1")).WithArgs(id).WillReturnError(sql.ErrNoRows)

		// Act
		user, err := repo.GetUserById(ctx, id)

		// Assert
		assert.Nil(t, user)
		assert.ErrorIs(t, err, sql.ErrNoRows)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
