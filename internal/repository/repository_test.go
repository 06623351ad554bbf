package repository

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"giglog/internal/database"
	"giglog/internal/domain"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect("file:" + uuid.NewString() + "?mode=memory&cache=shared")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *domain.User {
	t.Helper()
	user := &domain.User{
		FirstName:      "Test",
		LastName:       "User",
		Email:          email,
		HashedPassword: "not-a-real-hash",
	}
	require.NoError(t, NewUserRepository(db).Create(context.Background(), user))
	return user
}
