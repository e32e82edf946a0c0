package adapters

import (
	"context"
	"testing"
	"time"

	"capitalpulse_backend/internal/feature/users/domain"
	"capitalpulse_backend/internal/feature/users/domain/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// setupTestDB はインメモリSQLiteでテスト用DBを構築します。
func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&entity.User{}))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, subjectID string) *entity.User {
	t.Helper()

	now := time.Now().UTC()
	u := &entity.User{ID: uuid.New(), SubjectID: subjectID, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, db.Create(u).Error)
	return u
}

func TestUserPostgres_FindBySubject(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()

	seeded := seedUser(t, db, "auth0|abc")

	t.Run("found", func(t *testing.T) {
		u, err := repo.FindBySubject(ctx, "auth0|abc")
		require.NoError(t, err)
		assert.Equal(t, seeded.ID, u.ID)
	})

	t.Run("unknown subject", func(t *testing.T) {
		_, err := repo.FindBySubject(ctx, "auth0|nope")
		assert.ErrorIs(t, err, domain.ErrUserNotFound)
	})
}

func TestUserPostgres_Update(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()

	u := seedUser(t, db, "auth0|abc")
	u.Email = "new@example.com"
	u.Username = "newuser"
	u.UpdatedAt = time.Now().UTC()

	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "new@example.com", got.Email)
	assert.Equal(t, "newuser", got.Username)
}

func TestUserPostgres_Delete(t *testing.T) {
	db := setupTestDB(t)
	repo := NewUserPostgres(db)
	ctx := context.Background()

	u := seedUser(t, db, "auth0|abc")

	require.NoError(t, repo.Delete(ctx, u.ID))

	_, err := repo.FindByID(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	assert.ErrorIs(t, repo.Delete(ctx, u.ID), domain.ErrUserNotFound)
}
