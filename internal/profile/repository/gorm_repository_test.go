package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tair/smartskin/internal/profile/domain"
)

func setupTestRepo(t *testing.T) domain.Repository {
	t.Helper()
	name := strings.NewReplacer("/", "_", " ", "_").Replace(t.Name())
	db, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", name)), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	require.NoError(t, err)
	repo := NewGormProfileRepository(db)
	require.NoError(t, repo.AutoMigrate())
	return NewTracingRepository(repo)
}

func boolPtr(b bool) *bool { return &b }

func TestProfileRepository_Users(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	u := &domain.User{Email: "ana@example.com", Password: "hash", Name: "Ana"}
	require.NoError(t, repo.Create(ctx, u))
	assert.NotZero(t, u.ID)

	err := repo.Create(ctx, &domain.User{Email: "ana@example.com", Password: "x"})
	assert.ErrorIs(t, err, domain.ErrUserExists)

	_, err = repo.FindByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	u.Preferences = domain.Preferences{SkinType: "Dry", Allergies: []string{"Fragrance"}, Climate: "cold_dry"}
	require.NoError(t, repo.Update(ctx, u))

	got, err := repo.FindByID(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dry", got.Preferences.SkinType)
	assert.Equal(t, []string{"Fragrance"}, got.Preferences.Allergies)
}

func TestProfileRepository_ResetToken(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	now := time.Now().UTC()

	token := "tok"
	expires := now.Add(time.Hour)
	u := &domain.User{Email: "a@example.com", Password: "h", ResetToken: &token, ResetTokenExpires: &expires}
	require.NoError(t, repo.Create(ctx, u))

	got, err := repo.FindByResetToken(ctx, "tok", now)
	require.NoError(t, err)
	assert.Equal(t, u.ID, got.ID)

	_, err = repo.FindByResetToken(ctx, "tok", now.Add(2*time.Hour))
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestProfileRepository_FeedbackUpsert(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.UpsertFeedback(ctx, &domain.Feedback{UserID: 1, ProductID: 5, Rating: 2, Liked: boolPtr(false)}))
	require.NoError(t, repo.UpsertFeedback(ctx, &domain.Feedback{UserID: 1, ProductID: 5, Rating: 5, Liked: boolPtr(true)}))
	require.NoError(t, repo.UpsertFeedback(ctx, &domain.Feedback{UserID: 1, ProductID: 6}))
	require.NoError(t, repo.UpsertFeedback(ctx, &domain.Feedback{UserID: 2, ProductID: 5}))

	list, err := repo.ListFeedback(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, 5, list[0].ProductID)
	assert.Equal(t, 5, list[0].Rating)
	require.NotNil(t, list[0].Liked)
	assert.True(t, *list[0].Liked)
	assert.Nil(t, list[1].Liked)
}

func TestProfileRepository_History(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	for i := 0; i < 25; i++ {
		require.NoError(t, repo.UpsertView(ctx, &domain.ViewHistory{
			UserID: 1, ProductID: i, Category: "Serum", LastViewed: base.Add(time.Duration(i) * time.Minute),
		}))
	}
	// Viewing product 3 again moves it to the front.
	require.NoError(t, repo.UpsertView(ctx, &domain.ViewHistory{UserID: 1, ProductID: 3, LastViewed: base.Add(time.Hour)}))

	got, err := repo.ListHistory(ctx, 1, domain.HistoryLimit)
	require.NoError(t, err)
	require.Len(t, got, 20)
	assert.Equal(t, 3, got[0].ProductID)
	assert.Equal(t, "Serum", got[0].Category, "refreshing a view keeps the stored category")
	assert.Equal(t, 24, got[1].ProductID)

	all, err := repo.ListHistory(ctx, 1, 0)
	require.NoError(t, err)
	assert.Len(t, all, 25)
}

func TestProfileRepository_HistoryFillsMissingProductDetails(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	require.NoError(t, repo.UpsertView(ctx, &domain.ViewHistory{UserID: 1, ProductID: 5, LastViewed: base}))
	require.NoError(t, repo.UpsertView(ctx, &domain.ViewHistory{
		UserID: 1, ProductID: 5, ProductName: "Rich Cream", Category: "Moisturizer", LastViewed: base.Add(time.Minute),
	}))

	got, err := repo.ListHistory(ctx, 1, 0)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "Rich Cream", got[0].ProductName)
	assert.Equal(t, "Moisturizer", got[0].Category)
	assert.True(t, got[0].LastViewed.Equal(base.Add(time.Minute)))
}

func TestProfileRepository_Routines(t *testing.T) {
	repo := setupTestRepo(t)
	ctx := context.Background()

	r := &domain.SavedRoutine{ID: "r1", UserID: 1, Name: "AM", Steps: json.RawMessage(`[{"step":"Cleanser"}]`), CreatedAt: time.Now()}
	require.NoError(t, repo.CreateRoutine(ctx, r))

	list, err := repo.ListRoutines(ctx, 1)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.JSONEq(t, `[{"step":"Cleanser"}]`, string(list[0].Steps))
}
