package repository

import (
	"context"
	"strconv"
	"testing"
	"time"

	"campus_lost_found/internal/item/domain"
	"campus_lost_found/pkg/database"
	"campus_lost_found/pkg/logger"
	testtool "campus_lost_found/pkg/test_tool"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

// setupItemRepo 啟動 PostgreSQL 容器, 無 docker 時 skip
func setupItemRepo(t *testing.T) ItemRepo {
	t.Helper()
	if testing.Short() {
		t.Skip("skip postgres integration test in -short mode")
	}
	testtool.SkipIfNoDocker(t)
	logger.SetNewNop()
	ctx := context.Background()

	container, host, port, err := testtool.SetupContainer(ctx, testcontainers.ContainerRequest{
		Image: "postgres:16-alpine",
		Env: map[string]string{
			"POSTGRES_USER":     "test",
			"POSTGRES_PASSWORD": "test",
			"POSTGRES_DB":       "lostfound",
		},
		ExposedPorts: []string{"5432/tcp"},
		WaitingFor:   wait.ForLog("database system is ready to accept connections").WithOccurrence(2).WithStartupTimeout(60 * time.Second),
	})
	if err != nil {
		t.Skipf("docker not available: %v", err)
	}
	t.Cleanup(func() { _ = container.Terminate(ctx) })

	p, err := strconv.Atoi(port)
	require.NoError(t, err)
	db, err := database.NewPGConnection(database.Connection{
		ConnectStr:    database.PostgresDSN(host, p, "test", "test", "lostfound"),
		RetryCount:    5,
		RetryInterval: 1,
	})
	require.NoError(t, err)

	repo := NewItemRepo(db)
	require.NoError(t, repo.AutoMigrate())
	return repo
}

func seedItem(t *testing.T, repo ItemRepo, title string, status domain.ItemStatus, category, location string, created time.Time) *domain.Item {
	t.Helper()
	it := &domain.Item{
		ID:           uuid.New().String(),
		UserID:       "owner-1",
		Title:        title,
		Category:     category,
		Status:       status,
		Location:     location,
		ItemDate:     created,
		ContactEmail: "owner@campus.edu",
		CreatedAt:    created,
	}
	require.NoError(t, repo.Create(context.Background(), it))
	return it
}

func TestItemRepoIntegration(t *testing.T) {
	repo := setupItemRepo(t)
	ctx := context.Background()
	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

	lostWallet := seedItem(t, repo, "Brown Wallet", domain.ItemLost, "Wallet", "Library", base)
	foundWallet := seedItem(t, repo, "Black wallet", domain.ItemFound, "Wallet", "Gym", base.Add(time.Hour))
	keys := seedItem(t, repo, "Keys 100%", domain.ItemLost, "Keys", "Cafe", base.Add(2*time.Hour))

	t.Run("wallet example", func(t *testing.T) {
		items, err := repo.List(ctx, domain.ItemFilter{Status: "lost", Category: "All", Search: "wallet"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, lostWallet.ID, items[0].ID)
	})

	t.Run("no filter ordered by created_at desc", func(t *testing.T) {
		items, err := repo.List(ctx, domain.ItemFilter{Status: "All", Category: "All"})
		require.NoError(t, err)
		require.Len(t, items, 3)
		assert.Equal(t, []string{keys.ID, foundWallet.ID, lostWallet.ID}, []string{items[0].ID, items[1].ID, items[2].ID})
	})

	t.Run("search over location and wildcard escaped", func(t *testing.T) {
		items, err := repo.List(ctx, domain.ItemFilter{Search: "GYM"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, foundWallet.ID, items[0].ID)

		items, err = repo.List(ctx, domain.ItemFilter{Search: "%"})
		require.NoError(t, err)
		require.Len(t, items, 1)
		assert.Equal(t, keys.ID, items[0].ID)
	})

	t.Run("resolve once", func(t *testing.T) {
		story := "Found it at the front desk"
		ok, err := repo.MarkResolved(ctx, lostWallet.ID, &story, base.Add(24*time.Hour))
		require.NoError(t, err)
		assert.True(t, ok)

		ok, err = repo.MarkResolved(ctx, lostWallet.ID, nil, base.Add(48*time.Hour))
		require.NoError(t, err)
		assert.False(t, ok)

		stories, err := repo.SuccessStories(ctx, 10)
		require.NoError(t, err)
		require.Len(t, stories, 1)
		assert.Equal(t, story, *stories[0].SuccessStory)

		recent, err := repo.Recent(ctx, 10)
		require.NoError(t, err)
		assert.Len(t, recent, 2)
	})

	t.Run("stats", func(t *testing.T) {
		s, err := repo.Stats(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.ItemStats{Total: 3, Lost: 2, Found: 1, Resolved: 1}, *s)
	})

	t.Run("get by id", func(t *testing.T) {
		_, err := repo.GetByID(ctx, uuid.New().String())
		assert.Error(t, err)

		it, err := repo.GetByID(ctx, keys.ID)
		require.NoError(t, err)
		assert.Equal(t, "Keys 100%", it.Title)

		mine, err := repo.ListByUser(ctx, "owner-1")
		require.NoError(t, err)
		assert.Len(t, mine, 3)
	})

	t.Run("search is OR across title description location, category exact", func(t *testing.T) {
		desc := "cracked screen"
		phone := &domain.Item{
			ID:           uuid.New().String(),
			UserID:       "owner-2",
			Title:        "Phone",
			Category:     "Phone",
			Description:  &desc,
			Status:       domain.ItemFound,
			Location:     "Science Hall",
			ItemDate:     base,
			ContactEmail: "finder@campus.edu",
			CreatedAt:    base.Add(3 * time.Hour),
		}
		require.NoError(t, repo.Create(ctx, phone))

		for _, search := range []string{"PHONE", "Cracked", "science"} {
			items, err := repo.List(ctx, domain.ItemFilter{Search: search})
			require.NoError(t, err, search)
			require.Len(t, items, 1, search)
			assert.Equal(t, phone.ID, items[0].ID, search)
		}

		items, err := repo.List(ctx, domain.ItemFilter{Category: "phone"})
		require.NoError(t, err)
		assert.Empty(t, items)

		items, err = repo.List(ctx, domain.ItemFilter{Category: "Phone"})
		require.NoError(t, err)
		require.Len(t, items, 1)
	})
}
