package favorites

import (
	"context"
	"testing"
	"time"

	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService() (*Service, *storage.MemoryStore) {
	store := storage.NewMemoryStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return NewService(store, &config.Config{}, logger), store
}

func TestAddIsIdempotent(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	item := Item{ID: "1", Type: "course", Title: "Go Basics", Price: decimal.RequireFromString("49.99")}

	_, err := svc.Add(ctx, "s1", item)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Count(ctx, "s1"))

	_, err = svc.Add(ctx, "s1", item)
	require.NoError(t, err)
	assert.Equal(t, 1, svc.Count(ctx, "s1"))
}

func TestAddRequiresID(t *testing.T) {
	svc, _ := newTestService()

	_, err := svc.Add(context.Background(), "s1", Item{Title: "no id"})
	assert.Error(t, err)
}

func TestFavoritesKeyedByIDOnly(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", Item{ID: "1", Type: "book", Title: "Clean Code"})
	require.NoError(t, err)

	// Same ID under a different type is still the same favorite
	_, err = svc.Add(ctx, "s1", Item{ID: "1", Type: "course", Title: "Go Basics"})
	require.NoError(t, err)

	assert.Equal(t, 1, svc.Count(ctx, "s1"))
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	f, err := svc.Remove(ctx, "s1", "missing")
	require.NoError(t, err)
	assert.Empty(t, f.Items)
}

func TestIsFavorite(t *testing.T) {
	svc, _ := newTestService()
	ctx := context.Background()

	_, err := svc.Add(ctx, "s1", Item{ID: "1", Title: "Clean Code"})
	require.NoError(t, err)

	assert.True(t, svc.IsFavorite(ctx, "s1", "1"))
	assert.False(t, svc.IsFavorite(ctx, "s1", "2"))

	_, err = svc.Remove(ctx, "s1", "1")
	require.NoError(t, err)
	assert.False(t, svc.IsFavorite(ctx, "s1", "1"))
}

func TestPersistenceRoundTrip(t *testing.T) {
	store := storage.NewMemoryStore()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	ctx := context.Background()

	svc := NewService(store, &config.Config{}, logger)
	_, err := svc.Add(ctx, "s1", Item{ID: "1", Title: "Clean Code"})
	require.NoError(t, err)
	_, err = svc.Add(ctx, "s1", Item{ID: "2", Title: "Go Time"})
	require.NoError(t, err)

	reloaded := NewService(store, &config.Config{}, logger)
	f, err := reloaded.Get(ctx, "s1")
	require.NoError(t, err)

	require.Len(t, f.Items, 2)
	assert.True(t, f.Contains("1"))
	assert.True(t, f.Contains("2"))
}

func TestCorruptSnapshotYieldsEmptySet(t *testing.T) {
	svc, store := newTestService()
	ctx := context.Background()

	require.NoError(t, store.Set(ctx, favoritesKey("s1"), []byte("???"), time.Hour))

	f, err := svc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, f.Items)
	assert.Equal(t, 0, svc.Count(ctx, "s1"))
}
