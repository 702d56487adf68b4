package order

import (
	"context"
	"testing"
	"time"

	"github.com/mindstore/order-service/internal/config"
	"github.com/mindstore/order-service/internal/domain/cart"
	"github.com/mindstore/order-service/internal/infrastructure/storage"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCartService() *cart.Service {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	return cart.NewService(storage.NewMemoryStore(), &config.Config{}, logger)
}

func TestPlaceOrderBuildsSnapshotAndClearsCart(t *testing.T) {
	cartSvc := newTestCartService()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := NewService(cartSvc, logger)
	ctx := context.Background()

	item := cart.LineItem{ID: "1", Type: cart.ItemTypeBook, Title: "Clean Code", Price: decimal.RequireFromString("29.99")}
	_, err := cartSvc.Add(ctx, "s1", item, 1)
	require.NoError(t, err)

	snap, err := svc.PlaceOrder(ctx, "s1", CustomerContact{Name: "A", Email: "a@x.com"})
	require.NoError(t, err)

	assert.NotEmpty(t, snap.ID)
	require.Len(t, snap.Items, 1)
	assert.Equal(t, "29.99", snap.Subtotal.StringFixed(2))
	assert.Equal(t, "32.39", snap.Total.StringFixed(2))
	assert.Equal(t, "A", snap.CustomerName)
	assert.Equal(t, "a@x.com", snap.CustomerEmail)

	// Cart is empty after checkout regardless of what happens downstream
	c, err := cartSvc.Get(ctx, "s1")
	require.NoError(t, err)
	assert.Empty(t, c.Items)
}

func TestPlaceOrderRejectsEmptyCart(t *testing.T) {
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := NewService(newTestCartService(), logger)

	_, err := svc.PlaceOrder(context.Background(), "s1", CustomerContact{Name: "A", Email: "a@x.com"})
	assert.Error(t, err)
}

func TestPlaceOrderRequiresContactIdentity(t *testing.T) {
	cartSvc := newTestCartService()
	logger := logrus.New()
	logger.SetLevel(logrus.PanicLevel)
	svc := NewService(cartSvc, logger)
	ctx := context.Background()

	item := cart.LineItem{ID: "1", Type: cart.ItemTypeBook, Title: "Clean Code", Price: decimal.RequireFromString("29.99")}
	_, err := cartSvc.Add(ctx, "s1", item, 1)
	require.NoError(t, err)

	_, err = svc.PlaceOrder(ctx, "s1", CustomerContact{Email: "a@x.com"})
	assert.Error(t, err)

	_, err = svc.PlaceOrder(ctx, "s1", CustomerContact{Name: "A"})
	assert.Error(t, err)
}

func TestSnapshotIDDerivedFromSubmissionTime(t *testing.T) {
	now := time.Date(2025, 11, 15, 10, 0, 0, 0, time.UTC)
	cartSnap := cart.Snapshot{
		Items: []cart.LineItem{{ID: "1", Type: cart.ItemTypeBook, Title: "x", Price: decimal.NewFromInt(1), Quantity: 1}},
	}

	snap := NewSnapshot(cartSnap, CustomerContact{Name: "A", Email: "a@x.com"}, now)
	assert.Equal(t, "1763200800000", snap.ID)
	assert.Equal(t, now, snap.PlacedAt)
}

func TestValidate(t *testing.T) {
	valid := Snapshot{
		ID: "1",
		Items: []cart.LineItem{
			{ID: "1", Type: cart.ItemTypeBook, Title: "x", Price: decimal.NewFromInt(10), Quantity: 1},
		},
	}
	assert.NoError(t, valid.Validate())

	cases := []struct {
		name   string
		mutate func(*Snapshot)
	}{
		{"missing id", func(s *Snapshot) { s.ID = "" }},
		{"no items", func(s *Snapshot) { s.Items = nil }},
		{"zero quantity", func(s *Snapshot) { s.Items[0].Quantity = 0 }},
		{"negative price", func(s *Snapshot) { s.Items[0].Price = decimal.NewFromInt(-1) }},
		{"missing title", func(s *Snapshot) { s.Items[0].Title = "" }},
		{"negative total", func(s *Snapshot) { s.Total = decimal.NewFromInt(-1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := valid
			s.Items = []cart.LineItem{valid.Items[0]}
			tc.mutate(&s)
			assert.Error(t, s.Validate())
		})
	}
}
