package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"zmart/internal/domain"
	"zmart/internal/state"
)

type failingBlobs struct{ err error }

func (f failingBlobs) Get(context.Context, string) (string, error) { return "", f.err }
func (f failingBlobs) Set(context.Context, string, string) error   { return f.err }

func reachableState() domain.AppState {
	at := time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)
	seed := domain.SeedProducts()
	s := domain.DefaultState()
	s = state.Reduce(s, state.Login{User: domain.User{ID: "u1", Name: "Ann", Email: "ann@example.com", Role: domain.RoleSeller}})
	s = state.Reduce(s, state.AddToCart{Product: seed[0]})
	s = state.Reduce(s, state.AddToCart{Product: seed[0]})
	s = state.Reduce(s, state.AddToCart{Product: seed[3]})
	s = state.Reduce(s, state.PlaceOrder{OrderID: "ord_abc", Date: at})
	s = state.Reduce(s, state.UpdateOrderStatus{OrderID: "ord_abc", Status: domain.OrderStatusShipped})
	s = state.Reduce(s, state.AddToCart{Product: seed[1]})
	s = state.Reduce(s, state.SetSearchQuery{Query: "w"})
	s = state.Reduce(s, state.SetCategoryFilter{Category: "Electronics"})
	return s
}

func TestSnapshots_RoundTrip(t *testing.T) {
	ctx := context.Background()
	snaps := NewSnapshots(NewMemoryBlobStore(), "", nil)

	for _, want := range []domain.AppState{domain.DefaultState(), reachableState()} {
		require.NoError(t, snaps.Save(ctx, want))
		got, err := snaps.Load(ctx)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}

func TestSnapshots_MissingKeyGivesDefault(t *testing.T) {
	got, err := NewSnapshots(NewMemoryBlobStore(), "", nil).Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultState(), got)
}

func TestSnapshots_CorruptedGivesDefault(t *testing.T) {
	ctx := context.Background()
	for _, raw := range []string{"not json", "{", "null", `{"cart": 5}`, ""} {
		blobs := NewMemoryBlobStore()
		require.NoError(t, blobs.Set(ctx, DefaultStateKey, raw))
		got, err := NewSnapshots(blobs, DefaultStateKey, nil).Load(ctx)
		require.NoError(t, err, raw)
		assert.Equal(t, domain.DefaultState(), got, raw)
	}
}

func TestSnapshots_StoreErrorFallsBack(t *testing.T) {
	boom := errors.New("disk gone")
	snaps := NewSnapshots(failingBlobs{err: boom}, "", nil)

	got, err := snaps.Load(context.Background())
	require.ErrorIs(t, err, boom)
	assert.Equal(t, domain.DefaultState(), got)

	require.ErrorIs(t, snaps.Save(context.Background(), domain.DefaultState()), boom)
}

func TestDecode_NullCollections(t *testing.T) {
	got, err := Decode(`{"user":null,"products":null,"cart":null,"orders":[{"id":"o1","items":null}],"searchQuery":"","categoryFilter":"All"}`)
	require.NoError(t, err)
	assert.NotNil(t, got.Products)
	assert.NotNil(t, got.Cart)
	assert.NotNil(t, got.Orders[0].Items)
}

func TestEncode_UsesOriginalFieldNames(t *testing.T) {
	raw, err := Encode(reachableState())
	require.NoError(t, err)
	for _, field := range []string{`"searchQuery":"w"`, `"categoryFilter":"Electronics"`, `"sellerId":"seller1"`, `"buyerId":"u1"`, `"status":"Shipped"`} {
		assert.Contains(t, raw, field)
	}
}
