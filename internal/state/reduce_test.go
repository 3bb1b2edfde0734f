package state

import (
	"errors"
	"math"
	"reflect"
	"testing"
	"time"

	"zmart/internal/domain"
)

var placedAt = time.Date(2026, 10, 14, 12, 0, 0, 0, time.UTC)

func buyer() domain.User {
	return domain.User{ID: "u1", Name: "John", Email: "john@example.com", Role: domain.RoleBuyer}
}

func product(id string, price float64) domain.Product {
	return domain.Product{ID: id, Name: "P " + id, Price: price, Category: "Electronics", SellerID: "seller1"}
}

func TestLoginLogout(t *testing.T) {
	s := Reduce(domain.DefaultState(), Login{User: buyer()})
	if s.User == nil || s.User.ID != "u1" {
		t.Fatalf("user not set: %+v", s.User)
	}
	s = Reduce(s, Logout{})
	if s.User != nil {
		t.Fatalf("user not cleared")
	}
}

func TestAddToCart_TwiceIncrements(t *testing.T) {
	p := product("p1", 100)
	s := Reduce(domain.DefaultState(), AddToCart{Product: p})
	s = Reduce(s, AddToCart{Product: p})
	if len(s.Cart) != 1 {
		t.Fatalf("expected one cart item, got %d", len(s.Cart))
	}
	if s.Cart[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", s.Cart[0].Quantity)
	}
}

func TestAddToCart_AppendsAndKeepsOrder(t *testing.T) {
	s := domain.DefaultState()
	for _, id := range []string{"a", "b", "c"} {
		s = Reduce(s, AddToCart{Product: product(id, 1)})
	}
	s = Reduce(s, AddToCart{Product: product("b", 1)})
	got := []string{s.Cart[0].ID, s.Cart[1].ID, s.Cart[2].ID}
	if !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("order changed: %v", got)
	}
	if s.Cart[0].Quantity != 1 || s.Cart[1].Quantity != 2 || s.Cart[2].Quantity != 1 {
		t.Fatalf("unexpected quantities: %+v", s.Cart)
	}
}

func TestAddToCart_DoesNotMutateInput(t *testing.T) {
	before := Reduce(domain.DefaultState(), AddToCart{Product: product("p1", 10)})
	_ = Reduce(before, AddToCart{Product: product("p1", 10)})
	if before.Cart[0].Quantity != 1 {
		t.Fatalf("previous snapshot mutated")
	}
}

func TestRemoveFromCart(t *testing.T) {
	s := Reduce(domain.DefaultState(), AddToCart{Product: product("p1", 10)})
	s = Reduce(s, AddToCart{Product: product("p2", 10)})
	s = Reduce(s, RemoveFromCart{ProductID: "p1"})
	if len(s.Cart) != 1 || s.Cart[0].ID != "p2" {
		t.Fatalf("remove failed: %+v", s.Cart)
	}

	next, err := Apply(s, RemoveFromCart{ProductID: "missing"})
	if !errors.Is(err, ErrNotInCart) {
		t.Fatalf("expected ErrNotInCart, got %v", err)
	}
	if !reflect.DeepEqual(next, s) {
		t.Fatalf("absent remove changed state")
	}
}

func TestUpdateCartQuantity_FloorsAtOne(t *testing.T) {
	s := domain.DefaultState()
	p := product("p1", 10)
	for range 3 {
		s = Reduce(s, AddToCart{Product: p})
	}
	cases := []struct {
		delta int64
		want  int64
	}{
		{-1000, 1},
		{-2, 1},
		{-3, 1},
		{-1, 2},
		{0, 3},
		{4, 7},
	}
	for _, c := range cases {
		got := Reduce(s, UpdateCartQuantity{ProductID: "p1", Delta: c.delta})
		if got.Cart[0].Quantity != c.want {
			t.Fatalf("delta %d: expected %d, got %d", c.delta, c.want, got.Cart[0].Quantity)
		}
	}
	if _, err := Apply(s, UpdateCartQuantity{ProductID: "nope", Delta: 1}); !errors.Is(err, ErrNotInCart) {
		t.Fatalf("expected ErrNotInCart, got %v", err)
	}
}

func TestUpdateCartQuantity_Saturates(t *testing.T) {
	s := Reduce(domain.DefaultState(), AddToCart{Product: product("p1", 10)})
	got := Reduce(s, UpdateCartQuantity{ProductID: "p1", Delta: math.MaxInt64})
	if got.Cart[0].Quantity != math.MaxInt64 {
		t.Fatalf("expected saturation at MaxInt64, got %d", got.Cart[0].Quantity)
	}
	got = Reduce(got, UpdateCartQuantity{ProductID: "p1", Delta: 1})
	if got.Cart[0].Quantity != math.MaxInt64 {
		t.Fatalf("expected quantity to stay at MaxInt64, got %d", got.Cart[0].Quantity)
	}
	got = Reduce(s, UpdateCartQuantity{ProductID: "p1", Delta: math.MinInt64})
	if got.Cart[0].Quantity != 1 {
		t.Fatalf("expected floor at 1, got %d", got.Cart[0].Quantity)
	}
}

func TestPlaceOrder(t *testing.T) {
	s := Reduce(domain.DefaultState(), Login{User: buyer()})
	s = Reduce(s, AddToCart{Product: product("p1", 100)})
	s = Reduce(s, AddToCart{Product: product("p1", 100)})
	s = Reduce(s, AddToCart{Product: product("p2", 50)})

	s = Reduce(s, PlaceOrder{OrderID: "ord_1", Date: placedAt})
	if len(s.Orders) != 1 {
		t.Fatalf("expected 1 order, got %d", len(s.Orders))
	}
	o := s.Orders[0]
	if o.Total != 250 {
		t.Fatalf("expected total 250, got %v", o.Total)
	}
	if len(o.Items) != 2 || o.Status != domain.OrderStatusPending || o.BuyerID != "u1" {
		t.Fatalf("unexpected order: %+v", o)
	}
	if o.ID != "ord_1" || !o.Date.Equal(placedAt) {
		t.Fatalf("id/date not taken from action: %+v", o)
	}
	if len(s.Cart) != 0 || s.Cart == nil {
		t.Fatalf("cart not cleared: %+v", s.Cart)
	}
}

func TestPlaceOrder_SnapshotIndependentOfCart(t *testing.T) {
	s := Reduce(domain.DefaultState(), Login{User: buyer()})
	s = Reduce(s, AddToCart{Product: product("p1", 100)})
	cartBefore := s.Cart
	s = Reduce(s, PlaceOrder{OrderID: "ord_1", Date: placedAt})
	cartBefore[0].Quantity = 99
	if s.Orders[0].Items[0].Quantity != 1 {
		t.Fatalf("order items share memory with cart")
	}
	s = Reduce(s, AddToCart{Product: product("p1", 100)})
	s = Reduce(s, UpdateCartQuantity{ProductID: "p1", Delta: 5})
	if s.Orders[0].Items[0].Quantity != 1 || s.Orders[0].Total != 100 {
		t.Fatalf("order changed after cart edit: %+v", s.Orders[0])
	}
}

func TestPlaceOrder_Preconditions(t *testing.T) {
	empty := Reduce(domain.DefaultState(), Login{User: buyer()})
	got, err := Apply(empty, PlaceOrder{OrderID: "ord_1", Date: placedAt})
	if !errors.Is(err, ErrCartEmpty) {
		t.Fatalf("expected ErrCartEmpty, got %v", err)
	}
	if !reflect.DeepEqual(got, empty) {
		t.Fatalf("empty cart order changed state")
	}

	// empty cart without user is still a no-op
	anon := domain.DefaultState()
	if got := Reduce(anon, PlaceOrder{OrderID: "ord_1"}); !reflect.DeepEqual(got, anon) {
		t.Fatalf("anonymous empty cart changed state")
	}

	withCart := Reduce(domain.DefaultState(), AddToCart{Product: product("p1", 1)})
	got, err = Apply(withCart, PlaceOrder{OrderID: "ord_1", Date: placedAt})
	if !errors.Is(err, ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
	if !reflect.DeepEqual(got, withCart) {
		t.Fatalf("anonymous order changed state")
	}
}

func placed(t *testing.T) domain.AppState {
	t.Helper()
	s := Reduce(domain.DefaultState(), Login{User: buyer()})
	s = Reduce(s, AddToCart{Product: product("p1", 100)})
	return Reduce(s, PlaceOrder{OrderID: "ord_1", Date: placedAt})
}

func TestUpdateOrderStatus_Forward(t *testing.T) {
	s := placed(t)
	s = Reduce(s, UpdateOrderStatus{OrderID: "ord_1", Status: domain.OrderStatusShipped})
	if s.Orders[0].Status != domain.OrderStatusShipped {
		t.Fatalf("expected shipped, got %s", s.Orders[0].Status)
	}
	s = Reduce(s, UpdateOrderStatus{OrderID: "ord_1", Status: domain.OrderStatusDelivered})
	if s.Orders[0].Status != domain.OrderStatusDelivered {
		t.Fatalf("expected delivered, got %s", s.Orders[0].Status)
	}

	_, err := Apply(s, UpdateOrderStatus{OrderID: "ord_1", Status: domain.OrderStatusPending})
	if !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestUpdateOrderStatus_Cancel(t *testing.T) {
	s := Reduce(placed(t), UpdateOrderStatus{OrderID: "ord_1", Status: domain.OrderStatusCancelled})
	if s.Orders[0].Status != domain.OrderStatusCancelled {
		t.Fatalf("expected cancelled")
	}
	after := Reduce(s, UpdateOrderStatus{OrderID: "ord_1", Status: domain.OrderStatusShipped})
	if after.Orders[0].Status != domain.OrderStatusCancelled {
		t.Fatalf("cancelled is terminal")
	}
}

func TestUpdateOrderStatus_UnknownID(t *testing.T) {
	s := placed(t)
	got, err := Apply(s, UpdateOrderStatus{OrderID: "nope", Status: domain.OrderStatusShipped})
	if !errors.Is(err, ErrOrderNotFound) {
		t.Fatalf("expected ErrOrderNotFound, got %v", err)
	}
	if len(got.Orders) != len(s.Orders) || !reflect.DeepEqual(got.Orders, s.Orders) {
		t.Fatalf("orders changed")
	}
}

func TestProductCRUD(t *testing.T) {
	s := domain.DefaultState()
	n := len(s.Products)

	s = Reduce(s, AddProduct{Product: product("p9", 5)})
	if len(s.Products) != n+1 || s.Products[n].ID != "p9" {
		t.Fatalf("add failed")
	}

	edited := product("p9", 7)
	edited.Name = "Edited"
	s = Reduce(s, EditProduct{Product: edited})
	if s.Products[n] != edited {
		t.Fatalf("edit failed: %+v", s.Products[n])
	}

	if _, err := Apply(s, EditProduct{Product: product("ghost", 1)}); !errors.Is(err, ErrProductNotFound) {
		t.Fatalf("expected ErrProductNotFound, got %v", err)
	}

	s = Reduce(s, DeleteProduct{ProductID: "p9"})
	if len(s.Products) != n {
		t.Fatalf("delete failed")
	}
	if got := Reduce(s, DeleteProduct{ProductID: "ghost"}); !reflect.DeepEqual(got, s) {
		t.Fatalf("deleting absent product changed state")
	}
}

func TestFilters(t *testing.T) {
	s := Reduce(domain.DefaultState(), SetSearchQuery{Query: "pro"})
	s = Reduce(s, SetCategoryFilter{Category: "Books"})
	if s.SearchQuery != "pro" || s.CategoryFilter != "Books" {
		t.Fatalf("filters not set: %q %q", s.SearchQuery, s.CategoryFilter)
	}
	if len(s.Products) != len(domain.SeedProducts()) {
		t.Fatalf("filters touched catalog")
	}
}

func TestApply_NilAction(t *testing.T) {
	s := domain.DefaultState()
	got, err := Apply(s, nil)
	if err != nil || !reflect.DeepEqual(got, s) {
		t.Fatalf("nil action should be a no-op")
	}
}
