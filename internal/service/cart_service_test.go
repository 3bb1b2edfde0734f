package service

import (
	"context"
	"errors"
	"testing"

	"zmart/internal/domain"
	"zmart/internal/state"
)

func TestCart_AddChangeRemove(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	v, err := svc.cart.Add(ctx, "p1")
	if err != nil || v.Count != 1 || v.Total != 299 {
		t.Fatalf("add: %v %+v", err, v)
	}
	v, _ = svc.cart.Add(ctx, "p1")
	if v.Count != 1 || v.Items[0].Quantity != 2 {
		t.Fatalf("second add: %+v", v)
	}
	v, err = svc.cart.ChangeQuantity(ctx, "p1", -1000)
	if err != nil || v.Items[0].Quantity != 1 {
		t.Fatalf("floor: %v %+v", err, v)
	}
	if _, err := svc.cart.ChangeQuantity(ctx, "p2", 1); !errors.Is(err, state.ErrNotInCart) {
		t.Fatalf("expected ErrNotInCart, got %v", err)
	}

	// absent item is fine
	if _, err := svc.cart.Remove(ctx, "p2"); err != nil {
		t.Fatalf("remove absent: %v", err)
	}
	v, err = svc.cart.Remove(ctx, "p1")
	if err != nil || v.Count != 0 || v.Items == nil {
		t.Fatalf("remove: %v %+v", err, v)
	}
}

func TestCart_AddUnknownProduct(t *testing.T) {
	svc := setup(t)
	if _, err := svc.cart.Add(context.Background(), "ghost"); !errors.Is(err, state.ErrProductNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := svc.cart.Add(context.Background(), ""); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input, got %v", err)
	}
}

func TestSession_LoginSignupLogout(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)

	u, err := svc.sessions.Login(ctx, "jane@example.com", "", domain.RoleBuyer)
	if err != nil || u.Name != "jane" || u.ID == "" {
		t.Fatalf("login: %v %+v", err, u)
	}
	cur, err := svc.sessions.Current()
	if err != nil || cur.ID != u.ID {
		t.Fatalf("current: %v", err)
	}

	u, err = svc.sessions.Signup(ctx, "new@example.com", "", domain.RoleSeller)
	if err != nil || u.Name != "New User" || u.Role != domain.RoleSeller {
		t.Fatalf("signup: %v %+v", err, u)
	}

	if err := svc.sessions.Logout(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.sessions.Current(); !errors.Is(err, state.ErrNoUser) {
		t.Fatalf("expected ErrNoUser, got %v", err)
	}
}

func TestSession_LoginAsKeepsClientID(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)
	u, err := svc.sessions.LoginAs(ctx, " seller1 ", "s1@shop.test", "", domain.RoleSeller)
	if err != nil || u.ID != "seller1" || u.Name != "s1" {
		t.Fatalf("login as: %v %+v", err, u)
	}
	if cur, _ := svc.sessions.Current(); cur == nil || cur.ID != "seller1" {
		t.Fatalf("current: %+v", cur)
	}
	u, err = svc.sessions.LoginAs(ctx, "", "s2@shop.test", "", domain.RoleSeller)
	if err != nil || u.ID == "" {
		t.Fatalf("blank id must be generated: %v %+v", err, u)
	}
}

func TestSession_InvalidInput(t *testing.T) {
	ctx := context.Background()
	svc := setup(t)
	if _, err := svc.sessions.Login(ctx, " ", "x", domain.RoleBuyer); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for empty email, got %v", err)
	}
	if _, err := svc.sessions.Login(ctx, "a@b.c", "x", domain.Role("admin")); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected invalid input for role, got %v", err)
	}
}
