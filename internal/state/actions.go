// Package state содержит чистые переходы состояния витрины.
// Функции пакета не делают ввода-вывода и не держат глобального состояния.
package state

import (
	"errors"
	"time"

	"zmart/internal/domain"
)

// Причины, по которым действие не изменило снимок. Reduce их отбрасывает.
var (
	ErrNoUser            = errors.New("no user logged in")
	ErrCartEmpty         = errors.New("cart is empty")
	ErrNotInCart         = errors.New("product not in cart")
	ErrProductNotFound   = errors.New("product not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrInvalidTransition = errors.New("invalid order status transition")
)

// Action намерение представления. Набор действий закрыт этим пакетом.
type Action interface {
	// Name короткое имя для логов и метрик
	Name() string
	apply(s domain.AppState) (domain.AppState, error)
}

type Login struct{ User domain.User }

type Logout struct{}

type AddToCart struct{ Product domain.Product }

type RemoveFromCart struct{ ProductID string }

type UpdateCartQuantity struct {
	ProductID string
	Delta     int64
}

// PlaceOrder оформляет заказ из корзины. ID и Date задаёт вызывающий,
// чтобы переход оставался детерминированным.
type PlaceOrder struct {
	OrderID string
	Date    time.Time
}

type UpdateOrderStatus struct {
	OrderID string
	Status  domain.OrderStatus
}

type AddProduct struct{ Product domain.Product }

type EditProduct struct{ Product domain.Product }

type DeleteProduct struct{ ProductID string }

type SetSearchQuery struct{ Query string }

type SetCategoryFilter struct{ Category string }

func (Login) Name() string              { return "login" }
func (Logout) Name() string             { return "logout" }
func (AddToCart) Name() string          { return "add_to_cart" }
func (RemoveFromCart) Name() string     { return "remove_from_cart" }
func (UpdateCartQuantity) Name() string { return "update_cart_quantity" }
func (PlaceOrder) Name() string         { return "place_order" }
func (UpdateOrderStatus) Name() string  { return "update_order_status" }
func (AddProduct) Name() string         { return "add_product" }
func (EditProduct) Name() string        { return "edit_product" }
func (DeleteProduct) Name() string      { return "delete_product" }
func (SetSearchQuery) Name() string     { return "set_search_query" }
func (SetCategoryFilter) Name() string  { return "set_category_filter" }
