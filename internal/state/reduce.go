package state

import (
	"math"

	"zmart/internal/domain"
)

// Reduce применяет действие к снимку. Недопустимое действие возвращает снимок без изменений.
func Reduce(s domain.AppState, a Action) domain.AppState {
	next, _ := Apply(s, a)
	return next
}

// Apply как Reduce, но сообщает причину, если снимок не изменился.
// При ненулевой ошибке возвращается исходный s.
func Apply(s domain.AppState, a Action) (domain.AppState, error) {
	if a == nil {
		return s, nil
	}
	next, err := a.apply(s)
	if err != nil {
		return s, err
	}
	return next, nil
}

func (a Login) apply(s domain.AppState) (domain.AppState, error) {
	u := a.User
	s.User = &u
	return s, nil
}

func (Logout) apply(s domain.AppState) (domain.AppState, error) {
	s.User = nil
	return s, nil
}

func (a AddToCart) apply(s domain.AppState) (domain.AppState, error) {
	cart := make([]domain.CartItem, len(s.Cart), len(s.Cart)+1)
	copy(cart, s.Cart)
	if i := cartIndex(cart, a.Product.ID); i >= 0 {
		cart[i].Quantity++
	} else {
		cart = append(cart, domain.CartItem{Product: a.Product, Quantity: 1})
	}
	s.Cart = cart
	return s, nil
}

func (a RemoveFromCart) apply(s domain.AppState) (domain.AppState, error) {
	if cartIndex(s.Cart, a.ProductID) < 0 {
		return s, ErrNotInCart
	}
	cart := make([]domain.CartItem, 0, len(s.Cart))
	for _, it := range s.Cart {
		if it.ID != a.ProductID {
			cart = append(cart, it)
		}
	}
	s.Cart = cart
	return s, nil
}

func (a UpdateCartQuantity) apply(s domain.AppState) (domain.AppState, error) {
	i := cartIndex(s.Cart, a.ProductID)
	if i < 0 {
		return s, ErrNotInCart
	}
	cart := make([]domain.CartItem, len(s.Cart))
	copy(cart, s.Cart)
	cart[i].Quantity = max(1, addSaturating(cart[i].Quantity, a.Delta))
	s.Cart = cart
	return s, nil
}

func (a PlaceOrder) apply(s domain.AppState) (domain.AppState, error) {
	if len(s.Cart) == 0 {
		return s, ErrCartEmpty
	}
	if s.User == nil {
		return s, ErrNoUser
	}
	// value copy: later cart edits must not reach the order
	items := make([]domain.CartItem, len(s.Cart))
	copy(items, s.Cart)
	var total float64
	for _, it := range items {
		total += it.Subtotal()
	}
	o := domain.Order{
		ID:      a.OrderID,
		BuyerID: s.User.ID,
		Items:   items,
		Total:   total,
		Status:  domain.OrderStatusPending,
		Date:    a.Date,
	}
	orders := make([]domain.Order, len(s.Orders), len(s.Orders)+1)
	copy(orders, s.Orders)
	s.Orders = append(orders, o)
	s.Cart = []domain.CartItem{}
	return s, nil
}

func (a UpdateOrderStatus) apply(s domain.AppState) (domain.AppState, error) {
	i := -1
	for j, o := range s.Orders {
		if o.ID == a.OrderID {
			i = j
			break
		}
	}
	if i < 0 {
		return s, ErrOrderNotFound
	}
	if !s.Orders[i].Status.CanTransitionTo(a.Status) {
		return s, ErrInvalidTransition
	}
	orders := make([]domain.Order, len(s.Orders))
	copy(orders, s.Orders)
	orders[i].Status = a.Status
	s.Orders = orders
	return s, nil
}

func (a AddProduct) apply(s domain.AppState) (domain.AppState, error) {
	products := make([]domain.Product, len(s.Products), len(s.Products)+1)
	copy(products, s.Products)
	s.Products = append(products, a.Product)
	return s, nil
}

func (a EditProduct) apply(s domain.AppState) (domain.AppState, error) {
	i := productIndex(s.Products, a.Product.ID)
	if i < 0 {
		return s, ErrProductNotFound
	}
	products := make([]domain.Product, len(s.Products))
	copy(products, s.Products)
	products[i] = a.Product
	s.Products = products
	return s, nil
}

func (a DeleteProduct) apply(s domain.AppState) (domain.AppState, error) {
	if productIndex(s.Products, a.ProductID) < 0 {
		return s, ErrProductNotFound
	}
	products := make([]domain.Product, 0, len(s.Products))
	for _, p := range s.Products {
		if p.ID != a.ProductID {
			products = append(products, p)
		}
	}
	s.Products = products
	return s, nil
}

func (a SetSearchQuery) apply(s domain.AppState) (domain.AppState, error) {
	s.SearchQuery = a.Query
	return s, nil
}

func (a SetCategoryFilter) apply(s domain.AppState) (domain.AppState, error) {
	s.CategoryFilter = a.Category
	return s, nil
}

func cartIndex(cart []domain.CartItem, productID string) int {
	for i, it := range cart {
		if it.ID == productID {
			return i
		}
	}
	return -1
}

func productIndex(products []domain.Product, id string) int {
	for i, p := range products {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// addSaturating сумма без переполнения int64
func addSaturating(a, b int64) int64 {
	switch {
	case b > 0 && a > math.MaxInt64-b:
		return math.MaxInt64
	case b < 0 && a < math.MinInt64-b:
		return math.MinInt64
	}
	return a + b
}
