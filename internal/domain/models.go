package domain

import "time"

// Role роль пользователя витрины
type Role string

const (
	RoleBuyer  Role = "buyer"
	RoleSeller Role = "seller"
)

// Valid сообщает, известна ли роль
func (r Role) Valid() bool {
	return r == RoleBuyer || r == RoleSeller
}

// User локально созданная учётная запись. Пароля нет, это демо.
type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   Role   `json:"role"`
	Avatar string `json:"avatar,omitempty"`
}

// Product товар каталога
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Category    string  `json:"category"`
	SellerID    string  `json:"sellerId"`
	Image       string  `json:"image"`
	Brand       string  `json:"brand"`
	Rating      float64 `json:"rating"`
	Stock       int64   `json:"stock"`
}

// CartItem товар в корзине вместе с количеством (всегда >= 1)
type CartItem struct {
	Product
	Quantity int64 `json:"quantity"`
}

// Subtotal price × quantity
func (it CartItem) Subtotal() float64 {
	return it.Price * float64(it.Quantity)
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "Pending"
	OrderStatusShipped   OrderStatus = "Shipped"
	OrderStatusDelivered OrderStatus = "Delivered"
	OrderStatusCancelled OrderStatus = "Cancelled"
)

// Valid сообщает, известен ли статус
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// CanTransitionTo разрешает только движение вперёд:
// Pending -> Shipped -> Delivered, отмена из Pending или Shipped.
func (s OrderStatus) CanTransitionTo(next OrderStatus) bool {
	switch s {
	case OrderStatusPending:
		return next == OrderStatusShipped || next == OrderStatusDelivered || next == OrderStatusCancelled
	case OrderStatusShipped:
		return next == OrderStatusDelivered || next == OrderStatusCancelled
	default:
		return false
	}
}

// Order заказ. Items и Total фиксируются в момент оформления.
type Order struct {
	ID      string      `json:"id"`
	BuyerID string      `json:"buyerId"`
	Items   []CartItem  `json:"items"`
	Total   float64     `json:"total"`
	Status  OrderStatus `json:"status"`
	Date    time.Time   `json:"date"`
}

// HasSeller проверяет, есть ли в заказе товар продавца
func (o Order) HasSeller(sellerID string) bool {
	for _, it := range o.Items {
		if it.SellerID == sellerID {
			return true
		}
	}
	return false
}

// AppState полный снимок состояния приложения
type AppState struct {
	User           *User      `json:"user"`
	Products       []Product  `json:"products"`
	Cart           []CartItem `json:"cart"`
	Orders         []Order    `json:"orders"`
	SearchQuery    string     `json:"searchQuery"`
	CategoryFilter string     `json:"categoryFilter"`
}

// Normalize заменяет nil-коллекции пустыми, чтобы JSON всегда содержал массивы
func (s AppState) Normalize() AppState {
	if s.Products == nil {
		s.Products = []Product{}
	}
	if s.Cart == nil {
		s.Cart = []CartItem{}
	}
	if s.Orders == nil {
		s.Orders = []Order{}
	}
	for i, o := range s.Orders {
		if o.Items != nil {
			continue
		}
		orders := make([]Order, len(s.Orders))
		copy(orders, s.Orders)
		for j := i; j < len(orders); j++ {
			if orders[j].Items == nil {
				orders[j].Items = []CartItem{}
			}
		}
		s.Orders = orders
		break
	}
	return s
}
