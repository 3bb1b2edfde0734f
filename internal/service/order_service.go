package service

import (
	"context"
	"time"

	"zmart/internal/domain"
	"zmart/internal/state"
	"zmart/internal/view"
)

// OrderService реализует логику заказов: оформление, история, смена статуса
type OrderService struct {
	store *Store
	newID func() string
}

func NewOrderService(store *Store) *OrderService {
	return &OrderService{store: store, newID: func() string { return newID("ord_") }}
}

// PlaceOrder оформляет корзину. Пустая корзина и отсутствие пользователя
// возвращают state.ErrCartEmpty / state.ErrNoUser без изменения снимка.
func (s *OrderService) PlaceOrder(ctx context.Context) (*domain.Order, error) {
	// ISO 8601 with millisecond precision, UTC
	at := s.store.now().UTC().Truncate(time.Millisecond)
	st, err := s.store.Dispatch(ctx, state.PlaceOrder{OrderID: s.newID(), Date: at})
	if err != nil {
		return nil, err
	}
	o := st.Orders[len(st.Orders)-1]
	return &o, nil
}

// History заказы текущего покупателя
func (s *OrderService) History() ([]domain.Order, error) {
	st := s.store.Snapshot()
	if st.User == nil {
		return nil, state.ErrNoUser
	}
	return view.BuyerOrders(st.Orders, st.User.ID), nil
}

// SellerOrders заказы с товарами текущего продавца
func (s *OrderService) SellerOrders() ([]domain.Order, error) {
	st := s.store.Snapshot()
	u, err := requireSeller(st)
	if err != nil {
		return nil, err
	}
	return view.SellerOrders(st.Orders, u.ID), nil
}

func (s *OrderService) GetOrder(id string) (*domain.Order, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	for _, o := range s.store.Snapshot().Orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, state.ErrOrderNotFound
}

// UpdateStatus продавец двигает статус заказа со своими товарами.
// Допустимы только переходы вперёд (см. domain.OrderStatus.CanTransitionTo).
func (s *OrderService) UpdateStatus(ctx context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	if id == "" || !status.Valid() {
		return nil, ErrInvalidInput
	}
	st, err := s.store.Do(ctx, func(cur domain.AppState) (state.Action, error) {
		u, err := requireSeller(cur)
		if err != nil {
			return nil, err
		}
		for _, o := range cur.Orders {
			if o.ID != id {
				continue
			}
			if !o.HasSeller(u.ID) {
				return nil, ErrForbidden
			}
			return state.UpdateOrderStatus{OrderID: id, Status: status}, nil
		}
		return nil, state.ErrOrderNotFound
	})
	if err != nil {
		return nil, err
	}
	for _, o := range st.Orders {
		if o.ID == id {
			cp := o
			return &cp, nil
		}
	}
	return nil, state.ErrOrderNotFound
}
