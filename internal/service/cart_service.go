package service

import (
	"context"
	"errors"

	"zmart/internal/domain"
	"zmart/internal/state"
	"zmart/internal/view"
)

// CartView корзина с итогами для представления
type CartView struct {
	Items []domain.CartItem `json:"items"`
	Total float64           `json:"total"`
	Count int               `json:"count"`
}

// CartService корзина работает и без входа, оформление требует пользователя
type CartService struct {
	store *Store
}

func NewCartService(store *Store) *CartService {
	return &CartService{store: store}
}

func (s *CartService) View() CartView {
	return cartView(s.store.Snapshot())
}

// Add кладёт товар каталога в корзину по id
func (s *CartService) Add(ctx context.Context, productID string) (CartView, error) {
	if productID == "" {
		return CartView{}, ErrInvalidInput
	}
	st, err := s.store.Do(ctx, func(cur domain.AppState) (state.Action, error) {
		for _, p := range cur.Products {
			if p.ID == productID {
				return state.AddToCart{Product: p}, nil
			}
		}
		return nil, state.ErrProductNotFound
	})
	if err != nil {
		return CartView{}, err
	}
	return cartView(st), nil
}

// Remove отсутствующая позиция не ошибка
func (s *CartService) Remove(ctx context.Context, productID string) (CartView, error) {
	st, err := s.store.Dispatch(ctx, state.RemoveFromCart{ProductID: productID})
	if err != nil && !errors.Is(err, state.ErrNotInCart) {
		return CartView{}, err
	}
	return cartView(st), nil
}

// ChangeQuantity количество не опускается ниже 1
func (s *CartService) ChangeQuantity(ctx context.Context, productID string, delta int64) (CartView, error) {
	st, err := s.store.Dispatch(ctx, state.UpdateCartQuantity{ProductID: productID, Delta: delta})
	if err != nil {
		return CartView{}, err
	}
	return cartView(st), nil
}

func cartView(st domain.AppState) CartView {
	return CartView{Items: st.Cart, Total: view.CartTotal(st.Cart), Count: view.CartCount(st.Cart)}
}
