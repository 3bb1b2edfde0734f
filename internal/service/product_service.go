package service

import (
	"context"
	"strings"

	"zmart/internal/describe"
	"zmart/internal/domain"
	"zmart/internal/state"
	"zmart/internal/view"
)

// ProductService каталог, фильтры и инвентарь продавца
type ProductService struct {
	store *Store
	gen   describe.Generator
	newID func() string
}

func NewProductService(store *Store, gen describe.Generator) *ProductService {
	if gen == nil {
		gen = describe.Static("")
	}
	return &ProductService{store: store, gen: gen, newID: func() string { return newID("p") }}
}

// Filters изменения фильтров; nil поле не трогается
type Filters struct {
	SearchQuery    *string
	CategoryFilter *string
}

// SetFilters сохраняет поиск и категорию в снимке.
// Совпадающее с текущим значение не диспатчится: нет записи и события.
func (s *ProductService) SetFilters(ctx context.Context, f Filters) (domain.AppState, error) {
	st := s.store.Snapshot()
	var err error
	if f.SearchQuery != nil && *f.SearchQuery != st.SearchQuery {
		if st, err = s.store.Dispatch(ctx, state.SetSearchQuery{Query: *f.SearchQuery}); err != nil {
			return st, err
		}
	}
	if f.CategoryFilter != nil && *f.CategoryFilter != st.CategoryFilter {
		if st, err = s.store.Dispatch(ctx, state.SetCategoryFilter{Category: *f.CategoryFilter}); err != nil {
			return st, err
		}
	}
	return st, nil
}

// Visible товары с учётом сохранённых фильтров
func (s *ProductService) Visible() []domain.Product {
	return view.Visible(s.store.Snapshot())
}

func (s *ProductService) GetByID(id string) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	for _, p := range s.store.Snapshot().Products {
		if p.ID == id {
			cp := p
			return &cp, nil
		}
	}
	return nil, state.ErrProductNotFound
}

// Mine товары текущего продавца
func (s *ProductService) Mine() ([]domain.Product, error) {
	st := s.store.Snapshot()
	u, err := requireSeller(st)
	if err != nil {
		return nil, err
	}
	return view.SellerProducts(st.Products, u.ID), nil
}

// Create собирает товар из черновика от имени текущего продавца
func (s *ProductService) Create(ctx context.Context, d domain.ProductDraft) (*domain.Product, error) {
	var created domain.Product
	_, err := s.store.Do(ctx, func(cur domain.AppState) (state.Action, error) {
		u, err := requireSeller(cur)
		if err != nil {
			return nil, err
		}
		created = d.Build(s.newID(), u.ID)
		return state.AddProduct{Product: created}, nil
	})
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// Update накладывает черновик на существующий товар продавца
func (s *ProductService) Update(ctx context.Context, id string, d domain.ProductDraft) (*domain.Product, error) {
	if id == "" {
		return nil, ErrInvalidInput
	}
	var updated domain.Product
	_, err := s.store.Do(ctx, func(cur domain.AppState) (state.Action, error) {
		p, err := ownedProduct(cur, id)
		if err != nil {
			return nil, err
		}
		updated = domain.DraftFromProduct(p).Merge(d).Build(p.ID, p.SellerID)
		return state.EditProduct{Product: updated}, nil
	})
	if err != nil {
		return nil, err
	}
	return &updated, nil
}

func (s *ProductService) Delete(ctx context.Context, id string) error {
	if id == "" {
		return ErrInvalidInput
	}
	_, err := s.store.Do(ctx, func(cur domain.AppState) (state.Action, error) {
		if _, err := ownedProduct(cur, id); err != nil {
			return nil, err
		}
		return state.DeleteProduct{ProductID: id}, nil
	})
	return err
}

// Describe текст описания от внешнего генератора. Сбой генератора
// превращается в текст-заглушку, ошибка только для пустых полей.
func (s *ProductService) Describe(ctx context.Context, name, category string) (string, error) {
	if strings.TrimSpace(name) == "" || strings.TrimSpace(category) == "" {
		return "", ErrInvalidInput
	}
	return s.gen.Describe(ctx, name, category), nil
}

func ownedProduct(st domain.AppState, id string) (domain.Product, error) {
	u, err := requireSeller(st)
	if err != nil {
		return domain.Product{}, err
	}
	for _, p := range st.Products {
		if p.ID != id {
			continue
		}
		if p.SellerID != u.ID {
			return domain.Product{}, ErrForbidden
		}
		return p, nil
	}
	return domain.Product{}, state.ErrProductNotFound
}
