package domain

import "strings"

const (
	DefaultProductName  = "Unnamed Product"
	DefaultProductBrand = "Generic"
	DefaultProductImage = "https://picsum.photos/400/400"
	DefaultRating       = 4.5
)

// ProductDraft черновик товара из формы продавца.
// Пустые поля получают значения по умолчанию только в Build.
type ProductDraft struct {
	Name        *string  `json:"name,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	Category    *string  `json:"category,omitempty"`
	Brand       *string  `json:"brand,omitempty"`
	Image       *string  `json:"image,omitempty"`
	Rating      *float64 `json:"rating,omitempty"`
	Stock       *int64   `json:"stock,omitempty"`
}

// DraftFromProduct заполняет черновик всеми полями существующего товара
func DraftFromProduct(p Product) ProductDraft {
	return ProductDraft{
		Name:        &p.Name,
		Description: &p.Description,
		Price:       &p.Price,
		Category:    &p.Category,
		Brand:       &p.Brand,
		Image:       &p.Image,
		Rating:      &p.Rating,
		Stock:       &p.Stock,
	}
}

// Merge накладывает заданные поля other поверх d
func (d ProductDraft) Merge(other ProductDraft) ProductDraft {
	if other.Name != nil {
		d.Name = other.Name
	}
	if other.Description != nil {
		d.Description = other.Description
	}
	if other.Price != nil {
		d.Price = other.Price
	}
	if other.Category != nil {
		d.Category = other.Category
	}
	if other.Brand != nil {
		d.Brand = other.Brand
	}
	if other.Image != nil {
		d.Image = other.Image
	}
	if other.Rating != nil {
		d.Rating = other.Rating
	}
	if other.Stock != nil {
		d.Stock = other.Stock
	}
	return d
}

// Build собирает товар, применяя значения по умолчанию
func (d ProductDraft) Build(id, sellerID string) Product {
	p := Product{
		ID:       id,
		Name:     DefaultProductName,
		Category: Categories[0],
		SellerID: sellerID,
		Image:    DefaultProductImage,
		Brand:    DefaultProductBrand,
		Rating:   DefaultRating,
	}
	if d.Name != nil && strings.TrimSpace(*d.Name) != "" {
		p.Name = *d.Name
	}
	if d.Description != nil {
		p.Description = *d.Description
	}
	if d.Price != nil && *d.Price > 0 {
		p.Price = *d.Price
	}
	if d.Category != nil && *d.Category != "" {
		p.Category = *d.Category
	}
	if d.Brand != nil && *d.Brand != "" {
		p.Brand = *d.Brand
	}
	if d.Image != nil && *d.Image != "" {
		p.Image = *d.Image
	}
	if d.Rating != nil {
		p.Rating = *d.Rating
	}
	if d.Stock != nil && *d.Stock > 0 {
		p.Stock = *d.Stock
	}
	return p
}
