// Package view вычисляет производные представления из снимка состояния.
package view

import (
	"strings"

	"zmart/internal/domain"
)

// VisibleProducts фильтр каталога по поиску и категории. Порядок каталога сохраняется.
func VisibleProducts(products []domain.Product, query, category string) []domain.Product {
	out := make([]domain.Product, 0, len(products))
	for _, p := range products {
		if !containsIgnoreCase(p.Name, query) && !containsIgnoreCase(p.Brand, query) {
			continue
		}
		if category != domain.CategoryAll && p.Category != category {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Visible то же для снимка с его сохранёнными фильтрами
func Visible(s domain.AppState) []domain.Product {
	return VisibleProducts(s.Products, s.SearchQuery, s.CategoryFilter)
}

// SellerProducts товары продавца для панели инвентаря
func SellerProducts(products []domain.Product, sellerID string) []domain.Product {
	out := make([]domain.Product, 0)
	for _, p := range products {
		if p.SellerID == sellerID {
			out = append(out, p)
		}
	}
	return out
}

// BuyerOrders история заказов покупателя
func BuyerOrders(orders []domain.Order, buyerID string) []domain.Order {
	out := make([]domain.Order, 0)
	for _, o := range orders {
		if o.BuyerID == buyerID {
			out = append(out, o)
		}
	}
	return out
}

// SellerOrders заказы, в которых есть хотя бы один товар продавца
func SellerOrders(orders []domain.Order, sellerID string) []domain.Order {
	out := make([]domain.Order, 0)
	for _, o := range orders {
		if o.HasSeller(sellerID) {
			out = append(out, o)
		}
	}
	return out
}

// CartTotal сумма price × quantity по корзине
func CartTotal(cart []domain.CartItem) float64 {
	var total float64
	for _, it := range cart {
		total += it.Subtotal()
	}
	return total
}

// CartCount число позиций (не штук) в корзине
func CartCount(cart []domain.CartItem) int {
	return len(cart)
}

// helper: case-insensitive contains
func containsIgnoreCase(s, substr string) bool {
	if substr == "" {
		return true
	}
	return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
}
