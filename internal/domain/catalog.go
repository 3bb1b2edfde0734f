package domain

// CategoryAll значение фильтра категорий, пропускающее все товары
const CategoryAll = "All"

// Categories список категорий витрины
var Categories = []string{
	"Electronics",
	"Fashion",
	"Home & Kitchen",
	"Beauty & Health",
	"Sports & Outdoors",
	"Books",
	"Toys",
}

// SeedProducts возвращает стартовый каталог. Каждый вызов отдаёт новый срез.
func SeedProducts() []Product {
	return []Product{
		{
			ID:          "p1",
			Name:        "Pro Wireless Headphones",
			Description: "High-fidelity audio with active noise cancellation.",
			Price:       299,
			Category:    "Electronics",
			SellerID:    "seller1",
			Image:       "https://picsum.photos/seed/headphones/400/400",
			Brand:       "SonicStream",
			Rating:      4.8,
			Stock:       15,
		},
		{
			ID:          "p2",
			Name:        "Smart Watch Series 5",
			Description: "Track your health and stay connected on the go.",
			Price:       199,
			Category:    "Electronics",
			SellerID:    "seller1",
			Image:       "https://picsum.photos/seed/watch/400/400",
			Brand:       "TechWear",
			Rating:      4.5,
			Stock:       22,
		},
		{
			ID:          "p3",
			Name:        "Ergonomic Office Chair",
			Description: "Comfortable seating for long working hours.",
			Price:       350,
			Category:    "Home & Kitchen",
			SellerID:    "seller2",
			Image:       "https://picsum.photos/seed/chair/400/400",
			Brand:       "ComfySit",
			Rating:      4.2,
			Stock:       8,
		},
		{
			ID:          "p4",
			Name:        "Premium Cotton T-Shirt",
			Description: "Breathable and stylish cotton shirt for all seasons.",
			Price:       25,
			Category:    "Fashion",
			SellerID:    "seller2",
			Image:       "https://picsum.photos/seed/shirt/400/400",
			Brand:       "Trendset",
			Rating:      4.0,
			Stock:       100,
		},
	}
}

// DefaultState снимок для первого запуска или нечитаемого сохранения
func DefaultState() AppState {
	return AppState{
		User:           nil,
		Products:       SeedProducts(),
		Cart:           []CartItem{},
		Orders:         []Order{},
		SearchQuery:    "",
		CategoryFilter: CategoryAll,
	}
}
