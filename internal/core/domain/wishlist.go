package domain

type WishlistEntry struct {
	ProductID string
	SKU       string
	Name      string
	PriceHT   int64
	VATRate   float64
	Image     string
	Brand     string
	AddedAt   int64 // epoch milliseconds
}
