package domain

import "math"

type (
	CartLine struct {
		ProductID string
		SKU       string
		Name      string
		PriceHT   int64
		VATRate   float64
		Image     string
		Brand     string
		Quantity  int
	}

	CartTotals struct {
		ItemsCount int
		TotalHT    int64
		TotalVAT   int64
		TotalTTC   int64
	}
)

// CalcCartTotals recomputes the derived cart totals from scratch.
// VAT is rounded per line to the nearest minor unit.
func CalcCartTotals(lines []CartLine) (t CartTotals) {
	for _, l := range lines {
		t.ItemsCount += l.Quantity
		t.TotalHT += l.PriceHT * int64(l.Quantity)
		t.TotalVAT += LineVAT(l.PriceHT, l.VATRate, l.Quantity)
	}
	t.TotalTTC = t.TotalHT + t.TotalVAT
	return t
}

func LineVAT(priceHT int64, vatRate float64, quantity int) int64 {
	return int64(math.Round(float64(priceHT) * vatRate * float64(quantity)))
}
