package domain

// MaxComparisonItems bounds the comparison container.
// Inserting beyond the bound evicts the oldest entry first.
const MaxComparisonItems = 4

type ComparisonEntry struct {
	ProductID  string
	SKU        string
	Name       string
	PriceHT    int64
	VATRate    float64
	Image      string
	Brand      string
	Category   string
	Attributes map[string]string
}
