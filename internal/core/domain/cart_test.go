package domain_test

import (
	"testing"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestCalcCartTotals(t *testing.T) {

	t.Run("Empty", func(t *testing.T) {
		totals := domain.CalcCartTotals(nil)
		assert.Equal(t, domain.CartTotals{}, totals)
	})

	t.Run("SingleLine", func(t *testing.T) {
		lines := []domain.CartLine{
			{ProductID: "1", PriceHT: 10000, VATRate: 0.2, Quantity: 2},
		}
		totals := domain.CalcCartTotals(lines)

		assert.Equal(t, 2, totals.ItemsCount)
		assert.Equal(t, int64(20000), totals.TotalHT)
		assert.Equal(t, int64(4000), totals.TotalVAT)
		assert.Equal(t, int64(24000), totals.TotalTTC)
	})

	t.Run("MixedRates", func(t *testing.T) {
		lines := []domain.CartLine{
			{ProductID: "1", PriceHT: 10000, VATRate: 0.2, Quantity: 2},
			{ProductID: "2", PriceHT: 333, VATRate: 0.055, Quantity: 3},
		}
		totals := domain.CalcCartTotals(lines)

		// line two VAT: round(333 * 0.055 * 3) = round(54.945) = 55
		assert.Equal(t, 5, totals.ItemsCount)
		assert.Equal(t, int64(20999), totals.TotalHT)
		assert.Equal(t, int64(4055), totals.TotalVAT)
		assert.Equal(t, int64(25054), totals.TotalTTC)
	})

	t.Run("PerLineRounding", func(t *testing.T) {
		// VAT rounds per line, not on the aggregate.
		lines := []domain.CartLine{
			{ProductID: "1", PriceHT: 103, VATRate: 0.2, Quantity: 1},
			{ProductID: "2", PriceHT: 103, VATRate: 0.2, Quantity: 1},
		}
		totals := domain.CalcCartTotals(lines)

		// each line: round(20.6) = 21; aggregate rounding would give 41
		assert.Equal(t, int64(42), totals.TotalVAT)
	})
}
