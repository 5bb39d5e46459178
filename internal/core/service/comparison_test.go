package service_test

import (
	"encoding/json"
	"testing"

	"github.com/likmaa/ejs-market/internal/core/domain"
	"github.com/likmaa/ejs-market/internal/core/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testComparisonEntry(productID string) domain.ComparisonEntry {
	return domain.ComparisonEntry{
		ProductID: productID,
		SKU:       "SKU-" + productID,
		Name:      "product " + productID,
		PriceHT:   10000,
		VATRate:   0.2,
		Category:  "laptops",
	}
}

func TestComparisonService(t *testing.T) {

	t.Run("AddExistingIsNoop", func(t *testing.T) {
		storage := newMemSnapshot()
		comparison := service.NewComparisonService(storage)
		comparison.Rehydrate(t.Context())

		comparison.Add(testComparisonEntry("1"))
		comparison.Add(testComparisonEntry("1"))

		assert.Len(t, comparison.Entries(), 1)
	})

	t.Run("CanAddMore", func(t *testing.T) {
		storage := newMemSnapshot()
		comparison := service.NewComparisonService(storage)
		comparison.Rehydrate(t.Context())

		for _, id := range []string{"1", "2", "3"} {
			comparison.Add(testComparisonEntry(id))
			assert.True(t, comparison.CanAddMore())
		}

		comparison.Add(testComparisonEntry("4"))
		assert.False(t, comparison.CanAddMore())
	})

	t.Run("EvictsOldestAtCapacity", func(t *testing.T) {
		storage := newMemSnapshot()
		comparison := service.NewComparisonService(storage)
		comparison.Rehydrate(t.Context())

		for _, id := range []string{"1", "2", "3", "4"} {
			comparison.Add(testComparisonEntry(id))
		}

		comparison.Add(testComparisonEntry("5"))

		entries := comparison.Entries()
		require.Len(t, entries, domain.MaxComparisonItems)
		assert.False(t, comparison.Has("1"))
		assert.True(t, comparison.Has("5"))
		assert.Equal(t, "2", entries[0].ProductID)
		assert.Equal(t, "5", entries[3].ProductID)
	})

	t.Run("RehydrateTruncatesOversizedSnapshot", func(t *testing.T) {
		oversized := []domain.ComparisonEntry{
			testComparisonEntry("1"),
			testComparisonEntry("2"),
			testComparisonEntry("3"),
			testComparisonEntry("4"),
			testComparisonEntry("5"),
			testComparisonEntry("6"),
		}
		b, err := json.Marshal(oversized)
		require.NoError(t, err)

		storage := newMemSnapshot()
		storage.put(service.SnapshotKeyComparison, b)

		comparison := service.NewComparisonService(storage)
		comparison.Rehydrate(t.Context())

		entries := comparison.Entries()
		require.Len(t, entries, domain.MaxComparisonItems)
		assert.Equal(t, "1", entries[0].ProductID)
		assert.Equal(t, "4", entries[3].ProductID)
	})

	t.Run("RehydrateTypeCorruptSnapshot", func(t *testing.T) {
		storage := newMemSnapshot()
		storage.put(
			service.SnapshotKeyComparison,
			[]byte(`[{"ProductID":"1"},42]`),
		)

		comparison := service.NewComparisonService(storage)
		comparison.Rehydrate(t.Context())

		assert.Empty(t, comparison.Entries())
		assert.True(t, comparison.CanAddMore())
	})

	t.Run("MirrorsWithoutRehydrate", func(t *testing.T) {
		storage := newMemSnapshot()
		comparison := service.NewComparisonService(storage)

		comparison.Add(testComparisonEntry("1"))

		require.Eventually(t, func() bool {
			return storage.snapshot(service.SnapshotKeyComparison) != nil
		}, waitFor, tick)
	})

	t.Run("Clear", func(t *testing.T) {
		storage := newMemSnapshot()
		comparison := service.NewComparisonService(storage)
		comparison.Rehydrate(t.Context())

		comparison.Add(testComparisonEntry("1"))
		comparison.Clear()

		assert.Empty(t, comparison.Entries())
		assert.True(t, comparison.CanAddMore())
	})
}
