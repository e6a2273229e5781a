package commands

import (
	"slices"
	"strings"

	"warehouse/internal/core/domain/model/kernel"
)

// mergeStockItems sums the quantities of repeated products so that each
// product row is decremented once. The first occurrence of a product keeps
// its position.
func mergeStockItems(items []StockItem) []StockItem {
	merged := make([]StockItem, 0, len(items))
	index := make(map[kernel.UUID]int, len(items))
	for _, item := range items {
		if i, ok := index[item.ProductID]; ok {
			merged[i].Quantity += item.Quantity
			continue
		}
		index[item.ProductID] = len(merged)
		merged = append(merged, item)
	}
	return merged
}

// inLockOrder returns the items sorted by product id. Transactions that
// decrement several products take their row locks in this order, so two
// batches over the same products wait on each other instead of deadlocking.
func inLockOrder(items []StockItem) []StockItem {
	sorted := slices.Clone(items)
	slices.SortFunc(sorted, func(a, b StockItem) int {
		return strings.Compare(a.ProductID.String(), b.ProductID.String())
	})
	return sorted
}
