package memory

import "slices"

// table is an insertion-ordered map. It is not safe for concurrent use; the
// owning DB serializes access.
type table[K comparable, T any] struct {
	items map[K]T
	order []K
}

func newTable[K comparable, T any]() *table[K, T] {
	return &table[K, T]{
		items: make(map[K]T),
		order: make([]K, 0),
	}
}

// set stores item under id. An existing id keeps its position.
func (t *table[K, T]) set(id K, item T) {
	if _, exists := t.items[id]; !exists {
		t.order = append(t.order, id)
	}
	t.items[id] = item
}

func (t *table[K, T]) get(id K) (T, bool) {
	item, ok := t.items[id]
	return item, ok
}

func (t *table[K, T]) delete(id K) bool {
	if _, exists := t.items[id]; !exists {
		return false
	}
	delete(t.items, id)
	if i := slices.Index(t.order, id); i >= 0 {
		t.order = slices.Delete(t.order, i, i+1)
	}
	return true
}

// filter returns matching items in insertion order.
func (t *table[K, T]) filter(predicate func(item T) bool) []T {
	result := make([]T, 0)
	for _, id := range t.order {
		if item := t.items[id]; predicate(item) {
			result = append(result, item)
		}
	}
	return result
}

// deleteWhere removes matching items and reports how many were removed.
func (t *table[K, T]) deleteWhere(predicate func(item T) bool) int64 {
	var removed int64
	kept := t.order[:0]
	for _, id := range t.order {
		if predicate(t.items[id]) {
			delete(t.items, id)
			removed++
			continue
		}
		kept = append(kept, id)
	}
	t.order = kept
	return removed
}

func (t *table[K, T]) count() int {
	return len(t.items)
}
