package archgrid

import "fmt"

// Cache is a small keyed registry that hands out a stable, dense integer
// index for each distinct string key it sees. It backs the component/tag
// registry: registering a type assigns it the next free index, which
// doubles as its bit position in an archetype signature.
type Cache[T any] interface {
	GetIndex(string) (int, bool)
	GetItem(int) *T
	GetItem32(uint32) *T
	Register(string, T) (int, error)
	Clear()
}

// SimpleCache is the default Cache implementation: a slice of items plus a
// map from key to index.
type SimpleCache[T any] struct {
	items       []T
	itemIndices map[string]int
	maxCapacity int
}

var _ Cache[any] = &SimpleCache[any]{}

// GetIndex looks up the index previously assigned to key.
func (c *SimpleCache[T]) GetIndex(key string) (int, bool) {
	index, ok := c.itemIndices[key]
	return index, ok
}

// GetItem returns a pointer into the backing slice at index, so callers
// can patch fields in place after Register (used to stamp a
// ComponentType's own id once its index is known).
func (c *SimpleCache[T]) GetItem(index int) *T {
	return &c.items[index]
}

// GetItem32 is GetItem with a uint32 index, matching the width of an
// archetype bit position.
func (c *SimpleCache[T]) GetItem32(index uint32) *T {
	return &c.items[index]
}

// Register assigns item the next free index under key, failing once the
// cache reaches maxCapacity.
func (c *SimpleCache[T]) Register(key string, item T) (int, error) {
	if len(c.itemIndices) >= c.maxCapacity {
		return -1, fmt.Errorf("cache at maximum capacity (%d)", c.maxCapacity)
	}
	idx := len(c.items)
	c.itemIndices[key] = idx
	c.items = append(c.items, item)
	return idx, nil
}

// Clear resets the cache to empty.
func (c *SimpleCache[T]) Clear() {
	c.items = nil
	c.itemIndices = make(map[string]int)
}
