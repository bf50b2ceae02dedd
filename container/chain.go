package container

import "sync"

// Chain is an ordered, copy-on-write list: readers iterate over a snapshot
// while writers replace the backing slice.
type Chain[T comparable] struct {
	mutex sync.RWMutex
	items []T
}

func NewChain[T comparable](items ...T) *Chain[T] {
	chain := &Chain[T]{
		items: make([]T, len(items)),
	}
	copy(chain.items, items)
	return chain
}

func (c *Chain[T]) Use(item T) {
	c.mutex.Lock()
	items := make([]T, len(c.items), len(c.items)+1)
	copy(items, c.items)
	c.items = append(items, item)
	c.mutex.Unlock()
}

// Remove drops the first element equal to item.
func (c *Chain[T]) Remove(item T) (removed bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	for index := 0; index < len(c.items); index++ {
		if c.items[index] != item {
			continue
		}

		items := make([]T, 0, len(c.items)-1)
		items = append(items, c.items[:index]...)
		c.items = append(items, c.items[index+1:]...)
		return true
	}
	return false
}

func (c *Chain[T]) Len() int {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return len(c.items)
}

// Range walks a snapshot in order and stops once handler reports handled.
func (c *Chain[T]) Range(handler func(index int, item T) (handled bool)) {
	c.mutex.RLock()
	items := c.items
	c.mutex.RUnlock()

	for index := 0; index < len(items); index++ {
		if handler(index, items[index]) {
			return
		}
	}
}
