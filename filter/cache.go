package filter

import (
	"container/list"
	"sync"
)

// programCache is a thread-safe LRU of compiled filters keyed by expression.
type programCache struct {
	capacity int

	mu    sync.Mutex
	order *list.List
	index map[string]*list.Element
}

type cached struct {
	expression string
	filter     *Filter
}

func newProgramCache(capacity int) *programCache {
	return &programCache{
		capacity: capacity,
		order:    list.New(),
		index:    make(map[string]*list.Element, capacity),
	}
}

// get returns the cached filter and marks it most recently used.
func (c *programCache) get(expression string) (*Filter, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[expression]
	if !ok {
		return nil, false
	}
	c.order.MoveToFront(el)
	return el.Value.(*cached).filter, true
}

func (c *programCache) put(expression string, f *Filter) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if el, ok := c.index[expression]; ok {
		el.Value.(*cached).filter = f
		c.order.MoveToFront(el)
		return
	}

	c.index[expression] = c.order.PushFront(&cached{expression: expression, filter: f})

	for c.order.Len() > c.capacity {
		oldest := c.order.Back()
		c.order.Remove(oldest)
		delete(c.index, oldest.Value.(*cached).expression)
	}
}

func (c *programCache) clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.order.Init()
	clear(c.index)
}

func (c *programCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.order.Len()
}
