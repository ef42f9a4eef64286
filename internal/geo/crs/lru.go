package crs

import (
	"container/list"
	"sync"
)

// cacheKey - ключ кэша конвертаций: пара систем, зона локальной рамки
// (0, если локальная система не участвует) и координаты, округлённые
// до ~1 см
type cacheKey struct {
	src, dst System
	zone     int
	south    bool
	rx, ry   int64
}

type cacheEntry struct {
	key     cacheKey
	x, y    float64
	element *list.Element
}

// lruCache - ограниченный LRU-кэш результатов преобразований,
// безопасный для конкурентного чтения и вставки. Ограниченная ёмкость
// гарантирует фиксированный объём памяти.
type lruCache struct {
	capacity int
	entries  map[cacheKey]*cacheEntry
	order    *list.List // свежие в начале
	mu       sync.Mutex
}

func newLRUCache(capacity int) *lruCache {
	if capacity <= 0 {
		capacity = defaultCacheCapacity
	}
	return &lruCache{
		capacity: capacity,
		entries:  make(map[cacheKey]*cacheEntry, capacity),
		order:    list.New(),
	}
}

// get возвращает закэшированный результат и поднимает запись в начало
func (c *lruCache) get(key cacheKey) (x, y float64, ok bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[key]
	if !ok {
		return 0, 0, false
	}
	c.order.MoveToFront(entry.element)
	return entry.x, entry.y, true
}

// put добавляет результат, вытесняя самую старую запись при переполнении
func (c *lruCache) put(key cacheKey, x, y float64) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if entry, ok := c.entries[key]; ok {
		entry.x, entry.y = x, y
		c.order.MoveToFront(entry.element)
		return
	}

	entry := &cacheEntry{key: key, x: x, y: y}
	entry.element = c.order.PushFront(entry)
	c.entries[key] = entry

	for len(c.entries) > c.capacity {
		oldest := c.order.Back()
		if oldest == nil {
			break
		}
		c.order.Remove(oldest)
		delete(c.entries, oldest.Value.(*cacheEntry).key)
	}
}

// len возвращает текущее число записей
func (c *lruCache) len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
