package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"
)

type memoryItem struct {
	value     string
	expiresAt time.Time // zero = sem expiração
}

func (i memoryItem) expired(now time.Time) bool {
	return !i.expiresAt.IsZero() && !now.Before(i.expiresAt)
}

// MemoryClient implementa Client em memória. Usado quando REDIS_ADDR não está definido e nos testes.
type MemoryClient struct {
	mu    sync.Mutex
	items map[string]memoryItem
	now   func() time.Time
}

// NewMemoryClient cria um cache em memória vazio.
func NewMemoryClient() *MemoryClient {
	return &MemoryClient{items: make(map[string]memoryItem), now: time.Now}
}

// lookup deve ser chamado com o lock adquirido.
func (c *MemoryClient) lookup(key string) (memoryItem, bool) {
	item, ok := c.items[key]
	if !ok {
		return memoryItem{}, false
	}
	if item.expired(c.now()) {
		delete(c.items, key)
		return memoryItem{}, false
	}
	return item, true
}

func (c *MemoryClient) Get(_ context.Context, key string) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.lookup(key)
	if !ok {
		return "", ErrCacheMiss
	}
	return item.value, nil
}

func (c *MemoryClient) Set(_ context.Context, key string, value interface{}, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item := memoryItem{value: fmt.Sprint(value)}
	if expiration > 0 {
		item.expiresAt = c.now().Add(expiration)
	}
	c.items[key] = item
	return nil
}

func (c *MemoryClient) Delete(_ context.Context, key string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	delete(c.items, key)
	return nil
}

func (c *MemoryClient) GetInt(ctx context.Context, key string) (int, error) {
	val, err := c.Get(ctx, key)
	if err != nil {
		return 0, err
	}
	return strconv.Atoi(val)
}

// Incr segue a semântica do Redis: chave ausente começa em zero e o TTL é mantido.
func (c *MemoryClient) Incr(_ context.Context, key string) (int64, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, _ := c.lookup(key)
	n := int64(0)
	if item.value != "" {
		parsed, err := strconv.ParseInt(item.value, 10, 64)
		if err != nil {
			return 0, fmt.Errorf("valor da chave %s não é inteiro: %w", key, err)
		}
		n = parsed
	}
	n++
	item.value = strconv.FormatInt(n, 10)
	c.items[key] = item
	return n, nil
}

func (c *MemoryClient) Expire(_ context.Context, key string, expiration time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	item, ok := c.lookup(key)
	if !ok {
		return nil
	}
	item.expiresAt = c.now().Add(expiration)
	c.items[key] = item
	return nil
}
