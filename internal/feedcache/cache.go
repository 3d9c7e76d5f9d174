// Package feedcache хранит отрендеренную ленту главной страницы.
//
// Кэш общий для всех пользователей: ключ зависит только от префикса и номера
// страницы. Записи живут ttl, Invalidate сбрасывает все сразу (вызывается
// при создании поста).
package feedcache

import (
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const DefaultPrefix = "index_page"

type Cache struct {
	prefix string
	lru    *expirable.LRU[string, []byte]
}

func New(prefix string, size int, ttl time.Duration) *Cache {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Cache{
		prefix: prefix,
		lru:    expirable.NewLRU[string, []byte](size, nil, ttl),
	}
}

func (c *Cache) key(page string) string {
	return c.prefix + ":" + page
}

func (c *Cache) Get(page string) ([]byte, bool) {
	return c.lru.Get(c.key(page))
}

func (c *Cache) Set(page string, body []byte) {
	c.lru.Add(c.key(page), body)
}

// Invalidate удаляет все закэшированные страницы
func (c *Cache) Invalidate() {
	c.lru.Purge()
}

func (c *Cache) Len() int {
	return c.lru.Len()
}
