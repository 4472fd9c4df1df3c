package batch

import (
	"crypto/md5"
	"fmt"
	"os"
	"sync"
	"time"

	"github.com/gnolang/syntax/tokenizer"
)

type cacheEntry struct {
	hash      string
	source    string
	tokens    []tokenizer.Token
	createdAt time.Time
}

// Cache is a Processor that remembers successful results per file and
// serves them while the file content is unchanged. Failures are never
// cached.
type Cache struct {
	Processor Processor

	mutex   sync.Mutex
	entries map[string]cacheEntry
	maxAge  time.Duration
}

func NewCache(p Processor) *Cache {
	return &Cache{
		Processor: p,
		entries:   make(map[string]cacheEntry),
	}
}

// SetMaxAge bounds how long an entry stays valid. Zero means no limit.
func (c *Cache) SetMaxAge(d time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = d
}

func (c *Cache) TokenizeFile(path string) (string, []tokenizer.Token, error) {
	hash, err := fileHash(path)
	if err != nil {
		c.Invalidate(path)
		return "", nil, err
	}

	c.mutex.Lock()
	entry, ok := c.entries[path]
	if ok && entry.hash == hash && !c.expired(entry) {
		c.mutex.Unlock()
		return entry.source, entry.tokens, nil
	}
	c.mutex.Unlock()

	source, tokens, err := c.Processor.TokenizeFile(path)
	if err != nil {
		c.Invalidate(path)
		return source, tokens, err
	}

	c.mutex.Lock()
	defer c.mutex.Unlock()
	c.entries[path] = cacheEntry{
		hash:      hash,
		source:    source,
		tokens:    tokens,
		createdAt: time.Now(),
	}
	return source, tokens, nil
}

func (c *Cache) expired(entry cacheEntry) bool {
	return c.maxAge > 0 && time.Since(entry.createdAt) > c.maxAge
}

func (c *Cache) Invalidate(path string) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	delete(c.entries, path)
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries = make(map[string]cacheEntry)
}

func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return len(c.entries)
}

func fileHash(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read file: %w", err)
	}
	return fmt.Sprintf("%x", md5.Sum(data)), nil
}
