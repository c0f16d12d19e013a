package parse

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"sync"
	"sync/atomic"
	"time"

	sitter "github.com/smacker/go-tree-sitter"
)

// astCache is a lock-free, process-wide cache of parsed trees keyed by
// grammar tag + source hash, adapted from providers/base's ASTCache: a file
// whose contents recur across projects (for example a starter file copied
// from a template into every submission) is parsed only once.
type astCache struct {
	entries     sync.Map
	hits        atomic.Int64
	misses      atomic.Int64
	maxAge      time.Duration
	cleanupOnce sync.Once
}

type cachedTree struct {
	tree      *sitter.Tree
	timestamp time.Time
}

var globalASTCache = &astCache{maxAge: 10 * time.Minute}

func (c *astCache) getOrParse(parser *sitter.Parser, lang, source string) (*sitter.Tree, error) {
	key := lang + ":" + hashSource(source)

	if cached, ok := c.entries.Load(key); ok {
		entry := cached.(*cachedTree)
		if time.Since(entry.timestamp) <= c.maxAge {
			c.hits.Add(1)
			return entry.tree.Copy(), nil
		}
		c.entries.Delete(key)
		entry.tree.Close()
	}

	c.misses.Add(1)
	tree, err := parser.ParseCtx(context.Background(), nil, []byte(source))
	if err != nil {
		return nil, err
	}

	c.entries.Store(key, &cachedTree{tree: tree.Copy(), timestamp: time.Now()})
	c.cleanupOnce.Do(func() { go c.evictLoop() })
	return tree, nil
}

func (c *astCache) evictLoop() {
	ticker := time.NewTicker(c.maxAge)
	defer ticker.Stop()
	for range ticker.C {
		now := time.Now()
		c.entries.Range(func(key, value any) bool {
			entry := value.(*cachedTree)
			if now.Sub(entry.timestamp) > c.maxAge {
				c.entries.Delete(key)
				entry.tree.Close()
			}
			return true
		})
	}
}

func hashSource(source string) string {
	sum := sha256.Sum256([]byte(source))
	return hex.EncodeToString(sum[:])
}
