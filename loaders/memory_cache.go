package loaders

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/piprate/json-gold/ld"
	"github.com/pkg/errors"
)

// DefaultMaxCacheEntries bounds the documents kept by the memory cache.
const DefaultMaxCacheEntries = 512

type cacheEntry struct {
	doc        *ld.RemoteDocument
	expireTime time.Time
}

// memoryCacheEngine keeps fetched documents in a bounded map. When full,
// Set drops expired entries and then the entry closest to expiry. Pinned
// documents are read-only, always fresh and do not count against the bound.
type memoryCacheEngine struct {
	mu         sync.RWMutex
	entries    map[string]cacheEntry
	maxEntries int
	pinned     map[string]*ld.RemoteDocument
}

func (m *memoryCacheEngine) Get(
	key string) (*ld.RemoteDocument, time.Time, error) {

	if doc, ok := m.pinned[key]; ok {
		return doc, time.Now().Add(time.Hour), nil
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	e, ok := m.entries[key]
	if !ok {
		return nil, time.Time{}, ErrCacheMiss
	}
	return e.doc, e.expireTime, nil
}

func (m *memoryCacheEngine) Set(key string, doc *ld.RemoteDocument,
	expireTime time.Time) error {

	if _, ok := m.pinned[key]; ok {
		return nil
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.entries[key]; !ok && len(m.entries) >= m.maxEntries {
		m.evict(time.Now())
	}
	m.entries[key] = cacheEntry{doc: doc, expireTime: expireTime}
	return nil
}

// evict must be called with mu held.
func (m *memoryCacheEngine) evict(now time.Time) {
	var (
		victim string
		oldest time.Time
		found  bool
	)
	for k, e := range m.entries {
		if !e.expireTime.After(now) {
			delete(m.entries, k)
			continue
		}
		if !found || e.expireTime.Before(oldest) {
			victim, oldest, found = k, e.expireTime, true
		}
	}
	if found && len(m.entries) >= m.maxEntries {
		delete(m.entries, victim)
	}
}

type MemoryCacheEngineOption func(*memoryCacheEngine) error

// WithEmbeddedDocumentBytes serves the JSON document doc for URL u without
// going to the network.
func WithEmbeddedDocumentBytes(u string, doc []byte) MemoryCacheEngineOption {
	return func(engine *memoryCacheEngine) error {
		var parsed any
		if err := json.Unmarshal(doc, &parsed); err != nil {
			return errors.Wrapf(err, "invalid embedded document %q", u)
		}
		return WithEmbeddedDocument(u, parsed)(engine)
	}
}

// WithEmbeddedDocument pins an already parsed JSON-LD document, for example
// a context shipped with the application, under URL u.
func WithEmbeddedDocument(u string, doc any) MemoryCacheEngineOption {
	return func(engine *memoryCacheEngine) error {
		if doc == nil {
			return errors.Errorf("embedded document %q is empty", u)
		}
		engine.pinned[u] = &ld.RemoteDocument{DocumentURL: u, Document: doc}
		return nil
	}
}

// WithMaxEntries bounds the number of fetched documents kept in memory.
func WithMaxEntries(n int) MemoryCacheEngineOption {
	return func(engine *memoryCacheEngine) error {
		if n < 1 {
			return errors.Errorf("max cache entries must be positive: %d", n)
		}
		engine.maxEntries = n
		return nil
	}
}

func NewMemoryCacheEngine(
	opts ...MemoryCacheEngineOption) (CacheEngine, error) {

	e := &memoryCacheEngine{
		entries:    make(map[string]cacheEntry),
		maxEntries: DefaultMaxCacheEntries,
		pinned:     make(map[string]*ld.RemoteDocument),
	}
	for _, opt := range opts {
		if err := opt(e); err != nil {
			return nil, err
		}
	}
	return e, nil
}
