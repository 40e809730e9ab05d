package cache

import (
	"fmt"

	"github.com/arthomnix/libaoc/internal/metadata"
)

// Tiered is a two-tier read-through cache over a single key space.
//
// Tier order on Get: memory first, then the durable port; a durable hit
// is promoted into memory before returning. A full miss returns false
// and the caller falls through to the network. Get never performs
// network I/O and never blocks on the throttle.
//
// Put writes the memory tier only. Durable persistence is deferred to
// the owning client's shutdown flush, so the durable tier is written at
// most once per process lifetime no matter how often an entry is read.
//
// The memory tier never evicts; it is bounded by process lifetime.
// Tiered is owned by exactly one client and is not safe for concurrent
// use.
type Tiered[K comparable] struct {
	space   string
	mem     map[K]string
	durable DurablePort[K]
	sink    metadata.Sink
}

// NewTiered creates an empty tiered cache. space names the key space in
// metadata events ("inputs", "examples").
func NewTiered[K comparable](space string, durable DurablePort[K], sink metadata.Sink) *Tiered[K] {
	return &Tiered[K]{
		space:   space,
		mem:     make(map[K]string),
		durable: durable,
		sink:    sink,
	}
}

// Get looks the key up in the memory tier, then the durable tier.
func (c *Tiered[K]) Get(key K) (string, bool) {
	if text, ok := c.mem[key]; ok {
		c.sink.RecordCacheLookup(c.space, keyString(key), metadata.TierMemory)
		return text, true
	}
	if text, ok := c.durable.Load(key); ok {
		// promote so the durable tier is consulted once per key per session
		c.mem[key] = text
		c.sink.RecordCacheLookup(c.space, keyString(key), metadata.TierDurable)
		return text, true
	}
	c.sink.RecordCacheLookup(c.space, keyString(key), metadata.TierMiss)
	return "", false
}

// GetMemory looks the key up in the memory tier only, skipping the
// durable tier entirely.
func (c *Tiered[K]) GetMemory(key K) (string, bool) {
	text, ok := c.mem[key]
	if ok {
		c.sink.RecordCacheLookup(c.space, keyString(key), metadata.TierMemory)
	} else {
		c.sink.RecordCacheLookup(c.space, keyString(key), metadata.TierMiss)
	}
	return text, ok
}

// Put inserts or overwrites the entry in the memory tier.
func (c *Tiered[K]) Put(key K, text string) {
	c.mem[key] = text
}

// Entries returns a snapshot copy of the memory tier for flushing.
func (c *Tiered[K]) Entries() map[K]string {
	entries := make(map[K]string, len(c.mem))
	for key, text := range c.mem {
		entries[key] = text
	}
	return entries
}

// Len reports the number of memory-tier entries.
func (c *Tiered[K]) Len() int {
	return len(c.mem)
}

func keyString[K comparable](key K) string {
	return fmt.Sprintf("%v", key)
}
