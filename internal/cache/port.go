package cache

// DurablePort is the read side of the durable tier as seen by the
// tiered cache. This interface follows the port-adapter pattern: the
// cache never learns where durable entries live, it only asks for them.
//
// Writes deliberately do not appear here. The durable tier is written
// once, at client shutdown, through the store's SaveAll.
type DurablePort[K comparable] interface {
	// Load retrieves a durable entry by key.
	// Returns the value and true if found, or empty string and false if not.
	Load(key K) (string, bool)
}

// DurableFunc adapts an ordinary load function to the DurablePort interface.
type DurableFunc[K comparable] func(key K) (string, bool)

func (f DurableFunc[K]) Load(key K) (string, bool) {
	return f(key)
}
