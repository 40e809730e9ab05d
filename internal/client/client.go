package client

import (
	"context"
	"fmt"
	"time"

	"github.com/arthomnix/libaoc/internal/cache"
	"github.com/arthomnix/libaoc/internal/config"
	"github.com/arthomnix/libaoc/internal/example"
	"github.com/arthomnix/libaoc/internal/fetcher"
	"github.com/arthomnix/libaoc/internal/metadata"
	"github.com/arthomnix/libaoc/internal/puzzle"
	"github.com/arthomnix/libaoc/internal/store"
	"github.com/arthomnix/libaoc/internal/throttle"
	"github.com/arthomnix/libaoc/pkg/failure"
)

/*
Client orchestrates the throttle gate, the tiered caches, and the
example extractor around the fetch capability.

Request flow: a read consults the memory tier, then the durable tier
(promoting hits), and only on a full miss passes through the throttle
gate to the network. Successful fetches populate the memory tier;
the durable tier is written once, in Close.

Ownership: one Client exclusively owns its caches and throttle
timestamp, and mutates them without internal synchronization. It is not
safe for concurrent use. Two processes sharing one cache directory are
not coordinated; the flush is last-writer-wins.

Callers must Close on every exit path: skipping it silently loses
unflushed cache entries and the throttle timestamp.
*/
type Client struct {
	fetch    fetcher.Fetcher
	provider store.Provider
	inputs   *cache.Tiered[store.InputKey]
	examples *cache.Tiered[store.ExampleKey]
	gate     *throttle.Gate
	renderer puzzle.Renderer
	sink     metadata.Sink
	closed   bool
}

// New wires a client from explicit collaborators. The persisted
// throttle timestamp is read here, once; a missing timestamp defaults
// to the epoch so the first request of a fresh cache is unthrottled.
func New(
	cfg config.Config,
	fetch fetcher.Fetcher,
	provider store.Provider,
	sink metadata.Sink,
) *Client {
	if sink == nil {
		sink = &metadata.NoopSink{}
	}

	last, ok := provider.LoadThrottleTimestamp()
	if !ok {
		last = time.Unix(0, 0)
	}

	return &Client{
		fetch:    fetch,
		provider: provider,
		inputs:   cache.NewTiered("inputs", cache.DurableFunc[store.InputKey](provider.LoadInput), sink),
		examples: cache.NewTiered("examples", cache.DurableFunc[store.ExampleKey](provider.LoadExample), sink),
		gate:     throttle.NewGate(cfg.ThrottleInterval(), last, sink),
		renderer: puzzle.NewRenderer(sink),
		sink:     sink,
	}
}

// NewDefault wires a client with the file-backed store and the
// session-cookie fetcher. A nil sink disables metadata recording.
func NewDefault(cfg config.Config, sink metadata.Sink) *Client {
	if sink == nil {
		sink = &metadata.NoopSink{}
	}
	fetch := fetcher.NewSessionFetcher(
		cfg.BaseURL(),
		cfg.Session(),
		cfg.UserAgent(),
		cfg.Timeout(),
		sink,
	)
	provider := store.NewFileProvider(cfg.CacheDir(), sink)
	return New(cfg, &fetch, provider, sink)
}

// GetInput returns the input text for the given day and year,
// consulting both cache tiers before the network.
func (c *Client) GetInput(ctx context.Context, year, day int) (string, failure.ClassifiedError) {
	key := store.InputKey{Year: year, Day: day}
	if text, ok := c.inputs.Get(key); ok {
		return text, nil
	}
	return c.fetchInput(ctx, key)
}

// GetInputSkipDurable is GetInput without the durable-tier lookup: a
// memory miss goes straight to the network. The fetched text still
// populates the memory tier (and so reaches the durable tier at Close).
func (c *Client) GetInputSkipDurable(ctx context.Context, year, day int) (string, failure.ClassifiedError) {
	key := store.InputKey{Year: year, Day: day}
	if text, ok := c.inputs.GetMemory(key); ok {
		return text, nil
	}
	return c.fetchInput(ctx, key)
}

// GetInputUncached bypasses both cache tiers and always fetches. The
// result still passes through the throttle gate and still populates
// the memory tier.
func (c *Client) GetInputUncached(ctx context.Context, year, day int) (string, failure.ClassifiedError) {
	return c.fetchInput(ctx, store.InputKey{Year: year, Day: day})
}

// GetExample extracts the worked example from the puzzle page for the
// given day and year. part selects which cached copy of the page to
// use: pass 2 once part 2 is unlocked so the part-2 narrative is
// fetched, 1 otherwise. A page with no recognizable example yields
// (nil, nil); parsing is redone on every call from the cached HTML.
func (c *Client) GetExample(ctx context.Context, year, day, part int) (*example.Example, failure.ClassifiedError) {
	pageHTML, err := c.pageHTML(ctx, store.ExampleKey{Year: year, Day: day, Part: part}, lookupTiered)
	if err != nil {
		return nil, err
	}
	return example.Parse(pageHTML), nil
}

// GetExampleSkipDurable is GetExample without the durable-tier lookup.
func (c *Client) GetExampleSkipDurable(ctx context.Context, year, day, part int) (*example.Example, failure.ClassifiedError) {
	pageHTML, err := c.pageHTML(ctx, store.ExampleKey{Year: year, Day: day, Part: part}, lookupMemory)
	if err != nil {
		return nil, err
	}
	return example.Parse(pageHTML), nil
}

// GetExampleUncached bypasses both cache tiers and always refetches the
// puzzle page before extracting.
func (c *Client) GetExampleUncached(ctx context.Context, year, day, part int) (*example.Example, failure.ClassifiedError) {
	pageHTML, err := c.pageHTML(ctx, store.ExampleKey{Year: year, Day: day, Part: part}, lookupNone)
	if err != nil {
		return nil, err
	}
	return example.Parse(pageHTML), nil
}

// GetPuzzle renders the puzzle narrative as Markdown. It shares the
// example key space, so a previously fetched page costs no request.
func (c *Client) GetPuzzle(ctx context.Context, year, day, part int) (string, failure.ClassifiedError) {
	pageHTML, err := c.pageHTML(ctx, store.ExampleKey{Year: year, Day: day, Part: part}, lookupTiered)
	if err != nil {
		return "", err
	}
	return c.renderer.Render(pageHTML)
}

// Close flushes both cache key spaces and the throttle timestamp to
// the durable store. This is the only point at which durable writes
// occur. Close is idempotent; operations after Close still work but
// their results are no longer persisted.
func (c *Client) Close() failure.ClassifiedError {
	if c.closed {
		return nil
	}
	c.closed = true

	err := c.provider.SaveAll(c.inputs.Entries(), c.examples.Entries(), c.gate.Last())
	c.sink.RecordFlush(c.inputs.Len(), c.examples.Len())
	return err
}

type lookupMode int

const (
	lookupTiered lookupMode = iota
	lookupMemory
	lookupNone
)

// pageHTML returns the puzzle page HTML for key, consulting the caches
// per mode and fetching on a miss.
func (c *Client) pageHTML(ctx context.Context, key store.ExampleKey, mode lookupMode) (string, failure.ClassifiedError) {
	switch mode {
	case lookupTiered:
		if pageHTML, ok := c.examples.Get(key); ok {
			return pageHTML, nil
		}
	case lookupMemory:
		if pageHTML, ok := c.examples.GetMemory(key); ok {
			return pageHTML, nil
		}
	}

	c.gate.Acquire()
	result, err := c.fetch.Fetch(ctx, pagePath(key.Year, key.Day))
	if err != nil {
		return "", err
	}
	c.examples.Put(key, result.Body())
	return result.Body(), nil
}

func (c *Client) fetchInput(ctx context.Context, key store.InputKey) (string, failure.ClassifiedError) {
	c.gate.Acquire()
	result, err := c.fetch.Fetch(ctx, inputPath(key.Year, key.Day))
	if err != nil {
		return "", err
	}
	c.inputs.Put(key, result.Body())
	return result.Body(), nil
}

func inputPath(year, day int) string {
	return fmt.Sprintf("/%d/day/%d/input", year, day)
}

func pagePath(year, day int) string {
	return fmt.Sprintf("/%d/day/%d", year, day)
}
