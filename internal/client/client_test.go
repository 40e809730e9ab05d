package client_test

import (
	"context"
	"testing"
	"time"

	"github.com/arthomnix/libaoc/internal/client"
	"github.com/arthomnix/libaoc/internal/config"
	"github.com/arthomnix/libaoc/internal/fetcher"
	"github.com/arthomnix/libaoc/internal/metadata"
	"github.com/arthomnix/libaoc/internal/store"
	"github.com/arthomnix/libaoc/pkg/failure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const examplePage = `<html><body><article class="day-desc">
<h2>--- Day 1: Trebuchet?! ---</h2>
<p>For example:</p>
<pre><code>1abc2
pqr3stu8vwx
</code></pre>
<p>The sum is <code><em>142</em></code>.</p>
</article></body></html>`

// fakeFetcher serves canned bodies per path and records every request.
type fakeFetcher struct {
	responses map[string]string
	err       failure.ClassifiedError
	requested []string
}

func (f *fakeFetcher) Fetch(_ context.Context, path string) (fetcher.FetchResult, failure.ClassifiedError) {
	f.requested = append(f.requested, path)
	if f.err != nil {
		return fetcher.FetchResult{}, f.err
	}
	body, ok := f.responses[path]
	if !ok {
		body = "default body"
	}
	return fetcher.NewFetchResultForTest(body, 200), nil
}

func testConfig(t *testing.T) config.Config {
	t.Helper()
	cfg, err := config.WithDefault("test-session-token").
		WithThrottleInterval(time.Millisecond).
		WithCacheDir(t.TempDir()).
		Build()
	require.NoError(t, err)
	return cfg
}

func newTestClient(t *testing.T, fetch *fakeFetcher, provider store.Provider) *client.Client {
	t.Helper()
	if provider == nil {
		provider = store.NewMemoryProvider()
	}
	return client.New(testConfig(t), fetch, provider, &metadata.NoopSink{})
}

func TestGetInput_FetchesOnceAndCaches(t *testing.T) {
	fetch := &fakeFetcher{responses: map[string]string{"/2022/day/1/input": "1000\n2000\n"}}
	c := newTestClient(t, fetch, nil)

	first, err := c.GetInput(context.Background(), 2022, 1)
	require.Nil(t, err)
	assert.Equal(t, "1000\n2000\n", first)

	second, err := c.GetInput(context.Background(), 2022, 1)
	require.Nil(t, err)
	assert.Equal(t, first, second)

	assert.Equal(t, []string{"/2022/day/1/input"}, fetch.requested, "second call must be served from cache")
}

func TestGetInput_DurableHitAvoidsFetch(t *testing.T) {
	provider := store.NewMemoryProvider()
	require.NoError(t, error(provider.SaveInput(store.InputKey{Year: 2022, Day: 1}, "persisted\n")))
	fetch := &fakeFetcher{}
	c := newTestClient(t, fetch, provider)

	text, err := c.GetInput(context.Background(), 2022, 1)

	require.Nil(t, err)
	assert.Equal(t, "persisted\n", text)
	assert.Empty(t, fetch.requested)
}

func TestGetInputSkipDurable_IgnoresDurableButFillsMemory(t *testing.T) {
	provider := store.NewMemoryProvider()
	require.NoError(t, error(provider.SaveInput(store.InputKey{Year: 2022, Day: 1}, "stale\n")))
	fetch := &fakeFetcher{responses: map[string]string{"/2022/day/1/input": "fresh\n"}}
	c := newTestClient(t, fetch, provider)

	text, err := c.GetInputSkipDurable(context.Background(), 2022, 1)
	require.Nil(t, err)
	assert.Equal(t, "fresh\n", text)
	require.Len(t, fetch.requested, 1)

	// the fetched text landed in the memory tier
	again, err := c.GetInputSkipDurable(context.Background(), 2022, 1)
	require.Nil(t, err)
	assert.Equal(t, "fresh\n", again)
	assert.Len(t, fetch.requested, 1)
}

func TestGetInputUncached_AlwaysFetches(t *testing.T) {
	fetch := &fakeFetcher{responses: map[string]string{"/2022/day/1/input": "data\n"}}
	c := newTestClient(t, fetch, nil)

	_, err := c.GetInputUncached(context.Background(), 2022, 1)
	require.Nil(t, err)
	_, err = c.GetInputUncached(context.Background(), 2022, 1)
	require.Nil(t, err)

	assert.Len(t, fetch.requested, 2)

	// but it still populated the memory tier for ordinary reads
	_, err = c.GetInput(context.Background(), 2022, 1)
	require.Nil(t, err)
	assert.Len(t, fetch.requested, 2)
}

func TestGetInput_FetchErrorDoesNotPopulateCache(t *testing.T) {
	fetch := &fakeFetcher{err: &fetcher.FetchError{
		Message:   "server error: 503",
		Retryable: true,
		Cause:     fetcher.ErrCauseRequest5xx,
	}}
	c := newTestClient(t, fetch, nil)

	_, err := c.GetInput(context.Background(), 2022, 1)
	require.NotNil(t, err)
	assert.Equal(t, failure.SeverityRecoverable, err.Severity())

	fetch.err = nil
	fetch.responses = map[string]string{"/2022/day/1/input": "recovered\n"}

	text, err := c.GetInput(context.Background(), 2022, 1)
	require.Nil(t, err)
	assert.Equal(t, "recovered\n", text)
	assert.Len(t, fetch.requested, 2, "the failed response must not have been cached")
}

func TestGetExample_CachesPageAndReparses(t *testing.T) {
	fetch := &fakeFetcher{responses: map[string]string{"/2023/day/1": examplePage}}
	c := newTestClient(t, fetch, nil)

	first, err := c.GetExample(context.Background(), 2023, 1, 1)
	require.Nil(t, err)
	require.NotNil(t, first)
	assert.Equal(t, "1abc2\npqr3stu8vwx\n", first.Data)
	assert.Equal(t, "142", first.Part1Answer)

	second, err := c.GetExample(context.Background(), 2023, 1, 1)
	require.Nil(t, err)
	require.NotNil(t, second)
	assert.Equal(t, *first, *second)

	assert.Equal(t, []string{"/2023/day/1"}, fetch.requested, "page is cached, parsing is repeated")
}

func TestGetExample_NoExampleYieldsNilNil(t *testing.T) {
	fetch := &fakeFetcher{responses: map[string]string{
		"/2023/day/1": `<html><body><article class="day-desc"><p>Nothing here.</p></article></body></html>`,
	}}
	c := newTestClient(t, fetch, nil)

	ex, err := c.GetExample(context.Background(), 2023, 1, 1)

	assert.Nil(t, err)
	assert.Nil(t, ex)
	assert.Len(t, fetch.requested, 1)
}

func TestGetExample_PartSelectsCacheEntry(t *testing.T) {
	fetch := &fakeFetcher{responses: map[string]string{"/2023/day/1": examplePage}}
	c := newTestClient(t, fetch, nil)

	_, err := c.GetExample(context.Background(), 2023, 1, 1)
	require.Nil(t, err)

	// part 2 is a distinct key, so the page is refetched
	_, err = c.GetExample(context.Background(), 2023, 1, 2)
	require.Nil(t, err)

	assert.Equal(t, []string{"/2023/day/1", "/2023/day/1"}, fetch.requested)
}

func TestGetPuzzle_SharesPageCacheWithExamples(t *testing.T) {
	fetch := &fakeFetcher{responses: map[string]string{"/2023/day/1": examplePage}}
	c := newTestClient(t, fetch, nil)

	_, err := c.GetExample(context.Background(), 2023, 1, 1)
	require.Nil(t, err)

	markdown, err := c.GetPuzzle(context.Background(), 2023, 1, 1)
	require.Nil(t, err)
	assert.Contains(t, markdown, "Trebuchet")
	assert.Contains(t, markdown, "For example")

	assert.Len(t, fetch.requested, 1, "the puzzle page was already cached by GetExample")
}

func TestClose_FlushesCachesAndTimestamp(t *testing.T) {
	provider := store.NewMemoryProvider()
	fetch := &fakeFetcher{responses: map[string]string{
		"/2022/day/1/input": "input\n",
		"/2022/day/1":       examplePage,
	}}
	c := newTestClient(t, fetch, provider)

	_, err := c.GetInput(context.Background(), 2022, 1)
	require.Nil(t, err)
	_, err = c.GetExample(context.Background(), 2022, 1, 1)
	require.Nil(t, err)

	// nothing reaches the durable store before Close
	assert.Equal(t, 0, provider.InputCount())
	assert.Equal(t, 0, provider.ExampleCount())

	require.Nil(t, c.Close())

	assert.Equal(t, 1, provider.InputCount())
	assert.Equal(t, 1, provider.ExampleCount())

	ts, ok := provider.LoadThrottleTimestamp()
	require.True(t, ok)
	assert.WithinDuration(t, time.Now(), ts, time.Minute)
}

func TestClose_IsIdempotent(t *testing.T) {
	provider := store.NewMemoryProvider()
	fetch := &fakeFetcher{}
	c := newTestClient(t, fetch, provider)

	_, err := c.GetInput(context.Background(), 2022, 1)
	require.Nil(t, err)

	require.Nil(t, c.Close())
	inputsAfterFirst := provider.InputCount()

	// entries added after Close are not persisted again
	_, err = c.GetInput(context.Background(), 2022, 2)
	require.Nil(t, err)
	require.Nil(t, c.Close())

	assert.Equal(t, inputsAfterFirst, provider.InputCount())
}

func TestNew_RestoresPersistedThrottleTimestamp(t *testing.T) {
	provider := store.NewMemoryProvider()
	persisted := time.Now().Add(-time.Hour)
	require.NoError(t, error(provider.SaveThrottleTimestamp(persisted)))

	fetch := &fakeFetcher{}
	cfg, err := config.WithDefault("token").
		WithThrottleInterval(time.Hour).
		WithCacheDir(t.TempDir()).
		Build()
	require.NoError(t, err)
	c := client.New(cfg, fetch, provider, nil)

	// an hour has elapsed since the persisted timestamp, so even the
	// hour-long interval imposes no wait
	start := time.Now()
	_, ferr := c.GetInput(context.Background(), 2022, 1)
	require.Nil(t, ferr)
	assert.Less(t, time.Since(start), 10*time.Second)
}
