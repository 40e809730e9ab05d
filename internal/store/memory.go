package store

import (
	"time"

	"github.com/arthomnix/libaoc/pkg/failure"
)

// MemoryProvider is an in-memory implementation of Provider.
// It backs tests and ephemeral sessions where nothing should touch disk.
type MemoryProvider struct {
	inputs    map[InputKey]string
	examples  map[ExampleKey]string
	timestamp time.Time
	hasTs     bool
}

func NewMemoryProvider() *MemoryProvider {
	return &MemoryProvider{
		inputs:   make(map[InputKey]string),
		examples: make(map[ExampleKey]string),
	}
}

func (p *MemoryProvider) LoadInput(key InputKey) (string, bool) {
	text, ok := p.inputs[key]
	return text, ok
}

func (p *MemoryProvider) SaveInput(key InputKey, text string) failure.ClassifiedError {
	p.inputs[key] = text
	return nil
}

func (p *MemoryProvider) LoadExample(key ExampleKey) (string, bool) {
	html, ok := p.examples[key]
	return html, ok
}

func (p *MemoryProvider) SaveExample(key ExampleKey, html string) failure.ClassifiedError {
	p.examples[key] = html
	return nil
}

func (p *MemoryProvider) LoadThrottleTimestamp() (time.Time, bool) {
	return p.timestamp, p.hasTs
}

func (p *MemoryProvider) SaveThrottleTimestamp(ts time.Time) failure.ClassifiedError {
	p.timestamp = ts
	p.hasTs = true
	return nil
}

func (p *MemoryProvider) SaveAll(
	inputs map[InputKey]string,
	examples map[ExampleKey]string,
	ts time.Time,
) failure.ClassifiedError {
	p.SaveThrottleTimestamp(ts)
	for key, text := range inputs {
		p.SaveInput(key, text)
	}
	for key, html := range examples {
		p.SaveExample(key, html)
	}
	return nil
}

// InputCount reports the number of persisted inputs.
// This method is primarily useful for testing.
func (p *MemoryProvider) InputCount() int {
	return len(p.inputs)
}

// ExampleCount reports the number of persisted example pages.
// This method is primarily useful for testing.
func (p *MemoryProvider) ExampleCount() int {
	return len(p.examples)
}
