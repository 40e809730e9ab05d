package store

import "fmt"

// Key spaces for the two durable blobs the client caches.
// Equality and map hashing use every tuple field.

// InputKey identifies one puzzle's input text.
type InputKey struct {
	Year int
	Day  int
}

func (k InputKey) String() string {
	return fmt.Sprintf("%d/%d", k.Year, k.Day)
}

// ExampleKey identifies one cached copy of a puzzle page's HTML.
// Part is not part of the parsed content's identity; it only keeps the
// HTML captured before part 2 was unlocked separate from the HTML
// captured after.
type ExampleKey struct {
	Year int
	Day  int
	Part int
}

func (k ExampleKey) String() string {
	return fmt.Sprintf("%d/%d part %d", k.Year, k.Day, k.Part)
}
