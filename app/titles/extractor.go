// Package titles derives short titles from plain text.
package titles

import (
	"context"
	"errors"
)

// ErrContract is returned by callers when an extractor fails to produce a
// title. It is a programming error, not a runtime condition to absorb.
var ErrContract = errors.New("title extraction contract violated")

type Extractor interface {
	Extract(ctx context.Context, text string) (string, error)
}

type ExtractorFunc func(ctx context.Context, text string) (string, error)

func (f ExtractorFunc) Extract(ctx context.Context, text string) (string, error) {
	return f(ctx, text)
}

// Store persists titles keyed by a digest of the input text.
type Store interface {
	GetTitle(key string) (string, bool, error)
	PutTitle(key, title string) error
}
