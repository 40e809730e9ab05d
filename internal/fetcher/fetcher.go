package fetcher

import (
	"context"

	"github.com/arthomnix/libaoc/pkg/failure"
)

type Fetcher interface {
	Fetch(ctx context.Context, path string) (FetchResult, failure.ClassifiedError)
}
