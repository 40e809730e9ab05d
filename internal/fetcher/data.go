package fetcher

// HTTP boundary

type FetchResult struct {
	body string
	meta ResponseMeta
}

func (f *FetchResult) Body() string {
	return f.body
}

func (f *FetchResult) Code() int {
	return f.meta.statusCode
}

func (f *FetchResult) SizeByte() int {
	return f.meta.transferredSizeByte
}

type ResponseMeta struct {
	statusCode          int
	transferredSizeByte int
}

// NewFetchResultForTest creates a FetchResult for testing purposes.
// This allows test packages to construct FetchResult values without
// accessing unexported fields directly.
func NewFetchResultForTest(body string, statusCode int) FetchResult {
	return FetchResult{
		body: body,
		meta: ResponseMeta{
			statusCode:          statusCode,
			transferredSizeByte: len(body),
		},
	}
}
