package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/arthomnix/libaoc/internal/metadata"
	"github.com/arthomnix/libaoc/pkg/failure"
	"github.com/arthomnix/libaoc/pkg/hashutil"
	"github.com/go-resty/resty/v2"
)

/*
Responsibilities

- Perform HTTP requests against the puzzle site
- Attach the session cookie and timeouts
- Classify responses

Fetch Semantics

- The body is returned as opaque text; inputs are text/plain and puzzle
  pages are HTML, and the fetcher does not care which
- All responses are recorded with metadata, including a content hash

The fetcher never parses content and never retries; throttling is the
caller's responsibility.
*/

// Compile-time interface check
var _ Fetcher = (*SessionFetcher)(nil)

type SessionFetcher struct {
	metadataSink metadata.Sink
	httpClient   *resty.Client
}

// NewSessionFetcher creates a fetcher authenticated by the given
// session token (the value of the site's "session" cookie).
func NewSessionFetcher(
	baseURL string,
	session string,
	userAgent string,
	timeout time.Duration,
	metadataSink metadata.Sink,
) SessionFetcher {
	httpClient := resty.New()
	httpClient.SetBaseURL(baseURL)
	httpClient.SetTimeout(timeout)
	httpClient.SetHeader("User-Agent", userAgent)
	httpClient.SetHeader("Accept", "text/html,text/plain;q=0.9,*/*;q=0.8")
	httpClient.SetCookie(&http.Cookie{
		Name:  "session",
		Value: session,
	})

	return SessionFetcher{
		metadataSink: metadataSink,
		httpClient:   httpClient,
	}
}

func (f *SessionFetcher) Fetch(ctx context.Context, path string) (FetchResult, failure.ClassifiedError) {
	startTime := time.Now()

	resp, err := f.httpClient.R().SetContext(ctx).Get(path)
	if err != nil {
		fetchErr := &FetchError{
			Message:   fmt.Sprintf("request failed: %v", err),
			Retryable: true,
			Cause:     ErrCauseNetworkFailure,
		}
		f.recordFetchError(path, fetchErr)
		return FetchResult{}, fetchErr
	}

	duration := time.Since(startTime)
	statusCode := resp.StatusCode()

	if fetchErr := classifyStatus(statusCode); fetchErr != nil {
		f.recordFetchError(path, fetchErr)
		return FetchResult{}, fetchErr
	}

	body := resp.String()
	contentHash, _ := hashutil.HashBytes(resp.Body(), hashutil.HashAlgoBLAKE3)

	f.metadataSink.RecordFetch(
		resp.Request.URL,
		statusCode,
		duration,
		len(body),
		contentHash,
	)

	return FetchResult{
		body: body,
		meta: ResponseMeta{
			statusCode:          statusCode,
			transferredSizeByte: len(body),
		},
	}, nil
}

// classifyStatus returns nil for successful responses.
func classifyStatus(statusCode int) *FetchError {
	switch {
	case statusCode >= 500:
		return &FetchError{
			Message:   fmt.Sprintf("server error: %d", statusCode),
			Retryable: true,
			Cause:     ErrCauseRequest5xx,
		}

	case statusCode == http.StatusNotFound:
		// the puzzle for this day is not yet open, or never exists
		return &FetchError{
			Message:   "puzzle not available (404)",
			Retryable: false,
			Cause:     ErrCausePuzzleNotFound,
		}

	case statusCode == http.StatusBadRequest:
		// the site answers 400 to a missing or expired session cookie
		return &FetchError{
			Message:   "session cookie rejected (400)",
			Retryable: false,
			Cause:     ErrCauseBadSession,
		}

	case statusCode >= 300:
		return &FetchError{
			Message:   fmt.Sprintf("unexpected status: %d", statusCode),
			Retryable: false,
			Cause:     ErrCauseRequestFailed,
		}
	}

	return nil
}

func (f *SessionFetcher) recordFetchError(path string, fetchErr *FetchError) {
	f.metadataSink.RecordError(
		time.Now(),
		"fetcher",
		"SessionFetcher.Fetch",
		mapFetchErrorToMetadataCause(fetchErr),
		fmt.Sprintf("%s: %s", path, fetchErr.Message),
	)
}
