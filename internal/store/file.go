package store

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/arthomnix/libaoc/internal/metadata"
	"github.com/arthomnix/libaoc/pkg/failure"
)

// On-disk layout, rooted at <dir>/libaoc:
//
//	<dir>/libaoc/<year>/<day>.txt                   puzzle inputs
//	<dir>/libaoc/examples/<year>/<day>_<part>.html  raw puzzle pages
//	<dir>/libaoc/throttle_timestamp                 fractional seconds since epoch
//
// Writes overwrite; nothing is ever evicted here.

const subdirName = "libaoc"

// Compile-time interface checks
var _ Provider = (*FileProvider)(nil)
var _ Provider = (*MemoryProvider)(nil)

type FileProvider struct {
	dir  string
	sink metadata.Sink
}

// NewFileProvider creates a file-backed store rooted at dir
// (typically the user cache directory).
func NewFileProvider(dir string, sink metadata.Sink) *FileProvider {
	return &FileProvider{
		dir:  dir,
		sink: sink,
	}
}

func (p *FileProvider) inputPath(key InputKey) string {
	return filepath.Join(p.dir, subdirName, strconv.Itoa(key.Year), strconv.Itoa(key.Day)+".txt")
}

func (p *FileProvider) examplePath(key ExampleKey) string {
	name := strconv.Itoa(key.Day) + "_" + strconv.Itoa(key.Part) + ".html"
	return filepath.Join(p.dir, subdirName, "examples", strconv.Itoa(key.Year), name)
}

func (p *FileProvider) timestampPath() string {
	return filepath.Join(p.dir, subdirName, "throttle_timestamp")
}

func (p *FileProvider) LoadInput(key InputKey) (string, bool) {
	return readTextFile(p.inputPath(key))
}

func (p *FileProvider) SaveInput(key InputKey, text string) failure.ClassifiedError {
	return p.writeTextFile(p.inputPath(key), text)
}

func (p *FileProvider) LoadExample(key ExampleKey) (string, bool) {
	return readTextFile(p.examplePath(key))
}

func (p *FileProvider) SaveExample(key ExampleKey, html string) failure.ClassifiedError {
	return p.writeTextFile(p.examplePath(key), html)
}

func (p *FileProvider) LoadThrottleTimestamp() (time.Time, bool) {
	raw, ok := readTextFile(p.timestampPath())
	if !ok {
		return time.Time{}, false
	}
	secs, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return time.Time{}, false
	}
	return time.Unix(0, int64(secs*float64(time.Second))), true
}

func (p *FileProvider) SaveThrottleTimestamp(ts time.Time) failure.ClassifiedError {
	secs := float64(ts.UnixNano()) / float64(time.Second)
	raw := strconv.FormatFloat(secs, 'f', -1, 64)
	return p.writeTextFile(p.timestampPath(), raw)
}

func (p *FileProvider) SaveAll(
	inputs map[InputKey]string,
	examples map[ExampleKey]string,
	ts time.Time,
) failure.ClassifiedError {
	var firstErr failure.ClassifiedError

	keep := func(err failure.ClassifiedError) {
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	keep(p.SaveThrottleTimestamp(ts))
	for key, text := range inputs {
		keep(p.SaveInput(key, text))
	}
	for key, html := range examples {
		keep(p.SaveExample(key, html))
	}
	return firstErr
}

func readTextFile(path string) (string, bool) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", false
	}
	return string(raw), true
}

// writeTextFile creates the parent directory as needed, then writes the
// file. Failures are recorded through the metadata sink and returned;
// the caller decides whether they matter.
func (p *FileProvider) writeTextFile(path string, text string) failure.ClassifiedError {
	var storeErr *StoreError

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		storeErr = &StoreError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCausePathError,
			Path:      filepath.Dir(path),
		}
	} else if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		storeErr = &StoreError{
			Message:   err.Error(),
			Retryable: false,
			Cause:     ErrCauseWriteFailure,
			Path:      path,
		}
	}

	if storeErr == nil {
		return nil
	}

	p.sink.RecordError(
		time.Now(),
		"store",
		"FileProvider.writeTextFile",
		mapStoreErrorToMetadataCause(storeErr),
		storeErr.Message,
	)
	return storeErr
}
