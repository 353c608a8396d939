package catalog

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	"github.com/jask/artgallery/internal/gallery"
)

// Source is anything that can produce the artwork list.
type Source interface {
	Fetch(ctx context.Context) ([]gallery.Artwork, error)
}

// Result is the outcome of one fetch. Generation increases with every call to
// Fetcher.Fetch, so a consumer can tell a superseded result from the latest.
type Result struct {
	Generation uint64
	Records    []gallery.Artwork
	Err        error
}

// Fetcher allows one in-flight fetch at a time. Starting a new fetch cancels
// the previous one instead of letting the two race.
type Fetcher struct {
	source Source
	log    *logrus.Entry

	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
}

func NewFetcher(source Source, log *logrus.Entry) *Fetcher {
	return &Fetcher{source: source, log: log.WithField("component", "catalog")}
}

// Fetch cancels any in-flight fetch, then fetches synchronously.
func (f *Fetcher) Fetch(ctx context.Context) Result {
	f.mu.Lock()
	if f.cancel != nil {
		f.cancel()
	}
	f.gen++
	gen := f.gen
	ctx, cancel := context.WithCancel(ctx)
	f.cancel = cancel
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		if f.gen == gen {
			f.cancel = nil
		}
		f.mu.Unlock()
		cancel()
	}()

	log := f.log.WithField("generation", gen)
	log.Debug("fetch started")
	records, err := f.source.Fetch(ctx)
	if err != nil {
		log.WithError(err).Error("Failed to fetch catalog")
		return Result{Generation: gen, Err: err}
	}
	log.WithField("records", len(records)).Info("catalog fetched")
	return Result{Generation: gen, Records: records}
}

// Current returns the generation of the most recently started fetch.
func (f *Fetcher) Current() uint64 {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.gen
}

// Stale reports whether r was superseded by a later fetch.
func (f *Fetcher) Stale(r Result) bool {
	return r.Generation != f.Current()
}

// Cancel aborts the in-flight fetch, if any.
func (f *Fetcher) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.cancel != nil {
		f.cancel()
		f.cancel = nil
	}
}
