package geocode

import (
	"context"
	"sync"
)

type fakeGeocoder struct {
	mu    sync.Mutex
	calls int
	res   []Suggestion
	err   error
}

func (f *fakeGeocoder) Search(ctx context.Context, query string) ([]Suggestion, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	return f.res, f.err
}

func (f *fakeGeocoder) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}
