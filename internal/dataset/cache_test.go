package dataset

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"fi-dashboard/internal/domain"
)

// countingLoader serves a fixed dataset and counts reads. When gate is set,
// each read blocks until it is closed.
type countingLoader struct {
	calls atomic.Int64
	gate  chan struct{}
	err   error
}

func (l *countingLoader) Load(path string) (*domain.Dataset, error) {
	l.calls.Add(1)
	if l.gate != nil {
		<-l.gate
	}
	if l.err != nil {
		return nil, l.err
	}
	return &domain.Dataset{
		Source:  path,
		Columns: []string{"a"},
		Rows:    []domain.Row{{Line: 2, Values: []string{"1"}}},
	}, nil
}

func TestCache_HitServesWithoutReload(t *testing.T) {
	loader := &countingLoader{}
	c := NewCache(loader)

	first, err := c.Load("/data/a.csv")
	require.NoError(t, err)
	second, err := c.Load("/data/a.csv")
	require.NoError(t, err)

	assert.Equal(t, int64(1), loader.calls.Load())
	assert.Equal(t, first, second)
	assert.Equal(t, CacheStats{Entries: 1, Hits: 1, Misses: 1, Loads: 1}, c.Stats())
}

func TestCache_KeyIsResolvedPath(t *testing.T) {
	loader := &countingLoader{}
	c := NewCache(loader)

	_, err := c.Load("/data/a.csv")
	require.NoError(t, err)
	_, err = c.Load("/data/sub/../a.csv")
	require.NoError(t, err)

	assert.Equal(t, int64(1), loader.calls.Load())
	assert.Equal(t, 1, c.Len())
}

func TestCache_ReturnsIndependentCopies(t *testing.T) {
	c := NewCache(&countingLoader{})

	first, err := c.Load("/data/a.csv")
	require.NoError(t, err)
	first.Rows[0].Values[0] = "mutated"
	first.Columns[0] = "mutated"

	second, err := c.Load("/data/a.csv")
	require.NoError(t, err)
	assert.Equal(t, "1", second.Rows[0].Values[0])
	assert.Equal(t, "a", second.Columns[0])
}

func TestCache_ErrorsAreNotCached(t *testing.T) {
	loader := &countingLoader{err: domain.ErrNotFound("/data/a.csv", "dataset not found at: %s", "/data/a.csv")}
	c := NewCache(loader)

	_, err := c.Load("/data/a.csv")
	var notFound *domain.NotFoundError
	require.ErrorAs(t, err, &notFound)

	loader.err = nil
	ds, err := c.Load("/data/a.csv")
	require.NoError(t, err)
	assert.Equal(t, 1, ds.Len())
	assert.Equal(t, int64(2), loader.calls.Load())
}

func TestCache_ConcurrentMissesShareOneRead(t *testing.T) {
	loader := &countingLoader{gate: make(chan struct{})}
	c := NewCache(loader)

	const workers = 16
	var wg sync.WaitGroup
	errs := make(chan error, workers)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := c.Load("/data/a.csv")
			errs <- err
		}()
	}

	require.Eventually(t, func() bool { return loader.calls.Load() == 1 }, time.Second, time.Millisecond)
	// Give the remaining goroutines time to join the in-flight read.
	time.Sleep(20 * time.Millisecond)
	close(loader.gate)
	wg.Wait()
	close(errs)

	for err := range errs {
		assert.NoError(t, err)
	}
	assert.Equal(t, int64(1), loader.calls.Load())
}

func TestCache_InvalidateForcesReload(t *testing.T) {
	loader := &countingLoader{}
	c := NewCache(loader)

	_, err := c.Load("/data/a.csv")
	require.NoError(t, err)

	assert.True(t, c.Invalidate("/data/a.csv"))
	assert.False(t, c.Invalidate("/data/a.csv"))
	assert.Equal(t, 0, c.Len())

	_, err = c.Load("/data/a.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(2), loader.calls.Load())
}

func TestCache_InvalidateDuringLoad(t *testing.T) {
	tests := []struct {
		name        string
		invalidate  string
		wantEntries int
	}{
		{name: "other path keeps the read", invalidate: "/data/b.csv", wantEntries: 1},
		{name: "same path drops the read", invalidate: "/data/a.csv", wantEntries: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			loader := &countingLoader{gate: make(chan struct{})}
			c := NewCache(loader)

			done := make(chan error, 1)
			go func() {
				_, err := c.Load("/data/a.csv")
				done <- err
			}()
			require.Eventually(t, func() bool { return loader.calls.Load() == 1 }, time.Second, time.Millisecond)

			c.Invalidate(tt.invalidate)
			close(loader.gate)
			require.NoError(t, <-done)

			assert.Equal(t, tt.wantEntries, c.Len())
		})
	}
}

func TestCache_LoadAfterInvalidateStartsFreshRead(t *testing.T) {
	loader := &countingLoader{gate: make(chan struct{})}
	c := NewCache(loader)

	var wg sync.WaitGroup
	load := func() {
		defer wg.Done()
		_, err := c.Load("/data/a.csv")
		assert.NoError(t, err)
	}

	wg.Add(1)
	go load()
	require.Eventually(t, func() bool { return loader.calls.Load() == 1 }, time.Second, time.Millisecond)

	c.Invalidate("/data/a.csv")

	wg.Add(1)
	go load()
	require.Eventually(t, func() bool { return loader.calls.Load() == 2 }, time.Second, time.Millisecond)

	close(loader.gate)
	wg.Wait()

	// The read started after the invalidation is the one kept.
	assert.Equal(t, 1, c.Len())
	_, err := c.Load("/data/a.csv")
	require.NoError(t, err)
	assert.Equal(t, int64(2), loader.calls.Load())
}

func TestCache_ClearDuringLoad(t *testing.T) {
	loader := &countingLoader{gate: make(chan struct{})}
	c := NewCache(loader)

	done := make(chan error, 1)
	go func() {
		_, err := c.Load("/data/a.csv")
		done <- err
	}()
	require.Eventually(t, func() bool { return loader.calls.Load() == 1 }, time.Second, time.Millisecond)

	c.Clear()
	close(loader.gate)
	require.NoError(t, <-done)

	assert.Equal(t, 0, c.Len())
}

func TestCache_Clear(t *testing.T) {
	loader := &countingLoader{}
	c := NewCache(loader)

	for _, p := range []string{"/data/a.csv", "/data/b.csv"} {
		_, err := c.Load(p)
		require.NoError(t, err)
	}

	assert.Equal(t, 2, c.Clear())
	assert.Equal(t, 0, c.Len())
	assert.Equal(t, 0, c.Clear())
}

func TestCache_ObservablyEquivalentToUncachedLoad(t *testing.T) {
	path := writeFile(t, "unified.csv", unifiedHeader+
		"observation,Account Ownership,ACC_OWNERSHIP,2017-01-01,35.0,high\n"+
		"observation,Account Ownership,ACC_OWNERSHIP,2021-06-01,46.0,high\n")
	c := NewCache(nil)

	fresh, err := Load(path)
	require.NoError(t, err)
	cached, err := c.Load(path)
	require.NoError(t, err)
	again, err := c.Load(path)
	require.NoError(t, err)

	for _, ds := range []*domain.Dataset{cached, again} {
		assert.Equal(t, fresh.Source, ds.Source)
		assert.Equal(t, fresh.Columns, ds.Columns)
		assert.Equal(t, fresh.Rows, ds.Rows)
		assert.Equal(t, fresh.Fingerprint, ds.Fingerprint)
	}
}

func TestCache_EmptyPath(t *testing.T) {
	c := NewCache(&countingLoader{})

	_, err := c.Load("")

	var loadErr *domain.LoadError
	require.ErrorAs(t, err, &loadErr)
	assert.False(t, errors.Is(err, errEmptyFile))
}
