package batch

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/nicktill/tinyga/pkg/log"
	"github.com/nicktill/tinyga/pkg/sdk"
	"github.com/nicktill/tinyga/pkg/sdk/hit"
	"github.com/nicktill/tinyga/pkg/sdk/transport"
)

// mockTransport is a mock implementation of transport.Transport for testing
type mockTransport struct {
	mu      sync.Mutex
	batches [][]string
	sendErr error
	delay   time.Duration
	posts   atomic.Int32
}

func (m *mockTransport) Post(ctx context.Context, req transport.Request) (*transport.Response, error) {
	m.posts.Add(1)
	if m.delay > 0 {
		time.Sleep(m.delay)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.sendErr != nil {
		return nil, m.sendErr
	}
	m.batches = append(m.batches, strings.Split(string(req.Body), "\n"))
	return &transport.Response{StatusCode: http.StatusOK, ContentType: "image/gif"}, nil
}

func (m *mockTransport) getBatches() [][]string {
	m.mu.Lock()
	defer m.mu.Unlock()

	result := make([][]string, len(m.batches))
	copy(result, m.batches)
	return result
}

func (m *mockTransport) totalHits() int {
	m.mu.Lock()
	defer m.mu.Unlock()

	total := 0
	for _, batch := range m.batches {
		total += len(batch)
	}
	return total
}

func newClient(t testing.TB, trans transport.Transport) *sdk.Client {
	t.Helper()
	client, err := sdk.New(sdk.ClientConfig{
		TrackingID: "UA-0000-1",
		Transport:  trans,
		Logger:     log.Discard{},
	})
	require.NoError(t, err)
	return client
}

func pageview(i int) hit.Pageview {
	return hit.Pageview{Hostname: "example.com", Path: "/page", Title: strings.Repeat("x", i%5)}
}

func TestNew(t *testing.T) {
	client := newClient(t, &mockTransport{})

	batcher := New(client, Config{MaxBatchSize: 10, FlushEvery: 5 * time.Second})
	require.Equal(t, 10, batcher.config.MaxBatchSize)
	require.Equal(t, 5*time.Second, batcher.config.FlushEvery)
	require.Same(t, client, batcher.client)

	defaults := New(client, Config{MaxBatchSize: 500})
	require.Equal(t, 20, defaults.config.MaxBatchSize, "batch size is capped by the request limit")
	require.Equal(t, 5*time.Second, defaults.config.FlushEvery)
}

func TestStartStop(t *testing.T) {
	batcher := New(newClient(t, &mockTransport{}), Config{FlushEvery: 100 * time.Millisecond})

	require.NoError(t, batcher.Start(context.Background()))
	require.NoError(t, batcher.Stop())
}

func TestAddTriggersFlushWhenFull(t *testing.T) {
	trans := &mockTransport{}
	batcher := New(newClient(t, trans), Config{MaxBatchSize: 5, FlushEvery: time.Hour})
	batcher.Start(context.Background())
	defer batcher.Stop()

	for i := 0; i < 5; i++ {
		batcher.Add(pageview(i))
	}

	require.Eventually(t, func() bool { return len(trans.getBatches()) == 1 }, time.Second, 10*time.Millisecond)
	require.Len(t, trans.getBatches()[0], 5)
	require.Eventually(t, func() bool { return batcher.Len() == 0 }, time.Second, 10*time.Millisecond)
}

func TestAddMergesExtraFields(t *testing.T) {
	trans := &mockTransport{}
	batcher := New(newClient(t, trans), Config{FlushEvery: time.Hour})

	batcher.Add(pageview(0), hit.F("ul", "en-US"))
	require.NoError(t, batcher.Flush())

	batches := trans.getBatches()
	require.Len(t, batches, 1)
	require.True(t, strings.HasSuffix(batches[0][0], "&ul=en-US"))
}

func TestConcurrentAdd(t *testing.T) {
	trans := &mockTransport{delay: 5 * time.Millisecond}
	batcher := New(newClient(t, trans), Config{MaxBatchSize: 10, FlushEvery: time.Hour})
	batcher.Start(context.Background())

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				batcher.Add(pageview(id + j))
			}
		}(i)
	}
	wg.Wait()

	require.NoError(t, batcher.Stop())
	require.Equal(t, 500, trans.totalHits())
	for _, batch := range trans.getBatches() {
		require.LessOrEqual(t, len(batch), 20)
	}
	require.Eventually(t, func() bool { return !batcher.flushing.Load() }, time.Second, 10*time.Millisecond,
		"flushing flag is stuck")
}

func TestPeriodicFlush(t *testing.T) {
	trans := &mockTransport{}
	batcher := New(newClient(t, trans), Config{FlushEvery: 50 * time.Millisecond})
	batcher.Start(context.Background())
	defer batcher.Stop()

	for i := 0; i < 3; i++ {
		batcher.Add(pageview(i))
	}

	require.Eventually(t, func() bool { return trans.totalHits() == 3 }, time.Second, 10*time.Millisecond)
}

func TestStopFlushesPendingHits(t *testing.T) {
	trans := &mockTransport{}
	batcher := New(newClient(t, trans), Config{FlushEvery: time.Hour})
	batcher.Start(context.Background())

	for i := 0; i < 4; i++ {
		batcher.Add(pageview(i))
	}

	require.NoError(t, batcher.Stop())
	require.Equal(t, 4, trans.totalHits())
}

func TestContextCancellation(t *testing.T) {
	trans := &mockTransport{}
	batcher := New(newClient(t, trans), Config{FlushEvery: time.Hour})
	ctx, cancel := context.WithCancel(context.Background())
	batcher.Start(ctx)

	for i := 0; i < 3; i++ {
		batcher.Add(pageview(i))
	}
	cancel()

	done := make(chan struct{})
	go func() {
		batcher.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("Stop() hung after context cancellation")
	}
	require.Equal(t, 3, trans.totalHits())
}

func TestFlushEmpty(t *testing.T) {
	trans := &mockTransport{}
	batcher := New(newClient(t, trans), Config{})

	require.NoError(t, batcher.Flush())
	require.Empty(t, trans.getBatches())
}

func TestFlushErrorKeepsHits(t *testing.T) {
	boom := errors.New("network down")
	trans := &mockTransport{sendErr: boom}
	batcher := New(newClient(t, trans), Config{FlushEvery: time.Hour})

	batcher.Add(pageview(0))
	require.ErrorIs(t, batcher.Flush(), boom)
	require.Equal(t, 1, batcher.Len())
}

func TestAddDoesNotWaitForSlowFlush(t *testing.T) {
	trans := &mockTransport{delay: 500 * time.Millisecond}
	batcher := New(newClient(t, trans), Config{MaxBatchSize: 1, FlushEvery: time.Hour})
	batcher.Start(context.Background())

	batcher.Add(pageview(0))
	require.Eventually(t, func() bool { return trans.posts.Load() == 1 }, time.Second, time.Millisecond)

	start := time.Now()
	batcher.Add(pageview(1))
	require.Less(t, time.Since(start), 100*time.Millisecond, "Add blocked behind an in-flight flush")
	require.Equal(t, 1, batcher.Len())

	require.NoError(t, batcher.Stop())
	require.Equal(t, 2, trans.totalHits())
}

func TestFlushErrorRequeuesAheadOfNewHits(t *testing.T) {
	trans := &mockTransport{sendErr: errors.New("network down")}
	batcher := New(newClient(t, trans), Config{FlushEvery: time.Hour})

	for i := 0; i < 3; i++ {
		batcher.Add(hit.Event{Category: "c", Action: "a"}, hit.F("cd1", i))
	}
	require.Error(t, batcher.Flush())
	require.Equal(t, 3, batcher.Len())

	batcher.Add(hit.Event{Category: "c", Action: "a"}, hit.F("cd1", 3))

	trans.mu.Lock()
	trans.sendErr = nil
	trans.mu.Unlock()
	require.NoError(t, batcher.Flush())
	require.Equal(t, 0, batcher.Len())

	batches := trans.getBatches()
	require.Len(t, batches, 1)
	require.Len(t, batches[0], 4)
	for i, line := range batches[0] {
		require.True(t, strings.HasSuffix(line, fmt.Sprintf("&cd1=%d", i)), line)
	}
}

func BenchmarkAdd(b *testing.B) {
	batcher := New(newClient(b, &mockTransport{}), Config{FlushEvery: time.Second})
	batcher.Start(context.Background())
	defer batcher.Stop()

	p := pageview(1)
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		batcher.Add(p)
	}
}
