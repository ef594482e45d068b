package batch

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"github.com/nicktill/tinyga/pkg/config"
	"github.com/nicktill/tinyga/pkg/log"
	"github.com/nicktill/tinyga/pkg/sdk"
	"github.com/nicktill/tinyga/pkg/sdk/hit"
)

// Config holds configuration for the batcher
type Config struct {
	MaxBatchSize int
	FlushEvery   time.Duration
	Logger       log.Logger
}

// Batcher shares a Client between goroutines and flushes it periodically
// or whenever MaxBatchSize hits are queued.
type Batcher struct {
	config Config
	client *sdk.Client
	mu     sync.Mutex // guards client's queue
	sendMu sync.Mutex // one sender at a time

	ctx    context.Context
	cancel context.CancelFunc
	done   chan struct{}

	flushing atomic.Bool // only one flush at a time
}

// New creates a new batcher
func New(client *sdk.Client, cfg Config) *Batcher {
	if cfg.MaxBatchSize <= 0 || cfg.MaxBatchSize > config.MaxHitsPerRequest {
		cfg.MaxBatchSize = config.DefaultMaxBatchSize
	}
	if cfg.FlushEvery <= 0 {
		cfg.FlushEvery = config.DefaultFlushEvery
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Discard{}
	}
	return &Batcher{
		config: cfg,
		client: client,
		ctx:    context.Background(),
		done:   make(chan struct{}),
	}
}

// Start starts the batcher
func (b *Batcher) Start(ctx context.Context) error {
	b.ctx, b.cancel = context.WithCancel(ctx)

	go b.flushLoop()
	return nil
}

// Add queues a hit built from p, with extra fields merged into it.
func (b *Batcher) Add(p hit.Params, extra ...hit.Field) {
	b.mu.Lock()
	b.client.Track(p).Append(extra...)
	shouldFlush := b.client.Len() >= b.config.MaxBatchSize
	b.mu.Unlock()

	if shouldFlush && b.flushing.CompareAndSwap(false, true) {
		go func() {
			b.flush()
			b.flushing.Store(false)
		}()
	}
}

// Len returns the number of hits waiting to be sent.
func (b *Batcher) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.client.Len()
}

// Flush sends all pending hits. The queue is taken under the lock and sent
// without it, so Add never waits on the network. Hits that could not be
// sent go back to the front of the queue.
func (b *Batcher) Flush() error {
	b.sendMu.Lock()
	defer b.sendMu.Unlock()

	b.mu.Lock()
	pending := b.client.Queue()
	b.client.Reset()
	b.mu.Unlock()

	if len(pending) == 0 {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.WithoutCancel(b.ctx), config.SendTimeout)
	defer cancel()

	ok := true
	for len(pending) > 0 {
		n := min(len(pending), config.MaxHitsPerRequest)
		sent, err := b.client.SendTrackers(ctx, pending[:n])
		if err != nil {
			b.mu.Lock()
			b.client.Requeue(pending)
			b.mu.Unlock()
			return err
		}
		ok = ok && sent
		pending = pending[n:]
	}

	if !ok {
		b.config.Logger.Infof("collection endpoint did not accept every hit")
	}
	return nil
}

// Stop stops the batcher
func (b *Batcher) Stop() error {
	if b.cancel != nil {
		b.cancel()
		// Wait for flush loop to finish
		<-b.done
	}

	return b.Flush()
}

func (b *Batcher) flushLoop() {
	defer close(b.done)

	ticker := time.NewTicker(b.config.FlushEvery)
	defer ticker.Stop()

	for {
		select {
		case <-b.ctx.Done():
			return
		case <-ticker.C:
			if b.flushing.CompareAndSwap(false, true) {
				b.flush()
				b.flushing.Store(false)
			}
		}
	}
}

func (b *Batcher) flush() {
	if err := b.Flush(); err != nil {
		b.config.Logger.Errorf("failed to flush hits: %v", err)
	}
}
