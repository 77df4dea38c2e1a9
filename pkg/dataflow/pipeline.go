// Package dataflow runs channel based stages with bounded workers and retry.
package dataflow

import (
	"context"
	"sync"
	"time"
)

// Stream is a read-only channel of items.
type Stream[T any] <-chan T

// From emits items in order.
func From[T any](ctx context.Context, items ...T) Stream[T] {
	out := make(chan T, len(items))
	go func() {
		defer close(out)
		for _, item := range items {
			select {
			case <-ctx.Done():
				return
			case out <- item:
			}
		}
	}()
	return out
}

// Batch groups input into slices of at most size items. The last batch may
// be shorter.
func Batch[T any](ctx context.Context, input Stream[T], size int, opts ...Option) Stream[[]T] {
	cfg := newConfig(opts)
	if size < 1 {
		size = 1
	}

	out := make(chan []T, cfg.bufferSize)
	go func() {
		defer close(out)
		buf := make([]T, 0, size)
		flush := func() bool {
			if len(buf) == 0 {
				return true
			}
			select {
			case <-ctx.Done():
				return false
			case out <- buf:
			}
			buf = make([]T, 0, size)
			return true
		}

		for {
			select {
			case <-ctx.Done():
				return
			case item, ok := <-input:
				if !ok {
					flush()
					return
				}
				buf = append(buf, item)
				if len(buf) == size && !flush() {
					return
				}
			}
		}
	}()
	return out
}

// Chunk is From followed by Batch.
func Chunk[T any](ctx context.Context, items []T, size int) Stream[[]T] {
	return Batch(ctx, From(ctx, items...), size)
}

// ForEach runs fn for every item with the configured workers and retries.
// It blocks until input is drained and returns the first unhandled error.
// The remaining items are still processed after a failure.
func ForEach[T any](ctx context.Context, input Stream[T], fn func(context.Context, T) error, opts ...Option) error {
	cfg := newConfig(opts)

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)

	worker := func() {
		defer wg.Done()
		for {
			select {
			case <-ctx.Done():
				return
			case item, ok := <-input:
				if !ok {
					return
				}

				err := call(ctx, cfg, func() error { return fn(ctx, item) })
				if err == nil {
					continue
				}
				if cfg.errorHandler != nil && cfg.errorHandler(err) {
					continue
				}
				errOnce.Do(func() {
					firstErr = err
				})
			}
		}
	}

	wg.Add(cfg.workers)
	for i := 0; i < cfg.workers; i++ {
		go worker()
	}
	wg.Wait()

	if ctx.Err() != nil {
		return ctx.Err()
	}
	return firstErr
}

func call(ctx context.Context, cfg *config, fn func() error) error {
	err := fn()
	for attempt := 1; err != nil && attempt <= cfg.maxRetries; attempt++ {
		if cfg.backoff != nil {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(cfg.backoff(attempt)):
			}
		}
		err = fn()
	}
	return err
}
