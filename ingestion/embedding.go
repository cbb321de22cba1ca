package ingestion

import (
	"context"
	"fmt"
	"sync"
)

// EmbedAll embeds texts in batches on the worker pool. Each batch writes
// into its own slot range, so out[i] is always the vector of texts[i]
// regardless of scheduling. The first failing batch cancels the rest.
func (b *Builder) EmbedAll(ctx context.Context, texts []string) ([][]float32, error) {
	out := make([][]float32, len(texts))
	if len(texts) == 0 {
		return out, nil
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	var tracker *ProgressTracker
	if b.progress != nil {
		batches := (len(texts) + b.batchSize - 1) / b.batchSize
		tracker = NewProgressTracker(b.progress, len(texts), batches, progressInterval)
		tracker.Start()
	}

	var (
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
	)
	fail := func(err error) {
		errOnce.Do(func() {
			firstErr = err
			cancel()
		})
	}

	for start := 0; start < len(texts); start += b.batchSize {
		end := min(start+b.batchSize, len(texts))
		if ctx.Err() != nil {
			break
		}

		wg.Add(1)
		err := b.pool.Submit(func() {
			defer wg.Done()
			vectors, err := b.embedBatch(ctx, start, texts[start:end], tracker)
			if err != nil {
				fail(fmt.Errorf("batch %d-%d: %w", start, end, err))
				return
			}
			copy(out[start:end], vectors)
			if tracker != nil {
				tracker.BatchDone(end - start)
			}
		})
		if err != nil {
			wg.Done()
			fail(fmt.Errorf("failed to submit embedding batch: %w", err))
			break
		}
	}
	wg.Wait()

	if firstErr == nil && ctx.Err() != nil {
		firstErr = ctx.Err()
	}
	if firstErr != nil {
		return nil, firstErr
	}
	if tracker != nil {
		tracker.Finish()
		b.logger.Debug("embedding finished", "items", len(texts), "retries", tracker.Retries(), "elapsed", tracker.Elapsed())
	}
	return out, nil
}

// embedBatch embeds the batch starting at item offset with retry. A vector
// count that disagrees with the input is not retried.
func (b *Builder) embedBatch(ctx context.Context, offset int, texts []string, tracker *ProgressTracker) ([][]float32, error) {
	var (
		vectors  [][]float32
		attempts int
	)
	err := RetryWithBackoff(ctx, func() error {
		attempts++
		if attempts > 1 {
			b.logger.Debug("retrying embedding batch", "offset", offset, "items", len(texts), "attempt", attempts)
			if tracker != nil {
				tracker.Retried()
			}
		}
		var err error
		vectors, err = b.embedder.EmbedTexts(ctx, texts)
		if err != nil {
			return err
		}
		if len(vectors) != len(texts) {
			return Permanent(fmt.Errorf("%w: expected %d, got %d", ErrEmbeddingCountMismatch, len(texts), len(vectors)))
		}
		return nil
	}, b.maxAttempts, b.retryBaseDelay)
	if err != nil {
		return nil, fmt.Errorf("embedding failed after %d of %d attempts: %w", attempts, b.maxAttempts, err)
	}
	return vectors, nil
}
