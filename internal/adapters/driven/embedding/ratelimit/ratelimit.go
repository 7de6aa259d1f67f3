// Package ratelimit wraps an EmbeddingService with a token-bucket rate
// limiter so that bulk indexing stays under provider quotas.
package ratelimit

import (
	"context"

	"golang.org/x/time/rate"

	"github.com/sara-labs/sara-cli/internal/core/ports/driven"
)

// Config holds rate limiting configuration.
type Config struct {
	// RequestsPerSecond is the sustained rate limit.
	RequestsPerSecond float64
	// BurstSize is the maximum burst size.
	BurstSize int
}

// DefaultConfig is a conservative default for hosted embedding APIs.
// These are well below typical provider limits to avoid hitting quotas.
var DefaultConfig = Config{RequestsPerSecond: 5.0, BurstSize: 10}

// EmbeddingService decorates another EmbeddingService with rate limiting.
// Each Embed call acquires one token; EmbedBatch acquires one token per
// text so large batches pace themselves the same as sequential calls.
type EmbeddingService struct {
	inner   driven.EmbeddingService
	limiter *rate.Limiter
}

// Compile-time check that EmbeddingService implements the port.
var _ driven.EmbeddingService = (*EmbeddingService)(nil)

// Wrap decorates the given service with the default rate limit.
func Wrap(inner driven.EmbeddingService) *EmbeddingService {
	return WrapWithConfig(inner, DefaultConfig)
}

// WrapWithConfig decorates the given service with a custom rate limit.
func WrapWithConfig(inner driven.EmbeddingService, cfg Config) *EmbeddingService {
	if cfg.RequestsPerSecond <= 0 {
		cfg.RequestsPerSecond = DefaultConfig.RequestsPerSecond
	}
	if cfg.BurstSize <= 0 {
		cfg.BurstSize = DefaultConfig.BurstSize
	}

	return &EmbeddingService{
		inner:   inner,
		limiter: rate.NewLimiter(rate.Limit(cfg.RequestsPerSecond), cfg.BurstSize),
	}
}

// Embed waits for a token, then delegates to the wrapped service.
func (s *EmbeddingService) Embed(ctx context.Context, text string) ([]float32, error) {
	if err := s.limiter.Wait(ctx); err != nil {
		return nil, err
	}
	return s.inner.Embed(ctx, text)
}

// EmbedBatch waits for one token per text, then delegates.
func (s *EmbeddingService) EmbedBatch(ctx context.Context, texts []string) ([][]float32, error) {
	if len(texts) == 0 {
		return nil, nil
	}
	// Wait per text rather than WaitN: batches larger than the burst
	// size would otherwise fail outright.
	for range texts {
		if err := s.limiter.Wait(ctx); err != nil {
			return nil, err
		}
	}
	return s.inner.EmbedBatch(ctx, texts)
}

// Dimensions returns the wrapped service's embedding vector size.
func (s *EmbeddingService) Dimensions() int {
	return s.inner.Dimensions()
}

// ModelName returns the wrapped service's model name.
func (s *EmbeddingService) ModelName() string {
	return s.inner.ModelName()
}

// Ping delegates to the wrapped service without consuming a token.
func (s *EmbeddingService) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Close closes the wrapped service.
func (s *EmbeddingService) Close() error {
	return s.inner.Close()
}
