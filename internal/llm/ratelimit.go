package llm

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/time/rate"
)

// RateLimitedClient throttles calls to a wrapped client. It never retries;
// a call waits for a token or fails when ctx is done.
type RateLimitedClient struct {
	next    Client
	limiter *rate.Limiter
}

// NewRateLimitedClient allows requestsPerMinute calls per minute with a burst
// of half that. A non-positive rate returns next unchanged.
func NewRateLimitedClient(next Client, requestsPerMinute int) Client {
	if requestsPerMinute <= 0 {
		return next
	}
	burst := requestsPerMinute / 2
	if burst < 1 {
		burst = 1
	}
	return &RateLimitedClient{
		next:    next,
		limiter: rate.NewLimiter(rate.Every(time.Minute/time.Duration(requestsPerMinute)), burst),
	}
}

// GenerateFromDocument waits for the limiter, then delegates
func (c *RateLimitedClient) GenerateFromDocument(ctx context.Context, prompt string, doc Attachment, tier ModelTier) (string, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("rate limit wait: %w", err)
	}
	return c.next.GenerateFromDocument(ctx, prompt, doc, tier)
}

// Close closes the wrapped client
func (c *RateLimitedClient) Close() error {
	return c.next.Close()
}
