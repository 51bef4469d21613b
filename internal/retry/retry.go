// Explicit retry policy applied at call sites instead of wrapping
// arbitrary functions. Exactly two operations use it: the whole
// per-site scrape, and the site-specific extraction step inside it.

package retry

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
)

type Policy struct {
	MaxAttempts int
	Delay       time.Duration
}

// ScrapePolicy wraps navigation + extraction for one site.
func ScrapePolicy() Policy { return Policy{MaxAttempts: 3, Delay: 2 * time.Second} }

// ExtractPolicy wraps the site-specific extraction step alone; it
// composes with ScrapePolicy, matching the two-layer retry design.
func ExtractPolicy() Policy { return Policy{MaxAttempts: 2, Delay: 3 * time.Second} }

// Do runs fn up to MaxAttempts times, sleeping Delay between attempts.
// The last error is returned once attempts are exhausted. Context
// cancellation cuts the backoff short.
func (p Policy) Do(ctx context.Context, log *zap.SugaredLogger, label string, fn func() error) error {
	attempts := p.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		lastErr = fn()
		if lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		log.Warnf("⚠️ %s attempt %d/%d failed: %v. Retrying in %v...", label, attempt, attempts, lastErr, p.Delay)
		select {
		case <-time.After(p.Delay):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	log.Errorf("❌ %s failed after %d attempts: %v", label, attempts, lastErr)
	return fmt.Errorf("%s failed after %d attempts: %w", label, attempts, lastErr)
}
