// Package cascade orders extraction strategies by cost and runs them until
// one succeeds.
package cascade

import (
	"context"
	"errors"
	"log"

	"github.com/Koipioy/forkcast-backend/internal/classify"
	"github.com/Koipioy/forkcast-backend/internal/media"
)

// Strategy is one way of turning a page URL into an extraction outcome.
// A strategy that finds nothing usable returns an error; the controller
// decides whether another strategy gets a turn.
type Strategy interface {
	Name() string
	Extract(ctx context.Context, pageURL string) (*media.Outcome, error)
}

// Failure is the classified terminal result when every strategy failed.
// Status and Message are stable and client-facing; Cause is the last
// strategy's raw error, kept for logs.
type Failure struct {
	Status  int
	Message string
	Cause   error
}

// Controller runs a fixed, ordered strategy list. It holds no per-request
// state; one instance serves all requests.
type Controller struct {
	strategies []Strategy
}

// New creates a Controller over the given strategies. Order is execution
// order; wrapping a strategy (e.g. with an admission limit) is the caller's
// choice.
func New(strategies ...Strategy) *Controller {
	return &Controller{strategies: strategies}
}

// Run tries each strategy once, in order. The first success wins and
// earlier failures never surface. When all strategies fail, the last
// failure is classified exactly once and returned as a Failure.
func (c *Controller) Run(ctx context.Context, pageURL string) (*media.Outcome, *Failure) {
	var lastErr error

	for _, s := range c.strategies {
		outcome, err := s.Extract(ctx, pageURL)
		if err != nil {
			log.Printf("strategy %s failed for %s: %v", s.Name(), pageURL, err)
			lastErr = err
			continue
		}
		if outcome.Title == "" {
			outcome.Title = "Unknown"
		}
		log.Printf("strategy %s succeeded for %s", s.Name(), pageURL)
		return outcome, nil
	}

	if lastErr == nil {
		lastErr = errors.New("no extraction strategies configured")
	}
	classified := classify.Error(lastErr)
	return nil, &Failure{
		Status:  classified.Status,
		Message: classified.Message,
		Cause:   lastErr,
	}
}
