// Package advice generates financial advice texts for health score results.
package advice

import (
	"context"
	"errors"

	"github.com/finanzas-app/backend/internal/health"
)

var (
	// ErrUnavailable is returned when the advice service is not configured
	// or cannot be reached.
	ErrUnavailable = errors.New("the advice service is currently unavailable")

	// ErrUnprocessable is returned when the advice service responds with
	// something we cannot use.
	ErrUnprocessable = errors.New("the advice service returned an unusable response")
)

// Advisor generates advice for a computed health score result.
//
// Implementations wrap external text generation services. The interface
// exists so tests can substitute a fake.
type Advisor interface {
	Advise(ctx context.Context, result health.Result) (string, error)
}
