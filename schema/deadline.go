package schema

import (
	"context"
	"time"

	"github.com/hyandell/alexa-smarthome-validation/contracts"
)

// MaxProcessingBudget is the longest wall-clock budget a handler invocation
// may be configured with. The upstream voice service gives up after eight
// seconds; a handler allowed to run longer would appear to succeed while the
// caller has already timed out.
const MaxProcessingBudget = 7 * time.Second

// ValidateDeadline fails when the context carries no deadline or allows more
// than MaxProcessingBudget of remaining processing time. This flags a
// misconfigured entry point, not a runtime condition.
func ValidateDeadline(ctx context.Context) error {
	deadline, ok := ctx.Deadline()
	if !ok {
		return contracts.NewValidationError("Handler", "processing budget must be 7 seconds or less", "no deadline configured")
	}
	if remaining := time.Until(deadline); remaining > MaxProcessingBudget {
		return contracts.NewValidationError("Handler", "processing budget must be 7 seconds or less", remaining.String())
	}
	return nil
}
