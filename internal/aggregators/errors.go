package aggregators

import (
	"fmt"

	"loadtest-report/internal/shared/svcerrors"
)

// Provider errors cost the provider's contribution for one batch only.
const (
	codeProviderFailed = "AGG_9000"
	codeProviderPanic  = "AGG_9001"
)

// errProviderFailed returns an error when a report provider rejects a batch.
func errProviderFailed(provider string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewProviderError(codeProviderFailed, fmt.Sprintf("report provider %q failed to process batch", provider), cause)
}

// errProviderPanic returns an error when a report provider panics on a batch.
func errProviderPanic(provider string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewProviderError(codeProviderPanic, fmt.Sprintf("report provider %q panicked", provider), cause)
}
