package ingestors

import (
	"fmt"

	"loadtest-report/internal/shared/svcerrors"
)

const (
	codeInvalidInputDir = "ING_1000"

	codeFileReadFailed = "ING_9000"
	codeDecoderPanic   = "ING_9001"
)

// errInvalidInputDir returns an error when the results directory cannot be walked.
func errInvalidInputDir(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(codeInvalidInputDir, msg, cause)
}

// errFileReadFailed returns an error when a timer file cannot be read to the end.
func errFileReadFailed(file string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewIOError(codeFileReadFailed, fmt.Sprintf("failed to read timer file %q", file), cause)
}

// errDecoderPanic returns an error when a registered decoder panicked on a line.
func errDecoderPanic(cause error) *svcerrors.ServiceError {
	return svcerrors.NewDecodeError(codeDecoderPanic, "decoder panicked", cause)
}
