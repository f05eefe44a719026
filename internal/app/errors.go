package app

import (
	"loadtest-report/internal/shared/svcerrors"
)

const (
	errCodeInvalidConfig  = "APP_1000"
	errCodeInvalidStorage = "APP_1001"
	errCodeInvalidOptions = "APP_1002"
	errCodeReportWrite    = "APP_9000"
)

func errInvalidConfig(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(errCodeInvalidConfig, msg, cause)
}

func errInvalidStorage(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(errCodeInvalidStorage, msg, cause)
}

func errInvalidOptions(cause error) *svcerrors.ServiceError {
	return svcerrors.NewConfigurationError(errCodeInvalidOptions, "invalid ingestion options", cause)
}

func errReportWrite(runID string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewIOError(errCodeReportWrite, "cannot write report of "+runID, cause)
}
