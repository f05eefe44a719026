package decoders

import (
	"fmt"

	"loadtest-report/internal/shared/svcerrors"
)

// Decode errors. They cost one line; the file keeps being read.
const (
	codeUnknownTypeCode = "DEC_1000"
	codeMalformedLine   = "DEC_1001"
)

func errUnknownTypeCode(typeCode string) *svcerrors.ServiceError {
	return svcerrors.NewDecodeError(codeUnknownTypeCode, fmt.Sprintf("unknown type code %q", typeCode), nil)
}

func errMalformedLine(msg string, cause error) *svcerrors.ServiceError {
	return svcerrors.NewDecodeError(codeMalformedLine, msg, cause)
}
