package ulid

import (
	"github.com/oklog/ulid/v2"
)

// NewULID generates a new ULID string.
var NewULID = func() string {
	return ulid.Make().String()
}

// NewRunID returns the identifier of one report run. Run ids sort by creation time,
// so report directories named after them list chronologically.
var NewRunID = func() string {
	return "run-" + ulid.Make().String()
}
