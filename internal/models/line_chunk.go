package models

// Provenance identifies the virtual user whose timer files produced a chunk.
type Provenance struct {
	AgentName    string
	TestCaseName string
	UserID       string
}

// LineChunk is a batch of raw lines from one timer file. A reader owns it
// until it is submitted; it is not modified afterwards.
type LineChunk struct {
	Lines []string
	// BaseLineNumber is the 1-based line number of Lines[0] in File.
	BaseLineNumber int
	File           string
	Provenance     Provenance
	// ClientPerformance is set for chunks of client-performance timer files,
	// whose records resolve their action names through ActionNames.
	ClientPerformance bool
	ActionNames       *ActionNameMap
}

// LineNumber returns the file line number of Lines[i].
func (c *LineChunk) LineNumber(i int) int {
	return c.BaseLineNumber + i
}
