package ir

// Version constants for IR schema and generator.
const (
	// IRVersion is the IR schema version.
	IRVersion = "1"

	// GeneratorVersion is the jmlgen generator version.
	GeneratorVersion = "0.1.0"
)
