package cadpost

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess           = 0  // Conversion completed successfully
	ExitGeneralError      = 1  // Unknown or unclassified error
	ExitUsageError        = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic             = 3  // Internal panic (unexpected crash)
	ExitConfigError       = 10 // Invalid configuration
	ExitMissingInput      = 20 // A required input document is missing
	ExitMalformedDocument = 21 // An input document could not be parsed
	ExitOutputFailed      = 22 // The output file could not be written
)

// Fixed names of the analysis tool's output documents.
const (
	CADAssemblyFile        = "CADAssembly.xml"
	CADAssemblyMetricsFile = "CADAssembly_metrics.xml"
	ComputedValuesFile     = "ComputedValues.xml"
)

// InputFiles lists the required documents in the order they are merged.
var InputFiles = []string{
	CADAssemblyFile,
	CADAssemblyMetricsFile,
	ComputedValuesFile,
}

const (
	// DefaultOutputFile is the file name used when no output path is configured.
	DefaultOutputFile = "cad_data.json"

	// DefaultWatchDebounce is the quiet period after the last input change
	// before the watch command regenerates its output.
	DefaultWatchDebounce = 500 * time.Millisecond

	// PointSeparator splits a computed metric id into namespace and point name.
	PointSeparator = ":"

	// ArrayValueSeparator delimits the scalars of a computed ArrayValue.
	ArrayValueSeparator = ";"
)
