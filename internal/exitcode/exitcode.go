// Package exitcode holds the process exit codes of schemescreen.
package exitcode

const (
	Success         = 0
	UsageError      = 1 // bad flags or config file
	ValidationError = 2 // Parquet file failed preflight
	DBConnError     = 3
	CopyError       = 4 // evaluate phase failed while writing results
	EvaluateError   = 5
	PartialSuccess  = 6 // batch completed with rejected profiles
)

// ForPhase maps a failed screening phase to its exit code.
func ForPhase(phase string) int {
	switch phase {
	case "preflight":
		return ValidationError
	case "evaluate":
		return CopyError
	default:
		return EvaluateError
	}
}
