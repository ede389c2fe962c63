package errors

// ExitStatus is the process exit status of a listing run.
// Values are ordered by severity.
type ExitStatus int

// Exported constants.
const (
	// Success - every entry was listed
	Success ExitStatus = 0
	// MinorProblem - something could not be listed, e.g. an entry in a subdirectory
	MinorProblem ExitStatus = 1
	// SeriousTrouble - a caller argument could not be listed at all
	SeriousTrouble ExitStatus = 2
)

// SeverityFor returns the status a failure raises: failures concerning a
// caller-supplied argument are serious, everything else is minor.
func SeverityFor(callerArgument bool) ExitStatus {
	if callerArgument {
		return SeriousTrouble
	}

	return MinorProblem
}

// Raise returns the more severe of s and other. Status never decreases.
func (s ExitStatus) Raise(other ExitStatus) ExitStatus {
	if other > s {
		return other
	}

	return s
}

// String returns the string representation of ExitStatus
func (s ExitStatus) String() string {
	switch s {
	case Success:
		return "success"
	case MinorProblem:
		return "minor-problem"
	case SeriousTrouble:
		return "serious-trouble"
	default:
		return "unknown"
	}
}
