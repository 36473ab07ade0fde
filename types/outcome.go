package types

import "fmt"

// Status is the terminal state of one file within a run.
type Status int

const (
	StatusSkipped   Status = iota // A required sibling file was absent.
	StatusWritten                 // One or more outputs were produced.
	StatusDeleted                 // Output produced and the source removed.
	StatusUnchanged               // Decoded, nothing to do.
	StatusMatched                 // Classifier verdict true, source copied.
	StatusFailed                  // Decode, encode or filesystem error.
)

func (s Status) String() string {
	switch s {
	case StatusSkipped:
		return "skipped"
	case StatusWritten:
		return "written"
	case StatusDeleted:
		return "deleted"
	case StatusUnchanged:
		return "unchanged"
	case StatusMatched:
		return "matched"
	case StatusFailed:
		return "failed"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// Outcome is the per-file result of an operator or classifier.
type Outcome struct {
	Status  Status
	Written []string
	Deleted []string
	Reason  string
	Err     error
}

// Operator is the shape shared by every transcoding operator and classifier.
type Operator func(path string, cfg *RunConfig) Outcome

// Skipped builds a StatusSkipped outcome.
func Skipped(reason string) Outcome {
	return Outcome{Status: StatusSkipped, Reason: reason}
}

// Unchanged builds a StatusUnchanged outcome.
func Unchanged(reason string) Outcome {
	return Outcome{Status: StatusUnchanged, Reason: reason}
}

// Failed builds a StatusFailed outcome from err.
func Failed(err error) Outcome {
	return Outcome{Status: StatusFailed, Err: err, Reason: err.Error()}
}

// Written builds a StatusWritten outcome, or StatusUnchanged when paths is empty.
func Written(paths ...string) Outcome {
	if len(paths) == 0 {
		return Unchanged("nothing to write")
	}
	return Outcome{Status: StatusWritten, Written: paths}
}
