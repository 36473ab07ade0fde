package dispatch

import (
	"time"

	"github.com/lepinkainen/texturetool/types"
)

// Summary tracks statistics for a run
type Summary struct {
	Total    int
	Counts   map[types.Status]int
	Written  int // output files produced
	Deleted  int // source files removed
	Failures []Result
	Elapsed  time.Duration
}

// Add records one result.
func (s *Summary) Add(r Result) {
	if s.Counts == nil {
		s.Counts = make(map[types.Status]int)
	}
	s.Total++
	s.Counts[r.Outcome.Status]++
	s.Written += len(r.Outcome.Written)
	s.Deleted += len(r.Outcome.Deleted)
	if r.Outcome.Status == types.StatusFailed {
		s.Failures = append(s.Failures, r)
	}
}

// Count returns the number of files that ended in status.
func (s *Summary) Count(status types.Status) int {
	return s.Counts[status]
}
