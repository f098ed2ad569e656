package pipeline

import "time"

// Status is the result of handling one file.
type Status string

const (
	StatusSucceeded Status = "succeeded"
	StatusSkipped   Status = "skipped"
	StatusFailed    Status = "failed"
)

// Outcome records what happened to one media file.
type Outcome struct {
	Path     string
	Output   string
	Status   Status
	Err      error
	Segments int
	Elapsed  time.Duration
}

// Summary aggregates the outcomes of one run. Successful+Skipped+Failed
// equals Total unless the run was cancelled.
type Summary struct {
	RunID      string
	Dir        string
	Total      int
	Successful int
	Skipped    int
	Failed     int
	Outcomes   []Outcome
	Started    time.Time
	Finished   time.Time
}

// Processed returns how many files reached a final status.
func (s Summary) Processed() int {
	return s.Successful + s.Skipped + s.Failed
}

// Remaining returns how many discovered files were not reached.
func (s Summary) Remaining() int {
	if r := s.Total - s.Processed(); r > 0 {
		return r
	}
	return 0
}

// Elapsed is the wall time of the run.
func (s Summary) Elapsed() time.Duration {
	if s.Finished.IsZero() {
		return 0
	}
	return s.Finished.Sub(s.Started)
}

// FailedOutcomes returns the outcomes with StatusFailed in processing order.
func (s Summary) FailedOutcomes() []Outcome {
	var failed []Outcome
	for _, o := range s.Outcomes {
		if o.Status == StatusFailed {
			failed = append(failed, o)
		}
	}
	return failed
}

func (s *Summary) record(o Outcome) {
	switch o.Status {
	case StatusSucceeded:
		s.Successful++
	case StatusSkipped:
		s.Skipped++
	case StatusFailed:
		s.Failed++
	}
	s.Outcomes = append(s.Outcomes, o)
}
