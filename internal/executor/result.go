package executor

import (
	"fmt"
	"strings"
	"time"
)

// CountSuccessful returns the number of successful outcomes
func CountSuccessful[R any](outcomes []Outcome[R]) int {
	count := 0
	for _, o := range outcomes {
		if o.Err == nil {
			count++
		}
	}
	return count
}

// CountFailed returns the number of failed outcomes
func CountFailed[R any](outcomes []Outcome[R]) int {
	return len(outcomes) - CountSuccessful(outcomes)
}

// HasErrors returns true if any outcome failed
func HasErrors[R any](outcomes []Outcome[R]) bool {
	for _, o := range outcomes {
		if o.Err != nil {
			return true
		}
	}
	return false
}

// Values returns the values of the successful outcomes, in order
func Values[R any](outcomes []Outcome[R]) []R {
	values := make([]R, 0, len(outcomes))
	for _, o := range outcomes {
		if o.Err == nil {
			values = append(values, o.Value)
		}
	}
	return values
}

// Errors extracts the errors of the failed outcomes, in order
func Errors[R any](outcomes []Outcome[R]) []error {
	errs := make([]error, 0)
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, o.Err)
		}
	}
	return errs
}

// Summary provides a summary of a batch of outcomes
type Summary struct {
	Total       int
	Successful  int
	Failed      int
	AvgDuration time.Duration
	MaxDuration time.Duration
	MinDuration time.Duration
}

// Summarize creates a summary of the outcomes
func Summarize[R any](outcomes []Outcome[R]) Summary {
	s := Summary{
		Total:      len(outcomes),
		Successful: CountSuccessful(outcomes),
	}
	s.Failed = s.Total - s.Successful

	if len(outcomes) == 0 {
		return s
	}

	var total time.Duration
	s.MinDuration = outcomes[0].Duration
	for _, o := range outcomes {
		total += o.Duration
		if o.Duration > s.MaxDuration {
			s.MaxDuration = o.Duration
		}
		if o.Duration < s.MinDuration {
			s.MinDuration = o.Duration
		}
	}
	s.AvgDuration = total / time.Duration(len(outcomes))

	return s
}

// String returns a human-readable string representation of the summary
func (s Summary) String() string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("Total: %d, ", s.Total))
	sb.WriteString(fmt.Sprintf("Successful: %d, ", s.Successful))
	sb.WriteString(fmt.Sprintf("Failed: %d", s.Failed))

	if s.Total > 0 {
		sb.WriteString(fmt.Sprintf(", Avg: %s", s.AvgDuration.Round(time.Microsecond)))
		sb.WriteString(fmt.Sprintf(", Max: %s", s.MaxDuration.Round(time.Microsecond)))
		sb.WriteString(fmt.Sprintf(", Min: %s", s.MinDuration.Round(time.Microsecond)))
	}

	return sb.String()
}
