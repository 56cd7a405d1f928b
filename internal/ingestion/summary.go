package ingestion

// Summary reports the outcome of one ingestion batch.
//
// Attempted counts the rows that entered processing. Rows whose URL failed to
// parse never enter processing; they are listed under Dropped for feedback but
// do not count toward Attempted or Failed. Every other row ends up in exactly
// one of Succeeded or Failed, and Attempted = Succeeded + Failed.
//
// Created counts persisted application records, which can exceed Succeeded
// when a row fans out to every known user.
type Summary struct {
	Attempted int          `json:"attempted"`
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Created   int          `json:"created"`
	Failures  []RowFailure `json:"failures,omitempty"`
	Dropped   []RowFailure `json:"dropped,omitempty"`
}

func (s *Summary) recordSuccess(created int) {
	s.Attempted++
	s.Succeeded++
	s.Created += created
}

func (s *Summary) recordFailure(f RowFailure) {
	s.Attempted++
	s.Failed++
	s.Failures = append(s.Failures, f)
}

func (s *Summary) recordDropped(f RowFailure) {
	s.Dropped = append(s.Dropped, f)
}
