package domain

// ReductionEvent records how many journal files one referencing subsystem
// removed from the candidate set.
type ReductionEvent struct {
	Label   string
	Removed int
}

type SessionSummary struct {
	FullSetSize    int
	RunningCount   int
	AckCount       int
	CheckpointDone bool
	Events         []ReductionEvent
}

// Candidates is the number of journal files eligible for cleanup.
func (s SessionSummary) Candidates() int {
	return s.RunningCount - s.AckCount
}

func (s SessionSummary) TotalRemoved() int {
	total := 0
	for _, event := range s.Events {
		total += event.Removed
	}
	return total
}

// Session is one run of the gc candidates trace, from a full set line up to
// the next one or the end of the log.
type Session struct {
	fullSet        IdentifierSet
	prior          IdentifierSet
	runningCount   int
	ackCount       int
	checkpointDone bool
	events         []ReductionEvent
}

func NewSession(fullSet IdentifierSet) *Session {
	return &Session{
		fullSet:      fullSet,
		prior:        fullSet,
		runningCount: fullSet.Len(),
	}
}

// Reduce compares current against the previous set and advances the prior
// set. runningCount stays equal to |fullSet| minus everything removed so far.
func (s *Session) Reduce(label string, current IdentifierSet) ReductionEvent {
	event := ReductionEvent{
		Label:   label,
		Removed: s.prior.Len() - current.Len(),
	}

	s.runningCount -= event.Removed
	s.prior = current
	s.events = append(s.events, event)

	return event
}

func (s *Session) RecordAck() {
	s.ackCount++
}

func (s *Session) MarkCheckpointDone() {
	s.checkpointDone = true
}

func (s *Session) FullSetSize() int {
	return s.fullSet.Len()
}

func (s *Session) Summary() SessionSummary {
	events := make([]ReductionEvent, len(s.events))
	copy(events, s.events)

	return SessionSummary{
		FullSetSize:    s.fullSet.Len(),
		RunningCount:   s.runningCount,
		AckCount:       s.ackCount,
		CheckpointDone: s.checkpointDone,
		Events:         events,
	}
}
