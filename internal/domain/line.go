package domain

import "strings"

const (
	DefaultMarker = "MessageDatabase"

	gcCandidatesPhrase   = "gc candidates"
	ackRetentionPhrase   = "not removing data file"
	checkpointDonePhrase = "Checkpoint done."
)

// Sub-markers found in the payload of a gc candidates line.
const (
	FullSetMarker           = "set:"
	AfterFirstTxMarker      = "after first tx:"
	ProducerSequenceMarker  = "producerSequenceIdTrackerLocation"
	AckMessageFileMapMarker = "ackMessageFileMapLocation"
	TxRangeMarker           = "tx range"
	DestMarker              = "dest"
)

type LineKind int

const (
	LineIrrelevant LineKind = iota
	LineGcCandidates
	LineAckRetention
	LineCheckpointDone
)

func (k LineKind) String() string {
	switch k {
	case LineGcCandidates:
		return "gc_candidates"
	case LineAckRetention:
		return "ack_retention"
	case LineCheckpointDone:
		return "checkpoint_done"
	default:
		return "irrelevant"
	}
}

// Classifier recognizes the trace lines emitted by one store subsystem.
type Classifier struct {
	marker string
}

func NewClassifier(marker string) Classifier {
	if strings.TrimSpace(marker) == "" {
		marker = DefaultMarker
	}

	return Classifier{marker: marker}
}

func (c Classifier) Marker() string {
	return c.marker
}

// Classify returns the kind of line and, for gc candidates lines, the payload
// starting at the "gc candidates" phrase. Matching is case-sensitive.
func (c Classifier) Classify(line string) (LineKind, string) {
	if !strings.Contains(line, c.marker) {
		return LineIrrelevant, ""
	}

	if idx := strings.Index(line, gcCandidatesPhrase); idx >= 0 {
		return LineGcCandidates, line[idx:]
	}
	if strings.Contains(line, ackRetentionPhrase) {
		return LineAckRetention, ""
	}
	if strings.Contains(line, checkpointDonePhrase) {
		return LineCheckpointDone, ""
	}

	return LineIrrelevant, ""
}
