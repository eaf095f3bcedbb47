package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bnema/kahadb-trace/internal/domain"
	"github.com/bnema/kahadb-trace/internal/ports"
	"github.com/rs/zerolog"
)

type AnalysisResult struct {
	Source         string
	Sessions       []domain.SessionSummary
	LinesRead      int
	MalformedLines int
}

type AnalyzerOption func(*Analyzer)

func WithLogger(logger zerolog.Logger) AnalyzerOption {
	return func(a *Analyzer) {
		a.logger = logger
	}
}

func WithMarker(marker string) AnalyzerOption {
	return func(a *Analyzer) {
		a.classifier = domain.NewClassifier(marker)
	}
}

// Analyzer reduces a gc candidates trace to per-session cleanup statistics in
// a single forward pass.
type Analyzer struct {
	classifier domain.Classifier
	reporter   ports.Reporter
	logger     zerolog.Logger
}

func NewAnalyzer(reporter ports.Reporter, opts ...AnalyzerOption) *Analyzer {
	a := &Analyzer{
		classifier: domain.NewClassifier(domain.DefaultMarker),
		reporter:   reporter,
		logger:     zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(a)
	}

	return a
}

// Analyze consumes src to the end. Malformed trace lines are skipped and
// counted; read and report failures abort the run. The caller owns src and
// is responsible for closing it.
func (a *Analyzer) Analyze(ctx context.Context, src ports.LineSource) (AnalysisResult, error) {
	if err := ctx.Err(); err != nil {
		return AnalysisResult{}, err
	}

	run := &analysisRun{
		analyzer: a,
		result:   AnalysisResult{Source: src.Name()},
	}

	for {
		line, err := src.ReadLine()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return run.result, fmt.Errorf("%w %s: %w", domain.ErrStreamRead, src.Name(), err)
		}
		run.result.LinesRead++

		if err := run.process(line); err != nil {
			var malformed *domain.MalformedLineError
			if !errors.As(err, &malformed) {
				return run.result, err
			}
			malformed.LineNumber = run.result.LinesRead
			malformed.Line = line
			run.result.MalformedLines++
			a.logger.Warn().
				Int("line", malformed.LineNumber).
				Str("reason", malformed.Reason).
				Str("text", malformed.Line).
				Msg("skipping malformed trace line")
			if err := a.reporter.MalformedLine(malformed); err != nil {
				return run.result, fmt.Errorf("report malformed line: %w", err)
			}
		}
	}

	if err := run.finalize(); err != nil {
		return run.result, err
	}

	return run.result, nil
}

type reductionStep struct {
	marker      string
	label       string
	txRange     bool
	destination bool
}

// Every step is checked against every gc candidates line; a line matching
// several markers produces several events, in this order.
var reductionSteps = []reductionStep{
	{marker: domain.AfterFirstTxMarker, label: "after first tx"},
	{marker: domain.ProducerSequenceMarker, label: domain.ProducerSequenceMarker},
	{marker: domain.AckMessageFileMapMarker, label: domain.AckMessageFileMapMarker},
	{marker: domain.TxRangeMarker, label: "tx range", txRange: true},
	{marker: domain.DestMarker, destination: true},
}

type pendingReduction struct {
	label   string
	current domain.IdentifierSet
}

type analysisRun struct {
	analyzer *Analyzer
	session  *domain.Session
	result   AnalysisResult
}

func (r *analysisRun) process(line string) error {
	kind, payload := r.analyzer.classifier.Classify(line)

	switch kind {
	case domain.LineGcCandidates:
		return r.reduce(payload)
	case domain.LineAckRetention:
		if r.session != nil {
			r.session.RecordAck()
		}
	case domain.LineCheckpointDone:
		if r.session != nil {
			r.session.MarkCheckpointDone()
		}
	}

	return nil
}

// reduce extracts everything the line carries before touching the session,
// so a malformed line leaves the session as it was.
func (r *analysisRun) reduce(payload string) error {
	var fullSet *domain.IdentifierSet
	if strings.Contains(payload, domain.FullSetMarker) {
		set, err := domain.ExtractSet(payload, false)
		if err != nil {
			return err
		}
		fullSet = &set
	}

	if fullSet == nil && r.session == nil {
		return nil
	}

	pending := make([]pendingReduction, 0, 1)
	for _, step := range reductionSteps {
		if !strings.Contains(payload, step.marker) {
			continue
		}

		current, err := domain.ExtractSet(payload, step.txRange)
		if err != nil {
			return err
		}

		label := step.label
		if step.destination {
			label, err = domain.ExtractDestination(payload)
			if err != nil {
				return err
			}
		}

		pending = append(pending, pendingReduction{label: label, current: current})
	}

	if fullSet != nil {
		if err := r.startSession(*fullSet); err != nil {
			return err
		}
	}

	for _, reduction := range pending {
		event := r.session.Reduce(reduction.label, reduction.current)
		if err := r.analyzer.reporter.ReductionEvent(event); err != nil {
			return fmt.Errorf("report reduction event: %w", err)
		}
	}

	return nil
}

func (r *analysisRun) startSession(fullSet domain.IdentifierSet) error {
	if r.session != nil {
		if err := r.finalize(); err != nil {
			return err
		}
	}

	r.session = domain.NewSession(fullSet)
	r.analyzer.logger.Debug().
		Int("line", r.result.LinesRead).
		Int("full_set", fullSet.Len()).
		Msg("trace session started")

	if err := r.analyzer.reporter.SessionStarted(fullSet.Len()); err != nil {
		return fmt.Errorf("report session start: %w", err)
	}

	return nil
}

func (r *analysisRun) finalize() error {
	if r.session == nil {
		if err := r.analyzer.reporter.FullSetMissing(); err != nil {
			return fmt.Errorf("report missing full set: %w", err)
		}
		return nil
	}

	summary := r.session.Summary()
	r.result.Sessions = append(r.result.Sessions, summary)
	r.analyzer.logger.Debug().
		Int("full_set", summary.FullSetSize).
		Int("acks", summary.AckCount).
		Int("candidates", summary.Candidates()).
		Bool("checkpoint_done", summary.CheckpointDone).
		Msg("trace session finalized")

	if err := r.analyzer.reporter.SessionSummary(summary); err != nil {
		return fmt.Errorf("report session summary: %w", err)
	}

	return nil
}
