package text

import (
	"fmt"
	"io"

	"github.com/bnema/kahadb-trace/internal/domain"
	"github.com/bnema/kahadb-trace/internal/ports"
	"github.com/charmbracelet/lipgloss"
)

const (
	acquiringFullSet   = "Acquiring Full Set..."
	analysisComplete   = "Analysis is complete"
	checkpointNotFound = "!!! Unable to determine if checkpoint is done. Please try increasing log size !!!"
)

var fullSetMissingLines = []string{
	"Unable to determine full log set",
	"Check that TRACE level logging has been enabled for org.apache.activemq.store.kahadb.MessageDatabase",
	"and that the log contains a full output from the trace logging.  In some cases you may need to increase the log size.",
}

type Options struct {
	// Concise drops reduction events that removed nothing.
	Concise bool
}

// Reporter prints analysis progress as the plain text lines downstream
// scrapers expect. The literal phrases are only guaranteed unstyled when out
// is not a terminal; on a terminal the status lines carry ANSI styling.
type Reporter struct {
	out     io.Writer
	concise bool
	styles  styles
}

var _ ports.Reporter = (*Reporter)(nil)

func NewReporter(out io.Writer, opts Options) *Reporter {
	return &Reporter{
		out:     out,
		concise: opts.Concise,
		styles:  newStyles(lipgloss.NewRenderer(out)),
	}
}

func (r *Reporter) LogFile(path string) error {
	return r.println("Using log file: " + path)
}

func (r *Reporter) SessionStarted(fullSetSize int) error {
	return r.println(
		acquiringFullSet,
		"",
		fmt.Sprintf("Full journal set: %d", fullSetSize),
	)
}

func (r *Reporter) ReductionEvent(event domain.ReductionEvent) error {
	if r.concise && event.Removed == 0 {
		return nil
	}

	return r.println(fmt.Sprintf("%d --- %s", event.Removed, event.Label))
}

func (r *Reporter) SessionSummary(summary domain.SessionSummary) error {
	lines := make([]string, 0, 5)
	if summary.AckCount > 0 {
		lines = append(lines, fmt.Sprintf("Journals containing acks: %d", summary.AckCount))
	}
	lines = append(lines, fmt.Sprintf("Candidates for cleanup: %d", summary.Candidates()), "")

	if summary.CheckpointDone {
		lines = append(lines, r.styles.complete.Render(analysisComplete))
	} else {
		lines = append(lines, r.styles.warning.Render(checkpointNotFound))
	}

	return r.println(append(lines, "")...)
}

func (r *Reporter) FullSetMissing() error {
	lines := make([]string, 0, len(fullSetMissingLines)+2)
	lines = append(lines, "")
	for _, line := range fullSetMissingLines {
		lines = append(lines, r.styles.missing.Render(line))
	}

	return r.println(append(lines, "")...)
}

// MalformedLine prints a warning for a skipped trace line. Concise mode
// drops it.
func (r *Reporter) MalformedLine(err *domain.MalformedLineError) error {
	if r.concise {
		return nil
	}

	return r.println(r.styles.warning.Render(
		fmt.Sprintf("Skipped malformed line %d: %s", err.LineNumber, err.Reason),
	))
}

func (r *Reporter) println(lines ...string) error {
	for _, line := range lines {
		if _, err := fmt.Fprintln(r.out, line); err != nil {
			return err
		}
	}
	return nil
}
