package ports

import "github.com/bnema/kahadb-trace/internal/domain"

type Reporter interface {
	SessionStarted(fullSetSize int) error
	ReductionEvent(event domain.ReductionEvent) error
	SessionSummary(summary domain.SessionSummary) error
	FullSetMissing() error
	MalformedLine(err *domain.MalformedLineError) error
}
