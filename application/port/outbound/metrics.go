package outbound

import "time"

// Evaluation outcomes reported to InsightMetrics.
const (
	OutcomeSurfaced = "surfaced"
	OutcomeFiltered = "filtered"
	OutcomeNoSignal = "no_signal"
	OutcomeError    = "error"
	OutcomeSuccess  = "success"
)

type InsightMetrics interface {
	ObserveEvaluation(domain, outcome string)
	ObserveListing(domain string, duration time.Duration)
	ObserveCommit(operation, outcome string)
}
