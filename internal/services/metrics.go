package services

import "github.com/prometheus/client_golang/prometheus"

var (
	// authOutcomes counts hand-off redemptions by result
	// (ok|missing_payload|invalid_signature|expired|daily_limit).
	authOutcomes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "survey_auth_redemptions_total",
			Help: "Signed payload redemptions by outcome.",
		},
		[]string{"result"},
	)

	// responsesCompleted counts finish calls that moved a response to completed.
	responsesCompleted = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "survey_responses_completed_total",
			Help: "Survey responses moved to the completed state.",
		},
	)

	// rehydrations counts sessions or responses rebuilt from a client snapshot.
	rehydrations = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "survey_snapshot_rehydrations_total",
			Help: "Sessions rebuilt from a client-held response snapshot.",
		},
	)

	// reportCache counts report cache lookups by scope and result (hit|miss).
	reportCache = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "report_cache_requests_total",
			Help: "Report cache lookups by scope and result.",
		},
		[]string{"scope", "result"},
	)
)

func init() {
	prometheus.MustRegister(authOutcomes, responsesCompleted, rehydrations, reportCache)
}
