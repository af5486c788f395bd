package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics счетчики и гистограммы конвейера предварительной проверки.
// Методы безопасны для nil-получателя.
type Metrics struct {
	// Итоговые решения по типу
	DecisionOutcome *prometheus.CounterVec

	// Сработавшие триггеры риска
	TriggerFired *prometheus.CounterVec

	// Длительность Decide от начала транзакции до коммита
	DecideLatency prometheus.Histogram

	// Ошибки записи решения: conflict, transaction, validation
	DecisionErrors *prometheus.CounterVec

	// Переходы согласований в конечный статус
	ApprovalResolved *prometheus.CounterVec

	// Загруженные документы по типу
	DocumentsStored *prometheus.CounterVec

	// Сбои побочных эффектов после коммита: kafka, redis
	SideEffectFailures *prometheus.CounterVec
}

// New регистрирует метрики в reg (prometheus.DefaultRegisterer для сервиса)
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		DecisionOutcome: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "preconfirm_decisions_total",
			Help: "Total committed pre-confirmation decisions by outcome",
		}, []string{"decision"}),

		TriggerFired: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "preconfirm_triggers_fired_total",
			Help: "Total risk triggers fired in committed decisions",
		}, []string{"trigger"}),

		DecideLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "preconfirm_decide_duration_seconds",
			Help:    "Duration of the decision pipeline including the storage transaction",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		}),

		DecisionErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "preconfirm_decision_errors_total",
			Help: "Decision attempts rejected or rolled back, by error kind",
		}, []string{"kind"}),

		ApprovalResolved: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "preconfirm_approvals_resolved_total",
			Help: "Approval records moved to a terminal status",
		}, []string{"role", "status"}),

		DocumentsStored: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "preconfirm_documents_stored_total",
			Help: "Supporting documents stored by type",
		}, []string{"type"}),

		SideEffectFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "preconfirm_post_commit_failures_total",
			Help: "Post-commit side effects that failed and were logged",
		}, []string{"target"}),
	}
}

// ObserveDecision фиксирует закоммиченное решение и его триггеры
func (m *Metrics) ObserveDecision(decision string, triggers []string, d time.Duration) {
	if m == nil {
		return
	}
	m.DecisionOutcome.WithLabelValues(decision).Inc()
	for _, trigger := range triggers {
		m.TriggerFired.WithLabelValues(trigger).Inc()
	}
	m.DecideLatency.Observe(d.Seconds())
}

func (m *Metrics) IncrementDecisionError(kind string) {
	if m != nil {
		m.DecisionErrors.WithLabelValues(kind).Inc()
	}
}

func (m *Metrics) IncrementApprovalResolved(role, status string) {
	if m != nil {
		m.ApprovalResolved.WithLabelValues(role, status).Inc()
	}
}

func (m *Metrics) IncrementDocumentStored(docType string) {
	if m != nil {
		m.DocumentsStored.WithLabelValues(docType).Inc()
	}
}

func (m *Metrics) IncrementSideEffectFailure(target string) {
	if m != nil {
		m.SideEffectFailures.WithLabelValues(target).Inc()
	}
}
