package services

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/google/uuid"

	"payment-preconfirm/internal/apperrors"
	"payment-preconfirm/internal/fraud"
	"payment-preconfirm/internal/kafka"
	"payment-preconfirm/internal/logger"
	"payment-preconfirm/internal/metrics"
	"payment-preconfirm/internal/models"
	"payment-preconfirm/internal/redis"
	"payment-preconfirm/internal/storage"
)

const (
	serviceName = "preconfirm-service"

	defaultListLimit = 100
	maxListLimit     = 500
)

// PreconfirmDeps зависимости сервиса. Producer, Cache и Metrics опциональны.
type PreconfirmDeps struct {
	Repo      storage.PreconfirmRepository
	Evaluator *fraud.TriggerEvaluator
	Resolver  *fraud.PolicyResolver
	Producer  kafka.Producer
	Cache     redis.ClientInterface
	Metrics   *metrics.Metrics
}

// PreconfirmServiceImpl реализует интерфейс PreconfirmService
type PreconfirmServiceImpl struct {
	repo      storage.PreconfirmRepository
	evaluator *fraud.TriggerEvaluator
	resolver  *fraud.PolicyResolver
	producer  kafka.Producer
	cache     redis.ClientInterface
	metrics   *metrics.Metrics
}

// NewPreconfirmService создает сервис; пустые Evaluator/Resolver заменяются значениями по умолчанию
func NewPreconfirmService(deps PreconfirmDeps) PreconfirmService {
	evaluator := deps.Evaluator
	if evaluator == nil {
		evaluator = fraud.NewTriggerEvaluator(fraud.DefaultThresholds())
	}
	resolver := deps.Resolver
	if resolver == nil {
		resolver = fraud.NewPolicyResolver()
	}

	return &PreconfirmServiceImpl{
		repo:      deps.Repo,
		evaluator: evaluator,
		resolver:  resolver,
		producer:  deps.Producer,
		cache:     deps.Cache,
		metrics:   deps.Metrics,
	}
}

// Decide выполняет конвейер решения.
// Сигнал о завершении, кэш и метрики обновляются только после успешного коммита.
func (s *PreconfirmServiceImpl) Decide(ctx context.Context, req *models.DecisionRequest, audit models.AuditInfo) (*models.DecisionOutcome, error) {
	if err := req.Validate(); err != nil {
		s.metrics.IncrementDecisionError("validation")
		return nil, err
	}

	logger.LogEvent(logger.EventDecisionRequested, serviceName, "api", map[string]interface{}{
		"payment_id": req.PaymentID,
		"user_id":    req.UserID,
		"amount":     req.Amount.Value.String(),
		"currency":   req.Amount.Currency,
	})

	started := time.Now()

	var (
		outcome   *models.DecisionOutcome
		check     *models.CheckRecord
		approvals []*models.ApprovalRecord
	)

	err := s.repo.WithinTransaction(ctx, func(w storage.CheckWriter) error {
		triggers := s.evaluator.Evaluate(req)
		outcome = s.resolver.Resolve(req, triggers)

		audit.Timestamp = time.Now().UTC()
		check = &models.CheckRecord{
			PaymentID:       req.PaymentID,
			UserID:          req.UserID,
			RiskTriggers:    triggers.Fired(),
			Answers:         req.Answers,
			CopResult:       req.CopString(),
			Decision:        outcome.Decision,
			RequiredForms:   outcome.RequiredForms,
			RequiredActions: outcome.RequiredActions,
			Messages:        outcome.Messages,
			Audit:           audit,
			CreatedAt:       audit.Timestamp,
		}
		if err := w.InsertCheck(ctx, check); err != nil {
			return err
		}

		approvals = approvals[:0]
		for _, requirement := range outcome.Approvals {
			approval := &models.ApprovalRecord{
				PaymentID: req.PaymentID,
				Role:      requirement.Role,
				Status:    models.ApprovalPending,
				CreatedAt: audit.Timestamp,
			}
			if err := w.InsertApproval(ctx, approval); err != nil {
				return err
			}
			approvals = append(approvals, approval)
		}
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrConflict) && !errors.Is(err, apperrors.ErrTransaction) {
			err = apperrors.Transaction("decision pipeline failed", err)
		}
		s.metrics.IncrementDecisionError(errorKind(err))
		return nil, err
	}

	s.afterCommit(ctx, req, check, outcome, approvals, time.Since(started))
	return outcome, nil
}

// afterCommit выполняет побочные эффекты закоммиченного решения. Ошибки только логируются.
func (s *PreconfirmServiceImpl) afterCommit(
	ctx context.Context,
	req *models.DecisionRequest,
	check *models.CheckRecord,
	outcome *models.DecisionOutcome,
	approvals []*models.ApprovalRecord,
	elapsed time.Duration,
) {
	// Запрос мог быть отменен клиентом после коммита
	ctx = context.WithoutCancel(ctx)

	s.metrics.ObserveDecision(string(outcome.Decision), check.RiskTriggers, elapsed)

	logger.LogEvent(logger.EventDecisionCommitted, serviceName, "sqlite", map[string]interface{}{
		"check_id":      check.ID,
		"payment_id":    check.PaymentID,
		"decision":      string(outcome.Decision),
		"risk_triggers": check.RiskTriggers,
	})

	for _, approval := range approvals {
		logger.LogEvent(logger.EventApprovalCreated, serviceName, "sqlite", map[string]interface{}{
			"approval_id": approval.ID,
			"payment_id":  approval.PaymentID,
			"role":        string(approval.Role),
		})
	}

	if s.producer != nil {
		event := newPreconfirmEvent(req, check, outcome)
		if err := s.producer.SendPreconfirmEvent(event); err != nil {
			log.Printf("Failed to publish preconfirm event for payment %s: %v", check.PaymentID, err)
			s.metrics.IncrementSideEffectFailure("kafka")
		} else {
			logger.LogEvent(logger.EventKafkaSent, serviceName, "kafka", map[string]interface{}{
				"event_id":   event.EventID,
				"payment_id": check.PaymentID,
				"decision":   string(outcome.Decision),
			})
		}
	}

	if s.cache != nil {
		if err := s.cache.SaveDecision(ctx, check.PaymentID, outcome); err != nil {
			log.Printf("Failed to cache decision for payment %s: %v", check.PaymentID, err)
			s.metrics.IncrementSideEffectFailure("redis")
		} else {
			logger.LogEvent(logger.EventRedisSaved, serviceName, "redis", map[string]interface{}{
				"payment_id": check.PaymentID,
			})
		}
	}
}

func newPreconfirmEvent(req *models.DecisionRequest, check *models.CheckRecord, outcome *models.DecisionOutcome) *models.KafkaPreconfirmEvent {
	return &models.KafkaPreconfirmEvent{
		EventID:   "evt_" + uuid.New().String(),
		EventType: models.EventTypePreconfirmCompleted,
		Timestamp: time.Now(),
		Data: models.KafkaPreconfirmData{
			CheckID:            check.ID,
			PaymentID:          check.PaymentID,
			UserID:             check.UserID,
			Decision:           outcome.Decision,
			RiskTriggers:       check.RiskTriggers,
			RequiredForms:      outcome.RequiredForms,
			RequiredActions:    outcome.RequiredActions,
			ApprovalsRequired:  len(outcome.Approvals),
			Amount:             req.Amount.Value.String(),
			Currency:           req.Amount.Currency,
			DestinationCountry: req.Destination.Country,
		},
	}
}

// GetCheck возвращает запись решения вместе с согласованиями и документами
func (s *PreconfirmServiceImpl) GetCheck(ctx context.Context, paymentID string) (*models.CheckDetails, error) {
	check, err := s.repo.GetCheckByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, apperrors.NotFound("no decision recorded for payment %s", paymentID)
	}

	approvals, err := s.repo.ListApprovals(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	documents, err := s.repo.ListDocuments(ctx, paymentID)
	if err != nil {
		return nil, err
	}

	return &models.CheckDetails{
		Check:     check,
		Approvals: approvals,
		Documents: documents,
	}, nil
}

// ListChecks возвращает последние записи решений (limit ограничен 1..500)
func (s *PreconfirmServiceImpl) ListChecks(ctx context.Context, limit int) ([]*models.CheckRecord, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	checks, err := s.repo.ListChecks(ctx, limit)
	if err != nil {
		return nil, err
	}
	if checks == nil {
		checks = []*models.CheckRecord{}
	}
	return checks, nil
}

// GetCachedDecision возвращает итог проверки, сначала из Redis
func (s *PreconfirmServiceImpl) GetCachedDecision(ctx context.Context, paymentID string) (*models.DecisionOutcome, error) {
	if s.cache != nil {
		outcome, err := s.cache.GetDecision(ctx, paymentID)
		if err != nil {
			log.Printf("Failed to read cached decision for payment %s: %v", paymentID, err)
		}
		if outcome != nil {
			return outcome, nil
		}
	}

	check, err := s.repo.GetCheckByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if check == nil {
		return nil, apperrors.NotFound("no decision recorded for payment %s", paymentID)
	}
	outcome := outcomeFromCheck(check)

	if s.cache != nil {
		if err := s.cache.SaveDecision(ctx, paymentID, outcome); err != nil {
			log.Printf("Failed to cache decision for payment %s: %v", paymentID, err)
		}
	}
	return outcome, nil
}

// outcomeFromCheck восстанавливает итог по записи решения.
// Согласования, добавленные или решенные позже, на итог не влияют:
// политика требует проверяющего только для require_maker_checker.
func outcomeFromCheck(check *models.CheckRecord) *models.DecisionOutcome {
	outcome := &models.DecisionOutcome{
		Decision:        check.Decision,
		RequiredForms:   nonNilStrings(check.RequiredForms),
		RequiredActions: nonNilStrings(check.RequiredActions),
		Messages:        nonNilStrings(check.Messages),
		Approvals:       []models.ApprovalRequirement{},
	}
	if check.Decision == models.DecisionRequireMakerChecker {
		outcome.Approvals = append(outcome.Approvals, models.ApprovalRequirement{
			Role:     models.RoleChecker,
			Required: true,
		})
	}
	return outcome
}

func nonNilStrings(values []string) []string {
	if values == nil {
		return []string{}
	}
	return values
}

// ClearAll очищает хранилище и кэш
func (s *PreconfirmServiceImpl) ClearAll(ctx context.Context) error {
	if err := s.repo.ClearAll(ctx); err != nil {
		return err
	}
	if s.cache != nil {
		if err := s.cache.ClearPreconfirmData(ctx); err != nil {
			log.Printf("Failed to clear Redis preconfirm data: %v", err)
		}
	}
	return nil
}

func errorKind(err error) string {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return "validation"
	case errors.Is(err, apperrors.ErrConflict):
		return "conflict"
	case errors.Is(err, apperrors.ErrNotFound):
		return "not_found"
	default:
		return "transaction"
	}
}
