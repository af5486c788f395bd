package services

import (
	"context"
	"fmt"

	"payment-preconfirm/internal/apperrors"
	"payment-preconfirm/internal/logger"
	"payment-preconfirm/internal/models"
	"payment-preconfirm/internal/redis"
)

const notificationServiceName = "notification-service"

// NotificationServiceImpl потребитель сигнала о завершении проверки: аналитика и эскалации
type NotificationServiceImpl struct {
	redisClient redis.ClientInterface
}

func NewNotificationService(redisClient redis.ClientInterface) NotificationService {
	return &NotificationServiceImpl{redisClient: redisClient}
}

func (s *NotificationServiceImpl) HandlePreconfirmEvent(ctx context.Context, event *models.KafkaPreconfirmEvent) error {
	data := event.Data

	logger.LogEvent(logger.EventKafkaReceived, notificationServiceName, "kafka", map[string]interface{}{
		"event_id":   event.EventID,
		"payment_id": data.PaymentID,
		"decision":   string(data.Decision),
	})

	// Эскалация раньше счетчиков: сбой на счетчиках не должен терять пользователя
	if data.Decision == models.DecisionBlock {
		if err := s.redisClient.MarkEscalated(ctx, data.UserID); err != nil {
			return fmt.Errorf("failed to mark user escalated: %w", err)
		}
		logger.LogEvent(logger.EventFraudEscalated, notificationServiceName, "redis", map[string]interface{}{
			"payment_id":    data.PaymentID,
			"user_id":       data.UserID,
			"risk_triggers": data.RiskTriggers,
		})
	}

	if err := s.redisClient.IncrementDecisionStats(ctx, data.Decision); err != nil {
		return fmt.Errorf("failed to increment decision stats: %w", err)
	}
	if err := s.redisClient.IncrementTriggerStats(ctx, data.RiskTriggers); err != nil {
		return fmt.Errorf("failed to increment trigger stats: %w", err)
	}

	dailyCount, err := s.redisClient.IncrementUserDailyCount(ctx, data.UserID)
	if err != nil {
		return fmt.Errorf("failed to increment user daily count: %w", err)
	}

	logger.LogEvent(logger.EventRedisSaved, notificationServiceName, "redis", map[string]interface{}{
		"payment_id":        data.PaymentID,
		"user_daily_checks": dailyCount,
	})

	if data.Decision == models.DecisionRequireMakerChecker {
		logger.LogEvent(logger.EventApprovalCreated, notificationServiceName, "kafka", map[string]interface{}{
			"payment_id":         data.PaymentID,
			"approvals_required": data.ApprovalsRequired,
			"reminder":           true,
		})
	}

	return nil
}

func (s *NotificationServiceImpl) GetStats(ctx context.Context) (*models.DecisionStats, error) {
	return s.redisClient.GetDecisionStats(ctx)
}

// IsUserEscalated сообщает, передавался ли пользователь во фрод-команду
func (s *NotificationServiceImpl) IsUserEscalated(ctx context.Context, userID string) (bool, error) {
	if userID == "" {
		return false, apperrors.Validation("user_id is required")
	}
	return s.redisClient.IsEscalated(ctx, userID)
}
