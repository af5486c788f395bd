package redis

import (
	"context"

	"payment-preconfirm/internal/models"
)

// ClientInterface определяет интерфейс для работы с Redis
// Это позволяет легко создавать моки для тестирования
// Реализуется типом Client
type ClientInterface interface {
	// SaveDecision кэширует итог проверки платежа с TTL
	SaveDecision(ctx context.Context, paymentID string, outcome *models.DecisionOutcome) error

	// GetDecision получает кэшированный итог (nil, если ключ отсутствует)
	GetDecision(ctx context.Context, paymentID string) (*models.DecisionOutcome, error)

	// IncrementDecisionStats увеличивает счетчик решений данного типа
	IncrementDecisionStats(ctx context.Context, decision models.Decision) error

	// IncrementTriggerStats увеличивает счетчики сработавших триггеров
	IncrementTriggerStats(ctx context.Context, triggers []string) error

	// IncrementUserDailyCount увеличивает счетчик проверок пользователя за день
	IncrementUserDailyCount(ctx context.Context, userID string) (int64, error)

	// MarkEscalated добавляет пользователя в множество переданных во фрод-команду
	MarkEscalated(ctx context.Context, userID string) error

	// IsEscalated проверяет, передавался ли пользователь во фрод-команду
	IsEscalated(ctx context.Context, userID string) (bool, error)

	// GetDecisionStats возвращает агрегированные счетчики
	GetDecisionStats(ctx context.Context) (*models.DecisionStats, error)

	// ClearPreconfirmData очищает кэш решений и счетчики
	ClearPreconfirmData(ctx context.Context) error

	// Close закрывает соединение с Redis
	Close() error
}

// Убеждаемся, что Client реализует ClientInterface
var _ ClientInterface = (*Client)(nil)
