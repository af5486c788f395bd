package services

import (
	"context"

	"payment-preconfirm/internal/models"
)

// PreconfirmService определяет интерфейс конвейера предварительной проверки платежа
type PreconfirmService interface {
	// Decide вычисляет триггеры, разрешает политику и сохраняет решение в одной транзакции
	Decide(ctx context.Context, req *models.DecisionRequest, audit models.AuditInfo) (*models.DecisionOutcome, error)

	// GetCheck возвращает запись решения вместе с согласованиями и документами
	GetCheck(ctx context.Context, paymentID string) (*models.CheckDetails, error)

	// ListChecks возвращает последние записи решений
	ListChecks(ctx context.Context, limit int) ([]*models.CheckRecord, error)

	// GetCachedDecision возвращает итог из Redis, при промахе - из хранилища
	GetCachedDecision(ctx context.Context, paymentID string) (*models.DecisionOutcome, error)

	// ClearAll очищает хранилище и кэш
	ClearAll(ctx context.Context) error
}

// ApprovalService определяет интерфейс жизненного цикла согласований maker/checker
type ApprovalService interface {
	// CreateApprovalRequirement создает pending-согласование для платежа с записью решения
	CreateApprovalRequirement(ctx context.Context, paymentID string, role models.ApprovalRole) (*models.ApprovalRecord, error)

	// ResolveApproval переводит согласование в approved/rejected ровно один раз
	ResolveApproval(ctx context.Context, paymentID string, approvalID int64, outcome models.ApprovalStatus, userID, notes string) (*models.ApprovalRecord, error)

	// ListApprovals возвращает согласования платежа
	ListApprovals(ctx context.Context, paymentID string) ([]*models.ApprovalRecord, error)
}

// DocumentService определяет интерфейс приема подтверждающих документов
type DocumentService interface {
	// StoreDocument сохраняет байты в blob store и создает запись метаданных
	StoreDocument(ctx context.Context, paymentID string, docType models.DocumentType, data []byte, originalName string) (*models.DocumentRecord, error)

	// ListDocuments возвращает документы платежа
	ListDocuments(ctx context.Context, paymentID string) ([]*models.DocumentRecord, error)
}

// NotificationService обрабатывает сигналы о завершении проверки
type NotificationService interface {
	// HandlePreconfirmEvent обновляет счетчики и эскалирует блокировки
	HandlePreconfirmEvent(ctx context.Context, event *models.KafkaPreconfirmEvent) error

	// GetStats возвращает агрегированные счетчики решений
	GetStats(ctx context.Context) (*models.DecisionStats, error)

	// IsUserEscalated сообщает, передавался ли пользователь во фрод-команду
	IsUserEscalated(ctx context.Context, userID string) (bool, error)
}
