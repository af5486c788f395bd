package storage

import (
	"context"
	"time"

	"payment-preconfirm/internal/models"
)

// CheckWriter операции записи, доступные внутри транзакции решения
type CheckWriter interface {
	// InsertCheck сохраняет запись решения; дубликат payment_id возвращает ConflictError
	InsertCheck(ctx context.Context, check *models.CheckRecord) error

	// InsertApproval сохраняет требование согласования в той же транзакции
	InsertApproval(ctx context.Context, approval *models.ApprovalRecord) error
}

// CheckRepository определяет интерфейс для работы с записями решений
type CheckRepository interface {
	// WithinTransaction выполняет fn в одной транзакции: commit при nil, rollback при ошибке
	WithinTransaction(ctx context.Context, fn func(w CheckWriter) error) error

	// GetCheckByPaymentID получает запись решения по payment_id (nil, если записи нет)
	GetCheckByPaymentID(ctx context.Context, paymentID string) (*models.CheckRecord, error)

	// ListChecks получает последние записи решений
	ListChecks(ctx context.Context, limit int) ([]*models.CheckRecord, error)

	// ClearAll удаляет все записи решений, согласований и документов
	ClearAll(ctx context.Context) error
}

// ApprovalRepository определяет интерфейс для работы с согласованиями maker/checker
type ApprovalRepository interface {
	CreateApproval(ctx context.Context, approval *models.ApprovalRecord) error

	// GetApproval получает согласование по id (nil, если записи нет)
	GetApproval(ctx context.Context, id int64) (*models.ApprovalRecord, error)

	ListApprovals(ctx context.Context, paymentID string) ([]*models.ApprovalRecord, error)

	// ResolveApproval переводит согласование из pending в конечный статус ровно один раз
	ResolveApproval(ctx context.Context, id int64, status models.ApprovalStatus, userID string, notes *string, at time.Time) (*models.ApprovalRecord, error)
}

// DocumentRepository определяет интерфейс для метаданных загруженных документов
type DocumentRepository interface {
	SaveDocument(ctx context.Context, doc *models.DocumentRecord) error
	ListDocuments(ctx context.Context, paymentID string) ([]*models.DocumentRecord, error)
}

// PreconfirmRepository объединяет все таблицы предварительной проверки
type PreconfirmRepository interface {
	CheckRepository
	ApprovalRepository
	DocumentRepository
}
