package sqlite

import (
	"context"
	"database/sql"
	"log"
	"time"

	"payment-preconfirm/internal/apperrors"
	"payment-preconfirm/internal/models"
	"payment-preconfirm/internal/storage"
)

// txWriter выполняет запись внутри открытой транзакции
type txWriter struct {
	tx *sql.Tx
}

// WithinTransaction выполняет fn в одной транзакции.
// Ошибка fn откатывает транзакцию и возвращается без изменений.
func (s *SQLiteStorage) WithinTransaction(ctx context.Context, fn func(w storage.CheckWriter) error) error {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return apperrors.Transaction("failed to begin transaction", err)
	}

	if err := fn(&txWriter{tx: tx}); err != nil {
		if rbErr := tx.Rollback(); rbErr != nil && rbErr != sql.ErrTxDone {
			log.Printf("Failed to roll back transaction: %v", rbErr)
		}
		return err
	}

	if err := tx.Commit(); err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("decision already recorded for payment", err)
		}
		return apperrors.Transaction("failed to commit transaction", err)
	}
	return nil
}

// InsertCheck сохраняет запись решения
func (w *txWriter) InsertCheck(ctx context.Context, check *models.CheckRecord) error {
	query := `
		INSERT INTO preconfirm_checks (
			payment_id, user_id, risk_triggers, answers, cop_result, decision,
			required_forms, required_actions, messages, reviewer, audit,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, NULL, ?, ?, ?)
	`

	now := time.Now().UTC()
	if check.CreatedAt.IsZero() {
		check.CreatedAt = now
	}
	check.UpdatedAt = check.CreatedAt

	columns, err := encodeCheckColumns(check)
	if err != nil {
		return apperrors.Transaction("failed to encode check record", err)
	}

	res, err := w.tx.ExecContext(
		ctx, query,
		check.PaymentID, check.UserID, columns.triggers, columns.answers, check.CopResult, string(check.Decision),
		columns.forms, columns.actions, columns.messages, columns.audit,
		check.CreatedAt, check.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.Conflict("decision already recorded for payment", err)
		}
		return apperrors.Transaction("failed to insert check record", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Transaction("failed to read check record id", err)
	}
	check.ID = id
	return nil
}

// InsertApproval сохраняет требование согласования в транзакции решения
func (w *txWriter) InsertApproval(ctx context.Context, approval *models.ApprovalRecord) error {
	if err := insertApproval(ctx, w.tx, approval); err != nil {
		return apperrors.Transaction("failed to insert approval record", err)
	}
	return nil
}

// CreateApproval сохраняет требование согласования вне транзакции решения
func (s *SQLiteStorage) CreateApproval(ctx context.Context, approval *models.ApprovalRecord) error {
	if err := insertApproval(ctx, s.DB, approval); err != nil {
		return apperrors.Transaction("failed to insert approval record", err)
	}
	return nil
}

// SaveDocument сохраняет метаданные загруженного документа
func (s *SQLiteStorage) SaveDocument(ctx context.Context, doc *models.DocumentRecord) error {
	query := `
		INSERT INTO payment_documents (payment_id, type, file_path, original_name, file_size, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`

	if doc.CreatedAt.IsZero() {
		doc.CreatedAt = time.Now().UTC()
	}

	res, err := s.DB.ExecContext(ctx, query,
		doc.PaymentID, string(doc.Type), doc.FilePath, doc.OriginalName, doc.FileSize, doc.CreatedAt,
	)
	if err != nil {
		return apperrors.Transaction("failed to insert document record", err)
	}

	id, err := res.LastInsertId()
	if err != nil {
		return apperrors.Transaction("failed to read document record id", err)
	}
	doc.ID = id
	return nil
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

func insertApproval(ctx context.Context, db execer, approval *models.ApprovalRecord) error {
	query := `
		INSERT INTO payment_approvals (payment_id, user_id, role, status, notes, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`

	if approval.Status == "" {
		approval.Status = models.ApprovalPending
	}
	if approval.CreatedAt.IsZero() {
		approval.CreatedAt = time.Now().UTC()
	}
	approval.UpdatedAt = approval.CreatedAt

	res, err := db.ExecContext(ctx, query,
		approval.PaymentID, approval.UserID, string(approval.Role), string(approval.Status),
		approval.Notes, approval.CreatedAt, approval.UpdatedAt,
	)
	if err != nil {
		return err
	}

	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	approval.ID = id
	return nil
}

type checkColumns struct {
	triggers string
	answers  string
	forms    string
	actions  string
	messages string
	audit    string
}

func encodeCheckColumns(check *models.CheckRecord) (*checkColumns, error) {
	var (
		cols checkColumns
		err  error
	)
	if cols.triggers, err = encodeJSON(nonNil(check.RiskTriggers)); err != nil {
		return nil, err
	}
	answers := check.Answers
	if answers == nil {
		answers = models.Answers{}
	}
	if cols.answers, err = encodeJSON(answers); err != nil {
		return nil, err
	}
	if cols.forms, err = encodeJSON(nonNil(check.RequiredForms)); err != nil {
		return nil, err
	}
	if cols.actions, err = encodeJSON(nonNil(check.RequiredActions)); err != nil {
		return nil, err
	}
	if cols.messages, err = encodeJSON(nonNil(check.Messages)); err != nil {
		return nil, err
	}
	if cols.audit, err = encodeJSON(check.Audit); err != nil {
		return nil, err
	}
	return &cols, nil
}
