package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"time"

	"payment-preconfirm/internal/apperrors"
	"payment-preconfirm/internal/models"
)

// ResolveApproval переводит согласование из pending в approved/rejected.
// Условный UPDATE гарантирует, что из двух конкурентных решений применится только одно.
// В той же транзакции обновляется reviewer у записи решения платежа.
func (s *SQLiteStorage) ResolveApproval(
	ctx context.Context,
	id int64,
	status models.ApprovalStatus,
	userID string,
	notes *string,
	at time.Time,
) (*models.ApprovalRecord, error) {
	tx, err := s.DB.BeginTx(ctx, nil)
	if err != nil {
		return nil, apperrors.Transaction("failed to begin transaction", err)
	}
	defer func() {
		if rbErr := tx.Rollback(); rbErr != nil && !errors.Is(rbErr, sql.ErrTxDone) {
			log.Printf("Failed to roll back approval transaction: %v", rbErr)
		}
	}()

	at = at.UTC()
	// approved_at ставится только при одобрении, время любого решения хранит updated_at
	var approvedAt *time.Time
	if status == models.ApprovalApproved {
		approvedAt = &at
	}
	query := `
		UPDATE payment_approvals
		SET status = ?,
		    user_id = ?,
		    notes = ?,
		    approved_at = ?,
		    updated_at = ?
		WHERE id = ? AND status = 'pending'
	`

	res, err := tx.ExecContext(ctx, query, string(status), userID, notes, approvedAt, at, id)
	if err != nil {
		return nil, apperrors.Transaction("failed to update approval", err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return nil, apperrors.Transaction("failed to update approval", err)
	}

	approval, err := getApproval(ctx, tx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, apperrors.NotFound("approval %d not found", id)
	}
	if err != nil {
		return nil, apperrors.Transaction("failed to read approval", err)
	}
	if affected == 0 {
		return nil, apperrors.Conflict("approval already resolved", nil)
	}

	reviewer, err := encodeJSON(models.Reviewer{
		UserID:     userID,
		Role:       approval.Role,
		Status:     status,
		ReviewedAt: at,
	})
	if err != nil {
		return nil, apperrors.Transaction("failed to encode reviewer", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE preconfirm_checks SET reviewer = ?, updated_at = ? WHERE payment_id = ?`,
		reviewer, at, approval.PaymentID,
	); err != nil {
		return nil, apperrors.Transaction("failed to update check reviewer", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, apperrors.Transaction("failed to commit approval", err)
	}
	return approval, nil
}
