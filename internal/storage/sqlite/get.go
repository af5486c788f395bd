package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"payment-preconfirm/internal/models"
)

const checkColumnsSQL = `
	id, payment_id, user_id, risk_triggers, answers, cop_result, decision,
	required_forms, required_actions, messages, reviewer, audit, created_at, updated_at
`

const approvalColumnsSQL = `
	id, payment_id, user_id, role, status, notes, approved_at, created_at, updated_at
`

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// GetCheckByPaymentID получает запись решения по payment_id
func (s *SQLiteStorage) GetCheckByPaymentID(ctx context.Context, paymentID string) (*models.CheckRecord, error) {
	query := `SELECT ` + checkColumnsSQL + ` FROM preconfirm_checks WHERE payment_id = ?`

	var check *models.CheckRecord
	err := retryOperation(func() error {
		var scanErr error
		check, scanErr = scanCheck(s.DB.QueryRowContext(ctx, query, paymentID))
		return scanErr
	}, readRetries, readRetryDelay)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return check, nil
}

// ListChecks получает последние записи решений
func (s *SQLiteStorage) ListChecks(ctx context.Context, limit int) ([]*models.CheckRecord, error) {
	query := `SELECT ` + checkColumnsSQL + ` FROM preconfirm_checks ORDER BY created_at DESC, id DESC LIMIT ?`

	var checks []*models.CheckRecord
	err := retryOperation(func() error {
		rows, err := s.DB.QueryContext(ctx, query, limit)
		if err != nil {
			return err
		}
		defer rows.Close()

		checks = checks[:0]
		for rows.Next() {
			check, err := scanCheck(rows)
			if err != nil {
				return err
			}
			checks = append(checks, check)
		}
		return rows.Err()
	}, readRetries, readRetryDelay)
	if err != nil {
		return nil, err
	}
	return checks, nil
}

// GetApproval получает согласование по id
func (s *SQLiteStorage) GetApproval(ctx context.Context, id int64) (*models.ApprovalRecord, error) {
	approval, err := getApproval(ctx, s.DB, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return approval, nil
}

// ListApprovals получает согласования по платежу в порядке создания
func (s *SQLiteStorage) ListApprovals(ctx context.Context, paymentID string) ([]*models.ApprovalRecord, error) {
	query := `SELECT ` + approvalColumnsSQL + ` FROM payment_approvals WHERE payment_id = ? ORDER BY id ASC`

	rows, err := s.DB.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	approvals := []*models.ApprovalRecord{}
	for rows.Next() {
		approval, err := scanApproval(rows)
		if err != nil {
			return nil, err
		}
		approvals = append(approvals, approval)
	}
	return approvals, rows.Err()
}

// ListDocuments получает метаданные документов по платежу в порядке загрузки
func (s *SQLiteStorage) ListDocuments(ctx context.Context, paymentID string) ([]*models.DocumentRecord, error) {
	query := `
		SELECT id, payment_id, type, file_path, original_name, file_size, created_at
		FROM payment_documents
		WHERE payment_id = ?
		ORDER BY id ASC
	`

	rows, err := s.DB.QueryContext(ctx, query, paymentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	documents := []*models.DocumentRecord{}
	for rows.Next() {
		var (
			doc     models.DocumentRecord
			docType string
		)
		if err := rows.Scan(&doc.ID, &doc.PaymentID, &docType, &doc.FilePath, &doc.OriginalName, &doc.FileSize, &doc.CreatedAt); err != nil {
			return nil, err
		}
		doc.Type = models.DocumentType(docType)
		documents = append(documents, &doc)
	}
	return documents, rows.Err()
}

func getApproval(ctx context.Context, q queryer, id int64) (*models.ApprovalRecord, error) {
	query := `SELECT ` + approvalColumnsSQL + ` FROM payment_approvals WHERE id = ?`
	return scanApproval(q.QueryRowContext(ctx, query, id))
}

func scanCheck(row rowScanner) (*models.CheckRecord, error) {
	var (
		check                                       models.CheckRecord
		decision                                    string
		triggers, answers, forms, actions, messages sql.NullString
		reviewer, audit, copResult                  sql.NullString
	)

	err := row.Scan(
		&check.ID, &check.PaymentID, &check.UserID, &triggers, &answers, &copResult, &decision,
		&forms, &actions, &messages, &reviewer, &audit, &check.CreatedAt, &check.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	check.Decision = models.Decision(decision)
	if copResult.Valid {
		value := copResult.String
		check.CopResult = &value
	}

	check.RiskTriggers = []string{}
	check.RequiredForms = []string{}
	check.RequiredActions = []string{}
	check.Messages = []string{}
	for _, column := range []struct {
		raw  sql.NullString
		dest interface{}
	}{
		{triggers, &check.RiskTriggers},
		{answers, &check.Answers},
		{forms, &check.RequiredForms},
		{actions, &check.RequiredActions},
		{messages, &check.Messages},
		{audit, &check.Audit},
	} {
		if err := decodeJSON(column.raw, column.dest); err != nil {
			return nil, err
		}
	}

	if reviewer.Valid && reviewer.String != "" {
		var r models.Reviewer
		if err := decodeJSON(reviewer, &r); err != nil {
			return nil, err
		}
		check.Reviewer = &r
	}

	return &check, nil
}

func scanApproval(row rowScanner) (*models.ApprovalRecord, error) {
	var (
		approval     models.ApprovalRecord
		role, status string
		notes        sql.NullString
		approvedAt   sql.NullTime
	)

	err := row.Scan(
		&approval.ID, &approval.PaymentID, &approval.UserID, &role, &status,
		&notes, &approvedAt, &approval.CreatedAt, &approval.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	approval.Role = models.ApprovalRole(role)
	approval.Status = models.ApprovalStatus(status)
	if notes.Valid {
		value := notes.String
		approval.Notes = &value
	}
	if approvedAt.Valid {
		t := approvedAt.Time.In(time.UTC)
		approval.ApprovedAt = &t
	}
	return &approval, nil
}
