package sqlite

import "context"

// ClearAll удаляет все записи предварительной проверки
func (s *SQLiteStorage) ClearAll(ctx context.Context) error {
	query := `
		DELETE FROM payment_documents;
		DELETE FROM payment_approvals;
		DELETE FROM preconfirm_checks;
	`
	_, err := s.DB.ExecContext(ctx, query)
	return err
}
