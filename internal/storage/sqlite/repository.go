package sqlite

import (
	"payment-preconfirm/internal/storage"
)

// NewRepository создает репозиторий предварительной проверки поверх SQLite
func NewRepository(s *SQLiteStorage) storage.PreconfirmRepository {
	return s
}

var _ storage.PreconfirmRepository = (*SQLiteStorage)(nil)
