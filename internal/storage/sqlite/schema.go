package sqlite

// initSchema инициализирует схему БД
func (s *SQLiteStorage) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS preconfirm_checks (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		payment_id TEXT UNIQUE NOT NULL,
		user_id TEXT NOT NULL,
		risk_triggers TEXT NOT NULL DEFAULT '[]',
		answers TEXT,
		cop_result TEXT,
		decision TEXT NOT NULL,
		required_forms TEXT NOT NULL DEFAULT '[]',
		required_actions TEXT NOT NULL DEFAULT '[]',
		messages TEXT NOT NULL DEFAULT '[]',
		reviewer TEXT,
		audit TEXT NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_checks_user_id ON preconfirm_checks(user_id);
	CREATE INDEX IF NOT EXISTS idx_checks_decision ON preconfirm_checks(decision);
	CREATE INDEX IF NOT EXISTS idx_checks_created_at ON preconfirm_checks(created_at);

	CREATE TABLE IF NOT EXISTS payment_approvals (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		payment_id TEXT NOT NULL,
		user_id TEXT NOT NULL DEFAULT '',
		role TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		notes TEXT,
		approved_at DATETIME,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_approvals_payment_id ON payment_approvals(payment_id);
	CREATE INDEX IF NOT EXISTS idx_approvals_status ON payment_approvals(status);

	CREATE TABLE IF NOT EXISTS payment_documents (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		payment_id TEXT NOT NULL,
		type TEXT NOT NULL,
		file_path TEXT NOT NULL,
		original_name TEXT NOT NULL,
		file_size INTEGER NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_documents_payment_id ON payment_documents(payment_id);
	`

	_, err := s.DB.Exec(query)
	return err
}
