package db

import "fmt"

// migrate creates the tables the store needs if they don't exist.
func (s *Store) migrate() error {
	const submissionsSQL = `
	CREATE TABLE IF NOT EXISTS submissions (
		id TEXT PRIMARY KEY,
		telegram_id TEXT NOT NULL,
		username TEXT NOT NULL DEFAULT '',
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		age INTEGER NOT NULL,
		date_of_birth TEXT NOT NULL,
		email TEXT NOT NULL,
		status TEXT NOT NULL DEFAULT 'pending',
		submitted_at INTEGER NOT NULL,
		processed_at INTEGER,
		admin_notes TEXT NOT NULL DEFAULT ''
	);`
	if _, err := s.db.Exec(submissionsSQL); err != nil {
		return fmt.Errorf("create submissions table: %w", err)
	}

	const indexSQL = `
	CREATE INDEX IF NOT EXISTS idx_submissions_telegram_id
	ON submissions(telegram_id);`
	if _, err := s.db.Exec(indexSQL); err != nil {
		return fmt.Errorf("create telegram_id index: %w", err)
	}

	const counterSQL = `
	CREATE TABLE IF NOT EXISTS id_counter (
		counter_name TEXT PRIMARY KEY,
		current_value INTEGER NOT NULL DEFAULT 0
	);`
	if _, err := s.db.Exec(counterSQL); err != nil {
		return fmt.Errorf("create id_counter table: %w", err)
	}

	if _, err := s.db.Exec("INSERT OR IGNORE INTO id_counter(counter_name, current_value) VALUES('submission_id', 0)"); err != nil {
		return fmt.Errorf("seed submission counter: %w", err)
	}

	return nil
}
