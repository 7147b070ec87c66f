package db

import "database/sql"

// nextSubmissionID bumps the submission counter inside tx and returns
// the new value. Running inside the create transaction is what makes
// ids monotonic and never reused.
func nextSubmissionID(tx *sql.Tx) (int, error) {
	var current int
	err := tx.QueryRow("SELECT current_value FROM id_counter WHERE counter_name = 'submission_id'").Scan(&current)
	if err != nil {
		return 0, err
	}

	next := current + 1
	if _, err := tx.Exec("UPDATE id_counter SET current_value = ? WHERE counter_name = 'submission_id'", next); err != nil {
		return 0, err
	}

	return next, nil
}
