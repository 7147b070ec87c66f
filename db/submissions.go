package db

import (
	"database/sql"
	"strconv"
	"time"

	"github.com/Selaelo1/telemanBot/model"
)

const submissionColumns = `id, telegram_id, username, first_name, last_name,
	age, date_of_birth, email, status, submitted_at, processed_at, admin_notes`

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanSubmission scans one row into a Submission. Returns nil, nil
// when there is no row, so absence is an empty result, not an error.
func scanSubmission(scanner rowScanner) (*model.Submission, error) {
	var (
		sub         model.Submission
		submittedAt int64
		processedAt sql.NullInt64
	)
	err := scanner.Scan(
		&sub.ID, &sub.TelegramID, &sub.Username, &sub.FirstName, &sub.LastName,
		&sub.Age, &sub.DateOfBirth, &sub.Email, &sub.Status, &submittedAt,
		&processedAt, &sub.AdminNotes,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, err
	}

	sub.SubmittedAt = time.Unix(submittedAt, 0)
	if processedAt.Valid {
		t := time.Unix(processedAt.Int64, 0)
		sub.ProcessedAt = &t
	}
	return &sub, nil
}

// CreateSubmission stores a fresh pending record and returns it. The
// one-pending-per-user rule is the conversation engine's job; this
// layer always succeeds.
func (s *Store) CreateSubmission(n model.NewSubmission) (*model.Submission, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	id, err := nextSubmissionID(tx)
	if err != nil {
		return nil, err
	}

	now := time.Unix(time.Now().Unix(), 0)
	sub := &model.Submission{
		ID:          strconv.Itoa(id),
		TelegramID:  n.TelegramID,
		Username:    n.Username,
		FirstName:   n.FirstName,
		LastName:    n.LastName,
		Age:         n.Age,
		DateOfBirth: n.DateOfBirth,
		Email:       n.Email,
		Status:      model.StatusPending,
		SubmittedAt: now,
	}

	_, err = tx.Exec(`INSERT INTO submissions(
		id, telegram_id, username, first_name, last_name,
		age, date_of_birth, email, status, submitted_at
	) VALUES(?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		sub.ID, sub.TelegramID, sub.Username, sub.FirstName, sub.LastName,
		sub.Age, sub.DateOfBirth, sub.Email, sub.Status, sub.SubmittedAt.Unix(),
	)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return sub, nil
}

// GetSubmission retrieves a submission by id, or nil if unknown.
func (s *Store) GetSubmission(id string) (*model.Submission, error) {
	row := s.db.QueryRow(`SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)
	return scanSubmission(row)
}

// GetSubmissionByTelegramID returns the pending submission for the
// user if one exists, otherwise the most recently submitted one,
// otherwise nil. The pending-first ordering is what the engine's
// already-applied check relies on.
func (s *Store) GetSubmissionByTelegramID(telegramID string) (*model.Submission, error) {
	row := s.db.QueryRow(`SELECT `+submissionColumns+` FROM submissions
		WHERE telegram_id = ?
		ORDER BY (status = 'pending') DESC, submitted_at DESC, CAST(id AS INTEGER) DESC
		LIMIT 1`, telegramID)
	return scanSubmission(row)
}

// UpdateSubmission applies patch to the submission. A status change
// stamps processed_at with the current time, overwriting any earlier
// value. Returns nil, nil when the id is unknown.
func (s *Store) UpdateSubmission(id string, patch model.SubmissionPatch) (*model.Submission, error) {
	tx, err := s.db.Begin()
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	if patch.Status != nil {
		res, err := tx.Exec("UPDATE submissions SET status = ?, processed_at = ? WHERE id = ?",
			*patch.Status, time.Now().Unix(), id)
		if err != nil {
			return nil, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, nil
		}
	}

	if patch.AdminNotes != nil {
		res, err := tx.Exec("UPDATE submissions SET admin_notes = ? WHERE id = ?",
			*patch.AdminNotes, id)
		if err != nil {
			return nil, err
		}
		if n, _ := res.RowsAffected(); n == 0 {
			return nil, nil
		}
	}

	row := tx.QueryRow(`SELECT `+submissionColumns+` FROM submissions WHERE id = ?`, id)
	sub, err := scanSubmission(row)
	if err != nil || sub == nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return sub, nil
}

// GetAllSubmissions returns every record, newest first. Ids break ties
// between records submitted in the same second.
func (s *Store) GetAllSubmissions() ([]model.Submission, error) {
	rows, err := s.db.Query(`SELECT ` + submissionColumns + ` FROM submissions
		ORDER BY submitted_at DESC, CAST(id AS INTEGER) DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	subs := []model.Submission{}
	for rows.Next() {
		sub, err := scanSubmission(rows)
		if err != nil {
			return nil, err
		}
		subs = append(subs, *sub)
	}
	return subs, rows.Err()
}

// CountByStatus counts submissions in the given status.
func (s *Store) CountByStatus(status string) (int, error) {
	var n int
	err := s.db.QueryRow("SELECT COUNT(*) FROM submissions WHERE status = ?", status).Scan(&n)
	return n, err
}

// Stats derives the dashboard's aggregate counts in one query.
func (s *Store) Stats() (model.Stats, error) {
	var st model.Stats
	err := s.db.QueryRow(`SELECT
		COUNT(*),
		COALESCE(SUM(status = 'pending'), 0),
		COALESCE(SUM(status = 'accepted'), 0),
		COALESCE(SUM(status = 'declined'), 0)
	FROM submissions`).Scan(&st.Total, &st.Pending, &st.Accepted, &st.Declined)
	return st, err
}
