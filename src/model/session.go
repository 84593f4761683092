package model

import (
	"database/sql"
	"errors"
	"time"
)

var ErrSessionNotFound = errors.New("wizard session not found")

// WizardSession is one persisted wizard run. The transaction and result are
// stored as JSON text so a session survives restarts without a schema change
// per field.
type WizardSession struct {
	ID              string    `json:"id"`
	TransactionJSON string    `json:"-"`
	CurrentStep     string    `json:"currentStep"`
	CompletedSteps  string    `json:"-"`
	ResultJSON      string    `json:"-"`
	CreatedAt       time.Time `json:"createdAt"`
	UpdatedAt       time.Time `json:"updatedAt"`
}

// Create inserts the session row.
func (s *WizardSession) Create(db *sql.DB) error {
	query := `
	INSERT INTO wizard_sessions (id, transaction_json, current_step, completed_steps, result_json, created_at, updated_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)`

	stmt, err := db.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	now := time.Now()
	s.CreatedAt = now
	s.UpdatedAt = now

	_, err = stmt.Exec(s.ID, s.TransactionJSON, s.CurrentStep, s.CompletedSteps, nullable(s.ResultJSON), s.CreatedAt, s.UpdatedAt)
	return err
}

// Save updates the mutable columns of an existing session row.
func (s *WizardSession) Save(db *sql.DB) error {
	query := `
	UPDATE wizard_sessions
	SET transaction_json = ?, current_step = ?, completed_steps = ?, result_json = ?, updated_at = ?
	WHERE id = ?`

	stmt, err := db.Prepare(query)
	if err != nil {
		return err
	}
	defer stmt.Close()

	s.UpdatedAt = time.Now()

	res, err := stmt.Exec(s.TransactionJSON, s.CurrentStep, s.CompletedSteps, nullable(s.ResultJSON), s.UpdatedAt, s.ID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// GetWizardSessionByID loads one session row.
func GetWizardSessionByID(db *sql.DB, id string) (*WizardSession, error) {
	query := `
	SELECT id, transaction_json, current_step, completed_steps, result_json, created_at, updated_at
	FROM wizard_sessions WHERE id = ?`

	var s WizardSession
	var resultJSON sql.NullString
	err := db.QueryRow(query, id).Scan(
		&s.ID, &s.TransactionJSON, &s.CurrentStep, &s.CompletedSteps, &resultJSON, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	s.ResultJSON = resultJSON.String
	return &s, nil
}

// DeleteWizardSession removes a session row.
func DeleteWizardSession(db *sql.DB, id string) error {
	res, err := db.Exec("DELETE FROM wizard_sessions WHERE id = ?", id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// DeleteIdleWizardSessions drops sessions untouched since the cutoff and
// returns how many were removed.
func DeleteIdleWizardSessions(db *sql.DB, cutoff time.Time) (int64, error) {
	res, err := db.Exec("DELETE FROM wizard_sessions WHERE updated_at < ?", cutoff)
	if err != nil {
		return 0, err
	}
	return res.RowsAffected()
}

func nullable(s string) any {
	if s == "" {
		return nil
	}
	return s
}
