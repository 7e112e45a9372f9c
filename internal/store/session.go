package store

import (
	"database/sql"
	"errors"
	"time"

	"github.com/google/uuid"
)

// Session represents one application run and its usage counters.
type Session struct {
	ID           string
	StartedAt    time.Time
	EndedAt      sql.NullTime
	Strokes      int
	Clears       int
	ColorChanges int
}

// SessionRepository provides access to session records.
type SessionRepository struct {
	db *sql.DB
}

// Sessions returns the session repository for this store.
func (s *Store) Sessions() *SessionRepository {
	return &SessionRepository{db: s.db}
}

// Begin inserts a new session row and returns it.
func (r *SessionRepository) Begin() (*Session, error) {
	session := &Session{
		ID:        uuid.NewString(),
		StartedAt: time.Now(),
	}

	_, err := r.db.Exec(
		`INSERT INTO sessions (id, started_at) VALUES (?, ?)`,
		session.ID, session.StartedAt,
	)
	if err != nil {
		return nil, err
	}

	return session, nil
}

// Finish records the end time and final counters for a session.
func (r *SessionRepository) Finish(id string, strokes, clears, colorChanges int) error {
	result, err := r.db.Exec(
		`UPDATE sessions SET ended_at = ?, strokes = ?, clears = ?, color_changes = ?
		 WHERE id = ?`,
		time.Now(), strokes, clears, colorChanges, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a session by its ID.
func (r *SessionRepository) GetByID(id string) (*Session, error) {
	session := &Session{}

	err := r.db.QueryRow(
		`SELECT id, started_at, ended_at, strokes, clears, color_changes
		 FROM sessions WHERE id = ?`,
		id,
	).Scan(&session.ID, &session.StartedAt, &session.EndedAt,
		&session.Strokes, &session.Clears, &session.ColorChanges)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	return session, nil
}

// List retrieves all sessions, most recent first.
func (r *SessionRepository) List() ([]*Session, error) {
	rows, err := r.db.Query(
		`SELECT id, started_at, ended_at, strokes, clears, color_changes
		 FROM sessions ORDER BY started_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var sessions []*Session
	for rows.Next() {
		session := &Session{}
		err := rows.Scan(&session.ID, &session.StartedAt, &session.EndedAt,
			&session.Strokes, &session.Clears, &session.ColorChanges)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, session)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return sessions, nil
}
