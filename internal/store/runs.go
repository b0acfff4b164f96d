package store

import (
	"database/sql"
	"errors"
)

// Run records one batch generation.
type Run struct {
	ID         string
	Project    string
	StartedAt  string
	FinishedAt string
	Generated  int
	Skipped    int
	Failed     int
}

// StartRun inserts a run row with the current start time.
func (s *Store) StartRun(id, project string) error {
	_, err := s.q.Exec("INSERT INTO runs (id, project, started_at) VALUES (?, ?, ?)", id, project, Now())
	return err
}

// FinishRun stores the outcome counts of a run.
func (s *Store) FinishRun(id string, generated, skipped, failed int) error {
	_, err := s.q.Exec("UPDATE runs SET finished_at=?, generated=?, skipped=?, failed=? WHERE id=?",
		Now(), generated, skipped, failed, id)
	return err
}

// GetRun returns a run by id, or nil when it does not exist.
func (s *Store) GetRun(id string) (*Run, error) {
	var r Run
	err := s.q.QueryRow("SELECT id, project, started_at, finished_at, generated, skipped, failed FROM runs WHERE id=?", id).
		Scan(&r.ID, &r.Project, &r.StartedAt, &r.FinishedAt, &r.Generated, &r.Skipped, &r.Failed)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &r, nil
}

// ListRuns returns the latest runs of a project, newest first.
func (s *Store) ListRuns(project string, limit int) ([]*Run, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := s.q.Query(`SELECT id, project, started_at, finished_at, generated, skipped, failed
		FROM runs WHERE project=? ORDER BY started_at DESC, rowid DESC LIMIT ?`, project, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Project, &r.StartedAt, &r.FinishedAt, &r.Generated, &r.Skipped, &r.Failed); err != nil {
			return nil, err
		}
		result = append(result, &r)
	}
	return result, rows.Err()
}
