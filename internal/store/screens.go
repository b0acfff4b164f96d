package store

import (
	"database/sql"
	"errors"
	"strings"
)

// Screen is the archived output of one dump.
type Screen struct {
	Project     string
	Name        string
	SourcePath  string
	InputHash   string
	Syntax      string
	Summary     string
	Code        string
	Stats       map[string]any
	GeneratedAt string
	RunID       string
}

const screenCols = "project, name, source_path, input_hash, syntax, summary, code, stats, generated_at, run_id"

// UpsertScreen inserts or replaces a screen row. GeneratedAt defaults to now.
func (s *Store) UpsertScreen(sc *Screen) error {
	at := sc.GeneratedAt
	if at == "" {
		at = Now()
	}
	_, err := s.q.Exec(`
		INSERT INTO screens (`+screenCols+`) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(project, name) DO UPDATE SET
			source_path=excluded.source_path, input_hash=excluded.input_hash,
			syntax=excluded.syntax, summary=excluded.summary, code=excluded.code,
			stats=excluded.stats, generated_at=excluded.generated_at, run_id=excluded.run_id`,
		sc.Project, sc.Name, sc.SourcePath, sc.InputHash, sc.Syntax, sc.Summary, sc.Code,
		marshalProps(sc.Stats), at, sc.RunID)
	return err
}

// GetScreen returns one screen, or nil when it does not exist.
func (s *Store) GetScreen(project, name string) (*Screen, error) {
	row := s.q.QueryRow("SELECT "+screenCols+" FROM screens WHERE project=? AND name=?", project, name)
	return scanScreen(row)
}

// ListScreens returns the screens of a project ordered by name. A non-empty
// pattern filters names with glob syntax (* and ?).
func (s *Store) ListScreens(project, pattern string) ([]*Screen, error) {
	query := "SELECT " + screenCols + " FROM screens WHERE project=?"
	args := []any{project}
	if pattern != "" {
		query += " AND name LIKE ? ESCAPE '\\'"
		args = append(args, globToLike(pattern))
	}
	query += " ORDER BY name"
	rows, err := s.q.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var result []*Screen
	for rows.Next() {
		sc, err := scanScreen(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, sc)
	}
	return result, rows.Err()
}

// ScreenHashes returns name -> input hash for a project.
func (s *Store) ScreenHashes(project string) (map[string]string, error) {
	rows, err := s.q.Query("SELECT name, input_hash FROM screens WHERE project=?", project)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	result := make(map[string]string)
	for rows.Next() {
		var name, hash string
		if err := rows.Scan(&name, &hash); err != nil {
			return nil, err
		}
		result[name] = hash
	}
	return result, rows.Err()
}

// DeleteScreen removes one screen. It reports whether a row was deleted.
func (s *Store) DeleteScreen(project, name string) (bool, error) {
	res, err := s.q.Exec("DELETE FROM screens WHERE project=? AND name=?", project, name)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	return n > 0, err
}

// CountScreens returns the number of screens in a project.
func (s *Store) CountScreens(project string) (int, error) {
	var n int
	err := s.q.QueryRow("SELECT COUNT(*) FROM screens WHERE project=?", project).Scan(&n)
	return n, err
}

type scanner interface {
	Scan(dest ...any) error
}

func scanScreen(row scanner) (*Screen, error) {
	var sc Screen
	var stats string
	err := row.Scan(&sc.Project, &sc.Name, &sc.SourcePath, &sc.InputHash, &sc.Syntax,
		&sc.Summary, &sc.Code, &stats, &sc.GeneratedAt, &sc.RunID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	sc.Stats = unmarshalProps(stats)
	return &sc, nil
}

// globToLike converts a glob pattern to a SQL LIKE pattern. Literal % and _
// are escaped with a backslash.
func globToLike(pattern string) string {
	r := strings.NewReplacer(`\`, `\\`, "%", `\%`, "_", `\_`)
	result := r.Replace(pattern)
	result = strings.ReplaceAll(result, "**", "%")
	result = strings.ReplaceAll(result, "*", "%")
	result = strings.ReplaceAll(result, "?", "_")
	return result
}
