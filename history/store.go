package history

import (
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"

	"github.com/teranos/PRX/errors"
	"github.com/teranos/PRX/logger"
)

// Store handles persistence of resolution records
type Store struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

// NewStore creates a resolution history store
func NewStore(db *sql.DB) *Store {
	return &Store{db: db, log: logger.ComponentLogger("history")}
}

const resolutionColumns = `id, prompt_name, resolved_at, duration_ms, content_bytes,
	reference_count, file_count, command_count,
	references_json, files_json, commands_json,
	had_circular, depth_exceeded, executed`

// Record inserts a resolution and fills in its assigned ID.
func (s *Store) Record(r *Resolution) error {
	if r.ResolvedAt.IsZero() {
		r.ResolvedAt = time.Now().UTC()
	}

	refsJSON, err := marshalStrings(r.References)
	if err != nil {
		return errors.Wrap(err, "failed to marshal references")
	}
	filesJSON, err := marshalStrings(r.Files)
	if err != nil {
		return errors.Wrap(err, "failed to marshal files")
	}
	commandsJSON, err := marshalStrings(r.Commands)
	if err != nil {
		return errors.Wrap(err, "failed to marshal commands")
	}

	query := `
		INSERT INTO resolutions (
			prompt_name, resolved_at, duration_ms, content_bytes,
			reference_count, file_count, command_count,
			references_json, files_json, commands_json,
			had_circular, depth_exceeded, executed
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	result, err := s.db.Exec(query,
		r.PromptName,
		r.ResolvedAt,
		r.DurationMS,
		r.ContentBytes,
		r.ReferenceCount,
		r.FileCount,
		r.CommandCount,
		refsJSON,
		filesJSON,
		commandsJSON,
		r.HadCircular,
		r.DepthExceeded,
		r.Executed,
	)
	if err != nil {
		return errors.Wrap(err, "failed to record resolution")
	}

	if id, err := result.LastInsertId(); err == nil {
		r.ID = id
	}

	s.log.Debugw("resolution recorded",
		logger.FieldPrompt, r.PromptName,
		logger.FieldDurationMS, r.DurationMS,
		logger.FieldRefs, r.ReferenceCount,
	)
	return nil
}

// Get retrieves one resolution by ID.
func (s *Store) Get(id int64) (*Resolution, error) {
	query := `SELECT ` + resolutionColumns + ` FROM resolutions WHERE id = ?`

	r, err := scanResolution(s.db.QueryRow(query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, errors.NewNotFoundf("resolution %d", id)
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to get resolution")
	}
	return r, nil
}

// List returns the most recent resolutions. A negative limit returns
// everything.
func (s *Store) List(limit int) ([]*Resolution, error) {
	query := `SELECT ` + resolutionColumns + `
		FROM resolutions
		ORDER BY resolved_at DESC, id DESC
		LIMIT ?`

	rows, err := s.db.Query(query, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list resolutions")
	}
	defer rows.Close()

	return scanResolutions(rows)
}

// ListByPrompt returns the most recent resolutions of one prompt.
func (s *Store) ListByPrompt(promptName string, limit int) ([]*Resolution, error) {
	query := `SELECT ` + resolutionColumns + `
		FROM resolutions
		WHERE prompt_name = ?
		ORDER BY resolved_at DESC, id DESC
		LIMIT ?`

	rows, err := s.db.Query(query, promptName, limit)
	if err != nil {
		return nil, errors.Wrap(err, "failed to list resolutions by prompt")
	}
	defer rows.Close()

	return scanResolutions(rows)
}

// Count returns the number of recorded resolutions.
func (s *Store) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM resolutions`).Scan(&count); err != nil {
		return 0, errors.Wrap(err, "failed to count resolutions")
	}
	return count, nil
}

// CleanupOlderThan removes resolutions older than the given duration,
// returning how many were deleted.
func (s *Store) CleanupOlderThan(olderThan time.Duration) (int, error) {
	cutoff := time.Now().UTC().Add(-olderThan)

	result, err := s.db.Exec(`DELETE FROM resolutions WHERE resolved_at < ?`, cutoff)
	if err != nil {
		return 0, errors.Wrap(err, "failed to cleanup old resolutions")
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.Wrap(err, "failed to get rows affected")
	}
	return int(rows), nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanResolution(row rowScanner) (*Resolution, error) {
	var r Resolution
	var refsJSON, filesJSON, commandsJSON string

	err := row.Scan(
		&r.ID,
		&r.PromptName,
		&r.ResolvedAt,
		&r.DurationMS,
		&r.ContentBytes,
		&r.ReferenceCount,
		&r.FileCount,
		&r.CommandCount,
		&refsJSON,
		&filesJSON,
		&commandsJSON,
		&r.HadCircular,
		&r.DepthExceeded,
		&r.Executed,
	)
	if err != nil {
		return nil, err
	}

	if err := unmarshalStrings(refsJSON, &r.References); err != nil {
		return nil, errors.Wrap(err, "failed to parse references")
	}
	if err := unmarshalStrings(filesJSON, &r.Files); err != nil {
		return nil, errors.Wrap(err, "failed to parse files")
	}
	if err := unmarshalStrings(commandsJSON, &r.Commands); err != nil {
		return nil, errors.Wrap(err, "failed to parse commands")
	}
	return &r, nil
}

func scanResolutions(rows *sql.Rows) ([]*Resolution, error) {
	var resolutions []*Resolution
	for rows.Next() {
		r, err := scanResolution(rows)
		if err != nil {
			return nil, errors.Wrap(err, "failed to scan resolution")
		}
		resolutions = append(resolutions, r)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.Wrap(err, "error iterating resolutions")
	}
	return resolutions, nil
}

func marshalStrings(list []string) (string, error) {
	if len(list) == 0 {
		return "[]", nil
	}
	data, err := json.Marshal(list)
	if err != nil {
		return "", err
	}
	return string(data), nil
}

func unmarshalStrings(raw string, dest *[]string) error {
	if raw == "" || raw == "[]" {
		return nil
	}
	return json.Unmarshal([]byte(raw), dest)
}
