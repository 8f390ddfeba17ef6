package sqlite

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/mesh-intelligence/kanban/pkg/types"
)

// taskRecord is the JSONL form of a task. Timestamps keep the storage text.
type taskRecord struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Status      string `json:"status"`
	CreatedAt   string `json:"created_at"`
	UpdatedAt   string `json:"updated_at"`
}

// ImportResult counts the outcome of ImportJSONL.
type ImportResult struct {
	Imported int `json:"imported"`
	Skipped  int `json:"skipped"`
}

// ExportJSONL writes every task to w, one JSON object per line, ordered by id.
// Returns the number of tasks written.
func (b *Backend) ExportJSONL(w io.Writer) (int, error) {
	const op = "export tasks"

	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.attached {
		return 0, types.Storage(op, types.ErrBoardDetached)
	}

	rows, err := b.db.Query("SELECT " + taskColumns + " FROM tasks ORDER BY id")
	if err != nil {
		return 0, types.Storage(op, fmt.Errorf("querying tasks: %w", err))
	}
	defer rows.Close()

	bw := bufio.NewWriter(w)
	n := 0
	for rows.Next() {
		var rec taskRecord
		if err := rows.Scan(&rec.ID, &rec.Title, &rec.Description, &rec.Status, &rec.CreatedAt, &rec.UpdatedAt); err != nil {
			return n, types.Storage(op, fmt.Errorf("scanning task: %w", err))
		}
		line, err := json.Marshal(rec)
		if err != nil {
			return n, types.Storage(op, fmt.Errorf("marshaling task %d: %w", rec.ID, err))
		}
		if _, err := bw.Write(line); err != nil {
			return n, types.Storage(op, fmt.Errorf("writing record: %w", err))
		}
		if err := bw.WriteByte('\n'); err != nil {
			return n, types.Storage(op, fmt.Errorf("writing newline: %w", err))
		}
		n++
	}
	if err := rows.Err(); err != nil {
		return n, types.Storage(op, fmt.Errorf("iterating tasks: %w", err))
	}
	if err := bw.Flush(); err != nil {
		return n, types.Storage(op, fmt.Errorf("flushing buffer: %w", err))
	}
	return n, nil
}

// ExportFile atomically writes the JSONL export to path using the temp-file,
// fsync, rename pattern.
func (b *Backend) ExportFile(path string) (int, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".jsonl-*.tmp")
	if err != nil {
		return 0, types.Storage("export tasks", fmt.Errorf("creating temp file: %w", err))
	}
	tmpName := tmp.Name()

	n, err := b.ExportJSONL(tmp)
	if err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return 0, types.Storage("export tasks", fmt.Errorf("syncing temp file: %w", err))
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return 0, types.Storage("export tasks", fmt.Errorf("closing temp file: %w", err))
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return 0, types.Storage("export tasks", fmt.Errorf("renaming temp file: %w", err))
	}
	return n, nil
}

// ImportJSONL reads tasks from r and stores them in one transaction.
// Records keep their id when it is positive, replacing any task with the
// same id; otherwise storage assigns one. Malformed lines and records with a
// blank title are skipped. Status is coerced as on creation, missing
// timestamps become now, and updated_at is raised to created_at if earlier.
// Either every accepted record is stored or none is.
func (b *Backend) ImportJSONL(r io.Reader) (ImportResult, error) {
	const op = "import tasks"
	var result ImportResult

	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.attached {
		return result, types.Storage(op, types.ErrBoardDetached)
	}

	tx, err := b.db.Begin()
	if err != nil {
		return result, types.Storage(op, fmt.Errorf("beginning transaction: %w", err))
	}
	defer tx.Rollback()

	now := b.clock()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		var rec taskRecord
		if err := json.Unmarshal([]byte(line), &rec); err != nil {
			result.Skipped++
			continue
		}
		title, err := types.NormalizeTitle(rec.Title)
		if err != nil {
			result.Skipped++
			continue
		}
		createdAt := parseTimeOr(rec.CreatedAt, now)
		updatedAt := parseTimeOr(rec.UpdatedAt, createdAt)
		if updatedAt.Before(createdAt) {
			updatedAt = createdAt
		}

		args := []any{
			title,
			types.NormalizeDescription(rec.Description),
			string(types.NormalizeCreateStatus(rec.Status)),
			formatTime(createdAt),
			formatTime(updatedAt),
		}
		if rec.ID > 0 {
			_, err = tx.Exec(`
				INSERT INTO tasks (id, title, description, status, created_at, updated_at)
				VALUES (?, ?, ?, ?, ?, ?)
				ON CONFLICT(id) DO UPDATE SET
					title = excluded.title,
					description = excluded.description,
					status = excluded.status,
					created_at = excluded.created_at,
					updated_at = excluded.updated_at`,
				append([]any{rec.ID}, args...)...)
		} else {
			_, err = tx.Exec(
				"INSERT INTO tasks (title, description, status, created_at, updated_at) VALUES (?, ?, ?, ?, ?)",
				args...)
		}
		if err != nil {
			return ImportResult{}, types.Storage(op, fmt.Errorf("storing record: %w", err))
		}
		result.Imported++
	}
	if err := scanner.Err(); err != nil {
		return ImportResult{}, types.Storage(op, fmt.Errorf("reading input: %w", err))
	}
	if err := tx.Commit(); err != nil {
		return ImportResult{}, types.Storage(op, fmt.Errorf("committing import: %w", err))
	}
	return result, nil
}

// ImportFile imports the JSONL file at path.
func (b *Backend) ImportFile(path string) (ImportResult, error) {
	f, err := os.Open(path)
	if err != nil {
		return ImportResult{}, types.Storage("import tasks", fmt.Errorf("opening %s: %w", path, err))
	}
	defer f.Close()
	return b.ImportJSONL(f)
}

func parseTimeOr(s string, fallback time.Time) time.Time {
	t, err := parseTime(s)
	if err != nil {
		return fallback
	}
	return t.UTC()
}
