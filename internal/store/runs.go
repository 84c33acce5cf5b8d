package store

import (
	"time"

	"github.com/google/uuid"
)

// Run 一次清洗运行的历史记录
type Run struct {
	ID            string    `json:"id"`
	Filename      string    `json:"filename"`
	Mode          string    `json:"mode"`
	RecordCount   int       `json:"recordCount"`
	SheetCount    int       `json:"sheetCount"`
	SkippedSheets int       `json:"skippedSheets"`
	WarningCount  int       `json:"warningCount"`
	DurationMS    int64     `json:"durationMs"`
	CreatedAt     time.Time `json:"createdAt"`
}

// InsertRun 记录一次运行，返回运行 ID
func (s *Store) InsertRun(run Run) (string, error) {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO runs (id, filename, mode, record_count, sheet_count, skipped_sheets, warning_count, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, run.Filename, run.Mode, run.RecordCount, run.SheetCount, run.SkippedSheets, run.WarningCount, run.DurationMS, run.CreatedAt)
	if err != nil {
		return "", err
	}
	return run.ID, nil
}

// ListRuns 按时间倒序列出最近的运行
func (s *Store) ListRuns(limit int) ([]Run, error) {
	if limit <= 0 {
		limit = 50
	}

	rows, err := s.db.Query(`
		SELECT id, filename, mode, record_count, sheet_count, skipped_sheets, warning_count, duration_ms, created_at
		FROM runs ORDER BY created_at DESC, id LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []Run
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Filename, &r.Mode, &r.RecordCount, &r.SheetCount, &r.SkippedSheets, &r.WarningCount, &r.DurationMS, &r.CreatedAt); err != nil {
			return nil, err
		}
		runs = append(runs, r)
	}
	return runs, rows.Err()
}

// GetRun 按 ID 取单次运行
func (s *Store) GetRun(id string) (*Run, error) {
	var r Run
	err := s.db.QueryRow(`
		SELECT id, filename, mode, record_count, sheet_count, skipped_sheets, warning_count, duration_ms, created_at
		FROM runs WHERE id = ?
	`, id).Scan(&r.ID, &r.Filename, &r.Mode, &r.RecordCount, &r.SheetCount, &r.SkippedSheets, &r.WarningCount, &r.DurationMS, &r.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &r, nil
}
