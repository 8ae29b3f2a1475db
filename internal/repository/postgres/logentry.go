package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/preciousgifts/sugar-backend/internal/domain"
	"github.com/preciousgifts/sugar-backend/pkg/pagination"
)

// LogRepository implements repository.LogRepository using PostgreSQL.
type LogRepository struct {
	db DB
}

// NewLogRepository creates a new PostgreSQL-backed log repository.
func NewLogRepository(db DB) *LogRepository {
	return &LogRepository{db: db}
}

// Create inserts a log entry.
func (r *LogRepository) Create(ctx context.Context, e *domain.LogEntry) error {
	contextJSON, err := json.Marshal(e.Context)
	if err != nil {
		return fmt.Errorf("marshal log context: %w", err)
	}

	query := `
		INSERT INTO logs (id, level, module, message, context, created_at)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if _, err := r.db.Exec(ctx, query, e.ID, e.Level, e.Module, e.Message, contextJSON, e.CreatedAt); err != nil {
		return fmt.Errorf("insert log entry: %w", err)
	}

	return nil
}

// List returns log entries created at or after since, newest first, with
// the total match count.
func (r *LogRepository) List(ctx context.Context, since time.Time, pg pagination.Params) ([]domain.LogEntry, int, error) {
	query := `
		SELECT id, level, module, message, context, created_at,
			   count(*) OVER() AS total_count
		FROM logs
		WHERE created_at >= $1
		ORDER BY created_at DESC, id DESC
		LIMIT $2 OFFSET $3`

	rows, err := r.db.Query(ctx, query, since, pg.PerPage, pg.Offset)
	if err != nil {
		return nil, 0, fmt.Errorf("list log entries: %w", err)
	}
	defer rows.Close()

	var (
		entries    []domain.LogEntry
		totalCount int
	)

	for rows.Next() {
		var (
			e           domain.LogEntry
			contextJSON []byte
		)
		if err := rows.Scan(&e.ID, &e.Level, &e.Module, &e.Message, &contextJSON, &e.CreatedAt, &totalCount); err != nil {
			return nil, 0, fmt.Errorf("scan log entry row: %w", err)
		}
		if contextJSON != nil {
			if err := json.Unmarshal(contextJSON, &e.Context); err != nil {
				return nil, 0, fmt.Errorf("unmarshal log context: %w", err)
			}
		}
		entries = append(entries, e)
	}

	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate log entry rows: %w", err)
	}

	return entries, totalCount, nil
}
