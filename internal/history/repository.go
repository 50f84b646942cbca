package history

import (
	"context"
	"database/sql"
	"fmt"
	"time"
)

// Repository defines the interface for invocation persistence.
// This abstraction allows different implementations (SQLite, mock, noop)
// and enables unit testing without database dependencies.
type Repository interface {
	Record(ctx context.Context, inv *Invocation) error
	Recent(ctx context.Context, limit int) ([]Invocation, error)
	Prune(ctx context.Context, olderThan time.Time) (int64, error)
}

// invocationColumns is the SELECT column list for invocation queries.
const invocationColumns = `id, device, layer, event_type, event_value,
			trigger_type, trigger_value, status, error, created_at`

// SQLiteRepository implements Repository using SQLite.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository creates a new SQLite-backed repository.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Record inserts one invocation. A missing ID or timestamp is filled in.
func (r *SQLiteRepository) Record(ctx context.Context, inv *Invocation) error {
	if inv.ID == "" {
		inv.ID = GenerateID()
	}
	if inv.CreatedAt.IsZero() {
		inv.CreatedAt = time.Now().UTC()
	}

	query := `
		INSERT INTO invocations (
			id, device, layer, event_type, event_value,
			trigger_type, trigger_value, status, error, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`

	_, err := r.db.ExecContext(ctx, query,
		inv.ID,
		inv.Device,
		inv.Layer,
		inv.EventType,
		inv.EventValue,
		inv.TriggerType,
		inv.TriggerValue,
		string(inv.Status),
		inv.Error,
		inv.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting invocation: %w", err)
	}
	return nil
}

// Recent retrieves the newest invocations, newest first.
func (r *SQLiteRepository) Recent(ctx context.Context, limit int) ([]Invocation, error) {
	query := `SELECT ` + invocationColumns + ` FROM invocations
		ORDER BY created_at DESC, id LIMIT ?`

	rows, err := r.db.QueryContext(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying invocations: %w", err)
	}
	defer rows.Close()

	var invocations []Invocation
	for rows.Next() {
		inv, err := scanInvocation(rows)
		if err != nil {
			return nil, fmt.Errorf("scanning invocation: %w", err)
		}
		invocations = append(invocations, inv)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating invocations: %w", err)
	}
	return invocations, nil
}

// Prune deletes invocations recorded before the cutoff and reports how
// many rows went away.
func (r *SQLiteRepository) Prune(ctx context.Context, olderThan time.Time) (int64, error) {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM invocations WHERE created_at < ?`,
		olderThan.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return 0, fmt.Errorf("pruning invocations: %w", err)
	}
	return res.RowsAffected()
}

// scanInvocation maps one row onto an Invocation.
func scanInvocation(rows *sql.Rows) (Invocation, error) {
	var inv Invocation
	var status, createdAt string

	err := rows.Scan(
		&inv.ID,
		&inv.Device,
		&inv.Layer,
		&inv.EventType,
		&inv.EventValue,
		&inv.TriggerType,
		&inv.TriggerValue,
		&status,
		&inv.Error,
		&createdAt,
	)
	if err != nil {
		return Invocation{}, err
	}

	inv.Status = Status(status)
	ts, err := time.Parse(time.RFC3339, createdAt)
	if err != nil {
		return Invocation{}, fmt.Errorf("parsing created_at: %w", err)
	}
	inv.CreatedAt = ts
	return inv, nil
}

// NoopRepository discards everything. Used when history is disabled.
type NoopRepository struct{}

func (NoopRepository) Record(context.Context, *Invocation) error { return nil }

func (NoopRepository) Recent(context.Context, int) ([]Invocation, error) { return nil, nil }

func (NoopRepository) Prune(context.Context, time.Time) (int64, error) { return 0, nil }
