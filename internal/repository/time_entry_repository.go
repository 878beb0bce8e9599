package repository

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/techdesk/helpdesk-service/internal/domain"
)

// TimeEntryRepository manages recorded work spans.
type TimeEntryRepository interface {
	Create(ctx context.Context, entry *domain.TimeEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeEntry, error)
	ListByTicket(ctx context.Context, ticketID string) ([]domain.TimeEntry, error)
	Delete(ctx context.Context, id string) error
}

type timeEntryRepository struct {
	pool *pgxpool.Pool
}

// NewTimeEntryRepository builds repository.
func NewTimeEntryRepository(pool *pgxpool.Pool) TimeEntryRepository {
	return &timeEntryRepository{pool: pool}
}

func (r *timeEntryRepository) Create(ctx context.Context, entry *domain.TimeEntry) error {
	const query = `
        INSERT INTO time_entries (ticket_id, author_user_id, start_time, end_time, duration_minutes, note, is_manual_entry)
        VALUES ($1,$2,$3,$4,$5,$6,$7)
        RETURNING id, created_at`
	return r.pool.QueryRow(ctx, query,
		entry.TicketID,
		entry.AuthorID,
		entry.StartTime,
		entry.EndTime,
		entry.DurationMinutes,
		entry.Note,
		entry.IsManualEntry,
	).Scan(&entry.ID, &entry.CreatedAt)
}

func (r *timeEntryRepository) GetByID(ctx context.Context, id string) (*domain.TimeEntry, error) {
	const query = `
        SELECT id, ticket_id, author_user_id, start_time, end_time, duration_minutes, note, is_manual_entry, created_at
        FROM time_entries WHERE id=$1`
	var entry domain.TimeEntry
	if err := r.pool.QueryRow(ctx, query, id).Scan(
		&entry.ID,
		&entry.TicketID,
		&entry.AuthorID,
		&entry.StartTime,
		&entry.EndTime,
		&entry.DurationMinutes,
		&entry.Note,
		&entry.IsManualEntry,
		&entry.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &entry, nil
}

func (r *timeEntryRepository) ListByTicket(ctx context.Context, ticketID string) ([]domain.TimeEntry, error) {
	const query = `
        SELECT id, ticket_id, author_user_id, start_time, end_time, duration_minutes, note, is_manual_entry, created_at
        FROM time_entries WHERE ticket_id=$1 ORDER BY created_at ASC`
	rows, err := r.pool.Query(ctx, query, ticketID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.TimeEntry
	for rows.Next() {
		var entry domain.TimeEntry
		if err := rows.Scan(
			&entry.ID,
			&entry.TicketID,
			&entry.AuthorID,
			&entry.StartTime,
			&entry.EndTime,
			&entry.DurationMinutes,
			&entry.Note,
			&entry.IsManualEntry,
			&entry.CreatedAt,
		); err != nil {
			return nil, err
		}
		result = append(result, entry)
	}
	return result, rows.Err()
}

func (r *timeEntryRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM time_entries WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}
