package journal

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"

	"github.com/m04kA/SMC-TrainingPortal/internal/domain"
	"github.com/m04kA/SMC-TrainingPortal/pkg/ptr"
	"github.com/m04kA/SMC-TrainingPortal/pkg/psqlbuilder"
)

const table = "booking_journal"

// Repository журнал попыток создания, отмены и переноса записей
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория журнала
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Record сохраняет запись журнала
func (r *Repository) Record(ctx context.Context, entry domain.JournalEntry) error {
	createdAt := entry.CreatedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	query, args, err := psqlbuilder.Insert(table).
		Columns("action", "booking_id", "slot_id", "outcome", "message", "created_at").
		Values(
			string(entry.Action),
			nullInt64(entry.BookingID),
			nullInt64(entry.SlotID),
			string(entry.Outcome),
			entry.Message,
			createdAt,
		).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return fmt.Errorf("%w: Record - build insert query: %v", ErrBuildQuery, err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&id); err != nil {
		return fmt.Errorf("%w: Record - execute insert: %v", ErrExecQuery, err)
	}

	return nil
}

// ListByBooking возвращает последние записи журнала по записи, от новых к старым
func (r *Repository) ListByBooking(ctx context.Context, bookingID int64, limit uint64) ([]domain.JournalEntry, error) {
	query, args, err := psqlbuilder.Select("id", "action", "booking_id", "slot_id", "outcome", "message", "created_at").
		From(table).
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("created_at DESC", "id DESC").
		Limit(limit).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - build select query: %v", ErrBuildQuery, err)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - execute select: %v", ErrExecQuery, err)
	}
	defer rows.Close()

	entries := make([]domain.JournalEntry, 0)
	for rows.Next() {
		var (
			e                 domain.JournalEntry
			action, outcome   string
			bookingID, slotID sql.NullInt64
		)
		if err := rows.Scan(&e.ID, &action, &bookingID, &slotID, &outcome, &e.Message, &e.CreatedAt); err != nil {
			return nil, fmt.Errorf("%w: ListByBooking - scan: %v", ErrScanRow, err)
		}
		e.Action = domain.JournalAction(action)
		e.Outcome = domain.JournalOutcome(outcome)
		e.BookingID = int64Ptr(bookingID)
		e.SlotID = int64Ptr(slotID)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: ListByBooking - rows error: %v", ErrScanRow, err)
	}

	return entries, nil
}

// DeleteOlderThan удаляет записи журнала старше before и возвращает их количество
func (r *Repository) DeleteOlderThan(ctx context.Context, before time.Time) (int64, error) {
	query, args, err := psqlbuilder.Delete(table).
		Where(squirrel.Lt{"created_at": before}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - build delete query: %v", ErrBuildQuery, err)
	}

	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - execute delete: %v", ErrExecQuery, err)
	}

	deleted, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%w: DeleteOlderThan - get rows affected: %v", ErrExecQuery, err)
	}
	return deleted, nil
}

func nullInt64(v *int64) sql.NullInt64 {
	return sql.NullInt64{Int64: ptr.Value(v), Valid: v != nil}
}

func int64Ptr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	return ptr.Ptr(v.Int64)
}
