package booking

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

const (
	bookingsTable = "bookings"

	// uniqueViolation код ошибки PostgreSQL при нарушении уникального индекса
	uniqueViolation = "23505"
)

var bookingColumns = []string{
	"id",
	"tutor_id",
	"student_id",
	"booking_date",
	"start_time",
	"duration_minutes",
	"status",
	"cancelled_by",
	"cancelled_at",
	"created_at",
	"updated_at",
}

// Repository репозиторий бронирований в PostgreSQL.
// Уникальность активного бронирования на слот обеспечивает частичный уникальный индекс
// bookings_active_slot_uidx (tutor_id, booking_date, start_time) WHERE status IN ('pending', 'confirmed').
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория бронирований
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Put атомарно создает бронирование.
// Если на слот уже есть активное бронирование, возвращает ErrSlotOccupied.
func (r *Repository) Put(ctx context.Context, booking *domain.Booking) (*domain.Booking, error) {
	if !booking.IsActive() {
		return nil, fmt.Errorf("%w: Put - status %q", ErrInvalidStatus, booking.Status)
	}

	query, args, err := psqlbuilder.Insert(bookingsTable).
		Columns(
			"tutor_id",
			"student_id",
			"booking_date",
			"start_time",
			"duration_minutes",
			"status",
		).
		Values(
			booking.TutorID,
			booking.StudentID,
			booking.Date,
			booking.StartTime,
			booking.DurationMinutes,
			booking.Status,
		).
		Suffix("RETURNING id, created_at, updated_at").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Put - build insert query: %v", ErrBuildQuery, err)
	}

	created := *booking
	var createdAt, updatedAt sql.NullTime
	err = r.db.QueryRowContext(ctx, query, args...).Scan(
		&created.ID,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, mapInsertError(err)
	}

	created.CreatedAt = createdAt.Time
	created.UpdatedAt = updatedAt.Time

	return &created, nil
}

// mapInsertError переводит нарушение уникального индекса активного слота в ErrSlotOccupied
func mapInsertError(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == uniqueViolation {
		return fmt.Errorf("%w: Put - %s", ErrSlotOccupied, pqErr.Constraint)
	}
	return fmt.Errorf("%w: Put - execute insert: %v", ErrExecQuery, err)
}

// Get возвращает активное бронирование на слот, а если его нет - последнее отмененное
func (r *Repository) Get(ctx context.Context, key domain.SlotKey) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(keyCondition(key)).
		OrderBy(
			"CASE WHEN status IN ('pending', 'confirmed') THEN 0 ELSE 1 END",
			"updated_at DESC",
			"id DESC",
		).
		Limit(1).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Get - build select query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBookingNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Get - scan booking: %v", ErrScanRow, err)
	}

	return booking, nil
}

// Cancel переводит активное бронирование на слоте в статус cancelled.
// Если активного нет, но есть отмененное - возвращает его без изменений.
func (r *Repository) Cancel(ctx context.Context, key domain.SlotKey, cancelledBy int64) (*domain.Booking, error) {
	query, args, err := psqlbuilder.Update(bookingsTable).
		Set("status", domain.StatusCancelled).
		Set("cancelled_by", cancelledBy).
		Set("cancelled_at", squirrel.Expr("NOW()")).
		Set("updated_at", squirrel.Expr("NOW()")).
		Where(keyCondition(key)).
		Where(squirrel.Eq{"status": activeStatusStrings()}).
		Suffix("RETURNING " + strings.Join(bookingColumns, ", ")).
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - build update query: %v", ErrBuildQuery, err)
	}

	booking, err := scanBooking(r.db.QueryRowContext(ctx, query, args...))
	if errors.Is(err, sql.ErrNoRows) {
		// Активного бронирования нет: повторная отмена не является ошибкой
		return r.Get(ctx, key)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: Cancel - execute update: %v", ErrExecQuery, err)
	}

	return booking, nil
}

// GetActiveByTutorAndDate возвращает активные бронирования репетитора на дату, по времени начала
func (r *Repository) GetActiveByTutorAndDate(ctx context.Context, tutorID int64, date types.Date) ([]*domain.Booking, error) {
	query, args, err := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{
			"tutor_id":     tutorID,
			"booking_date": date,
			"status":       activeStatusStrings(),
		}).
		OrderBy("start_time ASC").
		ToSql()

	if err != nil {
		return nil, fmt.Errorf("%w: GetActiveByTutorAndDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetActiveByTutorAndDate", query, args)
}

// GetByStudentID получает список бронирований студента, сначала новые
func (r *Repository) GetByStudentID(ctx context.Context, studentID int64, includeInactive bool) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"student_id": studentID}).
		OrderBy("booking_date DESC", "start_time DESC")

	if !includeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings()})
	}

	query, args, err := selectBuilder.ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByStudentID - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByStudentID", query, args)
}

// GetByTutorWithFilter получает бронирования репетитора с фильтрацией по периоду и статусу
func (r *Repository) GetByTutorWithFilter(ctx context.Context, filter domain.TutorBookingsFilter) ([]*domain.Booking, error) {
	selectBuilder := psqlbuilder.Select(bookingColumns...).
		From(bookingsTable).
		Where(squirrel.Eq{"tutor_id": filter.TutorID})

	// Фильтрация по периоду
	if filter.StartDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.GtOrEq{"booking_date": *filter.StartDate})
	}
	if filter.EndDate != nil {
		selectBuilder = selectBuilder.Where(squirrel.LtOrEq{"booking_date": *filter.EndDate})
	}

	if !filter.IncludeInactive {
		selectBuilder = selectBuilder.Where(squirrel.Eq{"status": activeStatusStrings()})
	}

	query, args, err := selectBuilder.OrderBy("booking_date ASC", "start_time ASC", "id ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: GetByTutorWithFilter - build select query: %v", ErrBuildQuery, err)
	}

	return r.query(ctx, "GetByTutorWithFilter", query, args)
}

func (r *Repository) query(ctx context.Context, op, query string, args []interface{}) ([]*domain.Booking, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: %s - execute query: %v", ErrExecQuery, op, err)
	}
	defer rows.Close()

	bookings := make([]*domain.Booking, 0)
	for rows.Next() {
		booking, err := scanBooking(rows)
		if err != nil {
			return nil, fmt.Errorf("%w: %s - scan row: %v", ErrScanRow, op, err)
		}
		bookings = append(bookings, booking)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %s - rows error: %v", ErrScanRow, op, err)
	}

	return bookings, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanBooking(row rowScanner) (*domain.Booking, error) {
	var booking domain.Booking
	var cancelledBy sql.NullInt64
	var cancelledAt, createdAt, updatedAt sql.NullTime

	err := row.Scan(
		&booking.ID,
		&booking.TutorID,
		&booking.StudentID,
		&booking.Date,
		&booking.StartTime,
		&booking.DurationMinutes,
		&booking.Status,
		&cancelledBy,
		&cancelledAt,
		&createdAt,
		&updatedAt,
	)
	if err != nil {
		return nil, err
	}

	if cancelledBy.Valid {
		booking.CancelledBy = &cancelledBy.Int64
	}
	if cancelledAt.Valid {
		booking.CancelledAt = &cancelledAt.Time
	}
	booking.CreatedAt = createdAt.Time
	booking.UpdatedAt = updatedAt.Time

	return &booking, nil
}

func keyCondition(key domain.SlotKey) squirrel.Eq {
	return squirrel.Eq{
		"tutor_id":     key.TutorID,
		"booking_date": key.Date,
		"start_time":   key.StartTime,
	}
}

func activeStatusStrings() []string {
	statuses := make([]string, len(domain.ActiveStatuses))
	for i, s := range domain.ActiveStatuses {
		statuses[i] = string(s)
	}
	return statuses
}
