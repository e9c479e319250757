package availability

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/lib/pq"

	"github.com/m04kA/SMC-TutorBooking/pkg/psqlbuilder"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

const (
	weeklyTable = "tutor_weekly_availability"
	datesTable  = "tutor_date_availability"
)

// Repository хранилище расписания репетиторов в PostgreSQL.
// Разовое расписание на дату (tutor_date_availability) приоритетнее недельного правила
// (tutor_weekly_availability); пустой массив слотов на дату означает выходной.
type Repository struct {
	db DBExecutor
}

// NewRepository создает новый экземпляр репозитория расписания
func NewRepository(db DBExecutor) *Repository {
	return &Repository{db: db}
}

// Get возвращает набор слотов, которые репетитор открыл на дату.
// Отсутствие расписания не является ошибкой: возвращается пустой набор.
func (r *Repository) Get(ctx context.Context, tutorID int64, date types.Date) ([]types.TimeString, error) {
	slots, found, err := r.getDate(ctx, tutorID, date)
	if err != nil {
		return nil, err
	}
	if found {
		return slots, nil
	}

	slots, _, err = r.getWeekly(ctx, tutorID, date.Weekday())
	if err != nil {
		return nil, err
	}
	return slots, nil
}

// SetDate полностью заменяет набор слотов на дату
func (r *Repository) SetDate(ctx context.Context, tutorID int64, date types.Date, slots []types.TimeString) error {
	query, args, err := psqlbuilder.Insert(datesTable).
		Columns("tutor_id", "available_date", "slots").
		Values(tutorID, date, pq.Array(toStrings(slots))).
		Suffix("ON CONFLICT (tutor_id, available_date) DO UPDATE SET slots = EXCLUDED.slots, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetDate - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetDate - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// SetWeekly полностью заменяет недельное правило для дня недели
func (r *Repository) SetWeekly(ctx context.Context, tutorID int64, weekday time.Weekday, slots []types.TimeString) error {
	if weekday < time.Sunday || weekday > time.Saturday {
		return fmt.Errorf("%w: %d", ErrInvalidWeekday, weekday)
	}

	query, args, err := psqlbuilder.Insert(weeklyTable).
		Columns("tutor_id", "weekday", "slots").
		Values(tutorID, int(weekday), pq.Array(toStrings(slots))).
		Suffix("ON CONFLICT (tutor_id, weekday) DO UPDATE SET slots = EXCLUDED.slots, updated_at = NOW()").
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: SetWeekly - build upsert query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: SetWeekly - execute upsert: %v", ErrExecQuery, err)
	}
	return nil
}

// ClearDate удаляет расписание на дату, после чего действует недельное правило
func (r *Repository) ClearDate(ctx context.Context, tutorID int64, date types.Date) error {
	query, args, err := psqlbuilder.Delete(datesTable).
		Where(squirrel.Eq{"tutor_id": tutorID, "available_date": date}).
		ToSql()

	if err != nil {
		return fmt.Errorf("%w: ClearDate - build delete query: %v", ErrBuildQuery, err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("%w: ClearDate - execute delete: %v", ErrExecQuery, err)
	}
	return nil
}

func (r *Repository) getDate(ctx context.Context, tutorID int64, date types.Date) ([]types.TimeString, bool, error) {
	query, args, err := psqlbuilder.Select("slots").
		From(datesTable).
		Where(squirrel.Eq{"tutor_id": tutorID, "available_date": date}).
		ToSql()

	if err != nil {
		return nil, false, fmt.Errorf("%w: getDate - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlots(ctx, "getDate", query, args)
}

func (r *Repository) getWeekly(ctx context.Context, tutorID int64, weekday time.Weekday) ([]types.TimeString, bool, error) {
	query, args, err := psqlbuilder.Select("slots").
		From(weeklyTable).
		Where(squirrel.Eq{"tutor_id": tutorID, "weekday": int(weekday)}).
		ToSql()

	if err != nil {
		return nil, false, fmt.Errorf("%w: getWeekly - build select query: %v", ErrBuildQuery, err)
	}

	return r.scanSlots(ctx, "getWeekly", query, args)
}

func (r *Repository) scanSlots(ctx context.Context, op, query string, args []interface{}) ([]types.TimeString, bool, error) {
	var raw []string
	err := r.db.QueryRowContext(ctx, query, args...).Scan(pq.Array(&raw))
	if errors.Is(err, sql.ErrNoRows) {
		return []types.TimeString{}, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("%w: %s - scan slots: %v", ErrScanRow, op, err)
	}

	slots := make([]types.TimeString, 0, len(raw))
	for _, s := range raw {
		ts, err := types.NewTimeStringFromString(s)
		if err != nil {
			return nil, false, fmt.Errorf("%w: %s - parse slot: %v", ErrScanRow, op, err)
		}
		slots = append(slots, ts)
	}
	return slots, true, nil
}

func toStrings(slots []types.TimeString) []string {
	result := make([]string, len(slots))
	for i, s := range slots {
		result[i] = s.String()
	}
	return result
}
