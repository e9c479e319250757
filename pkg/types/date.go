package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ErrInvalidDate возвращается, когда строку не удалось разобрать как дату
var ErrInvalidDate = errors.New("invalid date format")

// Date календарная дата без времени и часового пояса.
// Значение сравнимо через == и может быть ключом map.
type Date struct {
	Year  int
	Month time.Month
	Day   int
}

// NewDate берёт календарную дату из time.Time в его собственной локации
func NewDate(t time.Time) Date {
	y, m, d := t.Date()
	return Date{Year: y, Month: m, Day: d}
}

// ParseDate разбирает дату в формате YYYY-MM-DD
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("%w: %q", ErrInvalidDate, s)
	}
	return NewDate(t), nil
}

// String возвращает дату в формате YYYY-MM-DD
func (d Date) String() string {
	return fmt.Sprintf("%04d-%02d-%02d", d.Year, int(d.Month), d.Day)
}

// IsZero returns true if the date is not set
func (d Date) IsZero() bool {
	return d == Date{}
}

// Midnight возвращает начало дня в указанной локации
func (d Date) Midnight(loc *time.Location) time.Time {
	return time.Date(d.Year, d.Month, d.Day, 0, 0, 0, 0, loc)
}

// At возвращает момент начала слота ts в этот день
func (d Date) At(ts TimeString, loc *time.Location) (time.Time, error) {
	minutes, err := ts.Minutes()
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(d.Year, d.Month, d.Day, minutes/60, minutes%60, 0, 0, loc), nil
}

// Weekday returns the day of the week
func (d Date) Weekday() time.Weekday {
	return d.Midnight(time.UTC).Weekday()
}

// AddDays сдвигает дату на n календарных дней
func (d Date) AddDays(n int) Date {
	return NewDate(d.Midnight(time.UTC).AddDate(0, 0, n))
}

// Before returns true if d is strictly earlier than other
func (d Date) Before(other Date) bool {
	return d.Midnight(time.UTC).Before(other.Midnight(time.UTC))
}

// After returns true if d is strictly later than other
func (d Date) After(other Date) bool {
	return d.Midnight(time.UTC).After(other.Midnight(time.UTC))
}

// Scan реализует sql.Scanner (DATE в Postgres приходит как time.Time)
func (d *Date) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*d = Date{}
		return nil
	case time.Time:
		*d = NewDate(v)
		return nil
	case []byte:
		return d.scanString(string(v))
	case string:
		return d.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidDate, src)
	}
}

func (d *Date) scanString(s string) error {
	if len(s) > len(dateLayout) {
		s = s[:len(dateLayout)]
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Value реализует driver.Valuer
func (d Date) Value() (driver.Value, error) {
	if d.IsZero() {
		return nil, nil
	}
	return d.String(), nil
}
