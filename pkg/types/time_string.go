package types

import (
	"database/sql/driver"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	timeLayout  = "15:04"
	labelLayout = "3:04 PM"
)

// ErrInvalidTimeString возвращается, когда строку не удалось разобрать как время суток
var ErrInvalidTimeString = errors.New("invalid time string format")

// inputLayouts форматы, которые принимаются на вход (HTTP, CLI, БД)
var inputLayouts = []string{
	timeLayout,
	labelLayout,
	"3:04PM",
	"15:04:05",
}

// TimeString время суток в формате HH:MM без даты и часового пояса
type TimeString string

// NewTimeString берёт часы и минуты из time.Time
func NewTimeString(t time.Time) TimeString {
	return TimeString(t.Format(timeLayout))
}

// NewTimeStringFromString разбирает "09:00", "9:00 AM" или "09:00:00"
func NewTimeStringFromString(s string) (TimeString, error) {
	value := strings.ToUpper(strings.TrimSpace(s))
	for _, layout := range inputLayouts {
		if t, err := time.Parse(layout, value); err == nil {
			return NewTimeString(t), nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidTimeString, s)
}

// String возвращает время в формате HH:MM
func (t TimeString) String() string {
	return string(t)
}

// Label возвращает время в 12-часовом формате, например "9:00 AM"
func (t TimeString) Label() string {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return string(t)
	}
	return parsed.Format(labelLayout)
}

// IsZero returns true if the time is not set
func (t TimeString) IsZero() bool {
	return t == ""
}

// Validate проверяет, что значение в формате HH:MM
func (t TimeString) Validate() error {
	if _, err := time.Parse(timeLayout, string(t)); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return nil
}

// Minutes возвращает количество минут от начала суток
func (t TimeString) Minutes() (int, error) {
	parsed, err := time.Parse(timeLayout, string(t))
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidTimeString, string(t))
	}
	return parsed.Hour()*60 + parsed.Minute(), nil
}

// AddMinutes сдвигает время на n минут, результат должен остаться в пределах суток
// (ровно 24:00 допускается только как граница и возвращается как "24:00")
func (t TimeString) AddMinutes(n int) (TimeString, error) {
	m, err := t.Minutes()
	if err != nil {
		return "", err
	}
	total := m + n
	if total < 0 || total > 24*60 {
		return "", fmt.Errorf("%w: %s%+d minutes is out of day bounds", ErrInvalidTimeString, t, n)
	}
	return TimeString(fmt.Sprintf("%02d:%02d", total/60, total%60)), nil
}

// IsBefore returns true if t is strictly earlier than other
func (t TimeString) IsBefore(other TimeString) bool {
	return t.compare(other) < 0
}

// IsAfter returns true if t is strictly later than other
func (t TimeString) IsAfter(other TimeString) bool {
	return t.compare(other) > 0
}

// compare сравнивает лексикографически: для HH:MM это совпадает с хронологическим порядком
func (t TimeString) compare(other TimeString) int {
	return strings.Compare(string(t), string(other))
}

// Scan реализует sql.Scanner (TIME в Postgres приходит как "HH:MM:SS")
func (t *TimeString) Scan(src interface{}) error {
	switch v := src.(type) {
	case nil:
		*t = ""
		return nil
	case time.Time:
		*t = NewTimeString(v)
		return nil
	case []byte:
		return t.scanString(string(v))
	case string:
		return t.scanString(v)
	default:
		return fmt.Errorf("%w: cannot scan %T", ErrInvalidTimeString, src)
	}
}

func (t *TimeString) scanString(s string) error {
	parsed, err := NewTimeStringFromString(s)
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// Value реализует driver.Valuer
func (t TimeString) Value() (driver.Value, error) {
	if t.IsZero() {
		return nil, nil
	}
	return string(t), nil
}
