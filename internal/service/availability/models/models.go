package models

import (
	"time"

	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// Request модели

// SetDateRequest запрос на замену расписания на дату
type SetDateRequest struct {
	RequesterID int64
	TutorID     int64
	Date        types.Date
	Slots       []string // "09:00" или "9:00 AM"
}

// SetWeeklyRequest запрос на замену недельного правила
type SetWeeklyRequest struct {
	RequesterID int64
	TutorID     int64
	Weekday     time.Weekday
	Slots       []string
}

// ClearDateRequest запрос на удаление расписания на дату
type ClearDateRequest struct {
	RequesterID int64
	TutorID     int64
	Date        types.Date
}

// ApplyDefaultsRequest запрос на заполнение расписания по умолчанию
type ApplyDefaultsRequest struct {
	RequesterID int64
	TutorID     int64
}

// Response модели

// SlotView слот расписания
type SlotView struct {
	Time  string `json:"time"`  // "09:00"
	Label string `json:"label"` // "9:00 AM"
}

// AvailabilityResponse расписание на дату
type AvailabilityResponse struct {
	TutorID int64      `json:"tutorId"`
	Date    string     `json:"date,omitempty"`
	Weekday string     `json:"weekday,omitempty"`
	Slots   []SlotView `json:"slots"`
}

// WeeklyResponse расписание по дням недели
type WeeklyResponse struct {
	TutorID int64                  `json:"tutorId"`
	Days    []AvailabilityResponse `json:"days"`
}

// ToSlotViews конвертирует слоты в DTO
func ToSlotViews(slots []types.TimeString) []SlotView {
	views := make([]SlotView, 0, len(slots))
	for _, s := range slots {
		views = append(views, SlotView{Time: s.String(), Label: s.Label()})
	}
	return views
}
