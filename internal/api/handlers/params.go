package handlers

import (
	"fmt"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

// PathID разбирает положительный int64 из переменной маршрута
func PathID(r *http.Request, name string) (int64, error) {
	raw := mux.Vars(r)[name]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid %s %q", name, raw)
	}
	return id, nil
}

// PathSlotKey собирает ключ слота из {tutorId}/{date}/{time}.
// Время принимается как "09:00" или "9:00 AM" (в URL пробел кодируется).
func PathSlotKey(r *http.Request) (domain.SlotKey, error) {
	tutorID, err := PathID(r, "tutorId")
	if err != nil {
		return domain.SlotKey{}, err
	}

	vars := mux.Vars(r)
	date, err := types.ParseDate(vars["date"])
	if err != nil {
		return domain.SlotKey{}, err
	}

	startTime, err := types.NewTimeStringFromString(vars["time"])
	if err != nil {
		return domain.SlotKey{}, err
	}

	return domain.SlotKey{TutorID: tutorID, Date: date, StartTime: startTime}, nil
}

// QueryDate разбирает необязательную дату из query параметра
func QueryDate(r *http.Request, name string) (*types.Date, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return nil, nil
	}
	date, err := types.ParseDate(raw)
	if err != nil {
		return nil, err
	}
	return &date, nil
}
