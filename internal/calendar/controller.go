package calendar

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
	"github.com/m04kA/SMC-TutorBooking/internal/usecase/create_booking"
	"github.com/m04kA/SMC-TutorBooking/pkg/types"
)

var (
	// ErrNoDateSelected возвращается, если дата ещё не выбрана
	ErrNoDateSelected = errors.New("calendar: no date selected")

	// ErrNoSlotSelected возвращается при подтверждении без выбранного слота
	ErrNoSlotSelected = errors.New("calendar: no slot selected")

	// ErrSlotNotOffered выбранный слот недоступен в последнем вычислении
	ErrSlotNotOffered = errors.New("calendar: slot is not offered")
)

// Resolver вычисляет слоты репетитора на дату
type Resolver interface {
	Resolve(ctx context.Context, tutorID int64, date types.Date, now time.Time) ([]domain.ResolvedSlot, error)
}

// Booker создаёт бронирование
type Booker interface {
	Execute(ctx context.Context, req *create_booking.Request) (*create_booking.Response, error)
}

// Clock источник текущего времени
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// State снимок состояния выбора
type State struct {
	TutorID     int64
	Date        types.Date
	Selected    types.TimeString
	Slots       []domain.ResolvedSlot
	LastBooking *create_booking.Response
	LastError   error
	RefreshedAt time.Time
}

// Controller хранит выбранные дату и слот для одного репетитора и делегирует
// вычисление слотов и бронирование. Своих инвариантов не имеет.
type Controller struct {
	mu       sync.Mutex
	resolver Resolver
	booker   Booker
	clock    Clock
	state    State
}

// NewController создает контроллер выбора слота для репетитора
func NewController(tutorID int64, resolver Resolver, booker Booker) *Controller {
	return &Controller{
		resolver: resolver,
		booker:   booker,
		clock:    systemClock{},
		state:    State{TutorID: tutorID},
	}
}

// WithClock подменяет источник времени
func (c *Controller) WithClock(clock Clock) *Controller {
	c.clock = clock
	return c
}

// SelectDate выбирает дату, сбрасывает выбранный слот и пересчитывает слоты
func (c *Controller) SelectDate(ctx context.Context, date types.Date) ([]domain.ResolvedSlot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.state.Date = date
	c.state.Selected = ""
	return c.refreshLocked(ctx)
}

// Refresh пересчитывает слоты на выбранную дату; вызывается периодически извне
func (c *Controller) Refresh(ctx context.Context) ([]domain.ResolvedSlot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Date.IsZero() {
		return nil, ErrNoDateSelected
	}
	return c.refreshLocked(ctx)
}

// SelectSlot выбирает слот; он должен быть доступен в последнем вычислении
func (c *Controller) SelectSlot(ts types.TimeString) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Date.IsZero() {
		return ErrNoDateSelected
	}

	for _, s := range c.state.Slots {
		if s.StartTime == ts {
			if !s.IsOfferable() {
				return fmt.Errorf("%w: %s is %s", ErrSlotNotOffered, ts.Label(), s.Reason)
			}
			c.state.Selected = ts
			return nil
		}
	}
	return fmt.Errorf("%w: %s", ErrSlotNotOffered, ts)
}

// Confirm бронирует выбранный слот и обновляет слоты независимо от результата
func (c *Controller) Confirm(ctx context.Context, studentID int64) (*create_booking.Response, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.state.Selected.IsZero() {
		return nil, ErrNoSlotSelected
	}

	resp, err := c.booker.Execute(ctx, &create_booking.Request{
		TutorID:   c.state.TutorID,
		StudentID: studentID,
		Date:      c.state.Date,
		StartTime: c.state.Selected,
	})

	c.state.LastBooking = resp
	c.state.LastError = err
	c.state.Selected = ""

	if _, refreshErr := c.refreshLocked(ctx); refreshErr != nil && err == nil {
		err = refreshErr
	}
	return resp, err
}

// State возвращает копию текущего состояния
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state
	st.Slots = append([]domain.ResolvedSlot(nil), c.state.Slots...)
	return st
}

func (c *Controller) refreshLocked(ctx context.Context) ([]domain.ResolvedSlot, error) {
	now := c.clock.Now()
	slots, err := c.resolver.Resolve(ctx, c.state.TutorID, c.state.Date, now)
	if err != nil {
		return nil, err
	}

	c.state.Slots = slots
	c.state.RefreshedAt = now
	return append([]domain.ResolvedSlot(nil), slots...), nil
}
