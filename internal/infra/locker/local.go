package locker

import (
	"context"
	"sync"

	"github.com/m04kA/SMC-TutorBooking/internal/domain"
)

type slotLock struct {
	sem  chan struct{}
	refs int
}

// LocalLocker сериализует операции над одним слотом внутри процесса.
// Ожидание блокировки прерывается отменой контекста.
type LocalLocker struct {
	mu    sync.Mutex
	locks map[domain.SlotKey]*slotLock
}

// NewLocalLocker создает блокировщик слотов в памяти процесса
func NewLocalLocker() *LocalLocker {
	return &LocalLocker{locks: make(map[domain.SlotKey]*slotLock)}
}

// WithSlotLock выполняет fn, удерживая блокировку ключа слота
func (l *LocalLocker) WithSlotLock(ctx context.Context, key domain.SlotKey, fn func(ctx context.Context) error) error {
	lock := l.acquireRef(key)
	defer l.releaseRef(key, lock)

	select {
	case lock.sem <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	defer func() { <-lock.sem }()

	return fn(ctx)
}

func (l *LocalLocker) acquireRef(key domain.SlotKey) *slotLock {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock, ok := l.locks[key]
	if !ok {
		lock = &slotLock{sem: make(chan struct{}, 1)}
		l.locks[key] = lock
	}
	lock.refs++
	return lock
}

func (l *LocalLocker) releaseRef(key domain.SlotKey, lock *slotLock) {
	l.mu.Lock()
	defer l.mu.Unlock()

	lock.refs--
	if lock.refs == 0 {
		delete(l.locks, key)
	}
}

// size количество ключей, на которых кто-то держит или ждёт блокировку
func (l *LocalLocker) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
