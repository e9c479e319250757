package locker

import "errors"

var (
	// ErrLockNotAcquired возвращается, когда слот уже заблокирован другим запросом
	ErrLockNotAcquired = errors.New("locker: slot lock not acquired")

	// ErrAcquire возвращается при ошибке обращения к хранилищу блокировок
	ErrAcquire = errors.New("locker: failed to acquire slot lock")
)
