// Package slotlock сериализует попытки бронирования одного и того же слота.
package slotlock

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// Unlock освобождает захваченную блокировку
type Unlock func()

// Locker блокировка по ключу
type Locker interface {
	Lock(ctx context.Context, key string) (Unlock, error)
}

// Key ключ слота: специалист, дата, время начала
func Key(professionalID int64, date time.Time, start types.TimeString) string {
	return fmt.Sprintf("slot:%d:%s:%s", professionalID, types.FormatDate(date), start)
}

type entry struct {
	sem  chan struct{}
	refs int
}

// Local блокировка в памяти процесса
type Local struct {
	mu    sync.Mutex
	locks map[string]*entry
}

func NewLocal() *Local {
	return &Local{locks: make(map[string]*entry)}
}

// Lock ждет освобождения ключа или отмены контекста
func (l *Local) Lock(ctx context.Context, key string) (Unlock, error) {
	l.mu.Lock()
	e, ok := l.locks[key]
	if !ok {
		e = &entry{sem: make(chan struct{}, 1)}
		l.locks[key] = e
	}
	e.refs++
	l.mu.Unlock()

	select {
	case e.sem <- struct{}{}:
	case <-ctx.Done():
		l.release(key, e)
		return nil, ctx.Err()
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-e.sem
			l.release(key, e)
		})
	}, nil
}

func (l *Local) release(key string, e *entry) {
	l.mu.Lock()
	defer l.mu.Unlock()

	e.refs--
	if e.refs == 0 {
		delete(l.locks, key)
	}
}

// size количество ключей с ожидающими или владельцами
func (l *Local) size() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
