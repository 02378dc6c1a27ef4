package service

import (
	"context"
	"slices"
	"sync"
)

// StockLocker serialises order placement per book. Lock blocks until every
// id in bookIDs is held and returns a function releasing them.
type StockLocker interface {
	Lock(ctx context.Context, bookIDs []string) (unlock func(), err error)
}

// noopLocker keeps the validate-then-mutate sequence unguarded.
type noopLocker struct{}

func (noopLocker) Lock(context.Context, []string) (func(), error) {
	return func() {}, nil
}

// MemoryStockLocker is a process-local StockLocker. It does not coordinate
// between replicas.
type MemoryStockLocker struct {
	mu    sync.Mutex
	locks map[string]chan struct{}
}

// NewMemoryStockLocker creates an empty in-process locker.
func NewMemoryStockLocker() *MemoryStockLocker {
	return &MemoryStockLocker{locks: make(map[string]chan struct{})}
}

// Lock acquires ids in sorted order so that overlapping orders cannot deadlock.
func (l *MemoryStockLocker) Lock(ctx context.Context, bookIDs []string) (func(), error) {
	ids := slices.Clone(bookIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)

	held := make([]chan struct{}, 0, len(ids))
	release := func() {
		for i := len(held) - 1; i >= 0; i-- {
			<-held[i]
		}
	}

	for _, id := range ids {
		ch := l.slot(id)
		select {
		case ch <- struct{}{}:
			held = append(held, ch)
		case <-ctx.Done():
			release()
			return nil, ctx.Err()
		}
	}

	return release, nil
}

func (l *MemoryStockLocker) slot(id string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.locks[id]
	if !ok {
		ch = make(chan struct{}, 1)
		l.locks[id] = ch
	}
	return ch
}
