package sync

import "sync"

// entityLocks serializes remote requests per entity id. Two rapid toggles on
// the same item queue behind each other instead of racing; operations on
// different entities still run concurrently.
type entityLocks struct {
	mu sync.Mutex
	m  map[string]*sync.Mutex
}

func (l *entityLocks) lock(id string) func() {
	l.mu.Lock()
	if l.m == nil {
		l.m = make(map[string]*sync.Mutex)
	}
	em, ok := l.m[id]
	if !ok {
		em = &sync.Mutex{}
		l.m[id] = em
	}
	l.mu.Unlock()

	em.Lock()
	return em.Unlock
}
