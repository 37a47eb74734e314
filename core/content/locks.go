package content

import "sync"

// moduleLocks serializes writers of the same module. Entries are dropped once unused.
type moduleLocks struct {
	mu    sync.Mutex
	locks map[string]*refMutex
}

type refMutex struct {
	sync.Mutex
	refs int
}

func newModuleLocks() *moduleLocks {
	return &moduleLocks{locks: make(map[string]*refMutex)}
}

// Lock blocks until the lock of key is held and returns its release func.
func (l *moduleLocks) Lock(key string) (unlock func()) {
	l.mu.Lock()
	m, ok := l.locks[key]
	if !ok {
		m = new(refMutex)
		l.locks[key] = m
	}
	m.refs++
	l.mu.Unlock()

	m.Lock()
	return func() {
		m.Unlock()
		l.mu.Lock()
		m.refs--
		if m.refs == 0 {
			delete(l.locks, key)
		}
		l.mu.Unlock()
	}
}

func (l *moduleLocks) len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}
