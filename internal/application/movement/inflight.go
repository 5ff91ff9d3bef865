package movement

import "sync"

// inFlight impide que dos envíos compartan un mismo movimiento mientras uno está en curso.
type inFlight struct {
	mu     sync.Mutex
	active map[int64]struct{}
}

func newInFlight() *inFlight {
	return &inFlight{active: map[int64]struct{}{}}
}

// acquire reserva todos los ids o ninguno. release libera la reserva.
func (f *inFlight) acquire(ids []int64) (release func(), ok bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, id := range ids {
		if _, busy := f.active[id]; busy {
			return nil, false
		}
	}
	for _, id := range ids {
		f.active[id] = struct{}{}
	}
	return func() {
		f.mu.Lock()
		defer f.mu.Unlock()
		for _, id := range ids {
			delete(f.active, id)
		}
	}, true
}
