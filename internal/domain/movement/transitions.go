package movement

// transitionTable estados alcanzables desde cada estado. Se indexa por Status; una
// entrada nil significa "sin transiciones".
var transitionTable = [...][]Status{
	StatusAllotted:      {StatusEmptyPickedUp},
	StatusEmptyPickedUp: {StatusGateIn},
	StatusGateIn:        {StatusSOB},
	StatusSOB:           {StatusGateOut},
	StatusGateOut:       {StatusEmptyReturned},
	StatusEmptyReturned: {StatusAvailable, StatusUnavailable},
	StatusAvailable:     {StatusUnavailable},
	StatusUnavailable:   {StatusAvailable},
}

// lookup devuelve la entrada de la tabla y si existe.
func lookup(current Status) ([]Status, bool) {
	if current < 0 || int(current) >= len(transitionTable) {
		return nil, false
	}
	next := transitionTable[current]
	return next, len(next) > 0
}

// NextStatuses estados a los que se puede pasar desde current. Para un estado
// desconocido o sin entrada devuelve un slice vacío (nunca nil).
func NextStatuses(current Status) []Status {
	next, ok := lookup(current)
	if !ok {
		return []Status{}
	}
	out := make([]Status, len(next))
	copy(out, next)
	return out
}

// CanTransition indica si to es alcanzable desde from.
func CanTransition(from, to Status) bool {
	next, ok := lookup(from)
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}
