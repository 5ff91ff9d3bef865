// Package movement contiene el motor de transiciones de estado de los movimientos de
// contenedores: tabla de transiciones, validación de la selección, derivación de
// puerto/address book por estado destino y armado del payload de bulk-create.
//
// Todo el paquete es lógica pura: no hace I/O y no guarda estado mutable.
package movement

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Status estado de un movimiento de contenedor.
type Status int

// Estados conocidos. StatusUnknown es el valor cero y representa cualquier
// texto que no corresponda a un estado del ciclo de vida.
const (
	StatusUnknown Status = iota
	StatusAllotted
	StatusEmptyPickedUp
	StatusGateIn
	StatusSOB
	StatusGateOut
	StatusEmptyReturned
	StatusAvailable
	StatusUnavailable
)

type statusInfo struct {
	name  string // forma canónica interna
	wire  string // forma que usa el servicio de movimientos
	label string // texto que se ofrece al usuario
}

var statusInfos = [...]statusInfo{
	StatusUnknown:       {name: "UNKNOWN"},
	StatusAllotted:      {name: "ALLOTTED", wire: "ALLOTTED", label: "Allotted"},
	StatusEmptyPickedUp: {name: "EMPTY_PICKED_UP", wire: "EMPTY PICKED UP", label: "Empty Picked Up"},
	StatusGateIn:        {name: "GATE_IN", wire: "GATE-IN", label: "Gate-In"},
	StatusSOB:           {name: "SOB", wire: "SOB", label: "SoB"},
	StatusGateOut:       {name: "GATE_OUT", wire: "GATE-OUT", label: "Gate-Out"},
	StatusEmptyReturned: {name: "EMPTY_RETURNED", wire: "EMPTY RETURNED", label: "Empty Returned"},
	StatusAvailable:     {name: "AVAILABLE", wire: "AVAILABLE", label: "AVAILABLE"},
	StatusUnavailable:   {name: "UNAVAILABLE", wire: "UNAVAILABLE", label: "UNAVAILABLE"},
}

var statusByName = func() map[string]Status {
	m := make(map[string]Status, len(statusInfos))
	for s := StatusAllotted; s <= StatusUnavailable; s++ {
		m[statusInfos[s].name] = s
	}
	return m
}()

// ParseStatus interpreta un estado sin distinguir mayúsculas y aceptando "_", "-" o
// espacio como separador ("Gate-In", "GATE_IN" y "gate in" son el mismo estado).
// Devuelve StatusUnknown si el texto no corresponde a ningún estado.
func ParseStatus(s string) Status {
	if st, ok := statusByName[canonicalName(s)]; ok {
		return st
	}
	return StatusUnknown
}

func canonicalName(s string) string {
	// cases.Caser no es seguro entre goroutines: se crea uno por llamada.
	upper := cases.Upper(language.Und).String(strings.TrimSpace(s))
	return strings.Join(strings.FieldsFunc(upper, func(r rune) bool {
		return r == '_' || r == '-' || r == ' '
	}), "_")
}

// Known indica si el estado forma parte del ciclo de vida.
func (s Status) Known() bool {
	return s > StatusUnknown && int(s) < len(statusInfos)
}

// String forma canónica (EMPTY_PICKED_UP, GATE_IN, ...).
func (s Status) String() string {
	if !s.Known() {
		return statusInfos[StatusUnknown].name
	}
	return statusInfos[s].name
}

// Wire forma que espera el servicio de movimientos en newStatus.
func (s Status) Wire() string {
	if !s.Known() {
		return ""
	}
	return statusInfos[s].wire
}

// Label texto para mostrar en el selector de nuevo estado.
func (s Status) Label() string {
	if !s.Known() {
		return ""
	}
	return statusInfos[s].label
}

// SameStatus compara dos estados tal como los devuelve el servidor, sin distinguir
// mayúsculas.
func SameStatus(a, b string) bool {
	return cases.Fold().String(strings.TrimSpace(a)) == cases.Fold().String(strings.TrimSpace(b))
}
