package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound     = errors.New("recurso no encontrado")
	ErrUserNotFound = errors.New("operador no encontrado")
	ErrInvalidInput = errors.New("entrada inválida")
	ErrUnauthorized = errors.New("no autorizado")
	ErrForbidden    = errors.New("acceso denegado")

	// Validación de la selección y del formulario de transición.
	ErrEmptySelection   = errors.New("no hay contenedores seleccionados")
	ErrMixedJobNumbers  = errors.New("mixed job numbers")
	ErrMixedStatuses    = errors.New("mixed statuses")
	ErrNoStatusSelected = errors.New("no se eligió un nuevo estado")

	// Transiciones.
	ErrTransitionRejected = errors.New("el estado destino no está permitido desde el estado actual")
	ErrInvalidTransition  = errors.New("transición de estado inválida")
	ErrSubmissionInFlight = errors.New("ya hay una actualización en curso para esta selección")

	// Servicio de datos remoto.
	ErrNetworkFailure = errors.New("fallo de comunicación con el servicio de movimientos")
	ErrTimeout        = errors.New("tiempo de espera agotado con el servicio de movimientos")
)

// IsValidationError indica si err pertenece a la clase ValidationError:
// se reporta al usuario sin haber hecho ninguna llamada de red.
func IsValidationError(err error) bool {
	return errors.Is(err, ErrEmptySelection) ||
		errors.Is(err, ErrMixedJobNumbers) ||
		errors.Is(err, ErrMixedStatuses) ||
		errors.Is(err, ErrNoStatusSelected) ||
		errors.Is(err, ErrInvalidInput)
}
