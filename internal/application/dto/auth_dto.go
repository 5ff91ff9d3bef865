package dto

// LoginRequest entrada para login.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// OperatorResponse salida de un operador (sin password).
type OperatorResponse struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  string `json:"role"`
}

// LoginResponse token JWT y operador autenticado.
type LoginResponse struct {
	Token string           `json:"token"`
	User  OperatorResponse `json:"user"`
}
