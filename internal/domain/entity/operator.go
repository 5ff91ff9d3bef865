package entity

import "time"

// Roles válidos para Operator.
const (
	RoleAdmin    = "admin"
	RoleOperator = "operator"
	RoleViewer   = "viewer"
)

// Operator usuario del back office de movimientos.
type Operator struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt
	Name         string
	Role         string // admin, operator, viewer
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// IsActive indica si el operador puede iniciar sesión.
func (o *Operator) IsActive() bool {
	return o.Status == "active"
}
