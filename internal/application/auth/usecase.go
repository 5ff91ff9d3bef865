package auth

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/movements-api/internal/application/dto"
	"github.com/jhoicas/movements-api/internal/domain"
	"github.com/jhoicas/movements-api/internal/domain/entity"
	"github.com/jhoicas/movements-api/internal/domain/repository"
	"github.com/jhoicas/movements-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de operadores del back office.
type AuthUseCase struct {
	operators repository.OperatorRepository
	jwtCfg    JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(operators repository.OperatorRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{operators: operators, jwtCfg: jwtCfg}
}

// Login verifica email/password, genera JWT y retorna token + operador.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if email == "" || in.Password == "" {
		return nil, fmt.Errorf("%w: email y password son obligatorios", domain.ErrInvalidInput)
	}
	op, err := uc.operators.FindByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if op == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !op.IsActive() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, op.ID, op.Email, op.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  toOperatorResponse(op),
	}, nil
}

// NewOperator arma un operador activo con el password hasheado con bcrypt.
func NewOperator(email, name, role, password string) (*entity.Operator, error) {
	switch role {
	case entity.RoleAdmin, entity.RoleOperator, entity.RoleViewer:
	default:
		return nil, fmt.Errorf("%w: rol %q", domain.ErrInvalidInput, role)
	}
	if len(password) < 8 {
		return nil, fmt.Errorf("%w: el password debe tener al menos 8 caracteres", domain.ErrInvalidInput)
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" {
		name = email
	}
	now := time.Now()
	return &entity.Operator{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         name,
		Role:         role,
		Status:       "active",
		CreatedAt:    now,
		UpdatedAt:    now,
	}, nil
}

func toOperatorResponse(o *entity.Operator) dto.OperatorResponse {
	return dto.OperatorResponse{
		ID:    o.ID,
		Email: o.Email,
		Name:  o.Name,
		Role:  o.Role,
	}
}
