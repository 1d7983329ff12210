package repository

import (
	"context"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
)

// AuthRepository define el puerto de autenticación remota.
type AuthRepository interface {
	Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error)
	Register(ctx context.Context, in dto.RegisterRequest) error
}

// UserRepository define el puerto de administración de usuarios.
type UserRepository interface {
	ListUsers(ctx context.Context, filters map[string]string, page int) (entity.Page[entity.User], error)
	UpdateUserRoles(ctx context.Context, id int64, roles []string) error
	DeleteUser(ctx context.Context, id int64) error
	TopUsers(ctx context.Context) ([]entity.TopUser, error)
}
