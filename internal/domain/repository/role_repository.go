package repository

import (
	"context"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
)

// RoleRepository define el puerto de administración de roles.
type RoleRepository interface {
	AllRoles(ctx context.Context) ([]entity.Role, error)
	ListRoles(ctx context.Context, filters map[string]string, page int) (entity.Page[entity.Role], error)
	CreateRole(ctx context.Context, in dto.RoleRequest) (*entity.Role, error)
	UpdateRole(ctx context.Context, id int64, in dto.RoleRequest) (*entity.Role, error)
	DeleteRole(ctx context.Context, id int64) error
}
