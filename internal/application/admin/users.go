package admin

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/jhoicas/tevo-storefront/internal/application/listing"
	"github.com/jhoicas/tevo-storefront/internal/application/present"
	"github.com/jhoicas/tevo-storefront/internal/application/workflow"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

var errProtectedRole = fmt.Errorf("admin: rol del sistema: %w", domain.ErrProtectedRecord)

// RoleEditor edición de los roles de un usuario. Los roles fijos (ROLE_CLIENTE y, para la
// cuenta admin, ROLE_ADMIN) no aparecen en la lista y se envían siempre.
type RoleEditor struct {
	User     entity.User
	Fixed    []string
	Transfer *present.TransferList[string]
}

// fixedRoles roles que el usuario conserva siempre.
func fixedRoles(u entity.User) []string {
	var fixed []string
	if u.HasRole(entity.RoleCliente) {
		fixed = append(fixed, entity.RoleCliente)
	}
	if u.IsPrimordialAdmin() && u.HasRole(entity.RoleAdmin) {
		fixed = append(fixed, entity.RoleAdmin)
	}
	return fixed
}

// NewRoleEditor reparte allRoles entre disponibles y asignados.
func NewRoleEditor(u entity.User, allRoles []entity.Role) *RoleEditor {
	hidden := []string{entity.RoleCliente}
	if u.IsPrimordialAdmin() {
		hidden = append(hidden, entity.RoleAdmin)
	}
	var assigned, available []string
	for _, r := range u.Roles {
		if !slices.Contains(hidden, r) {
			assigned = append(assigned, r)
		}
	}
	for _, r := range allRoles {
		if !u.HasRole(r.Name) && !slices.Contains(hidden, r.Name) {
			available = append(available, r.Name)
		}
	}
	return &RoleEditor{
		User:     u,
		Fixed:    fixedRoles(u),
		Transfer: present.NewTransferList(available, assigned),
	}
}

// Roles lista final a enviar: fijos primero, después los asignados.
func (e *RoleEditor) Roles() []string {
	return append(slices.Clone(e.Fixed), e.Transfer.Right()...)
}

// UsersScreen administración de usuarios.
type UsersScreen struct {
	List   *listing.Controller[entity.User]
	Delete *workflow.DeleteFlow[entity.User]
	Banner *workflow.Banner

	users repository.UserRepository
	roles repository.RoleRepository
	log   *logger.Logger
}

// NewUsersScreen filtros: username, email, nif, role.
func NewUsersScreen(users repository.UserRepository, roles repository.RoleRepository, bannerDelay time.Duration, log *logger.Logger) *UsersScreen {
	log = componentLogger(log, "admin-users")
	s := &UsersScreen{Banner: workflow.NewBanner(bannerDelay), users: users, roles: roles, log: log}
	s.List = listing.New(users.ListUsers,
		listing.WithEmptyMessage("No se encontraron usuarios."),
		listing.WithLogger(log))
	s.Delete = workflow.NewDeleteFlow(workflow.DeleteConfig[entity.User]{
		Resource:       "usuario",
		Name:           func(u entity.User) string { return u.Username },
		Protected:      entity.User.IsPrimordialAdmin,
		Delete:         func(ctx context.Context, u entity.User) error { return users.DeleteUser(ctx, u.ID) },
		OnSuccess:      s.List.Reload,
		SuccessMessage: "¡Usuario eliminado correctamente!",
		FailureMessage: "Error al eliminar el usuario",
		Banner:         s.Banner,
		Log:            log,
	})
	return s
}

// OpenRoleEditor carga todos los roles y prepara la edición del usuario.
func (s *UsersScreen) OpenRoleEditor(ctx context.Context, u entity.User) (*RoleEditor, error) {
	all, err := s.roles.AllRoles(ctx)
	if err != nil {
		return nil, fmt.Errorf("admin: cargar roles: %w", err)
	}
	return NewRoleEditor(u, all), nil
}

// SaveRoles envía la lista del editor y recarga el listado.
func (s *UsersScreen) SaveRoles(ctx context.Context, e *RoleEditor) error {
	if err := s.users.UpdateUserRoles(ctx, e.User.ID, e.Roles()); err != nil {
		s.Banner.Error("Error al actualizar los roles del usuario")
		return err
	}
	s.Banner.Success("¡Roles actualizados correctamente!")
	if err := s.List.Reload(ctx); err != nil {
		s.log.Warn().Err(err).Msg("recarga tras editar roles")
	}
	return nil
}

// User busca id en la página cargada; el backend no expone GET /users/:id.
func (s *UsersScreen) User(id int64) (entity.User, error) {
	if u, ok := findLoaded(s.List, id, func(u entity.User) int64 { return u.ID }); ok {
		return u, nil
	}
	return entity.User{}, fmt.Errorf("admin: usuario %d: %w", id, domain.ErrNotFound)
}
