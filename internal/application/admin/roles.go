package admin

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/tevo-storefront/internal/application/dto"
	"github.com/jhoicas/tevo-storefront/internal/application/listing"
	"github.com/jhoicas/tevo-storefront/internal/application/present"
	"github.com/jhoicas/tevo-storefront/internal/application/workflow"
	"github.com/jhoicas/tevo-storefront/internal/domain"
	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
	"github.com/jhoicas/tevo-storefront/pkg/logger"
)

// RoleForm formulario de rol.
type RoleForm struct {
	ID   int64  `json:"id,omitempty"`
	Name string `json:"name" validate:"notblank"`
}

var roleMessages = workflow.Messages{"name": "El nombre es obligatorio"}

// RoleRow fila del listado de roles.
type RoleRow struct {
	entity.Role
	Label     string `json:"label"`
	Protected bool   `json:"protected"`
}

// RoleRowFrom añade la etiqueta sin prefijo y la marca de rol del sistema.
func RoleRowFrom(r entity.Role) RoleRow {
	return RoleRow{Role: r, Label: present.RoleLabel(r.Name), Protected: r.IsProtected()}
}

// RolesScreen administración de roles. Los roles del sistema no se editan ni se borran.
type RolesScreen struct {
	List   *listing.Controller[entity.Role]
	Modal  *workflow.Modal[RoleForm]
	Delete *workflow.DeleteFlow[entity.Role]
	Banner *workflow.Banner

	repo repository.RoleRepository
}

// NewRolesScreen filtro: name.
func NewRolesScreen(repo repository.RoleRepository, v *workflow.Validator, bannerDelay time.Duration, log *logger.Logger) *RolesScreen {
	log = componentLogger(log, "admin-roles")
	s := &RolesScreen{Banner: workflow.NewBanner(bannerDelay), repo: repo}
	s.List = listing.New(repo.ListRoles,
		listing.WithEmptyMessage("No hay roles."),
		listing.WithLogger(log))

	s.Modal = workflow.NewModal(workflow.ModalConfig[RoleForm]{
		Validate: func(f RoleForm) workflow.FieldErrors {
			if errs := v.Struct(f, roleMessages); errs != nil {
				return errs
			}
			if f.ID != 0 && (entity.Role{Name: f.Name}).IsProtected() {
				return workflow.FieldErrors{"name": "Ese nombre está reservado para un rol del sistema"}
			}
			return nil
		},
		Submit: func(ctx context.Context, mode workflow.Mode, f RoleForm) error {
			in := dto.RoleRequest{Name: strings.TrimSpace(f.Name)}
			if mode == workflow.ModeEdit {
				_, err := repo.UpdateRole(ctx, f.ID, in)
				return err
			}
			_, err := repo.CreateRole(ctx, in)
			return err
		},
		OnSuccess: s.List.Reload,
		SuccessMessage: func(m workflow.Mode) string {
			if m == workflow.ModeEdit {
				return "¡Rol editado correctamente!"
			}
			return "¡Rol creado correctamente!"
		},
		FailureMessage: "Ya existe un rol con ese nombre",
		Banner:         s.Banner,
		Log:            log,
	})

	s.Delete = workflow.NewDeleteFlow(workflow.DeleteConfig[entity.Role]{
		Resource:       "rol",
		Name:           func(r entity.Role) string { return present.RoleLabel(r.Name) },
		Protected:      entity.Role.IsProtected,
		Delete:         func(ctx context.Context, r entity.Role) error { return repo.DeleteRole(ctx, r.ID) },
		OnSuccess:      s.List.Reload,
		SuccessMessage: "¡Rol eliminado correctamente!",
		FailureMessage: "Error al eliminar el rol",
		Banner:         s.Banner,
		Log:            log,
	})
	return s
}

// EditRole abre la edición salvo para roles del sistema.
func (s *RolesScreen) EditRole(r entity.Role) error {
	if r.IsProtected() {
		return errProtectedRole
	}
	s.Modal.OpenEdit(RoleForm{ID: r.ID, Name: r.Name})
	return nil
}

// Role busca id en la página cargada o, si no está, en la lista completa de roles.
func (s *RolesScreen) Role(ctx context.Context, id int64) (entity.Role, error) {
	if r, ok := findLoaded(s.List, id, func(r entity.Role) int64 { return r.ID }); ok {
		return r, nil
	}
	all, err := s.repo.AllRoles(ctx)
	if err != nil {
		return entity.Role{}, fmt.Errorf("admin: rol %d: %w", id, err)
	}
	for _, r := range all {
		if r.ID == id {
			return r, nil
		}
	}
	return entity.Role{}, fmt.Errorf("admin: rol %d: %w", id, domain.ErrNotFound)
}
