package admin

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/tevo-storefront/internal/domain/entity"
	"github.com/jhoicas/tevo-storefront/internal/domain/repository"
)

// Stats rankings del panel de estadísticas.
type Stats struct {
	TopSellers []entity.TopSeller `json:"topSellers"`
	TopUsers   []entity.TopUser   `json:"topUsers"`
}

// LoadStats pide ambos rankings en paralelo.
func LoadStats(ctx context.Context, products repository.ProductRepository, users repository.UserRepository) (*Stats, error) {
	var out Stats
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		sellers, err := products.TopSellers(gctx)
		if err != nil {
			return fmt.Errorf("admin: top ventas: %w", err)
		}
		out.TopSellers = sellers
		return nil
	})
	g.Go(func() error {
		top, err := users.TopUsers(gctx)
		if err != nil {
			return fmt.Errorf("admin: top usuarios: %w", err)
		}
		out.TopUsers = top
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if out.TopSellers == nil {
		out.TopSellers = []entity.TopSeller{}
	}
	if out.TopUsers == nil {
		out.TopUsers = []entity.TopUser{}
	}
	return &out, nil
}
