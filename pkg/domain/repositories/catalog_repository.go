// Package repositories defines the persistence interfaces of the reference
// catalog.
package repositories

import (
	"context"
	"errors"

	"github.com/hyowon/smartsched/pkg/domain/entities"
)

// ErrNotFound is returned when a catalog row does not exist.
var ErrNotFound = errors.New("not found")

// CatalogRepository stores raw materials and products. Implementations must
// key materials by their normalized name and list rows in name order.
type CatalogRepository interface {
	// UpsertRawMaterial creates or updates a material and returns the
	// stored row. Unset update fields keep existing values.
	UpsertRawMaterial(ctx context.Context, name string, update entities.RawMaterialUpdate) (*entities.RawMaterial, error)

	// GetRawMaterial returns one material or ErrNotFound.
	GetRawMaterial(ctx context.Context, name string) (*entities.RawMaterial, error)

	// ListRawMaterials returns every material sorted by name.
	ListRawMaterials(ctx context.Context) ([]*entities.RawMaterial, error)

	// RegisterProduct creates or replaces a product. Base materials unknown
	// to the catalog are created as empty material rows.
	RegisterProduct(ctx context.Context, product *entities.Product) error

	// ListProducts returns every product sorted by name.
	ListProducts(ctx context.Context) ([]*entities.Product, error)
}
