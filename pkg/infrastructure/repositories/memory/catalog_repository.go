package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/hyowon/smartsched/pkg/domain/entities"
	"github.com/hyowon/smartsched/pkg/domain/repositories"
)

// CatalogRepository provides in-memory catalog storage, seeded with the
// default material set.
type CatalogRepository struct {
	mu        sync.RWMutex
	materials map[string]*entities.RawMaterial
	products  map[string]*entities.Product
}

// NewCatalogRepository creates a seeded in-memory catalog.
func NewCatalogRepository() *CatalogRepository {
	r := &CatalogRepository{
		materials: make(map[string]*entities.RawMaterial),
		products:  make(map[string]*entities.Product),
	}
	for _, name := range entities.DefaultMaterials {
		r.materials[name] = &entities.RawMaterial{Name: name}
	}
	return r
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

// UpsertRawMaterial creates or updates a material row.
func (r *CatalogRepository) UpsertRawMaterial(ctx context.Context, name string, update entities.RawMaterialUpdate) (*entities.RawMaterial, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := entities.NormalizeMaterialName(name)
	if key == "" {
		return nil, fmt.Errorf("material name must not be empty")
	}
	material, ok := r.materials[key]
	if !ok {
		material = &entities.RawMaterial{Name: key}
		r.materials[key] = material
	}
	update.Apply(material)

	stored := *material
	return &stored, nil
}

// GetRawMaterial returns one material row.
func (r *CatalogRepository) GetRawMaterial(ctx context.Context, name string) (*entities.RawMaterial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	material, ok := r.materials[entities.NormalizeMaterialName(name)]
	if !ok {
		return nil, fmt.Errorf("material %q: %w", name, repositories.ErrNotFound)
	}
	stored := *material
	return &stored, nil
}

// ListRawMaterials returns every material sorted by name.
func (r *CatalogRepository) ListRawMaterials(ctx context.Context) ([]*entities.RawMaterial, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	materials := make([]*entities.RawMaterial, 0, len(r.materials))
	for _, m := range r.materials {
		stored := *m
		materials = append(materials, &stored)
	}
	sort.Slice(materials, func(i, j int) bool {
		return materials[i].Name < materials[j].Name
	})
	return materials, nil
}

// RegisterProduct creates or replaces a product and auto-creates unknown
// base materials.
func (r *CatalogRepository) RegisterProduct(ctx context.Context, product *entities.Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if product == nil || product.Name == "" {
		return fmt.Errorf("product name must not be empty")
	}
	stored := *product
	stored.BaseMaterials = append([]string(nil), product.BaseMaterials...)
	r.products[stored.Name] = &stored

	for _, name := range stored.BaseMaterials {
		if _, ok := r.materials[name]; !ok {
			r.materials[name] = &entities.RawMaterial{Name: name}
		}
	}
	return nil
}

// ListProducts returns every product sorted by name.
func (r *CatalogRepository) ListProducts(ctx context.Context) ([]*entities.Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	products := make([]*entities.Product, 0, len(r.products))
	for _, p := range r.products {
		stored := *p
		stored.BaseMaterials = append([]string(nil), p.BaseMaterials...)
		products = append(products, &stored)
	}
	sort.Slice(products, func(i, j int) bool {
		return products[i].Name < products[j].Name
	})
	return products, nil
}
