package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/hyowon/smartsched/pkg/domain/entities"
	"github.com/hyowon/smartsched/pkg/domain/repositories"
)

// CatalogRepository implements the catalog store on SQLite. Base material
// lists are stored as a comma-joined column; material names never contain
// commas after normalization.
type CatalogRepository struct {
	db DBTX
}

// NewCatalogRepository creates a repository over an opened database and
// seeds the default material rows if they are missing.
func NewCatalogRepository(ctx context.Context, conn DBTX) (*CatalogRepository, error) {
	r := &CatalogRepository{db: conn}
	for _, name := range entities.DefaultMaterials {
		_, err := conn.ExecContext(ctx,
			`INSERT OR IGNORE INTO raw_materials (name) VALUES (?)`, name)
		if err != nil {
			return nil, fmt.Errorf("seeding material %s: %w", name, err)
		}
	}
	return r, nil
}

// Verify interface compliance
var _ repositories.CatalogRepository = (*CatalogRepository)(nil)

func (r *CatalogRepository) UpsertRawMaterial(ctx context.Context, name string, update entities.RawMaterialUpdate) (*entities.RawMaterial, error) {
	key := entities.NormalizeMaterialName(name)
	if key == "" {
		return nil, fmt.Errorf("material name must not be empty")
	}

	material, err := r.GetRawMaterial(ctx, key)
	if err != nil {
		if !errors.Is(err, repositories.ErrNotFound) {
			return nil, err
		}
		material = &entities.RawMaterial{Name: key}
	}
	update.Apply(material)

	_, err = r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO raw_materials (name, sales_volume, inventory, production_capacity)
		 VALUES (?, ?, ?, ?)`,
		material.Name, material.SalesVolume, material.Inventory, material.ProductionCapacity)
	if err != nil {
		return nil, fmt.Errorf("upserting material %s: %w", key, err)
	}
	return material, nil
}

func (r *CatalogRepository) GetRawMaterial(ctx context.Context, name string) (*entities.RawMaterial, error) {
	key := entities.NormalizeMaterialName(name)
	row := r.db.QueryRowContext(ctx,
		`SELECT name, sales_volume, inventory, production_capacity
		 FROM raw_materials WHERE name = ?`, key)

	var m entities.RawMaterial
	err := row.Scan(&m.Name, &m.SalesVolume, &m.Inventory, &m.ProductionCapacity)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("material %q: %w", name, repositories.ErrNotFound)
		}
		return nil, fmt.Errorf("scanning material %s: %w", key, err)
	}
	return &m, nil
}

func (r *CatalogRepository) ListRawMaterials(ctx context.Context) ([]*entities.RawMaterial, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, sales_volume, inventory, production_capacity
		 FROM raw_materials ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing materials: %w", err)
	}
	defer rows.Close()

	var materials []*entities.RawMaterial
	for rows.Next() {
		var m entities.RawMaterial
		if err := rows.Scan(&m.Name, &m.SalesVolume, &m.Inventory, &m.ProductionCapacity); err != nil {
			return nil, fmt.Errorf("scanning material row: %w", err)
		}
		materials = append(materials, &m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating material rows: %w", err)
	}
	return materials, nil
}

func (r *CatalogRepository) RegisterProduct(ctx context.Context, product *entities.Product) error {
	if product == nil || product.Name == "" {
		return fmt.Errorf("product name must not be empty")
	}

	_, err := r.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO products (name, base_materials) VALUES (?, ?)`,
		product.Name, strings.Join(product.BaseMaterials, ","))
	if err != nil {
		return fmt.Errorf("registering product %s: %w", product.Name, err)
	}

	for _, name := range product.BaseMaterials {
		_, err := r.db.ExecContext(ctx,
			`INSERT OR IGNORE INTO raw_materials (name) VALUES (?)`, name)
		if err != nil {
			return fmt.Errorf("creating material %s for product %s: %w", name, product.Name, err)
		}
	}
	return nil
}

func (r *CatalogRepository) ListProducts(ctx context.Context) ([]*entities.Product, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT name, base_materials FROM products ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("listing products: %w", err)
	}
	defer rows.Close()

	var products []*entities.Product
	for rows.Next() {
		var (
			p      entities.Product
			joined string
		)
		if err := rows.Scan(&p.Name, &joined); err != nil {
			return nil, fmt.Errorf("scanning product row: %w", err)
		}
		if joined != "" {
			p.BaseMaterials = strings.Split(joined, ",")
		}
		products = append(products, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating product rows: %w", err)
	}
	return products, nil
}
