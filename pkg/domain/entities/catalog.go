// Package entities holds the reference-catalog model: raw materials and
// products maintained alongside the simulator. Catalog data is reference
// information for the planning team; the simulation engine never reads it.
package entities

import (
	"fmt"
	"strings"
)

// RawMaterial is one catalog row describing a base material.
type RawMaterial struct {
	Name               string
	SalesVolume        float64
	Inventory          float64
	ProductionCapacity float64
}

// DefaultMaterials seeds every new catalog.
var DefaultMaterials = []string{"HV", "LV", "LLV", "3LV", "4LV"}

// NormalizeMaterialName canonicalizes a material name for keying. An empty
// result means the input was blank.
func NormalizeMaterialName(name string) string {
	return strings.ToUpper(strings.TrimSpace(name))
}

// NewRawMaterial creates a catalog row with a validated name.
func NewRawMaterial(name string) (*RawMaterial, error) {
	key := NormalizeMaterialName(name)
	if key == "" {
		return nil, fmt.Errorf("material name must not be empty")
	}
	return &RawMaterial{Name: key}, nil
}

// RawMaterialUpdate carries the fields of an upsert; nil fields keep the
// existing value.
type RawMaterialUpdate struct {
	SalesVolume        *float64
	Inventory          *float64
	ProductionCapacity *float64
}

// Apply writes the set fields onto the material.
func (u RawMaterialUpdate) Apply(m *RawMaterial) {
	if u.SalesVolume != nil {
		m.SalesVolume = *u.SalesVolume
	}
	if u.Inventory != nil {
		m.Inventory = *u.Inventory
	}
	if u.ProductionCapacity != nil {
		m.ProductionCapacity = *u.ProductionCapacity
	}
}

// Product is one catalog row describing a product and the base materials it
// uses.
type Product struct {
	Name          string
	BaseMaterials []string
}

// NewProduct creates a catalog product with a validated name and normalized
// material list. Blank material entries are dropped.
func NewProduct(name string, baseMaterials []string) (*Product, error) {
	key := strings.TrimSpace(name)
	if key == "" {
		return nil, fmt.Errorf("product name must not be empty")
	}
	var normalized []string
	for _, m := range baseMaterials {
		if n := NormalizeMaterialName(m); n != "" {
			normalized = append(normalized, n)
		}
	}
	return &Product{Name: key, BaseMaterials: normalized}, nil
}
