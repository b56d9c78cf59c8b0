// Package csv imports reference-catalog data from CSV files.
package csv

import (
	"encoding/csv"
	"fmt"
	"os"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/hyowon/smartsched/pkg/domain/entities"
)

// Loader handles loading catalog data from CSV files.
type Loader struct{}

// NewLoader creates a new CSV loader.
func NewLoader() *Loader {
	return &Loader{}
}

// LoadRawMaterials loads material rows from a CSV file with the header
// name,sales_volume,inventory,production_capacity.
func (l *Loader) LoadRawMaterials(filename string) ([]*entities.RawMaterial, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("materials CSV: %w", err)
	}

	expectedHeader := []string{"name", "sales_volume", "inventory", "production_capacity"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("materials CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var materials []*entities.RawMaterial
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("materials CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		material, err := parseRawMaterial(record)
		if err != nil {
			return nil, fmt.Errorf("materials CSV row %d: %w", i+2, err)
		}
		materials = append(materials, material)
	}
	return materials, nil
}

// LoadProducts loads product rows from a CSV file with the header
// name,base_materials; base materials are separated by semicolons.
func (l *Loader) LoadProducts(filename string) ([]*entities.Product, error) {
	records, err := readAll(filename)
	if err != nil {
		return nil, fmt.Errorf("products CSV: %w", err)
	}

	expectedHeader := []string{"name", "base_materials"}
	if !validateHeader(records[0], expectedHeader) {
		return nil, fmt.Errorf("products CSV header mismatch. Expected: %v, Got: %v", expectedHeader, records[0])
	}

	var products []*entities.Product
	for i, record := range records[1:] {
		if len(record) != len(expectedHeader) {
			return nil, fmt.Errorf("products CSV row %d: expected %d columns, got %d", i+2, len(expectedHeader), len(record))
		}
		product, err := entities.NewProduct(record[0], strings.Split(record[1], ";"))
		if err != nil {
			return nil, fmt.Errorf("products CSV row %d: %w", i+2, err)
		}
		products = append(products, product)
	}
	return products, nil
}

func readAll(filename string) ([][]string, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", filename, err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if len(records) < 2 {
		return nil, fmt.Errorf("%s must have header and at least one data row", filename)
	}
	return records, nil
}

func parseRawMaterial(record []string) (*entities.RawMaterial, error) {
	material, err := entities.NewRawMaterial(record[0])
	if err != nil {
		return nil, err
	}
	if material.SalesVolume, err = parseQuantity(record[1]); err != nil {
		return nil, fmt.Errorf("sales_volume: %w", err)
	}
	if material.Inventory, err = parseQuantity(record[2]); err != nil {
		return nil, fmt.Errorf("inventory: %w", err)
	}
	if material.ProductionCapacity, err = parseQuantity(record[3]); err != nil {
		return nil, fmt.Errorf("production_capacity: %w", err)
	}
	return material, nil
}

// parseQuantity parses a non-negative decimal quantity. Empty cells are 0.
func parseQuantity(value string) (float64, error) {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return 0, nil
	}
	d, err := decimal.NewFromString(trimmed)
	if err != nil {
		return 0, fmt.Errorf("invalid quantity %q: %w", value, err)
	}
	if d.IsNegative() {
		return 0, fmt.Errorf("quantity %q must not be negative", value)
	}
	f, _ := d.Float64()
	return f, nil
}

func validateHeader(header, expected []string) bool {
	if len(header) != len(expected) {
		return false
	}
	for i, h := range header {
		if strings.TrimSpace(strings.ToLower(h)) != expected[i] {
			return false
		}
	}
	return true
}
