package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hyowon/smartsched/pkg/domain/entities"
	"github.com/hyowon/smartsched/pkg/domain/repositories"
	"github.com/hyowon/smartsched/pkg/infrastructure/repositories/csv"
	"github.com/hyowon/smartsched/pkg/infrastructure/repositories/sqlite"
	"github.com/hyowon/smartsched/pkg/interfaces/cli/output"
)

func defaultCatalogPath() string {
	if path := os.Getenv("SMARTSCHED_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "smartsched.db"
	}
	return filepath.Join(home, ".smartsched", "catalog.db")
}

// openCatalog opens the catalog database and seeds the default materials.
// The returned cleanup closes the connection.
func openCatalog(ctx context.Context, path string) (repositories.CatalogRepository, func(), error) {
	db, err := sqlite.OpenDB(path)
	if err != nil {
		return nil, nil, fmt.Errorf("opening catalog database: %w", err)
	}
	repo, err := sqlite.NewCatalogRepository(ctx, db)
	if err != nil {
		db.Close()
		return nil, nil, fmt.Errorf("initializing catalog: %w", err)
	}
	return repo, func() { db.Close() }, nil
}

func newCatalogCmd(app *App) *cobra.Command {
	var dbPath string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Maintain the raw-material and product reference catalog",
	}
	cmd.PersistentFlags().StringVar(&dbPath, "db", defaultCatalogPath(), "catalog database file")

	cmd.AddCommand(
		newCatalogMaterialCmd(&dbPath),
		newCatalogProductCmd(&dbPath),
		newCatalogImportCmd(&dbPath),
	)

	return cmd
}

func newCatalogMaterialCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "material",
		Short: "Manage raw materials",
	}

	var (
		sales     float64
		inventory float64
		capacity  float64
	)
	setCmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Create or update a raw material",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openCatalog(cmd.Context(), *dbPath)
			if err != nil {
				return err
			}
			defer closeDB()

			update := entities.RawMaterialUpdate{}
			if cmd.Flags().Changed("sales") {
				update.SalesVolume = &sales
			}
			if cmd.Flags().Changed("inventory") {
				update.Inventory = &inventory
			}
			if cmd.Flags().Changed("capacity") {
				update.ProductionCapacity = &capacity
			}

			material, err := repo.UpsertRawMaterial(cmd.Context(), args[0], update)
			if err != nil {
				return fmt.Errorf("updating material: %w", err)
			}
			fmt.Printf("Saved %s (sales %.1f, inventory %.1f, capacity %.1f)\n",
				material.Name, material.SalesVolume, material.Inventory, material.ProductionCapacity)
			return nil
		},
	}
	setCmd.Flags().Float64Var(&sales, "sales", 0, "sales volume")
	setCmd.Flags().Float64Var(&inventory, "inventory", 0, "inventory on hand")
	setCmd.Flags().Float64Var(&capacity, "capacity", 0, "production capacity")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List raw materials",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openCatalog(cmd.Context(), *dbPath)
			if err != nil {
				return err
			}
			defer closeDB()

			materials, err := repo.ListRawMaterials(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing materials: %w", err)
			}

			rows := make([][]string, 0, len(materials))
			for _, m := range materials {
				rows = append(rows, []string{
					m.Name,
					fmt.Sprintf("%.1f", m.SalesVolume),
					fmt.Sprintf("%.1f", m.Inventory),
					fmt.Sprintf("%.1f", m.ProductionCapacity),
				})
			}
			fmt.Print(output.RenderTable(
				[]string{"Material", "Sales", "Inventory", "Capacity"}, rows))
			return nil
		},
	}

	cmd.AddCommand(setCmd, listCmd)
	return cmd
}

func newCatalogProductCmd(dbPath *string) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "product",
		Short: "Manage catalog products",
	}

	var materials []string
	addCmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Register a product and the materials it uses",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			product, err := entities.NewProduct(args[0], materials)
			if err != nil {
				return err
			}

			repo, closeDB, err := openCatalog(cmd.Context(), *dbPath)
			if err != nil {
				return err
			}
			defer closeDB()

			if err := repo.RegisterProduct(cmd.Context(), product); err != nil {
				return fmt.Errorf("registering product: %w", err)
			}
			fmt.Printf("Registered %s (%s)\n",
				product.Name, strings.Join(product.BaseMaterials, ", "))
			return nil
		},
	}
	addCmd.Flags().StringSliceVarP(&materials, "materials", "m", nil, "base materials used by the product")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, args []string) error {
			repo, closeDB, err := openCatalog(cmd.Context(), *dbPath)
			if err != nil {
				return err
			}
			defer closeDB()

			products, err := repo.ListProducts(cmd.Context())
			if err != nil {
				return fmt.Errorf("listing products: %w", err)
			}

			rows := make([][]string, 0, len(products))
			for _, p := range products {
				rows = append(rows, []string{
					p.Name,
					strings.Join(p.BaseMaterials, ", "),
				})
			}
			fmt.Print(output.RenderTable([]string{"Product", "Materials"}, rows))
			return nil
		},
	}

	cmd.AddCommand(addCmd, listCmd)
	return cmd
}

func newCatalogImportCmd(dbPath *string) *cobra.Command {
	var materialsFile, productsFile string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import catalog rows from CSV files",
		RunE: func(cmd *cobra.Command, args []string) error {
			if materialsFile == "" && productsFile == "" {
				return fmt.Errorf("must specify --materials or --products")
			}

			repo, closeDB, err := openCatalog(cmd.Context(), *dbPath)
			if err != nil {
				return err
			}
			defer closeDB()

			loader := csv.NewLoader()

			if materialsFile != "" {
				materials, err := loader.LoadRawMaterials(materialsFile)
				if err != nil {
					return fmt.Errorf("error loading materials: %w", err)
				}
				for _, m := range materials {
					update := entities.RawMaterialUpdate{
						SalesVolume:        &m.SalesVolume,
						Inventory:          &m.Inventory,
						ProductionCapacity: &m.ProductionCapacity,
					}
					if _, err := repo.UpsertRawMaterial(cmd.Context(), m.Name, update); err != nil {
						return fmt.Errorf("importing material %s: %w", m.Name, err)
					}
				}
				fmt.Printf("Imported %d materials from %s\n", len(materials), materialsFile)
			}

			if productsFile != "" {
				products, err := loader.LoadProducts(productsFile)
				if err != nil {
					return fmt.Errorf("error loading products: %w", err)
				}
				for _, p := range products {
					if err := repo.RegisterProduct(cmd.Context(), p); err != nil {
						return fmt.Errorf("importing product %s: %w", p.Name, err)
					}
				}
				fmt.Printf("Imported %d products from %s\n", len(products), productsFile)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&materialsFile, "materials", "", "raw materials CSV file")
	cmd.Flags().StringVar(&productsFile, "products", "", "products CSV file")

	return cmd
}
