package catalog

import (
	"embed"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/polashmiya/eGadget-Ecommerce/internal/domain"
)

//go:embed data/*.json
var dataFS embed.FS

var (
	ErrProductNotFound = errors.New("product not found")
)

// FeaturedLimit caps how many featured products are surfaced at once.
const FeaturedLimit = 8

// Catalog is the static, read-only product collection the storefront
// serves. It is loaded once at startup and never mutated afterwards.
type Catalog struct {
	products   []domain.Product
	categories []domain.Category
	byID       map[string]int
	brands     []string
	subcats    map[string]map[string]bool
}

// New builds a Catalog from an explicit product and category list.
// Primarily useful for tests; production code loads the embedded data
// via Load.
func New(products []domain.Product, categories []domain.Category) *Catalog {
	c := &Catalog{
		products:   products,
		categories: categories,
		byID:       make(map[string]int, len(products)),
		subcats:    make(map[string]map[string]bool, len(categories)),
	}

	for i, p := range products {
		c.byID[p.ID] = i
	}

	for _, cat := range categories {
		set := make(map[string]bool, len(cat.Subcategories))
		for _, sub := range cat.Subcategories {
			set[sub] = true
		}
		c.subcats[cat.Name] = set
	}

	seen := make(map[string]bool)
	for _, p := range products {
		if !seen[p.Brand] {
			seen[p.Brand] = true
			c.brands = append(c.brands, p.Brand)
		}
	}

	return c
}

// Load parses the embedded catalog data and returns the catalog.
func Load() (*Catalog, error) {
	var products []domain.Product
	if err := loadJSON("data/products.json", &products); err != nil {
		return nil, err
	}

	var categories []domain.Category
	if err := loadJSON("data/categories.json", &categories); err != nil {
		return nil, err
	}

	return New(products, categories), nil
}

func loadJSON(name string, v interface{}) error {
	raw, err := dataFS.ReadFile(name)
	if err != nil {
		return fmt.Errorf("failed to read embedded %s: %w", name, err)
	}
	if err := json.Unmarshal(raw, v); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// Products returns a copy of the full product list.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// FindByID looks up a single product by its identifier.
func (c *Catalog) FindByID(id string) (domain.Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return domain.Product{}, ErrProductNotFound
	}
	return c.products[i], nil
}

// Featured returns the products flagged as featured, in catalog order,
// capped at FeaturedLimit.
func (c *Catalog) Featured() []domain.Product {
	var out []domain.Product
	for _, p := range c.products {
		if !p.Featured {
			continue
		}
		out = append(out, p)
		if len(out) == FeaturedLimit {
			break
		}
	}
	return out
}

// Categories returns a copy of the category list.
func (c *Catalog) Categories() []domain.Category {
	out := make([]domain.Category, len(c.categories))
	copy(out, c.categories)
	return out
}

// Brands returns the distinct brand names in first-encountered order.
func (c *Catalog) Brands() []string {
	out := make([]string, len(c.brands))
	copy(out, c.brands)
	return out
}

// PriceRange returns the lowest and highest product price. Both are
// zero when the catalog is empty.
func (c *Catalog) PriceRange() (min, max float64) {
	for i, p := range c.products {
		if i == 0 || p.Price < min {
			min = p.Price
		}
		if p.Price > max {
			max = p.Price
		}
	}
	return min, max
}

// ValidSubcategory reports whether sub belongs to the named category's
// known subcategory set.
func (c *Catalog) ValidSubcategory(category, sub string) bool {
	return c.subcats[category][sub]
}

// NormalizeFilters clears a subcategory filter that does not belong to
// the selected category. The storefront keeps a stale subcategory out of
// the query when the category changes underneath it.
func (c *Catalog) NormalizeFilters(f Filters) Filters {
	if f.Category != nil && f.Subcategory != nil && !c.ValidSubcategory(*f.Category, *f.Subcategory) {
		f.Subcategory = nil
	}
	return f
}
