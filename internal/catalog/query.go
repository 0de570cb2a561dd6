package catalog

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/polashmiya/eGadget-Ecommerce/internal/domain"
)

// SortKey selects the attribute results are ordered by.
type SortKey string

const (
	SortByName   SortKey = "name"
	SortByPrice  SortKey = "price"
	SortByRating SortKey = "rating"
	// SortByNewest is accepted but performs no reordering: products carry
	// no creation timestamp, so there is nothing to order by.
	SortByNewest SortKey = "newest"
)

// SortOrder represents the sort direction.
type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

// Filters is the filter/sort specification for a catalog query. A nil
// field places no constraint on that dimension; price and rating bounds
// are inclusive.
type Filters struct {
	Category    *string
	Subcategory *string
	Brand       *string
	MinPrice    *float64
	MaxPrice    *float64
	MinRating   *float64
	SortBy      SortKey
	SortOrder   SortOrder
}

// Search produces a filtered, sorted view of products. The result is a
// fresh slice; the input is never reordered or aliased.
//
// A free-text query retains only products whose name, description,
// brand or category contains it case-insensitively. An empty or
// whitespace-only query places no constraint, and string filters set to
// the empty string are treated as unset.
func Search(products []domain.Product, query string, f Filters) []domain.Product {
	out := make([]domain.Product, 0, len(products))

	q := strings.ToLower(strings.TrimSpace(query))
	for _, p := range products {
		if q != "" && !matchesQuery(p, q) {
			continue
		}
		if !matchesFilters(p, f) {
			continue
		}
		out = append(out, p)
	}

	sortProducts(out, f.SortBy, f.SortOrder)
	return out
}

func matchesQuery(p domain.Product, q string) bool {
	return strings.Contains(strings.ToLower(p.Name), q) ||
		strings.Contains(strings.ToLower(p.Description), q) ||
		strings.Contains(strings.ToLower(p.Brand), q) ||
		strings.Contains(strings.ToLower(p.Category), q)
}

func matchesFilters(p domain.Product, f Filters) bool {
	if f.Category != nil && *f.Category != "" && p.Category != *f.Category {
		return false
	}
	if f.Subcategory != nil && *f.Subcategory != "" && p.Subcategory != *f.Subcategory {
		return false
	}
	if f.Brand != nil && *f.Brand != "" && p.Brand != *f.Brand {
		return false
	}
	if f.MinPrice != nil && p.Price < *f.MinPrice {
		return false
	}
	if f.MaxPrice != nil && p.Price > *f.MaxPrice {
		return false
	}
	if f.MinRating != nil && p.Rating < *f.MinRating {
		return false
	}
	return true
}

func sortProducts(products []domain.Product, key SortKey, order SortOrder) {
	var cmp func(a, b domain.Product) int

	switch key {
	case SortByName:
		// Collators carry internal buffers, so each sort gets its own.
		col := collate.New(language.English, collate.Loose)
		cmp = func(a, b domain.Product) int {
			return col.CompareString(a.Name, b.Name)
		}
	case SortByPrice:
		cmp = func(a, b domain.Product) int {
			return compareFloat(a.Price, b.Price)
		}
	case SortByRating:
		cmp = func(a, b domain.Product) int {
			return compareFloat(a.Rating, b.Rating)
		}
	default:
		// SortByNewest and unknown keys keep the filtered order.
		return
	}

	sort.SliceStable(products, func(i, j int) bool {
		c := cmp(products[i], products[j])
		if order == SortDesc {
			return c > 0
		}
		return c < 0
	})
}

func compareFloat(a, b float64) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	default:
		return 0
	}
}
