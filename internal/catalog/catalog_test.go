package catalog

import (
	"testing"

	"github.com/polashmiya/eGadget-Ecommerce/internal/domain"
)

func TestLoadEmbeddedCatalog(t *testing.T) {
	c, err := Load()
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if c.Len() == 0 {
		t.Fatal("embedded catalog must not be empty")
	}
	if len(c.Categories()) == 0 {
		t.Fatal("embedded catalog must have categories")
	}
	if len(c.Brands()) == 0 {
		t.Fatal("embedded catalog must have brands")
	}

	// Every product's category must be a known category.
	known := make(map[string]bool)
	for _, cat := range c.Categories() {
		known[cat.Name] = true
	}
	for _, p := range c.Products() {
		if !known[p.Category] {
			t.Errorf("product %s has unknown category %q", p.ID, p.Category)
		}
		if p.Subcategory != "" && !c.ValidSubcategory(p.Category, p.Subcategory) {
			t.Errorf("product %s has subcategory %q outside category %q", p.ID, p.Subcategory, p.Category)
		}
		if p.Price <= 0 {
			t.Errorf("product %s has non-positive price %v", p.ID, p.Price)
		}
		if p.Rating < 0 || p.Rating > 5 {
			t.Errorf("product %s has rating %v outside 0-5", p.ID, p.Rating)
		}
		if p.StockQuantity < 0 {
			t.Errorf("product %s has negative stock quantity", p.ID)
		}
	}
}

func TestFindByID(t *testing.T) {
	c := New(fixtureProducts(), nil)

	p, err := c.FindByID("p-3")
	if err != nil {
		t.Fatalf("FindByID failed: %v", err)
	}
	if p.Name != "Momentum Watch" {
		t.Errorf("FindByID returned %q", p.Name)
	}

	if _, err := c.FindByID("missing"); err != ErrProductNotFound {
		t.Errorf("expected ErrProductNotFound, got %v", err)
	}
}

func TestFeaturedCapped(t *testing.T) {
	products := make([]domain.Product, 12)
	for i := range products {
		products[i] = domain.Product{ID: productID(i), Name: "P", Featured: true}
	}
	c := New(products, nil)

	got := c.Featured()
	if len(got) != FeaturedLimit {
		t.Errorf("Featured() returned %d products, cap is %d", len(got), FeaturedLimit)
	}
	for _, p := range got {
		if !p.Featured {
			t.Errorf("product %s is not flagged featured", p.ID)
		}
	}
}

func TestBrandsDistinctFirstEncountered(t *testing.T) {
	c := New([]domain.Product{
		{ID: "a", Brand: "Nimbus"},
		{ID: "b", Brand: "Aurion"},
		{ID: "c", Brand: "Nimbus"},
	}, nil)

	got := c.Brands()
	if len(got) != 2 || got[0] != "Nimbus" || got[1] != "Aurion" {
		t.Errorf("Brands() = %v", got)
	}
}

func TestPriceRange(t *testing.T) {
	c := New(fixtureProducts(), nil)

	min, max := c.PriceRange()
	if min != 25 || max != 250 {
		t.Errorf("PriceRange() = %v, %v, want 25, 250", min, max)
	}

	empty := New(nil, nil)
	if min, max := empty.PriceRange(); min != 0 || max != 0 {
		t.Errorf("empty catalog PriceRange() = %v, %v, want 0, 0", min, max)
	}
}

func TestNormalizeFiltersClearsForeignSubcategory(t *testing.T) {
	c := New(fixtureProducts(), []domain.Category{
		{Name: "Audio", Subcategories: []string{"Headphones", "Speakers"}},
		{Name: "Wearables", Subcategories: []string{"Smartwatches"}},
	})

	tests := []struct {
		name        string
		filters     Filters
		wantCleared bool
	}{
		{
			name:        "subcategory outside new category is cleared",
			filters:     Filters{Category: strPtr("Wearables"), Subcategory: strPtr("Headphones")},
			wantCleared: true,
		},
		{
			name:        "subcategory inside category survives",
			filters:     Filters{Category: strPtr("Audio"), Subcategory: strPtr("Headphones")},
			wantCleared: false,
		},
		{
			name:        "no category leaves subcategory alone",
			filters:     Filters{Subcategory: strPtr("Headphones")},
			wantCleared: false,
		},
		{
			name:        "unknown category clears subcategory",
			filters:     Filters{Category: strPtr("Nope"), Subcategory: strPtr("Headphones")},
			wantCleared: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := c.NormalizeFilters(tt.filters)
			if tt.wantCleared && got.Subcategory != nil {
				t.Errorf("subcategory should be cleared, got %q", *got.Subcategory)
			}
			if !tt.wantCleared && got.Subcategory == nil {
				t.Error("subcategory should survive")
			}
		})
	}
}

func TestProductsReturnsCopy(t *testing.T) {
	c := New(fixtureProducts(), nil)

	got := c.Products()
	got[0] = domain.Product{ID: "mutated"}

	if c.Products()[0].ID == "mutated" {
		t.Error("mutating the returned slice must not affect the catalog")
	}
}
