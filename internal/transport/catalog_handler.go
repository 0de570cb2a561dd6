package transport

import (
	"errors"
	"net/http"
	"net/url"
	"strconv"

	"github.com/polashmiya/eGadget-Ecommerce/internal/catalog"
	"github.com/polashmiya/eGadget-Ecommerce/internal/domain"
	"github.com/polashmiya/eGadget-Ecommerce/internal/middleware"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// ProductListResponse is the payload for catalog listing queries.
type ProductListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// SuggestionsResponse carries search suggestions.
type SuggestionsResponse struct {
	Suggestions []string `json:"suggestions"`
}

// FilterMetadataResponse describes the filter sidebar: category counts,
// brands, the catalog price range and stock availability.
type FilterMetadataResponse struct {
	Categories   []CategoryCount `json:"categories"`
	Brands       []string        `json:"brands"`
	PriceRange   PriceRange      `json:"price_range"`
	Availability Availability    `json:"availability"`
}

type CategoryCount struct {
	Name          string   `json:"name"`
	Count         int      `json:"count"`
	Subcategories []string `json:"subcategories,omitempty"`
}

type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

type Availability struct {
	InStock    int `json:"in_stock"`
	OutOfStock int `json:"out_of_stock"`
}

// CatalogHandler serves the static product catalog: listing with
// filters, single product lookup, featured picks, suggestions and
// filter metadata.
type CatalogHandler struct {
	catalog *catalog.Catalog
	logger  *zap.Logger
}

// NewCatalogHandler creates a new CatalogHandler
func NewCatalogHandler(c *catalog.Catalog, logger *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: c, logger: logger}
}

// RegisterRoutes registers all catalog routes
func (h *CatalogHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/products", func(r chi.Router) {
		r.Get("/", h.ListProducts)
		r.Get("/featured", h.FeaturedProducts)
		r.Get("/suggestions", h.Suggestions)
		r.Get("/{id}", h.GetProduct)
	})
	r.Get("/api/categories", h.Categories)
	r.Get("/api/brands", h.Brands)
	r.Get("/api/filters", h.FilterMetadata)
}

// ListProducts applies the query/filter/sort specification from the URL
// and returns the matching products.
func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	filters, err := parseFilters(r.URL.Query())
	if err != nil {
		middleware.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	filters = h.catalog.NormalizeFilters(filters)

	query := r.URL.Query().Get("q")
	products := catalog.Search(h.catalog.Products(), query, filters)

	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// FeaturedProducts returns the featured product selection.
func (h *CatalogHandler) FeaturedProducts(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.Featured()
	middleware.RespondWithJSON(w, http.StatusOK, ProductListResponse{
		Products: products,
		Total:    len(products),
	})
}

// GetProduct returns a single product by id.
func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	product, err := h.catalog.FindByID(id)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			middleware.RespondWithError(w, http.StatusNotFound, "product not found")
			return
		}
		h.logger.Error("Product lookup failed", zap.Error(err), zap.String("product_id", id))
		middleware.RespondWithError(w, http.StatusInternalServerError, "failed to load product")
		return
	}

	middleware.RespondWithJSON(w, http.StatusOK, product)
}

// Suggestions returns search completions for the q parameter. A blank
// query yields an empty list.
func (h *CatalogHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	suggestions := h.catalog.Suggestions(r.URL.Query().Get("q"))
	if suggestions == nil {
		suggestions = []string{}
	}
	middleware.RespondWithJSON(w, http.StatusOK, SuggestionsResponse{Suggestions: suggestions})
}

// Categories returns the category list with subcategories.
func (h *CatalogHandler) Categories(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.catalog.Categories())
}

// Brands returns the distinct brand names.
func (h *CatalogHandler) Brands(w http.ResponseWriter, r *http.Request) {
	middleware.RespondWithJSON(w, http.StatusOK, h.catalog.Brands())
}

// FilterMetadata returns everything the filter sidebar needs in one
// response.
func (h *CatalogHandler) FilterMetadata(w http.ResponseWriter, r *http.Request) {
	products := h.catalog.Products()

	counts := make(map[string]int)
	var availability Availability
	for _, p := range products {
		counts[p.Category]++
		if p.InStock {
			availability.InStock++
		} else {
			availability.OutOfStock++
		}
	}

	var categories []CategoryCount
	for _, cat := range h.catalog.Categories() {
		categories = append(categories, CategoryCount{
			Name:          cat.Name,
			Count:         counts[cat.Name],
			Subcategories: cat.Subcategories,
		})
	}

	min, max := h.catalog.PriceRange()
	middleware.RespondWithJSON(w, http.StatusOK, FilterMetadataResponse{
		Categories:   categories,
		Brands:       h.catalog.Brands(),
		PriceRange:   PriceRange{Min: min, Max: max},
		Availability: availability,
	})
}

// parseFilters builds a catalog filter spec from URL query parameters.
// Absent and empty parameters leave their dimension unconstrained.
func parseFilters(values url.Values) (catalog.Filters, error) {
	var f catalog.Filters

	f.Category = optionalString(values, "category")
	f.Subcategory = optionalString(values, "subcategory")
	f.Brand = optionalString(values, "brand")

	var err error
	if f.MinPrice, err = optionalFloat(values, "minPrice"); err != nil {
		return f, err
	}
	if f.MaxPrice, err = optionalFloat(values, "maxPrice"); err != nil {
		return f, err
	}
	if f.MinRating, err = optionalFloat(values, "minRating"); err != nil {
		return f, err
	}

	switch key := catalog.SortKey(values.Get("sortBy")); key {
	case catalog.SortByName, catalog.SortByPrice, catalog.SortByRating, catalog.SortByNewest:
		f.SortBy = key
	default:
		f.SortBy = catalog.SortByName
	}

	if catalog.SortOrder(values.Get("sortOrder")) == catalog.SortDesc {
		f.SortOrder = catalog.SortDesc
	} else {
		f.SortOrder = catalog.SortAsc
	}

	return f, nil
}

func optionalString(values url.Values, key string) *string {
	if v := values.Get(key); v != "" {
		return &v
	}
	return nil
}

func optionalFloat(values url.Values, key string) (*float64, error) {
	raw := values.Get(key)
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, errors.New("invalid " + key + " parameter")
	}
	return &v, nil
}
