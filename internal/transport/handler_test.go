package transport

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/polashmiya/eGadget-Ecommerce/internal/catalog"
	"github.com/polashmiya/eGadget-Ecommerce/internal/domain"
	"github.com/polashmiya/eGadget-Ecommerce/internal/middleware"
	"github.com/polashmiya/eGadget-Ecommerce/internal/session"

	"github.com/go-chi/chi/v5"
)

// injectSession stands in for the session middleware so handler tests
// can pin requests to a known store.
func injectSession(store *session.Store) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := middleware.WithSession(r.Context(), "test-session", store)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func newTestRouter(store *session.Store) chi.Router {
	r := chi.NewRouter()
	r.Use(injectSession(store))
	return r
}

func testCatalog() *catalog.Catalog {
	original := 299.0
	products := []domain.Product{
		{
			ID: "p-1", Name: "Echo Buds", Price: 89.99, Description: "Wireless earbuds",
			Category: "Audio", Subcategory: "Earbuds", Brand: "Aurion",
			Rating: 4.5, InStock: true, StockQuantity: 12, Featured: true,
		},
		{
			ID: "p-2", Name: "Studio Headphones", Price: 249.0, OriginalPrice: &original,
			Description: "Over-ear studio headphones", Category: "Audio",
			Subcategory: "Headphones", Brand: "PulseWave",
			Rating: 4.8, InStock: true, StockQuantity: 4,
		},
		{
			ID: "p-3", Name: "Fitness Band", Price: 59.5, Description: "Activity tracker",
			Category: "Wearables", Subcategory: "Fitness Trackers", Brand: "Nimbus",
			Rating: 4.0, InStock: false,
		},
	}
	categories := []domain.Category{
		{Name: "Audio", Subcategories: []string{"Earbuds", "Headphones", "Speakers"}},
		{Name: "Wearables", Subcategories: []string{"Fitness Trackers", "Smartwatches"}},
	}
	return catalog.New(products, categories)
}

func doRequest(t *testing.T, router chi.Router, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("marshal request body: %v", err)
		}
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func decodeJSON(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	if err := json.Unmarshal(rec.Body.Bytes(), v); err != nil {
		t.Fatalf("decode response %q: %v", rec.Body.String(), err)
	}
}
