package domain

// Product represents a product in the catalog. Products are immutable
// reference data: they are loaded once from the embedded catalog and
// never mutated by the session layer.
type Product struct {
	ID             string            `json:"id"`
	Name           string            `json:"name"`
	Price          float64           `json:"price"`
	OriginalPrice  *float64          `json:"original_price,omitempty"`
	Description    string            `json:"description"`
	Image          string            `json:"image"`
	Images         []string          `json:"images,omitempty"`
	Category       string            `json:"category"`
	Subcategory    string            `json:"subcategory,omitempty"`
	Brand          string            `json:"brand"`
	Rating         float64           `json:"rating"`
	ReviewCount    int               `json:"review_count"`
	InStock        bool              `json:"in_stock"`
	StockQuantity  int               `json:"stock_quantity"`
	Tags           []string          `json:"tags,omitempty"`
	Specifications map[string]string `json:"specifications,omitempty"`
	Featured       bool              `json:"featured,omitempty"`
}

// Category represents a product category and its known subcategories.
// The subcategory list constrains which subcategory filters are valid
// while the category is selected.
type Category struct {
	Name          string   `json:"name"`
	Description   string   `json:"description,omitempty"`
	Subcategories []string `json:"subcategories,omitempty"`
}
