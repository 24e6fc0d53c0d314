// Package catalog provides the read-only product catalog and the derived
// filtering used by the storefront views.
package catalog

import "errors"

// ErrNotFound is returned when a product ID does not resolve in the catalog.
var ErrNotFound = errors.New("product not found")

// Category identifies a storefront section. The value is the display name
// shown in the UI and carried in product records.
type Category string

const (
	CategorySoftware      Category = "Best-Selling Software"
	CategoryTrending      Category = "Trending Now"
	CategorySubscriptions Category = "Subscriptions"
	CategoryGames         Category = "Latest Games"
	CategoryAntivirus     Category = "Security & Antivirus"
)

// Categories returns all categories in storefront display order.
func Categories() []Category {
	return []Category{
		CategorySoftware,
		CategoryTrending,
		CategorySubscriptions,
		CategoryGames,
		CategoryAntivirus,
	}
}

// Valid reports whether c is one of the known categories.
func (c Category) Valid() bool {
	switch c {
	case CategorySoftware, CategoryTrending, CategorySubscriptions,
		CategoryGames, CategoryAntivirus:
		return true
	}
	return false
}

// Product is a single purchasable catalog entry.
type Product struct {
	ID              string   `json:"id"`
	Title           string   `json:"title"`
	Price           float64  `json:"price"`
	Category        Category `json:"category"`
	Image           string   `json:"image"`
	OldPrice        float64  `json:"old_price,omitempty"`
	Discount        int      `json:"discount,omitempty"`
	Badge           string   `json:"badge,omitempty"`
	InstantDelivery bool     `json:"instant_delivery,omitempty"`
	Description     string   `json:"description,omitempty"`
	KeyStock        int      `json:"key_stock,omitempty"`
}

// Catalog is an immutable ordered sequence of products.
type Catalog struct {
	products []Product
	byID     map[string]int
}

// New builds a Catalog from the given products, preserving order. Later
// duplicates of an ID shadow earlier ones for lookup but keep their position.
func New(products []Product) *Catalog {
	c := &Catalog{
		products: make([]Product, len(products)),
		byID:     make(map[string]int, len(products)),
	}
	copy(c.products, products)
	for i, p := range c.products {
		c.byID[p.ID] = i
	}
	return c
}

// Len returns the number of products in the catalog.
func (c *Catalog) Len() int {
	return len(c.products)
}

// Products returns a copy of the full product sequence in catalog order.
func (c *Catalog) Products() []Product {
	out := make([]Product, len(c.products))
	copy(out, c.products)
	return out
}

// ByID looks up a product by its identifier.
func (c *Catalog) ByID(id string) (Product, error) {
	i, ok := c.byID[id]
	if !ok {
		return Product{}, ErrNotFound
	}
	return c.products[i], nil
}

// ByCategory returns the subsequence of products in the given category,
// in catalog order.
func (c *Catalog) ByCategory(cat Category) []Product {
	var out []Product
	for _, p := range c.products {
		if p.Category == cat {
			out = append(out, p)
		}
	}
	return out
}
