package storefront

import (
	"log/slog"
	"net/http"

	"github.com/vitrinelabs/vitrine/internal/catalog"
	"github.com/vitrinelabs/vitrine/internal/domain"
	"github.com/vitrinelabs/vitrine/internal/telemetry"
)

// suggestionLimit caps the suggestion dropdown size.
const suggestionLimit = 8

// ProductsHandler serves the read-only catalog routes.
type ProductsHandler struct {
	store   *catalog.Store
	metrics *telemetry.Metrics
	logger  *slog.Logger
}

// NewProductsHandler creates a new catalog handler
func NewProductsHandler(store *catalog.Store, metrics *telemetry.Metrics, logger *slog.Logger) *ProductsHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &ProductsHandler{
		store:   store,
		metrics: metrics,
		logger:  logger,
	}
}

// productListResponse is the JSON body for GET /api/products.
type productListResponse struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// List handles GET /api/products.
//
// Query parameters: search, category, brand, min_price, max_price,
// min_rating, sort. Malformed numeric values are dropped rather than
// rejected, widening the result set.
func (h *ProductsHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	filter := domain.ProductFilter{
		Search:    q.Get("search"),
		Category:  q.Get("category"),
		Brand:     q.Get("brand"),
		PriceMin:  decimalParam(r, "min_price"),
		PriceMax:  decimalParam(r, "max_price"),
		RatingMin: floatParam(r, "min_rating"),
	}
	mode := domain.ParseSortMode(q.Get("sort"))

	products := catalog.FilterAndSort(h.store.Products(), filter, mode)

	if h.metrics != nil {
		h.metrics.ProductSearches.WithLabelValues(filterType(filter)).Inc()
	}

	if products == nil {
		products = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, productListResponse{
		Products: products,
		Total:    len(products),
	})
}

// filterType labels a query by its dominant constraint for metrics.
func filterType(f domain.ProductFilter) string {
	switch {
	case f.Search != "":
		return "search"
	case f.Category != "":
		return "category"
	case f.Brand != "":
		return "brand"
	case f.PriceMin != nil || f.PriceMax != nil:
		return "price"
	case f.RatingMin != nil:
		return "rating"
	default:
		return "none"
	}
}

// Detail handles GET /api/products/{id}.
func (h *ProductsHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")

	product, ok := h.store.ProductByID(id)
	if !ok {
		respondError(w, domain.NotFound("product.detail", "product", id))
		return
	}

	if h.metrics != nil {
		h.metrics.ProductViews.WithLabelValues(product.ID).Inc()
	}
	respondJSON(w, http.StatusOK, product)
}

// Suggestions handles GET /api/products/suggestions?q=term.
// Terms shorter than two characters yield an empty list.
func (h *ProductsHandler) Suggestions(w http.ResponseWriter, r *http.Request) {
	matches := catalog.Suggest(h.store.Products(), r.URL.Query().Get("q"), suggestionLimit)
	if matches == nil {
		matches = []domain.Product{}
	}
	respondJSON(w, http.StatusOK, productListResponse{
		Products: matches,
		Total:    len(matches),
	})
}

// filtersResponse is the JSON body for GET /api/filters.
type filtersResponse struct {
	Brands     []string          `json:"brands"`
	Categories []string          `json:"categories"`
	PriceRange domain.PriceRange `json:"price_range"`
	SortModes  []domain.SortMode `json:"sort_modes"`
}

// Filters handles GET /api/filters: the available filter dimensions the
// storefront renders as facets.
func (h *ProductsHandler) Filters(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, filtersResponse{
		Brands:     h.store.Brands(),
		Categories: h.store.Categories(),
		PriceRange: h.store.PriceRange(),
		SortModes: []domain.SortMode{
			domain.SortRelevance, domain.SortPriceAsc, domain.SortPriceDesc,
			domain.SortRatingDesc, domain.SortSoldDesc, domain.SortNewest,
		},
	})
}
