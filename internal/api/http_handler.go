package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"apparel-store-service/internal/cart"
	"apparel-store-service/internal/catalog"
	"apparel-store-service/internal/domain"
	"apparel-store-service/internal/pricing"
	"apparel-store-service/internal/source"
)

// HTTPHandler holds dependencies for HTTP handlers.
type HTTPHandler struct {
	catalog  *catalog.Store
	carts    *cart.Registry
	loader   source.ProductLoader
	validate *validator.Validate
}

// NewHTTPHandler creates a new HTTPHandler with dependencies.
func NewHTTPHandler(cs *catalog.Store, carts *cart.Registry, loader source.ProductLoader) *HTTPHandler {
	return &HTTPHandler{
		catalog:  cs,
		carts:    carts,
		loader:   loader,
		validate: validator.New(),
	}
}

// --- Helpers ---

// ErrorResponse defines the structure for JSON error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, ErrorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			log.Printf("ERROR: Failed to encode JSON response: %v", err)
			http.Error(w, `{"error": "Internal server error during JSON encoding"}`, http.StatusInternalServerError)
		}
	}
}

// --- Response DTOs ---

// ProductResponse is the wire form of a product. Prices leave the service as
// plain JSON numbers rounded to two places; exact decimals stay internal.
type ProductResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Price       float64              `json:"price"`
	Category    string               `json:"category"`
	Gender      string               `json:"gender"`
	Sizes       []string             `json:"sizes"`
	Colors      []domain.ColorOption `json:"color"`
	Description string               `json:"description,omitempty"`
	Material    string               `json:"material,omitempty"`
}

func toProductResponse(p domain.Product) ProductResponse {
	return ProductResponse{
		ID:          p.ID,
		Name:        p.Name,
		Price:       p.Price.Round(2).InexactFloat64(),
		Category:    p.Category,
		Gender:      p.Gender,
		Sizes:       p.Sizes,
		Colors:      p.Colors,
		Description: p.Description,
		Material:    p.Material,
	}
}

// CartLineResponse is the wire form of a cart line.
type CartLineResponse struct {
	ProductID int64   `json:"product_id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Size      string  `json:"size"`
	Color     string  `json:"color"`
	Quantity  int     `json:"quantity"`
}

func toCartLineResponse(l cart.Line) CartLineResponse {
	return CartLineResponse{
		ProductID: l.ProductID,
		Name:      l.Name,
		Price:     l.Price.Round(2).InexactFloat64(),
		Size:      l.Size,
		Color:     l.Color,
		Quantity:  l.Quantity,
	}
}

// OrderTotalsResponse is the wire form of the derived order summary.
type OrderTotalsResponse struct {
	MerchandiseTotal float64 `json:"merchandise_total"`
	ShippingCost     float64 `json:"shipping_cost"`
	TaxCost          float64 `json:"tax_cost"`
	OrderTotal       float64 `json:"order_total"`
}

func toTotalsResponse(t pricing.Totals) OrderTotalsResponse {
	rounded := t.Rounded()
	return OrderTotalsResponse{
		MerchandiseTotal: rounded.Merchandise.InexactFloat64(),
		ShippingCost:     rounded.Shipping.InexactFloat64(),
		TaxCost:          rounded.Tax.InexactFloat64(),
		OrderTotal:       rounded.Order.InexactFloat64(),
	}
}

// PaginationInfo describes the page of a list response.
type PaginationInfo struct {
	Page       int `json:"page"`
	Limit      int `json:"limit"`
	TotalItems int `json:"total_items"`
	TotalPages int `json:"total_pages"`
}

// --- Product Handlers ---

func (h *HTTPHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	qParams := r.URL.Query()

	limit, err := strconv.Atoi(qParams.Get("limit"))
	if err != nil || limit <= 0 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}
	page, err := strconv.Atoi(qParams.Get("page"))
	if err != nil || page <= 0 {
		page = 1
	}

	sortKey, ok := catalog.ParseSortKey(qParams.Get("sort"))
	if !ok {
		respondWithError(w, http.StatusBadRequest,
			"Invalid sort value. Allowed: name_asc, name_desc, price_desc, price_asc, category_asc")
		return
	}

	// Facet params repeat per value: ?category=Shirts&category=Hoodies.
	// Unknown values match nothing; that is an empty result, not an error.
	selection := catalog.FilterSelection{
		Genders:    qParams["gender"],
		Categories: qParams["category"],
		Sizes:      qParams["size"],
		Colors:     qParams["color"],
	}

	filtered := catalog.ApplyFilter(h.catalog.All(), selection)
	sorted := catalog.SortProducts(filtered, sortKey)

	totalCount := len(sorted)
	totalPages := 0
	if totalCount > 0 {
		totalPages = (totalCount + limit - 1) / limit
	}

	start := (page - 1) * limit
	if start > totalCount {
		start = totalCount
	}
	end := start + limit
	if end > totalCount {
		end = totalCount
	}

	data := make([]ProductResponse, 0, end-start)
	for _, p := range sorted[start:end] {
		data = append(data, toProductResponse(p))
	}

	response := struct {
		Data       []ProductResponse `json:"data"`
		Pagination PaginationInfo    `json:"pagination"`
	}{
		Data: data,
		Pagination: PaginationInfo{
			Page:       page,
			Limit:      limit,
			TotalItems: totalCount,
			TotalPages: totalPages,
		},
	}
	respondWithJSON(w, http.StatusOK, response)
}

func (h *HTTPHandler) GetProductByID(w http.ResponseWriter, r *http.Request) {
	idStr := chi.URLParam(r, "productId")
	productID, err := strconv.ParseInt(idStr, 10, 64)
	if err != nil || productID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.catalog.Get(productID)
	if err != nil {
		if errors.Is(err, catalog.ErrProductNotFound) {
			respondWithError(w, http.StatusNotFound, catalog.ErrProductNotFound.Error())
		} else {
			log.Printf("ERROR: GetProductByID for ID %d failed: %v", productID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to retrieve product")
		}
		return
	}
	respondWithJSON(w, http.StatusOK, toProductResponse(product))
}

func (h *HTTPHandler) GetFacets(w http.ResponseWriter, r *http.Request) {
	respondWithJSON(w, http.StatusOK, h.catalog.Facets())
}

// ReloadCatalog re-runs the configured loader and swaps the catalog in. A
// loader failure leaves the currently loaded catalog untouched.
func (h *HTTPHandler) ReloadCatalog(w http.ResponseWriter, r *http.Request) {
	products, err := h.loader.LoadProducts(r.Context())
	if err != nil {
		log.Printf("ERROR: Catalog reload failed, keeping current catalog: %v", err)
		respondWithError(w, http.StatusBadGateway, "Failed to load catalog from source")
		return
	}

	if err := h.catalog.Load(products); err != nil {
		log.Printf("ERROR: Catalog reload rejected, keeping current catalog: %v", err)
		respondWithError(w, http.StatusConflict, err.Error())
		return
	}

	respondWithJSON(w, http.StatusOK, map[string]interface{}{
		"product_count": h.catalog.Len(),
	})
}

// --- Cart Handlers ---

func (h *HTTPHandler) CreateCart(w http.ResponseWriter, r *http.Request) {
	cartID := h.carts.Create()
	respondWithJSON(w, http.StatusCreated, map[string]string{"cart_id": cartID})
}

// cartResponse builds the full view of one cart.
func cartResponse(ledger *cart.Ledger) interface{} {
	lines := ledger.Lines()
	data := make([]CartLineResponse, 0, len(lines))
	for _, l := range lines {
		data = append(data, toCartLineResponse(l))
	}
	return struct {
		Lines          []CartLineResponse `json:"lines"`
		TotalItemCount int                `json:"total_item_count"`
		IsEmpty        bool               `json:"is_empty"`
	}{
		Lines:          data,
		TotalItemCount: ledger.TotalItemCount(),
		IsEmpty:        ledger.IsEmpty(),
	}
}

func (h *HTTPHandler) ledgerForRequest(w http.ResponseWriter, r *http.Request) *cart.Ledger {
	cartID := chi.URLParam(r, "cartId")
	ledger, err := h.carts.Get(cartID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, cart.ErrCartNotFound.Error())
		return nil
	}
	return ledger
}

func (h *HTTPHandler) GetCart(w http.ResponseWriter, r *http.Request) {
	ledger := h.ledgerForRequest(w, r)
	if ledger == nil {
		return
	}
	respondWithJSON(w, http.StatusOK, cartResponse(ledger))
}

// CartItemAddInput defines the expected input for adding a product to a cart.
type CartItemAddInput struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Size      string `json:"size"`
	Color     string `json:"color"`
}

func (h *HTTPHandler) AddCartItem(w http.ResponseWriter, r *http.Request) {
	ledger := h.ledgerForRequest(w, r)
	if ledger == nil {
		return
	}

	var input CartItemAddInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	product, err := h.catalog.Get(input.ProductID)
	if err != nil {
		respondWithError(w, http.StatusNotFound, catalog.ErrProductNotFound.Error())
		return
	}

	line, err := ledger.Add(product, input.Size, input.Color)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrSelectionRequired), errors.Is(err, cart.ErrSelectionUnknown):
			respondWithError(w, http.StatusBadRequest, err.Error())
		default:
			log.Printf("ERROR: AddCartItem for product %d failed: %v", input.ProductID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to add item to cart")
		}
		return
	}

	respondWithJSON(w, http.StatusCreated, toCartLineResponse(line))
}

// CartItemUpdateInput defines the expected input for a direct quantity edit.
// Quantity is deliberately unconstrained here: the cart ledger owns the
// at-least-one rule and reports violations itself.
type CartItemUpdateInput struct {
	ProductID int64  `json:"product_id" validate:"required,gt=0"`
	Size      string `json:"size" validate:"required"`
	Color     string `json:"color" validate:"required"`
	Quantity  int    `json:"quantity"`
}

func (h *HTTPHandler) UpdateCartItem(w http.ResponseWriter, r *http.Request) {
	ledger := h.ledgerForRequest(w, r)
	if ledger == nil {
		return
	}

	var input CartItemUpdateInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	key := cart.LineKey{ProductID: input.ProductID, Size: input.Size, Color: input.Color}
	line, err := ledger.SetQuantity(key, input.Quantity)
	if err != nil {
		switch {
		case errors.Is(err, cart.ErrInvalidQuantity):
			respondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, cart.ErrLineNotFound):
			respondWithError(w, http.StatusNotFound, err.Error())
		default:
			log.Printf("ERROR: UpdateCartItem for product %d failed: %v", input.ProductID, err)
			respondWithError(w, http.StatusInternalServerError, "Failed to update cart item")
		}
		return
	}

	respondWithJSON(w, http.StatusOK, toCartLineResponse(line))
}

func (h *HTTPHandler) RemoveCartItem(w http.ResponseWriter, r *http.Request) {
	ledger := h.ledgerForRequest(w, r)
	if ledger == nil {
		return
	}

	qParams := r.URL.Query()
	productID, err := strconv.ParseInt(qParams.Get("product_id"), 10, 64)
	if err != nil || productID <= 0 {
		respondWithError(w, http.StatusBadRequest, "Invalid product_id format")
		return
	}

	// Removal of an absent line is a no-op, so this always succeeds.
	ledger.Remove(cart.LineKey{
		ProductID: productID,
		Size:      qParams.Get("size"),
		Color:     qParams.Get("color"),
	})
	respondWithJSON(w, http.StatusNoContent, nil)
}

func (h *HTTPHandler) shippingSelection(w http.ResponseWriter, method, location string) (pricing.Selection, bool) {
	m, ok := pricing.ParseMethod(method)
	if !ok {
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Invalid shipping method %q. Allowed: standard, express, priority", method))
		return pricing.Selection{}, false
	}
	l, ok := pricing.ParseLocation(location)
	if !ok {
		respondWithError(w, http.StatusBadRequest,
			fmt.Sprintf("Invalid shipping location %q. Allowed: canada, united_states, international", location))
		return pricing.Selection{}, false
	}
	return pricing.Selection{Method: m, Location: l}, true
}

func (h *HTTPHandler) GetCartTotals(w http.ResponseWriter, r *http.Request) {
	ledger := h.ledgerForRequest(w, r)
	if ledger == nil {
		return
	}

	qParams := r.URL.Query()
	selection, ok := h.shippingSelection(w, qParams.Get("method"), qParams.Get("location"))
	if !ok {
		return
	}

	totals := pricing.Compute(ledger.Lines(), selection)
	respondWithJSON(w, http.StatusOK, toTotalsResponse(totals))
}

// CheckoutInput defines the expected input for completing a checkout.
type CheckoutInput struct {
	Method   string `json:"method" validate:"required,oneof=standard express priority"`
	Location string `json:"location" validate:"required,oneof=canada united_states international"`
}

// Checkout computes the final order totals and empties the cart.
func (h *HTTPHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	ledger := h.ledgerForRequest(w, r)
	if ledger == nil {
		return
	}

	var input CheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid request payload: "+err.Error())
		return
	}
	defer r.Body.Close()

	if err := h.validate.Struct(input); err != nil {
		respondWithError(w, http.StatusBadRequest, "Validation failed: "+err.Error())
		return
	}

	if ledger.IsEmpty() {
		respondWithError(w, http.StatusBadRequest, "Cart is empty")
		return
	}

	selection := pricing.Selection{
		Method:   pricing.Method(input.Method),
		Location: pricing.Location(input.Location),
	}
	totals := pricing.Compute(ledger.Lines(), selection)
	ledger.Clear()

	respondWithJSON(w, http.StatusOK, toTotalsResponse(totals))
}

// --- Route Registration ---

// RegisterRoutes sets up the HTTP routes for the service.
func (h *HTTPHandler) RegisterRoutes(r chi.Router) {
	r.Route("/api/v1/products", func(r chi.Router) {
		r.Get("/", h.ListProducts) // GET /api/v1/products
		// Must come before {productId} so "facets" is not parsed as an ID
		r.Get("/facets", h.GetFacets)            // GET /api/v1/products/facets
		r.Get("/{productId}", h.GetProductByID)  // GET /api/v1/products/{productId}
	})

	r.Post("/api/v1/catalog/reload", h.ReloadCatalog)

	r.Route("/api/v1/carts", func(r chi.Router) {
		r.Post("/", h.CreateCart) // POST /api/v1/carts
		r.Route("/{cartId}", func(r chi.Router) {
			r.Get("/", h.GetCart)                 // GET /api/v1/carts/{cartId}
			r.Post("/items", h.AddCartItem)       // POST /api/v1/carts/{cartId}/items
			r.Put("/items", h.UpdateCartItem)     // PUT /api/v1/carts/{cartId}/items
			r.Delete("/items", h.RemoveCartItem)  // DELETE /api/v1/carts/{cartId}/items
			r.Get("/totals", h.GetCartTotals)     // GET /api/v1/carts/{cartId}/totals
			r.Post("/checkout", h.Checkout)       // POST /api/v1/carts/{cartId}/checkout
		})
	})
}
