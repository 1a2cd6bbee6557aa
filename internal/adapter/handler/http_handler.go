package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/rl1809/shop-api/internal/core/service"
)

// HTTPHandler maps wire requests onto the catalog and cart services. All
// shape and range validation happens here; the services trust their inputs.
type HTTPHandler struct {
	catalog *service.CatalogService
	carts   *service.CartService
	logger  *zap.Logger
}

func NewHTTPHandler(catalog *service.CatalogService, carts *service.CartService, logger *zap.Logger) *HTTPHandler {
	return &HTTPHandler{catalog: catalog, carts: carts, logger: logger}
}

// Router builds the gin engine with all shop routes registered.
func (h *HTTPHandler) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), RequestLogger(h.logger))

	r.POST("/item", h.createItem)
	r.GET("/item", h.listItems)
	r.GET("/item/:id", h.getItem)
	r.PUT("/item/:id", h.replaceItem)
	r.PATCH("/item/:id", h.patchItem)
	r.DELETE("/item/:id", h.deleteItem)

	r.POST("/cart", h.createCart)
	r.GET("/cart", h.listCarts)
	r.GET("/cart/:id", h.getCart)
	r.POST("/cart/:id/add/:item_id", h.addItemToCart)

	r.GET("/health", h.healthCheck)

	return r
}

type createItemRequest struct {
	Name  string   `json:"name" binding:"required,min=1"`
	Price *float64 `json:"price" binding:"required,gte=0"`
}

func (h *HTTPHandler) createItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusUnprocessableEntity, "invalid item body: "+err.Error())
		return
	}

	item, err := h.catalog.CreateItem(c.Request.Context(), req.Name, *req.Price)
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *HTTPHandler) getItem(c *gin.Context) {
	item, err := h.catalog.GetItem(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *HTTPHandler) replaceItem(c *gin.Context) {
	var req createItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusUnprocessableEntity, "invalid item body: "+err.Error())
		return
	}

	item, err := h.catalog.ReplaceItem(c.Request.Context(), c.Param("id"), req.Name, *req.Price)
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

type patchItemRequest struct {
	Name  *string  `json:"name"`
	Price *float64 `json:"price"`
}

func (h *HTTPHandler) patchItem(c *gin.Context) {
	// The patch body forbids unknown fields, so the permissive gin binding
	// is not enough here.
	dec := json.NewDecoder(c.Request.Body)
	dec.DisallowUnknownFields()

	var req patchItemRequest
	if err := dec.Decode(&req); err != nil {
		writeError(c, http.StatusUnprocessableEntity, "invalid patch body: "+err.Error())
		return
	}
	if req.Name != nil && *req.Name == "" {
		writeError(c, http.StatusUnprocessableEntity, "name must be a non-empty string")
		return
	}
	if req.Price != nil && *req.Price < 0 {
		writeError(c, http.StatusUnprocessableEntity, "price must be a non-negative value")
		return
	}

	item, err := h.catalog.PatchItem(c.Request.Context(), c.Param("id"), req.Name, req.Price)
	if err != nil {
		if errors.Is(err, service.ErrItemNotModified) {
			c.Status(http.StatusNotModified)
			return
		}
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *HTTPHandler) deleteItem(c *gin.Context) {
	if err := h.catalog.DeleteItem(c.Request.Context(), c.Param("id")); err != nil {
		h.serviceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *HTTPHandler) listItems(c *gin.Context) {
	page, ok := queryPage(c)
	if !ok {
		return
	}
	minPrice, ok := queryFloat(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := queryFloat(c, "max_price")
	if !ok {
		return
	}
	showDeleted, ok := queryBool(c, "show_deleted", true)
	if !ok {
		return
	}

	items, err := h.catalog.ListItems(c.Request.Context(), service.ItemFilter{
		MinPrice:       minPrice,
		MaxPrice:       maxPrice,
		IncludeDeleted: showDeleted,
		Page:           page,
	})
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, items)
}

func (h *HTTPHandler) createCart(c *gin.Context) {
	cart, err := h.carts.CreateCart(c.Request.Context())
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.Header("location", "/cart/"+cart.ID)
	c.JSON(http.StatusCreated, gin.H{"id": cart.ID})
}

func (h *HTTPHandler) getCart(c *gin.Context) {
	view, err := h.carts.GetCart(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

func (h *HTTPHandler) addItemToCart(c *gin.Context) {
	err := h.carts.AddItem(c.Request.Context(), c.Param("id"), c.Param("item_id"))
	if err != nil {
		h.serviceError(c, err)
		return
	}
	c.Status(http.StatusOK)
}

func (h *HTTPHandler) listCarts(c *gin.Context) {
	page, ok := queryPage(c)
	if !ok {
		return
	}
	minPrice, ok := queryFloat(c, "min_price")
	if !ok {
		return
	}
	maxPrice, ok := queryFloat(c, "max_price")
	if !ok {
		return
	}
	minQty, ok := queryInt(c, "min_quantity")
	if !ok {
		return
	}
	maxQty, ok := queryInt(c, "max_quantity")
	if !ok {
		return
	}

	views, err := h.carts.ListCarts(c.Request.Context(), service.CartFilter{
		MinPrice:    minPrice,
		MaxPrice:    maxPrice,
		MinQuantity: minQty,
		MaxQuantity: maxQty,
		Page:        page,
	})
	if err != nil {
		h.internalError(c, err)
		return
	}
	c.JSON(http.StatusOK, views)
}

func (h *HTTPHandler) healthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// serviceError maps core sentinel errors onto wire statuses.
func (h *HTTPHandler) serviceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrItemNotFound):
		writeError(c, http.StatusNotFound, "item does not exist")
	case errors.Is(err, service.ErrCartNotFound):
		writeError(c, http.StatusNotFound, "cart does not exist")
	default:
		h.internalError(c, err)
	}
}

func (h *HTTPHandler) internalError(c *gin.Context, err error) {
	h.logger.Error("internal error",
		zap.String("path", c.Request.URL.Path),
		zap.Error(err),
	)
	writeError(c, http.StatusInternalServerError, "internal error")
}

func writeError(c *gin.Context, status int, detail string) {
	c.AbortWithStatusJSON(status, gin.H{"detail": detail})
}

// queryPage parses offset/limit with their defaults. On a bad value it
// writes the 422 itself and reports ok=false.
func queryPage(c *gin.Context) (service.Page, bool) {
	page := service.Page{Limit: service.DefaultPageLimit}

	if raw, exists := c.GetQuery("offset"); exists {
		v, err := strconv.Atoi(raw)
		if err != nil || v < 0 {
			writeError(c, http.StatusUnprocessableEntity, "offset must be a non-negative integer")
			return service.Page{}, false
		}
		page.Offset = v
	}
	if raw, exists := c.GetQuery("limit"); exists {
		v, err := strconv.Atoi(raw)
		if err != nil || v <= 0 {
			writeError(c, http.StatusUnprocessableEntity, "limit must be a positive integer")
			return service.Page{}, false
		}
		page.Limit = v
	}
	return page, true
}

func queryFloat(c *gin.Context, name string) (*float64, bool) {
	raw, exists := c.GetQuery(name)
	if !exists || raw == "" {
		return nil, true
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		writeError(c, http.StatusUnprocessableEntity, fmt.Sprintf("%s must be a non-negative number", name))
		return nil, false
	}
	return &v, true
}

func queryInt(c *gin.Context, name string) (*int, bool) {
	raw, exists := c.GetQuery(name)
	if !exists || raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v < 0 {
		writeError(c, http.StatusUnprocessableEntity, fmt.Sprintf("%s must be a non-negative integer", name))
		return nil, false
	}
	return &v, true
}

func queryBool(c *gin.Context, name string, fallback bool) (bool, bool) {
	raw, exists := c.GetQuery(name)
	if !exists || raw == "" {
		return fallback, true
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		writeError(c, http.StatusUnprocessableEntity, fmt.Sprintf("%s must be a boolean", name))
		return false, false
	}
	return v, true
}
