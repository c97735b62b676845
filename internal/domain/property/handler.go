package property

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"realty/internal/pkg/response"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

// Search handles GET /properties with the full filter parameter set.
func (h *Handler) Search(c *gin.Context) {
	f := Filters{
		Keyword:         c.Query("keyword"),
		TransactionType: c.Query("transaction_type"),
		CityRegion:      c.Query("city_region"),
		District:        c.Query("district"),
		PropertyType:    c.Query("property_type"),
		Featured:        c.Query("featured") == "true",
		// Admin tooling sends active=all to see inactive listings; any other
		// value (or no value) filters to active-only.
		IncludeInactive: c.Query("active") == "all",
	}
	f.PriceMin = floatQuery(c, "price_min")
	f.PriceMax = floatQuery(c, "price_max")
	f.AreaMin = floatQuery(c, "area_min")
	f.AreaMax = floatQuery(c, "area_max")

	page := 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	limit := 20
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 && v <= 100 {
		limit = v
	}

	properties, total, err := h.repo.Search(c.Request.Context(), f, page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to search properties")
		return
	}

	response.Paginated(c, http.StatusOK, properties, response.NewMeta(page, limit, total))
}

// GetOne handles GET /properties/:id, where :id is a property code or an id.
func (h *Handler) GetOne(c *gin.Context) {
	p, err := h.repo.FindOne(c.Request.Context(), c.Param("id"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "property not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to load property")
		return
	}
	response.Success(c, http.StatusOK, p)
}

// Create handles POST /properties.
func (h *Handler) Create(c *gin.Context) {
	var in CreateInput
	if err := c.ShouldBindJSON(&in); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	id, err := h.repo.Create(c.Request.Context(), in)
	if err != nil {
		if errors.Is(err, ErrValidation) {
			response.Error(c, http.StatusBadRequest, err.Error())
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to create property")
		return
	}

	response.Success(c, http.StatusCreated, gin.H{"id": id})
}

// Update handles PUT /properties/:id with partial (PATCH-like) semantics:
// only the supplied fields change.
func (h *Handler) Update(c *gin.Context) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.repo.Update(c.Request.Context(), c.Param("id"), fields)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "property not found")
		case errors.Is(err, ErrValidation), errors.Is(err, ErrNothingToUpdate):
			response.Error(c, http.StatusBadRequest, err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "failed to update property")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

// Delete handles DELETE /properties/:id, cascading to images and documents.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.repo.Delete(c.Request.Context(), c.Param("id")); err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "property not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to delete property")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

// UpdateSortOrders handles PATCH /properties with {orders: [{id, sort_order}]}.
func (h *Handler) UpdateSortOrders(c *gin.Context) {
	var req struct {
		Orders []SortOrderUpdate `json:"orders"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}

	err := h.repo.UpdateSortOrders(c.Request.Context(), req.Orders)
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			response.Error(c, http.StatusNotFound, "unknown property id in orders")
		case errors.Is(err, ErrNothingToUpdate):
			response.Error(c, http.StatusBadRequest, "orders is empty")
		default:
			response.Error(c, http.StatusInternalServerError, "failed to update sort orders")
		}
		return
	}

	response.Success(c, http.StatusOK, gin.H{"updated": len(req.Orders)})
}

func floatQuery(c *gin.Context, name string) *float64 {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil
	}
	return &v
}
