package content

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"realty/internal/pkg/response"
)

type Handler struct {
	repo *Repository
}

func NewHandler(repo *Repository) *Handler {
	return &Handler{repo: repo}
}

/* ---------- pages ---------- */

func (h *Handler) ListPages(c *gin.Context) {
	pages, err := h.repo.ListPages(c.Request.Context(), c.Query("active") == "all")
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list pages")
		return
	}
	response.Success(c, http.StatusOK, pages)
}

func (h *Handler) GetPage(c *gin.Context) {
	p, err := h.repo.GetPageBySlug(c.Request.Context(), c.Param("slug"))
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			response.Error(c, http.StatusNotFound, "page not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "failed to load page")
		return
	}
	response.Success(c, http.StatusOK, p)
}

func (h *Handler) CreatePage(c *gin.Context) {
	var p Page
	if err := c.ShouldBindJSON(&p); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if p.Slug == "" || p.Title == "" {
		response.Error(c, http.StatusBadRequest, "slug and title are required")
		return
	}
	p.ID = uuid.New().String()

	if err := h.repo.CreatePage(c.Request.Context(), &p); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create page")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": p.ID})
}

func (h *Handler) UpdatePage(c *gin.Context) {
	updates, ok := bindUpdates(c, "slug", "title", "content", "active")
	if !ok {
		return
	}
	if err := h.repo.UpdatePage(c.Request.Context(), c.Param("id"), updates); err != nil {
		respondUpdateError(c, err, "page")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) DeletePage(c *gin.Context) {
	if err := h.repo.DeletePage(c.Request.Context(), c.Param("id")); err != nil {
		respondUpdateError(c, err, "page")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

/* ---------- sections ---------- */

func (h *Handler) CreateSection(c *gin.Context) {
	var s Section
	if err := c.ShouldBindJSON(&s); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if s.PageID == "" {
		response.Error(c, http.StatusBadRequest, "page_id is required")
		return
	}
	s.ID = uuid.New().String()

	if err := h.repo.CreateSection(c.Request.Context(), &s); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create section")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": s.ID})
}

func (h *Handler) UpdateSection(c *gin.Context) {
	updates, ok := bindUpdates(c, "section_key", "title", "body", "sort_order")
	if !ok {
		return
	}
	if err := h.repo.UpdateSection(c.Request.Context(), c.Param("id"), updates); err != nil {
		respondUpdateError(c, err, "section")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) DeleteSection(c *gin.Context) {
	if err := h.repo.DeleteSection(c.Request.Context(), c.Param("id")); err != nil {
		respondUpdateError(c, err, "section")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

/* ---------- services ---------- */

func (h *Handler) ListServices(c *gin.Context) {
	services, err := h.repo.ListServices(c.Request.Context(), c.Query("active") == "all")
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to list services")
		return
	}
	response.Success(c, http.StatusOK, services)
}

func (h *Handler) CreateService(c *gin.Context) {
	var s SiteService
	if err := c.ShouldBindJSON(&s); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return
	}
	if s.Title == "" {
		response.Error(c, http.StatusBadRequest, "title is required")
		return
	}
	s.ID = uuid.New().String()
	s.Active = true

	if err := h.repo.CreateService(c.Request.Context(), &s); err != nil {
		response.Error(c, http.StatusInternalServerError, "failed to create service")
		return
	}
	response.Success(c, http.StatusCreated, gin.H{"id": s.ID})
}

func (h *Handler) UpdateService(c *gin.Context) {
	updates, ok := bindUpdates(c, "title", "description", "icon", "sort_order", "active")
	if !ok {
		return
	}
	if err := h.repo.UpdateService(c.Request.Context(), c.Param("id"), updates); err != nil {
		respondUpdateError(c, err, "service")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"updated": true})
}

func (h *Handler) DeleteService(c *gin.Context) {
	if err := h.repo.DeleteService(c.Request.Context(), c.Param("id")); err != nil {
		respondUpdateError(c, err, "service")
		return
	}
	response.Success(c, http.StatusOK, gin.H{"deleted": true})
}

/* ---------- helpers ---------- */

func bindUpdates(c *gin.Context, allowed ...string) (map[string]any, bool) {
	var fields map[string]any
	if err := c.ShouldBindJSON(&fields); err != nil {
		response.Error(c, http.StatusBadRequest, "invalid request body")
		return nil, false
	}

	allowedSet := make(map[string]bool, len(allowed))
	for _, a := range allowed {
		allowedSet[a] = true
	}

	updates := make(map[string]any, len(fields))
	for k, v := range fields {
		if k == "key" {
			k = "section_key"
		}
		if allowedSet[k] {
			updates[k] = v
		}
	}
	if len(updates) == 0 {
		response.Error(c, http.StatusBadRequest, "nothing to update")
		return nil, false
	}
	return updates, true
}

func respondUpdateError(c *gin.Context, err error, what string) {
	if errors.Is(err, ErrNotFound) {
		response.Error(c, http.StatusNotFound, what+" not found")
		return
	}
	response.Error(c, http.StatusInternalServerError, "failed to update "+what)
}
