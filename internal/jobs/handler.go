package jobs

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/hareesh3232/Mock-test-interview/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/search", h.search)
	rg.GET("/:id", h.get)
}

func (h *Handler) search(c *gin.Context) {
	rawSkills := c.Query("skills")
	if strings.TrimSpace(rawSkills) == "" {
		respond.Error(c, http.StatusBadRequest, "validation_error", "skills query parameter is required", nil)
		return
	}
	skills := make([]string, 0)
	for _, skill := range strings.Split(rawSkills, ",") {
		if trimmed := strings.TrimSpace(skill); trimmed != "" {
			skills = append(skills, trimmed)
		}
	}
	if len(skills) == 0 {
		respond.Error(c, http.StatusBadRequest, "validation_error", "skills query parameter is required", nil)
		return
	}

	count := 20
	if v := c.Query("count"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			count = parsed
		}
	}
	if count < 1 {
		count = 1
	}
	if count > 50 {
		count = 50
	}

	query := SearchQuery{
		Skills:   skills,
		Location: strings.TrimSpace(c.Query("location")),
		Count:    count,
	}

	listings, err := h.Svc.Search(c.Request.Context(), query)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to search jobs", nil)
		return
	}

	respond.JSON(c, http.StatusOK, gin.H{
		"jobs":  listings,
		"total": len(listings),
	})
}

func (h *Handler) get(c *gin.Context) {
	job, err := h.Svc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		switch {
		case errors.Is(err, ErrNotFound):
			respond.Error(c, http.StatusNotFound, "not_found", "job not found", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to fetch job", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, job)
}
