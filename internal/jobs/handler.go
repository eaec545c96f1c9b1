package jobs

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/SHIVANSHU-TECH/ApplyAI/internal/shared/server/respond"
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
	rg.GET("/jobs", h.list)
}

func (h *Handler) list(c *gin.Context) {
	out, err := h.Svc.List(c.Request.Context())
	if err != nil {
		switch {
		case errors.Is(err, ErrNoJobs):
			respond.Error(c, http.StatusNotFound, "no_jobs", "no job data available", nil)
		default:
			respond.Error(c, http.StatusInternalServerError, "jobs_fetch_failed", "failed to fetch jobs", nil)
		}
		return
	}
	respond.JSON(c, http.StatusOK, gin.H{"success": true, "data": out})
}
