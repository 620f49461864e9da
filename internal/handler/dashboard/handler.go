package dashboard

import (
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/hms/hms-api/internal/service/dashboard"
	apperrors "github.com/hms/hms-api/pkg/errors"
	"github.com/hms/hms-api/pkg/httputil"
)

type Handler struct {
	service dashboard.Service
}

func NewHandler(service dashboard.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	dash := r.Group("/dashboard")
	{
		dash.GET("/summary", h.Summary)
		dash.GET("/visits-monthly", h.MonthlyVisits)
	}
}

func (h *Handler) Summary(c *gin.Context) {
	summary, err := h.service.Summary(c.Request.Context())
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, summary)
}

func (h *Handler) MonthlyVisits(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil || year <= 0 {
		httputil.RespondWithError(c, apperrors.Validation("year is required"))
		return
	}

	visits, err := h.service.MonthlyVisits(c.Request.Context(), year)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, visits)
}
