package appointment

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/service/appointment"
	apperrors "github.com/hms/hms-api/pkg/errors"
	"github.com/hms/hms-api/pkg/httputil"
)

type Handler struct {
	service appointment.Service
}

func NewHandler(service appointment.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	appointments := r.Group("/appointments")
	{
		appointments.GET("/doctor/:doctorId", h.DoctorSchedule)
		appointments.POST("", h.Book)
		appointments.PUT("/:id/reschedule", h.Reschedule)
		appointments.PUT("/:id/cancel", h.Cancel)
	}
}

// DoctorSchedule lists a doctor's appointments, optionally restricted to a
// single calendar day via ?day=2006-01-02.
func (h *Handler) DoctorSchedule(c *gin.Context) {
	var day *time.Time
	if raw := c.Query("day"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			httputil.RespondWithError(c, apperrors.Validation("day must be formatted as YYYY-MM-DD"))
			return
		}
		day = &parsed
	}

	appointments, err := h.service.GetDoctorSchedule(c.Request.Context(), c.Param("doctorId"), day)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, appointments)
}

func (h *Handler) Book(c *gin.Context) {
	var req model.BookAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	apt, err := h.service.Book(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, apt)
}

func (h *Handler) Reschedule(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID"))
		return
	}

	var req model.RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	apt, err := h.service.Reschedule(c.Request.Context(), id, req.NewStart)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}

func (h *Handler) Cancel(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid appointment ID"))
		return
	}

	apt, err := h.service.Cancel(c.Request.Context(), id)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, apt)
}
