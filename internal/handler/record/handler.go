package record

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hms/hms-api/internal/model"
	"github.com/hms/hms-api/internal/service/record"
	apperrors "github.com/hms/hms-api/pkg/errors"
	"github.com/hms/hms-api/pkg/httputil"
)

type Handler struct {
	service record.Service
}

func NewHandler(service record.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) RegisterRoutes(r *gin.RouterGroup) {
	records := r.Group("/records")
	{
		records.GET("/patient/:patientId", h.ListByPatient)
		records.POST("", h.Add)
	}
}

func (h *Handler) ListByPatient(c *gin.Context) {
	patientID, err := uuid.Parse(c.Param("patientId"))
	if err != nil {
		httputil.RespondWithError(c, apperrors.Validation("invalid patient ID"))
		return
	}

	records, err := h.service.ListByPatient(c.Request.Context(), patientID)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithSuccess(c, records)
}

func (h *Handler) Add(c *gin.Context) {
	var req model.CreateMedicalRecordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httputil.RespondWithBindingError(c, err)
		return
	}

	rec, err := h.service.Add(c.Request.Context(), &req)
	if err != nil {
		httputil.RespondWithError(c, err)
		return
	}
	httputil.RespondWithCreated(c, rec)
}
