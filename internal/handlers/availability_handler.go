package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/BruksfildServices01/salon-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	"github.com/BruksfildServices01/salon-scheduler/internal/timezone"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

type AvailabilityHandler struct {
	availability *ucAppointment.GetAvailability
	log          *zap.Logger
}

func NewAvailabilityHandler(
	availability *ucAppointment.GetAvailability,
	log *zap.Logger,
) *AvailabilityHandler {
	return &AvailabilityHandler{availability: availability, log: log}
}

// Get answers GET /api/availability?date=&worker_id=&service_id=|duration=
func (h *AvailabilityHandler) Get(c *gin.Context) {
	dateStr := c.Query("date")
	if dateStr == "" {
		httperr.BadRequest(c, "date_required", "Date is required.")
		return
	}
	date, err := timezone.ParseDate(dateStr)
	if err != nil {
		httperr.BadRequest(c, "invalid_date", "Invalid date.")
		return
	}

	workerID, ok := queryWorker(c.Query("worker_id"))
	if !ok {
		httperr.BadRequest(c, "invalid_worker_id", "Invalid worker.")
		return
	}

	serviceID, ok := queryUint(c.Query("service_id"))
	if !ok {
		httperr.BadRequest(c, "invalid_service_id", "Invalid service.")
		return
	}
	duration, ok := queryUint(c.Query("duration"))
	if !ok {
		httperr.BadRequest(c, "invalid_duration", "Invalid duration.")
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), domain.AvailabilityInput{
		WorkerID:  workerID,
		Date:      date,
		ServiceID: serviceID,
		Duration:  int(duration),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{
		"date":  dateStr,
		"slots": slots,
	})
}
