package handlers

import (
	"errors"
	"io"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/dto"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucAppointment "github.com/BruksfildServices01/salon-scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	create       *ucAppointment.CreateAppointment
	updateStatus *ucAppointment.UpdateAppointmentStatus
	cancel       *ucAppointment.CancelAppointment
	reschedule   *ucAppointment.RescheduleAppointment
	list         *ucAppointment.ListAppointments
	log          *zap.Logger
}

func NewAppointmentHandler(
	create *ucAppointment.CreateAppointment,
	updateStatus *ucAppointment.UpdateAppointmentStatus,
	cancel *ucAppointment.CancelAppointment,
	reschedule *ucAppointment.RescheduleAppointment,
	list *ucAppointment.ListAppointments,
	log *zap.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		create:       create,
		updateStatus: updateStatus,
		cancel:       cancel,
		reschedule:   reschedule,
		list:         list,
		log:          log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type CreateAppointmentRequest struct {
	ClientID         uint      `json:"client_id"`
	ServiceID        uint      `json:"service_id"`
	WorkerID         workerRef `json:"worker_id"`
	Date             string    `json:"date"`
	Time             string    `json:"time"`
	Location         string    `json:"location"`
	AddOns           []string  `json:"add_ons"`
	Notes            string    `json:"notes"`
	DiscountCode     string    `json:"discount_code"`
	PaymentReference string    `json:"payment_reference"`
}

type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

type CancelAppointmentRequest struct {
	Reason string `json:"reason"`
}

type RescheduleAppointmentRequest struct {
	Date     string `json:"date"`
	Time     string `json:"time"`
	WorkerID uint   `json:"worker_id"`
}

// ======================================================
// CREATE
// ======================================================

func (h *AppointmentHandler) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req CreateAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.create.Execute(c.Request.Context(), actor, ucAppointment.CreateAppointmentInput{
		ClientID:         req.ClientID,
		ServiceID:        req.ServiceID,
		WorkerID:         uint(req.WorkerID),
		Date:             req.Date,
		Time:             req.Time,
		Location:         req.Location,
		AddOns:           req.AddOns,
		Notes:            req.Notes,
		DiscountCode:     req.DiscountCode,
		PaymentReference: req.PaymentReference,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, dto.FromAppointment(ap))
}

// ======================================================
// LIST
// ======================================================

func (h *AppointmentHandler) List(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	year, _ := strconv.Atoi(c.Query("year"))
	month, _ := strconv.Atoi(c.Query("month"))
	workerID, _ := strconv.ParseUint(c.Query("worker_id"), 10, 64)

	out, err := h.list.Execute(c.Request.Context(), actor, ucAppointment.ListAppointmentsInput{
		Date:     c.Query("date"),
		Year:     year,
		Month:    month,
		WorkerID: uint(workerID),
		Status:   c.Query("status"),
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, out)
}

// ======================================================
// STATUS
// ======================================================

func (h *AppointmentHandler) UpdateStatus(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.updateStatus.Execute(c.Request.Context(), actor, id, req.Status)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}

// ======================================================
// CANCEL
// ======================================================

func (h *AppointmentHandler) Cancel(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req CancelAppointmentRequest
	// the body is optional, a malformed one is not
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		invalidRequest(c, err)
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), actor, id, req.Reason)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, gin.H{
		"appointment":   dto.FromAppointment(ap),
		"cancel_reason": ap.CancelReason,
	})
}

// ======================================================
// RESCHEDULE
// ======================================================

func (h *AppointmentHandler) Reschedule(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	var req RescheduleAppointmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	ap, err := h.reschedule.Execute(c.Request.Context(), actor, id, ucAppointment.RescheduleAppointmentInput{
		Date:     req.Date,
		Time:     req.Time,
		WorkerID: req.WorkerID,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dto.FromAppointment(ap))
}
