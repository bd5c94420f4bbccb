package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/httpresp"
	ucCommission "github.com/BruksfildServices01/salon-scheduler/internal/usecase/commission"
)

type CommissionHandler struct {
	aggregate *ucCommission.AggregateCommission
	settle    *ucCommission.SettleCommission
	list      *ucCommission.ListCommissions
	log       *zap.Logger
}

func NewCommissionHandler(
	aggregate *ucCommission.AggregateCommission,
	settle *ucCommission.SettleCommission,
	list *ucCommission.ListCommissions,
	log *zap.Logger,
) *CommissionHandler {
	return &CommissionHandler{
		aggregate: aggregate,
		settle:    settle,
		list:      list,
		log:       log,
	}
}

type CreateCommissionRequest struct {
	WorkerID uint   `json:"worker_id"`
	Period   string `json:"period" binding:"required"`
}

func (h *CommissionHandler) Create(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	var req CreateCommissionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		invalidRequest(c, err)
		return
	}

	rec, err := h.aggregate.Execute(c.Request.Context(), actor, ucCommission.AggregateCommissionInput{
		WorkerID: req.WorkerID,
		Period:   req.Period,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.Created(c, rec)
}

func (h *CommissionHandler) Settle(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	res, err := h.settle.Execute(c.Request.Context(), actor, id)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, res)
}

func (h *CommissionHandler) List(c *gin.Context) {
	actor, ok := mustActor(c)
	if !ok {
		return
	}

	workerID, _ := strconv.ParseUint(c.Query("worker_id"), 10, 64)

	out, err := h.list.Execute(c.Request.Context(), actor, uint(workerID))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, out)
}
