package handlers

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/salon-scheduler/internal/auth"
	"github.com/BruksfildServices01/salon-scheduler/internal/httperr"
	"github.com/BruksfildServices01/salon-scheduler/internal/middleware"
)

// mustActor reads the authenticated caller; it writes 401 and returns
// false when the route was not behind AuthMiddleware.
func mustActor(c *gin.Context) (auth.Actor, bool) {
	actor, ok := middleware.ActorFrom(c)
	if !ok {
		httperr.Write(c, http.StatusUnauthorized, "unauthenticated", "Authentication required.")
		return auth.Actor{}, false
	}
	return actor, true
}

func paramID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 64)
	if err != nil || id == 0 {
		httperr.BadRequest(c, "invalid_"+name, "Invalid identifier.")
		return 0, false
	}
	return uint(id), true
}

// queryWorker parses worker_id, where "any" or an empty value means the
// first available worker (0).
func queryWorker(raw string) (uint, bool) {
	if raw == "" || raw == "any" {
		return 0, true
	}
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}

func queryUint(raw string) (uint, bool) {
	if raw == "" {
		return 0, true
	}
	n, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0, false
	}
	return uint(n), true
}

// workerRef is a worker_id in a JSON body: a number, a numeric string,
// "any", or absent.
type workerRef uint

func (w *workerRef) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		*w = 0
		return nil
	}

	raw := string(b)
	if len(b) > 0 && b[0] == '"' {
		if err := json.Unmarshal(b, &raw); err != nil {
			return err
		}
	}

	id, ok := queryWorker(raw)
	if !ok {
		return errors.New("worker_id must be a positive id or \"any\"")
	}
	*w = workerRef(id)
	return nil
}

func invalidRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{
		"error_code": "invalid_request",
		"message":    "Invalid request.",
		"details":    err.Error(),
	})
}
