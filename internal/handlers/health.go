package handlers

import (
	"net/http"
	"time"

	"github.com/go-chi/render"
	api "github.com/shopfloor/schedboard/api/v1"
)

func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	render.JSON(w, r, api.HealthReply{
		Status:      "ok",
		Timestamp:   time.Now().UTC(),
		Environment: h.environment,
	})
}
