package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	api "github.com/shopfloor/schedboard/api/v1"
)

func (h *Handler) ListPriorities(w http.ResponseWriter, r *http.Request) {
	priorities, err := h.prioritySrv.ListPriorities(r.Context())
	if err != nil {
		renderServiceError(w, r, err, "Failed to fetch priorities")
		return
	}
	render.JSON(w, r, api.PriorityListReply{
		Priorities: priorities,
		Count:      len(priorities),
		Timestamp:  time.Now().UTC(),
	})
}

func (h *Handler) SetPriority(w http.ResponseWriter, r *http.Request) {
	machine := chi.URLParam(r, "machine")

	var req api.PriorityUpdateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ErrorReply{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Priority == "" {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ErrorReply{Error: "Priority is required"})
		return
	}

	if err := h.prioritySrv.SetPriority(r.Context(), machine, req.Priority, userFrom(r)); err != nil {
		renderServiceError(w, r, err, "Failed to update priority")
		return
	}
	render.JSON(w, r, api.PriorityReply{
		Machine:  machine,
		Priority: req.Priority,
		Message:  "Priority updated successfully",
	})
}

func (h *Handler) BatchSetPriorities(w http.ResponseWriter, r *http.Request) {
	var req api.PriorityBatchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ErrorReply{Error: "invalid request body", Message: err.Error()})
		return
	}
	if req.Priorities == nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ErrorReply{Error: "Priorities object is required"})
		return
	}

	updated, err := h.prioritySrv.BatchSetPriorities(r.Context(), req.Priorities, userFrom(r))
	if err != nil {
		renderServiceError(w, r, err, "Failed to update priorities")
		return
	}
	render.JSON(w, r, api.PriorityBatchReply{
		Message: "Priorities updated successfully",
		Updated: updated,
		Total:   len(req.Priorities),
	})
}
