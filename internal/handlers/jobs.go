package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	api "github.com/shopfloor/schedboard/api/v1"
)

func (h *Handler) ListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.jobSrv.ListJobs(r.Context())
	if err != nil {
		renderServiceError(w, r, err, "Failed to fetch jobs")
		return
	}
	render.JSON(w, r, api.JobListReply{Jobs: jobs, Count: len(jobs), Timestamp: time.Now().UTC()})
}

func (h *Handler) GetJob(w http.ResponseWriter, r *http.Request) {
	job, err := h.jobSrv.GetJob(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		renderServiceError(w, r, err, "Failed to fetch job")
		return
	}
	render.JSON(w, r, api.JobReply{Job: *job})
}

func (h *Handler) CreateJob(w http.ResponseWriter, r *http.Request) {
	var job api.Job
	if err := json.NewDecoder(r.Body).Decode(&job); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ErrorReply{Error: "invalid request body", Message: err.Error()})
		return
	}

	created, err := h.jobSrv.CreateJob(r.Context(), job, userFrom(r))
	if err != nil {
		renderServiceError(w, r, err, "Failed to create job")
		return
	}

	render.Status(r, http.StatusCreated)
	render.JSON(w, r, api.JobCreatedReply{Job: *created, ID: created.ID, Message: "Job created successfully"})
}

func (h *Handler) UpdateJob(w http.ResponseWriter, r *http.Request) {
	var patch api.JobPatch
	if err := json.NewDecoder(r.Body).Decode(&patch); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ErrorReply{Error: "invalid request body", Message: err.Error()})
		return
	}

	updated, err := h.jobSrv.UpdateJob(r.Context(), chi.URLParam(r, "id"), patch, userFrom(r))
	if err != nil {
		renderServiceError(w, r, err, "Failed to update job")
		return
	}
	render.JSON(w, r, api.JobUpdatedReply{Job: *updated, Message: "Job updated successfully"})
}

func (h *Handler) ArchiveJob(w http.ResponseWriter, r *http.Request) {
	var req api.ArchiveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ErrorReply{Error: "invalid request body", Message: err.Error()})
		return
	}

	archived, err := h.jobSrv.ArchiveJob(r.Context(), chi.URLParam(r, "id"), req.CompleteDate, userFrom(r))
	if err != nil {
		renderServiceError(w, r, err, "Failed to archive job")
		return
	}
	render.JSON(w, r, api.JobUpdatedReply{Job: *archived, Message: "Job archived successfully"})
}

func (h *Handler) DeleteJob(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.jobSrv.DeleteJob(r.Context(), id, userFrom(r)); err != nil {
		renderServiceError(w, r, err, "Failed to delete job")
		return
	}
	render.JSON(w, r, api.JobDeletedReply{Message: "Job deleted successfully", ID: id})
}

func (h *Handler) ListJobsByMachine(w http.ResponseWriter, r *http.Request) {
	machine := chi.URLParam(r, "name")
	jobs, err := h.jobSrv.ListJobsByMachine(r.Context(), machine)
	if err != nil {
		renderServiceError(w, r, err, "Failed to fetch jobs")
		return
	}
	render.JSON(w, r, api.MachineJobListReply{Jobs: jobs, Count: len(jobs), Machine: machine})
}
