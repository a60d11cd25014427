package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	api "github.com/shopfloor/schedboard/api/v1"
	"github.com/shopfloor/schedboard/internal/service"
)

// Handler wires the REST surface of the record store onto the service layer.
type Handler struct {
	jobSrv      *service.JobService
	prioritySrv *service.PriorityService
	environment string
}

func New(jobSrv *service.JobService, prioritySrv *service.PriorityService, environment string) *Handler {
	return &Handler{
		jobSrv:      jobSrv,
		prioritySrv: prioritySrv,
		environment: environment,
	}
}

// Routes registers the /api endpoints.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/jobs", func(r chi.Router) {
		r.Get("/", h.ListJobs)
		r.Post("/", h.CreateJob)
		r.Get("/machine/{name}", h.ListJobsByMachine)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", h.GetJob)
			r.Put("/", h.UpdateJob)
			r.Patch("/", h.UpdateJob)
			r.Put("/archive", h.ArchiveJob)
			r.Delete("/", h.DeleteJob)
		})
	})
	r.Route("/priorities", func(r chi.Router) {
		r.Get("/", h.ListPriorities)
		r.Put("/{machine}", h.SetPriority)
		r.Post("/batch", h.BatchSetPriorities)
	})
}

// userFrom pulls the caller identity forwarded by the dashboard. The check is
// a placeholder capability gate, not an authentication scheme.
func userFrom(r *http.Request) string {
	if user := r.Header.Get("X-User"); user != "" {
		return user
	}
	return "anonymous"
}

// renderServiceError maps the service error taxonomy onto HTTP statuses.
func renderServiceError(w http.ResponseWriter, r *http.Request, err error, what string) {
	switch err.(type) {
	case *service.ErrValidation:
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ErrorReply{Error: err.Error()})
	case *service.ErrInvalidPriority:
		render.Status(r, http.StatusBadRequest)
		render.JSON(w, r, api.ErrorReply{Error: err.Error()})
	case *service.ErrResourceNotFound:
		render.Status(r, http.StatusNotFound)
		render.JSON(w, r, api.ErrorReply{Error: err.Error()})
	case *service.ErrForbidden:
		render.Status(r, http.StatusForbidden)
		render.JSON(w, r, api.ErrorReply{Error: err.Error()})
	default:
		render.Status(r, http.StatusInternalServerError)
		render.JSON(w, r, api.ErrorReply{Error: what, Message: err.Error()})
	}
}
