package v1

import "time"

// JobListReply is returned by GET /api/jobs.
type JobListReply struct {
	Jobs      []Job     `json:"jobs"`
	Count     int       `json:"count"`
	Timestamp time.Time `json:"timestamp"`
}

// JobReply is returned by GET /api/jobs/{id}.
type JobReply struct {
	Job Job `json:"job"`
}

// JobCreatedReply is returned by POST /api/jobs.
type JobCreatedReply struct {
	Job     Job    `json:"job"`
	ID      string `json:"id"`
	Message string `json:"message"`
}

// JobUpdatedReply is returned by PUT and PATCH /api/jobs/{id}.
type JobUpdatedReply struct {
	Job     Job    `json:"job"`
	Message string `json:"message"`
}

// JobDeletedReply is returned by DELETE /api/jobs/{id}.
type JobDeletedReply struct {
	Message string `json:"message"`
	ID      string `json:"id"`
}

// MachineJobListReply is returned by GET /api/jobs/machine/{name}.
type MachineJobListReply struct {
	Jobs    []Job  `json:"jobs"`
	Count   int    `json:"count"`
	Machine string `json:"machine"`
}

// ArchiveRequest is the body of PUT /api/jobs/{id}/archive.
type ArchiveRequest struct {
	CompleteDate string `json:"completeDate"`
}

// PriorityListReply is returned by GET /api/priorities. The canonical shape
// is the map form, machine name to priority level.
type PriorityListReply struct {
	Priorities map[string]Priority `json:"priorities"`
	Count      int                 `json:"count"`
	Timestamp  time.Time           `json:"timestamp"`
}

// PriorityUpdateRequest is the body of PUT /api/priorities/{machine}.
type PriorityUpdateRequest struct {
	Priority Priority `json:"priority"`
}

// PriorityReply is returned by PUT /api/priorities/{machine}.
type PriorityReply struct {
	Machine  string   `json:"machine"`
	Priority Priority `json:"priority"`
	Message  string   `json:"message,omitempty"`
}

// PriorityBatchRequest is the body of POST /api/priorities/batch.
type PriorityBatchRequest struct {
	Priorities map[string]Priority `json:"priorities"`
}

// PriorityBatchReply is returned by POST /api/priorities/batch.
type PriorityBatchReply struct {
	Message string `json:"message"`
	Updated int    `json:"updated"`
	Total   int    `json:"total"`
}

// HealthReply is returned by GET /health.
type HealthReply struct {
	Status      string    `json:"status"`
	Timestamp   time.Time `json:"timestamp"`
	Environment string    `json:"environment"`
}

// ErrorReply is the common error envelope.
type ErrorReply struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
