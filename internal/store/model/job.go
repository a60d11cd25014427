package model

import (
	"encoding/json"
	"time"

	api "github.com/shopfloor/schedboard/api/v1"
)

// Job is the stored form of a schedule board record. Both job and setup
// variants share the table; Type selects which field group is meaningful.
type Job struct {
	ID        string `gorm:"primaryKey"`
	Type      string `gorm:"not null"`
	Machine   string `gorm:"index;not null"`
	SortOrder int

	JobName         string
	WorkOrder       string
	NumParts        int
	CycleTime       float64
	NumCavities     int
	Material        string
	TotalMaterial   float64
	TotalHours      float64
	DueDate         string
	PercentComplete int

	ToolNumber string
	ToolReady  string
	SetupHours float64
	SetupNotes string

	Archived         bool `gorm:"index"`
	CompleteDate     string
	PriorityNotes    string
	PriorityOverride string

	CreatedAt time.Time
	UpdatedAt time.Time
}

type JobList []Job

func (j Job) String() string {
	val, _ := json.Marshal(j)
	return string(val)
}

func NewJobFromApiResource(job *api.Job) *Job {
	return &Job{
		ID:               job.ID,
		Type:             string(job.Type),
		Machine:          job.Machine,
		SortOrder:        job.SortOrder,
		JobName:          job.JobName,
		WorkOrder:        job.WorkOrder,
		NumParts:         job.NumParts,
		CycleTime:        job.CycleTime,
		NumCavities:      job.NumCavities,
		Material:         job.Material,
		TotalMaterial:    job.TotalMaterial,
		TotalHours:       job.TotalHours,
		DueDate:          job.DueDate,
		PercentComplete:  job.PercentComplete,
		ToolNumber:       job.ToolNumber,
		ToolReady:        string(job.ToolReady),
		SetupHours:       job.SetupHours,
		SetupNotes:       job.SetupNotes,
		Archived:         job.Archived,
		CompleteDate:     job.CompleteDate,
		PriorityNotes:    job.PriorityNotes,
		PriorityOverride: string(job.PriorityOverride),
	}
}

func (j *Job) ToApiResource() api.Job {
	out := api.Job{
		ID:               j.ID,
		Type:             api.JobType(j.Type),
		Machine:          j.Machine,
		SortOrder:        j.SortOrder,
		JobName:          j.JobName,
		WorkOrder:        j.WorkOrder,
		NumParts:         j.NumParts,
		CycleTime:        j.CycleTime,
		NumCavities:      j.NumCavities,
		Material:         j.Material,
		TotalMaterial:    j.TotalMaterial,
		TotalHours:       j.TotalHours,
		DueDate:          j.DueDate,
		PercentComplete:  j.PercentComplete,
		ToolNumber:       j.ToolNumber,
		ToolReady:        api.ToolReady(j.ToolReady),
		SetupHours:       j.SetupHours,
		SetupNotes:       j.SetupNotes,
		Archived:         j.Archived,
		CompleteDate:     j.CompleteDate,
		PriorityNotes:    j.PriorityNotes,
	}
	if j.PriorityOverride != "" {
		out.PriorityOverride = api.Priority(j.PriorityOverride)
	}
	return out
}

func (jl JobList) ToApiResource() []api.Job {
	jobs := make([]api.Job, 0, len(jl))
	for i := range jl {
		jobs = append(jobs, jl[i].ToApiResource())
	}
	return jobs
}

// ApplyPatch copies the non-nil fields of the patch onto the record.
func (j *Job) ApplyPatch(patch api.JobPatch) {
	if patch.Machine != nil {
		j.Machine = *patch.Machine
	}
	if patch.SortOrder != nil {
		j.SortOrder = *patch.SortOrder
	}
	if patch.JobName != nil {
		j.JobName = *patch.JobName
	}
	if patch.WorkOrder != nil {
		j.WorkOrder = *patch.WorkOrder
	}
	if patch.NumParts != nil {
		j.NumParts = *patch.NumParts
	}
	if patch.CycleTime != nil {
		j.CycleTime = *patch.CycleTime
	}
	if patch.NumCavities != nil {
		j.NumCavities = *patch.NumCavities
	}
	if patch.Material != nil {
		j.Material = *patch.Material
	}
	if patch.TotalMaterial != nil {
		j.TotalMaterial = *patch.TotalMaterial
	}
	if patch.TotalHours != nil {
		j.TotalHours = *patch.TotalHours
	}
	if patch.DueDate != nil {
		j.DueDate = *patch.DueDate
	}
	if patch.PercentComplete != nil {
		j.PercentComplete = *patch.PercentComplete
	}
	if patch.ToolNumber != nil {
		j.ToolNumber = *patch.ToolNumber
	}
	if patch.ToolReady != nil {
		j.ToolReady = string(*patch.ToolReady)
	}
	if patch.SetupHours != nil {
		j.SetupHours = *patch.SetupHours
	}
	if patch.SetupNotes != nil {
		j.SetupNotes = *patch.SetupNotes
	}
	if patch.PriorityNotes != nil {
		j.PriorityNotes = *patch.PriorityNotes
	}
	if patch.PriorityOverride != nil {
		j.PriorityOverride = string(*patch.PriorityOverride)
	}
}
