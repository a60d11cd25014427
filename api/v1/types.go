package v1

// JobType discriminates the two variants stored in the Jobs collection:
// production jobs and tool-setup tasks. Exactly one of the variant field
// groups is meaningful for a given record.
type JobType string

const (
	JobTypeJob   JobType = "job"
	JobTypeSetup JobType = "setup"
)

// ToolReady reports whether the tool for a setup task is prepared.
type ToolReady string

const (
	ToolReadyYes ToolReady = "yes"
	ToolReadyNo  ToolReady = "no"
)

// Job is the wire shape of a schedule board record. Field names follow the
// Jobs collection schema.
type Job struct {
	ID        string  `json:"id"`
	Type      JobType `json:"type"`
	Machine   string  `json:"machine"`
	SortOrder int     `json:"sortOrder,omitempty"`

	// Job-only fields.
	JobName         string  `json:"jobName,omitempty"`
	WorkOrder       string  `json:"workOrder,omitempty"`
	NumParts        int     `json:"numParts,omitempty"`
	CycleTime       float64 `json:"cycleTime,omitempty"`
	NumCavities     int     `json:"numCavities,omitempty"`
	Material        string  `json:"material,omitempty"`
	TotalMaterial   float64 `json:"totalMaterial,omitempty"`
	TotalHours      float64 `json:"totalHours,omitempty"`
	DueDate         string  `json:"dueDate,omitempty"`
	PercentComplete int     `json:"percentComplete"`

	// Setup-only fields.
	ToolNumber string    `json:"toolNumber,omitempty"`
	ToolReady  ToolReady `json:"toolReady,omitempty"`
	SetupHours float64   `json:"setupHours,omitempty"`
	SetupNotes string    `json:"setupNotes,omitempty"`

	// Lifecycle fields.
	Archived         bool     `json:"archived,omitempty"`
	CompleteDate     string   `json:"completeDate,omitempty"`
	PriorityNotes    string   `json:"priorityNotes,omitempty"`
	PriorityOverride Priority `json:"priorityOverride,omitempty"`
}

// IsSetup reports whether the record is a tool-setup task.
func (j Job) IsSetup() bool {
	return j.Type == JobTypeSetup
}

// ComputeTotalHours derives total work hours from part count, cycle time in
// seconds per part and the number of cavities.
func ComputeTotalHours(numParts int, cycleTime float64, numCavities int) float64 {
	if numCavities < 1 {
		numCavities = 1
	}
	return float64(numParts) * cycleTime / (float64(numCavities) * 3600)
}

// JobPatch is a partial update of a Job. Nil fields are left untouched.
type JobPatch struct {
	Machine   *string `json:"machine,omitempty"`
	SortOrder *int    `json:"sortOrder,omitempty"`

	JobName         *string  `json:"jobName,omitempty"`
	WorkOrder       *string  `json:"workOrder,omitempty"`
	NumParts        *int     `json:"numParts,omitempty"`
	CycleTime       *float64 `json:"cycleTime,omitempty"`
	NumCavities     *int     `json:"numCavities,omitempty"`
	Material        *string  `json:"material,omitempty"`
	TotalMaterial   *float64 `json:"totalMaterial,omitempty"`
	TotalHours      *float64 `json:"totalHours,omitempty"`
	DueDate         *string  `json:"dueDate,omitempty"`
	PercentComplete *int     `json:"percentComplete,omitempty"`

	ToolNumber *string    `json:"toolNumber,omitempty"`
	ToolReady  *ToolReady `json:"toolReady,omitempty"`
	SetupHours *float64   `json:"setupHours,omitempty"`
	SetupNotes *string    `json:"setupNotes,omitempty"`

	PriorityNotes    *string   `json:"priorityNotes,omitempty"`
	PriorityOverride *Priority `json:"priorityOverride,omitempty"`
}

// IsEmpty reports whether the patch changes nothing.
func (p JobPatch) IsEmpty() bool {
	return p == JobPatch{}
}

// Apply copies the non-nil fields of the patch onto the job.
func (p JobPatch) Apply(j *Job) {
	if p.Machine != nil {
		j.Machine = *p.Machine
	}
	if p.SortOrder != nil {
		j.SortOrder = *p.SortOrder
	}
	if p.JobName != nil {
		j.JobName = *p.JobName
	}
	if p.WorkOrder != nil {
		j.WorkOrder = *p.WorkOrder
	}
	if p.NumParts != nil {
		j.NumParts = *p.NumParts
	}
	if p.CycleTime != nil {
		j.CycleTime = *p.CycleTime
	}
	if p.NumCavities != nil {
		j.NumCavities = *p.NumCavities
	}
	if p.Material != nil {
		j.Material = *p.Material
	}
	if p.TotalMaterial != nil {
		j.TotalMaterial = *p.TotalMaterial
	}
	if p.TotalHours != nil {
		j.TotalHours = *p.TotalHours
	}
	if p.DueDate != nil {
		j.DueDate = *p.DueDate
	}
	if p.PercentComplete != nil {
		j.PercentComplete = *p.PercentComplete
	}
	if p.ToolNumber != nil {
		j.ToolNumber = *p.ToolNumber
	}
	if p.ToolReady != nil {
		j.ToolReady = *p.ToolReady
	}
	if p.SetupHours != nil {
		j.SetupHours = *p.SetupHours
	}
	if p.SetupNotes != nil {
		j.SetupNotes = *p.SetupNotes
	}
	if p.PriorityNotes != nil {
		j.PriorityNotes = *p.PriorityNotes
	}
	if p.PriorityOverride != nil {
		j.PriorityOverride = *p.PriorityOverride
	}
}
