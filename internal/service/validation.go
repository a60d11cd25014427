package service

import (
	"errors"

	"github.com/go-playground/validator/v10"
	api "github.com/shopfloor/schedboard/api/v1"
)

var jobValidator = newJobValidator()

func newJobValidator() *validator.Validate {
	v := validator.New()
	v.RegisterStructValidation(jobStructLevel, api.Job{})
	return v
}

// jobStructLevel enforces the tagged-union invariant: a record is either a
// job or a setup, bounds apply to whichever field group its type selects.
func jobStructLevel(sl validator.StructLevel) {
	job := sl.Current().Interface().(api.Job)

	switch job.Type {
	case api.JobTypeJob:
		if job.ToolNumber != "" || job.ToolReady != "" || job.SetupHours != 0 || job.SetupNotes != "" {
			sl.ReportError(job.ToolNumber, "toolNumber", "ToolNumber", "excluded_for_job", "")
		}
		if job.NumParts < 0 {
			sl.ReportError(job.NumParts, "numParts", "NumParts", "gte", "0")
		}
		if job.CycleTime < 0 {
			sl.ReportError(job.CycleTime, "cycleTime", "CycleTime", "gte", "0")
		}
		if job.NumCavities < 1 {
			sl.ReportError(job.NumCavities, "numCavities", "NumCavities", "gte", "1")
		}
		if job.TotalMaterial < 0 {
			sl.ReportError(job.TotalMaterial, "totalMaterial", "TotalMaterial", "gte", "0")
		}
	case api.JobTypeSetup:
		if job.JobName != "" || job.WorkOrder != "" || job.NumParts != 0 || job.TotalMaterial != 0 {
			sl.ReportError(job.JobName, "jobName", "JobName", "excluded_for_setup", "")
		}
		if job.SetupHours < 0 {
			sl.ReportError(job.SetupHours, "setupHours", "SetupHours", "gte", "0")
		}
		if job.ToolReady != "" && job.ToolReady != api.ToolReadyYes && job.ToolReady != api.ToolReadyNo {
			sl.ReportError(job.ToolReady, "toolReady", "ToolReady", "oneof", "yes no")
		}
	default:
		sl.ReportError(job.Type, "type", "Type", "oneof", "job setup")
	}

	if job.PercentComplete < 0 || job.PercentComplete > 100 {
		sl.ReportError(job.PercentComplete, "percentComplete", "PercentComplete", "range", "0-100")
	}
	if job.PriorityOverride != "" && !job.PriorityOverride.IsValid() {
		sl.ReportError(job.PriorityOverride, "priorityOverride", "PriorityOverride", "oneof", "")
	}
}

// validateJob runs the struct validation and converts the first violation
// into a service error.
func validateJob(job api.Job) error {
	if err := jobValidator.Struct(job); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return NewErrValidation("invalid job: field %s failed rule %s", verrs[0].Field(), verrs[0].Tag())
		}
		return NewErrValidation("invalid job: %v", err)
	}
	return nil
}
