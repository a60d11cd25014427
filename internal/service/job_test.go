package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/shopfloor/schedboard/api/v1"
	"github.com/shopfloor/schedboard/internal/auth"
)

func TestCreateJob_Defaults(t *testing.T) {
	svc := NewJobService(newMemStore(), nil)

	created, err := svc.CreateJob(context.Background(), api.Job{
		Machine:   "22",
		NumParts:  3600,
		CycleTime: 60,
	}, "tester")
	require.NoError(t, err)

	assert.NotEmpty(t, created.ID)
	assert.Equal(t, api.JobTypeJob, created.Type)
	assert.Equal(t, 1, created.NumCavities)
	assert.InDelta(t, 60.0, created.TotalHours, 1e-9)
	assert.Equal(t, 1, created.SortOrder)
}

func TestCreateJob_MachineRequired(t *testing.T) {
	svc := NewJobService(newMemStore(), nil)

	_, err := svc.CreateJob(context.Background(), api.Job{JobName: "stray"}, "tester")
	require.Error(t, err)
	var ve *ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestCreateJob_QueuesAfterExistingJobs(t *testing.T) {
	svc := NewJobService(newMemStore(), nil)
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		_, err := svc.CreateJob(ctx, api.Job{Machine: "22"}, "tester")
		require.NoError(t, err)
	}
	last, err := svc.CreateJob(ctx, api.Job{Machine: "22"}, "tester")
	require.NoError(t, err)
	assert.Equal(t, 4, last.SortOrder)
}

func TestCreateJob_RejectsMixedVariantFields(t *testing.T) {
	svc := NewJobService(newMemStore(), nil)

	_, err := svc.CreateJob(context.Background(), api.Job{
		Type:       api.JobTypeJob,
		Machine:    "22",
		JobName:    "mix",
		ToolNumber: "T-100",
	}, "tester")
	require.Error(t, err)
	var ve *ErrValidation
	assert.ErrorAs(t, err, &ve)
}

func TestCreateJob_Setup(t *testing.T) {
	svc := NewJobService(newMemStore(), nil)

	created, err := svc.CreateJob(context.Background(), api.Job{
		Type:       api.JobTypeSetup,
		Machine:    "22",
		ToolNumber: "T-100",
		ToolReady:  api.ToolReadyNo,
		SetupHours: 4,
	}, "tester")
	require.NoError(t, err)
	assert.True(t, created.IsSetup())
	assert.Zero(t, created.TotalHours)
}

func TestUpdateJob_MachineChangeMovesToEndOfNewQueue(t *testing.T) {
	svc := NewJobService(newMemStore(), nil)
	ctx := context.Background()

	moved, err := svc.CreateJob(ctx, api.Job{Machine: "22"}, "tester")
	require.NoError(t, err)
	_, err = svc.CreateJob(ctx, api.Job{Machine: "55"}, "tester")
	require.NoError(t, err)

	machine := "55"
	updated, err := svc.UpdateJob(ctx, moved.ID, api.JobPatch{Machine: &machine}, "tester")
	require.NoError(t, err)
	assert.Equal(t, "55", updated.Machine)
	assert.Equal(t, 2, updated.SortOrder)
}

func TestUpdateJob_PercentCompleteBounds(t *testing.T) {
	svc := NewJobService(newMemStore(), nil)
	ctx := context.Background()

	created, err := svc.CreateJob(ctx, api.Job{Machine: "22"}, "tester")
	require.NoError(t, err)

	over := 150
	_, err = svc.UpdateJob(ctx, created.ID, api.JobPatch{PercentComplete: &over}, "tester")
	var ve *ErrValidation
	assert.ErrorAs(t, err, &ve)

	ok := 100
	updated, err := svc.UpdateJob(ctx, created.ID, api.JobPatch{PercentComplete: &ok}, "tester")
	require.NoError(t, err)
	assert.Equal(t, 100, updated.PercentComplete)
}

func TestUpdateJob_InvalidPriorityOverride(t *testing.T) {
	svc := NewJobService(newMemStore(), nil)
	ctx := context.Background()

	created, err := svc.CreateJob(ctx, api.Job{Machine: "22"}, "tester")
	require.NoError(t, err)

	bogus := api.Priority("urgent")
	_, err = svc.UpdateJob(ctx, created.ID, api.JobPatch{PriorityOverride: &bogus}, "tester")
	var ip *ErrInvalidPriority
	assert.ErrorAs(t, err, &ip)
}

func TestGetJob_NotFound(t *testing.T) {
	svc := NewJobService(newMemStore(), nil)

	_, err := svc.GetJob(context.Background(), "missing")
	var nf *ErrResourceNotFound
	assert.ErrorAs(t, err, &nf)
}

func TestArchiveJob(t *testing.T) {
	svc := NewJobService(newMemStore(), nil)
	ctx := context.Background()

	created, err := svc.CreateJob(ctx, api.Job{Machine: "22"}, "tester")
	require.NoError(t, err)

	_, err = svc.ArchiveJob(ctx, created.ID, "", "tester")
	var ve *ErrValidation
	assert.ErrorAs(t, err, &ve)

	archived, err := svc.ArchiveJob(ctx, created.ID, "2026-08-31", "tester")
	require.NoError(t, err)
	assert.True(t, archived.Archived)
	assert.Equal(t, "2026-08-31", archived.CompleteDate)
}

func TestDeleteJob_Idempotent(t *testing.T) {
	svc := NewJobService(newMemStore(), nil)
	ctx := context.Background()

	created, err := svc.CreateJob(ctx, api.Job{Machine: "22"}, "tester")
	require.NoError(t, err)

	require.NoError(t, svc.DeleteJob(ctx, created.ID, "tester"))
	require.NoError(t, svc.DeleteJob(ctx, created.ID, "tester"))
}

func TestJobService_ViewerCannotEdit(t *testing.T) {
	policy := auth.NewRoleTable(map[string]auth.Role{"planner": auth.RoleScheduler})
	svc := NewJobService(newMemStore(), policy)
	ctx := context.Background()

	_, err := svc.CreateJob(ctx, api.Job{Machine: "22"}, "visitor")
	var fb *ErrForbidden
	assert.ErrorAs(t, err, &fb)

	created, err := svc.CreateJob(ctx, api.Job{Machine: "22"}, "planner")
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
}
