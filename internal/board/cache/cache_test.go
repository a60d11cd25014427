package cache

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	api "github.com/shopfloor/schedboard/api/v1"
)

func TestSaveLoadJobs(t *testing.T) {
	c := New(t.TempDir())

	jobs := []api.Job{{ID: "a", Type: api.JobTypeJob, Machine: "22", SortOrder: 1}}
	require.NoError(t, c.SaveJobs(jobs))

	loaded, err := c.LoadJobs()
	require.NoError(t, err)
	assert.Equal(t, jobs, loaded)
}

func TestSaveLoadPriorities(t *testing.T) {
	c := New(t.TempDir())

	priorities := map[string]api.Priority{"22": api.PriorityHigh}
	require.NoError(t, c.SavePriorities(priorities))

	loaded, err := c.LoadPriorities()
	require.NoError(t, err)
	assert.Equal(t, priorities, loaded)
}

func TestLoadJobs_MissingFile(t *testing.T) {
	c := New(t.TempDir())

	_, err := c.LoadJobs()
	require.Error(t, err)
}

func TestSave_CreatesDirAndLeavesNoTempFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "cache")
	c := New(dir)

	require.NoError(t, c.SaveJobs(nil))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "jobs.json", entries[0].Name())
}
