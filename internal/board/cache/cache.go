package cache

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	api "github.com/shopfloor/schedboard/api/v1"
)

const (
	jobsFile       = "jobs.json"
	prioritiesFile = "priorities.json"
)

// Cache is the durable local fallback for board state, the desktop analog of
// the browser's key-value storage. It is consulted only when the gateway is
// unreachable and refreshed after every successful repository mutation.
type Cache struct {
	rootDir string
}

func New(rootDir string) *Cache {
	return &Cache{rootDir: rootDir}
}

// PathFor returns the full path for the provided file.
func (c *Cache) PathFor(name string) string {
	return filepath.Join(c.rootDir, name)
}

func (c *Cache) SaveJobs(jobs []api.Job) error {
	return c.write(jobsFile, jobs)
}

func (c *Cache) LoadJobs() ([]api.Job, error) {
	var jobs []api.Job
	if err := c.read(jobsFile, &jobs); err != nil {
		return nil, err
	}
	return jobs, nil
}

func (c *Cache) SavePriorities(priorities map[string]api.Priority) error {
	return c.write(prioritiesFile, priorities)
}

func (c *Cache) LoadPriorities() (map[string]api.Priority, error) {
	var priorities map[string]api.Priority
	if err := c.read(prioritiesFile, &priorities); err != nil {
		return nil, err
	}
	return priorities, nil
}

// write lands the snapshot via a temp file and rename, a half-written cache
// would be worse than none.
func (c *Cache) write(name string, v any) error {
	if err := os.MkdirAll(c.rootDir, 0755); err != nil {
		return fmt.Errorf("creating cache dir: %w", err)
	}

	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encoding %s: %w", name, err)
	}

	tmp := c.PathFor(name + ".tmp")
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", name, err)
	}
	return os.Rename(tmp, c.PathFor(name))
}

func (c *Cache) read(name string, v any) error {
	data, err := os.ReadFile(c.PathFor(name))
	if err != nil {
		return err
	}
	return json.Unmarshal(data, v)
}
