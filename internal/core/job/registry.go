package job

import (
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"leadscraper/internal/logger"
	"leadscraper/internal/platform/snapshot"
)

// Registry is the process-scoped job table: an in-memory map reloaded from a
// disk snapshot at startup and flushed at job boundaries. Log buffers are not
// part of the snapshot.
type Registry struct {
	mu   sync.RWMutex
	jobs map[string]*Job
	path string
	log  *logger.Logger
}

func NewRegistry(path string) *Registry {
	r := &Registry{
		jobs: make(map[string]*Job),
		path: path,
		log:  logger.New("JobRegistry"),
	}
	var stored map[string]*Job
	if err := snapshot.Load(path, &stored); err != nil {
		r.log.LogWarnf("job snapshot unavailable, starting empty: %v", err)
		return r
	}
	r.jobs = stored
	if r.jobs == nil {
		r.jobs = make(map[string]*Job)
	}
	r.log.LogInfof("restored %d job records", len(r.jobs))
	return r
}

// NewID produces a new job identifier. The millisecond prefix keeps IDs
// roughly sortable by creation time.
func NewID() string {
	return fmt.Sprintf("job_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

func (r *Registry) Create(j *Job) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if j.CreatedAt.IsZero() {
		j.CreatedAt = time.Now()
	}
	if j.Status == "" {
		j.Status = StatusPending
	}
	r.jobs[j.ID] = j
}

// Get returns a copy of the job state.
func (r *Registry) Get(id string) (Job, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	if !ok {
		return Job{}, false
	}
	return j.clone(), true
}

// Update applies fn to the job under the registry lock. It returns false for
// unknown jobs.
func (r *Registry) Update(id string, fn func(*Job)) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return false
	}
	fn(j)
	return true
}

// SetStatus advances the job status. Backward transitions are refused so a
// late writer can never resurrect a terminal job.
func (r *Registry) SetStatus(id string, status Status) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok {
		return false
	}
	if statusRank[status] < statusRank[j.Status] {
		r.log.LogWarnf("refusing status transition %s -> %s for %s", j.Status, status, id)
		return false
	}
	j.Status = status
	return true
}

// RequestStop sets the cooperative stop flag on a running job. Stops on
// pending, terminal, or unknown jobs are a no-op signaled via the return
// value. The flag is never reset.
func (r *Registry) RequestStop(id string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	j, ok := r.jobs[id]
	if !ok || j.Status != StatusRunning {
		return false
	}
	j.ShouldStop = true
	return true
}

// ShouldStop reports the stop flag of a job.
func (r *Registry) ShouldStop(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	j, ok := r.jobs[id]
	return ok && j.ShouldStop
}

func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.jobs)
}

// Flush writes the full job table to the disk snapshot. Concurrent flushes
// from jobs finishing together are last-write-wins; the write itself is
// atomic.
func (r *Registry) Flush() error {
	r.mu.RLock()
	copied := make(map[string]Job, len(r.jobs))
	for id, j := range r.jobs {
		copied[id] = j.clone()
	}
	r.mu.RUnlock()
	return snapshot.Save(r.path, copied)
}
