package job_test

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"leadscraper/internal/core/job"
)

func newRegistry(t *testing.T) *job.Registry {
	t.Helper()
	return job.NewRegistry(filepath.Join(t.TempDir(), "jobs.json"))
}

func TestNewIDIsUniqueAndPrefixed(t *testing.T) {
	a, b := job.NewID(), job.NewID()
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "job_"))
}

func TestCreateDefaultsToPending(t *testing.T) {
	r := newRegistry(t)
	r.Create(&job.Job{ID: "j1", District: "Beyoğlu"})

	got, ok := r.Get("j1")
	require.True(t, ok)
	assert.Equal(t, job.StatusPending, got.Status)
	assert.False(t, got.CreatedAt.IsZero())
}

func TestGetReturnsIsolatedCopy(t *testing.T) {
	r := newRegistry(t)
	r.Create(&job.Job{ID: "j1", Neighborhoods: []string{"Moda"}})

	got, _ := r.Get("j1")
	got.Neighborhoods[0] = "mutated"
	got.Progress = 99

	fresh, _ := r.Get("j1")
	assert.Equal(t, "Moda", fresh.Neighborhoods[0])
	assert.Equal(t, 0, fresh.Progress)
}

func TestGetUnknown(t *testing.T) {
	r := newRegistry(t)
	_, ok := r.Get("nope")
	assert.False(t, ok)
}

func TestUpdateMutatesUnderLock(t *testing.T) {
	r := newRegistry(t)
	r.Create(&job.Job{ID: "j1"})

	assert.True(t, r.Update("j1", func(j *job.Job) { j.Progress = 42 }))
	assert.False(t, r.Update("missing", func(j *job.Job) {}))

	got, _ := r.Get("j1")
	assert.Equal(t, 42, got.Progress)
}

func TestStatusTransitionsAreMonotonic(t *testing.T) {
	r := newRegistry(t)
	r.Create(&job.Job{ID: "j1"})

	assert.True(t, r.SetStatus("j1", job.StatusRunning))
	assert.True(t, r.SetStatus("j1", job.StatusCompleted))

	// Terminal jobs never move backward.
	assert.False(t, r.SetStatus("j1", job.StatusRunning))
	assert.False(t, r.SetStatus("j1", job.StatusPending))

	got, _ := r.Get("j1")
	assert.Equal(t, job.StatusCompleted, got.Status)
}

func TestRequestStopOnlyAffectsRunningJobs(t *testing.T) {
	r := newRegistry(t)
	r.Create(&job.Job{ID: "pending"})
	r.Create(&job.Job{ID: "running"})
	r.SetStatus("running", job.StatusRunning)

	assert.False(t, r.RequestStop("pending"))
	assert.False(t, r.RequestStop("missing"))
	assert.True(t, r.RequestStop("running"))
	assert.True(t, r.ShouldStop("running"))
	assert.False(t, r.ShouldStop("pending"))

	// Repeat stop requests are idempotent.
	assert.True(t, r.RequestStop("running"))
	assert.True(t, r.ShouldStop("running"))
}

func TestFlushAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs.json")

	r := job.NewRegistry(path)
	r.Create(&job.Job{ID: "j1", District: "Kadıköy", Progress: 70})
	r.SetStatus("j1", job.StatusRunning)
	r.SetStatus("j1", job.StatusCompleted)
	require.NoError(t, r.Flush())

	restored := job.NewRegistry(path)
	assert.Equal(t, 1, restored.Len())
	got, ok := restored.Get("j1")
	require.True(t, ok)
	assert.Equal(t, "Kadıköy", got.District)
	assert.Equal(t, job.StatusCompleted, got.Status)
	assert.Equal(t, 70, got.Progress)
}

func TestStatusTerminal(t *testing.T) {
	assert.False(t, job.StatusPending.Terminal())
	assert.False(t, job.StatusRunning.Terminal())
	assert.True(t, job.StatusCompleted.Terminal())
	assert.True(t, job.StatusError.Terminal())
}
