package job

import "time"

type Status string

const (
	StatusPending   Status = "pending"
	StatusRunning   Status = "running"
	StatusCompleted Status = "completed"
	StatusError     Status = "error"
)

// statusRank orders the lifecycle; transitions never move backward.
var statusRank = map[Status]int{
	StatusPending:   0,
	StatusRunning:   1,
	StatusCompleted: 2,
	StatusError:     2,
}

// Terminal reports whether a job in this status will make no further progress.
func (s Status) Terminal() bool { return s == StatusCompleted || s == StatusError }

type Type string

const (
	TypeSector Type = "sector"
	TypeCustom Type = "custom"
)

// NeighborhoodProgress is the live position within a district's neighborhood
// list during the search phase.
type NeighborhoodProgress struct {
	Current int `json:"current"`
	Total   int `json:"total"`
}

type FileRef struct {
	Filename string `json:"filename"`
	Path     string `json:"path"`
}

type Files struct {
	TXT  FileRef `json:"txt"`
	XLSX FileRef `json:"xlsx"`
}

// Job is one scrape request and its accumulated state. A job is mutated only
// through the registry, and only by the single orchestrator run that owns it.
type Job struct {
	ID               string `json:"id"`
	Type             Type   `json:"type"`
	Status           Status `json:"status"`
	District         string `json:"district"`
	City             string `json:"city"`
	UseNeighborhoods bool   `json:"useNeighborhoods"`

	Sectors    []string `json:"sectors,omitempty"`
	Keywords   []string `json:"keywords,omitempty"`
	CustomName string   `json:"customName,omitempty"`

	Neighborhoods     []string `json:"neighborhoods,omitempty"`
	NeighborhoodCount int      `json:"neighborhoodCount"`

	Progress        int `json:"progress"`
	TotalPlaces     int `json:"totalPlaces"`
	ProcessedPlaces int `json:"processedPlaces"`
	TotalBusinesses int `json:"totalBusinesses"`
	CacheHits       int `json:"cacheHits"`
	APICalls        int `json:"apiCalls"`

	CurrentNeighborhood  string                `json:"currentNeighborhood,omitempty"`
	NeighborhoodProgress *NeighborhoodProgress `json:"neighborhoodProgress,omitempty"`

	Files *Files `json:"files,omitempty"`
	Error string `json:"error,omitempty"`

	ShouldStop bool `json:"shouldStop"`

	CreatedAt time.Time  `json:"createdAt"`
	StartedAt *time.Time `json:"startedAt,omitempty"`
	EndedAt   *time.Time `json:"endedAt,omitempty"`
}

// clone returns a deep copy so registry readers never alias mutable state.
func (j *Job) clone() Job {
	c := *j
	c.Sectors = append([]string(nil), j.Sectors...)
	c.Keywords = append([]string(nil), j.Keywords...)
	c.Neighborhoods = append([]string(nil), j.Neighborhoods...)
	if j.NeighborhoodProgress != nil {
		np := *j.NeighborhoodProgress
		c.NeighborhoodProgress = &np
	}
	if j.Files != nil {
		f := *j.Files
		c.Files = &f
	}
	if j.StartedAt != nil {
		t := *j.StartedAt
		c.StartedAt = &t
	}
	if j.EndedAt != nil {
		t := *j.EndedAt
		c.EndedAt = &t
	}
	return c
}
