// Package scrape drives scrape jobs end to end: keyword/neighborhood search
// fan-out, cache-or-fetch detail lookups, dedup and filtering, and report
// materialization, with live progress published to the job log sink.
package scrape

import (
	"context"
	"fmt"
	"strings"
	"time"

	"leadscraper/internal/config"
	"leadscraper/internal/core/job"
	"leadscraper/internal/core/placecache"
	"leadscraper/internal/core/report"
	"leadscraper/internal/logger"
	"leadscraper/internal/platform/places"
	"leadscraper/internal/reference"
)

// progressLogEvery is the detail-phase cadence of periodic progress entries.
const progressLogEvery = 30

// PlacesAPI is the upstream surface the orchestrator consumes. Search returns
// whatever was accumulated even when it errors; FetchDetails returns nil both
// for upstream failures and for places without a phone number.
type PlacesAPI interface {
	Search(ctx context.Context, keyword, location string, maxResults int) ([]string, error)
	FetchDetails(ctx context.Context, placeID string) *places.Details
}

// SectorQuery is one resolved sector (or the synthetic custom-search sector):
// a display label plus its keyword list.
type SectorQuery struct {
	Name     string
	Keywords []string
}

type Service struct {
	cfg      config.Config
	api      PlacesAPI
	cache    *placecache.Cache
	registry *job.Registry
	sink     *job.LogSink
	writer   *report.Writer
	ref      *reference.Data
	log      *logger.Logger

	// baseCtx bounds every job execution; cancelled on process shutdown.
	baseCtx context.Context
}

func NewService(ctx context.Context, cfg config.Config, api PlacesAPI, cache *placecache.Cache,
	registry *job.Registry, sink *job.LogSink, writer *report.Writer, ref *reference.Data) *Service {
	return &Service{
		cfg:      cfg,
		api:      api,
		cache:    cache,
		registry: registry,
		sink:     sink,
		writer:   writer,
		ref:      ref,
		log:      logger.New("ScrapeService"),
		baseCtx:  ctx,
	}
}

// Submit registers a pending job and schedules its execution. It returns
// immediately with the new job ID.
func (s *Service) Submit(j *job.Job, sectors []SectorQuery) string {
	j.ID = job.NewID()
	j.Status = job.StatusPending
	j.CreatedAt = time.Now()
	s.registry.Create(j)

	go s.run(j.ID, sectors)
	return j.ID
}

// RequestStop flags a running job for cooperative cancellation. The flag is
// honored between detail-phase iterations; partial results are kept.
func (s *Service) RequestStop(jobID string) bool {
	if !s.registry.RequestStop(jobID) {
		return false
	}
	s.sink.Append(jobID, job.LogWarning, "Stop requested, preparing results from collected data...")
	return true
}

func (s *Service) run(jobID string, sectors []SectorQuery) {
	defer func() {
		if r := recover(); r != nil {
			s.fail(jobID, fmt.Errorf("job panicked: %v", r))
		}
	}()

	ctx := s.baseCtx
	snap, ok := s.registry.Get(jobID)
	if !ok {
		return
	}

	start := time.Now()
	s.registry.SetStatus(jobID, job.StatusRunning)
	s.registry.Update(jobID, func(j *job.Job) { j.StartedAt = &start })

	label := jobLabel(snap, sectors)
	divider := strings.Repeat("-", 50)
	s.sink.Append(jobID, job.LogInfo, "Scrape started")
	s.sink.Append(jobID, job.LogInfo, divider)
	s.sink.Append(jobID, job.LogInfo, fmt.Sprintf("District: %s", snap.District))
	s.sink.Append(jobID, job.LogInfo, fmt.Sprintf("Search: %s", label))
	s.sink.Append(jobID, job.LogInfo, fmt.Sprintf("Neighborhoods: %d", len(snap.Neighborhoods)))
	s.sink.Append(jobID, job.LogInfo, fmt.Sprintf("Neighborhood search: %v", snap.UseNeighborhoods))
	s.sink.Append(jobID, job.LogInfo, divider)

	placeIDs, placeSectors := s.searchPhase(ctx, jobID, snap, sectors)

	s.registry.Update(jobID, func(j *job.Job) {
		j.CurrentNeighborhood = ""
		j.NeighborhoodProgress = nil
		j.TotalPlaces = len(placeIDs)
	})
	s.sink.Append(jobID, job.LogInfo, fmt.Sprintf("Search complete: %d unique places found", len(placeIDs)))

	businesses, err := s.detailPhase(ctx, jobID, snap.District, placeIDs, placeSectors)
	if err != nil {
		s.fail(jobID, err)
		return
	}

	if err := s.cache.Flush(); err != nil {
		s.fail(jobID, fmt.Errorf("cache flush: %w", err))
		return
	}

	end := time.Now()
	s.registry.Update(jobID, func(j *job.Job) {
		j.EndedAt = &end
		j.TotalBusinesses = len(businesses)
		j.Progress = 100
	})

	s.sink.Append(jobID, job.LogProgress, fmt.Sprintf("Generating files (%d businesses)...", len(businesses)))
	files, err := s.writer.Write(jobID, businesses, snap.District, label)
	if err != nil {
		s.fail(jobID, fmt.Errorf("report write: %w", err))
		return
	}

	s.registry.Update(jobID, func(j *job.Job) { j.Files = files })
	s.registry.SetStatus(jobID, job.StatusCompleted)
	if err := s.registry.Flush(); err != nil {
		s.log.LogError("job snapshot flush failed", err)
	}

	final, _ := s.registry.Get(jobID)
	duration := end.Sub(start).Round(time.Second)
	s.sink.Append(jobID, job.LogSuccess, "Job complete")
	s.sink.Append(jobID, job.LogInfo, fmt.Sprintf("Duration: %s", duration))
	s.sink.Append(jobID, job.LogInfo, fmt.Sprintf("Result: %d businesses with phone numbers", len(businesses)))
	s.sink.Append(jobID, job.LogCache, fmt.Sprintf("Cache: %d places served without an API call", final.CacheHits))
	s.sink.Append(jobID, job.LogInfo, fmt.Sprintf("API: %d fresh detail calls", final.APICalls))
	s.sink.Append(jobID, job.LogSuccess, "Files ready for download")
}

// searchPhase fans the keyword × neighborhood matrix out into the text-search
// endpoint and merges results into an ordered unique place-ID set, tracking
// which sector labels discovered each place.
func (s *Service) searchPhase(ctx context.Context, jobID string, snap job.Job, sectors []SectorQuery) ([]string, map[string][]string) {
	var order []string
	placeSectors := make(map[string][]string)

	merge := func(ids []string, sector string) {
		for _, id := range ids {
			if _, seen := placeSectors[id]; !seen {
				order = append(order, id)
			}
			if !contains(placeSectors[id], sector) {
				placeSectors[id] = append(placeSectors[id], sector)
			}
		}
	}

	search := func(keyword, location, sector string) {
		ids, err := s.api.Search(ctx, keyword, location, s.cfg.MaxResultsPerQuery)
		if err != nil {
			s.sink.Append(jobID, job.LogError, fmt.Sprintf("Search error: %v", err))
		}
		merge(ids, sector)
	}

	for _, sector := range sectors {
		s.sink.Append(jobID, job.LogProgress, fmt.Sprintf("Scanning sector: %s", sector.Name))
		for _, keyword := range sector.Keywords {
			// Shutdown cancels the base context; stop fanning out instead of
			// burning through the rest of the matrix with doomed requests.
			if ctx.Err() != nil {
				return order, placeSectors
			}
			s.sink.Append(jobID, job.LogProgress, fmt.Sprintf("Keyword: %q", keyword))

			if snap.UseNeighborhoods && len(snap.Neighborhoods) > 0 {
				for i, hood := range snap.Neighborhoods {
					if ctx.Err() != nil {
						return order, placeSectors
					}
					s.registry.Update(jobID, func(j *job.Job) {
						j.CurrentNeighborhood = hood
						j.NeighborhoodProgress = &job.NeighborhoodProgress{Current: i + 1, Total: len(snap.Neighborhoods)}
					})
					search(keyword, fmt.Sprintf("%s %s %s", hood, snap.District, snap.City), sector.Name)
					sleep(ctx, s.cfg.NeighborhoodDelay)
				}
			} else {
				search(keyword, fmt.Sprintf("%s %s", snap.District, snap.City), sector.Name)
			}
			sleep(ctx, s.cfg.KeywordDelay)
		}
	}
	return order, placeSectors
}

// detailPhase resolves every discovered place via cache or API, applies the
// district-address filter and phone dedup, and honors the cooperative stop
// flag between iterations.
func (s *Service) detailPhase(ctx context.Context, jobID, district string, placeIDs []string, placeSectors map[string][]string) ([]report.Business, error) {
	s.sink.Append(jobID, job.LogProgress, "Fetching phone numbers...")

	var businesses []report.Business
	seenPhones := make(map[string]struct{})
	targetDistrict := strings.ToLower(district)
	start := time.Now()
	total := len(placeIDs)

	for i, placeID := range placeIDs {
		processed := i + 1
		progress := 0
		if total > 0 {
			progress = processed * 100 / total
		}
		s.registry.Update(jobID, func(j *job.Job) {
			j.ProcessedPlaces = processed
			j.Progress = progress
		})

		if i == 0 || processed%progressLogEvery == 0 {
			elapsed := time.Since(start)
			remaining := time.Duration(0)
			if processed > 0 {
				remaining = elapsed / time.Duration(processed) * time.Duration(total-processed)
			}
			s.sink.Append(jobID, job.LogProgress,
				fmt.Sprintf("%d/%d (%d%%) - ~%ds remaining", processed, total, progress, int(remaining.Seconds())))
		}

		if ctx.Err() != nil {
			s.sink.Append(jobID, job.LogWarning,
				fmt.Sprintf("Shutting down. Saving the %d businesses collected so far...", len(businesses)))
			break
		}

		if s.registry.ShouldStop(jobID) {
			s.sink.Append(jobID, job.LogWarning,
				fmt.Sprintf("Job stopped. Saving the %d businesses collected so far...", len(businesses)))
			break
		}

		var details *places.Details
		if cached, ok := s.cache.Get(placeID); ok {
			details = &cached
			s.registry.Update(jobID, func(j *job.Job) { j.CacheHits++ })
		} else {
			details = s.api.FetchDetails(ctx, placeID)
			s.registry.Update(jobID, func(j *job.Job) { j.APICalls++ })
			if details != nil {
				s.cache.Put(placeID, *details)
			}
			sleep(ctx, s.cfg.DetailDelay)
		}
		if details == nil {
			continue
		}

		// Venue search returns nearby-but-out-of-district places; keep only
		// addresses that actually name the target district.
		if !strings.Contains(strings.ToLower(details.Address), targetDistrict) {
			continue
		}

		normalized := places.NormalizePhone(details.Phone)
		if _, dup := seenPhones[normalized]; dup {
			continue
		}
		seenPhones[normalized] = struct{}{}

		businesses = append(businesses, report.Business{
			Details: *details,
			Sectors: placeSectors[placeID],
		})
	}
	return businesses, nil
}

func (s *Service) fail(jobID string, err error) {
	s.sink.Append(jobID, job.LogError, fmt.Sprintf("Job failed: %v", err))
	end := time.Now()
	s.registry.Update(jobID, func(j *job.Job) {
		j.Error = err.Error()
		j.EndedAt = &end
	})
	s.registry.SetStatus(jobID, job.StatusError)
	if ferr := s.registry.Flush(); ferr != nil {
		s.log.LogError("job snapshot flush failed", ferr)
	}
}

func jobLabel(snap job.Job, sectors []SectorQuery) string {
	if snap.CustomName != "" {
		return snap.CustomName
	}
	names := make([]string, len(sectors))
	for i, sec := range sectors {
		names[i] = sec.Name
	}
	return strings.Join(names, ", ")
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func sleep(ctx context.Context, d time.Duration) {
	if d <= 0 {
		return
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
	case <-ctx.Done():
	}
}
