package scrape

import (
	"bufio"
	"encoding/json"
	"os"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/valyala/fasthttp"

	"leadscraper/internal/core/job"
	"leadscraper/internal/logger"
	"leadscraper/internal/reference"
)

type Handler struct {
	svc          *Service
	registry     *job.Registry
	sink         *job.LogSink
	ref          *reference.Data
	pollInterval time.Duration
	log          *logger.Logger
}

func NewHandler(svc *Service, registry *job.Registry, sink *job.LogSink, ref *reference.Data, pollInterval time.Duration) *Handler {
	return &Handler{
		svc:          svc,
		registry:     registry,
		sink:         sink,
		ref:          ref,
		pollInterval: pollInterval,
		log:          logger.New("ScrapeHandler"),
	}
}

type scrapeRequest struct {
	Sectors          []string `json:"sectors"`
	District         string   `json:"district"`
	UseNeighborhoods *bool    `json:"useNeighborhoods"`
	City             string   `json:"city"`
}

type customScrapeRequest struct {
	Keywords         interface{} `json:"keywords"`
	District         string      `json:"district"`
	UseNeighborhoods *bool       `json:"useNeighborhoods"`
	City             string      `json:"city"`
	CustomName       string      `json:"customName"`
}

type submitResponse struct {
	JobID             string `json:"jobId"`
	NeighborhoodCount int    `json:"neighborhoodCount"`
	KeywordCount      int    `json:"keywordCount"`
}

func errorJSON(c *fiber.Ctx, status int, msg string) error {
	return c.Status(status).JSON(fiber.Map{"error": msg})
}

// HandleListSectors returns the sector presets.
func (h *Handler) HandleListSectors(c *fiber.Ctx) error {
	return c.JSON(h.ref.Sectors())
}

// HandleListDistricts returns the known district names.
func (h *Handler) HandleListDistricts(c *fiber.Ctx) error {
	return c.JSON(h.ref.Districts())
}

// HandleListNeighborhoods returns the neighborhoods of one district (empty
// list for unknown districts).
func (h *Handler) HandleListNeighborhoods(c *fiber.Ctx) error {
	return c.JSON(h.ref.NeighborhoodsFor(c.Params("district")))
}

// HandleCreateScrape starts a sector-based job.
func (h *Handler) HandleCreateScrape(c *fiber.Ctx) error {
	var req scrapeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid body")
	}
	if len(req.Sectors) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "at least one sector is required")
	}
	if req.District == "" {
		return errorJSON(c, fiber.StatusBadRequest, "district is required")
	}

	var queries []SectorQuery
	var sectorIDs []string
	for _, id := range req.Sectors {
		if sector, ok := h.ref.SectorByID(id); ok {
			queries = append(queries, SectorQuery{Name: sector.Name, Keywords: sector.Keywords})
			sectorIDs = append(sectorIDs, id)
		}
	}
	if len(queries) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "no known sector in selection")
	}

	j := h.newJob(job.TypeSector, req.District, req.City, req.UseNeighborhoods)
	j.Sectors = sectorIDs
	id := h.svc.Submit(j, queries)

	return c.JSON(submitResponse{
		JobID:             id,
		NeighborhoodCount: len(j.Neighborhoods),
		KeywordCount:      keywordCount(queries),
	})
}

// HandleCreateCustomScrape starts a free-text keyword job. Keywords arrive as
// either a list or comma-separated text.
func (h *Handler) HandleCreateCustomScrape(c *fiber.Ctx) error {
	var req customScrapeRequest
	if err := c.BodyParser(&req); err != nil {
		return errorJSON(c, fiber.StatusBadRequest, "invalid body")
	}
	keywords := parseKeywords(req.Keywords)
	if len(keywords) == 0 {
		return errorJSON(c, fiber.StatusBadRequest, "at least one keyword is required")
	}
	if req.District == "" {
		return errorJSON(c, fiber.StatusBadRequest, "district is required")
	}

	name := req.CustomName
	if name == "" {
		name = strings.Join(keywords, ", ")
	}
	queries := []SectorQuery{{Name: name, Keywords: keywords}}

	j := h.newJob(job.TypeCustom, req.District, req.City, req.UseNeighborhoods)
	j.Keywords = keywords
	j.CustomName = name
	id := h.svc.Submit(j, queries)

	return c.JSON(submitResponse{
		JobID:             id,
		NeighborhoodCount: len(j.Neighborhoods),
		KeywordCount:      len(keywords),
	})
}

func (h *Handler) newJob(t job.Type, district, city string, useNeighborhoods *bool) *job.Job {
	if city == "" {
		city = "Istanbul"
	}
	un := true
	if useNeighborhoods != nil {
		un = *useNeighborhoods
	}
	hoods := h.ref.NeighborhoodsFor(district)
	return &job.Job{
		Type:              t,
		District:          district,
		City:              city,
		UseNeighborhoods:  un,
		Neighborhoods:     hoods,
		NeighborhoodCount: len(hoods),
	}
}

type jobFilesResponse struct {
	TXT  string `json:"txt"`
	XLSX string `json:"xlsx"`
}

type jobStatusResponse struct {
	ID                   string                    `json:"id"`
	Status               job.Status                `json:"status"`
	Type                 job.Type                  `json:"type"`
	Progress             int                       `json:"progress"`
	TotalPlaces          int                       `json:"totalPlaces"`
	ProcessedPlaces      int                       `json:"processedPlaces"`
	TotalBusinesses      int                       `json:"totalBusinesses"`
	CurrentNeighborhood  string                    `json:"currentNeighborhood,omitempty"`
	NeighborhoodProgress *job.NeighborhoodProgress `json:"neighborhoodProgress,omitempty"`
	NeighborhoodCount    int                       `json:"neighborhoodCount"`
	CacheHits            int                       `json:"cacheHits"`
	APICalls             int                       `json:"apiCalls"`
	Files                *jobFilesResponse         `json:"files,omitempty"`
	Error                string                    `json:"error,omitempty"`
}

// HandleGetJob returns a job status snapshot.
func (h *Handler) HandleGetJob(c *fiber.Ctx) error {
	j, ok := h.registry.Get(c.Params("jobId"))
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "job not found")
	}
	resp := jobStatusResponse{
		ID:                   j.ID,
		Status:               j.Status,
		Type:                 j.Type,
		Progress:             j.Progress,
		TotalPlaces:          j.TotalPlaces,
		ProcessedPlaces:      j.ProcessedPlaces,
		TotalBusinesses:      j.TotalBusinesses,
		CurrentNeighborhood:  j.CurrentNeighborhood,
		NeighborhoodProgress: j.NeighborhoodProgress,
		NeighborhoodCount:    j.NeighborhoodCount,
		CacheHits:            j.CacheHits,
		APICalls:             j.APICalls,
		Error:                j.Error,
	}
	if j.Files != nil {
		resp.Files = &jobFilesResponse{TXT: j.Files.TXT.Filename, XLSX: j.Files.XLSX.Filename}
	}
	return c.JSON(resp)
}

type logsFrame struct {
	Logs  []job.LogEntry `json:"logs"`
	Total int            `json:"total"`
}

type doneFrame struct {
	Done   bool       `json:"done"`
	Status job.Status `json:"status"`
}

// HandleStreamLogs pushes log frames for a job as server-sent events. Each
// frame carries the entries appended since the client's cursor; one terminal
// done frame ends the stream once the job completes or errors. Reconnecting
// clients resume from ?since=N without loss or duplication.
func (h *Handler) HandleStreamLogs(c *fiber.Ctx) error {
	jobID := c.Params("jobId")
	if _, ok := h.registry.Get(jobID); !ok {
		return errorJSON(c, fiber.StatusNotFound, "job not found")
	}
	cursor := c.QueryInt("since", 0)

	c.Set(fiber.HeaderContentType, "text/event-stream")
	c.Set(fiber.HeaderCacheControl, "no-cache")
	c.Set("Connection", "keep-alive")

	registry, sink, interval := h.registry, h.sink, h.pollInterval
	c.Context().SetBodyStreamWriter(fasthttp.StreamWriter(func(w *bufio.Writer) {
		for {
			entries, total := sink.ReadSince(jobID, cursor)
			if len(entries) > 0 {
				cursor = total
				if err := writeFrame(w, logsFrame{Logs: entries, Total: total}); err != nil {
					return
				}
			}

			j, ok := registry.Get(jobID)
			if !ok {
				return
			}
			if j.Status.Terminal() {
				// Flush anything appended between the read above and the
				// terminal transition before signaling done.
				if entries, total = sink.ReadSince(jobID, cursor); len(entries) > 0 {
					cursor = total
					if err := writeFrame(w, logsFrame{Logs: entries, Total: total}); err != nil {
						return
					}
				}
				_ = writeFrame(w, doneFrame{Done: true, Status: j.Status})
				return
			}
			time.Sleep(interval)
		}
	}))
	return nil
}

func writeFrame(w *bufio.Writer, v interface{}) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return err
	}
	if _, err := w.WriteString("data: " + string(payload) + "\n\n"); err != nil {
		return err
	}
	return w.Flush()
}

// HandleStopJob requests cooperative cancellation of a running job.
func (h *Handler) HandleStopJob(c *fiber.Ctx) error {
	if !h.svc.RequestStop(c.Params("jobId")) {
		return errorJSON(c, fiber.StatusNotFound, "no running job with that id")
	}
	return c.JSON(fiber.Map{"success": true})
}

// HandleDownload serves a finished job's artifact as a file attachment.
func (h *Handler) HandleDownload(c *fiber.Ctx) error {
	j, ok := h.registry.Get(c.Params("jobId"))
	if !ok {
		return errorJSON(c, fiber.StatusNotFound, "job not found; the server may have restarted")
	}
	if j.Files == nil {
		return errorJSON(c, fiber.StatusBadRequest, "files are not ready yet")
	}

	var ref job.FileRef
	switch c.Params("format") {
	case "txt":
		ref = j.Files.TXT
	case "xlsx":
		ref = j.Files.XLSX
	default:
		return errorJSON(c, fiber.StatusBadRequest, "unknown format, expected txt or xlsx")
	}

	if _, err := os.Stat(ref.Path); err != nil {
		h.log.LogErrorf("download: %s listed in job %s but missing on disk", ref.Path, j.ID)
		return errorJSON(c, fiber.StatusNotFound,
			"files exist in job metadata but are missing from storage; re-run the scrape to regenerate them")
	}
	return c.Download(ref.Path, ref.Filename)
}

func keywordCount(queries []SectorQuery) int {
	n := 0
	for _, q := range queries {
		n += len(q.Keywords)
	}
	return n
}

func parseKeywords(raw interface{}) []string {
	var parts []string
	switch v := raw.(type) {
	case string:
		parts = strings.Split(v, ",")
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				parts = append(parts, s)
			}
		}
	}
	var keywords []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			keywords = append(keywords, p)
		}
	}
	return keywords
}
