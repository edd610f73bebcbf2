// Package places wraps the legacy Google Places text-search and detail
// endpoints with the fixed inter-request delays the upstream rate limits
// require.
package places

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"leadscraper/internal/logger"
)

const (
	statusOK          = "OK"
	statusZeroResults = "ZERO_RESULTS"
	statusDenied      = "REQUEST_DENIED"

	// The upstream serves at most 3 pages of 20 results per text search.
	maxPages = 3

	detailFields = "name,formatted_phone_number,formatted_address,website,rating,user_ratings_total,url"
)

type Config struct {
	APIKey         string
	BaseURL        string
	PageTokenDelay time.Duration
	HTTPClient     *http.Client
}

type Client struct {
	cfg  Config
	http *http.Client
	log  *logger.Logger
}

func New(cfg Config) *Client {
	hc := cfg.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: 30 * time.Second}
	}
	return &Client{cfg: cfg, http: hc, log: logger.New("PlacesClient")}
}

// Search pages through text-search results for `<keyword> in <location>` and
// returns the accumulated place IDs. Pagination stops at maxResults (a
// non-positive value means uncapped), at the upstream page cap, or when no
// further page token is returned. API-level
// denials and transport failures abort pagination; whatever was accumulated is
// still returned, alongside a non-nil error describing the abort so callers
// can surface it in the job log.
func (c *Client) Search(ctx context.Context, keyword, location string, maxResults int) ([]string, error) {
	var ids []string
	pageToken := ""

	for page := 1; page <= maxPages; page++ {
		if pageToken != "" {
			// A fresh page token is not valid for immediate reuse.
			if !sleep(ctx, c.cfg.PageTokenDelay) {
				return ids, ctx.Err()
			}
		}

		q := url.Values{}
		q.Set("query", fmt.Sprintf("%s in %s", keyword, location))
		q.Set("key", c.cfg.APIKey)
		q.Set("language", "tr")
		if pageToken != "" {
			q.Set("pagetoken", pageToken)
		}

		var res searchResponse
		if err := c.getJSON(ctx, c.cfg.BaseURL+"/textsearch/json?"+q.Encode(), &res); err != nil {
			c.log.LogWarnf("text search failed for %q: %v", keyword, err)
			return ids, fmt.Errorf("search %q: %w", keyword, err)
		}

		if res.Status != statusOK && res.Status != statusZeroResults {
			if res.Status == statusDenied {
				c.log.LogErrorf("places API denied request: %s", res.ErrorMessage)
				return ids, fmt.Errorf("api error: %s %s", res.Status, res.ErrorMessage)
			}
			return ids, nil
		}

		for _, r := range res.Results {
			ids = append(ids, r.PlaceID)
		}

		// Non-positive maxResults means no cap; the page limit still applies.
		if maxResults > 0 && len(ids) >= maxResults {
			break
		}
		if res.NextPageToken == "" {
			break
		}
		pageToken = res.NextPageToken
	}

	if maxResults > 0 && len(ids) > maxResults {
		ids = ids[:maxResults]
	}
	return ids, nil
}

// FetchDetails looks up one place. It returns nil both when the upstream
// reports a non-OK status and when the place has no phone number on file;
// either way there is nothing usable to report.
func (c *Client) FetchDetails(ctx context.Context, placeID string) *Details {
	q := url.Values{}
	q.Set("place_id", placeID)
	q.Set("fields", detailFields)
	q.Set("key", c.cfg.APIKey)
	q.Set("language", "tr")

	var res detailsResponse
	if err := c.getJSON(ctx, c.cfg.BaseURL+"/details/json?"+q.Encode(), &res); err != nil {
		c.log.LogDebugf("details fetch failed for %s: %v", placeID, err)
		return nil
	}
	if res.Status != statusOK {
		c.log.LogDebugf("details lookup for %s returned %s", placeID, res.Status)
		return nil
	}
	if res.Result.FormattedPhoneNumber == "" {
		return nil
	}

	r := res.Result
	name := r.Name
	if name == "" {
		name = "N/A"
	}
	return &Details{
		Name:    name,
		Phone:   r.FormattedPhoneNumber,
		Address: r.FormattedAddress,
		Website: r.Website,
		Rating:  r.Rating,
		Reviews: r.UserRatingsTotal,
		MapsURL: r.URL,
	}
}

func (c *Client) getJSON(ctx context.Context, rawURL string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

// sleep waits for d unless the context ends first.
func sleep(ctx context.Context, d time.Duration) bool {
	if d <= 0 {
		return ctx.Err() == nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return true
	case <-ctx.Done():
		return false
	}
}
