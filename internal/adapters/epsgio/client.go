package epsgio

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strconv"
	"time"

	"epsg-finder-service/internal/platform/obs"
	"epsg-finder-service/internal/ports"
)

// Client implements CRSProvider against the epsg.io registry.
//
// It coordinates:
//   - Persistent detail caching keyed by EPSG code
//   - External API calls with retry/backoff
//
// The client is safe for concurrent use.
type Client struct {
	session *http.Client
	baseURL string
	cache   ports.CRSDetailCache
}

// NewClient builds a registry client. The cache is optional; without it
// every lookup goes to the network.
func NewClient(cache ports.CRSDetailCache) *Client {
	return &Client{
		session: &http.Client{Timeout: 10 * time.Second},
		baseURL: "https://epsg.io",
		cache:   cache,
	}
}

type registryResponse struct {
	NumberResult int `json:"number_result"`
	Results      []struct {
		Code  string `json:"code"`
		Name  string `json:"name"`
		Kind  string `json:"kind"`
		Proj4 string `json:"proj4"`
		Unit  string `json:"unit"`
		Area  string `json:"area"`
	} `json:"results"`
}

// Delegate to the batched path to reuse the caching logic.
func (c *Client) Describe(ctx context.Context, code int) (ports.CRSDetail, error) {
	if code <= 0 {
		return ports.CRSDetail{}, fmt.Errorf("describe crs: invalid code %d", code)
	}

	results, err := c.DescribeMany(ctx, []int{code})
	if err != nil {
		return ports.CRSDetail{}, fmt.Errorf("describe crs %d: %w", code, err)
	}

	detail, ok := results[code]
	if !ok {
		return ports.CRSDetail{}, fmt.Errorf("no crs result for code %d", code)
	}
	return detail, nil
}

// Fetch metadata for many EPSG codes, reading through the cache.
// Codes the registry does not know are absent from the result.
func (c *Client) DescribeMany(ctx context.Context, codes []int) (_ map[int]ports.CRSDetail, err error) {
	defer obs.Time(ctx, "epsgio.DescribeMany")(&err)

	if len(codes) == 0 {
		return map[int]ports.CRSDetail{}, nil
	}

	seen := make(map[int]struct{}, len(codes))
	uniq := make([]int, 0, len(codes))
	for _, code := range codes {
		if code <= 0 {
			continue
		}
		if _, ok := seen[code]; ok {
			continue
		}
		seen[code] = struct{}{}
		uniq = append(uniq, code)
	}

	if len(uniq) == 0 {
		return map[int]ports.CRSDetail{}, nil
	}

	hits := make(map[int]ports.CRSDetail)
	// Check the persistent cache before issuing external API calls.
	if c.cache != nil {
		var err error
		hits, err = c.cache.GetMany(ctx, uniq)
		if err != nil {
			return nil, fmt.Errorf("crs detail cache: %w", err)
		}
	}

	misses := make([]int, 0, len(uniq))
	for _, code := range uniq {
		if _, ok := hits[code]; !ok {
			misses = append(misses, code)
		}
	}

	if len(misses) == 0 {
		return hits, nil
	}

	fetched := make(map[int]ports.CRSDetail, len(misses))
	for _, code := range misses {
		detail, ok, err := c.fetchOne(ctx, code)
		if err != nil {
			return nil, fmt.Errorf("fetch crs %d: %w", code, err)
		}
		if !ok {
			continue
		}
		fetched[code] = detail
	}

	if c.cache != nil && len(fetched) > 0 {
		if err := c.cache.PutMany(ctx, fetched); err != nil {
			log.Printf("crs detail cache write failed: %v", err)
		}
	}

	out := make(map[int]ports.CRSDetail, len(hits)+len(fetched))
	for k, v := range hits {
		out[k] = v
	}
	for k, v := range fetched {
		out[k] = v
	}

	return out, nil
}

// fetchOne queries the registry for a single code. The second return is
// false when the registry has no entry for the code.
func (c *Client) fetchOne(ctx context.Context, code int) (ports.CRSDetail, bool, error) {
	endpoint := c.baseURL + "/"

	resp, err := c.doWithRetry(ctx, func() (*http.Request, error) {
		req, err := c.newRequest(ctx, endpoint)
		if err != nil {
			return nil, err
		}
		q := req.URL.Query()
		q.Set("q", strconv.Itoa(code))
		q.Set("format", "json")
		req.URL.RawQuery = q.Encode()
		return req, nil
	})
	if err != nil {
		return ports.CRSDetail{}, false, fmt.Errorf("execute request: %w", err)
	}
	defer resp.Body.Close()

	var decoded registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return ports.CRSDetail{}, false, fmt.Errorf("decode registry response: %w", err)
	}

	if len(decoded.Results) == 0 {
		return ports.CRSDetail{}, false, nil
	}

	r := decoded.Results[0]
	detail := ports.CRSDetail{
		Code:  code,
		Name:  r.Name,
		Kind:  r.Kind,
		Proj4: r.Proj4,
		Unit:  r.Unit,
		Area:  r.Area,
	}
	// The registry echoes the code as a string; trust it when it parses.
	if parsed, err := strconv.Atoi(r.Code); err == nil && parsed > 0 {
		detail.Code = parsed
	}

	return detail, true, nil
}
