package geocode

import (
	"context"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/pkg/errors"
	"go.uber.org/zap"
)

type maptilerFeature struct {
	Id        string    `json:"id"`
	PlaceName string    `json:"place_name"`
	Center    []float64 `json:"center"`
	Bbox      []float64 `json:"bbox"`
}

type maptilerResponse struct {
	Features []maptilerFeature `json:"features"`
}

// MapTilerClient calls the MapTiler geocoding API.
type MapTilerClient struct {
	http *resty.Client
	key  string
}

func NewMapTilerClient(baseURL, key string) *MapTilerClient {
	client := resty.New().
		SetBaseURL(baseURL).
		SetTimeout(10*time.Second).
		SetRetryCount(0).
		SetHeader("Accept", "application/json")
	return &MapTilerClient{http: client, key: key}
}

func (c *MapTilerClient) Search(ctx context.Context, query string) ([]Suggestion, error) {
	query = normalize(query)
	if query == "" {
		return []Suggestion{}, nil
	}

	var out maptilerResponse
	resp, err := c.http.R().
		SetContext(ctx).
		SetPathParam("query", query).
		SetQueryParams(map[string]string{
			"key":          c.key,
			"autocomplete": "true",
			"limit":        "5",
		}).
		SetResult(&out).
		Get("/geocoding/{query}.json")
	if err != nil {
		return nil, errors.Wrap(err, "calling geocoder")
	}
	if resp.IsError() {
		zap.L().Warn("geocoder error response", zap.Int("status", resp.StatusCode()))
		return nil, errors.Errorf("geocoder returned status %d", resp.StatusCode())
	}

	suggestions := make([]Suggestion, 0, MaxSuggestions)
	for _, f := range out.Features {
		if len(suggestions) == MaxSuggestions {
			break
		}
		if len(f.Center) != 2 {
			continue
		}
		center := [2]float64{f.Center[0], f.Center[1]}
		var bbox []float64
		if len(f.Bbox) == 4 {
			bbox = f.Bbox
		}
		suggestions = append(suggestions, Suggestion{
			Id:        f.Id,
			PlaceName: f.PlaceName,
			Center:    center,
			Bbox:      bbox,
			Viewport:  ViewportFor(center, bbox),
		})
	}
	return suggestions, nil
}
