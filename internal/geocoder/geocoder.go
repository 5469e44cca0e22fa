// Package geocoder resolves free-form addresses through the MapQuest geocoding API.
package geocoder

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"

	"campdirectory/internal/config"
	"campdirectory/internal/models"
)

var ErrNoResults = errors.New("address could not be geocoded")

type Geocoder interface {
	Geocode(ctx context.Context, address string) (*models.Location, error)
}

type MapQuest struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

func NewMapQuest(cfg config.Geocoder) *MapQuest {
	return &MapQuest{
		apiKey:  cfg.APIKey,
		baseURL: cfg.URL,
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

type mapQuestResponse struct {
	Info struct {
		StatusCode int      `json:"statuscode"`
		Messages   []string `json:"messages"`
	} `json:"info"`
	Results []struct {
		Locations []mapQuestLocation `json:"locations"`
	} `json:"results"`
}

type mapQuestLocation struct {
	Street     string `json:"street"`
	City       string `json:"adminArea5"`
	State      string `json:"adminArea3"`
	Country    string `json:"adminArea1"`
	PostalCode string `json:"postalCode"`
	LatLng     struct {
		Lat float64 `json:"lat"`
		Lng float64 `json:"lng"`
	} `json:"latLng"`
}

func (g *MapQuest) Geocode(ctx context.Context, address string) (*models.Location, error) {
	params := url.Values{}
	params.Set("key", g.apiKey)
	params.Set("location", address)
	params.Set("maxResults", "1")

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.baseURL+"?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build geocode request: %w", err)
	}

	resp, err := g.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("geocode request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("geocode request failed with status %d", resp.StatusCode)
	}

	var body mapQuestResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode geocode response: %w", err)
	}
	if body.Info.StatusCode != 0 {
		return nil, fmt.Errorf("geocoder error %d: %s", body.Info.StatusCode, strings.Join(body.Info.Messages, "; "))
	}
	if len(body.Results) == 0 || len(body.Results[0].Locations) == 0 {
		return nil, ErrNoResults
	}

	return toLocation(body.Results[0].Locations[0]), nil
}

func toLocation(loc mapQuestLocation) *models.Location {
	lat, lng := loc.LatLng.Lat, loc.LatLng.Lng

	parts := make([]string, 0, 4)
	for _, p := range []string{loc.Street, loc.City, strings.TrimSpace(loc.State + " " + loc.PostalCode), loc.Country} {
		if p != "" {
			parts = append(parts, p)
		}
	}

	return &models.Location{
		Latitude:         &lat,
		Longitude:        &lng,
		FormattedAddress: strings.Join(parts, ", "),
		Street:           loc.Street,
		City:             loc.City,
		State:            loc.State,
		Zipcode:          loc.PostalCode,
		Country:          loc.Country,
	}
}
