package geocoder

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campdirectory/internal/config"
)

const bostonResponse = `{
  "info": {"statuscode": 0, "messages": []},
  "results": [{
    "locations": [{
      "street": "233 Bay State Rd",
      "adminArea5": "Boston",
      "adminArea3": "MA",
      "adminArea1": "US",
      "postalCode": "02215",
      "latLng": {"lat": 42.350846, "lng": -71.105734}
    }]
  }]
}`

func newTestGeocoder(t *testing.T, handler http.HandlerFunc) *MapQuest {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewMapQuest(config.Geocoder{APIKey: "secret", URL: srv.URL})
}

func TestMapQuest_Geocode(t *testing.T) {
	g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "secret", r.URL.Query().Get("key"))
		assert.Equal(t, "233 Bay State Rd Boston MA 02215", r.URL.Query().Get("location"))
		w.Write([]byte(bostonResponse))
	})

	loc, err := g.Geocode(context.Background(), "233 Bay State Rd Boston MA 02215")
	require.NoError(t, err)

	assert.InDelta(t, 42.350846, *loc.Latitude, 1e-9)
	assert.InDelta(t, -71.105734, *loc.Longitude, 1e-9)
	assert.Equal(t, "Boston", loc.City)
	assert.Equal(t, "02215", loc.Zipcode)
	assert.Equal(t, "233 Bay State Rd, Boston, MA 02215, US", loc.FormattedAddress)
}

func TestMapQuest_GeocodeFailures(t *testing.T) {
	tests := []struct {
		name    string
		status  int
		body    string
		wantErr string
	}{
		{name: "http error", status: http.StatusInternalServerError, body: "", wantErr: "status 500"},
		{name: "api error", status: http.StatusOK, body: `{"info":{"statuscode":403,"messages":["bad key"]}}`, wantErr: "geocoder error 403: bad key"},
		{name: "no results", status: http.StatusOK, body: `{"info":{"statuscode":0},"results":[{"locations":[]}]}`, wantErr: ErrNoResults.Error()},
		{name: "bad json", status: http.StatusOK, body: `{`, wantErr: "failed to decode"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := newTestGeocoder(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			})

			_, err := g.Geocode(context.Background(), "02215")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
