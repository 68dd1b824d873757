// Copyright (c) 2025, NVIDIA CORPORATION.  All rights reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	clocktesting "k8s.io/utils/clock/testing"

	"github.com/spacedata/nasa-explorer/pkg/cache"
	"github.com/spacedata/nasa-explorer/pkg/nasa"
)

const testAPIKey = "TEST_KEY"

var epoch = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

// stub is a fake NASA upstream that counts calls.
type stub struct {
	*httptest.Server
	calls    atomic.Int64
	lastPath atomic.Value
	lastQry  atomic.Value
}

func newStub(t *testing.T, fn http.HandlerFunc) *stub {
	t.Helper()
	s := &stub{}
	s.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.calls.Add(1)
		s.lastPath.Store(r.URL.Path)
		s.lastQry.Store(r.URL.RawQuery)
		fn(w, r)
	}))
	t.Cleanup(s.Close)
	return s
}

func jsonBody(body string) http.HandlerFunc {
	return func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}
}

type fixture struct {
	handler  *Handler
	mux      *http.ServeMux
	upstream *stub
	cache    *cache.Cache[[]byte]
	clock    *clocktesting.FakeClock
}

func newFixture(t *testing.T, upstream http.HandlerFunc, cached bool) *fixture {
	t.Helper()

	f := &fixture{
		upstream: newStub(t, upstream),
		clock:    clocktesting.NewFakeClock(epoch),
	}
	client := nasa.NewClient(
		nasa.WithAPIKey(testAPIKey),
		nasa.WithBaseURL(f.upstream.URL),
		nasa.WithImagesBaseURL(f.upstream.URL),
	)

	opts := []Option{WithClock(f.clock)}
	if cached {
		f.cache = cache.New[[]byte](cache.WithName("test"), cache.WithClock(f.clock))
		opts = append(opts, WithCache(f.cache))
	}
	f.handler = NewHandler(client, opts...)

	f.mux = http.NewServeMux()
	for pattern, fn := range f.handler.Routes() {
		f.mux.HandleFunc(pattern, fn)
	}
	return f
}

func (f *fixture) do(t *testing.T, method, target string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	f.mux.ServeHTTP(w, httptest.NewRequest(method, target, nil))
	return w
}

func (f *fixture) get(t *testing.T, target string) *httptest.ResponseRecorder {
	t.Helper()
	return f.do(t, http.MethodGet, target)
}

type envelope struct {
	Success   bool            `json:"success"`
	Data      json.RawMessage `json:"data"`
	Error     string          `json:"error"`
	Message   string          `json:"message"`
	Timestamp string          `json:"timestamp"`
	Retryable bool            `json:"retryable"`
	Details   map[string]any  `json:"details"`
}

func decode(t *testing.T, w *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env), w.Body.String())
	return env
}

const apodBody = `{"date":"2024-01-01","title":"Orion","url":"https://apod.nasa.gov/orion.jpg"}`

func TestServe_CacheHitIsByteIdentical(t *testing.T) {
	f := newFixture(t, jsonBody(apodBody), true)

	first := f.get(t, "/api/nasa/apod?date=2024-01-01")
	require.Equal(t, http.StatusOK, first.Code)
	assert.Equal(t, "MISS", first.Header().Get(CacheHeader))

	f.clock.Step(time.Minute)

	second := f.get(t, "/api/nasa/apod?date=2024-01-01")
	require.Equal(t, http.StatusOK, second.Code)
	assert.Equal(t, "HIT", second.Header().Get(CacheHeader))

	assert.Equal(t, first.Body.String(), second.Body.String())
	assert.EqualValues(t, 1, f.upstream.calls.Load())

	env := decode(t, second)
	assert.True(t, env.Success)
	assert.Equal(t, "APOD data retrieved successfully", env.Message)
	assert.JSONEq(t, apodBody, string(env.Data))
}

func TestServe_CacheKeyIsRequestURI(t *testing.T) {
	f := newFixture(t, jsonBody(apodBody), true)

	f.get(t, "/api/nasa/apod?date=2024-01-01&thumbs=true")
	f.get(t, "/api/nasa/apod?thumbs=true&date=2024-01-01")

	assert.EqualValues(t, 2, f.upstream.calls.Load())
	assert.Equal(t, 2, f.cache.Len())
}

func TestServe_CacheExpires(t *testing.T) {
	f := newFixture(t, jsonBody(apodBody), true)

	f.get(t, "/api/nasa/apod")
	f.clock.Step(nasa.FamilyAPOD.TTL() + time.Second)
	w := f.get(t, "/api/nasa/apod")

	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))
	assert.EqualValues(t, 2, f.upstream.calls.Load())
}

func TestServe_FamilyTTL(t *testing.T) {
	f := newFixture(t, jsonBody(`{"collection":{"items":[]}}`), true)

	f.get(t, "/api/nasa/images?q=moon")
	f.clock.Step(nasa.FamilyImageSearch.TTL() - time.Second)
	assert.Equal(t, "HIT", f.get(t, "/api/nasa/images?q=moon").Header().Get(CacheHeader))

	f.clock.Step(2 * time.Second)
	assert.Equal(t, "MISS", f.get(t, "/api/nasa/images?q=moon").Header().Get(CacheHeader))
	assert.EqualValues(t, 2, f.upstream.calls.Load())
}

func TestServe_Bypass(t *testing.T) {
	f := newFixture(t, jsonBody(apodBody), true)

	for range 2 {
		w := f.get(t, "/api/nasa/apod?noCache=true")
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "BYPASS", w.Header().Get(CacheHeader))
	}

	assert.EqualValues(t, 2, f.upstream.calls.Load())
	assert.Zero(t, f.cache.Len())
	assert.NotContains(t, f.upstream.lastQry.Load(), "noCache")
}

// slow delays the upstream so concurrent requests overlap.
func slow(d time.Duration, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		time.Sleep(d)
		next(w, r)
	}
}

// fanOut issues n concurrent GETs for target and returns the recorders.
func (f *fixture) fanOut(t *testing.T, n int, target string) []*httptest.ResponseRecorder {
	t.Helper()
	out := make([]*httptest.ResponseRecorder, n)
	var wg sync.WaitGroup
	for i := range n {
		wg.Add(1)
		go func() {
			defer wg.Done()
			w := httptest.NewRecorder()
			f.mux.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
			out[i] = w
		}()
	}
	wg.Wait()
	return out
}

func TestServe_ConcurrentMissesShareUpstream(t *testing.T) {
	f := newFixture(t, slow(200*time.Millisecond, jsonBody(apodBody)), true)

	res := f.fanOut(t, 8, "/api/nasa/apod?date=2024-01-01")

	// Late arrivals may find the stored entry instead of the flight.
	for _, w := range res {
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, []string{"MISS", "HIT"}, w.Header().Get(CacheHeader))
		assert.Equal(t, res[0].Body.Bytes(), w.Body.Bytes())
	}
	assert.EqualValues(t, 1, f.upstream.calls.Load())
	assert.Equal(t, 1, f.cache.Len())
}

func TestServe_ConcurrentBypassNeverShares(t *testing.T) {
	f := newFixture(t, slow(100*time.Millisecond, jsonBody(apodBody)), true)

	res := f.fanOut(t, 4, "/api/nasa/apod?date=2024-01-01&noCache=true")

	for _, w := range res {
		require.Equal(t, http.StatusOK, w.Code)
		assert.Equal(t, "BYPASS", w.Header().Get(CacheHeader))
	}
	assert.EqualValues(t, 4, f.upstream.calls.Load())
	assert.Zero(t, f.cache.Len())
}

func TestServe_NoCache(t *testing.T) {
	f := newFixture(t, jsonBody(apodBody), false)

	w := f.get(t, "/api/nasa/apod")
	f.get(t, "/api/nasa/apod")

	assert.Empty(t, w.Header().Get(CacheHeader))
	assert.EqualValues(t, 2, f.upstream.calls.Load())
}

func TestServe_ValidationNeverReachesUpstream(t *testing.T) {
	f := newFixture(t, jsonBody(`{}`), true)

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{"unknown rover", "/api/nasa/mars-rovers/voyager/photos", "rover"},
		{"unknown rover manifest", "/api/nasa/mars-rovers/voyager/manifest", "rover"},
		{"bad date", "/api/nasa/apod?date=yesterday", "date"},
		{"count out of range", "/api/nasa/apod?count=500", "count"},
		{"reversed range", "/api/nasa/neo?start_date=2024-01-10&end_date=2024-01-01", "start_date"},
		{"negative sol", "/api/nasa/mars-rovers/curiosity/photos?sol=-1", "sol"},
		{"image url without image", "/api/nasa/epic/image-url?date=2024-01-15", "image"},
		{"bad media type", "/api/nasa/images?media_type=podcast", "media_type"},
		{"year before archive", "/api/nasa/images?year_start=1800", "year_start"},
		{"year in future", "/api/nasa/images?year_end=2999", "year_end"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.get(t, tt.target)
			require.Equal(t, http.StatusBadRequest, w.Code)

			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, "VALIDATION_ERROR", env.Error)
			assert.Contains(t, env.Message, "Validation failed: ")
			assert.Contains(t, env.Message, tt.want)
			assert.NotEmpty(t, env.Details["errors"])
			assert.False(t, env.Retryable)
		})
	}

	assert.Zero(t, f.upstream.calls.Load())
	assert.Zero(t, f.cache.Len())
}

func TestServe_UpstreamFailure(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"msg":"service unavailable"}`))
	}, true)

	tests := []struct {
		target string
		code   string
	}{
		{"/api/nasa/apod", "APOD_FETCH_ERROR"},
		{"/api/nasa/mars-rovers", "MARS_ROVERS_FETCH_ERROR"},
		{"/api/nasa/mars-rovers/spirit/photos?sol=10", "MARS_ROVER_FETCH_ERROR"},
		{"/api/nasa/mars-rovers/spirit/manifest", "MARS_ROVER_MANIFEST_FETCH_ERROR"},
		{"/api/nasa/epic", "EPIC_FETCH_ERROR"},
		{"/api/nasa/epic/dates", "EPIC_FETCH_ERROR"},
		{"/api/nasa/neo", "NEO_FETCH_ERROR"},
		{"/api/nasa/neo/hazardous", "NEO_FETCH_ERROR"},
		{"/api/nasa/neo/summary", "NEO_FETCH_ERROR"},
		{"/api/nasa/images?q=mars", "NASA_IMAGE_SEARCH_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := f.get(t, tt.target)
			require.Equal(t, http.StatusBadGateway, w.Code)
			assert.Empty(t, w.Header().Get(CacheHeader))

			env := decode(t, w)
			assert.False(t, env.Success)
			assert.Equal(t, tt.code, env.Error)
			assert.Contains(t, env.Message, "service unavailable")
			assert.True(t, env.Retryable)
			assert.NotContains(t, w.Body.String(), testAPIKey)
		})
	}

	assert.Zero(t, f.cache.Len(), "failures must not be cached")
}

func TestServe_FailureIsRetried(t *testing.T) {
	var fail atomic.Bool
	fail.Store(true)
	f := newFixture(t, func(w http.ResponseWriter, r *http.Request) {
		if fail.Load() {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		jsonBody(apodBody)(w, r)
	}, true)

	require.Equal(t, http.StatusBadGateway, f.get(t, "/api/nasa/apod").Code)

	fail.Store(false)
	w := f.get(t, "/api/nasa/apod")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "MISS", w.Header().Get(CacheHeader))
	assert.EqualValues(t, 2, f.upstream.calls.Load())
}

func TestServe_InvalidUpstreamJSON(t *testing.T) {
	f := newFixture(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("<html>maintenance</html>"))
	}, true)

	w := f.get(t, "/api/nasa/epic")
	require.Equal(t, http.StatusBadGateway, w.Code)
	assert.Equal(t, "EPIC_FETCH_ERROR", decode(t, w).Error)
}

func TestServe_MarsRoverRoutes(t *testing.T) {
	f := newFixture(t, jsonBody(`{"photos":[]}`), true)

	w := f.get(t, "/api/nasa/mars-rovers/curiosity/photos?sol=1000&camera=FHAZ&unknown=x")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mars rover photos for curiosity retrieved successfully", decode(t, w).Message)
	assert.Equal(t, "/mars-photos/api/v1/rovers/curiosity/photos", f.upstream.lastPath.Load())
	assert.Contains(t, f.upstream.lastQry.Load(), "sol=1000")
	assert.NotContains(t, f.upstream.lastQry.Load(), "unknown")

	w = f.get(t, "/api/nasa/mars-rovers/perseverance/manifest")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Mars rover manifest for perseverance retrieved successfully", decode(t, w).Message)
	assert.Equal(t, "/mars-photos/api/v1/manifests/perseverance", f.upstream.lastPath.Load())
}

func TestServe_EPICRoutes(t *testing.T) {
	f := newFixture(t, jsonBody(`[]`), true)

	tests := []struct {
		target string
		path   string
	}{
		{"/api/nasa/epic", "/EPIC/api/natural/latest"},
		{"/api/nasa/epic?enhanced=true", "/EPIC/api/enhanced/latest"},
		{"/api/nasa/epic?date=2024-01-15", "/EPIC/api/natural/date/2024-01-15"},
		{"/api/nasa/epic/dates", "/EPIC/api/natural/all"},
	}
	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			w := f.get(t, tt.target)
			require.Equal(t, http.StatusOK, w.Code)
			assert.Equal(t, tt.path, f.upstream.lastPath.Load())
		})
	}
}

func TestServe_EPICImageURL(t *testing.T) {
	f := newFixture(t, jsonBody(`{}`), true)

	tests := []struct {
		name   string
		target string
		want   string
	}{
		{
			name:   "natural",
			target: "/api/nasa/epic/image-url?date=2024-01-15&image=epic_1b_20240115001751",
			want:   "/EPIC/archive/natural/2024/01/15/png/epic_1b_20240115001751.png?api_key=" + testAPIKey,
		},
		{
			name:   "enhanced with timestamp",
			target: "/api/nasa/epic/image-url?date=2024-01-15%2000:13:03&image=epic_RGB_20240115&enhanced=true",
			want:   "/EPIC/archive/enhanced/2024/01/15/png/epic_RGB_20240115.png?api_key=" + testAPIKey,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := f.get(t, tt.target)
			require.Equal(t, http.StatusOK, w.Code, w.Body.String())

			env := decode(t, w)
			assert.Equal(t, "EPIC image URL generated successfully", env.Message)

			var img EPICImage
			require.NoError(t, json.Unmarshal(env.Data, &img))
			assert.Equal(t, f.upstream.URL+tt.want, img.ImageURL)
		})
	}

	assert.Zero(t, f.upstream.calls.Load(), "image URL is built locally")
}

const feedBody = `{
  "links": {"self": "x"},
  "element_count": 3,
  "near_earth_objects": {
    "2024-01-01": [
      {"id": "1", "is_potentially_hazardous_asteroid": true,
       "estimated_diameter": {"kilometers": {"estimated_diameter_min": 1.0, "estimated_diameter_max": 3.0}}},
      {"id": "2", "is_potentially_hazardous_asteroid": false,
       "estimated_diameter": {"kilometers": {"estimated_diameter_min": 0.1, "estimated_diameter_max": 0.3}}}
    ],
    "2024-01-02": [
      {"id": "3", "is_potentially_hazardous_asteroid": false,
       "estimated_diameter": {"kilometers": {"estimated_diameter_min": 0.5, "estimated_diameter_max": 0.7}}}
    ]
  }
}`

type feedData struct {
	ElementCount     int                         `json:"element_count"`
	NearEarthObjects map[string][]map[string]any `json:"near_earth_objects"`
	Links            map[string]any              `json:"links"`
}

func TestServe_NEOHazardous(t *testing.T) {
	f := newFixture(t, jsonBody(feedBody), true)

	w := f.get(t, "/api/nasa/neo/hazardous?start_date=2024-01-01&end_date=2024-01-02")
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	assert.Equal(t, "Hazardous NEO data retrieved successfully", env.Message)

	var feed feedData
	require.NoError(t, json.Unmarshal(env.Data, &feed))
	assert.Equal(t, 1, feed.ElementCount)
	require.Len(t, feed.NearEarthObjects, 1)
	require.Len(t, feed.NearEarthObjects["2024-01-01"], 1)
	assert.Equal(t, "1", feed.NearEarthObjects["2024-01-01"][0]["id"])
	assert.Equal(t, "x", feed.Links["self"])
	assert.Equal(t, "/neo/rest/v1/feed", f.upstream.lastPath.Load())
}

func TestServe_NEOBySize(t *testing.T) {
	f := newFixture(t, jsonBody(feedBody), true)

	w := f.get(t, "/api/nasa/neo/by-size?min_diameter=0.5&max_diameter=1")
	require.Equal(t, http.StatusOK, w.Code)

	var feed feedData
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &feed))
	assert.Equal(t, 1, feed.ElementCount)
	assert.Equal(t, "3", feed.NearEarthObjects["2024-01-02"][0]["id"])

	w = f.get(t, "/api/nasa/neo/by-size?min_diameter=2&max_diameter=1")
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "VALIDATION_ERROR", decode(t, w).Error)
}

func TestServe_NEOSummary(t *testing.T) {
	f := newFixture(t, jsonBody(feedBody), true)

	w := f.get(t, "/api/nasa/neo/summary?start_date=2024-01-01&end_date=2024-01-02")
	require.Equal(t, http.StatusOK, w.Code)

	env := decode(t, w)
	assert.Equal(t, "NEO summary retrieved successfully", env.Message)

	var sum nasa.Summary
	require.NoError(t, json.Unmarshal(env.Data, &sum))
	assert.Equal(t, 3, sum.TotalCount)
	assert.Equal(t, 1, sum.HazardousCount)
	assert.Equal(t, nasa.DateRange{Start: "2024-01-01", End: "2024-01-02"}, sum.DateRange)
	assert.InDelta(t, (1.0+0.1+0.5)/3, sum.AverageDiameter.Min, 1e-9)
	assert.InDelta(t, (3.0+0.3+0.7)/3, sum.AverageDiameter.Max, 1e-9)

	// Without explicit dates the range comes from the feed's buckets.
	w = f.get(t, "/api/nasa/neo/summary")
	require.Equal(t, http.StatusOK, w.Code)
	require.NoError(t, json.Unmarshal(decode(t, w).Data, &sum))
	assert.Equal(t, nasa.DateRange{Start: "2024-01-01", End: "2024-01-02"}, sum.DateRange)
}

func TestServe_NEOLookup(t *testing.T) {
	f := newFixture(t, jsonBody(`{"id":"3542519"}`), true)

	w := f.get(t, "/api/nasa/neo?asteroid_id=3542519")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "/neo/rest/v1/neo/3542519", f.upstream.lastPath.Load())
}

func TestServe_ImageSearch(t *testing.T) {
	f := newFixture(t, jsonBody(`{"collection":{"items":[]}}`), true)

	w := f.get(t, "/api/nasa/images?q=apollo&year_start=1969")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "NASA images search completed successfully", decode(t, w).Message)
	assert.Equal(t, "/search", f.upstream.lastPath.Load())

	qry := f.upstream.lastQry.Load().(string)
	assert.Contains(t, qry, "media_type=image")
	assert.Contains(t, qry, "q=apollo")
	assert.NotContains(t, qry, "api_key", "image library takes no key")
}

func TestServe_APIKeyForwarded(t *testing.T) {
	f := newFixture(t, jsonBody(apodBody), true)

	f.get(t, "/api/nasa/apod?count=5")
	qry := f.upstream.lastQry.Load().(string)
	assert.Contains(t, qry, "api_key="+testAPIKey)
	assert.Contains(t, qry, "count=5")
}
