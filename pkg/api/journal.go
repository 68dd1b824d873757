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
	"cmp"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/spacedata/nasa-explorer/pkg/server"
)

// DefaultJournalSize is the number of requests a Journal keeps.
const DefaultJournalSize = 1000

// LogEntry is one request as reported by the logs endpoint.
type LogEntry struct {
	Method       string  `json:"method"`
	URL          string  `json:"url"`
	StatusCode   int     `json:"statusCode"`
	ResponseTime float64 `json:"responseTime"` // milliseconds
	IP           string  `json:"ip"`
	UserAgent    string  `json:"userAgent"`
	Timestamp    string  `json:"timestamp"`
}

// EndpointCount is a URL and how often it was requested.
type EndpointCount struct {
	URL   string `json:"url"`
	Count int    `json:"count"`
}

// RequestStats aggregates the requests held by a Journal.
type RequestStats struct {
	TotalRequests       int             `json:"totalRequests"`
	AverageResponseTime float64         `json:"averageResponseTime"`
	StatusCodes         map[int]int     `json:"statusCodes"`
	TopEndpoints        []EndpointCount `json:"topEndpoints"`
}

// Journal keeps the most recent API requests in memory.
type Journal struct {
	mu      sync.Mutex
	entries []LogEntry
	next    int
	full    bool
}

// NewJournal returns a journal holding up to size entries.
func NewJournal(size int) *Journal {
	if size <= 0 {
		size = DefaultJournalSize
	}
	return &Journal{entries: make([]LogEntry, size)}
}

// Observe records a completed request. It satisfies server.AccessObserver.
func (j *Journal) Observe(rec server.AccessRecord) {
	e := LogEntry{
		Method:       rec.Method,
		URL:          rec.URL,
		StatusCode:   rec.Status,
		ResponseTime: float64(rec.Duration) / float64(time.Millisecond),
		IP:           rec.RemoteAddr,
		UserAgent:    cmp.Or(rec.UserAgent, "unknown"),
		Timestamp:    server.Timestamp(rec.Time),
	}

	j.mu.Lock()
	defer j.mu.Unlock()
	j.entries[j.next] = e
	j.next = (j.next + 1) % len(j.entries)
	if j.next == 0 {
		j.full = true
	}
}

// ordered returns entries oldest first. Callers hold mu.
func (j *Journal) ordered() []LogEntry {
	if !j.full {
		return slices.Clone(j.entries[:j.next])
	}
	return append(slices.Clone(j.entries[j.next:]), j.entries[:j.next]...)
}

// Recent returns up to limit of the newest entries, oldest first.
func (j *Journal) Recent(limit int) []LogEntry {
	j.mu.Lock()
	all := j.ordered()
	j.mu.Unlock()

	if limit > 0 && limit < len(all) {
		all = all[len(all)-limit:]
	}
	return all
}

// Stats summarizes the journal. TopEndpoints lists at most ten URLs, most
// requested first.
func (j *Journal) Stats() RequestStats {
	j.mu.Lock()
	all := j.ordered()
	j.mu.Unlock()

	stats := RequestStats{
		TotalRequests: len(all),
		StatusCodes:   make(map[int]int),
		TopEndpoints:  []EndpointCount{},
	}
	if len(all) == 0 {
		return stats
	}

	counts := make(map[string]int)
	var total float64
	for _, e := range all {
		stats.StatusCodes[e.StatusCode]++
		counts[e.URL]++
		total += e.ResponseTime
	}
	stats.AverageResponseTime = total / float64(len(all))

	urls := slices.SortedFunc(maps.Keys(counts), func(a, b string) int {
		if c := cmp.Compare(counts[b], counts[a]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	})
	for _, u := range urls[:min(10, len(urls))] {
		stats.TopEndpoints = append(stats.TopEndpoints, EndpointCount{URL: u, Count: counts[u]})
	}
	return stats
}
