package observability

import (
	"strconv"
	"sync"
	"time"
)

// Metrics provides basic in-memory counters for the gateway's decision
// points: requests, guard outcomes, credential selections and purges.
type Metrics struct {
	mu             sync.Mutex
	requestCount   map[string]int64
	errorCount     map[string]int64
	guardDecisions map[string]int64
	credentialPick map[string]int64
	tokenPurges    int64
}

// NewMetrics initializes metrics storage.
func NewMetrics() *Metrics {
	return &Metrics{
		requestCount:   make(map[string]int64),
		errorCount:     make(map[string]int64),
		guardDecisions: make(map[string]int64),
		credentialPick: make(map[string]int64),
	}
}

// RecordRequest increments counters for requests.
func (m *Metrics) RecordRequest(path, method string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	key := pathKey(path, method, status)
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requestCount[key]++
}

// RecordError increments error counters.
func (m *Metrics) RecordError(path, method, code string) {
	if m == nil {
		return
	}
	key := path + "|" + method + "|" + code
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errorCount[key]++
}

// RecordGuardDecision counts a guard outcome ("allow" or the redirect target).
func (m *Metrics) RecordGuardDecision(outcome string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.guardDecisions[outcome]++
}

// RecordCredentialSelection counts which track backed an outbound request.
func (m *Metrics) RecordCredentialSelection(track string) {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.credentialPick[track]++
}

// RecordTokenPurge counts removals of dead or garbled staff credentials.
func (m *Metrics) RecordTokenPurge() {
	if m == nil {
		return
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.tokenPurges++
}

// Snapshot copies all counters for the metrics endpoint.
func (m *Metrics) Snapshot() map[string]any {
	if m == nil {
		return nil
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	return map[string]any{
		"requests":              copyCounters(m.requestCount),
		"errors":                copyCounters(m.errorCount),
		"guard_decisions":       copyCounters(m.guardDecisions),
		"credential_selections": copyCounters(m.credentialPick),
		"token_purges":          m.tokenPurges,
	}
}

func copyCounters(src map[string]int64) map[string]int64 {
	out := make(map[string]int64, len(src))
	for k, v := range src {
		out[k] = v
	}
	return out
}

func pathKey(path, method string, status int) string {
	return path + "|" + method + "|" + strconv.Itoa(status)
}
