package observability

import (
	"sync"
	"sync/atomic"
	"time"
)

// Metrics collects and aggregates metrics for AI agent operations.
type Metrics struct {
	mu sync.Mutex

	// Counters
	requestTotal  atomic.Int64
	requestFailed atomic.Int64
	streamEvents  atomic.Int64

	// Agent-specific metrics
	agentMetrics map[string]*AgentMetrics
}

// AgentMetrics represents metrics for a specific agent type.
type AgentMetrics struct {
	executionCount atomic.Int64
	totalDuration  atomic.Int64 // milliseconds
	errorCount     atomic.Int64
}

// NewMetrics creates a new metrics collector.
func NewMetrics() *Metrics {
	return &Metrics{
		agentMetrics: make(map[string]*AgentMetrics),
	}
}

// Global metrics instance.
var globalMetrics = NewMetrics()

// GlobalMetrics returns the global metrics instance.
func GlobalMetrics() *Metrics {
	return globalMetrics
}

// RecordRequest records a request.
func (m *Metrics) RecordRequest(agentType string) {
	m.requestTotal.Add(1)
	m.getAgentMetrics(agentType).executionCount.Add(1)
}

// RecordFailure records a failed request.
func (m *Metrics) RecordFailure(agentType string) {
	m.requestFailed.Add(1)
	m.getAgentMetrics(agentType).errorCount.Add(1)
}

// RecordDuration records a request duration.
func (m *Metrics) RecordDuration(agentType string, duration time.Duration) {
	m.getAgentMetrics(agentType).totalDuration.Add(duration.Milliseconds())
}

// RecordStreamEvent records one decoded stream event.
func (m *Metrics) RecordStreamEvent() {
	m.streamEvents.Add(1)
}

// GetRequestTotal returns the total number of requests.
func (m *Metrics) GetRequestTotal() int64 {
	return m.requestTotal.Load()
}

// GetRequestFailed returns the total number of failed requests.
func (m *Metrics) GetRequestFailed() int64 {
	return m.requestFailed.Load()
}

// GetStreamEvents returns the total number of decoded stream events.
func (m *Metrics) GetStreamEvents() int64 {
	return m.streamEvents.Load()
}

// GetAverageDuration returns the average duration in milliseconds for an agent type.
func (m *Metrics) GetAverageDuration(agentType string) int64 {
	am := m.getAgentMetrics(agentType)
	count := am.executionCount.Load()
	if count == 0 {
		return 0
	}
	return am.totalDuration.Load() / count
}

// GetAllAgentTypes returns all agent types that have been recorded.
func (m *Metrics) GetAllAgentTypes() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	types := make([]string, 0, len(m.agentMetrics))
	for agentType := range m.agentMetrics {
		types = append(types, agentType)
	}
	return types
}

// Reset resets all metrics (useful for testing).
func (m *Metrics) Reset() {
	m.requestTotal.Store(0)
	m.requestFailed.Store(0)
	m.streamEvents.Store(0)

	m.mu.Lock()
	m.agentMetrics = make(map[string]*AgentMetrics)
	m.mu.Unlock()
}

func (m *Metrics) getAgentMetrics(agentType string) *AgentMetrics {
	m.mu.Lock()
	defer m.mu.Unlock()

	if _, ok := m.agentMetrics[agentType]; !ok {
		m.agentMetrics[agentType] = &AgentMetrics{}
	}
	return m.agentMetrics[agentType]
}
