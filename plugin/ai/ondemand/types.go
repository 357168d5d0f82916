// Package ondemand implements the client for the on-demand.io chat API:
// session creation, streaming query execution, and media uploads.
//
// The provider streams query responses as server-sent events. Each event
// line carries a JSON payload with an incremental answer fragment; this
// package reassembles the fragments into one final result.
package ondemand

import "fmt"

// Metadata is a single key/value pair attached to a session. The provider
// expects an ordered list, so this is a slice element rather than a map entry.
type Metadata struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Session is a provider-side conversation context. It is created once per
// top-level user action and reused for follow-up queries on the same thread.
type Session struct {
	ID             string
	ExternalUserID string
	Metadata       []Metadata
}

// ModelConfig carries the per-query model parameters.
type ModelConfig struct {
	FulfillmentPrompt string   `json:"fulfillmentPrompt"`
	StopSequences     []string `json:"stopSequences"`
	Temperature       float64  `json:"temperature"`
	TopP              float64  `json:"topP"`
	MaxTokens         int      `json:"maxTokens"`
	PresencePenalty   float64  `json:"presencePenalty"`
	FrequencyPenalty  float64  `json:"frequencyPenalty"`
}

// Query describes one streaming query against a session.
type Query struct {
	EndpointID    string
	ReasoningMode string
	AgentIDs      []string
	Text          string
	Model         ModelConfig
}

// Result is the aggregate of one fully-consumed response stream.
//
// Answer is the concatenation, in arrival order, of every answer fragment
// seen across all fulfillment events. SessionID and MessageID hold the last
// values the stream reported; the provider may legitimately update them
// mid-stream, so later events win. An empty Answer with a nil error is a
// valid outcome and is distinct from a transport failure.
type Result struct {
	SessionID string
	MessageID string
	Answer    string
	Metrics   map[string]any
	Status    string
}

// MediaFile is the provider's record of an uploaded file. Context, when
// non-empty, is text the media pipeline already extracted from the file;
// callers can use it directly instead of issuing an extraction query.
type MediaFile struct {
	ID      string
	URL     string
	Context string
}

// streamEvent is the wire shape of one decoded `data:` line. Unknown event
// types decode fine and are ignored by the reader.
type streamEvent struct {
	EventType     string         `json:"eventType"`
	Answer        string         `json:"answer"`
	SessionID     string         `json:"sessionId"`
	MessageID     string         `json:"messageId"`
	PublicMetrics map[string]any `json:"publicMetrics"`
}

const (
	eventTypeFulfillment = "fulfillment"
	eventTypeMetricsLog  = "metricsLog"
)

// StatusError is returned when the provider responds with a non-success
// HTTP status before any streaming begins.
type StatusError struct {
	Op     string
	Status int
	Body   string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: provider returned %d: %s", e.Op, e.Status, e.Body)
}
