package ondemand

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleStream = `data: {"eventType":"fulfillment","answer":"Hello","sessionId":"s1","messageId":"m1"}
data: {"eventType":"fulfillment","answer":", world","sessionId":"s1","messageId":"m2"}
data: [DONE]
: keep-alive comment
data: {not valid json
data: {"eventType":"metricsLog","publicMetrics":{"tokens":12}}
data: {"eventType":"metricsLog","publicMetrics":{"tokens":34,"latencyMs":250}}
`

func feedAll(acc *accumulator, input string, chunkSize int) {
	data := []byte(input)
	for len(data) > 0 {
		n := chunkSize
		if n > len(data) {
			n = len(data)
		}
		acc.feed(data[:n])
		data = data[n:]
	}
}

func TestAccumulatorAggregates(t *testing.T) {
	acc := newAccumulator()
	feedAll(acc, sampleStream, len(sampleStream))
	result := acc.finalize()

	assert.Equal(t, "Hello, world", result.Answer)
	assert.Equal(t, "s1", result.SessionID)
	assert.Equal(t, "m2", result.MessageID)
	assert.Equal(t, map[string]any{"tokens": float64(34), "latencyMs": float64(250)}, result.Metrics)
}

// The reader must produce identical output no matter where the transport
// splits the byte stream.
func TestAccumulatorChunkingInvariance(t *testing.T) {
	whole := newAccumulator()
	feedAll(whole, sampleStream, len(sampleStream))
	want := whole.finalize()

	for _, size := range []int{1, 2, 3, 7, 16, 64} {
		acc := newAccumulator()
		feedAll(acc, sampleStream, size)
		got := acc.finalize()
		assert.Equal(t, want.Answer, got.Answer, "chunk size %d", size)
		assert.Equal(t, want.SessionID, got.SessionID, "chunk size %d", size)
		assert.Equal(t, want.MessageID, got.MessageID, "chunk size %d", size)
		assert.Equal(t, want.Metrics, got.Metrics, "chunk size %d", size)
	}
}

func TestAccumulatorMidLineSplit(t *testing.T) {
	acc := newAccumulator()
	acc.feed([]byte(`data: {"eventType":"fulfillment","an`))
	acc.feed([]byte("swer\":\"split\"}\n"))
	result := acc.finalize()
	assert.Equal(t, "split", result.Answer)
}

func TestAccumulatorSkipsNoise(t *testing.T) {
	acc := newAccumulator()
	feedAll(acc, "data: [DONE]\ndata: garbage{\nnot an event line\n", 5)
	result := acc.finalize()
	assert.Empty(t, result.Answer)
	assert.Empty(t, result.SessionID)
}

func TestAccumulatorEmptyAnswerIsValid(t *testing.T) {
	acc := newAccumulator()
	feedAll(acc, "data: {\"eventType\":\"fulfillment\",\"sessionId\":\"s9\"}\n", 9)
	result := acc.finalize()
	assert.Empty(t, result.Answer)
	assert.Equal(t, "s9", result.SessionID)
	assert.NotNil(t, result.Metrics)
}

func TestRunQueryStream(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sessions/sess-1/query", r.URL.Path)
		flusher, ok := w.(http.Flusher)
		require.True(t, ok)

		w.Header().Set("Content-Type", "text/event-stream")
		w.WriteHeader(http.StatusOK)
		for _, line := range []string{
			`data: {"eventType":"fulfillment","answer":"The answer ","sessionId":"sess-1"}`,
			`data: {"eventType":"fulfillment","answer":"is 42.","messageId":"msg-7"}`,
			`data: {"eventType":"metricsLog","publicMetrics":{"totalTokens":99}}`,
			`data: [DONE]`,
		} {
			fmt.Fprintln(w, line)
			flusher.Flush()
		}
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "")
	result, err := c.RunQuery(context.Background(), "sess-1", Query{
		EndpointID: "predefined-xai-grok4.1-fast",
		AgentIDs:   []string{"agent-1"},
		Text:       "what is the answer",
	})
	require.NoError(t, err)

	assert.Equal(t, "The answer is 42.", result.Answer)
	assert.Equal(t, "sess-1", result.SessionID)
	assert.Equal(t, "msg-7", result.MessageID)
	assert.Equal(t, map[string]any{"totalTokens": float64(99)}, result.Metrics)
	assert.Equal(t, "completed", result.Status)
}

func TestRunQueryBadStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad endpoint", http.StatusBadRequest)
	}))
	defer server.Close()

	c := newTestClient(t, server.URL, "")
	_, err := c.RunQuery(context.Background(), "sess-1", Query{AgentIDs: []string{"a"}, Text: "q"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
}

func TestRunQueryRequiresSessionAndText(t *testing.T) {
	c := newTestClient(t, "http://unused", "")

	_, err := c.RunQuery(context.Background(), "", Query{Text: "q"})
	assert.Error(t, err)

	_, err = c.RunQuery(context.Background(), "sess-1", Query{})
	assert.Error(t, err)
}
