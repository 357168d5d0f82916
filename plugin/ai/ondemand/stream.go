package ondemand

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/timeout"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/observability"
)

const (
	dataPrefix   = "data:"
	doneSentinel = "[DONE]"

	responseModeStream = "stream"
)

type queryRequest struct {
	EndpointID    string      `json:"endpointId"`
	Query         string      `json:"query"`
	AgentIDs      []string    `json:"agentIds"`
	ResponseMode  string      `json:"responseMode"`
	ReasoningMode string      `json:"reasoningMode"`
	ModelConfigs  ModelConfig `json:"modelConfigs"`
}

// RunQuery submits a query against an existing session and consumes the
// streaming response to completion.
//
// A non-200 status before streaming begins returns a *StatusError and no
// partial aggregation is attempted. A stream error mid-read returns an
// error, never a partial Result. Individual malformed `data:` lines are
// skipped: the provider's stream includes occasional non-JSON and sentinel
// lines by design.
func (c *Client) RunQuery(ctx context.Context, sessionID string, q Query) (*Result, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}
	if q.Text == "" {
		return nil, fmt.Errorf("query text is required")
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	body, err := json.Marshal(&queryRequest{
		EndpointID:    q.EndpointID,
		Query:         q.Text,
		AgentIDs:      q.AgentIDs,
		ResponseMode:  responseModeStream,
		ReasoningMode: q.ReasoningMode,
		ModelConfigs:  q.Model,
	})
	if err != nil {
		return nil, fmt.Errorf("marshal query request: %w", err)
	}

	// The context is cancelable so the idle watchdog below can abort a
	// stalled stream; the provider sometimes stops sending without
	// closing the connection.
	ctx, cancel := context.WithTimeout(ctx, timeout.StreamTimeout)
	defer cancel()

	url := fmt.Sprintf("%s/sessions/%s/query", c.chatBaseURL, sessionID)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("create query request: %w", err)
	}
	c.setJSONHeaders(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("submit query: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &StatusError{Op: "run query", Status: resp.StatusCode, Body: readBodyText(resp.Body)}
	}

	acc := newAccumulator()
	idle := time.AfterFunc(timeout.StreamIdleTimeout, cancel)
	defer idle.Stop()

	buf := make([]byte, 4096)
	for {
		n, readErr := resp.Body.Read(buf)
		if n > 0 {
			idle.Reset(timeout.StreamIdleTimeout)
			acc.feed(buf[:n])
		}
		if readErr != nil {
			if errors.Is(readErr, io.EOF) {
				break
			}
			if ctx.Err() != nil {
				return nil, fmt.Errorf("stream read aborted: %w", ctx.Err())
			}
			return nil, fmt.Errorf("stream read failed: %w", readErr)
		}
	}

	result := acc.finalize()
	c.logger.Debug("stream complete",
		slog.String("session_id", result.SessionID),
		slog.Int(observability.LogFieldAnswerLen, len(result.Answer)))
	return result, nil
}

// accumulator reassembles a streamed response. Chunk boundaries can split a
// `data:` line anywhere, including mid-JSON, so incomplete lines are held
// back in buf until the rest arrives.
type accumulator struct {
	buf       strings.Builder
	answer    strings.Builder
	sessionID string
	messageID string
	metrics   map[string]any
}

func newAccumulator() *accumulator {
	return &accumulator{}
}

// feed appends a chunk and processes every complete line it yields.
func (a *accumulator) feed(chunk []byte) {
	a.buf.Write(chunk)

	text := a.buf.String()
	lines := strings.Split(text, "\n")
	// The last fragment may be an incomplete line; keep it buffered.
	rest := lines[len(lines)-1]
	for _, line := range lines[:len(lines)-1] {
		a.processLine(line)
	}
	a.buf.Reset()
	a.buf.WriteString(rest)
}

// processLine handles one complete line from the stream.
func (a *accumulator) processLine(line string) {
	if !strings.HasPrefix(line, dataPrefix) {
		return
	}
	payload := strings.TrimSpace(line[len(dataPrefix):])
	if payload == doneSentinel {
		return
	}

	var event streamEvent
	if err := json.Unmarshal([]byte(payload), &event); err != nil {
		// Tolerate noise and partial JSON mid-stream.
		return
	}
	observability.GlobalMetrics().RecordStreamEvent()

	switch event.EventType {
	case eventTypeFulfillment:
		if event.Answer != "" {
			a.answer.WriteString(event.Answer)
		}
		// Last write wins: the provider may update ids mid-stream.
		if event.SessionID != "" {
			a.sessionID = event.SessionID
		}
		if event.MessageID != "" {
			a.messageID = event.MessageID
		}
	case eventTypeMetricsLog:
		if event.PublicMetrics != nil {
			a.metrics = event.PublicMetrics
		}
	}
}

// finalize returns the aggregated result. Any incomplete trailing fragment
// left in the buffer is discarded; a line that never terminated never
// became an event.
func (a *accumulator) finalize() *Result {
	metrics := a.metrics
	if metrics == nil {
		metrics = map[string]any{}
	}
	return &Result{
		SessionID: a.sessionID,
		MessageID: a.messageID,
		Answer:    a.answer.String(),
		Metrics:   metrics,
		Status:    "completed",
	}
}
