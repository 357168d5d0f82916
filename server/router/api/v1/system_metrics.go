package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/observability"
)

type agentMetricsPayload struct {
	AgentType         string `json:"agentType"`
	AverageDurationMs int64  `json:"averageDurationMs"`
}

type metricsResponse struct {
	RequestTotal  int64                 `json:"requestTotal"`
	RequestFailed int64                 `json:"requestFailed"`
	StreamEvents  int64                 `json:"streamEvents"`
	Agents        []agentMetricsPayload `json:"agents"`
}

// GetMetrics reports in-process counters for the AI request pipeline.
func (*APIV1Service) GetMetrics(c echo.Context) error {
	metrics := observability.GlobalMetrics()

	agents := []agentMetricsPayload{}
	for _, agentType := range metrics.GetAllAgentTypes() {
		agents = append(agents, agentMetricsPayload{
			AgentType:         agentType,
			AverageDurationMs: metrics.GetAverageDuration(agentType),
		})
	}

	return c.JSON(http.StatusOK, metricsResponse{
		RequestTotal:  metrics.GetRequestTotal(),
		RequestFailed: metrics.GetRequestFailed(),
		StreamEvents:  metrics.GetStreamEvents(),
		Agents:        agents,
	})
}
