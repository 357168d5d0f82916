package agent

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/extract"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/ondemand"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/timeout"
	aierr "github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/errors"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/internal/observability"
)

// DoubtAgent resolves a student's question, optionally grounded in an
// uploaded photo of the problem. Image doubts run a two-step pipeline on
// one session: first an extraction pass turns the image into text, then
// that text is spliced verbatim into the solution query as ground truth.
// Follow-up questions reuse the same session so the provider keeps the
// conversation context.
type DoubtAgent struct {
	client *ondemand.Client
	logger *slog.Logger
}

func NewDoubtAgent(client *ondemand.Client) (*DoubtAgent, error) {
	if client == nil {
		return nil, fmt.Errorf("client cannot be nil")
	}
	return &DoubtAgent{client: client, logger: slog.Default()}, nil
}

// GuidedExplanation is the hint ladder inside a doubt resolution.
type GuidedExplanation struct {
	Hints          []string `json:"hints"`
	VisualConcepts []string `json:"visualConcepts"`
}

// DoubtResolution is the model's structured doubt payload.
type DoubtResolution struct {
	DoubtClarification string            `json:"doubtClarification"`
	GuidedExplanation  GuidedExplanation `json:"guidedExplanation"`
	ManimCode          string            `json:"manimCode"`
	Narration          []string          `json:"narration"`
	ReflectiveQuestion string            `json:"reflectiveQuestion"`
	Encouragement      string            `json:"encouragement"`
}

// DoubtResult carries the resolution and session identity for follow-ups.
type DoubtResult struct {
	SessionID          string
	ExternalUserID     string
	Resolution         DoubtResolution
	ExtractedImageData string
	RawAnswer          string
	Extracted          bool
}

// Resolve answers a doubt. image may be nil for text-only doubts. An
// unparseable answer degrades to a resolution whose clarification is the
// raw model text, never an error.
func (d *DoubtAgent) Resolve(ctx context.Context, studentID, studentName, doubtText string, image []byte, profile StudentProfile) (*DoubtResult, error) {
	rc := observability.NewRequestContext(d.logger, "doubt", studentID)
	observability.GlobalMetrics().RecordRequest("doubt")

	rc.Info("DoubtAgent: resolving doubt",
		slog.String("question", truncateString(doubtText, timeout.MaxTruncateLength)),
		slog.Bool("has_image", len(image) > 0))

	externalUserID := fmt.Sprintf("doubt_%s_%d", studentID, time.Now().UnixMilli())
	session, err := d.client.OpenSession(ctx, doubtAgentIDs, externalUserID, []ondemand.Metadata{
		{Key: "studentId", Value: studentID},
		{Key: "studentName", Value: studentName},
		{Key: "sessionType", Value: "doubt_resolution"},
	})
	if err != nil {
		observability.GlobalMetrics().RecordFailure("doubt")
		rc.Error("DoubtAgent: session open failed", err)
		return nil, aierr.Wrap(aierr.ErrCodeSessionOpenFailed, "failed to open doubt session", err)
	}

	extractedImageData := ""
	if len(image) > 0 {
		extractedImageData = d.extractImageData(ctx, rc, session.ID, image, doubtText)
	}

	result, err := d.runResolution(ctx, session.ID, buildDoubtQuery(doubtText, extractedImageData), profile, extractedImageData)
	if err != nil {
		observability.GlobalMetrics().RecordFailure("doubt")
		rc.Error("DoubtAgent: query failed", err,
			slog.String(observability.LogFieldSessionID, session.ID))
		return nil, err
	}
	result.SessionID = session.ID
	result.ExternalUserID = externalUserID
	result.ExtractedImageData = extractedImageData

	observability.GlobalMetrics().RecordDuration("doubt", rc.Duration())
	rc.Info("DoubtAgent: doubt resolved",
		slog.String(observability.LogFieldSessionID, session.ID),
		slog.Bool("extracted", result.Extracted),
		slog.Int64(observability.LogFieldDuration, rc.DurationMs()))
	return result, nil
}

// FollowUp continues an existing doubt conversation on its session.
func (d *DoubtAgent) FollowUp(ctx context.Context, sessionID, followUpText string, profile StudentProfile) (*DoubtResult, error) {
	rc := observability.NewRequestContext(d.logger, "doubt", "")
	observability.GlobalMetrics().RecordRequest("doubt")

	rc.Info("DoubtAgent: follow-up",
		slog.String(observability.LogFieldSessionID, sessionID),
		slog.String("question", truncateString(followUpText, timeout.MaxTruncateLength)))

	query := fmt.Sprintf(`Follow-up question from student:

"%s"

Please continue explaining based on our previous conversation.
If this requires a new visual explanation, provide updated Manim code.
Maintain simple language appropriate for the student's level.

Return ONLY valid JSON in the specified format.`, followUpText)

	result, err := d.runResolution(ctx, sessionID, query, profile, "")
	if err != nil {
		observability.GlobalMetrics().RecordFailure("doubt")
		rc.Error("DoubtAgent: follow-up query failed", err,
			slog.String(observability.LogFieldSessionID, sessionID))
		return nil, err
	}
	result.SessionID = sessionID
	observability.GlobalMetrics().RecordDuration("doubt", rc.Duration())
	return result, nil
}

// extractImageData uploads the image and returns its textual content. The
// media pipeline may extract context during upload; if not, a dedicated
// extraction query runs on the same session. Failures here degrade to
// text-only resolution rather than aborting the doubt.
func (d *DoubtAgent) extractImageData(ctx context.Context, rc *observability.RequestContext, sessionID string, image []byte, doubtText string) string {
	media, err := d.client.UploadFile(ctx, sessionID, "question_image.png", image, imageFileAgents)
	if err != nil {
		rc.Warn("DoubtAgent: image upload failed, proceeding with text only",
			slog.String("error", err.Error()))
	} else if media.Context != "" {
		rc.Info("DoubtAgent: image context extracted during upload",
			slog.Int("context_length", len(media.Context)))
		return media.Context
	}

	result, err := d.client.RunQuery(ctx, sessionID, ondemand.Query{
		EndpointID:    endpointGrok,
		ReasoningMode: reasoningMode,
		AgentIDs:      imageAgentIDs,
		Text:          buildImageExtractionQuery(doubtText),
		Model:         imageModelConfig(),
	})
	if err != nil {
		rc.Warn("DoubtAgent: image extraction failed, proceeding with text only",
			slog.String("error", err.Error()))
		return ""
	}
	return result.Answer
}

func (d *DoubtAgent) runResolution(ctx context.Context, sessionID, query string, profile StudentProfile, extractedImageData string) (*DoubtResult, error) {
	result, err := d.client.RunQuery(ctx, sessionID, ondemand.Query{
		EndpointID:    endpointGrok,
		ReasoningMode: reasoningMode,
		AgentIDs:      doubtAgentIDs,
		Text:          query,
		Model:         doubtModelConfig(profile, extractedImageData),
	})
	if err != nil {
		return nil, aierr.Wrap(aierr.ErrCodeQueryFailed, "doubt query failed", err)
	}

	out := &DoubtResult{RawAnswer: result.Answer}
	if extract.Decode(result.Answer, &out.Resolution) {
		out.Extracted = true
	} else {
		// Present the raw text as the explanation instead of erroring.
		out.Resolution = DoubtResolution{
			DoubtClarification: result.Answer,
			GuidedExplanation:  GuidedExplanation{Hints: []string{}, VisualConcepts: []string{}},
			Narration:          []string{},
		}
	}
	return out, nil
}

func buildImageExtractionQuery(doubtText string) string {
	if doubtText != "" && doubtText != "[Image uploaded]" {
		return fmt.Sprintf("The image has been uploaded. %s. Please analyze the uploaded image and extract all text, mathematical expressions, formulas, diagrams, and questions. Provide a clear structured output.", doubtText)
	}
	return "The image has been uploaded. Please analyze the uploaded image and extract all text, mathematical expressions, formulas, diagrams, and questions. Provide a clear structured output of everything visible."
}

// buildDoubtQuery splices the extracted image text into the solution query
// unchanged. The model treats it as ground truth for the explanation.
func buildDoubtQuery(doubtText, extractedImageData string) string {
	var b strings.Builder
	b.WriteString("Analyze and resolve this student doubt:\n\n")
	if extractedImageData != "" {
		fmt.Fprintf(&b, "EXTRACTED FROM IMAGE:\n%s\n\n", extractedImageData)
	}
	if doubtText != "" && doubtText != "[Image uploaded]" {
		fmt.Fprintf(&b, "STUDENT'S QUESTION: %q\n\n", doubtText)
	}
	b.WriteString(`
Generate a complete explanation with Manim animation code.
The animation should visually demonstrate the concept and solve the problem step by step.
Include narration text that will be converted to audio and synced with the video.

Return ONLY valid JSON in the specified format.`)
	return b.String()
}
