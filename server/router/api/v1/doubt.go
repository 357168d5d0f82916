package v1

import (
	"encoding/base64"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/lithammer/shortuuid/v4"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/agent"
	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/store"
)

type resolveDoubtRequest struct {
	StudentID   string                 `json:"studentId"`
	StudentName string                 `json:"studentName"`
	DoubtText   string                 `json:"doubtText"`
	ImageBase64 string                 `json:"imageBase64,omitempty"`
	Profile     *studentProfilePayload `json:"profile"`
}

type doubtResponse struct {
	DoubtID            string                `json:"doubtId"`
	SessionID          string                `json:"sessionId"`
	Resolution         agent.DoubtResolution `json:"resolution"`
	ExtractedImageData string                `json:"extractedImageData,omitempty"`
	Extracted          bool                  `json:"extracted"`
}

func (s *APIV1Service) ResolveDoubt(c echo.Context) error {
	var request resolveDoubtRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.StudentID == "" {
		return badRequest(c, "studentId is required")
	}
	if request.DoubtText == "" && request.ImageBase64 == "" {
		return badRequest(c, "doubtText or imageBase64 is required")
	}

	var image []byte
	if request.ImageBase64 != "" {
		decoded, err := base64.StdEncoding.DecodeString(request.ImageBase64)
		if err != nil {
			return badRequest(c, "imageBase64 is not valid base64")
		}
		image = decoded
	}

	var studentProfile agent.StudentProfile
	if request.Profile != nil {
		studentProfile = request.Profile.toAgent()
	}

	ctx := c.Request().Context()
	result, err := s.DoubtAgent.Resolve(ctx, request.StudentID, request.StudentName, request.DoubtText, image, studentProfile)
	if err != nil {
		return presentError(c, err)
	}

	doubt, err := s.Store.CreateDoubt(ctx, &store.Doubt{
		UID:                shortuuid.New(),
		StudentID:          request.StudentID,
		SessionID:          result.SessionID,
		ExternalUserID:     result.ExternalUserID,
		Question:           request.DoubtText,
		ExtractedImageData: result.ExtractedImageData,
		Payload:            mustJSON(result.Resolution),
		Turns:              1,
	})
	if err != nil {
		return presentError(c, err)
	}

	return c.JSON(http.StatusOK, doubtResponse{
		DoubtID:            doubt.UID,
		SessionID:          result.SessionID,
		Resolution:         result.Resolution,
		ExtractedImageData: result.ExtractedImageData,
		Extracted:          result.Extracted,
	})
}

type followUpDoubtRequest struct {
	FollowUpText string                 `json:"followUpText"`
	Profile      *studentProfilePayload `json:"profile"`
}

func (s *APIV1Service) FollowUpDoubt(c echo.Context) error {
	doubtID := c.Param("id")
	var request followUpDoubtRequest
	if err := c.Bind(&request); err != nil {
		return badRequest(c, "malformed request body")
	}
	if request.FollowUpText == "" {
		return badRequest(c, "followUpText is required")
	}

	ctx := c.Request().Context()
	doubt, err := s.Store.GetDoubt(ctx, &store.FindDoubt{UID: &doubtID})
	if err != nil {
		return presentError(c, err)
	}
	if doubt == nil {
		return c.JSON(http.StatusNotFound, errorResponse{Message: "doubt not found"})
	}

	var studentProfile agent.StudentProfile
	if request.Profile != nil {
		studentProfile = request.Profile.toAgent()
	}

	// Follow-ups reuse the original provider session so the model keeps
	// the conversation context.
	result, err := s.DoubtAgent.FollowUp(ctx, doubt.SessionID, request.FollowUpText, studentProfile)
	if err != nil {
		return presentError(c, err)
	}

	payload := mustJSON(result.Resolution)
	turns := doubt.Turns + 1
	if _, err := s.Store.UpdateDoubt(ctx, &store.UpdateDoubt{
		ID:        doubt.ID,
		UpdatedTs: time.Now().Unix(),
		Payload:   &payload,
		Turns:     &turns,
	}); err != nil {
		return presentError(c, err)
	}

	return c.JSON(http.StatusOK, doubtResponse{
		DoubtID:    doubt.UID,
		SessionID:  doubt.SessionID,
		Resolution: result.Resolution,
		Extracted:  result.Extracted,
	})
}
