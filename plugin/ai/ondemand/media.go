package ondemand

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"

	"github.com/Asmit-ctrl/DTU-BrAInware-2.0/plugin/ai/timeout"
)

const mediaUploader = "EduPortal"

type mediaResponse struct {
	Data struct {
		ID      string `json:"id"`
		URL     string `json:"url"`
		Context string `json:"context"`
	} `json:"data"`
}

// UploadFile uploads raw file bytes to the media API, attaching the file to
// an existing session so subsequent queries on that session can reference it.
// fileAgents are the provider-side file processing agents to run on upload;
// when one of them produces extracted context, it is returned on the
// MediaFile and the caller can skip the follow-up extraction query.
func (c *Client) UploadFile(ctx context.Context, sessionID, fileName string, data []byte, fileAgents []string) (*MediaFile, error) {
	if sessionID == "" {
		return nil, fmt.Errorf("session ID is required")
	}
	if len(data) == 0 {
		return nil, fmt.Errorf("file data is empty")
	}
	if fileName == "" {
		fileName = "upload.bin"
	}

	if err := c.wait(ctx); err != nil {
		return nil, err
	}

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	part, err := writer.CreateFormFile("file", fileName)
	if err != nil {
		return nil, fmt.Errorf("create form file: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("write form file: %w", err)
	}
	fields := map[string]string{
		"sessionId":    sessionID,
		"createdBy":    mediaUploader,
		"updatedBy":    mediaUploader,
		"name":         fileName,
		"responseMode": responseModeStream,
	}
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			return nil, fmt.Errorf("write form field %s: %w", key, err)
		}
	}
	for _, agent := range fileAgents {
		if err := writer.WriteField("agents", agent); err != nil {
			return nil, fmt.Errorf("write agents field: %w", err)
		}
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("close multipart writer: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, timeout.MediaUploadTimeout)
	defer cancel()

	url := c.mediaBaseURL + "/public/file/raw"
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, &body)
	if err != nil {
		return nil, fmt.Errorf("create upload request: %w", err)
	}
	req.Header.Set("apikey", c.apiKey)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload file: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		return nil, &StatusError{Op: "upload file", Status: resp.StatusCode, Body: readBodyText(resp.Body)}
	}

	var decoded mediaResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("decode upload response: %w", err)
	}
	if decoded.Data.ID == "" {
		return nil, fmt.Errorf("upload response missing file ID")
	}
	return &MediaFile{
		ID:      decoded.Data.ID,
		URL:     decoded.Data.URL,
		Context: decoded.Data.Context,
	}, nil
}
