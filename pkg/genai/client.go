// Package genai is a thin HTTP client for the Google generative language API:
// text generation, vision description and image generation.
package genai

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultBaseURL = "https://generativelanguage.googleapis.com"

	textModel   = "gemini-1.5-flash"
	visionModel = "gemini-1.5-pro"
	imageModel  = "imagen-3.0-generate-002"
)

type Client struct {
	apiKey     string
	baseURL    string
	httpClient *http.Client
}

func NewClient(apiKey string) *Client {
	return &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpClient: &http.Client{
			Timeout: 60 * time.Second,
		},
	}
}

type chatPart struct {
	Text       string      `json:"text,omitempty"`
	InlineData *inlineData `json:"inline_data,omitempty"`
}

type inlineData struct {
	MimeType string `json:"mime_type"`
	Data     string `json:"data"`
}

type chatContent struct {
	Parts []*chatPart `json:"parts"`
	Role  string      `json:"role,omitempty"`
}

type chatRequest struct {
	Contents []*chatContent `json:"contents"`
}

type chatCandidate struct {
	Content *chatContent `json:"content"`
}

type chatResponse struct {
	Candidates []*chatCandidate `json:"candidates"`
}

type imageRequest struct {
	Instances  []imageInstance `json:"instances"`
	Parameters imageParameters `json:"parameters"`
}

type imageInstance struct {
	Prompt string `json:"prompt"`
}

type imageParameters struct {
	SampleCount int `json:"sampleCount"`
}

type imageResponse struct {
	Predictions []struct {
		BytesBase64Encoded string `json:"bytesBase64Encoded"`
		MimeType           string `json:"mimeType"`
	} `json:"predictions"`
}

func (c *Client) post(ctx context.Context, path string, payload interface{}, out interface{}) error {
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+path, bytes.NewBuffer(payloadJson))
	if err != nil {
		return err
	}
	req.Header.Set("x-goog-api-key", c.apiKey)
	req.Header.Set("Content-Type", "application/json")

	res, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer res.Body.Close()

	resBody, err := io.ReadAll(res.Body)
	if err != nil {
		return err
	}

	if res.StatusCode != http.StatusOK {
		return fmt.Errorf(
			"status error, got status %d. with response body %s",
			res.StatusCode,
			string(resBody),
		)
	}

	return json.Unmarshal(resBody, out)
}

// GenerateText sends a single-turn prompt to the text model and returns the
// first candidate's text.
func (c *Client) GenerateText(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Contents: []*chatContent{
			{
				Parts: []*chatPart{{Text: prompt}},
				Role:  "user",
			},
		},
	}

	var res chatResponse
	path := fmt.Sprintf("/v1/models/%s:generateContent", textModel)
	if err := c.post(ctx, path, payload, &res); err != nil {
		return "", err
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from %s", textModel)
	}
	return res.Candidates[0].Content.Parts[0].Text, nil
}

// DescribeImage sends image bytes plus an instruction to the vision model.
func (c *Client) DescribeImage(ctx context.Context, mimeType string, image []byte, prompt string) (string, error) {
	payload := chatRequest{
		Contents: []*chatContent{
			{
				Parts: []*chatPart{
					{Text: prompt},
					{InlineData: &inlineData{
						MimeType: mimeType,
						Data:     base64.StdEncoding.EncodeToString(image),
					}},
				},
				Role: "user",
			},
		},
	}

	var res chatResponse
	path := fmt.Sprintf("/v1/models/%s:generateContent", visionModel)
	if err := c.post(ctx, path, payload, &res); err != nil {
		return "", err
	}
	if len(res.Candidates) == 0 || res.Candidates[0].Content == nil || len(res.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from %s", visionModel)
	}
	return res.Candidates[0].Content.Parts[0].Text, nil
}

// GenerateImage asks the image model for a single render and returns it as a
// data URI.
func (c *Client) GenerateImage(ctx context.Context, prompt string) (string, error) {
	payload := imageRequest{
		Instances:  []imageInstance{{Prompt: prompt}},
		Parameters: imageParameters{SampleCount: 1},
	}

	var res imageResponse
	path := fmt.Sprintf("/v1beta/models/%s:predict", imageModel)
	if err := c.post(ctx, path, payload, &res); err != nil {
		return "", err
	}
	if len(res.Predictions) == 0 || res.Predictions[0].BytesBase64Encoded == "" {
		return "", fmt.Errorf("empty prediction from %s", imageModel)
	}

	mime := res.Predictions[0].MimeType
	if mime == "" {
		mime = "image/png"
	}
	return fmt.Sprintf("data:%s;base64,%s", mime, res.Predictions[0].BytesBase64Encoded), nil
}
