package gemini

import (
	"context"
	"fmt"
	"io"
	"strings"

	"resty.dev/v3"
)

// GeminiImageClient wraps the Gemini generateContent endpoint for image
// generation and editing.
type GeminiImageClient struct {
	client  *resty.Client
	baseURL string
	name    string
}

// InlineData is a base64-encoded image part.
type InlineData struct {
	MimeType string `json:"mimeType"`
	Data     string `json:"data"`
}

// Part is one element of a generateContent request or response: an inline
// image or a piece of text.
type Part struct {
	InlineData *InlineData `json:"inlineData,omitempty"`
	Text       string      `json:"text,omitempty"`
}

type Content struct {
	Parts []Part `json:"parts"`
}

type GenerationConfig struct {
	ResponseModalities []string `json:"responseModalities"`
}

type GenerateContentRequest struct {
	Contents         []Content        `json:"contents"`
	GenerationConfig GenerationConfig `json:"generationConfig"`
}

type Candidate struct {
	Content Content `json:"content"`
}

type APIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

type GenerateContentResponse struct {
	Candidates []Candidate `json:"candidates"`
	Error      *APIError   `json:"error,omitempty"`
}

func NewGeminiImageClient(client *resty.Client, name, baseURL string) *GeminiImageClient {
	return &GeminiImageClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		name:    name,
	}
}

// GenerateContent posts the request to {baseURL}/{model}:generateContent
// and returns the parsed response. Backend diagnostic text is carried in
// the returned error verbatim.
func (c *GeminiImageClient) GenerateContent(ctx context.Context, apiKey, model string, request GenerateContentRequest) (*GenerateContentResponse, error) {
	var respBody GenerateContentResponse
	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", apiKey).
		SetBody(request).
		SetResult(&respBody).
		Post(c.baseURL + "/" + model + ":generateContent")
	if err != nil {
		return nil, err
	}
	if resp.IsError() {
		return nil, c.errorFromResponse(resp, "generate content request failed")
	}
	if respBody.Error != nil {
		return nil, fmt.Errorf("%s: API error %d (%s): %s", c.name, respBody.Error.Code, respBody.Error.Status, respBody.Error.Message)
	}
	return &respBody, nil
}

func (c *GeminiImageClient) errorFromResponse(resp *resty.Response, message string) error {
	if resp == nil || resp.RawResponse == nil || resp.RawResponse.Body == nil {
		return fmt.Errorf("%s: %s with status %d", c.name, message, statusCode(resp))
	}
	defer resp.RawResponse.Body.Close()
	body, err := io.ReadAll(resp.RawResponse.Body)
	if err != nil {
		return fmt.Errorf("%s: %s with status %d", c.name, message, statusCode(resp))
	}
	trimmed := strings.TrimSpace(string(body))
	if trimmed == "" {
		return fmt.Errorf("%s: %s with status %d", c.name, message, statusCode(resp))
	}
	return fmt.Errorf("%s: %s with status %d: %s", c.name, message, statusCode(resp), trimmed)
}

func statusCode(resp *resty.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode()
}
