package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"

	"tileworld.ai/sprite-gateway/app/domain/generation"
	geminiclient "tileworld.ai/sprite-gateway/app/utils/httpclients/gemini"
	"tileworld.ai/sprite-gateway/app/utils/logger"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

// GeminiBackend implements generation.Backend against the Gemini
// generateContent API.
type GeminiBackend struct {
	client *geminiclient.GeminiImageClient
}

func NewGeminiBackend(client *geminiclient.GeminiImageClient) *GeminiBackend {
	return &GeminiBackend{client: client}
}

func (b *GeminiBackend) Name() string {
	return "gemini"
}

func (b *GeminiBackend) Configured() error {
	if environment_variables.EnvironmentVariables.GEMINI_API_KEY == "" {
		return errors.New("missing GEMINI_API_KEY environment variable")
	}
	return nil
}

func (b *GeminiBackend) Generate(ctx context.Context, request generation.Request) error {
	// The edit base comes first so the model treats it as the image the
	// prompt applies to; reference images follow, and the text prompt is
	// always the final part.
	var parts []geminiclient.Part
	if request.EditImagePath != "" {
		part, err := inlineImagePart(request.EditImagePath)
		if err != nil {
			return err
		}
		parts = append(parts, part)
	}
	for _, refPath := range request.ReferenceImagePaths {
		part, err := inlineImagePart(refPath)
		if err != nil {
			return err
		}
		parts = append(parts, part)
	}
	parts = append(parts, geminiclient.Part{Text: request.Prompt})

	envs := environment_variables.EnvironmentVariables
	response, err := b.client.GenerateContent(ctx, envs.GEMINI_API_KEY, envs.GEMINI_MODEL, geminiclient.GenerateContentRequest{
		Contents: []geminiclient.Content{{Parts: parts}},
		GenerationConfig: geminiclient.GenerationConfig{
			ResponseModalities: []string{"TEXT", "IMAGE"},
		},
	})
	if err != nil {
		return err
	}

	for _, candidate := range response.Candidates {
		for _, part := range candidate.Content.Parts {
			if part.InlineData != nil && part.InlineData.Data != "" {
				imageBytes, decodeErr := base64.StdEncoding.DecodeString(part.InlineData.Data)
				if decodeErr != nil {
					return fmt.Errorf("decode image data: %w", decodeErr)
				}
				return os.WriteFile(request.OutputPath, imageBytes, 0o644)
			}
			if part.Text != "" {
				logger.GetLogger().Infof("[model text] %s", part.Text)
			}
		}
	}
	return errors.New("no image data found in response")
}

func inlineImagePart(path string) (geminiclient.Part, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return geminiclient.Part{}, fmt.Errorf("read image %s: %w", path, err)
	}
	mimeType := mime.TypeByExtension(filepath.Ext(path))
	if mimeType == "" {
		mimeType = "image/png"
	}
	return geminiclient.Part{
		InlineData: &geminiclient.InlineData{
			MimeType: mimeType,
			Data:     base64.StdEncoding.EncodeToString(data),
		},
	}, nil
}
