package generator

import (
	"context"
	"encoding/base64"
	"errors"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"tileworld.ai/sprite-gateway/app/domain/generation"
	"tileworld.ai/sprite-gateway/app/utils/logger"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

// OpenAIBackend implements generation.Backend against the OpenAI images
// API. Reference images are not supported by that API and are skipped with
// a warning; the edit base goes through the image edit endpoint.
type OpenAIBackend struct{}

func NewOpenAIBackend() *OpenAIBackend {
	return &OpenAIBackend{}
}

func (b *OpenAIBackend) Name() string {
	return "openai"
}

func (b *OpenAIBackend) Configured() error {
	if environment_variables.EnvironmentVariables.OPENAI_API_KEY == "" {
		return errors.New("missing OPENAI_API_KEY environment variable")
	}
	return nil
}

func (b *OpenAIBackend) Generate(ctx context.Context, request generation.Request) error {
	envs := environment_variables.EnvironmentVariables
	client := openai.NewClient(envs.OPENAI_API_KEY)
	model := envs.OPENAI_IMAGE_MODEL

	if len(request.ReferenceImagePaths) > 0 {
		logger.GetLogger().Warnf("openai backend: ignoring %d reference images, not supported by the images API", len(request.ReferenceImagePaths))
	}

	// gpt-image-1 always returns base64 and rejects an explicit
	// response_format.
	responseFormat := openai.CreateImageResponseFormatB64JSON
	if model == "gpt-image-1" {
		responseFormat = ""
	}

	var (
		response openai.ImageResponse
		err      error
	)
	if request.EditImagePath != "" {
		var editBase *os.File
		editBase, err = os.Open(request.EditImagePath)
		if err != nil {
			return fmt.Errorf("open edit base %s: %w", request.EditImagePath, err)
		}
		defer editBase.Close()

		response, err = client.CreateEditImage(ctx, openai.ImageEditRequest{
			Image:          editBase,
			Prompt:         request.Prompt,
			Model:          model,
			N:              1,
			Size:           openai.CreateImageSize1024x1024,
			ResponseFormat: responseFormat,
		})
	} else {
		response, err = client.CreateImage(ctx, openai.ImageRequest{
			Prompt:         request.Prompt,
			Model:          model,
			N:              1,
			Size:           openai.CreateImageSize1024x1024,
			ResponseFormat: responseFormat,
		})
	}
	if err != nil {
		return err
	}
	if len(response.Data) == 0 || response.Data[0].B64JSON == "" {
		return errors.New("no image data found in response")
	}

	imageBytes, err := base64.StdEncoding.DecodeString(response.Data[0].B64JSON)
	if err != nil {
		return fmt.Errorf("decode image data: %w", err)
	}
	return os.WriteFile(request.OutputPath, imageBytes, 0o644)
}
