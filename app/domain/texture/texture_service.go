package texture

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"tileworld.ai/sprite-gateway/app/domain/common"
	"tileworld.ai/sprite-gateway/app/domain/generation"
	"tileworld.ai/sprite-gateway/app/domain/genlog"
	"tileworld.ai/sprite-gateway/app/domain/sprite"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

// WallReferenceFileName is the master reference texture every wall
// generation is styled after. It is required; textures are never generated
// without it.
const WallReferenceFileName = "ref_wall_tile.png"

// TextureService generates tiling wall textures. Textures are independent
// of the object variant cache: every request is a fresh generation and
// nothing is cached.
type TextureService struct {
	invoker *generation.InvokerService
}

func NewTextureService(invoker *generation.InvokerService) *TextureService {
	return &TextureService{invoker: invoker}
}

// WallReferencePath returns the configured location of the master wall
// reference texture.
func WallReferencePath() string {
	return filepath.Join(environment_variables.EnvironmentVariables.REFERENCE_DIR, WallReferenceFileName)
}

// GenerateWallTexture produces a fresh tiling texture from the prompt and
// the master reference. Background removal is never applied; wall textures
// are opaque by design of the tile renderer.
func (s *TextureService) GenerateWallTexture(ctx context.Context, prompt string) (string, *common.Error) {
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return "", common.NewValidationError("prompt is required", "8b7a6c5d-4e3f-4a2b-9c1d-0e9f8a7b6c5e")
	}

	referencePath := WallReferencePath()
	if info, err := os.Stat(referencePath); err != nil || info.IsDir() {
		return "", common.NewConfigurationError(
			errors.New("wall reference texture "+referencePath+" is missing"),
			"4c3d2e1f-0a9b-4c8d-b7e6-f5a4b3c2d1e0",
		)
	}

	fileName := "wall_" + uuid.NewString()[:8] + ".png"
	if err := s.invoker.Invoke(ctx, genlog.KindTexture, "", "", generation.Request{
		Prompt:              sprite.WallTexturePrompt(prompt),
		OutputPath:          filepath.Join(environment_variables.EnvironmentVariables.GENERATED_DIR, fileName),
		ReferenceImagePaths: []string{referencePath},
	}); err != nil {
		return "", err
	}
	return sprite.ImageURLFor(fileName), nil
}
