package sprite

import (
	"context"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"tileworld.ai/sprite-gateway/app/domain/common"
	"tileworld.ai/sprite-gateway/app/domain/generation"
	"tileworld.ai/sprite-gateway/app/domain/genlog"
	"tileworld.ai/sprite-gateway/config/environment_variables"
)

// SpriteService implements the orientation reuse policy on top of the
// variant cache and the generation invoker.
type SpriteService struct {
	cache   *VariantCacheService
	invoker *generation.InvokerService
}

func NewSpriteService(cache *VariantCacheService, invoker *generation.InvokerService) *SpriteService {
	return &SpriteService{
		cache:   cache,
		invoker: invoker,
	}
}

// CreateObjectResult is the outcome of a create-object request.
type CreateObjectResult struct {
	Variant Variant
	// Cached reports an exact cache hit; no generation call was made.
	Cached bool
	// ReorientedFrom names the source orientation when the variant was
	// derived from a cached different-orientation variant. Empty for exact
	// hits and cold generations.
	ReorientedFrom Orientation
}

// CreateObject resolves a requested object+facing to an image, taking
// exactly one of three paths: exact cache hit, cross-orientation reuse, or
// cold generation. The object faces the opposite of the player's facing.
//
// Overlapping requests for the same pair are not coalesced: two concurrent
// cold generations both call the backend and the second insert wins.
func (s *SpriteService) CreateObject(ctx context.Context, name, prompt string, playerFacing Orientation) (*CreateObjectResult, *common.Error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, common.NewValidationError("name is required", "2f6f6f2e-8b41-4a2e-9a51-3a1d0c3b7f10")
	}
	prompt = strings.TrimSpace(prompt)
	if prompt == "" {
		return nil, common.NewValidationError("prompt is required", "b4b9c8b1-55f0-4a0f-8a74-6f5a1be2c9d3")
	}

	objectKey := ObjectKey(prompt)
	orientation := playerFacing.Opposite()

	if variant, ok := s.cache.Lookup(objectKey, orientation); ok {
		return &CreateObjectResult{Variant: variant, Cached: true}, nil
	}

	if source, ok := s.cache.LookupAny(objectKey); ok {
		return s.reorient(ctx, name, objectKey, orientation, source)
	}

	return s.coldGenerate(ctx, name, prompt, objectKey, orientation)
}

func (s *SpriteService) reorient(ctx context.Context, name, objectKey string, orientation Orientation, source Variant) (*CreateObjectResult, *common.Error) {
	sourcePath, ok := ImagePathForURL(source.ImageURL)
	if !ok {
		return nil, common.NewErrorWithMessage("cached variant has an unresolvable image url", "93cf7a6e-6a71-43da-9f2b-7f4e2a5d8c01")
	}

	fileName := newImageFileName(name, string(orientation))
	if err := s.invoker.Invoke(ctx, genlog.KindReorient, objectKey, string(orientation), generation.Request{
		Prompt:            reorientPrompt(orientation),
		OutputPath:        filepath.Join(environment_variables.EnvironmentVariables.GENERATED_DIR, fileName),
		EditImagePath:     sourcePath,
		BackgroundRemoval: generation.BackgroundRemovalFromEnv(),
	}); err != nil {
		return nil, err
	}

	variant, err := s.cache.Insert(objectKey, orientation, ImageURLFor(fileName))
	if err != nil {
		return nil, common.NewError(err, "5a0d4c8e-2b6f-4f3a-b1c9-8e7d6a5f4c21")
	}
	return &CreateObjectResult{Variant: variant, ReorientedFrom: source.Orientation}, nil
}

func (s *SpriteService) coldGenerate(ctx context.Context, name, prompt, objectKey string, orientation Orientation) (*CreateObjectResult, *common.Error) {
	fileName := newImageFileName(name, string(orientation))
	if err := s.invoker.Invoke(ctx, genlog.KindCold, objectKey, string(orientation), generation.Request{
		Prompt:              coldPrompt(prompt, orientation),
		OutputPath:          filepath.Join(environment_variables.EnvironmentVariables.GENERATED_DIR, fileName),
		ReferenceImagePaths: styleReferencesFor(orientation),
		BackgroundRemoval:   generation.BackgroundRemovalFromEnv(),
	}); err != nil {
		return nil, err
	}

	variant, err := s.cache.Insert(objectKey, orientation, ImageURLFor(fileName))
	if err != nil {
		return nil, common.NewError(err, "1d9e8f7a-3c2b-4e5d-a6f1-0b9c8d7e6f52")
	}
	return &CreateObjectResult{Variant: variant}, nil
}

// EditObject applies a transformation to an existing placed object's image.
// The result is a new derived image for that one placed instance; the
// variant cache is deliberately not consulted or written, since cache
// entries back orientation variants of a conceptual object, not edit
// history.
func (s *SpriteService) EditObject(ctx context.Context, name, imageURL, interaction string) (string, *common.Error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", common.NewValidationError("name is required", "c1a2b3d4-0e5f-4a6b-8c7d-9e0f1a2b3c4d")
	}
	interaction = strings.TrimSpace(interaction)
	if interaction == "" {
		return "", common.NewValidationError("interaction is required", "d5e6f7a8-1b2c-4d3e-9f0a-b1c2d3e4f5a6")
	}

	sourcePath, ok := ImagePathForURL(strings.TrimSpace(imageURL))
	if !ok {
		return "", common.NewValidationError("imageUrl must reference a generated image", "e7f8a9b0-2c3d-4e5f-a1b2-c3d4e5f6a7b8")
	}
	if info, err := os.Stat(sourcePath); err != nil || info.IsDir() {
		return "", common.NewValidationError("imageUrl does not reference an existing generated image", "f9a0b1c2-3d4e-4f5a-b6c7-d8e9f0a1b2c3")
	}

	fileName := newImageFileName(name, "edit")
	if err := s.invoker.Invoke(ctx, genlog.KindEdit, ObjectKey(name), "", generation.Request{
		Prompt:            editPrompt(interaction),
		OutputPath:        filepath.Join(environment_variables.EnvironmentVariables.GENERATED_DIR, fileName),
		EditImagePath:     sourcePath,
		BackgroundRemoval: generation.BackgroundRemovalFromEnv(),
	}); err != nil {
		return "", err
	}
	return ImageURLFor(fileName), nil
}

// UncacheVariant normalizes the pair and removes it from the cache.
// Removing an absent pair reports removed=false without error.
func (s *SpriteService) UncacheVariant(objectKey, orientation string) (bool, *common.Error) {
	objectKey = ObjectKey(objectKey)
	if objectKey == "" {
		return false, common.NewValidationError("objectKey is required", "0a1b2c3d-4e5f-4a6b-8c9d-0e1f2a3b4c5d")
	}

	removed, err := s.cache.Remove(objectKey, NormalizeOrientation(orientation))
	if err != nil {
		return false, common.NewError(err, "6e5d4c3b-2a1f-4e9d-8c7b-6a5f4e3d2c1b")
	}
	return removed, nil
}

func newImageFileName(name, tag string) string {
	return "obj_" + sanitizeFileName(name) + "_" + tag + "_" + uuid.NewString()[:8] + ".png"
}

func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range strings.ToLower(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	return strings.Trim(b.String(), "-")
}

func styleReferencesFor(orientation Orientation) []string {
	refPath := filepath.Join(
		environment_variables.EnvironmentVariables.REFERENCE_DIR,
		"ref_object_"+string(orientation)+".png",
	)
	if info, err := os.Stat(refPath); err != nil || info.IsDir() {
		return nil
	}
	return []string{refPath}
}
